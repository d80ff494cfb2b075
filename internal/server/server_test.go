package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/dto/v1/auth"
	"github.com/osa911/hostelhub/internal/api/dto/v1/membership"
	"github.com/osa911/hostelhub/internal/api/dto/v1/plan"
	"github.com/osa911/hostelhub/internal/billing"
	"github.com/osa911/hostelhub/internal/config"
	"github.com/osa911/hostelhub/internal/metrics"
	"github.com/osa911/hostelhub/internal/reports"
	"github.com/osa911/hostelhub/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	t   *testing.T
	srv *Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:    "test",
		Port:           "0",
		LogLevel:       "info",
		StorageDriver:  config.StorageMemory,
		JWTSecret:      "test-secret",
		JWTTTL:         time.Hour,
		Timezone:       "Asia/Kolkata",
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
	srv, err := NewServer(cfg, Dependencies{
		Repos:   memory.NewSet(),
		Metrics: metrics.New(),
		Clock:   billing.FixedClock(time.Date(2025, time.October, 15, 10, 0, 0, 0, loc)),
	})
	require.NoError(t, err)
	return &testServer{t: t, srv: srv}
}

func (ts *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	ts.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) decode(rec *httptest.ResponseRecorder, out interface{}) envelope {
	ts.t.Helper()
	var env envelope
	require.NoError(ts.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if out != nil {
		require.NoError(ts.t, json.Unmarshal(env.Data, out))
	}
	return env
}

func (ts *testServer) signup(name, email string) string {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": "password123",
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp auth.AuthResponse
	ts.decode(rec, &resp)
	return resp.Token
}

func (ts *testServer) admin() string {
	ts.t.Helper()
	_, err := ts.srv.Services().Auth.EnsureAdmin(context.Background(), "Warden", "warden@example.com", "adminpass1")
	require.NoError(ts.t, err)

	rec := ts.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "warden@example.com", "password": "adminpass1",
	})
	require.Equal(ts.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp auth.AuthResponse
	ts.decode(rec, &resp)
	return resp.Token
}

func (ts *testServer) createPlan(token, name string, price int64) plan.PlanResponse {
	ts.t.Helper()
	rec := ts.do(http.MethodPost, "/api/v1/plans", token, map[string]interface{}{"name": name, "price": price})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	var p plan.PlanResponse
	ts.decode(rec, &p)
	return p
}

func TestMessBillingFlow(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.admin()
	student := ts.signup("Asha", "asha@example.com")

	rec := ts.do(http.MethodPost, "/api/v1/plans", student, map[string]interface{}{"name": "Veg", "price": 3000})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	veg := ts.createPlan(admin, "Veg", 3000)
	ts.createPlan(admin, "Non-Veg", 3500)

	rec = ts.do(http.MethodPost, "/api/v1/plans", admin, map[string]interface{}{"name": "Veg", "price": 10})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// default record before any write
	var mine membership.MembershipResponse
	rec = ts.do(http.MethodGet, "/api/v1/membership/me", student, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ts.decode(rec, &mine)
	assert.False(t, mine.OptedIn)
	assert.Nil(t, mine.ID)
	assert.Nil(t, mine.PlanRef)
	assert.Equal(t, "October 2025", mine.Period)

	rec = ts.do(http.MethodPut, "/api/v1/membership/me", student, map[string]interface{}{"optedIn": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "plan required", ts.decode(rec, nil).Error.Message)

	rec = ts.do(http.MethodPut, "/api/v1/membership/me", student, map[string]interface{}{"optedIn": true, "planRef": "no-such-plan"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "plan not found", ts.decode(rec, nil).Error.Message)

	rec = ts.do(http.MethodPut, "/api/v1/membership/me", student, map[string]interface{}{"optedIn": true, "planRef": veg.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ts.decode(rec, &mine)
	assert.True(t, mine.OptedIn)
	require.NotNil(t, mine.ID)
	require.NotNil(t, mine.PlanRef)
	assert.Equal(t, veg.ID, *mine.PlanRef)
	assert.True(t, mine.Amount.Equal(decimal.NewFromInt(3000)))

	rec = ts.do(http.MethodGet, "/api/v1/membership/summary", student, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var summary membership.SummaryResponse
	rec = ts.do(http.MethodGet, "/api/v1/membership/summary", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ts.decode(rec, &summary)
	assert.Equal(t, "October 2025", summary.Period)
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(3000)))
	assert.True(t, summary.PerPlan["Veg"].Equal(decimal.NewFromInt(3000)))
	assert.True(t, summary.PerPlan["Non-Veg"].IsZero())

	rec = ts.do(http.MethodGet, "/api/v1/membership/summary?period="+url.QueryEscape("September 2025"), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ts.decode(rec, &summary)
	assert.True(t, summary.Total.IsZero())

	rec = ts.do(http.MethodGet, "/api/v1/membership/summary?period=2025-10", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var members []membership.MemberResponse
	rec = ts.do(http.MethodGet, "/api/v1/membership", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ts.decode(rec, &members)
	require.Len(t, members, 1)
	assert.Equal(t, "Asha", members[0].Name)
	assert.Equal(t, "Veg", members[0].PlanName)

	rec = ts.do(http.MethodGet, "/api/v1/membership/summary/export", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reports.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "mess_summary_2025_10.xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	// opting out clears plan and amount
	rec = ts.do(http.MethodPut, "/api/v1/membership/me", student, map[string]interface{}{"optedIn": false, "planRef": veg.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	ts.decode(rec, &mine)
	assert.False(t, mine.OptedIn)
	assert.Nil(t, mine.PlanRef)
	assert.True(t, mine.Amount.IsZero())
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/v1/plans", "/api/v1/membership/me", "/api/v1/auth/profile", "/api/v1/rooms"} {
		rec := ts.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := ts.do(http.MethodGet, "/api/v1/plans", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMissingOptedInIsValidationError(t *testing.T) {
	ts := newTestServer(t)
	student := ts.signup("Asha", "asha@example.com")

	rec := ts.do(http.MethodPut, "/api/v1/membership/me", student, map[string]interface{}{"planRef": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", ts.decode(rec, nil).Error.Code)
}

func TestRoomsComplaintsAttendance(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.admin()
	student := ts.signup("Asha", "asha@example.com")

	var profile struct {
		ID string `json:"id"`
	}
	ts.decode(ts.do(http.MethodGet, "/api/v1/users/me", student, nil), &profile)

	rec := ts.do(http.MethodPost, "/api/v1/complaints", student, map[string]string{"issue": "Leaking tap"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var room struct {
		ID            string `json:"id"`
		AvailableBeds int    `json:"availableBeds"`
	}
	rec = ts.do(http.MethodPost, "/api/v1/rooms", admin, map[string]string{"roomNumber": "101", "roomType": "Triple-Sharing"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ts.decode(rec, &room)
	assert.Equal(t, 3, room.AvailableBeds)

	rec = ts.do(http.MethodPut, "/api/v1/rooms/"+room.ID+"/assign", admin, map[string]string{"studentId": profile.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(http.MethodPut, "/api/v1/rooms/"+room.ID+"/assign", admin, map[string]string{"studentId": profile.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var complaint struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	rec = ts.do(http.MethodPost, "/api/v1/complaints", student, map[string]string{"issue": "Leaking tap"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ts.decode(rec, &complaint)
	assert.Equal(t, "Pending", complaint.Status)

	rec = ts.do(http.MethodPut, "/api/v1/complaints/"+complaint.ID, admin, map[string]string{"status": "Closed"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do(http.MethodPut, "/api/v1/complaints/"+complaint.ID, admin, map[string]string{"status": "Resolved"})
	require.Equal(t, http.StatusOK, rec.Code)

	var mark struct {
		Date string `json:"date"`
	}
	rec = ts.do(http.MethodPost, "/api/v1/attendance/mark", student, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ts.decode(rec, &mark)
	assert.Equal(t, "2025-10-15", mark.Date)

	rec = ts.do(http.MethodPost, "/api/v1/attendance/mark", student, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(http.MethodGet, "/api/v1/attendance?from=2025-10-01&to=2025-10-31", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var marks []json.RawMessage
	ts.decode(rec, &marks)
	assert.Len(t, marks, 1)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = ts.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hostel_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestTrailingSlashRedirects(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/health/", "", nil)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/health", rec.Header().Get("Location"))

	rec = ts.do(http.MethodGet, "/api/v1/plans/", ts.signup("Asha", "asha@example.com"), nil)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/api/v1/plans", rec.Header().Get("Location"))
}
