package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/dto/common"
	"github.com/osa911/hostelhub/internal/utils"
	"github.com/osa911/hostelhub/internal/version"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	storage string
}

// NewHealthHandler reports on db; a nil db means in-memory storage.
func NewHealthHandler(db Pinger, storage string) *HealthHandler {
	return &HealthHandler{db: db, storage: storage}
}

type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Version string `json:"version"`
}

func (h *HealthHandler) Check(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			utils.HandleAPIError(c, err, http.StatusServiceUnavailable, common.ErrCodeServiceUnavailable, "Database connection error")
			return
		}
	}

	utils.HandleSuccess(c, healthResponse{
		Status:  "ok",
		Storage: h.storage,
		Version: version.Version,
	})
}
