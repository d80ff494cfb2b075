package mapper

import (
	"github.com/osa911/hostelhub/internal/api/dto/v1/membership"
	"github.com/osa911/hostelhub/internal/billing"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/service"
)

// MembershipToResponse renders a record; the unsaved default has no ID or timestamp.
func MembershipToResponse(m *models.Membership) membership.MembershipResponse {
	resp := membership.MembershipResponse{
		UserID:  m.UserID,
		Period:  m.Period,
		OptedIn: m.OptedIn,
		PlanRef: m.PlanID,
		Amount:  m.Amount,
	}
	if m.Persisted() {
		id, updated := m.ID, m.LastUpdated
		resp.ID = &id
		resp.LastUpdated = &updated
	}
	return resp
}

func SummaryToResponse(s billing.Summary) membership.SummaryResponse {
	lines := make([]membership.SummaryLine, len(s.Lines))
	for i, l := range s.Lines {
		lines[i] = membership.SummaryLine{
			PlanID:      l.PlanID,
			PlanName:    l.PlanName,
			Subscribers: l.Subscribers,
			Subtotal:    l.Subtotal,
		}
	}
	return membership.SummaryResponse{
		Period:  s.Period.String(),
		PerPlan: s.PerPlan(),
		Lines:   lines,
		Total:   s.Total,
	}
}

func MemberRowsToResponses(rows []service.MemberRow) []membership.MemberResponse {
	result := make([]membership.MemberResponse, len(rows))
	for i, r := range rows {
		result[i] = membership.MemberResponse{
			UserID:      r.Record.UserID,
			Name:        r.UserName,
			Email:       r.UserEmail,
			OptedIn:     r.Record.OptedIn,
			PlanRef:     r.Record.PlanID,
			PlanName:    r.PlanName,
			Amount:      r.Record.Amount,
			LastUpdated: r.Record.LastUpdated,
		}
	}
	return result
}
