package mapper

import (
	"github.com/osa911/hostelhub/internal/api/dto/v1/plan"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/service"
)

func PlanToResponse(p *models.Plan) plan.PlanResponse {
	return plan.PlanResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
	}
}

func PlansToResponses(plans []models.Plan) []plan.PlanResponse {
	result := make([]plan.PlanResponse, len(plans))
	for i := range plans {
		result[i] = PlanToResponse(&plans[i])
	}
	return result
}

func CreatePlanRequestToInput(req *plan.CreatePlanRequest) service.PlanInput {
	return service.PlanInput{
		Name:        req.Name,
		Price:       *req.Price,
		Description: req.Description,
	}
}

func UpdatePlanRequestToUpdate(req *plan.UpdatePlanRequest) service.PlanUpdate {
	return service.PlanUpdate{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	}
}
