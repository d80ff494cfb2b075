package plan

import "github.com/shopspring/decimal"

// CreatePlanRequest represents a new meal-plan catalog entry
type CreatePlanRequest struct {
	Name        string           `json:"name" binding:"required,max=100"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Description string           `json:"description" binding:"max=500"`
}

// UpdatePlanRequest is a partial update; absent fields are left unchanged
type UpdatePlanRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
}

type PlanResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}
