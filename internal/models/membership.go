package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Membership is one user's mess opt-in state for one period.
// (UserID, Period) is unique. PlanID is not a foreign key:
// plans can be deleted while records still point at them.
type Membership struct {
	ID          string          `gorm:"primaryKey;type:uuid"`
	UserID      string          `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_user_period"`
	Period      string          `gorm:"not null;uniqueIndex:idx_memberships_user_period;index"`
	OptedIn     bool            `gorm:"not null;default:false"`
	PlanID      *string         `gorm:"type:uuid"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	LastUpdated time.Time       `gorm:"not null"`
}

// Persisted reports whether the record came from the store rather than
// being the virtual opted-out default.
func (m *Membership) Persisted() bool {
	return m != nil && m.ID != ""
}

func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
