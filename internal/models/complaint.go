package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "Pending"
	ComplaintInProgress ComplaintStatus = "In Progress"
	ComplaintResolved   ComplaintStatus = "Resolved"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintPending, ComplaintInProgress, ComplaintResolved:
		return true
	}
	return false
}

type Complaint struct {
	ID        string          `gorm:"primaryKey;type:uuid"`
	UserID    string          `gorm:"type:uuid;not null;index"`
	RoomID    string          `gorm:"type:uuid;not null"`
	Issue     string          `gorm:"type:text;not null"`
	Status    ComplaintStatus `gorm:"type:varchar(20);not null;default:'Pending'"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
