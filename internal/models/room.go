package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomType string

const (
	RoomDoubleSharing RoomType = "Double-Sharing"
	RoomTripleSharing RoomType = "Triple-Sharing"
)

// Capacity returns the number of beds for the room type.
func (t RoomType) Capacity() int {
	if t == RoomTripleSharing {
		return 3
	}
	return 2
}

func (t RoomType) Valid() bool {
	return t == RoomDoubleSharing || t == RoomTripleSharing
}

type Room struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	RoomNumber string    `gorm:"uniqueIndex;not null"`
	RoomType   RoomType  `gorm:"type:varchar(20);not null;default:'Double-Sharing'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
