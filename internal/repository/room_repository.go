package repository

import (
	"context"
	"fmt"

	"github.com/osa911/hostelhub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new RoomRepository instance
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	return translateError("create room", r.db.WithContext(ctx).Create(room).Error)
}

func (r *roomRepository) Get(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, translateError("get room", err)
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).Order("room_number").Find(&rooms).Error
	return rooms, translateError("list rooms", err)
}

func (r *roomRepository) Assign(ctx context.Context, roomID, userID string, check AssignCheck) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, "id = ?", roomID).Error
		if err != nil {
			return translateError("lock room", err)
		}

		// lock order is room then student; concurrent moves of one student serialize here
		var student models.User
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&student, "id = ?", userID).Error
		if err != nil {
			return translateError("lock student", err)
		}

		var occupants int64
		if err := tx.Model(&models.User{}).Where("room_id = ?", roomID).Count(&occupants).Error; err != nil {
			return translateError("count occupants", err)
		}

		if err := check(&room, int(occupants), &student); err != nil {
			return err
		}

		res := tx.Model(&models.User{}).
			Where("id = ? AND room_id IS NULL", userID).
			Update("room_id", roomID)
		if res.Error != nil {
			return translateError("assign room", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: student %s already housed", ErrDuplicate, userID)
		}
		return nil
	})
}
