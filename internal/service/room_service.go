package service

import (
	"context"
	"errors"
	"strings"

	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/repository"
)

// RoomView is a room with its current occupants.
type RoomView struct {
	Room          models.Room
	Members       []models.User
	AvailableBeds int
}

type RoomService struct {
	rooms  repository.RoomRepository
	users  repository.UserRepository
	logger *logging.Logger
}

func NewRoomService(rooms repository.RoomRepository, users repository.UserRepository) *RoomService {
	return &RoomService{rooms: rooms, users: users, logger: logging.GetLogger()}
}

func (s *RoomService) Create(ctx context.Context, number string, roomType models.RoomType) (*models.Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, newError(ErrValidation, "Room number is required")
	}
	if roomType == "" {
		roomType = models.RoomDoubleSharing
	}
	if !roomType.Valid() {
		return nil, newError(ErrValidation, "Room type must be Double-Sharing or Triple-Sharing")
	}

	room := &models.Room{RoomNumber: number, RoomType: roomType}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, storeError(err, "", "Room already exists")
	}
	return room, nil
}

// List returns every room with its members and free beds.
func (s *RoomService) List(ctx context.Context) ([]RoomView, error) {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	members, err := s.membersByRoom(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		views = append(views, newRoomView(r, members[r.ID]))
	}
	return views, nil
}

func (s *RoomService) membersByRoom(ctx context.Context) (map[string][]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	members := make(map[string][]models.User)
	for _, u := range users {
		if u.RoomID != nil {
			members[*u.RoomID] = append(members[*u.RoomID], u)
		}
	}
	return members, nil
}

func newRoomView(r models.Room, members []models.User) RoomView {
	free := r.RoomType.Capacity() - len(members)
	if free < 0 {
		free = 0
	}
	return RoomView{Room: r, Members: members, AvailableBeds: free}
}

// Assign houses a student in a room. Capacity is checked while the room is locked.
func (s *RoomService) Assign(ctx context.Context, roomID, studentID string) (*RoomView, error) {
	var assigned models.Room
	err := s.rooms.Assign(ctx, roomID, studentID, func(room *models.Room, occupants int, student *models.User) error {
		if occupants >= room.RoomType.Capacity() {
			return newError(ErrValidation, "No available beds")
		}
		if student.RoomID != nil {
			if *student.RoomID == room.ID {
				return newError(ErrValidation, "Student is already in this room")
			}
			return newError(ErrValidation, "Student is already assigned to a room")
		}
		assigned = *room
		return nil
	})
	if err != nil {
		var svcErr *Error
		if errors.As(err, &svcErr) {
			return nil, err
		}
		return nil, storeError(err, "Room or student not found", "Student is already assigned to a room")
	}
	s.logger.Info("Assigned user %s to room %s", studentID, assigned.RoomNumber)

	members, err := s.membersByRoom(ctx)
	if err != nil {
		return nil, err
	}
	view := newRoomView(assigned, members[assigned.ID])
	return &view, nil
}
