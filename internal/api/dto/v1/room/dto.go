package room

import "github.com/osa911/hostelhub/internal/api/dto/v1/user"

type CreateRoomRequest struct {
	RoomNumber string `json:"roomNumber" binding:"required,max=20"`
	RoomType   string `json:"roomType" binding:"omitempty,roomtype"`
}

type AssignRequest struct {
	StudentID string `json:"studentId" binding:"required"`
}

// MemberResponse is the public view of a room occupant
type MemberResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RoomResponse struct {
	ID            string           `json:"id"`
	RoomNumber    string           `json:"roomNumber"`
	RoomType      string           `json:"roomType"`
	Capacity      int              `json:"capacity"`
	AvailableBeds int              `json:"availableBeds"`
	Members       []MemberResponse `json:"roomMembers"`
}

type AssignResponse struct {
	Message string            `json:"message"`
	Room    RoomResponse      `json:"room"`
	Student user.UserResponse `json:"student"`
}
