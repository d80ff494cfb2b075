package mapper

import (
	"github.com/osa911/hostelhub/internal/api/dto/v1/room"
	"github.com/osa911/hostelhub/internal/service"
)

func RoomViewToResponse(v service.RoomView) room.RoomResponse {
	members := make([]room.MemberResponse, len(v.Members))
	for i, m := range v.Members {
		members[i] = room.MemberResponse{ID: m.ID, Name: m.Name, Email: m.Email}
	}
	return room.RoomResponse{
		ID:            v.Room.ID,
		RoomNumber:    v.Room.RoomNumber,
		RoomType:      string(v.Room.RoomType),
		Capacity:      v.Room.RoomType.Capacity(),
		AvailableBeds: v.AvailableBeds,
		Members:       members,
	}
}

func RoomViewsToResponses(views []service.RoomView) []room.RoomResponse {
	result := make([]room.RoomResponse, len(views))
	for i, v := range views {
		result[i] = RoomViewToResponse(v)
	}
	return result
}
