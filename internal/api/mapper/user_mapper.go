package mapper

import (
	"github.com/osa911/hostelhub/internal/api/dto/v1/user"
	"github.com/osa911/hostelhub/internal/models"
)

// UserToUserResponse converts a domain User model to a UserResponse DTO
func UserToUserResponse(u *models.User) user.UserResponse {
	return user.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		RoomID:    u.RoomID,
		CreatedAt: u.CreatedAt,
	}
}

// UsersToUserResponses converts a slice of domain User models to UserResponse DTOs
func UsersToUserResponses(users []models.User) []user.UserResponse {
	result := make([]user.UserResponse, len(users))
	for i := range users {
		result[i] = UserToUserResponse(&users[i])
	}
	return result
}
