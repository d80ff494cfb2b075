package complaint

import "time"

type CreateComplaintRequest struct {
	Issue string `json:"issue" binding:"required,max=2000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,complaintstatus"`
}

type ComplaintResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	RoomID    string    `json:"roomId"`
	Issue     string    `json:"issue"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
