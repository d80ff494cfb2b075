package attendance

import "time"

type AttendanceResponse struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Date     string    `json:"date"`
	Status   string    `json:"status"`
	MarkedAt time.Time `json:"markedAt"`
}

type ListQuery struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}
