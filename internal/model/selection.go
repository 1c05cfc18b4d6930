package model

import "time"

// Selection is a student's pending pick of a class. It is a soft
// reservation: creating one does not hold a seat. The class fields are a
// snapshot taken at selection time so the cart survives later edits.
type Selection struct {
	ID              int64     `json:"id"`
	StudentEmail    string    `json:"student_email"`
	ClassID         int64     `json:"class_id"`
	ClassName       string    `json:"class_name"`
	Image           string    `json:"image,omitempty"`
	InstructorEmail string    `json:"instructor_email"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"created_at"`
}

// SelectClassRequest is the payload for POST /selected/class.
type SelectClassRequest struct {
	ClassID int64 `json:"class_id" binding:"required,gt=0"`
}
