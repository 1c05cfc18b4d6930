package model

import "time"

// ClassStatus is the approval state of a class. New classes start pending;
// an admin moves them to approved or denied. Re-applying a transition is
// allowed and last-write-wins.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusDenied   ClassStatus = "denied"
)

// Class represents an instructor-offered class.
type Class struct {
	ID               int64       `json:"id"`
	ClassName        string      `json:"class_name"`
	Image            string      `json:"image,omitempty"`
	InstructorName   string      `json:"instructor_name"`
	InstructorEmail  string      `json:"instructor_email"`
	Price            float64     `json:"price"`
	AvailableSeats   int         `json:"available_seats"`
	EnrolledStudents int         `json:"enrolled_students"`
	Status           ClassStatus `json:"status"`
	Feedback         string      `json:"feedback,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// CreateClassRequest is the payload for creating a class. The instructor
// identity comes from the caller's token, never from the body.
type CreateClassRequest struct {
	ClassName      string  `json:"class_name" binding:"required,min=2,max=200"`
	Image          string  `json:"image" binding:"omitempty,url"`
	Price          float64 `json:"price" binding:"required,gte=0"`
	AvailableSeats int     `json:"available_seats" binding:"required,gte=1"`
}

// UpdateClassRequest is the payload for editing class details. Status and
// enrollment counters are never touched through this path.
type UpdateClassRequest struct {
	ClassName      string  `json:"class_name" binding:"required,min=2,max=200"`
	Price          float64 `json:"price" binding:"required,gte=0"`
	AvailableSeats int     `json:"available_seats" binding:"required,gte=0"`
}

// FeedbackRequest is the payload for attaching review feedback to a class.
// The field is overwrite-only; no history is retained.
type FeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required,min=1,max=2000"`
}

// ClassEvent is published on the class events channel whenever a class
// changes state, for the admin live stream.
type ClassEvent struct {
	Type      string    `json:"type"` // created | approved | denied | enrolled
	ClassID   int64     `json:"class_id"`
	ClassName string    `json:"class_name,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
