package model

import "time"

// Role is a user's platform role. A user signs up without a role and is
// promoted by an admin; RoleNone is a valid terminal state, not an error.
type Role string

const (
	RoleNone       Role = ""
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// ParseRole maps a route segment to a Role. Returns RoleNone for anything
// that is not a known role name.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return Role(s)
	default:
		return RoleNone
	}
}

// User represents a platform account, keyed by email.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenRequest is the payload for POST /jwt.
type TokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CreateUserRequest is the payload for idempotent signup.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	PhotoURL string `json:"photo_url" binding:"omitempty,url"`
}
