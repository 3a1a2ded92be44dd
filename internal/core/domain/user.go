package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User models a dashboard operator as returned by the inventory API.
// It is replaced wholesale on login and never mutated in place.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
