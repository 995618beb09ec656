package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account models a registered reporter or administrator.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
