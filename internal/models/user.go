package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on the legacy signup/login surface. PasswordHash is a
// bcrypt hash and never leaves the repository layer.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
