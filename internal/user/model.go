package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"` // Never expose password hash in JSON
	PhoneNumber   string    `json:"phone_number"`
	UserType      string    `json:"user_type"`
	IsOTPVerified bool      `json:"is_otp_verified"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateParams carries an already-hashed password.
type CreateParams struct {
	Username      string
	Email         string
	PasswordHash  string
	PhoneNumber   string
	UserType      string
	IsOTPVerified bool
	FirstName     string
	LastName      string
}

// UpdateParams are the profile fields editable through the users resource.
// Phone number and password have their own flows.
type UpdateParams struct {
	Username  string `json:"username" validate:"required,alphanum,max=150"`
	Email     string `json:"email" validate:"required,email,max=254"`
	UserType  string `json:"user_type" validate:"required,max=32"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}
