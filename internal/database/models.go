package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	Username      string    `bun:"username,notnull,unique"`
	Email         string    `bun:"email,notnull,unique"`
	PasswordHash  string    `bun:"password_hash,notnull"`
	PhoneNumber   string    `bun:"phone_number,notnull"`
	UserType      string    `bun:"user_type,notnull"`
	IsOTPVerified bool      `bun:"is_otp_verified,notnull"`
	FirstName     string    `bun:"first_name,notnull"`
	LastName      string    `bun:"last_name,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Name      string    `bun:"name,notnull"`
	Bio       string    `bun:"bio,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID            uuid.UUID  `bun:"id,pk,type:uuid"`
	Title         string     `bun:"title,notnull"`
	ISBN          string     `bun:"isbn,notnull"`
	AuthorID      *uuid.UUID `bun:"author_id,type:uuid,nullzero"`
	PublishedYear *int       `bun:"published_year"`
	Description   string     `bun:"description,notnull"`
	CreatedAt     time.Time  `bun:"created_at,notnull"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull"`
}
