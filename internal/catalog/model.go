package catalog

import (
	"time"

	"github.com/google/uuid"
)

type Author struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Book struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	ISBN          string     `json:"isbn"`
	AuthorID      *uuid.UUID `json:"author_id"`
	PublishedYear *int       `json:"published_year"`
	Description   string     `json:"description"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// AuthorInput is the full author representation used by create and PUT
type AuthorInput struct {
	Name string `json:"name" validate:"required,max=200"`
	Bio  string `json:"bio" validate:"max=5000"`
}

// AuthorPatch carries only the fields present in a PATCH body
type AuthorPatch struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
	Bio  *string `json:"bio" validate:"omitempty,max=5000"`
}

func (p AuthorPatch) apply(a *Author) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Bio != nil {
		a.Bio = *p.Bio
	}
}

// BookInput is the full book representation used by create and PUT
type BookInput struct {
	Title         string     `json:"title" validate:"required,max=255"`
	ISBN          string     `json:"isbn" validate:"omitempty,isbn"`
	AuthorID      *uuid.UUID `json:"author_id"`
	PublishedYear *int       `json:"published_year" validate:"omitempty,min=0,max=9999"`
	Description   string     `json:"description" validate:"max=10000"`
}

// BookPatch carries only the fields present in a PATCH body. A book's author
// can be replaced through PATCH but only cleared through PUT.
type BookPatch struct {
	Title         *string    `json:"title" validate:"omitempty,min=1,max=255"`
	ISBN          *string    `json:"isbn" validate:"omitempty,isbn"`
	AuthorID      *uuid.UUID `json:"author_id"`
	PublishedYear *int       `json:"published_year" validate:"omitempty,min=0,max=9999"`
	Description   *string    `json:"description" validate:"omitempty,max=10000"`
}

func (p BookPatch) apply(b *Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.ISBN != nil {
		b.ISBN = *p.ISBN
	}
	if p.AuthorID != nil {
		b.AuthorID = p.AuthorID
	}
	if p.PublishedYear != nil {
		b.PublishedYear = p.PublishedYear
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
}

func (in BookInput) toBook() *Book {
	return &Book{
		Title:         in.Title,
		ISBN:          in.ISBN,
		AuthorID:      in.AuthorID,
		PublishedYear: in.PublishedYear,
		Description:   in.Description,
	}
}
