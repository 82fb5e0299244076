package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/library-api/internal/database"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrAuthorNotFound = errors.New("author not found")
)

// Repository handles book and author persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateAuthor(ctx context.Context, a *Author) error {
	now := time.Now().UTC()
	a.ID = uuid.New()
	a.CreatedAt, a.UpdatedAt = now, now

	if _, err := r.db.NewInsert().Model(authorToDB(a)).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}
	return nil
}

func (r *Repository) GetAuthor(ctx context.Context, id uuid.UUID) (*Author, error) {
	dbAuthor := new(database.Author)
	err := r.db.NewSelect().Model(dbAuthor).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return authorFromDB(dbAuthor), nil
}

func (r *Repository) AuthorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().Model((*database.Author)(nil)).Where("id = ?", id).Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check author: %w", err)
	}
	return exists, nil
}

func (r *Repository) ListAuthors(ctx context.Context, limit, offset int) ([]*Author, error) {
	var rows []database.Author
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}

	authors := make([]*Author, 0, len(rows))
	for i := range rows {
		authors = append(authors, authorFromDB(&rows[i]))
	}
	return authors, nil
}

// UpdateAuthor writes every mutable column of a
func (r *Repository) UpdateAuthor(ctx context.Context, a *Author) error {
	a.UpdatedAt = time.Now().UTC()
	result, err := r.db.NewUpdate().
		Model(authorToDB(a)).
		Column("name", "bio", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update author: %w", err)
	}
	return rowsAffected(result, ErrAuthorNotFound)
}

// DeleteAuthor removes the author and detaches its books in one transaction.
func (r *Repository) DeleteAuthor(ctx context.Context, id uuid.UUID) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().
			Model((*database.Book)(nil)).
			Set("author_id = NULL").
			Set("updated_at = ?", time.Now().UTC()).
			Where("author_id = ?", id).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to detach books: %w", err)
		}

		result, err := tx.NewDelete().Model((*database.Author)(nil)).Where("id = ?", id).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete author: %w", err)
		}
		return rowsAffected(result, ErrAuthorNotFound)
	})
}

func (r *Repository) CreateBook(ctx context.Context, b *Book) error {
	now := time.Now().UTC()
	b.ID = uuid.New()
	b.CreatedAt, b.UpdatedAt = now, now

	if _, err := r.db.NewInsert().Model(bookToDB(b)).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

func (r *Repository) GetBook(ctx context.Context, id uuid.UUID) (*Book, error) {
	dbBook := new(database.Book)
	err := r.db.NewSelect().Model(dbBook).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return bookFromDB(dbBook), nil
}

// ListBooks returns a page of books, optionally only those by authorID
func (r *Repository) ListBooks(ctx context.Context, authorID *uuid.UUID, limit, offset int) ([]*Book, error) {
	var rows []database.Book
	q := r.db.NewSelect().
		Model(&rows).
		OrderExpr("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset)
	if authorID != nil {
		q = q.Where("author_id = ?", *authorID)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	books := make([]*Book, 0, len(rows))
	for i := range rows {
		books = append(books, bookFromDB(&rows[i]))
	}
	return books, nil
}

// UpdateBook writes every mutable column of b
func (r *Repository) UpdateBook(ctx context.Context, b *Book) error {
	b.UpdatedAt = time.Now().UTC()
	result, err := r.db.NewUpdate().
		Model(bookToDB(b)).
		Column("title", "isbn", "author_id", "published_year", "description", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	return rowsAffected(result, ErrBookNotFound)
}

func (r *Repository) DeleteBook(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.NewDelete().Model((*database.Book)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return rowsAffected(result, ErrBookNotFound)
}

func rowsAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func authorToDB(a *Author) *database.Author {
	return &database.Author{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func authorFromDB(a *database.Author) *Author {
	return &Author{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func bookToDB(b *Book) *database.Book {
	return &database.Book{
		ID:            b.ID,
		Title:         b.Title,
		ISBN:          b.ISBN,
		AuthorID:      b.AuthorID,
		PublishedYear: b.PublishedYear,
		Description:   b.Description,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func bookFromDB(b *database.Book) *Book {
	return &Book{
		ID:            b.ID,
		Title:         b.Title,
		ISBN:          b.ISBN,
		AuthorID:      b.AuthorID,
		PublishedYear: b.PublishedYear,
		Description:   b.Description,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
