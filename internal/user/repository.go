package user

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
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

// Repository handles user data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, params CreateParams) (*User, error) {
	now := time.Now().UTC()
	dbUser := &database.User{
		ID:            uuid.New(),
		Username:      params.Username,
		Email:         params.Email,
		PasswordHash:  params.PasswordHash,
		PhoneNumber:   params.PhoneNumber,
		UserType:      params.UserType,
		IsOTPVerified: params.IsOTPVerified,
		FirstName:     params.FirstName,
		LastName:      params.LastName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := r.db.NewInsert().Model(dbUser).Exec(ctx); err != nil {
		if dupErr := duplicateError(err); dupErr != nil {
			return nil, dupErr
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// GetByID retrieves a user by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.getBy(ctx, "id", id)
}

// GetByUsername retrieves a user by username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail retrieves a user by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *Repository) getBy(ctx context.Context, column string, value any) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		Where("? = ?", bun.Ident(column), value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}

	return mapDBUserToModel(dbUser), nil
}

// List returns users ordered by creation time
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*User, error) {
	var dbUsers []database.User
	err := r.db.NewSelect().
		Model(&dbUsers).
		OrderExpr("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, mapDBUserToModel(&dbUsers[i]))
	}
	return users, nil
}

// Update overwrites the profile fields of a user
func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*User, error) {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("username = ?", params.Username).
		Set("email = ?", params.Email).
		Set("user_type = ?", params.UserType).
		Set("first_name = ?", params.FirstName).
		Set("last_name = ?", params.LastName).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		if dupErr := duplicateError(err); dupErr != nil {
			return nil, dupErr
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if err := checkRowsAffected(result); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// UpdatePassword updates a user's password hash
func (r *Repository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return checkRowsAffected(result)
}

// UpdatePhoneNumber replaces the stored phone number
func (r *Repository) UpdatePhoneNumber(ctx context.Context, userID uuid.UUID, phoneNumber string) error {
	result, err := r.db.NewUpdate().
		Model((*database.User)(nil)).
		Set("phone_number = ?", phoneNumber).
		Set("updated_at = ?", time.Now().UTC()).
		Where("id = ?", userID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to update phone number: %w", err)
	}

	return checkRowsAffected(result)
}

// Delete removes a user
func (r *Repository) Delete(ctx context.Context, userID uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.User)(nil)).
		Where("id = ?", userID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return checkRowsAffected(result)
}

func checkRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func duplicateError(err error) error {
	column, ok := database.UniqueViolation(err)
	if !ok {
		return nil
	}
	if column == "email" {
		return ErrDuplicateEmail
	}
	return ErrDuplicateUsername
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:            dbu.ID,
		Username:      dbu.Username,
		Email:         dbu.Email,
		PasswordHash:  dbu.PasswordHash,
		PhoneNumber:   dbu.PhoneNumber,
		UserType:      dbu.UserType,
		IsOTPVerified: dbu.IsOTPVerified,
		FirstName:     dbu.FirstName,
		LastName:      dbu.LastName,
		CreatedAt:     dbu.CreatedAt,
		UpdatedAt:     dbu.UpdatedAt,
	}
}
