package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/library-api/internal/database"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.CreateSchema(ctx, db))
	return db
}

func sampleParams(username, email string) CreateParams {
	return CreateParams{
		Username:      username,
		Email:         email,
		PasswordHash:  "hash",
		PhoneNumber:   "+15551234567",
		UserType:      "STUDENT",
		IsOTPVerified: true,
		FirstName:     "Ada",
		LastName:      "Lovelace",
	}
}

func TestRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t))

	created, err := repo.Create(ctx, sampleParams("ada", "ada@example.com"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", byID.Username)
	assert.True(t, byID.IsOTPVerified)
	assert.Equal(t, "hash", byID.PasswordHash)

	byName, err := repo.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t))

	_, err := repo.Create(ctx, sampleParams("ada", "ada@example.com"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, sampleParams("ada", "other@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = repo.Create(ctx, sampleParams("grace", "ada@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRepositoryUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t))

	u, err := repo.Create(ctx, sampleParams("ada", "ada@example.com"))
	require.NoError(t, err)

	updated, err := repo.Update(ctx, u.ID, UpdateParams{
		Username: "ada2", Email: "ada2@example.com", UserType: "TEACHER", FirstName: "A", LastName: "L",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada2", updated.Username)
	assert.Equal(t, "TEACHER", updated.UserType)
	assert.Equal(t, "+15551234567", updated.PhoneNumber)

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "new-hash"))
	require.NoError(t, repo.UpdatePhoneNumber(ctx, u.ID, "+15557654321"))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.Equal(t, "+15557654321", got.PhoneNumber)

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), ErrNotFound)
	assert.ErrorIs(t, repo.UpdatePassword(ctx, u.ID, "x"), ErrNotFound)

	_, err = repo.Update(ctx, uuid.New(), UpdateParams{Username: "x", Email: "x@example.com", UserType: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(newTestDB(t))

	for _, name := range []string{"a", "b", "c"} {
		_, err := repo.Create(ctx, sampleParams(name, name+"@example.com"))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
