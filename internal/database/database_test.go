package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, CreateSchema(ctx, db))
	require.NoError(t, CreateSchema(ctx, db))
	t.Cleanup(func() { _ = DropSchema(ctx, db) })

	now := time.Now().UTC()
	u := &User{ID: uuid.New(), Username: "alice", Email: "a@example.com", CreatedAt: now, UpdatedAt: now}
	_, err = db.NewInsert().Model(u).Exec(ctx)
	require.NoError(t, err)

	dup := &User{ID: uuid.New(), Username: "alice", Email: "b@example.com", CreatedAt: now, UpdatedAt: now}
	_, err = db.NewInsert().Model(dup).Exec(ctx)
	require.Error(t, err)

	column, ok := UniqueViolation(err)
	assert.True(t, ok)
	assert.Equal(t, "username", column)
}

func TestUniqueViolation(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		column string
		ok     bool
	}{
		{"nil", nil, "", false},
		{"unrelated", errors.New("connection refused"), "", false},
		{
			"postgres",
			fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Table: "users", Constraint: "users_email_key"}),
			"email", true,
		},
		{"postgres other code", &pq.Error{Code: "23503"}, "", false},
		{"sqlite", errors.New("constraint failed: UNIQUE constraint failed: users.username (2067)"), "username", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			column, ok := UniqueViolation(tt.err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.column, column)
		})
	}
}
