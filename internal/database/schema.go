package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateSchema creates the users, authors and books tables if they are
// missing. Authors come before books because of the foreign key.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*Author)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create authors table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*Book)(nil)).
		IfNotExists().
		ForeignKey(`("author_id") REFERENCES "authors" ("id") ON DELETE SET NULL`).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create books table: %w", err)
	}

	return nil
}

// DropSchema removes every table created by CreateSchema.
func DropSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{(*Book)(nil), (*Author)(nil), (*User)(nil)} {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
