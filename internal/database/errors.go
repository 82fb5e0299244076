package database

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// UniqueViolation reports whether err is a unique constraint violation and,
// when it can tell, the name of the offending column.
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code != "23505" {
			return "", false
		}
		// postgres names the constraint <table>_<column>_key
		column := strings.TrimSuffix(pqErr.Constraint, "_key")
		column = strings.TrimPrefix(column, pqErr.Table+"_")
		return column, true
	}

	// sqlite: "UNIQUE constraint failed: users.username"
	msg := err.Error()
	if _, rest, ok := strings.Cut(msg, "UNIQUE constraint failed: "); ok {
		target := strings.Fields(rest)
		if len(target) == 0 {
			return "", true
		}
		_, column, _ := strings.Cut(strings.TrimRight(target[0], ",)"), ".")
		return column, true
	}

	if strings.Contains(msg, "duplicate key value violates unique constraint") {
		return "", true
	}

	return "", false
}
