package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		query  string
		limit  int
		offset int
		ok     bool
	}{
		{"", DefaultListLimit, 0, true},
		{"limit=10&offset=20", 10, 20, true},
		{"limit=0", DefaultListLimit, 0, true},
		{"limit=100000", MaxListLimit, 0, true},
		{"limit=-1", 0, 0, false},
		{"offset=abc", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/books?"+tt.query, nil)
			limit, offset, ok := ParsePage(r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.limit, limit)
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestParseID(t *testing.T) {
	id := uuid.New()
	rec := httptest.NewRecorder()
	got, ok := ParseID(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", id.String()))
	assert.True(t, ok)
	assert.Equal(t, id, got)

	rec = httptest.NewRecorder()
	_, ok = ParseID(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "42"))
	assert.False(t, ok)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
