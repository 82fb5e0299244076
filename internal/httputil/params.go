package httputil

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// ParseID reads the {id} URL parameter, writing a 404 when it is not a UUID.
func ParseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondErrorWithCode(w, "not found", CodeNotFound, http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// ParsePage reads the limit and offset query parameters. A zero or missing
// limit means DefaultListLimit.
func ParsePage(r *http.Request) (limit, offset int, ok bool) {
	limit = DefaultListLimit
	q := r.URL.Query()

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		if n > 0 {
			limit = min(n, MaxListLimit)
		}
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		offset = n
	}

	return limit, offset, true
}
