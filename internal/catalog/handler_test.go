package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	h := NewHandler(newTestService(t))
	r := chi.NewRouter()
	r.Route("/authors", func(r chi.Router) {
		r.Get("/", h.ListAuthors)
		r.Post("/", h.CreateAuthor)
		r.Get("/{id}", h.GetAuthor)
		r.Put("/{id}", h.ReplaceAuthor)
		r.Patch("/{id}", h.PatchAuthor)
		r.Delete("/{id}", h.DeleteAuthor)
	})
	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.ListBooks)
		r.Post("/", h.CreateBook)
		r.Get("/{id}", h.GetBook)
		r.Put("/{id}", h.ReplaceBook)
		r.Patch("/{id}", h.PatchBook)
		r.Delete("/{id}", h.DeleteBook)
	})
	return r
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestHandlerBooksAndAuthors(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodPost, "/authors", `{"name":"Frank Herbert"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var a Author
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&a))

	rec = do(router, http.MethodPost, "/books", `{"title":"Dune","author_id":"`+a.ID.String()+`","published_year":1965}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var b Book
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&b))

	rec = do(router, http.MethodGet, "/books?author_id="+a.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var books []Book
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&books))
	assert.Len(t, books, 1)

	rec = do(router, http.MethodPatch, "/books/"+b.ID.String(), `{"title":"Dune (1965)"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dune (1965)")

	rec = do(router, http.MethodPut, "/authors/"+a.ID.String(), `{"name":"F. Herbert","bio":"b"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodDelete, "/books/"+b.ID.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/books/"+b.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodDelete, "/authors/"+a.ID.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerCatalogErrors(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodPost, "/books", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title"`)

	rec = do(router, http.MethodPost, "/books", `{"title":"x","author_id":"`+uuid.NewString()+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "author does not exist")

	rec = do(router, http.MethodPost, "/authors", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/authors/not-a-uuid", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodGet, "/books?author_id=nope", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodPatch, "/authors/"+uuid.NewString(), `{"bio":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
