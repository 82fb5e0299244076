package catalog

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/redmonkez12/library-api/internal/httputil"
	"github.com/redmonkez12/library-api/internal/logging"
	"github.com/redmonkez12/library-api/internal/validation"
)

// Handler serves the books and authors resources
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListAuthors
// @Summary      List authors
// @Tags         authors
// @Produce      json
// @Param        limit  query int false "Page size"
// @Param        offset query int false "Rows to skip"
// @Success      200 {array} Author
// @Router       /authors [get]
func (h *Handler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := httputil.ParsePage(r)
	if !ok {
		httputil.RespondErrorWithCode(w, "limit and offset must be non-negative integers", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	authors, err := h.service.ListAuthors(r.Context(), limit, offset)
	if err != nil {
		respondError(w, r, "list authors failed", err)
		return
	}
	httputil.RespondJSON(w, authors, http.StatusOK)
}

// CreateAuthor
// @Summary      Create an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        request body AuthorInput true "Author"
// @Success      201 {object} Author
// @Failure      400 {object} httputil.ErrorResponse
// @Router       /authors [post]
func (h *Handler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var in AuthorInput
	if !decode(w, r, &in) {
		return
	}

	a, err := h.service.CreateAuthor(r.Context(), in)
	if err != nil {
		respondError(w, r, "create author failed", err)
		return
	}
	httputil.RespondJSON(w, a, http.StatusCreated)
}

// GetAuthor
// @Summary      Retrieve an author
// @Tags         authors
// @Produce      json
// @Param        id path string true "Author ID"
// @Success      200 {object} Author
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /authors/{id} [get]
func (h *Handler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r)
	if !ok {
		return
	}

	a, err := h.service.GetAuthor(r.Context(), id)
	if err != nil {
		respondError(w, r, "get author failed", err)
		return
	}
	httputil.RespondJSON(w, a, http.StatusOK)
}

// ReplaceAuthor
// @Summary      Replace an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id      path string      true "Author ID"
// @Param        request body AuthorInput true "Author"
// @Success      200 {object} Author
// @Failure      400 {object} httputil.ErrorResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /authors/{id} [put]
func (h *Handler) ReplaceAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r)
	if !ok {
		return
	}
	var in AuthorInput
	if !decode(w, r, &in) {
		return
	}

	a, err := h.service.ReplaceAuthor(r.Context(), id, in)
	if err != nil {
		respondError(w, r, "replace author failed", err)
		return
	}
	httputil.RespondJSON(w, a, http.StatusOK)
}

// PatchAuthor
// @Summary      Partially update an author
// @Tags         authors
// @Accept       json
// @Produce      json
// @Param        id      path string      true "Author ID"
// @Param        request body AuthorPatch true "Fields to change"
// @Success      200 {object} Author
// @Failure      400 {object} httputil.ErrorResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /authors/{id} [patch]
func (h *Handler) PatchAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r)
	if !ok {
		return
	}
	var patch AuthorPatch
	if !decode(w, r, &patch) {
		return
	}

	a, err := h.service.PatchAuthor(r.Context(), id, patch)
	if err != nil {
		respondError(w, r, "patch author failed", err)
		return
	}
	httputil.RespondJSON(w, a, http.StatusOK)
}

// DeleteAuthor
// @Summary      Delete an author
// @Description  Books by the author are kept with author_id cleared.
// @Tags         authors
// @Param        id path string true "Author ID"
// @Success      200
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /authors/{id} [delete]
func (h *Handler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteAuthor(r.Context(), id); err != nil {
		respondError(w, r, "delete author failed", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ListBooks
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        author_id query string false "Only books by this author"
// @Param        limit     query int    false "Page size"
// @Param        offset    query int    false "Rows to skip"
// @Success      200 {array} Book
// @Router       /books [get]
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := httputil.ParsePage(r)
	if !ok {
		httputil.RespondErrorWithCode(w, "limit and offset must be non-negative integers", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	var authorID *uuid.UUID
	if v := r.URL.Query().Get("author_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httputil.RespondValidationError(w, "validation failed", map[string][]string{"author_id": {"must be a valid UUID"}})
			return
		}
		authorID = &id
	}

	books, err := h.service.ListBooks(r.Context(), authorID, limit, offset)
	if err != nil {
		respondError(w, r, "list books failed", err)
		return
	}
	httputil.RespondJSON(w, books, http.StatusOK)
}

// CreateBook
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        request body BookInput true "Book"
// @Success      201 {object} Book
// @Failure      400 {object} httputil.ErrorResponse
// @Router       /books [post]
func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var in BookInput
	if !decode(w, r, &in) {
		return
	}

	b, err := h.service.CreateBook(r.Context(), in)
	if err != nil {
		respondError(w, r, "create book failed", err)
		return
	}
	httputil.RespondJSON(w, b, http.StatusCreated)
}

// GetBook
// @Summary      Retrieve a book
// @Tags         books
// @Produce      json
// @Param        id path string true "Book ID"
// @Success      200 {object} Book
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /books/{id} [get]
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r)
	if !ok {
		return
	}

	b, err := h.service.GetBook(r.Context(), id)
	if err != nil {
		respondError(w, r, "get book failed", err)
		return
	}
	httputil.RespondJSON(w, b, http.StatusOK)
}

// ReplaceBook
// @Summary      Replace a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id      path string    true "Book ID"
// @Param        request body BookInput true "Book"
// @Success      200 {object} Book
// @Failure      400 {object} httputil.ErrorResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /books/{id} [put]
func (h *Handler) ReplaceBook(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r)
	if !ok {
		return
	}
	var in BookInput
	if !decode(w, r, &in) {
		return
	}

	b, err := h.service.ReplaceBook(r.Context(), id, in)
	if err != nil {
		respondError(w, r, "replace book failed", err)
		return
	}
	httputil.RespondJSON(w, b, http.StatusOK)
}

// PatchBook
// @Summary      Partially update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id      path string    true "Book ID"
// @Param        request body BookPatch true "Fields to change"
// @Success      200 {object} Book
// @Failure      400 {object} httputil.ErrorResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /books/{id} [patch]
func (h *Handler) PatchBook(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r)
	if !ok {
		return
	}
	var patch BookPatch
	if !decode(w, r, &patch) {
		return
	}

	b, err := h.service.PatchBook(r.Context(), id, patch)
	if err != nil {
		respondError(w, r, "patch book failed", err)
		return
	}
	httputil.RespondJSON(w, b, http.StatusOK)
}

// DeleteBook
// @Summary      Delete a book
// @Tags         books
// @Param        id path string true "Book ID"
// @Success      200
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /books/{id} [delete]
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteBook(r.Context(), id); err != nil {
		respondError(w, r, "delete book failed", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httputil.DecodeJSON(r, dst); err != nil {
		logging.GetLoggerFromContext(r.Context()).Warn("invalid request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return false
	}
	return true
}

func respondError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger := logging.GetLoggerFromContext(r.Context())

	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		logger.Warn(msg, "error", err.Error())
		httputil.RespondValidationError(w, "validation failed", verr.Fields)
	case errors.Is(err, ErrBookNotFound), errors.Is(err, ErrAuthorNotFound):
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeNotFound, http.StatusNotFound)
	default:
		logger.Error(msg, "error", err.Error())
		httputil.RespondErrorWithCode(w, "internal server error", httputil.CodeInternalError, http.StatusInternalServerError)
	}
}
