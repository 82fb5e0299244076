package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/redmonkez12/library-api/internal/httputil"
	"github.com/redmonkez12/library-api/internal/logging"
	"github.com/redmonkez12/library-api/internal/validation"
)

// Handler serves the users resource. Creation goes through the signup flow.
type Handler struct {
	repo      *Repository
	validator *validation.Validator
}

func NewHandler(repo *Repository, validator *validation.Validator) *Handler {
	return &Handler{repo: repo, validator: validator}
}

// List returns a page of users
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        limit  query int false "Page size (default 50, max 200)"
// @Param        offset query int false "Rows to skip"
// @Success      200 {array}  User
// @Failure      400 {object} httputil.ErrorResponse
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	limit, offset, ok := httputil.ParsePage(r)
	if !ok {
		httputil.RespondErrorWithCode(w, "limit and offset must be non-negative integers", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	users, err := h.repo.List(r.Context(), limit, offset)
	if err != nil {
		logger.Error("failed to list users", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list users", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, users, http.StatusOK)
}

// Get returns a single user
// @Summary      Retrieve a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} User
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /users/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r)
	if !ok {
		return
	}

	u, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.respondRepoError(w, r, "failed to get user", err)
		return
	}

	httputil.RespondJSON(w, u, http.StatusOK)
}

// Update replaces the profile fields of a user
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string       true "User ID"
// @Param        request body UpdateParams true "Profile fields"
// @Success      200 {object} User
// @Failure      400 {object} httputil.ErrorResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Failure      409 {object} httputil.ErrorResponse
// @Router       /users/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, ok := httputil.ParseID(w, r)
	if !ok {
		return
	}

	var req UpdateParams
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid user update body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			httputil.RespondValidationError(w, "validation failed", verr.Fields)
			return
		}
		logger.Error("failed to validate user update", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to update user", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	req.UserType = strings.ToUpper(req.UserType)

	u, err := h.repo.Update(r.Context(), id, req)
	if err != nil {
		h.respondRepoError(w, r, "failed to update user", err)
		return
	}

	logger.Info("user updated", "user_id", u.ID)
	httputil.RespondJSON(w, u, http.StatusOK)
}

// Delete removes a user
// @Summary      Delete a user
// @Tags         users
// @Param        id path string true "User ID"
// @Success      204
// @Failure      404 {object} httputil.ErrorResponse
// @Router       /users/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.respondRepoError(w, r, "failed to delete user", err)
		return
	}

	logging.GetLoggerFromContext(r.Context()).Info("user deleted", "user_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondRepoError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger := logging.GetLoggerFromContext(r.Context())

	switch {
	case errors.Is(err, ErrNotFound):
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeNotFound, http.StatusNotFound)
	case errors.Is(err, ErrDuplicateUsername):
		logger.Warn(msg, "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeDuplicateUsername, http.StatusConflict)
	case errors.Is(err, ErrDuplicateEmail):
		logger.Warn(msg, "error", err.Error())
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeDuplicateEmail, http.StatusConflict)
	default:
		logger.Error(msg, "error", err.Error())
		httputil.RespondErrorWithCode(w, msg, httputil.CodeInternalError, http.StatusInternalServerError)
	}
}
