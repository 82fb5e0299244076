package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/redmonkez12/library-api/internal/httputil"
	"github.com/redmonkez12/library-api/internal/logging"
	"github.com/redmonkez12/library-api/internal/otp"
	"github.com/redmonkez12/library-api/internal/user"
	"github.com/redmonkez12/library-api/internal/validation"
)

// Handler contains HTTP handlers for the signup and account endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// OTPCode accepts the code as a JSON string or number.
type OTPCode string

func (c *OTPCode) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = OTPCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = OTPCode(n.String())
	return nil
}

// VerifyOTPRequest represents the verify_otp request body
type VerifyOTPRequest struct {
	SignUpData *SignupRequest `json:"signUpData"`
	OTP        OTPCode        `json:"otp"`
}

// CreateUserRequest is a signup payload plus the client's verification claim
type CreateUserRequest struct {
	SignupRequest
	IsOTPVerified bool `json:"is_otp_verified"`
}

// SignInRequest represents the sign-in request body
type SignInRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
	UserType        string `json:"user_type"`
}

// SetPhoneNumberRequest represents the set_phone_number request body.
// Omitting otp starts the change by sending a code to phone_number.
type SetPhoneNumberRequest struct {
	PhoneNumber string  `json:"phone_number"`
	OTP         OTPCode `json:"otp,omitempty"`
}

// UserCreatedResponse is returned when verification creates an account
type UserCreatedResponse struct {
	Status string     `json:"status"`
	User   *user.User `json:"user"`
}

// SuccessResponse mirrors {"success": message, "user": ...}
type SuccessResponse struct {
	Success string     `json:"success"`
	User    *user.User `json:"user,omitempty"`
}

// GenerateOTP handles POST /users/generate_otp
// @Summary      Send a signup OTP
// @Description  Caches the signup payload with a 6-digit code valid for 90 seconds and texts the code to phone_number.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup payload"
// @Success      200 {object} httputil.StatusResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or phone number"
// @Failure      502 {object} httputil.ErrorResponse "SMS gateway failure"
// @Router       /users/generate_otp [post]
func (h *Handler) GenerateOTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req SignupRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid generate_otp request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := h.service.GenerateSignupOTP(r.Context(), req); err != nil {
		respondServiceError(w, r, "generate otp failed", err)
		return
	}

	logger.Info("signup otp sent")
	httputil.RespondStatus(w, "OTP sent", http.StatusOK)
}

// VerifyOTP handles POST /users/verify_otp
// @Summary      Verify a signup OTP and create the user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body VerifyOTPRequest true "Signup data and code"
// @Success      201 {object} UserCreatedResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request, invalid or expired OTP, or invalid cached payload"
// @Failure      409 {object} httputil.ErrorResponse "Username or email already exists"
// @Router       /users/verify_otp [post]
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req VerifyOTPRequest
	if err := httputil.DecodeJSON(r, &req); err != nil || req.SignUpData == nil {
		logger.Warn("invalid verify_otp request body")
		httputil.RespondErrorWithCode(w, "Invalid request", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	newUser, err := h.service.VerifySignupOTP(r.Context(), req.SignUpData.PhoneNumber, string(req.OTP))
	if err != nil {
		respondServiceError(w, r, "verify otp failed", err)
		return
	}

	logger.Info("otp verified and user created", "user_id", newUser.ID)
	httputil.RespondJSON(w, UserCreatedResponse{Status: "OTP verified and user created", User: newUser}, http.StatusCreated)
}

// CreateUser handles POST /users
// @Summary      Create a user after OTP verification
// @Description  Requires is_otp_verified and a verified signup OTP for phone_number.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "Signup payload"
// @Success      201 {object} user.User
// @Failure      400 {object} httputil.ErrorResponse "OTP not verified or validation error"
// @Failure      409 {object} httputil.ErrorResponse "Username or email already exists"
// @Router       /users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req CreateUserRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid create user request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	newUser, err := h.service.CreateUser(r.Context(), req.SignupRequest, req.IsOTPVerified)
	if err != nil {
		respondServiceError(w, r, "create user failed", err)
		return
	}

	httputil.RespondJSON(w, newUser, http.StatusCreated)
}

// ChangePassword handles POST /users/change-password
// @Summary      Change a password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Current and new passwords"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid credentials, mismatch or weak password"
// @Router       /users/change-password [post]
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ChangePasswordRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid change password request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := h.service.ChangePassword(r.Context(), req); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("change password failed: invalid credentials")
			httputil.RespondErrorWithCode(w, "Invalid username or current password", httputil.CodeInvalidCredentials, http.StatusBadRequest)
			return
		}
		respondServiceError(w, r, "change password failed", err)
		return
	}

	httputil.RespondJSON(w, SuccessResponse{Success: "Password changed successfully"}, http.StatusOK)
}

// SignIn handles POST /users/sign-in
// @Summary      Sign in with username or email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body SignInRequest true "Credentials"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid credentials or user type"
// @Router       /users/sign-in [post]
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req SignInRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid sign-in request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	u, err := h.service.SignIn(r.Context(), req.UsernameOrEmail, req.Password, req.UserType)
	if err != nil {
		respondServiceError(w, r, "sign-in failed", err)
		return
	}

	logger.Info("user signed in", "user_id", u.ID)
	httputil.RespondJSON(w, SuccessResponse{Success: "Signed in successfully", User: u}, http.StatusOK)
}

// SetPhoneNumber handles POST /users/{id}/set_phone_number
// @Summary      Change a user's phone number
// @Description  Without otp a code is sent to phone_number (202). With otp the number is verified and stored (200).
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string                true "User ID"
// @Param        request body SetPhoneNumberRequest true "New phone number and optional code"
// @Success      200 {object} httputil.StatusResponse
// @Success      202 {object} httputil.StatusResponse
// @Failure      400 {object} httputil.ErrorResponse
// @Failure      404 {object} httputil.ErrorResponse
// @Failure      502 {object} httputil.ErrorResponse
// @Router       /users/{id}/set_phone_number [post]
func (h *Handler) SetPhoneNumber(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, ok := httputil.ParseID(w, r)
	if !ok {
		return
	}

	var req SetPhoneNumberRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid set_phone_number request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	codeSent, err := h.service.SetPhoneNumber(r.Context(), id, req.PhoneNumber, string(req.OTP))
	if err != nil {
		respondServiceError(w, r, "set phone number failed", err)
		return
	}

	if codeSent {
		httputil.RespondStatus(w, "OTP sent", http.StatusAccepted)
		return
	}
	httputil.RespondStatus(w, "phone number set", http.StatusOK)
}

// respondServiceError maps service errors onto status codes. Expected
// failures log at warn, anything unrecognised at error with a 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger := logging.GetLoggerFromContext(r.Context())

	var verr *validation.Error
	if errors.As(err, &verr) {
		logger.Warn(msg+": validation error", "error", err.Error())
		httputil.RespondValidationError(w, "validation failed", verr.Fields)
		return
	}

	status, code, message := classify(err)
	if status == http.StatusInternalServerError {
		logger.Error(msg+": internal error", "error", err.Error())
	} else {
		logger.Warn(msg, "error", err.Error())
	}
	httputil.RespondErrorWithCode(w, message, code, status)
}

func classify(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		return http.StatusNotFound, httputil.CodeNotFound, "user not found"
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest, httputil.CodeInvalidCredentials, "Invalid username/email or password"
	case errors.Is(err, ErrInvalidUserType):
		return http.StatusBadRequest, httputil.CodeInvalidUserType, "Invalid user type"
	case errors.Is(err, otp.ErrInvalidOTP):
		return http.StatusBadRequest, httputil.CodeInvalidOTP, "Invalid OTP"
	case errors.Is(err, otp.ErrOTPExpired):
		return http.StatusBadRequest, httputil.CodeOTPExpired, "Invalid or expired OTP"
	case errors.Is(err, otp.ErrTooManyAttempts):
		return http.StatusBadRequest, httputil.CodeTooManyAttempts, "Too many failed attempts, request a new OTP"
	case errors.Is(err, ErrOTPNotVerified):
		return http.StatusBadRequest, httputil.CodeOTPNotVerified, "OTP not verified"
	case errors.Is(err, ErrPasswordMismatch):
		return http.StatusBadRequest, httputil.CodePasswordMismatch, "New passwords do not match"
	case errors.Is(err, ErrPhoneMismatch):
		return http.StatusBadRequest, httputil.CodePhoneMismatch, "phone number does not match the OTP"
	case errors.Is(err, ErrPhoneRequired):
		return http.StatusBadRequest, httputil.CodePhoneRequired, "phone number not provided"
	case errors.Is(err, user.ErrDuplicateUsername):
		return http.StatusConflict, httputil.CodeDuplicateUsername, "username already exists"
	case errors.Is(err, user.ErrDuplicateEmail):
		return http.StatusConflict, httputil.CodeDuplicateEmail, "email already exists"
	case errors.Is(err, ErrSMSDelivery):
		return http.StatusBadGateway, httputil.CodeSMSDelivery, "failed to send OTP"
	default:
		return http.StatusInternalServerError, httputil.CodeInternalError, "internal server error"
	}
}
