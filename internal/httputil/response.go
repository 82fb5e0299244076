package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Machine-readable error codes returned in ErrorResponse.Code
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidUserType    = "INVALID_USER_TYPE"
	CodeInvalidOTP         = "INVALID_OTP"
	CodeOTPExpired         = "OTP_EXPIRED"
	CodeTooManyAttempts    = "OTP_TOO_MANY_ATTEMPTS"
	CodeOTPNotVerified     = "OTP_NOT_VERIFIED"
	CodePasswordMismatch   = "PASSWORD_MISMATCH"
	CodePhoneMismatch      = "PHONE_MISMATCH"
	CodePhoneRequired      = "PHONE_REQUIRED"
	CodeDuplicateUsername  = "DUPLICATE_USERNAME"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeSMSDelivery        = "SMS_DELIVERY_FAILED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// StatusResponse is the body of endpoints that only report an outcome
type StatusResponse struct {
	Status string `json:"status"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err.Error())
	}
}

// RespondStatus sends {"status": message}
func RespondStatus(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, StatusResponse{Status: message}, statusCode)
}

// RespondError sends a JSON error response with the given message and status code.
func RespondError(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: message}, statusCode)
}

// RespondErrorWithCode sends a JSON error response with a machine-readable error code.
func RespondErrorWithCode(w http.ResponseWriter, message string, code string, statusCode int) {
	RespondJSON(w, ErrorResponse{Error: message, Code: code}, statusCode)
}

// RespondValidationError sends a 400 with per-field messages.
func RespondValidationError(w http.ResponseWriter, message string, fields map[string][]string) {
	RespondJSON(w, ErrorResponse{Error: message, Code: CodeValidationFailed, Fields: fields}, http.StatusBadRequest)
}

// DecodeJSON decodes the request body into dst, rejecting trailing data.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errTrailingData
	}
	return nil
}
