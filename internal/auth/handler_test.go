package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/library-api/internal/httputil"
)

func newTestRouter(env *testEnv) http.Handler {
	h := NewHandler(env.svc)
	r := chi.NewRouter()
	r.Post("/users", h.CreateUser)
	r.Post("/users/generate_otp", h.GenerateOTP)
	r.Post("/users/verify_otp", h.VerifyOTP)
	r.Post("/users/change-password", h.ChangePassword)
	r.Post("/users/sign-in", h.SignIn)
	r.Post("/users/{id}/set_phone_number", h.SetPhoneNumber)
	return r
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var body httputil.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

const signupJSON = `{"username":"a","email":"a@example.com","password":"correct-horse","user_type":"student","phone_number":"+15551234567"}`

func TestHandlerSignupScenario(t *testing.T) {
	env := newTestEnv(t)
	router := newTestRouter(env)

	rec := post(t, router, "/users/generate_otp", signupJSON)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OTP sent"}`, rec.Body.String())

	code := env.sender.lastCode(t)
	assert.Regexp(t, `^\d{6}$`, code)

	// the code may arrive as a JSON number
	rec = post(t, router, "/users/verify_otp", `{"signUpData":`+signupJSON+`,"otp":`+code+`}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created UserCreatedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "OTP verified and user created", created.Status)
	assert.True(t, created.User.IsOTPVerified)
	assert.NotContains(t, rec.Body.String(), "correct-horse")
}

func TestHandlerVerifyErrors(t *testing.T) {
	env := newTestEnv(t)
	router := newTestRouter(env)

	rec := post(t, router, "/users/verify_otp", `{"otp":"123456"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request", decodeError(t, rec).Error)

	rec = post(t, router, "/users/verify_otp", `{"signUpData":`+signupJSON+`,"otp":"123456"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httputil.CodeOTPExpired, decodeError(t, rec).Code)

	require.Equal(t, http.StatusOK, post(t, router, "/users/generate_otp", signupJSON).Code)
	wrong := "100000"
	if env.sender.lastCode(t) == wrong {
		wrong = "100001"
	}
	rec = post(t, router, "/users/verify_otp", `{"signUpData":`+signupJSON+`,"otp":"`+wrong+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Invalid OTP", body.Error)
	assert.Equal(t, httputil.CodeInvalidOTP, body.Code)
}

func TestHandlerGenerateErrors(t *testing.T) {
	env := newTestEnv(t)
	router := newTestRouter(env)

	rec := post(t, router, "/users/generate_otp", `{"phone_number":"12"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httputil.CodeValidationFailed, decodeError(t, rec).Code)

	env.sender.err = errors.New("down")
	rec = post(t, router, "/users/generate_otp", signupJSON)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, httputil.CodeSMSDelivery, decodeError(t, rec).Code)
}

func TestHandlerCreateUser(t *testing.T) {
	env := newTestEnv(t)
	router := newTestRouter(env)

	rec := post(t, router, "/users", signupJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "OTP not verified", decodeError(t, rec).Error)

	withFlag := strings.TrimSuffix(signupJSON, "}") + `,"is_otp_verified":true}`
	rec = post(t, router, "/users", withFlag)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httputil.CodeOTPNotVerified, decodeError(t, rec).Code)
}

func TestHandlerSignInAndChangePassword(t *testing.T) {
	env := newTestEnv(t)
	router := newTestRouter(env)
	createUser(t, env, signupRequest())

	rec := post(t, router, "/users/sign-in", `{"username_or_email":"a@example.com","password":"correct-horse","user_type":"student"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var signedIn SuccessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&signedIn))
	assert.Equal(t, "Signed in successfully", signedIn.Success)
	assert.Equal(t, "a", signedIn.User.Username)

	rec = post(t, router, "/users/sign-in", `{"username_or_email":"a","password":"correct-horse","user_type":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid user type", decodeError(t, rec).Error)

	rec = post(t, router, "/users/sign-in", `{"username_or_email":"a","password":"nope","user_type":"student"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid username/email or password", decodeError(t, rec).Error)

	rec = post(t, router, "/users/change-password", `{"username":"a","current_password":"nope","new_password":"x","confirm_new_password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid username or current password", decodeError(t, rec).Error)

	rec = post(t, router, "/users/change-password", `{"username":"a","current_password":"correct-horse","new_password":"new-password-1","confirm_new_password":"other-password"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "New passwords do not match", decodeError(t, rec).Error)

	rec = post(t, router, "/users/change-password", `{"username":"a","current_password":"correct-horse","new_password":"new-password-1","confirm_new_password":"new-password-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":"Password changed successfully"}`, rec.Body.String())
}

func TestHandlerSetPhoneNumber(t *testing.T) {
	env := newTestEnv(t)
	router := newTestRouter(env)
	u := createUser(t, env, signupRequest())
	path := "/users/" + u.ID.String() + "/set_phone_number"

	rec := post(t, router, path, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "phone number not provided", decodeError(t, rec).Error)

	rec = post(t, router, path, `{"phone_number":"+15557654321"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"status":"OTP sent"}`, rec.Body.String())

	rec = post(t, router, path, `{"phone_number":"+15557654321","otp":"`+env.sender.lastCode(t)+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"phone number set"}`, rec.Body.String())

	rec = post(t, router, "/users/"+uuid.NewString()+"/set_phone_number", `{"phone_number":"+15557654321"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOTPCodeUnmarshal(t *testing.T) {
	var req SetPhoneNumberRequest
	require.NoError(t, json.Unmarshal([]byte(`{"otp":123456}`), &req))
	assert.Equal(t, OTPCode("123456"), req.OTP)

	require.NoError(t, json.Unmarshal([]byte(`{"otp":"654321"}`), &req))
	assert.Equal(t, OTPCode("654321"), req.OTP)

	assert.Error(t, json.Unmarshal([]byte(`{"otp":true}`), &req))
}
