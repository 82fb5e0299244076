package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/redmonkez12/library-api/internal/auth"
	"github.com/redmonkez12/library-api/internal/catalog"
	"github.com/redmonkez12/library-api/internal/config"
	"github.com/redmonkez12/library-api/internal/database"
	"github.com/redmonkez12/library-api/internal/logging"
	"github.com/redmonkez12/library-api/internal/otp"
	"github.com/redmonkez12/library-api/internal/user"
	"github.com/redmonkez12/library-api/internal/validation"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []string
}

func (s *recordingSender) Send(_ context.Context, _, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

func (s *recordingSender) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.messages) == 0 {
		return ""
	}
	return s.messages[len(s.messages)-1]
}

func newTestServer(t *testing.T, checks map[string]HealthCheck) (http.Handler, *recordingSender) {
	t.Helper()
	ctx := context.Background()

	db, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.CreateSchema(ctx, db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	logger := logging.NewNopLogger()
	v := validation.New()
	sender := &recordingSender{}

	userRepo := user.NewRepository(db)
	manager := otp.NewManager(otp.NewRedisStore(rdb), otp.DefaultTTL, otp.DefaultMaxAttempts, otp.WithHashCost(bcrypt.MinCost))
	authService := auth.NewService(userRepo, manager, sender, v, logger)

	cfg := &config.Config{
		Server:    config.ServerConfig{Env: "prod"},
		Telemetry: config.TelemetryConfig{ServiceName: "library-api"},
	}
	router := NewRouter(cfg, Handlers{
		Auth:    auth.NewHandler(authService),
		Users:   user.NewHandler(userRepo, v),
		Catalog: catalog.NewHandler(catalog.NewService(catalog.NewRepository(db), v, logger)),
	}, checks, logger)

	return router, sender
}

func TestHealth(t *testing.T) {
	router, _ := newTestServer(t, map[string]HealthCheck{
		"database": func(context.Context) error { return nil },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"api is running","checks":{"database":"ok"}}`, rec.Body.String())
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestHealthDegraded(t *testing.T) {
	router, _ := newTestServer(t, map[string]HealthCheck{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"unavailable"`)
}

func TestSwaggerDisabledOutsideDev(t *testing.T) {
	router, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignupEndToEnd(t *testing.T) {
	router, sender := newTestServer(t, nil)
	signup := `{"username":"a","email":"a@example.com","password":"correct-horse","user_type":"student","phone_number":"+15551234567"}`

	// trailing slash is stripped before routing
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/generate_otp/", strings.NewReader(signup)))
	require.Equal(t, http.StatusOK, rec.Code)

	m := regexp.MustCompile(`^Your OTP code is (\d{6})$`).FindStringSubmatch(sender.last())
	require.Len(t, m, 2)

	rec = httptest.NewRecorder()
	body := `{"signUpData":` + signup + `,"otp":"` + m[1] + `"}`
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/verify_otp", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Status string    `json:"status"`
		User   user.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.True(t, created.User.IsOTPVerified)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+created.User.ID.String()+"/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/"+created.User.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCatalogRoutes(t *testing.T) {
	router, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/authors", strings.NewReader(`{"name":"N. K. Jemisin"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/authors/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jemisin")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/books", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
