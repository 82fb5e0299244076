package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/redmonkez12/library-api/internal/auth"
	"github.com/redmonkez12/library-api/internal/catalog"
	"github.com/redmonkez12/library-api/internal/config"
	"github.com/redmonkez12/library-api/internal/httputil"
	"github.com/redmonkez12/library-api/internal/logging"
	"github.com/redmonkez12/library-api/internal/user"
)

// Handlers groups the resource handlers mounted by NewRouter
type Handlers struct {
	Auth    *auth.Handler
	Users   *user.Handler
	Catalog *catalog.Handler
}

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, checks map[string]HealthCheck, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	r.Use(SecurityHeaders(!cfg.Server.IsDevelopment()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.StripSlashes)
	r.Use(otelhttp.NewMiddleware(cfg.Telemetry.ServiceName))
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))

	r.Get("/health", healthHandler(checks))

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.Users.List)
		r.Post("/", h.Auth.CreateUser)
		r.Post("/generate_otp", h.Auth.GenerateOTP)
		r.Post("/verify_otp", h.Auth.VerifyOTP)
		r.Post("/change-password", h.Auth.ChangePassword)
		r.Post("/sign-in", h.Auth.SignIn)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Users.Get)
			r.Put("/", h.Users.Update)
			r.Delete("/", h.Users.Delete)
			r.Post("/set_phone_number", h.Auth.SetPhoneNumber)
		})
	})

	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.Catalog.ListBooks)
		r.Post("/", h.Catalog.CreateBook)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Catalog.GetBook)
			r.Put("/", h.Catalog.ReplaceBook)
			r.Patch("/", h.Catalog.PatchBook)
			r.Delete("/", h.Catalog.DeleteBook)
		})
	})

	r.Route("/authors", func(r chi.Router) {
		r.Get("/", h.Catalog.ListAuthors)
		r.Post("/", h.Catalog.CreateAuthor)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Catalog.GetAuthor)
			r.Put("/", h.Catalog.ReplaceAuthor)
			r.Patch("/", h.Catalog.PatchAuthor)
			r.Delete("/", h.Catalog.DeleteAuthor)
		})
	})

	return r
}

// HealthResponse lists the state of each dependency
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// healthHandler is the health check endpoint
// @Summary      Health check
// @Description  Reports whether the API and its database and cache are reachable
// @Tags         health
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := HealthResponse{Status: "api is running"}
		status := http.StatusOK

		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				logging.GetLoggerFromContext(r.Context()).Error("health check failed", "dependency", name, "error", err.Error())
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}

		httputil.RespondJSON(w, resp, status)
	}
}
