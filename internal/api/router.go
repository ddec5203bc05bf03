package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/taskboard/taskboard/internal/api/handler"
	"github.com/taskboard/taskboard/internal/api/middleware"
	"github.com/taskboard/taskboard/internal/core/domain"
	"github.com/taskboard/taskboard/internal/core/ports"
)

// Dependencies is everything the router needs to serve requests.
type Dependencies struct {
	Log zerolog.Logger

	Tokens   ports.TokenManager
	Identity ports.IdentityResolver
	Guard    ports.Guard

	Auth     ports.AuthService
	Admin    ports.AdminService
	Todos    ports.TodoService
	Profile  ports.ProfileService
	Settings ports.SettingsService
	Uploads  ports.UploadService

	// Health maps a dependency name to its readiness check.
	Health map[string]handler.Pinger

	Cookie handler.CookieConfig
	// AuthRateLimit is the per-IP request rate allowed on login and
	// register, in requests per second. Zero disables the limiter.
	AuthRateLimit float64
	WebRoot       string
	UploadDir     string

	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(httpMetrics(d.Registry))
	e.Use(middleware.Session(d.Tokens, d.Cookie.Name))
	e.Use(middleware.Edge())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie)
	adminHandler := handler.NewAdminHandler(d.Admin)
	todoHandler := handler.NewTodoHandler(d.Todos)
	profileHandler := handler.NewProfileHandler(d.Profile)
	settingsHandler := handler.NewSettingsHandler(d.Settings)
	uploadHandler := handler.NewUploadHandler(d.Uploads)
	healthHandler := handler.NewHealthHandler(d.Health)
	pageHandler := handler.NewPageHandler(d.WebRoot)

	signedIn := middleware.RequireIdentity(d.Identity)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	limited := authLimiter(d.AuthRateLimit)
	auth.POST("/register", authHandler.Register, limited...)
	auth.POST("/login", authHandler.Login, limited...)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", authHandler.Session, signedIn)

	// --- Per-user routes ---
	user := e.Group("/api", signedIn)
	user.GET("/dashboard/summary", todoHandler.Summary)
	user.GET("/todos", todoHandler.List)
	user.POST("/todos", todoHandler.Create)
	user.GET("/todos/:id", todoHandler.Get)
	user.PATCH("/todos/:id", todoHandler.Update)
	user.DELETE("/todos/:id", todoHandler.Delete)
	user.GET("/profile", profileHandler.Get)
	user.PATCH("/profile", profileHandler.Update)
	user.POST("/upload", uploadHandler.Upload, echomiddleware.BodyLimit("6M"))
	user.GET("/settings/user-preferences", settingsHandler.Preferences)
	user.PATCH("/settings", settingsHandler.Update)

	// --- Admin routes ---
	admin := e.Group("/api/admin")
	requireAdmin := middleware.RequireRole(d.Guard, domain.RoleAdmin)
	requireSuperuser := middleware.RequireRole(d.Guard, domain.RoleSuperuser)
	admin.GET("/users", adminHandler.ListUsers, requireAdmin)
	admin.POST("/users", adminHandler.CreateUser, requireSuperuser)
	admin.GET("/users/:id", adminHandler.GetUser, requireAdmin)
	admin.PATCH("/users/:id", adminHandler.UpdateUser, requireAdmin)
	admin.DELETE("/users/:id", adminHandler.DeleteUser, requireSuperuser)
	admin.GET("/stats", adminHandler.Stats, requireAdmin)

	// --- Health probes and tooling (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", metricsHandler(d.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Pages ---
	if d.UploadDir != "" {
		e.Static("/uploads", d.UploadDir)
	}
	e.GET("/login", pageHandler.Shell)
	e.GET("/register", pageHandler.Shell)
	e.GET("/dashboard", pageHandler.Shell)
	e.GET("/dashboard/*", pageHandler.Shell)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
	})

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

func httpMetrics(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Namespace: "taskboard",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

// authLimiter throttles credential endpoints per client IP.
func authLimiter(perSecond float64) []echo.MiddlewareFunc {
	if perSecond <= 0 {
		return nil
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     5,
		ExpiresIn: 3 * time.Minute,
	})
	return []echo.MiddlewareFunc{echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, try again later")
		},
	})}
}
