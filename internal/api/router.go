package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/tutorlink/tutorlink-api/internal/api/handler"
	"github.com/tutorlink/tutorlink-api/internal/api/middleware"
	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Accounts  ports.AccountService
	Resets    ports.PasswordResetService
	Directory ports.TutorDirectory
	Sessions  ports.SessionIssuer

	// RateCounter must be a nil interface to disable rate limiting.
	RateCounter   middleware.WindowCounter
	AuthRateLimit int

	HealthChecks map[string]handler.DependencyCheck

	// MetricsRegisterer receives the HTTP request metrics; nil means the
	// default Prometheus registerer.
	MetricsRegisterer prometheus.Registerer

	JWTSecret string
	ResetURL  string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "tutorlink",
		Registerer: deps.MetricsRegisterer,
	}))

	authHandler := handler.NewAuthHandler(deps.Accounts, deps.Resets, deps.Sessions, deps.ResetURL)
	profileHandler := handler.NewProfileHandler(deps.Accounts)
	tutorHandler := handler.NewTutorHandler(deps.Directory)
	adminHandler := handler.NewAdminHandler(deps.Accounts)

	limited := middleware.RateLimit(deps.RateCounter, deps.AuthRateLimit, deps.Log)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login, limited)
	auth.POST("/password/forgot", authHandler.ForgotPassword, limited)
	auth.POST("/password/reset", authHandler.ResetPassword, limited)

	// --- API v1 ---
	v1 := e.Group("/v1")
	v1.GET("/tutors", tutorHandler.Search)
	v1.GET("/tutors/skills", tutorHandler.Skills)
	v1.GET("/tutors/:id", tutorHandler.Details)

	authed := middleware.Auth(deps.JWTSecret)
	active := middleware.ActiveAccount(deps.Accounts)
	me := v1.Group("/me", authed)
	me.GET("", profileHandler.Me)
	me.PUT("/tutor-profile", profileHandler.UpdateTutorProfile, active, middleware.RBAC(domain.RoleTutor))

	admin := v1.Group("/admin", authed, active, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PUT("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

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
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
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
