package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/talentbridge/referral-system/internal/api/handler"
	"github.com/talentbridge/referral-system/internal/api/middleware"
	"github.com/talentbridge/referral-system/internal/core/access"
	"github.com/talentbridge/referral-system/internal/core/ports"
	"github.com/talentbridge/referral-system/internal/infrastructure/http/handlers"

	_ "github.com/talentbridge/referral-system/docs"
)

const bannerMessage = "Candidate Referral Management System API is running"

// Dependencies are the services and probes the router exposes.
type Dependencies struct {
	Auth       ports.AuthService
	Candidates ports.CandidateService
	Analytics  ports.AnalyticsService
	Tokens     middleware.TokenVerifier
	Readiness  []handlers.Check
	Log        zerolog.Logger
	// Registry receives the HTTP request metrics. Defaults to the global
	// Prometheus registry, which also holds the custom metrics.
	Registry *prometheus.Registry
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
	e.Use(echomiddleware.CORS())
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "referral",
		Registerer: registerer(deps.Registry),
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	candidateHandler := handler.NewCandidateHandler(deps.Candidates)
	analyticsHandler := handler.NewAnalyticsHandler(deps.Analytics)
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness...)
	authMiddleware := middleware.Auth(deps.Tokens)

	// --- Public routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.Response{Success: true, Message: bannerMessage})
	})
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer(deps.Registry),
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Candidate routes ---
	candidates := e.Group("/candidates", authMiddleware)
	candidates.GET("", candidateHandler.List, middleware.RequireAction(access.ListCandidates))
	candidates.POST("", candidateHandler.Create, middleware.RequireAction(access.CreateCandidate))
	candidates.GET("/stats", analyticsHandler.MyStats, middleware.RequireAction(access.ViewPersonalStats))
	candidates.PUT("/:id/status", candidateHandler.UpdateStatus, middleware.RequireAction(access.UpdateCandidateStatus))
	candidates.DELETE("/:id", candidateHandler.Delete, middleware.RequireAction(access.DeleteCandidate))

	// --- Analytics routes ---
	analytics := e.Group("/analytics", authMiddleware)
	analytics.GET("/status-distribution", analyticsHandler.StatusDistribution, middleware.RequireAction(access.ViewStatusDistribution))
	analytics.GET("/my-stats", analyticsHandler.MyStats, middleware.RequireAction(access.ViewPersonalStats))
	analytics.GET("/recruiter-performance", analyticsHandler.RecruiterPerformance, middleware.RequireAction(access.ViewRecruiterPerformance))

	return e
}

func registerer(r *prometheus.Registry) prometheus.Registerer {
	if r == nil {
		return prometheus.DefaultRegisterer
	}
	return r
}

func gatherer(r *prometheus.Registry) prometheus.Gatherer {
	if r == nil {
		return prometheus.DefaultGatherer
	}
	return r
}

// requestLogger writes one structured access log line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
