package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/inkpost/blog-api/docs"
	"github.com/inkpost/blog-api/internal/api/handler"
	"github.com/inkpost/blog-api/internal/api/metrics"
	"github.com/inkpost/blog-api/internal/api/middleware"
	"github.com/inkpost/blog-api/internal/core/ports"
)

// LegacyPrefix mirrors every API route for clients of the legacy /api paths.
const LegacyPrefix = "/api"

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Logger   zerolog.Logger
	Verifier ports.TokenVerifier
	Auth     ports.AuthService
	Users    ports.UserService
	Articles ports.ArticleService
	Comments ports.CommentService

	// Readiness lists the checks behind GET /health/ready.
	Readiness []handler.Dependency

	AllowedOrigins []string
	// RequestTimeout bounds the request context; zero disables it.
	RequestTimeout time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.DefaultSecureConfig))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.AllowedOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			handler.HeaderIdempotencyKey,
		},
		ExposeHeaders: []string{echo.HeaderXRequestID, handler.HeaderIdempotentReplay},
	}))
	e.Use(echomiddleware.BodyLimit("1M"))
	if deps.RequestTimeout > 0 {
		e.Use(echomiddleware.ContextTimeoutWithConfig(echomiddleware.ContextTimeoutConfig{
			Timeout: deps.RequestTimeout,
		}))
	}
	e.Use(metrics.Middleware("/metrics", "/health", "/health/ready"))

	// --- Health probes, metrics and docs (no auth required) ---
	health := handler.NewHealthHandler(deps.Logger, deps.Readiness...)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	registerRoutes(e.Group(""), deps)
	registerRoutes(e.Group(LegacyPrefix), deps)

	return e
}

func registerRoutes(g *echo.Group, deps Dependencies) {
	authn := middleware.Authenticate(deps.Verifier)
	admin := middleware.RequireAdmin()

	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	articleHandler := handler.NewArticleHandler(deps.Articles)
	commentHandler := handler.NewCommentHandler(deps.Comments)

	// --- Auth ---
	g.POST("/auth/register", authHandler.Register)
	g.POST("/auth/login", authHandler.Login)

	// --- Users (authenticated) ---
	g.GET("/users", userHandler.List, authn, admin)
	g.GET("/users/:id", userHandler.Get, authn)
	g.PUT("/users/:id", userHandler.Update, authn)
	g.PUT("/users/:id/role", userHandler.ChangeRole, authn, admin)
	g.DELETE("/users/:id", userHandler.Delete, authn, admin)

	// --- Articles ---
	g.GET("/articles", articleHandler.List)
	g.GET("/articles/:id", articleHandler.Get)
	g.POST("/articles", articleHandler.Create, authn)
	g.PUT("/articles/:id", articleHandler.Update, authn)
	g.DELETE("/articles/:id", articleHandler.Delete, authn)

	// --- Comments ---
	g.GET("/articles/:id/comments", commentHandler.ListByArticle)
	g.POST("/articles/:id/comments", commentHandler.Create, authn)
	g.GET("/comments/:id", commentHandler.Get)
	g.DELETE("/comments/:id", commentHandler.Delete, authn)
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
