package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/newsroom/publishing-api/docs"
	"github.com/newsroom/publishing-api/internal/api/handler"
	"github.com/newsroom/publishing-api/internal/api/middleware"
	"github.com/newsroom/publishing-api/internal/core/domain"
	"github.com/newsroom/publishing-api/internal/core/ports"
)

const uploadBodyLimit = "8M"

// Services bundles the application services the routes delegate to.
type Services struct {
	Auth       ports.AuthService
	Articles   ports.ArticleService
	Comments   ports.CommentService
	Categories ports.CategoryService
	Users      ports.UserService
	Images     ports.ImageService
}

// Deps is everything NewRouter needs.
type Deps struct {
	Services  Services
	Verifier  middleware.AccessVerifier
	Checks    map[string]handler.DependencyCheck
	ClientURL string
	Log       zerolog.Logger
	// Metrics mounts the Prometheus middleware and /metrics.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	if d.ClientURL != "" {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     []string{d.ClientURL},
			AllowCredentials: true,
		}))
	}
	if d.Metrics {
		e.Use(echoprometheus.NewMiddleware("publishing"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}
	e.Use(middleware.Identify(d.Verifier))

	elevated := middleware.RequireRoles(domain.RoleAdmin, domain.RoleManager)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	authed := middleware.RequireAuth()

	// --- Health probes and docs (no auth required) ---
	health := handler.NewHealthHandler(d.Checks)
	e.GET("/health", health.Liveness)        // liveness: is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness: are dependencies up?
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	auth := handler.NewAuthHandler(d.Services.Auth)
	ag := e.Group("/auth")
	ag.POST("/register", auth.Register)
	ag.POST("/login", auth.Login)
	ag.GET("/token", auth.Token)
	ag.POST("/forgot-password", auth.ForgotPassword)
	ag.POST("/restore-password", auth.RestorePassword, authed)
	ag.GET("/logout", auth.Logout, authed)

	// --- Articles ---
	articles := handler.NewArticleHandler(d.Services.Articles)
	arg := e.Group("/articles")
	arg.GET("", articles.List)
	arg.POST("", articles.Create, elevated)
	arg.GET("/draft", articles.Drafts, elevated)
	arg.GET("/popular", articles.Popular)
	arg.GET("/category/:url", articles.ByCategory)
	arg.GET("/:url", articles.Get)
	arg.GET("/:url/private", articles.GetPrivate, elevated)
	arg.PATCH("/:id", articles.Update, elevated)
	arg.DELETE("/:id", articles.Delete, elevated)
	arg.POST("/:id/publish", articles.Publish, adminOnly)

	// --- Categories ---
	categories := handler.NewCategoryHandler(d.Services.Categories)
	e.GET("/categories", categories.List)
	e.POST("/categories", categories.Create, elevated)

	// --- Comments ---
	comments := handler.NewCommentHandler(d.Services.Comments)
	cg := e.Group("/comments")
	cg.POST("", comments.Create, authed)
	cg.GET("/article/:articleId", comments.ForArticle)
	cg.GET("/draft", comments.Drafts, elevated)
	cg.POST("/:id/publish", comments.Publish, elevated)
	cg.DELETE("/:id", comments.Delete, elevated)

	// --- Images ---
	images := handler.NewImageHandler(d.Services.Images)
	e.POST("/images/upload", images.Upload, elevated, echomiddleware.BodyLimit(uploadBodyLimit))
	e.POST("/images", images.Delete, elevated)

	// --- Users ---
	users := handler.NewUserHandler(d.Services.Users)
	ug := e.Group("/users")
	ug.GET("", users.List, adminOnly)
	ug.GET("/me", users.Me, authed)
	ug.PATCH("/:id", users.UpdateRole, adminOnly)

	return e
}

// requestLogger logs one zerolog entry per request once the status is known.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				ev = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				ev = log.Warn()
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
