package router

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"eventboard/internal/auth"
	"eventboard/internal/handler"
	"eventboard/internal/logging"
	"eventboard/internal/validation"
)

// Handlers groups the HTTP handlers mounted by Register.
type Handlers struct {
	Users  *handler.UserHandler
	Events *handler.EventHandler
	Health *handler.HealthHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, h Handlers, authMiddleware *auth.Middleware) {
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Validator = validation.New()

	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))

	requireAuth := authMiddleware.Handler()

	e.GET("/healthz", h.Health.Healthz)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	users := api.Group("/users")
	users.GET("/test", h.Users.Test)
	users.POST("/register", h.Users.Register)
	users.POST("/login", h.Users.Login)
	users.GET("/current", h.Users.Current, requireAuth)
	users.POST("/logout", h.Users.Logout, requireAuth)

	events := api.Group("/events")
	events.GET("/test", h.Events.Test)
	events.GET("", h.Events.List)
	events.GET("/:id", h.Events.Get)
	events.POST("", h.Events.Create, requireAuth)
}
