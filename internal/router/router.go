package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"commune/internal/handler"
)

// Register wires routes and middleware. The guard middleware protects
// every route that writes on behalf of an identity; reads and the auth
// endpoints stay public.
func Register(
	e *echo.Echo,
	guard echo.MiddlewareFunc,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	groupHandler *handler.GroupHandler,
	messageHandler *handler.MessageHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Welcome to the Commune API"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/users/register", authHandler.Register)
	e.POST("/users/login", authHandler.Login)
	e.GET("/users", userHandler.ListUsers)
	e.GET("/posts", postHandler.Feed)
	e.GET("/groups/:groupId/posts", postHandler.ListInGroup)

	// Guarded routes (token required)
	e.POST("/posts", postHandler.Create, guard)
	e.POST("/groups", groupHandler.Create, guard)
	e.POST("/groups/:groupId/posts", postHandler.CreateInGroup, guard)
	e.GET("/messages", messageHandler.List, guard)
	e.POST("/messages", messageHandler.Send, guard)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
