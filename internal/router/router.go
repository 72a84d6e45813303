// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/haivu/notehub/internal/handler"
	"github.com/haivu/notehub/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints under /auth. None
// of them require an existing session: register and login create one, and
// logout is a stateless acknowledgment (the server holds no session state
// to clear).
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)
}

// RegisterNotes registers the note CRUD endpoints under /notes. The JWT
// middleware is the sole gate for this group: every handler runs only
// after a token has been extracted, verified and its claims attached to
// the request context.
func RegisterNotes(e *echo.Echo, n *handler.NoteHandler, jwtSecret string) {
	g := e.Group("/notes")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.GET("", n.List)
	g.GET("/:id", n.Get)
	g.POST("", n.Create)
	g.PUT("/:id", n.Update)
	g.DELETE("/:id", n.Delete)
}
