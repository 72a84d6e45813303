// Package middleware contains reusable HTTP middleware functions.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/haivu/notehub/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's identity claims into the request context. The
// provided secret must match the one used when issuing tokens. This
// middleware wraps every note route: no note data is touched before it has
// accepted or rejected the request. Handlers access the authenticated user
// via `c.Get("user_id")` and `c.Get("email")`.
//
// Token extraction order: the standard "Authorization: Bearer <t>" header
// first, then a non-standard "token: <t>" header carrying the raw value.
// The fallback exists for older clients and is kept on purpose.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var raw string
			auth := c.Request().Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				raw = strings.TrimPrefix(auth, "Bearer ")
			}
			if raw == "" {
				raw = c.Request().Header.Get("token")
			}

			// Some clients serialize an absent token as the literal string
			// "null"; treat it the same as no token at all.
			if raw == "" || raw == "null" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing or empty token"})
			}

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				// An expired token gets a distinguishable response so the
				// client can trigger a re-login instead of treating it as a
				// generic auth failure.
				if err == utils.ErrTokenExpired {
					return c.JSON(http.StatusForbidden, echo.Map{"error": "token expired", "expired": true})
				}
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user's ID stored by JWTAuth. It
// returns 0 when no identity is attached, which callers must treat as
// unauthenticated.
func UserID(c echo.Context) uint64 {
	id, ok := c.Get("user_id").(uint64)
	if !ok {
		return 0
	}
	return id
}
