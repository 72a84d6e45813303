package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/haivu/notehub/internal/config"
	"github.com/haivu/notehub/internal/repository"
	"github.com/haivu/notehub/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
type loginResp struct {
	Token string   `json:"token"`
	User  userPart `json:"user"`
}

// missingField returns the name of the first empty field, or "" when all
// are present. Field order matters so clients always see the same name
// for the same request shape.
func missingField(fields [][2]string) string {
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			return f[0]
		}
	}
	return ""
}

// Register creates a user and returns its public fields. The password
// hash is computed here and never leaves the server.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if name := missingField([][2]string{
		{"username", req.Username}, {"email", req.Email}, {"password", req.Password},
	}); name != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("missing field: %s", name)})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Pre-check for a friendlier error; the unique index on users.email
	// closes the race window and Create maps its violation the same way.
	exists, err := h.Users.EmailExists(ctx, req.Email)
	if err != nil {
		log.Printf("auth: email lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if exists {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		log.Printf("auth: hash password failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	uid, err := h.Users.Create(ctx, req.Username, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
		}
		log.Printf("auth: create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user": userPart{ID: uid, Username: req.Username, Email: req.Email},
	})
}

// Login verifies credentials and returns a fresh access token together
// with the user's public fields. Unknown email and wrong password are
// deliberately distinguishable (400 vs 401), matching the API contract.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if name := missingField([][2]string{
		{"email", req.Email}, {"password", req.Password},
	}); name != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("missing field: %s", name)})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown email"})
		}
		log.Printf("auth: user lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "wrong password"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		log.Printf("auth: issue token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server error"})
	}

	return c.JSON(http.StatusOK, loginResp{
		Token: access.Token,
		User:  userPart{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}

// Logout acknowledges the request and nothing more. Sessions are
// self-contained signed tokens and the server keeps no revocation list,
// so "logging out" means the client discards its token. This is a design
// choice, not a gap.
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged out; discard the token client-side",
	})
}
