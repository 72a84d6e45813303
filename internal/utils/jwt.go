// Package utils provides helper functions for password hashing and for
// issuing and verifying access tokens.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors returned by ParseAccessToken. Callers distinguish an
// expired token (signature valid, past exp) from every other failure so
// that clients can be told to re-login rather than shown a generic auth
// error.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carries the authenticated identity inside an access token. The
// json keys match the original API contract: `id` for the user ID and
// `email` for the address used at login.
type Claims struct {
	UserID uint64 `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are short-lived, self-contained and never persisted; the
// server keeps no revocation list.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user's ID and email, and a TTL in minutes, and
// returns the signed token together with its expiration time.
func NewAccessToken(secret string, userID uint64, email string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a token string and
// returns its claims. Tokens signed with anything other than HMAC are
// rejected. The two failure modes are ErrTokenExpired and ErrTokenInvalid.
func ParseAccessToken(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
