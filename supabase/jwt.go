package supabase

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrMissingAuth = errors.New("missing Authorization header")
	ErrInvalidAuth = errors.New("invalid Authorization header")
)

// UserFromRequest returns the bearer token and its sub claim. The signature
// is not checked here; Supabase verifies the token on every query.
func UserFromRequest(r *http.Request) (token, userID string, err error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", "", ErrMissingAuth
	}

	token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" || token == authHeader {
		return "", "", ErrInvalidAuth
	}

	parsed, _, err := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", "", ErrInvalidAuth
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidAuth
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", ErrInvalidAuth
	}
	return token, sub, nil
}

// GenerateTestJWT signs a Supabase-shaped access token for userID.
func GenerateTestJWT(userID, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"aud":  "authenticated",
		"role": "authenticated",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
