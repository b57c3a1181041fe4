// Package auth mints and validates the back-office session token. Real
// authentication happens upstream; the session JWT only wraps the upstream
// credential plus enough profile data for role checks, so every request can
// reattach the Authorization header without another login round trip.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eaterno-pos/backoffice/internal/upstream"
)

// SessionTTL bounds how long a wrapped upstream token is reused before the
// user must log in again.
const SessionTTL = 12 * time.Hour

type Claims struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	jwt.RegisteredClaims
}

// Token returns the upstream credential carried by the session.
func (c *Claims) Token() upstream.Token {
	return upstream.Token{Type: c.TokenType, Access: c.AccessToken}
}

// GenerateSession signs a session token carrying the user profile and the
// upstream credential.
func GenerateSession(secret, userID, name, role string, tok upstream.Token) (string, error) {
	claims := Claims{
		UserID:      userID,
		Name:        name,
		Role:        role,
		TokenType:   tok.Type,
		AccessToken: tok.Access,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSession parses and verifies a session token.
func ValidateSession(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
