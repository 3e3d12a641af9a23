package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims carried in a session token. Role is one of RoleChef or
// RoleAdmin; the middleware gates delete routes on it.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}
	return []byte(secret), nil
}

// tokenTTL reads AUTH_TOKEN_TTL as a Go duration ("12h", "30m").
// Unset, unparsable, or non-positive values fall back to 24h.
func tokenTTL() time.Duration {
	raw := os.Getenv("AUTH_TOKEN_TTL")
	if raw == "" {
		return defaultTokenTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		return defaultTokenTTL
	}
	return ttl
}

func validRole(role string) bool {
	return role == RoleChef || role == RoleAdmin
}

func GenerateToken(userID, email, role string) (string, error) {
	if userID == "" {
		return "", errors.New("empty user id")
	}
	if !validRole(role) {
		return "", fmt.Errorf("unknown role %q", role)
	}

	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateToken(tokenString string) (string, string, string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", "", "", err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", "", ErrInvalidToken
	}

	// A token minted before a role rename would smuggle a stale role
	// past the middleware; reject anything we no longer recognize.
	if !validRole(claims.Role) {
		return "", "", "", ErrInvalidToken
	}

	return claims.Subject, claims.Email, claims.Role, nil
}
