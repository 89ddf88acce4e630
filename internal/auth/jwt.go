package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims identify one login. TokenID changes on every login, so a token
// issued for an earlier session no longer matches the active one.
type Claims struct {
	TokenID   uuid.UUID
	Username  string
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

func GenerateToken(username string, secret string, expiry time.Duration) (string, *Claims, error) {
	now := time.Now()
	expiresAt := now.Add(expiry)
	id := uuid.New()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.String(),
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, fmt.Errorf("GenerateToken: %w", err)
	}
	return signed, &Claims{TokenID: id, Username: username, ExpiresAt: expiresAt}, nil
}

func ValidateToken(tokenString string, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("ValidateToken: %w", err)
	}

	tc, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("ValidateToken: invalid token claims")
	}

	id, err := uuid.Parse(tc.ID)
	if err != nil {
		return nil, fmt.Errorf("ValidateToken: invalid jti in token: %w", err)
	}
	if tc.Username == "" {
		return nil, fmt.Errorf("ValidateToken: missing username")
	}

	c := &Claims{TokenID: id, Username: tc.Username}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}
