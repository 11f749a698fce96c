package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAudience is the aud claim Supabase puts on signed-in user tokens.
const DefaultAudience = "authenticated"

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims represents a Supabase access token
type Claims struct {
	Email        string                 `json:"email"`
	Role         string                 `json:"role"` // Postgres role, "authenticated" for users
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the identity id carried in sub.
func (c *Claims) UserID() string {
	return c.Subject
}

// Manager handles JWT operations
type Manager struct {
	secret   string
	audience string
}

// NewManager creates new JWT manager for tokens signed with the project JWT secret
func NewManager(secret string) *Manager {
	return &Manager{secret: secret, audience: DefaultAudience}
}

// GenerateAccessToken issues a token shaped like a Supabase session token.
func (m *Manager) GenerateAccessToken(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  DefaultAudience,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Audience:  jwt.ClaimStrings{m.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// ValidateToken validates and parses token
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	if m.secret == "" {
		return nil, fmt.Errorf("%w: jwt secret not configured", ErrInvalidToken)
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(m.audience),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(m.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims, nil
}

// ValidateSupabaseToken resolves a bearer token to the identity id it was issued for.
func (m *Manager) ValidateSupabaseToken(tokenString string) (string, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.UserID(), nil
}
