package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingSubject = errors.New("token has no subject")
	ErrInvalidSubject = errors.New("token subject is not a user id")
)

// Claims are the session claims issued by the identity service.
// The subject is the user id and doubles as the builder session key.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID returns the token subject, a uuid once verified.
func (c *Claims) UserID() string {
	return c.Subject
}

// JWTManager verifies HS256 session tokens. Issue exists for local tooling and tests;
// in production tokens come from the identity service sharing the secret.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManager creates a manager. An empty issuer disables the "iss" check.
func NewJWTManager(secret, issuer string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue signs a token for userID.
func (m *JWTManager) Issue(userID string) (string, error) {
	now := time.Now().UTC()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign jwt: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns its claims.
func (m *JWTManager) Verify(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30 * time.Second),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwt: %w", err)
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	// Bookings store the owner as a uuid.
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ErrInvalidSubject
	}

	return claims, nil
}
