package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/raihanmd/employee-management/internal"
)

// Roles carried in session tokens.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// TokenCookieName is the cookie the frontend expects the session token in.
const TokenCookieName = "token"

// DefaultTokenTTL matches the 1 day expiry the clients were built around.
const DefaultTokenTTL = 24 * time.Hour

// Claims are the session token payload: who the bearer is and which surface
// they authenticated through. Validity is purely signature plus expiry; there
// is no server-side revocation, so logout is a client-side cookie clear.
type Claims struct {
	Role  string `json:"role"`
	ID    int64  `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenGeneratorAPI interface {
	IssueToken(role string, id int64, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTTokenGenerator{
		Secret: []byte(secret),
		TTL:    ttl,
	}
}

// IssueToken creates a signed session token for the given identity.
func (j *JWTTokenGenerator) IssueToken(role string, id int64, email string) (string, error) {
	now := time.Now()

	claims := &Claims{
		Role:  role,
		ID:    id,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", id),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken checks signature and expiry and returns the embedded claims.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}

// ClaimsFromContext pulls validated session claims placed by RequireAdmin.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := internal.ClaimsFromContext(ctx).(*Claims)
	return claims, ok
}
