package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/portfolio-backend/models"
)

// TokenTTL is the fixed validity window of every issued token.
const TokenTTL = 7 * 24 * time.Hour

var (
	// ErrUnauthenticated is the only error Verify reports.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrMissingSecret   = errors.New("token secret must not be empty")
)

// Identity is what a token proves about its bearer.
type Identity struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}

type claims struct {
	Identity
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 tokens with a single static secret.
// There is no refresh, revocation or key rotation.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenService{secret: []byte(secret), now: time.Now}, nil
}

// Issue signs a token for id valid for TokenTTL.
func (s *TokenService) Issue(id Identity) (string, error) {
	issuedAt := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. Every failure is reported
// as ErrUnauthenticated, with the parser error attached for logging.
func (s *TokenService) Verify(tokenString string) (*Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(tokenString, &c,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	return &c.Identity, nil
}
