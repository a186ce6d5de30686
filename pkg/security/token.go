package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an auth token stays valid after it was issued
const TokenTTL = time.Hour

// ErrInvalidToken covers every way a token can fail verification. Expired,
// tampered and malformed tokens are deliberately indistinguishable.
var ErrInvalidToken = errors.New("invalid token")

type tokenUser struct {
	ID string `json:"id"`
}

// Claims mirror the payload clients already decode: {"usuario": {"id": ...}}
type Claims struct {
	Usuario tokenUser `json:"usuario"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 signed auth tokens. The secret is
// fixed for the lifetime of the process, changing it invalidates every
// outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a signed token for userID
func (s *TokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("no user ID provided")
	}

	now := s.now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Usuario: tokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token, %w", err)
	}

	return signed, nil
}

// Verify validates the signature and expiry of tokenStr and returns the
// user ID it was issued for. Any failure is reported as ErrInvalidToken.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return s.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Usuario.ID == "" {
		return "", ErrInvalidToken
	}

	return claims.Usuario.ID, nil
}
