package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token validation failures. Callers that treat the request as
// anonymous on failure only need the error for logging; callers that
// reject outright can branch on the kind.
var (
	ErrBadSignature = errors.New("token signature is invalid")
	ErrMalformed    = errors.New("token is malformed")
	ErrExpired      = errors.New("token is expired")
	ErrUnsupported  = errors.New("token algorithm is not supported")
)

// TokenManager issues and validates HMAC-SHA256 signed bearer tokens.
// The signing key and TTL are fixed at construction; validation is
// stateless, so tokens cannot be revoked before they expire.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: secret, ttl: ttl}
}

// Issue creates a signed token asserting the given username until
// issued-at + TTL.
func (tm *TokenManager) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Validate verifies the signature and expiry and returns the subject
// username. The returned error is one of ErrBadSignature, ErrMalformed,
// ErrExpired or ErrUnsupported.
func (tm *TokenManager) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnsupported
		}
		return tm.secret, nil
	}, jwt.WithStrictDecoding())
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupported):
			return "", ErrUnsupported
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrMalformed
		default:
			return "", ErrMalformed
		}
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrMalformed
	}

	return claims.Subject, nil
}
