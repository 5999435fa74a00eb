package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/emilythestrangee/reddit-api/internal/apperror"
)

// TokenIssuer creates and validates stateless access tokens. The token
// carries only the subject user id and an expiry; nothing is stored
// server-side.
type TokenIssuer struct {
	key       []byte
	algorithm string
	ttl       time.Duration
}

func NewTokenIssuer(key, algorithm string, ttl time.Duration) (*TokenIssuer, error) {
	if jwt.GetSigningMethod(algorithm) == nil {
		return nil, fmt.Errorf("unknown JWT algorithm %q", algorithm)
	}
	return &TokenIssuer{key: []byte(key), algorithm: algorithm, ttl: ttl}, nil
}

// Issue signs a new access token for the user and returns it with its
// expiry as a unix timestamp.
func (i *TokenIssuer) Issue(userID int) (string, int64, error) {
	exp := time.Now().Add(i.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	token := jwt.NewWithClaims(jwt.GetSigningMethod(i.algorithm), claims)
	signed, err := token.SignedString(i.key)
	if err != nil {
		return "", 0, err
	}
	return signed, exp.Unix(), nil
}

// Verify parses and validates an access token and returns the subject
// user id. Any failure (missing, expired, malformed, bad signature,
// wrong algorithm) collapses to ErrAuthenticationFailed.
func (i *TokenIssuer) Verify(tokenStr string) (int, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) { return i.key, nil },
		jwt.WithValidMethods([]string{i.algorithm}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, apperror.ErrAuthenticationFailed
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, apperror.ErrAuthenticationFailed
	}
	return userID, nil
}
