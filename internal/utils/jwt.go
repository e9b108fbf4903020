// Package utils provides helpers for issuing and checking the bearer
// tokens that guard the inventory API.
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or
// claim checks.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string placed in the Authorization
// header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT.  The subject names the
// operator or service the token was issued to; it is not looked up
// anywhere and only ends up in request logs.  The JWT includes the
// standard claims sub, exp and iat.
func NewAccessToken(secret, subject string, ttl time.Duration) (AccessToken, error) {
	if secret == "" {
		return AccessToken{}, errors.New("empty signing secret")
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	// Create the token with HS256 and sign it with the shared secret.
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw against secret and returns its subject.
// Tokens signed with anything other than HMAC are rejected.
func ParseAccessToken(secret, raw string) (string, error) {
	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		// Type assert the signing method to HMAC; reject others.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
