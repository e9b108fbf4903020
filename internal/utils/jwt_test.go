package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("s3cret", "ops", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	sub, err := ParseAccessToken("s3cret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "ops", sub)
}

func TestParseAccessTokenRejects(t *testing.T) {
	good, err := NewAccessToken("s3cret", "ops", time.Hour)
	require.NoError(t, err)
	expired, err := NewAccessToken("s3cret", "ops", -time.Minute)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "ops",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "ops"}).
		SignedString([]byte("s3cret"))
	require.NoError(t, err)

	cases := map[string]struct {
		secret string
		raw    string
	}{
		"wrong secret": {"other", good.Token},
		"expired":      {"s3cret", expired.Token},
		"alg none":     {"s3cret", none},
		"no expiry":    {"s3cret", noExp},
		"garbage":      {"s3cret", "not.a.token"},
		"empty":        {"s3cret", ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAccessToken(tc.secret, tc.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestNewAccessTokenNeedsSecret(t *testing.T) {
	_, err := NewAccessToken("", "ops", time.Hour)
	assert.Error(t, err)
}
