package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/sheets-api/internal/common"
)

const testSecret = "test_secret_key_1234567890"

func newMaker(t *testing.T, secret string, ttl time.Duration) *MakerImpl {
	t.Helper()
	m, err := NewJWTMaker(secret, ttl)
	require.NoError(t, err)
	return m
}

func TestNewJWTMaker_EmptySecret(t *testing.T) {
	m, err := NewJWTMaker("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
	assert.Nil(t, m)
}

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	tokenTTL := 15 * time.Minute
	maker := newMaker(t, testSecret, tokenTTL)

	tests := []struct {
		name string
		user UserClaims
	}{
		{
			name: "full claims",
			user: UserClaims{UserUID: "9b2f4e1c-0000-4000-8000-000000000001", Name: "Alice User", Email: "a@x.com"},
		},
		{
			name: "only uid",
			user: UserClaims{UserUID: "9b2f4e1c-0000-4000-8000-000000000002"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.user)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.user, claims.UserClaims)
			assert.Equal(t, tt.user.UserUID, claims.Subject)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ZeroTTLHasNoExpiry(t *testing.T) {
	maker := newMaker(t, testSecret, 0)

	token, err := maker.GenerateToken(UserClaims{UserUID: "uid-1"})
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := newMaker(t, testSecret, 15*time.Minute)

	validToken, err := maker.GenerateToken(UserClaims{UserUID: "uid-1"})
	require.NoError(t, err)

	wrongMaker := newMaker(t, "wrong_secret_key", 15*time.Minute)
	wrongSecretToken, err := wrongMaker.GenerateToken(UserClaims{UserUID: "uid-1"})
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserClaims: UserClaims{UserUID: "uid-1"}}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUIDToken, err := maker.GenerateToken(UserClaims{Name: "nobody"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: createExpiredToken(t)},
		{name: "wrong secret key", token: wrongSecretToken},
		{name: "tampered token", token: validToken + "tampered"},
		{name: "alg none", token: noneToken},
		{name: "missing uid", token: noUIDToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_TokenExpiration(t *testing.T) {
	maker := newMaker(t, testSecret, time.Minute)
	issued := time.Now()
	maker.now = func() time.Time { return issued }

	token, err := maker.GenerateToken(UserClaims{UserUID: "uid-1"})
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	require.NoError(t, err)

	maker.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = maker.ParseToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func createExpiredToken(t *testing.T) string {
	maker := newMaker(t, testSecret, time.Minute)
	maker.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := maker.GenerateToken(UserClaims{UserUID: "uid-1"})
	require.NoError(t, err)
	return token
}
