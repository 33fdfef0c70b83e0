package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret      = "test_secret_key_1234567890"
	testAdminSecret = "test_admin_secret_key_0987654321"
)

func newTestMaker() *MakerImpl {
	return NewJWTMaker(testSecret, testAdminSecret, 15*time.Minute, 7*24*time.Hour)
}

func TestJWTMaker_RoundTrip(t *testing.T) {
	maker := newTestMaker()

	tests := []struct {
		name     string
		subject  string
		generate func(string) (string, error)
		parse    func(string) (string, error)
	}{
		{
			name:     "access token",
			subject:  "8c1f2b8e-4a57-4d7e-9d0e-0a6c1e9c3f11",
			generate: maker.GenerateAccessToken,
			parse:    maker.ParseAccessToken,
		},
		{
			name:    "refresh token",
			subject: "8c1f2b8e-4a57-4d7e-9d0e-0a6c1e9c3f11",
			generate: func(s string) (string, error) {
				tok, _, err := maker.GenerateRefreshToken(s)
				return tok, err
			},
			parse: maker.ParseRefreshToken,
		},
		{
			name:     "admin token",
			subject:  "admin",
			generate: maker.GenerateAdminToken,
			parse:    maker.ParseAdminToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.generate(tt.subject)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			subject, err := tt.parse(token)
			require.NoError(t, err)
			assert.Equal(t, tt.subject, subject)
		})
	}
}

func TestJWTMaker_TypeMismatchIsRejected(t *testing.T) {
	maker := NewJWTMaker(testSecret, "", 15*time.Minute, time.Hour)

	access, err := maker.GenerateAccessToken("user-1")
	require.NoError(t, err)
	refresh, _, err := maker.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	admin, err := maker.GenerateAdminToken("admin")
	require.NoError(t, err)

	_, err = maker.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = maker.ParseAdminToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = maker.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// одинаковый ключ не должен позволять выдать admin-токен за access
	_, err = maker.ParseAccessToken(admin)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTMaker_Expiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	maker := newTestMaker().WithClock(func() time.Time { return now })

	token, err := maker.GenerateAccessToken("user-1")
	require.NoError(t, err)

	now = now.Add(14 * time.Minute)
	subject, err := maker.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)

	now = now.Add(2 * time.Minute)
	_, err = maker.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTMaker_RefreshExpiresAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	maker := newTestMaker().WithClock(func() time.Time { return now })

	_, expiresAt, err := maker.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), expiresAt)
}

func TestJWTMaker_AdminTokenLivesOneDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	maker := newTestMaker().WithClock(func() time.Time { return now })

	token, err := maker.GenerateAdminToken("admin")
	require.NoError(t, err)

	now = now.Add(AdminTokenTTL - time.Minute)
	_, err = maker.ParseAdminToken(token)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = maker.ParseAdminToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTMaker_ParseAccessToken_InvalidTokens(t *testing.T) {
	maker := newTestMaker()

	validToken, err := maker.GenerateAccessToken("user-1")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: createExpiredToken(t)},
		{name: "wrong secret key", token: createTokenWithWrongSecret(t)},
		{name: "tampered token", token: validToken + "tampered"},
		{name: "none algorithm", token: createUnsignedToken(t)},
		{name: "missing expiry", token: createTokenWithoutExpiry(t)},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := maker.ParseAccessToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, subject)
			messages = append(messages, err.Error())
		})
	}

	for _, m := range messages {
		assert.Equal(t, messages[0], m, "failure reasons must be indistinguishable")
	}
}

func TestJWTMaker_AdminKeyIsSeparate(t *testing.T) {
	maker := newTestMaker()
	userKeyOnly := NewJWTMaker(testSecret, "", 15*time.Minute, time.Hour)

	token, err := userKeyOnly.GenerateAdminToken("admin")
	require.NoError(t, err)

	_, err = maker.ParseAdminToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	subject, err := userKeyOnly.ParseAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestJWTMaker_TokensAreUnique(t *testing.T) {
	maker := newTestMaker()

	first, err := maker.GenerateAccessToken("user-1")
	require.NoError(t, err)
	second, err := maker.GenerateAccessToken("user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("token-a")
	b := Fingerprint("token-b")

	assert.Len(t, a, 64)
	assert.Equal(t, a, Fingerprint("token-a"))
	assert.NotEqual(t, a, b)
	assert.False(t, strings.Contains(a, "token-a"))
}

func createExpiredToken(t *testing.T) string {
	maker := NewJWTMaker(testSecret, testAdminSecret, -time.Hour, time.Hour)
	token, err := maker.GenerateAccessToken("user-1")
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongMaker := NewJWTMaker("wrong_secret_key", "", 15*time.Minute, time.Hour)
	token, err := wrongMaker.GenerateAccessToken("user-1")
	require.NoError(t, err)
	return token
}

func createUnsignedToken(t *testing.T) string {
	claims := CustomClaims{
		Type: KindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return token
}

func createTokenWithoutExpiry(t *testing.T) string {
	claims := CustomClaims{
		Type:             KindAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}
