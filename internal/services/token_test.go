package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("Jane Doe", "jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", claims.Name)
	assert.Equal(t, "jane@example.com", claims.Email)

	expiry, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), expiry.Time, time.Minute)
}

func TestTokenService_Verify_Failures(t *testing.T) {
	svc := NewTokenService("test-secret")

	valid, err := svc.Issue("Jane Doe", "jane@example.com")
	require.NoError(t, err)

	signedWith := func(secret string, expiresAt time.Time) string {
		claims := &TokenClaims{
			Name:  "Jane Doe",
			Email: "jane@example.com",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(expiresAt),
				IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-TokenTTL)),
			},
		}
		tokenString, signErr := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, signErr)
		return tokenString
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "tampered payload", token: valid[:len(valid)-4] + "AAAA"},
		{name: "wrong secret", token: signedWith("other-secret", time.Now().Add(time.Hour))},
		{name: "expired", token: signedWith("test-secret", time.Now().Add(-time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Verify(tt.token)
			assert.Nil(t, claims)
			// every failure mode collapses into the same error
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
