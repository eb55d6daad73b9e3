package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name  string
		uid   string
		role  string
		email string
	}{
		{
			name:  "admin user",
			uid:   "7d5b02b1-9c7b-4b6a-9f35-1c6b3a2a1e01",
			role:  "admin",
			email: "admin@example.com",
		},
		{
			name:  "regular user",
			uid:   "b2a6fbd7-32c4-4fb1-8b3d-6a1b5e2f9c02",
			role:  "user",
			email: "user@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenStr, err := maker.GenerateToken(tt.uid, tt.role, tt.email)
			require.NoError(t, err)
			require.NotEmpty(t, tokenStr)

			claims, err := maker.ParseToken(tokenStr)
			require.NoError(t, err)

			assert.Equal(t, tt.uid, claims.UID)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, tt.email, claims.Email)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, 5*time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", -time.Minute)

	tokenStr, err := maker.GenerateToken("uid-1", "user", "user@example.com")
	require.NoError(t, err)

	_, err = maker.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestJWTMaker_ParseToken_WrongSecret(t *testing.T) {
	maker := NewJWTMaker("correct_secret", time.Hour)
	other := NewJWTMaker("wrong_secret", time.Hour)

	tokenStr, err := maker.GenerateToken("uid-1", "user", "user@example.com")
	require.NoError(t, err)

	_, err = other.ParseToken(tokenStr)
	assert.Error(t, err)
}

func TestJWTMaker_ParseToken_Malformed(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", time.Hour)

	tests := []struct {
		name     string
		tokenStr string
	}{
		{name: "empty string", tokenStr: ""},
		{name: "garbage", tokenStr: "not-a-jwt-at-all"},
		{name: "truncated", tokenStr: "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := maker.ParseToken(tt.tokenStr)
			assert.Error(t, err)
		})
	}
}
