package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("status-secret")

func TestGenerateAndValidate(t *testing.T) {
	signed, err := Generate(testSecret, "operator", time.Minute)
	require.NoError(t, err)

	claims, err := Validate(testSecret, signed)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestValidate_Errors(t *testing.T) {
	valid, err := Generate(testSecret, "operator", time.Minute)
	require.NoError(t, err)

	expired, err := Generate(testSecret, "operator", -time.Minute)
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString(testSecret)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer: Issuer,
	}).SignedString(testSecret)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret []byte
		token  string
	}{
		{name: "wrong secret", secret: []byte("other"), token: valid},
		{name: "expired", secret: testSecret, token: expired},
		{name: "foreign issuer", secret: testSecret, token: foreign},
		{name: "no expiry", secret: testSecret, token: noExp},
		{name: "garbage", secret: testSecret, token: "not-a-token"},
		{name: "empty secret", secret: nil, token: valid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.secret, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_EmptySecret(t *testing.T) {
	_, err := Generate(nil, "operator", time.Minute)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
