package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTValidator_RoundTrip(t *testing.T) {
	validator, err := NewJWTValidator("s3cret", "aggregator")
	require.NoError(t, err)

	token, err := validator.Issue("user-1", "ada@example.com", time.Hour)
	require.NoError(t, err)

	identity, err := validator.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "ada@example.com", identity.Email)
}

func TestJWTValidator_Rejects(t *testing.T) {
	validator, err := NewJWTValidator("s3cret", "aggregator")
	require.NoError(t, err)

	other, err := NewJWTValidator("other", "aggregator")
	require.NoError(t, err)
	wrongKey, err := other.Issue("user-1", "", time.Hour)
	require.NoError(t, err)

	expired, err := validator.Issue("user-1", "", -time.Minute)
	require.NoError(t, err)

	noSubject, err := validator.Issue("", "", time.Hour)
	require.NoError(t, err)

	foreignIssuer, err := NewJWTValidator("s3cret", "someone-else")
	require.NoError(t, err)
	wrongIssuer, err := foreignIssuer.Issue("user-1", "", time.Hour)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "user-1"}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: "", want: ErrMissingToken},
		{name: "garbage", token: "not-a-token", want: ErrInvalidToken},
		{name: "wrong key", token: wrongKey, want: ErrInvalidToken},
		{name: "expired", token: expired, want: ErrInvalidToken},
		{name: "missing subject", token: noSubject, want: ErrInvalidToken},
		{name: "wrong issuer", token: wrongIssuer, want: ErrInvalidToken},
		{name: "wrong algorithm", token: hs512, want: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := validator.Validate(tt.token)
			assert.Nil(t, identity)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator("", "")
	assert.Error(t, err)
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), &Identity{UserID: "user-1"})
	identity, ok := IdentityFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-1", identity.UserID)
}
