package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndParse(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.Issue("acc-1", "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "acc-1", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", -time.Minute)

	token, err := svc.Issue("acc-1", "a@x.com")
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.Error(t, err)
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret", time.Hour).Issue("acc-1", "a@x.com")
	require.NoError(t, err)

	_, err = NewTokenService("other", time.Hour).Parse(token)
	assert.Error(t, err)
}

func TestTokenService_RejectsNonHMAC(t *testing.T) {
	// токен с alg=none не должен проходить
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{AccountID: "acc-1"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).Parse(raw)
	assert.Error(t, err)
}
