package jwt

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-marketplace/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestVerifier_AcceptsSignedToken(t *testing.T) {
	token, err := Sign(secret, "identity", auth.Claims{UserID: "u-1", Email: "a@b.c", Role: auth.RoleShelter}, time.Hour, time.Now())
	require.NoError(t, err)

	c, err := NewVerifier(Config{Secret: secret, Issuer: "identity"}).Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{UserID: "u-1", Email: "a@b.c", Role: auth.RoleShelter}, c)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier(Config{Secret: secret, Issuer: "identity"})
	claims := auth.Claims{UserID: "u-1", Role: auth.RoleAdopter}

	expired, err := Sign(secret, "identity", claims, time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	wrongKey, err := Sign("other", "identity", claims, time.Hour, time.Now())
	require.NoError(t, err)
	wrongIssuer, err := Sign(secret, "someone-else", claims, time.Hour, time.Now())
	require.NoError(t, err)
	noSubject, err := Sign(secret, "identity", auth.Claims{}, time.Hour, time.Now())
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expired,
		"wrong key":    wrongKey,
		"wrong issuer": wrongIssuer,
		"garbage":      "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), token)
			assert.Error(t, err)
		})
	}

	_, err = v.Verify(context.Background(), noSubject)
	assert.True(t, errors.Is(err, ErrMissingUser))

	_, err = v.Verify(context.Background(), "  ")
	assert.True(t, errors.Is(err, ErrTokenEmpty))
}

func TestVerifier_UnknownRoleFallsBackToAdopter(t *testing.T) {
	token, err := Sign(secret, "", auth.Claims{UserID: "u-2", Role: "admin"}, time.Hour, time.Now())
	require.NoError(t, err)

	c, err := NewVerifier(Config{Secret: secret}).Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdopter, c.Role)
}
