package utils

import (
	"testing"

	"venue-booking/constants"
	"venue-booking/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	u := &user.User{
		Uuid:        "aaaa-bbbb",
		Email:       "admin@example.ac.tz",
		FullName:    "Admin User",
		Role:        user.RoleAdmin,
		Permissions: user.StringSlice{constants.PermAdminFull},
	}

	token, err := GenerateToken(u)
	require.NoError(t, err)

	claims, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "aaaa-bbbb", claims["uuid"])
	assert.Equal(t, user.RoleAdmin, claims["role"])

	perms, ok := claims["permissions"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, perms, constants.PermAdminFull)
}

func TestGenerateTokenWithoutSecretFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateToken(&user.User{Uuid: "x", Role: user.RoleStudent})
	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken(&user.User{Uuid: "x", Role: user.RoleStudent})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	_, err = VerifyToken(token)
	assert.Error(t, err)
}
