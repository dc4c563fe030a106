package utils

import (
	"testing"

	"drivewell/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestSecrets(t *testing.T) {
	t.Helper()
	config.AppConfig.AccessTokenSecret = "access-secret-for-tests"
	config.AppConfig.RefreshTokenSecret = "refresh-secret-for-tests"
}

func TestAccessTokenRoundTrip(t *testing.T) {
	setTestSecrets(t)

	payload := TokenPayload{
		UserID:   "user-1",
		UserName: "Jane Wanjiku",
		Email:    "jane@example.com",
		Role:     "Staff",
		Branch:   "Westlands",
	}
	token, err := GenerateAccessToken(payload)
	require.NoError(t, err)

	got, err := ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, payload, *got)
}

func TestAccessTokenRejectsTampering(t *testing.T) {
	setTestSecrets(t)

	token, err := GenerateAccessToken(TokenPayload{UserID: "user-1"})
	require.NoError(t, err)

	_, err = ValidateAccessToken(token + "x")
	assert.Error(t, err)

	_, err = ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	setTestSecrets(t)

	refresh, err := GenerateRefreshToken("jane@example.com")
	require.NoError(t, err)

	// Signed with a different secret, so it must fail access validation.
	_, err = ValidateAccessToken(refresh)
	assert.Error(t, err)

	email, err := ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", email)
}

func TestHashTokenIsDeterministic(t *testing.T) {
	h1 := HashToken("some-token")
	h2 := HashToken("some-token")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, HashToken("other-token"))
	assert.Len(t, h1, 64) // hex-encoded SHA-256
}
