package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.NotZero(t, userID)

	// Same username again is rejected.
	_, err = svc.Register("alice", "otherpassword")
	assert.Error(t, err)

	loginToken, err := svc.Login("alice", "password123")
	require.NoError(t, err)
	loginID, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, userID, loginID)

	_, err = svc.Login("alice", "wrongpassword")
	assert.Error(t, err)
	_, err = svc.Login("nobody", "password123")
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	// Token signed with a different secret.
	other := NewAuthService(db, "other-secret")
	token, err := other.GenerateToken(1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestSettingsSingleton(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(db)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.False(t, settings.BotActive)

	active, err := svc.ToggleActive()
	require.NoError(t, err)
	assert.True(t, active)
	active, err = svc.ToggleActive()
	require.NoError(t, err)
	assert.False(t, active)

	_, err = svc.UpdateTwitterCredentials("k", "s", "at", "as", "botname")
	require.NoError(t, err)
	_, err = svc.UpdateOpenAIKey("sk-test")
	require.NoError(t, err)

	settings, err = svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "botname", settings.TwitterUsername)
	assert.Equal(t, "sk-test", settings.OpenAIAPIKey)
	assert.Equal(t, "k", settings.TwitterAPIKey)
}
