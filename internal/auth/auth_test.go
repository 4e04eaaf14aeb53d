package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	_, err := VerifyPassword("anything", "not-a-hash")
	assert.Error(t, err)
}

func TestSessionIssueAndValidate(t *testing.T) {
	svc, err := NewSessionService(config.AdminConfig{
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
	})
	require.NoError(t, err)

	token, err := svc.Issue()
	require.NoError(t, err)
	assert.NoError(t, svc.Validate(token))

	assert.Error(t, svc.Validate(token+"tampered"))
	assert.Error(t, svc.Validate(""))
}

func TestSessionRequiresSecret(t *testing.T) {
	_, err := NewSessionService(config.AdminConfig{})
	assert.Error(t, err)
}
