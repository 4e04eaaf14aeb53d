package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
)

func TestMailerIsConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MailConfig
		want bool
	}{
		{"nothing configured", config.MailConfig{}, false},
		{
			"offline path complete",
			config.MailConfig{Google: offlineConfig()},
			true,
		},
		{
			"offline path missing secret",
			config.MailConfig{Google: config.GoogleOAuthConfig{
				ClientID:     "client-id",
				RefreshToken: "offline-token",
			}},
			false,
		},
		{
			"offline path missing refresh token",
			config.MailConfig{Google: config.GoogleOAuthConfig{
				ClientID:     "client-id",
				ClientSecret: "client-secret",
			}},
			false,
		},
		{
			"connector path",
			config.MailConfig{Connector: config.ConnectorConfig{Host: "connector.test", Token: "tok"}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.cfg, NewTokenStore(), testLogger())
			assert.Equal(t, tt.want, m.IsConfigured())
		})
	}
}

func TestMailerUnconfiguredSends(t *testing.T) {
	m := New(config.MailConfig{}, NewTokenStore(), testLogger())

	err := m.SendSingle(context.Background(), "a@x.com", "Hello", "<p>Hi</p>", "")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = m.Broadcast(context.Background(), []string{"a@x.com"}, "Hello", "<p>Hi</p>")
	assert.ErrorIs(t, err, ErrNotConfigured)

	// An empty list is reported as such even before the config check.
	_, err = m.Broadcast(context.Background(), nil, "Hello", "<p>Hi</p>")
	assert.ErrorIs(t, err, ErrNoRecipients)
}

func TestMailerAuthURL(t *testing.T) {
	m := New(config.MailConfig{}, NewTokenStore(), testLogger())
	_, err := m.AuthURL("state-1")
	assert.ErrorIs(t, err, ErrNotConfigured)

	m = New(config.MailConfig{Google: offlineConfig()}, NewTokenStore(), testLogger())
	u, err := m.AuthURL("state-1")
	require.NoError(t, err)
	assert.Contains(t, u, "client_id=client-id")
	assert.Contains(t, u, "access_type=offline")
	assert.Contains(t, u, "state=state-1")
}
