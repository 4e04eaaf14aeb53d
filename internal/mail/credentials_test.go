package mail

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New("error", "json")
}

func offlineConfig() config.GoogleOAuthConfig {
	return config.GoogleOAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "https://aeon.test/oauth/callback",
		RefreshToken: "offline-token",
	}
}

// newOfflineProvider builds a provider pointed at a fake token endpoint.
func newOfflineProvider(t *testing.T, handler http.HandlerFunc) (*OfflineTokenProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := NewTokenStore()
	p := NewOfflineTokenProvider(offlineConfig(), store, testLogger())
	p.oauth.Endpoint = oauth2.Endpoint{TokenURL: srv.URL}
	return p, srv
}

func TestOfflineTokenProviderCachesWithinExpiry(t *testing.T) {
	var calls int
	p, _ := newOfflineProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, "offline-token", r.Form.Get("refresh_token"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok-1","token_type":"Bearer","expires_in":3600}`)
	})

	first, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", first.AccessToken)
	assert.Equal(t, 1, calls)

	// Second call inside the expiry window is served from the store.
	second, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestOfflineTokenProviderRefreshesAfterExpiry(t *testing.T) {
	var calls int
	p, _ := newOfflineProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","token_type":"Bearer","expires_in":%d}`, calls, calls*3600)
	})

	now := time.Now()
	p.now = func() time.Time { return now }

	first, err := p.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	// Advance the clock past the cached expiry: exactly one new refresh,
	// and the fresh credential expires strictly later.
	now = now.Add(2 * time.Hour)
	second, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, "tok-2", second.AccessToken)
	assert.True(t, second.Expiry.After(first.Expiry))
}

func TestOfflineTokenProviderDefaultLifetime(t *testing.T) {
	p, _ := newOfflineProvider(t, func(w http.ResponseWriter, r *http.Request) {
		// No expires_in in the response.
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok-1","token_type":"Bearer"}`)
	})

	now := time.Now()
	p.now = func() time.Time { return now }

	cred, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now.Add(defaultTokenLifetime), cred.Expiry)
}

func TestOfflineTokenProviderRejectedRefresh(t *testing.T) {
	p, _ := newOfflineProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant"}`)
	})

	_, err := p.Token(context.Background())
	assert.ErrorIs(t, err, ErrReauthRequired)
}

func TestConnectorProviderExtractsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer identity-token", r.Header.Get("Authorization"))
		assert.Equal(t, "google-mail", r.URL.Query().Get("connector_names"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[{"connection_settings":{"oauth":{"credentials":{"access_token":"connector-tok"}}}}]}`)
	}))
	t.Cleanup(srv.Close)

	p := NewConnectorProvider(config.ConnectorConfig{Host: srv.URL, Token: "identity-token"}, testLogger())

	cred, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "connector-tok", cred.AccessToken)
}

func TestConnectorProviderNoConnection(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no items", `{"items":[]}`},
		{"no token", `{"items":[{"connection_settings":{}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, tt.body)
			}))
			t.Cleanup(srv.Close)

			p := NewConnectorProvider(config.ConnectorConfig{Host: srv.URL, Token: "identity-token"}, testLogger())

			_, err := p.Token(context.Background())
			assert.ErrorIs(t, err, ErrNotConnected)
		})
	}
}

func TestNewTokenProviderSelection(t *testing.T) {
	store := NewTokenStore()
	log := testLogger()

	// Offline path takes priority even when the connector is also set.
	both := config.MailConfig{
		Google:    offlineConfig(),
		Connector: config.ConnectorConfig{Host: "connector.test", Token: "tok"},
	}
	p, err := NewTokenProvider(both, store, log)
	require.NoError(t, err)
	assert.IsType(t, &OfflineTokenProvider{}, p)

	connectorOnly := config.MailConfig{
		Connector: config.ConnectorConfig{Host: "connector.test", Token: "tok"},
	}
	p, err = NewTokenProvider(connectorOnly, store, log)
	require.NoError(t, err)
	assert.IsType(t, &ConnectorProvider{}, p)

	_, err = NewTokenProvider(config.MailConfig{}, store, log)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
