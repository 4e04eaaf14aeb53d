package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
)

// defaultTokenLifetime is applied when the provider's refresh response
// omits a lifetime. Slightly under the usual one hour so a token is
// refreshed before Google actually expires it.
const defaultTokenLifetime = 58 * time.Minute

// networkTimeout bounds every outbound call made by the credential
// providers. Upstream hangs surface as errors instead of blocking sends.
const networkTimeout = 30 * time.Second

// TokenProvider produces a currently-valid bearer credential for the
// sender mailbox. Implementations cover the two deployment modes: a
// self-hosted setup with explicit OAuth credentials and an offline
// refresh token, and a managed hosting environment whose connector
// brokers the credential on our behalf.
type TokenProvider interface {
	Token(ctx context.Context) (Credential, error)
}

// NewTokenProvider selects the credential source from config, checked in
// fixed priority order: the offline-token path first, so an operator who
// has configured explicit credentials is never silently routed through
// the managed connector. Returns ErrNotConfigured when neither source is
// usable.
func NewTokenProvider(cfg config.MailConfig, store *TokenStore, log *logger.Logger) (TokenProvider, error) {
	switch {
	case cfg.OfflineConfigured():
		return NewOfflineTokenProvider(cfg.Google, store, log), nil
	case cfg.ConnectorConfigured():
		return NewConnectorProvider(cfg.Connector, log), nil
	default:
		return nil, ErrNotConfigured
	}
}

// OfflineTokenProvider exchanges a long-lived refresh token for
// short-lived access tokens and caches them in a TokenStore so that
// repeated sends inside the expiry window skip the network round trip.
type OfflineTokenProvider struct {
	oauth        *oauth2.Config
	refreshToken string
	store        *TokenStore
	client       *http.Client
	now          func() time.Time
	log          *logger.Logger
}

// NewOfflineTokenProvider creates an OfflineTokenProvider for the given
// OAuth client credentials.
func NewOfflineTokenProvider(cfg config.GoogleOAuthConfig, store *TokenStore, log *logger.Logger) *OfflineTokenProvider {
	return &OfflineTokenProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmail.GmailSendScope},
		},
		refreshToken: cfg.RefreshToken,
		store:        store,
		client:       &http.Client{Timeout: networkTimeout},
		now:          time.Now,
		log:          log.WithComponent("mail_credentials"),
	}
}

// Token returns the cached credential when it is still fresh, otherwise
// performs one refresh against the provider token endpoint. A rejected
// refresh is ErrReauthRequired and is never retried here: rejection
// means the refresh token has been revoked and only the operator can fix
// that.
func (p *OfflineTokenProvider) Token(ctx context.Context) (Credential, error) {
	if cred, ok := p.store.Read(); ok && cred.Expiry.After(p.now()) {
		return cred, nil
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	src := p.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: p.refreshToken})
	tok, err := src.Token()
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrReauthRequired, err)
	}

	expiry := tok.Expiry
	if expiry.IsZero() {
		expiry = p.now().Add(defaultTokenLifetime)
	}

	cred := Credential{AccessToken: tok.AccessToken, Expiry: expiry}
	p.store.Write(cred)
	p.log.Debug().Time("expiry", cred.Expiry).Msg("access token refreshed")
	return cred, nil
}

// ConnectorProvider queries the hosting environment's connector service
// for the current mailbox credential. Freshness is entirely the
// connector's responsibility, so nothing is cached locally.
type ConnectorProvider struct {
	baseURL       string
	identityToken string
	client        *http.Client
	log           *logger.Logger
}

// NewConnectorProvider creates a ConnectorProvider for the given
// connector host and identity token.
func NewConnectorProvider(cfg config.ConnectorConfig, log *logger.Logger) *ConnectorProvider {
	base := cfg.Host
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	return &ConnectorProvider{
		baseURL:       strings.TrimSuffix(base, "/"),
		identityToken: cfg.Token,
		client:        &http.Client{Timeout: networkTimeout},
		log:           log.WithComponent("mail_connector"),
	}
}

// connectorResponse mirrors the connector's connection listing. The
// access token appears either directly in the settings or nested under
// the oauth credentials, depending on connector version.
type connectorResponse struct {
	Items []struct {
		Settings struct {
			AccessToken string `json:"access_token"`
			OAuth       struct {
				Credentials struct {
					AccessToken string `json:"access_token"`
				} `json:"credentials"`
			} `json:"oauth"`
		} `json:"connection_settings"`
	} `json:"items"`
}

// Token fetches the current mailbox credential from the connector.
func (p *ConnectorProvider) Token(ctx context.Context) (Credential, error) {
	q := url.Values{}
	q.Set("include_secrets", "true")
	q.Set("connector_names", "google-mail")
	endpoint := p.baseURL + "/api/v2/connection?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Credential{}, fmt.Errorf("mail: failed to build connector request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.identityToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return Credential{}, fmt.Errorf("mail: connector request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Credential{}, fmt.Errorf("mail: connector returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload connectorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Credential{}, fmt.Errorf("mail: failed to decode connector response: %w", err)
	}

	if len(payload.Items) == 0 {
		return Credential{}, ErrNotConnected
	}

	settings := payload.Items[0].Settings
	token := settings.AccessToken
	if token == "" {
		token = settings.OAuth.Credentials.AccessToken
	}
	if token == "" {
		return Credential{}, ErrNotConnected
	}

	return Credential{AccessToken: token}, nil
}
