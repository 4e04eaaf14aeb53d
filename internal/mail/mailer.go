package mail

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
)

// Mailer is the external surface of the delivery subsystem. The route
// layer talks to it exclusively; the composer, transport, and credential
// provider behind it are wired once at startup.
type Mailer struct {
	cfg         config.MailConfig
	composer    *Composer
	transport   Transport
	broadcaster *Broadcaster
	log         *logger.Logger
}

// New wires a Mailer from config. When no credential source is
// configured the Mailer is still returned so the UI can query
// IsConfigured; every send then fails with ErrNotConfigured.
func New(cfg config.MailConfig, store *TokenStore, log *logger.Logger, opts ...option.ClientOption) *Mailer {
	m := &Mailer{
		cfg:      cfg,
		composer: NewComposer(cfg.From()),
		log:      log.WithComponent("mailer"),
	}

	provider, err := NewTokenProvider(cfg, store, log)
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			m.log.Error().Err(err).Msg("failed to initialize credential source")
		}
		return m
	}

	m.transport = NewGmailTransport(provider, log, opts...)
	m.broadcaster = NewBroadcaster(m.composer, m.transport, log)
	return m
}

// IsConfigured reports whether sending is possible at all. The admin UI
// uses it to gate the marketing-email actions.
func (m *Mailer) IsConfigured() bool {
	return m.transport != nil
}

// SendSingle composes and delivers one HTML message. An empty from uses
// the configured sender display string.
func (m *Mailer) SendSingle(ctx context.Context, to, subject, htmlBody, from string) error {
	if !m.IsConfigured() {
		return ErrNotConfigured
	}
	raw := m.composer.ComposeSimple(Message{From: from, To: to, Subject: subject, HTMLBody: htmlBody})
	return m.transport.Send(ctx, raw)
}

// SendSingleWithAttachment composes and delivers one message carrying a
// PDF fetched from attachmentURL. An empty filename uses a fixed default.
func (m *Mailer) SendSingleWithAttachment(ctx context.Context, to, subject, htmlBody, attachmentURL, filename, from string) error {
	if !m.IsConfigured() {
		return ErrNotConfigured
	}
	raw, err := m.composer.ComposeWithAttachment(ctx, Message{From: from, To: to, Subject: subject, HTMLBody: htmlBody}, attachmentURL, filename)
	if err != nil {
		return err
	}
	return m.transport.Send(ctx, raw)
}

// Broadcast sends one message to every recipient with per-recipient
// failure isolation.
func (m *Mailer) Broadcast(ctx context.Context, recipients []string, subject, htmlBody string) (BroadcastResult, error) {
	if len(recipients) == 0 {
		return BroadcastResult{}, ErrNoRecipients
	}
	if !m.IsConfigured() {
		return BroadcastResult{}, ErrNotConfigured
	}
	return m.broadcaster.Broadcast(ctx, recipients, subject, htmlBody)
}

// oauthConfig builds the OAuth2 config for the operator setup flow.
func (m *Mailer) oauthConfig() (*oauth2.Config, error) {
	if m.cfg.Google.ClientID == "" || m.cfg.Google.ClientSecret == "" {
		return nil, ErrNotConfigured
	}
	return &oauth2.Config{
		ClientID:     m.cfg.Google.ClientID,
		ClientSecret: m.cfg.Google.ClientSecret,
		RedirectURL:  m.cfg.Google.RedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.GmailSendScope},
	}, nil
}

// AuthURL returns the consent URL the operator visits once to authorize
// the sender mailbox. Offline access with a forced consent prompt, so
// the exchange yields a refresh token.
func (m *Mailer) AuthURL(state string) (string, error) {
	cfg, err := m.oauthConfig()
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// ExchangeCode trades the one-time authorization code for a refresh
// token. The operator stores the returned value in config; it is not
// used on the steady-state send path.
func (m *Mailer) ExchangeCode(ctx context.Context, code string) (string, error) {
	cfg, err := m.oauthConfig()
	if err != nil {
		return "", err
	}
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("mail: code exchange failed: %w", err)
	}
	if tok.RefreshToken == "" {
		return "", fmt.Errorf("mail: provider returned no refresh token, re-run the consent flow")
	}
	return tok.RefreshToken, nil
}
