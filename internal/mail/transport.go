package mail

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
)

// Transport delivers one composed payload.
type Transport interface {
	Send(ctx context.Context, raw string) error
}

// GmailTransport submits raw payloads through the Gmail send API under
// the authenticated user's mailbox. Credential errors from the provider
// pass through unchanged; provider rejections wrap as SendError.
type GmailTransport struct {
	provider TokenProvider
	opts     []option.ClientOption
	log      *logger.Logger
}

// NewGmailTransport creates a GmailTransport. Extra client options are
// appended after authentication, which lets tests point the service at a
// fake endpoint.
func NewGmailTransport(provider TokenProvider, log *logger.Logger, opts ...option.ClientOption) *GmailTransport {
	return &GmailTransport{
		provider: provider,
		opts:     opts,
		log:      log.WithComponent("mail_transport"),
	}
}

// Send resolves a credential and submits the encoded payload.
func (t *GmailTransport) Send(ctx context.Context, raw string) error {
	cred, err := t.provider.Token(ctx)
	if err != nil {
		return err
	}

	opts := append([]option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cred.AccessToken})),
	}, t.opts...)

	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return &SendError{Err: err}
	}

	if _, err := svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do(); err != nil {
		return &SendError{Err: err}
	}
	return nil
}
