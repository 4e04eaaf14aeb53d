package mail

import (
	"errors"
	"fmt"
)

// Sentinel errors for the delivery subsystem. Handlers map these to
// admin-facing messages; none of them are retried automatically.
var (
	// ErrNotConfigured means neither credential source is configured.
	ErrNotConfigured = errors.New("mail: no credential source configured, set the Google OAuth values or the connector settings")

	// ErrReauthRequired means the provider rejected the refresh token.
	// The operator must re-authorize the mailbox through the setup flow;
	// retrying cannot succeed once the token has been revoked.
	ErrReauthRequired = errors.New("mail: refresh token rejected, re-authorize the mailbox via the admin setup flow")

	// ErrNotConnected means the managed connector has no active mailbox
	// connection to hand out a credential for.
	ErrNotConnected = errors.New("mail: connector reports no active mailbox connection")

	// ErrNoRecipients means a broadcast was requested with an empty list.
	ErrNoRecipients = errors.New("mail: broadcast requires at least one recipient")
)

// AttachmentFetchError reports a failed attachment download.
type AttachmentFetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *AttachmentFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mail: failed to fetch attachment %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("mail: failed to fetch attachment %s: status %d", e.URL, e.StatusCode)
}

func (e *AttachmentFetchError) Unwrap() error { return e.Err }

// SendError reports a provider rejection of a send call.
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("mail: provider rejected send: %v", e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// IsFatal reports whether an error affects every recipient identically,
// meaning a broadcast cannot make progress by moving to the next address.
func IsFatal(err error) bool {
	return errors.Is(err, ErrNotConfigured) ||
		errors.Is(err, ErrReauthRequired) ||
		errors.Is(err, ErrNotConnected)
}
