package mail

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockTransport records recipients and fails selectively by address.
type mockTransport struct {
	sent    []string
	failFor map[string]error
}

func (m *mockTransport) Send(_ context.Context, raw string) error {
	to := recipientOf(raw)
	m.sent = append(m.sent, to)
	if err, ok := m.failFor[to]; ok {
		return err
	}
	return nil
}

// recipientOf extracts the To header from an encoded payload.
func recipientOf(raw string) string {
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(decoded), "\n") {
		if strings.HasPrefix(line, "To: ") {
			return strings.TrimPrefix(line, "To: ")
		}
	}
	return ""
}

func newTestBroadcaster(transport Transport) *Broadcaster {
	return NewBroadcaster(NewComposer("Aeon Team <hello@aeon.test>"), transport, testLogger())
}

func TestBroadcastIsolatesRecipientFailures(t *testing.T) {
	transport := &mockTransport{
		failFor: map[string]error{"bad@x.com": &SendError{Err: assert.AnError}},
	}
	b := newTestBroadcaster(transport)

	result, err := b.Broadcast(context.Background(), []string{"a@x.com", "bad@x.com", "c@x.com"}, "Hello", "<p>Hi</p>")
	require.NoError(t, err)

	assert.Equal(t, 2, result.SentCount)
	// The failure on bad@x.com must not stop the send to c@x.com.
	assert.Equal(t, []string{"a@x.com", "bad@x.com", "c@x.com"}, transport.sent)

	require.Len(t, result.Results, 3)
	assert.NoError(t, result.Results[0].Err)
	assert.Error(t, result.Results[1].Err)
	assert.NoError(t, result.Results[2].Err)
}

func TestBroadcastEmptyList(t *testing.T) {
	transport := &mockTransport{}
	b := newTestBroadcaster(transport)

	_, err := b.Broadcast(context.Background(), nil, "Hello", "<p>Hi</p>")
	assert.ErrorIs(t, err, ErrNoRecipients)
	assert.Empty(t, transport.sent)
}

func TestBroadcastAbortsOnCredentialFailure(t *testing.T) {
	transport := &mockTransport{
		failFor: map[string]error{"a@x.com": ErrReauthRequired},
	}
	b := newTestBroadcaster(transport)

	result, err := b.Broadcast(context.Background(), []string{"a@x.com", "b@x.com"}, "Hello", "<p>Hi</p>")

	// A rejected refresh token would fail every recipient identically,
	// so the batch stops instead of burning through the list.
	assert.ErrorIs(t, err, ErrReauthRequired)
	assert.Equal(t, 0, result.SentCount)
	assert.Equal(t, []string{"a@x.com"}, transport.sent)
}
