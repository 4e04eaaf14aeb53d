package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, raw string) string {
	t.Helper()
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)
	return string(decoded)
}

func TestComposeSimple(t *testing.T) {
	c := NewComposer("Aeon Team <hello@aeon.test>")

	raw := c.ComposeSimple(Message{
		To:       "reader@example.com",
		Subject:  "Spring collection",
		HTMLBody: "<p>It is here.</p>",
	})

	// The provider rejects standard base64, so the encoded form must be
	// URL-safe and unpadded.
	assert.NotContains(t, raw, "+")
	assert.NotContains(t, raw, "/")
	assert.NotContains(t, raw, "=")

	decoded := decodeRaw(t, raw)
	assert.Equal(t, strings.Join([]string{
		"From: Aeon Team <hello@aeon.test>",
		"To: reader@example.com",
		"Subject: Spring collection",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<p>It is here.</p>",
	}, "\n"), decoded)
}

func TestComposeSimpleExplicitFrom(t *testing.T) {
	c := NewComposer("Aeon Team <hello@aeon.test>")

	raw := c.ComposeSimple(Message{
		From:     "Aeon Support <support@aeon.test>",
		To:       "reader@example.com",
		Subject:  "Hi",
		HTMLBody: "<p>Hi</p>",
	})

	assert.Contains(t, decodeRaw(t, raw), "From: Aeon Support <support@aeon.test>")
}

func TestComposeWithAttachment(t *testing.T) {
	pdf := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xFF, 0x1B, 0x7F}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))
	t.Cleanup(srv.Close)

	c := NewComposer("Aeon Team <hello@aeon.test>")
	fixed := time.Unix(1700000000, 42)
	c.now = func() time.Time { return fixed }

	raw, err := c.ComposeWithAttachment(context.Background(), Message{
		To:       "reader@example.com",
		Subject:  "Lookbook",
		HTMLBody: "<p>Enjoy.</p>",
	}, srv.URL+"/lookbook.pdf", "lookbook.pdf")
	require.NoError(t, err)

	decoded := decodeRaw(t, raw)
	boundary := fmt.Sprintf("mixed_%d", fixed.UnixNano())

	assert.Contains(t, decoded, `Content-Type: multipart/mixed; boundary="`+boundary+`"`)
	assert.Contains(t, decoded, `Content-Disposition: attachment; filename="lookbook.pdf"`)
	assert.Contains(t, decoded, "Content-Transfer-Encoding: base64")

	// Exactly two parts plus the closing delimiter.
	parts := strings.Split(decoded, "--"+boundary)
	require.Len(t, parts, 4)
	assert.Equal(t, "--", strings.TrimSpace(parts[3]))
	assert.Contains(t, parts[1], "<p>Enjoy.</p>")

	// The attachment part decodes byte-for-byte to the fetched content.
	attachmentPart := parts[2]
	idx := strings.Index(attachmentPart, "\n\n")
	require.GreaterOrEqual(t, idx, 0)
	encoded := strings.TrimSpace(attachmentPart[idx:])
	got, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestComposeWithAttachmentDefaultFilename(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pdf-bytes"))
	}))
	t.Cleanup(srv.Close)

	c := NewComposer("Aeon Team <hello@aeon.test>")
	raw, err := c.ComposeWithAttachment(context.Background(), Message{
		To:       "reader@example.com",
		Subject:  "Lookbook",
		HTMLBody: "<p>Enjoy.</p>",
	}, srv.URL, "")
	require.NoError(t, err)

	assert.Contains(t, decodeRaw(t, raw), `filename="attachment.pdf"`)
}

func TestComposeWithAttachmentFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewComposer("Aeon Team <hello@aeon.test>")
	_, err := c.ComposeWithAttachment(context.Background(), Message{To: "reader@example.com"}, srv.URL, "")

	var fetchErr *AttachmentFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, srv.URL, fetchErr.URL)
}
