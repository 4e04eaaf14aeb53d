package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// defaultAttachmentName is used when the caller does not name the file.
const defaultAttachmentName = "attachment.pdf"

// Message is a transient value describing one email. It exists only for
// the duration of a single compose-then-send call.
type Message struct {
	From     string // display string, e.g. "Aeon Team <hi@aeon.com>"; empty uses the composer default
	To       string
	Subject  string
	HTMLBody string
}

// Composer builds transport-ready payloads in the provider's wire
// format: RFC-822-style headers with LF line endings, multipart/mixed
// when an attachment is present, the whole payload encoded as unpadded
// URL-safe base64. The send API rejects standard base64, so the encoding
// step is not optional.
type Composer struct {
	defaultFrom string
	client      *http.Client
	now         func() time.Time
}

// NewComposer creates a Composer with the given default From display
// string.
func NewComposer(defaultFrom string) *Composer {
	return &Composer{
		defaultFrom: defaultFrom,
		client:      &http.Client{Timeout: networkTimeout},
		now:         time.Now,
	}
}

// ComposeSimple builds a single-part HTML message.
func (c *Composer) ComposeSimple(msg Message) string {
	lines := []string{
		"From: " + c.from(msg),
		"To: " + msg.To,
		"Subject: " + msg.Subject,
		"Content-Type: text/html; charset=utf-8",
		"",
		msg.HTMLBody,
	}
	return encodeRaw(strings.Join(lines, "\n"))
}

// ComposeWithAttachment fetches the binary at attachmentURL and builds a
// two-part multipart/mixed message: the HTML body and a base64-encoded
// PDF attachment. The boundary is derived from the current time, which
// is sufficient because messages are composed sequentially.
func (c *Composer) ComposeWithAttachment(ctx context.Context, msg Message, attachmentURL, filename string) (string, error) {
	data, err := c.fetchAttachment(ctx, attachmentURL)
	if err != nil {
		return "", err
	}

	if filename == "" {
		filename = defaultAttachmentName
	}

	boundary := fmt.Sprintf("mixed_%d", c.now().UnixNano())
	lines := []string{
		"From: " + c.from(msg),
		"To: " + msg.To,
		"Subject: " + msg.Subject,
		`Content-Type: multipart/mixed; boundary="` + boundary + `"`,
		"",
		"--" + boundary,
		"Content-Type: text/html; charset=utf-8",
		"",
		msg.HTMLBody,
		"",
		"--" + boundary,
		"Content-Type: application/pdf",
		"Content-Transfer-Encoding: base64",
		fmt.Sprintf("Content-Disposition: attachment; filename=%q", filename),
		"",
		base64.StdEncoding.EncodeToString(data),
		"",
		"--" + boundary + "--",
	}
	return encodeRaw(strings.Join(lines, "\n")), nil
}

func (c *Composer) from(msg Message) string {
	if msg.From != "" {
		return msg.From
	}
	return c.defaultFrom
}

// fetchAttachment downloads the attachment bytes.
func (c *Composer) fetchAttachment(ctx context.Context, attachmentURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, attachmentURL, nil)
	if err != nil {
		return nil, &AttachmentFetchError{URL: attachmentURL, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &AttachmentFetchError{URL: attachmentURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AttachmentFetchError{URL: attachmentURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AttachmentFetchError{URL: attachmentURL, Err: err}
	}
	return data, nil
}

// encodeRaw applies the provider's required wire encoding: standard
// base64 with '+' and '/' swapped for '-' and '_' and the trailing '='
// padding stripped.
func encodeRaw(payload string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}
