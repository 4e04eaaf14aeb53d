package mail

import (
	"context"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
)

// RecipientResult records the outcome of one recipient's send.
type RecipientResult struct {
	Address string
	Err     error
}

// BroadcastResult aggregates a broadcast. SentCount may be less than the
// recipient count; Results carries the per-address outcomes so callers
// can flag or retry bad addresses.
type BroadcastResult struct {
	SentCount int
	Results   []RecipientResult
}

// Broadcaster sends one message to many recipients with per-recipient
// failure isolation: stale or rejected mailboxes are recorded and
// skipped, never allowed to abort the remainder of the list.
type Broadcaster struct {
	composer  *Composer
	transport Transport
	log       *logger.Logger
}

// NewBroadcaster creates a Broadcaster.
func NewBroadcaster(composer *Composer, transport Transport, log *logger.Logger) *Broadcaster {
	return &Broadcaster{
		composer:  composer,
		transport: transport,
		log:       log.WithComponent("mail_broadcast"),
	}
}

// Broadcast sends the message to each recipient in list order,
// sequentially, which bounds provider rate-limit exposure. An empty list
// is ErrNoRecipients. A credential-level failure would hit every
// recipient identically, so it aborts the batch and is returned along
// with the partial result; any other per-recipient failure is logged,
// recorded, and skipped.
func (b *Broadcaster) Broadcast(ctx context.Context, recipients []string, subject, htmlBody string) (BroadcastResult, error) {
	if len(recipients) == 0 {
		return BroadcastResult{}, ErrNoRecipients
	}

	result := BroadcastResult{Results: make([]RecipientResult, 0, len(recipients))}
	for _, to := range recipients {
		raw := b.composer.ComposeSimple(Message{To: to, Subject: subject, HTMLBody: htmlBody})
		err := b.transport.Send(ctx, raw)
		result.Results = append(result.Results, RecipientResult{Address: to, Err: err})

		if err == nil {
			result.SentCount++
			continue
		}
		if IsFatal(err) {
			b.log.Error().Err(err).Int("sent", result.SentCount).Msg("broadcast aborted on credential failure")
			return result, err
		}
		b.log.Warn().Err(err).Str("to", to).Msg("broadcast recipient failed, continuing")
	}

	b.log.Info().Int("sent", result.SentCount).Int("recipients", len(recipients)).Msg("broadcast completed")
	return result, nil
}
