package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
	aeonmail "github.com/Maoli-LLC/Aeon-Website-sub000/internal/mail"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/model"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/repository"
)

// Newsletter errors
var (
	ErrAlreadySubscribed = errors.New("email is already subscribed")
	ErrInvalidEmail      = errors.New("invalid email address")
)

// NewsletterService manages the subscriber list and marketing broadcasts.
type NewsletterService struct {
	subscribers *repository.SubscriberRepository
	mailer      *aeonmail.Mailer
	cfg         *config.Config
	log         *logger.Logger
}

// NewNewsletterService creates a new NewsletterService.
func NewNewsletterService(
	subscribers *repository.SubscriberRepository,
	mailer *aeonmail.Mailer,
	cfg *config.Config,
	log *logger.Logger,
) *NewsletterService {
	return &NewsletterService{
		subscribers: subscribers,
		mailer:      mailer,
		cfg:         cfg,
		log:         log.WithComponent("newsletter"),
	}
}

// Subscribe adds an email address to the subscriber list.
func (s *NewsletterService) Subscribe(ctx context.Context, email, name string) (*model.Subscriber, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	exists, err := s.subscribers.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	sub := &model.Subscriber{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}
	if err := s.subscribers.Create(ctx, sub); err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Msg("new subscriber")
	return sub, nil
}

// Unsubscribe removes an email address from the subscriber list.
// Unknown addresses succeed silently so the public endpoint cannot be
// used to probe the list, and a second unsubscribe stays idempotent.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := s.subscribers.DeleteByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	s.log.Info().Str("email", email).Msg("subscriber removed")
	return nil
}

// ListSubscribers returns the full subscriber list for the admin UI.
func (s *NewsletterService) ListSubscribers(ctx context.Context) ([]model.Subscriber, error) {
	return s.subscribers.List(ctx)
}

// SendMarketingEmail broadcasts a message to every subscriber. The
// per-recipient semantics (failure isolation, aggregate count) are the
// mailer's; this only supplies the list.
func (s *NewsletterService) SendMarketingEmail(ctx context.Context, subject, htmlBody string) (aeonmail.BroadcastResult, error) {
	subs, err := s.subscribers.List(ctx)
	if err != nil {
		return aeonmail.BroadcastResult{}, fmt.Errorf("failed to load subscriber list: %w", err)
	}

	recipients := make([]string, 0, len(subs))
	for _, sub := range subs {
		recipients = append(recipients, sub.Email)
	}

	return s.mailer.Broadcast(ctx, recipients, subject, htmlBody)
}

// normalizeEmail lowercases and validates an address.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
