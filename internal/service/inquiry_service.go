package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/mail"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/model"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/repository"
)

// InquiryService stores contact-form submissions and notifies the owner.
type InquiryService struct {
	inquiries *repository.InquiryRepository
	mailer    *mail.Mailer
	cfg       *config.Config
	log       *logger.Logger
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService(
	inquiries *repository.InquiryRepository,
	mailer *mail.Mailer,
	cfg *config.Config,
	log *logger.Logger,
) *InquiryService {
	return &InquiryService{
		inquiries: inquiries,
		mailer:    mailer,
		cfg:       cfg,
		log:       log.WithComponent("inquiry"),
	}
}

// Submit stores an inquiry and emails the site owner. The notification
// is best-effort: a mail failure never loses the stored inquiry.
func (s *InquiryService) Submit(ctx context.Context, name, email, subject, message string) (*model.Inquiry, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("message is required")
	}

	inquiry := &model.Inquiry{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     email,
		Subject:   strings.TrimSpace(subject),
		Message:   strings.TrimSpace(message),
		CreatedAt: time.Now(),
	}
	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	if s.mailer.IsConfigured() && s.cfg.Admin.Email != "" {
		notifySubject := fmt.Sprintf("[%s] New inquiry: %s", s.cfg.Site.Name, inquiry.Subject)
		body := mail.InquiryNotificationHTML(inquiry.Name, inquiry.Email, inquiry.Subject, inquiry.Message)
		if err := s.mailer.SendSingle(ctx, s.cfg.Admin.Email, notifySubject, body, ""); err != nil {
			s.log.Warn().Err(err).Str("inquiry_id", inquiry.ID).Msg("failed to send inquiry notification")
		}
	}

	s.log.Info().Str("inquiry_id", inquiry.ID).Msg("inquiry received")
	return inquiry, nil
}

// List returns all inquiries for the admin UI.
func (s *InquiryService) List(ctx context.Context) ([]model.Inquiry, error) {
	return s.inquiries.List(ctx)
}
