package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/database"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/mail"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/model"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/repository"
)

// Schedule errors
var (
	ErrScheduleNotFound   = errors.New("scheduled email not found or no longer pending")
	ErrScheduleInThePast  = errors.New("scheduled time must be in the future")
	ErrInvalidScheduleRef = errors.New("blog schedules need a post, product schedules need a title and link")
)

// dispatchLockKey guards the dispatch poll so that one instance at a
// time drains due records. The claim query is already single-winner;
// the lock just avoids duplicate polling work.
const (
	dispatchLockKey = "scheduler:dispatch_lock"
	dispatchLockTTL = 50 * time.Second
)

// ScheduleService manages scheduled broadcasts: admin create/list/cancel
// plus the time-based dispatcher that fires due records.
type ScheduleService struct {
	schedules  *repository.ScheduledEmailRepository
	posts      *repository.PostRepository
	newsletter *NewsletterService
	rdb        *database.Redis
	cfg        *config.Config
	log        *logger.Logger
	cron       *cron.Cron
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(
	schedules *repository.ScheduledEmailRepository,
	posts *repository.PostRepository,
	newsletter *NewsletterService,
	rdb *database.Redis,
	cfg *config.Config,
	log *logger.Logger,
) *ScheduleService {
	return &ScheduleService{
		schedules:  schedules,
		posts:      posts,
		newsletter: newsletter,
		rdb:        rdb,
		cfg:        cfg,
		log:        log.WithComponent("scheduler"),
	}
}

// ScheduleInput holds the admin-supplied fields for a scheduled email.
type ScheduleInput struct {
	Type         model.ScheduledEmailType
	PostID       string
	ProductTitle string
	ProductDesc  string
	ProductImage string
	ProductLink  string
	ScheduledFor time.Time
}

// Create validates and stores a pending scheduled email.
func (s *ScheduleService) Create(ctx context.Context, in ScheduleInput) (*model.ScheduledEmail, error) {
	if !in.ScheduledFor.After(time.Now()) {
		return nil, ErrScheduleInThePast
	}

	switch in.Type {
	case model.ScheduledEmailTypeBlog:
		if in.PostID == "" {
			return nil, ErrInvalidScheduleRef
		}
		if _, err := s.posts.GetByID(ctx, in.PostID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrInvalidScheduleRef
			}
			return nil, err
		}
	case model.ScheduledEmailTypeProduct:
		if in.ProductTitle == "" || in.ProductLink == "" {
			return nil, ErrInvalidScheduleRef
		}
	default:
		return nil, fmt.Errorf("unknown scheduled email type %q", in.Type)
	}

	now := time.Now()
	record := &model.ScheduledEmail{
		ID:           uuid.New().String(),
		Type:         in.Type,
		PostID:       in.PostID,
		ProductTitle: in.ProductTitle,
		ProductDesc:  in.ProductDesc,
		ProductImage: in.ProductImage,
		ProductLink:  in.ProductLink,
		ScheduledFor: in.ScheduledFor,
		Status:       model.ScheduledEmailStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.schedules.Create(ctx, record); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("schedule_id", record.ID).
		Str("type", string(record.Type)).
		Time("scheduled_for", record.ScheduledFor).
		Msg("scheduled email created")
	return record, nil
}

// List returns all scheduled emails for the admin UI.
func (s *ScheduleService) List(ctx context.Context) ([]model.ScheduledEmail, error) {
	return s.schedules.List(ctx)
}

// Cancel transitions a pending record to cancelled.
func (s *ScheduleService) Cancel(ctx context.Context, id string) error {
	if err := s.schedules.Cancel(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	s.log.Info().Str("schedule_id", id).Msg("scheduled email cancelled")
	return nil
}

// Start begins the dispatch poll, checking for due records every minute.
func (s *ScheduleService) Start() {
	s.cron = cron.New()
	s.cron.AddFunc("* * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.dispatchDue(ctx)
	})
	s.cron.Start()
	s.log.Info().Msg("scheduled email dispatcher started")
}

// Stop halts the dispatch poll, waiting for a running dispatch to end.
func (s *ScheduleService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// dispatchDue claims due pending records and broadcasts each to the
// subscriber list. Broadcast failures are logged, not retried: the
// record has already transitioned to sent, mirroring the best-effort
// semantics of a manual broadcast.
func (s *ScheduleService) dispatchDue(ctx context.Context) {
	locked, err := s.rdb.SetNX(ctx, dispatchLockKey, "1", dispatchLockTTL)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to acquire dispatch lock")
		return
	}
	if !locked {
		return
	}
	defer s.rdb.Delete(ctx, dispatchLockKey)

	due, err := s.schedules.ClaimDue(ctx, time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to claim due scheduled emails")
		return
	}

	for _, record := range due {
		subject, body, err := s.buildMessage(ctx, record)
		if err != nil {
			s.log.Error().Err(err).Str("schedule_id", record.ID).Msg("failed to build scheduled email")
			continue
		}

		result, err := s.newsletter.SendMarketingEmail(ctx, subject, body)
		if err != nil {
			s.log.Error().Err(err).Str("schedule_id", record.ID).Msg("scheduled broadcast failed")
			continue
		}
		s.log.Info().
			Str("schedule_id", record.ID).
			Int("sent", result.SentCount).
			Int("recipients", len(result.Results)).
			Msg("scheduled broadcast dispatched")
	}
}

// buildMessage renders the subject and HTML body for a due record.
func (s *ScheduleService) buildMessage(ctx context.Context, record model.ScheduledEmail) (string, string, error) {
	siteName := s.cfg.Site.Name

	switch record.Type {
	case model.ScheduledEmailTypeBlog:
		post, err := s.posts.GetByID(ctx, record.PostID)
		if err != nil {
			return "", "", fmt.Errorf("failed to load post for schedule: %w", err)
		}
		postURL := fmt.Sprintf("%s/blog/%s", s.cfg.Site.BaseURL, post.Slug)
		subject := fmt.Sprintf("New from %s: %s", siteName, post.Title)
		return subject, mail.BlogAnnouncementHTML(post.Title, post.Excerpt, postURL, siteName), nil

	case model.ScheduledEmailTypeProduct:
		subject := fmt.Sprintf("%s: %s", siteName, record.ProductTitle)
		body := mail.ProductAnnouncementHTML(record.ProductTitle, record.ProductDesc, record.ProductImage, record.ProductLink, siteName)
		return subject, body, nil

	default:
		return "", "", fmt.Errorf("unknown scheduled email type %q", record.Type)
	}
}
