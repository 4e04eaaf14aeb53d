package handler

import (
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/auth"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/database"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/mail"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/service"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/storage"
)

// Handler holds all HTTP handlers
type Handler struct {
	db            *database.Postgres
	rdb           *database.Redis
	log           *logger.Logger
	cfg           *config.Config
	blogSvc       *service.BlogService
	newsletterSvc *service.NewsletterService
	inquirySvc    *service.InquiryService
	scheduleSvc   *service.ScheduleService
	mailer        *mail.Mailer
	store         storage.Storage
	sessions      *auth.SessionService
}

// New creates a new Handler instance
func New(
	db *database.Postgres,
	rdb *database.Redis,
	log *logger.Logger,
	cfg *config.Config,
	blogSvc *service.BlogService,
	newsletterSvc *service.NewsletterService,
	inquirySvc *service.InquiryService,
	scheduleSvc *service.ScheduleService,
	mailer *mail.Mailer,
	store storage.Storage,
	sessions *auth.SessionService,
) *Handler {
	return &Handler{
		db:            db,
		rdb:           rdb,
		log:           log,
		cfg:           cfg,
		blogSvc:       blogSvc,
		newsletterSvc: newsletterSvc,
		inquirySvc:    inquirySvc,
		scheduleSvc:   scheduleSvc,
		mailer:        mailer,
		store:         store,
		sessions:      sessions,
	}
}
