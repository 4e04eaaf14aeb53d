package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/auth"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/database"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/handler"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/mail"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/middleware"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/repository"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/router"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/service"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", handler.Version).Msg("starting Aeon server")

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("connected to PostgreSQL")

	// Connect to Redis
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("connected to Redis")

	// Initialize repositories
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	scheduleRepo := repository.NewScheduledEmailRepository(db)

	// Initialize the mailer
	tokenStore := mail.NewTokenStore()
	mailer := mail.New(cfg.Mail, tokenStore, log)
	if mailer.IsConfigured() {
		log.Info().Msg("mailer configured")
	} else {
		log.Warn().Msg("mailer not configured; email sending disabled")
	}

	// Initialize object storage (optional)
	var store storage.Storage
	if cfg.Storage.Enabled() {
		store, err = storage.NewS3(cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize object storage")
		}
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("object storage initialized")
	} else {
		log.Warn().Msg("object storage not configured; uploads disabled")
	}

	// Initialize admin sessions
	sessions, err := auth.NewSessionService(cfg.Admin)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session service")
	}

	// Initialize services
	blogSvc := service.NewBlogService(postRepo, commentRepo, log)
	newsletterSvc := service.NewNewsletterService(subscriberRepo, mailer, cfg, log)
	inquirySvc := service.NewInquiryService(inquiryRepo, mailer, cfg, log)
	scheduleSvc := service.NewScheduleService(scheduleRepo, postRepo, newsletterSvc, rdb, cfg, log)

	// Start the scheduled email dispatcher
	scheduleSvc.Start()
	defer scheduleSvc.Stop()

	// Initialize handlers
	h := handler.New(db, rdb, log, cfg, blogSvc, newsletterSvc, inquirySvc, scheduleSvc, mailer, store, sessions)

	// Initialize middleware
	mw := middleware.New(rdb, log, cfg)

	// Set up router
	r := router.New(h, mw, log, sessions)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
