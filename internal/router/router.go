package router

import (
	"net/http"
	"time"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/auth"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/handler"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/logger"
	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, log *logger.Logger, sessions *auth.SessionService) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints (no auth required)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	// API v1 routes
	mux.HandleFunc("GET /api/v1/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Aeon API v1","version":"` + handler.Version + `"}`))
	})

	// Public content routes
	mux.HandleFunc("GET /api/v1/posts", h.ListPosts)
	mux.HandleFunc("GET /api/v1/posts/{slug}", h.GetPost)
	mux.HandleFunc("GET /api/v1/posts/{id}/comments", h.ListComments)

	// Public form routes (rate limited)
	commentRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Limit:  5,
		Window: 15 * time.Minute,
		KeyFn:  middleware.IPKey,
	})
	subscribeRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Limit:  5,
		Window: 1 * time.Hour,
		KeyFn:  middleware.IPKey,
	})
	contactRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Limit:  3,
		Window: 1 * time.Hour,
		KeyFn:  middleware.IPKey,
	})

	mux.Handle("POST /api/v1/posts/{id}/comments", commentRateLimit(http.HandlerFunc(h.AddComment)))
	mux.Handle("POST /api/v1/newsletter/subscribe", subscribeRateLimit(http.HandlerFunc(h.Subscribe)))
	mux.Handle("POST /api/v1/newsletter/unsubscribe", subscribeRateLimit(http.HandlerFunc(h.Unsubscribe)))
	mux.Handle("POST /api/v1/contact", contactRateLimit(http.HandlerFunc(h.SubmitInquiry)))

	// Admin login (rate limited)
	loginRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Limit:  5,
		Window: 15 * time.Minute,
		KeyFn:  middleware.IPKey,
	})
	mux.Handle("POST /api/v1/admin/login", loginRateLimit(http.HandlerFunc(h.Login)))
	mux.HandleFunc("POST /api/v1/admin/logout", h.Logout)

	// Admin routes (require a valid session)
	authMw := mw.AdminAuth(sessions)

	// Post management
	mux.Handle("GET /api/v1/admin/posts", authMw(http.HandlerFunc(h.AdminListPosts)))
	mux.Handle("POST /api/v1/admin/posts", authMw(http.HandlerFunc(h.AdminCreatePost)))
	mux.Handle("PUT /api/v1/admin/posts/{id}", authMw(http.HandlerFunc(h.AdminUpdatePost)))
	mux.Handle("DELETE /api/v1/admin/posts/{id}", authMw(http.HandlerFunc(h.AdminDeletePost)))

	// Comment moderation
	mux.Handle("GET /api/v1/admin/comments/pending", authMw(http.HandlerFunc(h.AdminListPendingComments)))
	mux.Handle("POST /api/v1/admin/comments/{id}/approve", authMw(http.HandlerFunc(h.AdminApproveComment)))
	mux.Handle("DELETE /api/v1/admin/comments/{id}", authMw(http.HandlerFunc(h.AdminDeleteComment)))

	// Subscribers and inquiries
	mux.Handle("GET /api/v1/admin/subscribers", authMw(http.HandlerFunc(h.AdminListSubscribers)))
	mux.Handle("GET /api/v1/admin/inquiries", authMw(http.HandlerFunc(h.AdminListInquiries)))

	// Email sending
	emailRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Limit:  10,
		Window: 1 * time.Minute,
		KeyFn:  middleware.IPKey,
	})
	mux.Handle("POST /api/v1/admin/email/send", authMw(emailRateLimit(http.HandlerFunc(h.AdminSendEmail))))
	mux.Handle("POST /api/v1/admin/email/broadcast", authMw(emailRateLimit(http.HandlerFunc(h.AdminBroadcast))))

	// Scheduled broadcasts
	mux.Handle("GET /api/v1/admin/email/schedules", authMw(http.HandlerFunc(h.AdminListSchedules)))
	mux.Handle("POST /api/v1/admin/email/schedules", authMw(http.HandlerFunc(h.AdminCreateSchedule)))
	mux.Handle("DELETE /api/v1/admin/email/schedules/{id}", authMw(http.HandlerFunc(h.AdminCancelSchedule)))

	// Mail setup (Google consent flow)
	mux.Handle("GET /api/v1/admin/email/status", authMw(http.HandlerFunc(h.AdminMailStatus)))
	mux.Handle("GET /api/v1/admin/email/auth-url", authMw(http.HandlerFunc(h.AdminMailAuthURL)))
	mux.Handle("POST /api/v1/admin/email/exchange-code", authMw(http.HandlerFunc(h.AdminMailExchangeCode)))

	// Uploads
	mux.Handle("POST /api/v1/admin/uploads", authMw(http.HandlerFunc(h.AdminUpload)))

	// Apply middleware stack
	var handler http.Handler = mux

	// CORS (configure allowed origins based on environment)
	handler = mw.CORS([]string{"http://localhost:3000", "http://localhost:5173"})(handler)

	// Security headers
	handler = mw.SecurityHeaders(handler)

	// Request logging
	handler = mw.Logger(handler)

	// Timing
	handler = mw.Timing(handler)

	// Request ID
	handler = mw.RequestID(handler)

	// Panic recovery (outermost)
	handler = mw.Recover(handler)

	return handler
}
