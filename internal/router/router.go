package router

import (
	"net/http"

	"github.com/mbahwiryo/storefront/internal/config"
	"github.com/mbahwiryo/storefront/internal/handler"
	"github.com/mbahwiryo/storefront/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)

	// Order notification (rate limited per client IP)
	orderRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Name:   "order_email",
		Limit:  cfg.Security.RateLimiting.Limit,
		Window: cfg.Security.RateLimiting.Window,
		KeyFn:  middleware.IPKey,
	})
	mux.Handle("POST /api/send-confirmation-email", orderRateLimit(http.HandlerFunc(h.SendConfirmationEmail)))

	// Apply middleware stack
	var handler http.Handler = mux

	// CORS, outside the mux so preflight requests are answered
	handler = mw.CORS(cfg.CORS.AllowedOrigins)(handler)

	// Security headers
	handler = mw.SecurityHeaders(handler)

	// Request logging
	handler = mw.Logger(handler)

	// Request ID
	handler = mw.RequestID(handler)

	// Panic recovery (outermost)
	handler = mw.Recover(handler)

	return handler
}
