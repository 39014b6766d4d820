package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mbahwiryo/storefront/internal/config"
	"github.com/mbahwiryo/storefront/internal/email"
	"github.com/mbahwiryo/storefront/internal/handler"
	"github.com/mbahwiryo/storefront/internal/logger"
	"github.com/mbahwiryo/storefront/internal/middleware"
	"github.com/mbahwiryo/storefront/internal/model"
	"github.com/mbahwiryo/storefront/internal/service"
)

type panicNotifier struct{}

func (panicNotifier) NotifyOrder(ctx context.Context, order *model.Order) (*service.NotificationResult, error) {
	panic("unexpected")
}

func (panicNotifier) Ready() error { return nil }

type readyMail struct{}

func (readyMail) Vendor() email.Vendor { return email.VendorSendGrid }
func (readyMail) Ready() error         { return nil }

func newTestRouter() http.Handler {
	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"https://shop.test"}
	cfg.Security.RateLimiting.Limit = 10
	cfg.Security.RateLimiting.Window = time.Minute

	log := logger.Nop()
	h := handler.New(log, panicNotifier{}, readyMail{}, nil)
	return New(h, middleware.New(nil, log, cfg), cfg)
}

func TestRouter_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
	if !strings.Contains(rec.Body.String(), `"email":"sendgrid"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/send-confirmation-email", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestRouter_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/send-confirmation-email", nil)
	req.Header.Set("Origin", "https://shop.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://shop.test" {
		t.Errorf("Access-Control-Allow-Origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestRouter_PanicBecomesInternalError(t *testing.T) {
	body := `{"customer":{"email":"budi@example.com"},"items":[],"orderNumber":"MW1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/send-confirmation-email", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"internal error"}` {
		t.Errorf("body = %s", got)
	}
}
