package handler

import (
	"context"

	"github.com/mbahwiryo/storefront/internal/email"
	"github.com/mbahwiryo/storefront/internal/logger"
	"github.com/mbahwiryo/storefront/internal/model"
	"github.com/mbahwiryo/storefront/internal/service"
)

// OrderNotifier sends the emails for a submitted order
type OrderNotifier interface {
	NotifyOrder(ctx context.Context, order *model.Order) (*service.NotificationResult, error)
	Ready() error
}

// MailStatus reports which vendor is configured and whether it can send
type MailStatus interface {
	Vendor() email.Vendor
	Ready() error
}

// HealthChecker is an optional backing service, such as Redis
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds all HTTP handlers
type Handler struct {
	log      *logger.Logger
	notifier OrderNotifier
	mail     MailStatus
	rdb      HealthChecker
}

// mailReady checks the vendor configuration and the order recipients.
func (h *Handler) mailReady() error {
	if err := h.mail.Ready(); err != nil {
		return err
	}
	if h.notifier != nil {
		return h.notifier.Ready()
	}
	return nil
}

// New creates a new Handler instance. rdb may be nil when Redis is not used.
func New(log *logger.Logger, notifier OrderNotifier, mail MailStatus, rdb HealthChecker) *Handler {
	return &Handler{
		log:      log,
		notifier: notifier,
		mail:     mail,
		rdb:      rdb,
	}
}
