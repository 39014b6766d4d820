package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mbahwiryo/storefront/internal/email"
	"github.com/mbahwiryo/storefront/internal/logger"
	"github.com/mbahwiryo/storefront/internal/model"
)

// Notification errors
var (
	ErrRenderFailed         = errors.New("failed to render order email")
	ErrAdminAddressRequired = errors.New("admin email address is not configured")
)

// NotificationResult carries both legs of an order notification.
type NotificationResult struct {
	CustomerResult email.SendResult `json:"customerResult"`
	AdminResult    email.SendResult `json:"adminResult"`
}

// OK reports whether both the customer and the admin email were sent.
func (r *NotificationResult) OK() bool {
	return r.CustomerResult.OK() && r.AdminResult.OK()
}

// NotificationService sends the customer confirmation and the operations
// alert for a submitted order. It stores nothing: a failed leg is reported
// to the caller and neither retried nor compensated.
type NotificationService struct {
	sender       email.Sender
	store        email.StoreInfo
	adminAddress string
	log          *logger.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(sender email.Sender, store email.StoreInfo, adminAddress string, log *logger.Logger) *NotificationService {
	return &NotificationService{
		sender:       sender,
		store:        store,
		adminAddress: adminAddress,
		log:          log.WithComponent("order_notification"),
	}
}

// Ready reports configuration problems that would make every order fail.
func (s *NotificationService) Ready() error {
	if strings.TrimSpace(s.adminAddress) == "" {
		return ErrAdminAddressRequired
	}
	return nil
}

// NotifyOrder validates the order, renders both emails and sends them
// concurrently. Validation and rendering problems are returned as errors
// before anything is sent; send failures are reported in the result.
func (s *NotificationService) NotifyOrder(ctx context.Context, order *model.Order) (*NotificationResult, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	customerMsg, adminMsg, err := s.compose(order)
	if err != nil {
		return nil, err
	}

	result := &NotificationResult{}
	var g errgroup.Group
	g.Go(func() error {
		result.CustomerResult = s.sender.SendEmail(ctx, customerMsg)
		return nil
	})
	g.Go(func() error {
		result.AdminResult = s.sender.SendEmail(ctx, adminMsg)
		return nil
	})
	_ = g.Wait()

	log := s.log.WithOrder(order.Reference)
	if result.OK() {
		log.Info().
			Str("customer_email_id", result.CustomerResult.MessageID).
			Str("admin_email_id", result.AdminResult.MessageID).
			Msg("order notification sent")
	} else {
		log.Error().
			Interface("customer_result", result.CustomerResult).
			Interface("admin_result", result.AdminResult).
			Msg("order notification failed")
	}

	return result, nil
}

// compose renders both messages. It has no side effects.
func (s *NotificationService) compose(order *model.Order) (customer, admin email.OutboundEmail, err error) {
	customerHTML, err := email.CustomerEmailHTML(order, s.store)
	if err != nil {
		return customer, admin, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	adminHTML, err := email.AdminEmailHTML(order, s.store)
	if err != nil {
		return customer, admin, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	customer = email.OutboundEmail{
		Recipients: []string{order.Customer.Email},
		Subject:    email.CustomerSubject(order, s.store),
		HTMLBody:   customerHTML,
	}
	admin = email.OutboundEmail{
		Recipients: []string{s.adminAddress},
		Subject:    email.AdminSubject(order),
		HTMLBody:   adminHTML,
	}
	return customer, admin, nil
}
