package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mbahwiryo/storefront/internal/logger"
)

// Dispatcher errors
var (
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrMissingCredential   = errors.New("email credential is not configured")
	ErrNoRecipients        = errors.New("at least one recipient is required")
	ErrEmptySubject        = errors.New("subject is required")
)

// DefaultTimeout bounds a single vendor call when Config.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// Vendor identifies one of the supported transactional email APIs.
type Vendor string

const (
	VendorResend   Vendor = "resend"
	VendorSendGrid Vendor = "sendgrid"
	VendorMailgun  Vendor = "mailgun"
)

// SupportedVendors lists every vendor the dispatcher can route to.
func SupportedVendors() []Vendor {
	return []Vendor{VendorResend, VendorSendGrid, VendorMailgun}
}

// ParseVendor normalizes a configured vendor name. The result may be unsupported.
func ParseVendor(name string) Vendor {
	return Vendor(strings.ToLower(strings.TrimSpace(name)))
}

// Supported reports whether v is one of SupportedVendors.
func (v Vendor) Supported() bool {
	switch v {
	case VendorResend, VendorSendGrid, VendorMailgun:
		return true
	}
	return false
}

// Config is the dispatcher configuration. It is built once at startup and
// never modified afterwards.
type Config struct {
	Vendor        Vendor
	Credential    string
	DefaultSender string
	// Timeout bounds each vendor call (DefaultTimeout when zero)
	Timeout time.Duration
	// MailgunDomain is the sending domain used in the Mailgun messages URL
	MailgunDomain string
	// BaseURL overrides the selected vendor's API base URL (EU region, tests)
	BaseURL string
}

// MarshalZerologObject logs the config without the credential.
func (c Config) MarshalZerologObject(e *zerolog.Event) {
	e.Str("vendor", string(c.Vendor)).
		Str("default_sender", c.DefaultSender).
		Bool("credential_set", c.Credential != "").
		Dur("timeout", c.Timeout)
	if c.MailgunDomain != "" {
		e.Str("mailgun_domain", c.MailgunDomain)
	}
	if c.BaseURL != "" {
		e.Str("base_url", c.BaseURL)
	}
}

// Option customizes a Dispatcher.
type Option func(*dispatcherOptions)

type dispatcherOptions struct {
	adapters map[Vendor]Adapter
	client   *http.Client
}

// WithAdapter replaces the built-in adapter for a.Vendor().
func WithAdapter(a Adapter) Option {
	return func(o *dispatcherOptions) {
		o.adapters[a.Vendor()] = a
	}
}

// WithHTTPClient sets the HTTP client used by the built-in adapters.
func WithHTTPClient(client *http.Client) Option {
	return func(o *dispatcherOptions) {
		o.client = client
	}
}

// Dispatcher routes every send to the adapter selected at construction.
// It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	cfg     Config
	adapter Adapter
	log     *logger.Logger
}

// NewDispatcher selects the adapter for cfg.Vendor. An unsupported vendor is
// not an error here: every send then fails with ErrUnsupportedProvider.
func NewDispatcher(cfg Config, log *logger.Logger, opts ...Option) *Dispatcher {
	o := dispatcherOptions{
		adapters: make(map[Vendor]Adapter),
		client:   &http.Client{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	adapter, ok := o.adapters[cfg.Vendor]
	if !ok {
		adapter = newAdapter(cfg, o.client)
	}

	return &Dispatcher{
		cfg:     cfg,
		adapter: adapter,
		log:     log.WithComponent("email_dispatcher"),
	}
}

func newAdapter(cfg Config, client *http.Client) Adapter {
	switch cfg.Vendor {
	case VendorResend:
		return NewResendAdapter(cfg.BaseURL, client)
	case VendorSendGrid:
		return NewSendGridAdapter(cfg.BaseURL, client)
	case VendorMailgun:
		return NewMailgunAdapter(cfg.BaseURL, cfg.MailgunDomain, client)
	default:
		return nil
	}
}

// Vendor returns the configured vendor.
func (d *Dispatcher) Vendor() Vendor {
	return d.cfg.Vendor
}

// Ready reports whether sends can possibly succeed with this configuration.
func (d *Dispatcher) Ready() error {
	if d.adapter == nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedProvider, d.cfg.Vendor)
	}
	if d.cfg.Credential == "" {
		return ErrMissingCredential
	}
	if d.cfg.Vendor == VendorMailgun && d.cfg.MailgunDomain == "" {
		return ErrMailgunDomain
	}
	return nil
}

// SendEmail delivers msg through the configured vendor. It never panics and
// never returns an error: every failure is reported in the SendResult.
func (d *Dispatcher) SendEmail(ctx context.Context, msg OutboundEmail) (result SendResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			d.log.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Str("vendor", string(d.cfg.Vendor)).
				Msg("email adapter panicked")
			result = Failed(d.cfg.Vendor, fmt.Sprintf("email adapter failed: %v", r))
		}
		d.logResult(result, len(msg.Recipients), time.Since(start))
	}()

	if d.adapter == nil {
		return Failed(d.cfg.Vendor, ErrUnsupportedProvider.Error())
	}
	if len(msg.Recipients) == 0 || slices.ContainsFunc(msg.Recipients, isBlank) {
		return Failed(d.cfg.Vendor, ErrNoRecipients.Error())
	}
	if msg.Subject == "" {
		return Failed(d.cfg.Vendor, ErrEmptySubject.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	return d.adapter.Send(ctx, msg, d.cfg.Credential, d.cfg.DefaultSender)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (d *Dispatcher) logResult(result SendResult, recipients int, duration time.Duration) {
	if result.OK() {
		d.log.Info().
			Str("vendor", string(d.cfg.Vendor)).
			Str("message_id", result.MessageID).
			Int("recipients", recipients).
			Dur("duration", duration).
			Msg("email sent")
		return
	}

	event := d.log.Warn().
		Str("vendor", string(d.cfg.Vendor)).
		Int("recipients", recipients).
		Dur("duration", duration)
	if result.Error != nil {
		event = event.Str("error", result.Error.Message).Int("status", result.Error.StatusCode)
	}
	event.Msg("email send failed")
}
