package email

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// Mailgun API hosts
const (
	MailgunBaseURL   = "https://api.mailgun.net"
	MailgunEUBaseURL = "https://api.eu.mailgun.net"
)

// ErrMailgunDomain is reported when no sending domain is configured.
var ErrMailgunDomain = errors.New("mailgun domain is not configured")

// MailgunAdapter sends mail through the Mailgun messages API.
type MailgunAdapter struct {
	baseURL string
	domain  string
	client  *http.Client
}

// NewMailgunAdapter creates a MailgunAdapter for domain. An empty baseURL selects MailgunBaseURL.
func NewMailgunAdapter(baseURL, domain string, client *http.Client) *MailgunAdapter {
	if baseURL == "" {
		baseURL = MailgunBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &MailgunAdapter{baseURL: baseURL, domain: domain, client: client}
}

// Vendor implements Adapter.
func (a *MailgunAdapter) Vendor() Vendor {
	return VendorMailgun
}

// Send implements Adapter.
func (a *MailgunAdapter) Send(ctx context.Context, msg OutboundEmail, credential, defaultSender string) SendResult {
	if a.domain == "" {
		return Failed(VendorMailgun, ErrMailgunDomain.Error())
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	fields := [][2]string{
		{"from", senderOrDefault(msg, defaultSender)},
		{"to", strings.Join(msg.Recipients, ",")},
		{"subject", msg.Subject},
		{"html", msg.HTMLBody},
	}
	for _, f := range fields {
		if err := form.WriteField(f[0], f[1]); err != nil {
			return buildFailure(VendorMailgun, err)
		}
	}
	if err := form.Close(); err != nil {
		return buildFailure(VendorMailgun, err)
	}

	endpoint := joinURL(a.baseURL, "/v3/"+url.PathEscape(a.domain)+"/messages")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return buildFailure(VendorMailgun, err)
	}
	req.SetBasicAuth("api", credential)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := do(a.client, req)
	if err != nil {
		return transportFailure(VendorMailgun, err)
	}

	if !resp.ok() {
		return failedWithResponse(VendorMailgun, jsonErrorMessage(resp.Body), resp.StatusCode, string(resp.Body))
	}
	return decodeIDResponse(VendorMailgun, resp)
}
