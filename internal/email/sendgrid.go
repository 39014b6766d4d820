package email

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// SendGridBaseURL is the public SendGrid v3 API.
const SendGridBaseURL = "https://api.sendgrid.com"

// sendGridFallbackID is reported when SendGrid accepts a message without
// returning an X-Message-Id header.
const sendGridFallbackID = "sent"

// SendGridAdapter sends mail through the SendGrid v3 mail/send endpoint.
type SendGridAdapter struct {
	baseURL string
	client  *http.Client
}

// NewSendGridAdapter creates a SendGridAdapter. An empty baseURL selects SendGridBaseURL.
func NewSendGridAdapter(baseURL string, client *http.Client) *SendGridAdapter {
	if baseURL == "" {
		baseURL = SendGridBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &SendGridAdapter{baseURL: baseURL, client: client}
}

type sendGridAddress struct {
	Email string `json:"email"`
}

type sendGridPersonalization struct {
	To      []sendGridAddress `json:"to"`
	Subject string            `json:"subject"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendGridRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Content          []sendGridContent         `json:"content"`
}

// Vendor implements Adapter.
func (a *SendGridAdapter) Vendor() Vendor {
	return VendorSendGrid
}

// Send implements Adapter.
func (a *SendGridAdapter) Send(ctx context.Context, msg OutboundEmail, credential, defaultSender string) SendResult {
	to := make([]sendGridAddress, 0, len(msg.Recipients))
	for _, addr := range msg.Recipients {
		to = append(to, sendGridAddress{Email: addr})
	}

	payload, err := json.Marshal(sendGridRequest{
		Personalizations: []sendGridPersonalization{{To: to, Subject: msg.Subject}},
		From:             sendGridAddress{Email: senderOrDefault(msg, defaultSender)},
		Content:          []sendGridContent{{Type: "text/html", Value: msg.HTMLBody}},
	})
	if err != nil {
		return buildFailure(VendorSendGrid, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(a.baseURL, "/v3/mail/send"), bytes.NewReader(payload))
	if err != nil {
		return buildFailure(VendorSendGrid, err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Content-Type", "application/json")

	resp, err := do(a.client, req)
	if err != nil {
		return transportFailure(VendorSendGrid, err)
	}

	if !resp.ok() {
		message := strings.TrimSpace(string(resp.Body))
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return failedWithResponse(VendorSendGrid, truncateRaw(message, rawBodyLimit), resp.StatusCode, string(resp.Body))
	}

	id := resp.Header.Get("X-Message-Id")
	if id == "" {
		id = sendGridFallbackID
	}
	return Succeeded(VendorSendGrid, id)
}
