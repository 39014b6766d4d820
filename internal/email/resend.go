package email

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// ResendBaseURL is the public Resend API.
const ResendBaseURL = "https://api.resend.com"

// ResendAdapter sends mail through the Resend emails API.
type ResendAdapter struct {
	baseURL string
	client  *http.Client
}

// NewResendAdapter creates a ResendAdapter. An empty baseURL selects ResendBaseURL.
func NewResendAdapter(baseURL string, client *http.Client) *ResendAdapter {
	if baseURL == "" {
		baseURL = ResendBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &ResendAdapter{baseURL: baseURL, client: client}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Vendor implements Adapter.
func (a *ResendAdapter) Vendor() Vendor {
	return VendorResend
}

// Send implements Adapter.
func (a *ResendAdapter) Send(ctx context.Context, msg OutboundEmail, credential, defaultSender string) SendResult {
	payload, err := json.Marshal(resendRequest{
		From:    senderOrDefault(msg, defaultSender),
		To:      msg.Recipients,
		Subject: msg.Subject,
		HTML:    msg.HTMLBody,
	})
	if err != nil {
		return buildFailure(VendorResend, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(a.baseURL, "/emails"), bytes.NewReader(payload))
	if err != nil {
		return buildFailure(VendorResend, err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Content-Type", "application/json")

	resp, err := do(a.client, req)
	if err != nil {
		return transportFailure(VendorResend, err)
	}

	if !resp.ok() {
		return failedWithResponse(VendorResend, jsonErrorMessage(resp.Body), resp.StatusCode, string(resp.Body))
	}
	return decodeIDResponse(VendorResend, resp)
}
