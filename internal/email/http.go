package email

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxResponseBody caps how much of a vendor response is read.
const maxResponseBody = 1 << 20

// vendorResponse is a fully read vendor HTTP response.
type vendorResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *vendorResponse) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// do executes req and reads the body. Only network-level failures are
// returned as errors; HTTP status handling is left to the adapter.
func do(client *http.Client, req *http.Request) (*vendorResponse, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &vendorResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// idResponse is the success body shape shared by Resend and Mailgun.
type idResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// decodeIDResponse turns a 2xx JSON body into a result.
func decodeIDResponse(vendor Vendor, resp *vendorResponse) SendResult {
	var body idResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return failedWithResponse(vendor, fmt.Sprintf("failed to decode response: %v", err), resp.StatusCode, string(resp.Body))
	}
	if body.ID == "" {
		return failedWithResponse(vendor, "response did not include a message id", resp.StatusCode, string(resp.Body))
	}
	return Succeeded(vendor, body.ID)
}

// jsonErrorMessage extracts the "message" field from a vendor error body,
// falling back to a generic text when the body is not JSON or has none.
func jsonErrorMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && strings.TrimSpace(parsed.Message) != "" {
		return parsed.Message
	}
	return "failed to send email"
}

func transportFailure(vendor Vendor, err error) SendResult {
	return Failed(vendor, fmt.Sprintf("request failed: %v", err))
}

func buildFailure(vendor Vendor, err error) SendResult {
	return Failed(vendor, fmt.Sprintf("failed to build request: %v", err))
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
