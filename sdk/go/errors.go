package storefront

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors returned by the SDK.
var (
	// ErrCustomerEmailRequired is returned when the server rejects an order
	// without a customer email.
	ErrCustomerEmailRequired = errors.New("storefront: customer email required")

	// ErrRateLimited is returned when the server answers 429.
	ErrRateLimited = errors.New("storefront: rate limit exceeded")
)

// APIError represents an error response from the storefront API.
type APIError struct {
	StatusCode int             `json:"-"`
	Message    string          `json:"error"`
	Details    json.RawMessage `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront: API error %d: %s", e.StatusCode, e.Message)
}

// SendFailedError is returned when at least one of the two order emails
// failed. The successful one was still delivered.
type SendFailedError struct {
	CustomerResult SendResult `json:"customerResult"`
	AdminResult    SendResult `json:"adminResult"`
}

func (e *SendFailedError) Error() string {
	return fmt.Sprintf("storefront: send failed (customer: %s, admin: %s)",
		e.CustomerResult.Outcome, e.AdminResult.Outcome)
}

func parseAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = string(body)
		return apiErr
	}

	switch apiErr.Message {
	case "customer email required":
		return ErrCustomerEmailRequired
	case "rate limit exceeded":
		return ErrRateLimited
	case "send failed":
		var sendErr SendFailedError
		if err := json.Unmarshal(apiErr.Details, &sendErr); err == nil {
			return &sendErr
		}
	}
	return apiErr
}

// IsAPIError checks whether err is an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
