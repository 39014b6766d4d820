package email

import "unicode/utf8"

// rawBodyLimit caps how many runes of a vendor response are kept for diagnostics.
const rawBodyLimit = 1024

// OutboundEmail is a rendered message ready for a vendor.
type OutboundEmail struct {
	Recipients []string // at least one address
	Subject    string
	HTMLBody   string
	Sender     string // optional, the dispatcher's default sender is used when empty
}

// Outcome is the normalized result of one send attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// ErrorDetail describes a failed send.
type ErrorDetail struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
	Raw        string `json:"raw,omitempty"`
}

// SendResult is what every send returns. It is a value, never an error: a
// failed send is reported through Outcome and Error.
type SendResult struct {
	Outcome   Outcome      `json:"outcome"`
	Vendor    Vendor       `json:"vendor,omitempty"`
	MessageID string       `json:"messageId,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
}

// OK reports whether the send succeeded.
func (r SendResult) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// Succeeded builds a successful result.
func Succeeded(vendor Vendor, messageID string) SendResult {
	return SendResult{Outcome: OutcomeSuccess, Vendor: vendor, MessageID: messageID}
}

// Failed builds a failed result with a human-readable message.
func Failed(vendor Vendor, message string) SendResult {
	return SendResult{Outcome: OutcomeFailure, Vendor: vendor, Error: &ErrorDetail{Message: message}}
}

func failedWithResponse(vendor Vendor, message string, statusCode int, raw string) SendResult {
	return SendResult{
		Outcome: OutcomeFailure,
		Vendor:  vendor,
		Error: &ErrorDetail{
			Message:    message,
			StatusCode: statusCode,
			Raw:        truncateRaw(raw, rawBodyLimit),
		},
	}
}

// truncateRaw trims raw to at most limit runes.
func truncateRaw(raw string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(raw) <= limit {
		return raw
	}
	return string([]rune(raw)[:limit])
}
