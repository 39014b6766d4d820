package storefront

// Customer is the contact and delivery block of an order.
type Customer struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// LineItem is one product row. Prices are whole rupiah.
type LineItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image,omitempty"`
}

// Shipping is the chosen delivery option.
type Shipping struct {
	Method string `json:"method"`
	Cost   int64  `json:"cost"`
}

// Order is the body of POST /api/send-confirmation-email.
type Order struct {
	Customer    Customer   `json:"customer"`
	Items       []LineItem `json:"items"`
	Shipping    Shipping   `json:"shipping"`
	Payment     string     `json:"payment"`
	Total       int64      `json:"total"`
	OrderNumber string     `json:"orderNumber"`
}

// ConfirmationResponse is returned when both order emails were sent.
type ConfirmationResponse struct {
	Success         bool   `json:"success"`
	Message         string `json:"message"`
	CustomerEmailID string `json:"customerEmailId"`
	AdminEmailID    string `json:"adminEmailId"`
}

// SendResult is the outcome of one email send as reported by the server.
type SendResult struct {
	Outcome   string       `json:"outcome"`
	Vendor    string       `json:"vendor"`
	MessageID string       `json:"messageId,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed send.
type ErrorDetail struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
	Raw        string `json:"raw,omitempty"`
}

// OK reports whether the send succeeded.
func (r SendResult) OK() bool {
	return r.Outcome == "success"
}

// Health is the body of GET /health.
type Health struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Services map[string]string `json:"services"`
}
