package model

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Order validation errors
var (
	ErrCustomerEmailRequired = errors.New("customer email required")
	ErrInvalidOrder          = errors.New("invalid order")
)

// Customer holds the contact and delivery details typed into the order form.
type Customer struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Notes      string `json:"notes"`
}

// LineItem is one product row of an order. Prices are whole rupiah.
type LineItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	ImageRef  string `json:"image,omitempty"`
}

// Subtotal returns UnitPrice × Quantity.
func (i LineItem) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Shipping is the delivery option chosen on the form.
type Shipping struct {
	Method string `json:"method"`
	Cost   int64  `json:"cost" validate:"gte=0"`
}

// Label returns the catalogue label for a known method id, or the raw value.
func (s Shipping) Label() string {
	if m, ok := ShippingMethods[s.Method]; ok {
		return m.Label
	}
	return s.Method
}

// Order is the snapshot the storefront posts once the customer submits the
// order form. The total is trusted from the caller and the reference is only
// used for display and subject lines.
type Order struct {
	Customer  Customer   `json:"customer"`
	Items     []LineItem `json:"items" validate:"dive"`
	Shipping  Shipping   `json:"shipping"`
	Payment   string     `json:"payment"`
	Total     int64      `json:"total" validate:"gte=0"`
	Reference string     `json:"orderNumber"`
}

// ItemsSubtotal sums the line items.
func (o *Order) ItemsSubtotal() int64 {
	var sum int64
	for _, item := range o.Items {
		sum += item.Subtotal()
	}
	return sum
}

// GrandTotal returns the caller-supplied total, or items plus shipping when
// the caller left it out.
func (o *Order) GrandTotal() int64 {
	if o.Total != 0 {
		return o.Total
	}
	return o.ItemsSubtotal() + o.Shipping.Cost
}

// PaymentLabel returns the catalogue label for a known payment id, or the raw value.
func (o *Order) PaymentLabel() string {
	if m, ok := PaymentMethods[o.Payment]; ok {
		return m.Label
	}
	return o.Payment
}

// ValidationError lists the order fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return ErrInvalidOrder.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidOrder
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the order before anything is rendered or sent. A missing
// customer email is reported as ErrCustomerEmailRequired; every other problem
// as a *ValidationError.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.Customer.Email) == "" {
		return ErrCustomerEmailRequired
	}

	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []string{err.Error()}}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		fields = append(fields, ns)
	}
	return &ValidationError{Fields: fields}
}
