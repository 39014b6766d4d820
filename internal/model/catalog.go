package model

// Method is an entry of the shipping or payment catalogue shown on the order form.
type Method struct {
	ID          string
	Label       string
	Description string
	Cost        int64
}

// ShippingMethods are the delivery options offered by the storefront.
var ShippingMethods = map[string]Method{
	"regular":  {ID: "regular", Label: "Regular (3-5 hari)", Cost: 15000},
	"express":  {ID: "express", Label: "Express (1-2 hari)", Cost: 25000},
	"same_day": {ID: "same_day", Label: "Same Day (Khusus Jakarta)", Cost: 35000},
}

// PaymentMethods are the payment options offered by the storefront.
var PaymentMethods = map[string]Method{
	"transfer": {ID: "transfer", Label: "Transfer Bank", Description: "BCA, Mandiri, BRI"},
	"ewallet":  {ID: "ewallet", Label: "E-Wallet", Description: "GoPay, OVO, DANA"},
	"cod":      {ID: "cod", Label: "COD", Description: "Bayar di tempat (area terbatas)"},
}
