package model

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizePhone turns a local Indonesian number into the international form
// wa.me expects: digits only, with a leading 0 replaced by 62.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "0") {
		digits = "62" + digits[1:]
	}
	return digits
}

// WhatsAppLink returns a chat link for phone, or "" when it has no digits.
func WhatsAppLink(phone string) string {
	digits := NormalizePhone(phone)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits
}

// WhatsAppURL returns a chat link for phone with text prefilled.
func WhatsAppURL(phone, text string) string {
	link := WhatsAppLink(phone)
	if link == "" || text == "" {
		return link
	}
	return link + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// WhatsAppMessage builds the chat message the order form sends to the shop's
// WhatsApp number alongside the email confirmation.
func (o *Order) WhatsAppMessage(brand string) string {
	c := o.Customer
	var b strings.Builder

	fmt.Fprintf(&b, "*PESANAN BARU - %s*\n\n", brand)
	b.WriteString("*Data Pelanggan:*\n")
	fmt.Fprintf(&b, "Nama: %s\n", c.Name)
	fmt.Fprintf(&b, "HP: %s\n", c.Phone)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Alamat: %s, %s, %s %s\n\n", c.Address, c.City, c.Province, c.PostalCode)

	b.WriteString("*Pesanan:*\n")
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			continue
		}
		fmt.Fprintf(&b, "• %s x%d = %s\n", item.Name, item.Quantity, FormatRupiah(item.Subtotal()))
	}

	b.WriteString("\n*Ringkasan:*\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", FormatRupiah(o.ItemsSubtotal()))
	fmt.Fprintf(&b, "Ongkir (%s): %s\n", o.Shipping.Method, FormatRupiah(o.Shipping.Cost))
	fmt.Fprintf(&b, "*TOTAL: %s*\n\n", FormatRupiah(o.GrandTotal()))
	fmt.Fprintf(&b, "Metode Pembayaran: %s\n", o.Payment)
	if c.Notes != "" {
		fmt.Fprintf(&b, "Catatan: %s\n", c.Notes)
	}
	b.WriteString("\nTerima kasih! 🙏")

	return b.String()
}
