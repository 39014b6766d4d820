package email

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/mbahwiryo/storefront/internal/model"
)

var testStore = StoreInfo{
	Brand:           "Singkong Keju Mbah Wiryo",
	SupportWhatsApp: "+62 821-4756-6278",
	SupportEmail:    "halo@singkongkejumbahwiryo.com",
	BusinessHours:   "08.00 - 20.00 WIB",
	Year:            2025,
}

func testOrder() *model.Order {
	return &model.Order{
		Customer: model.Customer{
			Name:    "Budi Santoso",
			Phone:   "081234567890",
			Email:   "budi@example.com",
			Address: "Jl. Melati No. 5",
			City:    "Yogyakarta",
		},
		Items: []model.LineItem{
			{ID: 1, Name: "Singkong Keju Original", UnitPrice: 25000, Quantity: 2},
		},
		Shipping:  model.Shipping{Method: "regular", Cost: 15000},
		Payment:   "transfer",
		Total:     65000,
		Reference: "MW1700000000000",
	}
}

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse rendered HTML: %v", err)
	}
	return doc
}

func TestCustomerEmailHTML_Currency(t *testing.T) {
	html, err := CustomerEmailHTML(testOrder(), testStore)
	if err != nil {
		t.Fatalf("CustomerEmailHTML() error = %v", err)
	}
	doc := parseHTML(t, html)

	if got := strings.TrimSpace(doc.Find(".item .item-total").First().Text()); got != "Rp 50.000" {
		t.Errorf("item subtotal = %q, want Rp 50.000", got)
	}
	if got := strings.TrimSpace(doc.Find(".item .item-details").First().Text()); got != "Qty: 2 × Rp 25.000" {
		t.Errorf("item details = %q", got)
	}
	if got := strings.TrimSpace(doc.Find(".total-row.subtotal span").Last().Text()); got != "Rp 50.000" {
		t.Errorf("subtotal = %q, want Rp 50.000", got)
	}
	if got := strings.TrimSpace(doc.Find(".total-row.shipping span").Last().Text()); got != "Rp 15.000" {
		t.Errorf("shipping = %q, want Rp 15.000", got)
	}
	if got := strings.TrimSpace(doc.Find(".total-row.final span").Last().Text()); got != "Rp 65.000" {
		t.Errorf("total = %q, want Rp 65.000", got)
	}
}

func TestCustomerEmailHTML_Content(t *testing.T) {
	html, err := CustomerEmailHTML(testOrder(), testStore)
	if err != nil {
		t.Fatalf("CustomerEmailHTML() error = %v", err)
	}
	doc := parseHTML(t, html)

	if got := doc.Find(".order-ref").Text(); got != "MW1700000000000" {
		t.Errorf("order ref = %q", got)
	}
	if got := strings.TrimSpace(doc.Find(".payment").Text()); got != "Transfer Bank" {
		t.Errorf("payment = %q", got)
	}
	if got := doc.Find(".next-steps li").Length(); got != 5 {
		t.Errorf("next steps = %d, want 5", got)
	}
	if href, _ := doc.Find("a.whatsapp-btn").Attr("href"); href != "https://wa.me/6282147566278" {
		t.Errorf("support link = %q", href)
	}
	if doc.Find(".notes").Length() != 0 {
		t.Error("notes block rendered without notes")
	}

	checks := []string{
		"Regular (3-5 hari)",
		"halo@singkongkejumbahwiryo.com",
		"08.00 - 20.00 WIB",
		"2025 Singkong Keju Mbah Wiryo",
	}
	for _, check := range checks {
		if !strings.Contains(html, check) {
			t.Errorf("CustomerEmailHTML() missing %q", check)
		}
	}
}

func TestEmailHTML_EscapesUserInput(t *testing.T) {
	o := testOrder()
	o.Customer.Notes = "<script>alert(1)</script>"
	o.Customer.Name = `Budi <img src=x onerror="x()">`
	o.Items[0].Name = "Keju & <b>Pedas</b>"

	renderers := map[string]func(*model.Order, StoreInfo) (string, error){
		"customer": CustomerEmailHTML,
		"admin":    AdminEmailHTML,
	}

	for name, render := range renderers {
		t.Run(name, func(t *testing.T) {
			html, err := render(o, testStore)
			if err != nil {
				t.Fatalf("render error = %v", err)
			}
			if strings.Contains(html, "<script>") {
				t.Error("rendered HTML contains an executable script tag")
			}
			if !strings.Contains(html, "&lt;script&gt;alert(1)&lt;/script&gt;") {
				t.Error("rendered HTML does not contain the escaped notes")
			}
			if strings.Contains(html, "<b>Pedas</b>") || strings.Contains(html, "<img src=x") {
				t.Error("rendered HTML contains unescaped markup")
			}

			doc := parseHTML(t, html)
			if doc.Find("script").Length() != 0 {
				t.Error("parsed document has a script element")
			}
			if got := doc.Find(".notes").Text(); !strings.Contains(got, "<script>alert(1)</script>") {
				t.Errorf("notes text = %q, want literal input", got)
			}
		})
	}
}

func TestAdminEmailHTML_ContactLinks(t *testing.T) {
	html, err := AdminEmailHTML(testOrder(), testStore)
	if err != nil {
		t.Fatalf("AdminEmailHTML() error = %v", err)
	}
	doc := parseHTML(t, html)

	if href, _ := doc.Find("a.btn-whatsapp").Attr("href"); href != "https://wa.me/6281234567890" {
		t.Errorf("whatsapp link = %q", href)
	}
	if href, _ := doc.Find("a.btn-email").Attr("href"); href != "mailto:budi@example.com" {
		t.Errorf("mailto link = %q", href)
	}
	src, ok := doc.Find("img.whatsapp-qr").Attr("src")
	if !ok || !strings.HasPrefix(src, "data:image/png;base64,") {
		t.Errorf("qr src = %.40q", src)
	}
	if got := strings.TrimSpace(doc.Find("td.item-total").First().Text()); got != "Rp 50.000" {
		t.Errorf("item total = %q, want Rp 50.000", got)
	}
	if got := doc.Find(".grand-total").Text(); got != "Rp 65.000" {
		t.Errorf("grand total = %q, want Rp 65.000", got)
	}
	if !strings.Contains(doc.Find(".customer-info").Text(), "budi@example.com") {
		t.Error("customer email missing from admin alert")
	}
}

func TestAdminEmailHTML_NoPhone(t *testing.T) {
	o := testOrder()
	o.Customer.Phone = ""

	html, err := AdminEmailHTML(o, testStore)
	if err != nil {
		t.Fatalf("AdminEmailHTML() error = %v", err)
	}
	doc := parseHTML(t, html)
	if doc.Find("a.btn-whatsapp").Length() != 0 || doc.Find("img.whatsapp-qr").Length() != 0 {
		t.Error("whatsapp contact rendered without a phone number")
	}
	if doc.Find("a.btn-email").Length() != 1 {
		t.Error("mailto link missing")
	}
}

func TestSubjects(t *testing.T) {
	o := testOrder()

	if got, want := CustomerSubject(o, testStore), "Konfirmasi Pesanan MW1700000000000 - Singkong Keju Mbah Wiryo"; got != want {
		t.Errorf("CustomerSubject() = %q, want %q", got, want)
	}

	o.Customer.Name = "Budi\r\nBcc: evil@example.com"
	got := AdminSubject(o)
	if strings.ContainsAny(got, "\r\n") {
		t.Errorf("AdminSubject() = %q, contains line breaks", got)
	}
	if !strings.HasPrefix(got, "🚨 PESANAN BARU: MW1700000000000 - Budi") {
		t.Errorf("AdminSubject() = %q", got)
	}
}
