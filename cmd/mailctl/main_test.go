package main

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
)

const orderJSON = `{
	"customer": {"name": "Budi", "phone": "081234567890", "email": "budi@example.com", "notes": "<b>pagi</b>"},
	"items": [{"id": 1, "name": "Singkong Keju Original", "price": 25000, "quantity": 2}],
	"shipping": {"method": "regular", "cost": 15000},
	"payment": "cod",
	"total": 65000,
	"orderNumber": "MW7"
}`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		renderAdmin, renderWA, orderFile = false, false, ""
	})

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRender_Customer(t *testing.T) {
	out, err := execute(t, orderJSON, "render", "--order", "-")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(out, "Rp 65.000") || !strings.Contains(out, "MW7") {
		t.Errorf("render output missing total or reference")
	}
	if strings.Contains(out, "<b>pagi</b>") {
		t.Error("notes not escaped")
	}
}

func TestRender_Admin(t *testing.T) {
	out, err := execute(t, orderJSON, "render", "--order", "-", "--admin")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if !strings.Contains(out, "mailto:budi@example.com") {
		t.Error("admin render missing mailto link")
	}
}

func TestRender_WhatsApp(t *testing.T) {
	out, err := execute(t, orderJSON, "render", "--order", "-", "--whatsapp")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	link, err := url.Parse(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if link.Host != "wa.me" {
		t.Errorf("host = %q, want wa.me", link.Host)
	}
	if text := link.Query().Get("text"); !strings.Contains(text, "Budi") {
		t.Errorf("text = %q", text)
	}
}

func TestRender_RejectsOrderWithoutEmail(t *testing.T) {
	_, err := execute(t, `{"customer": {"name": "Budi"}}`, "render", "--order", "-")
	if err == nil || !strings.Contains(err.Error(), "customer email required") {
		t.Errorf("render error = %v, want customer email required", err)
	}
}

func TestProviders(t *testing.T) {
	t.Setenv("STOREFRONT_EMAIL_PROVIDER", "sendgrid")

	out, err := execute(t, "", "providers")
	if err != nil {
		t.Fatalf("providers error = %v", err)
	}
	for _, want := range []string{"  resend", "* sendgrid", "  mailgun"} {
		if !strings.Contains(out, want) {
			t.Errorf("providers output %q missing %q", out, want)
		}
	}
}
