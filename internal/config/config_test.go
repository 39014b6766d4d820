package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mbahwiryo/storefront/internal/email"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Server.Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Email.Provider != "resend" {
		t.Errorf("Email.Provider = %q, want resend", cfg.Email.Provider)
	}
	if cfg.Email.Timeout != 15*time.Second {
		t.Errorf("Email.Timeout = %v, want 15s", cfg.Email.Timeout)
	}
	if cfg.Email.FromAddress != "noreply@singkongkejumbahwiryo.com" {
		t.Errorf("Email.FromAddress = %q", cfg.Email.FromAddress)
	}
	if cfg.Security.RateLimiting.Enabled {
		t.Error("rate limiting enabled by default")
	}
	if cfg.Security.RateLimiting.Window != 10*time.Minute {
		t.Errorf("RateLimiting.Window = %v", cfg.Security.RateLimiting.Window)
	}
}

func TestLoad_PrefixedEnv(t *testing.T) {
	t.Setenv("STOREFRONT_SERVER_PORT", "9090")
	t.Setenv("STOREFRONT_EMAIL_PROVIDER", "sendgrid")
	t.Setenv("STOREFRONT_EMAIL_API_KEY", "SG.secret")
	t.Setenv("STOREFRONT_STORE_BRAND", "Toko Test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Email.Provider != "sendgrid" || cfg.Email.APIKey != "SG.secret" {
		t.Errorf("Email = %+v", cfg.Email)
	}
	if cfg.Store.Brand != "Toko Test" {
		t.Errorf("Store.Brand = %q", cfg.Store.Brand)
	}
}

func TestLoad_LegacyEnv(t *testing.T) {
	t.Setenv("EMAIL_PROVIDER", "mailgun")
	t.Setenv("MAILGUN_API_KEY", "key-123")
	t.Setenv("MAILGUN_DOMAIN", "mg.shop.test")
	t.Setenv("FROM_EMAIL", "orders@shop.test")
	t.Setenv("ADMIN_EMAIL", "ops@shop.test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	d := cfg.Dispatcher()
	if d.Vendor != email.VendorMailgun {
		t.Errorf("Dispatcher().Vendor = %q", d.Vendor)
	}
	if d.Credential != "key-123" || d.MailgunDomain != "mg.shop.test" {
		t.Errorf("Dispatcher() = credential %q domain %q", d.Credential, d.MailgunDomain)
	}
	if d.DefaultSender != "orders@shop.test" {
		t.Errorf("Dispatcher().DefaultSender = %q", d.DefaultSender)
	}
	if cfg.Email.AdminAddress != "ops@shop.test" {
		t.Errorf("Email.AdminAddress = %q", cfg.Email.AdminAddress)
	}
}

func TestLoad_PrefixedEnvWinsOverLegacy(t *testing.T) {
	t.Setenv("STOREFRONT_EMAIL_API_KEY", "prefixed")
	t.Setenv("RESEND_API_KEY", "legacy")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Email.APIKey != "prefixed" {
		t.Errorf("Email.APIKey = %q, want prefixed", cfg.Email.APIKey)
	}
}

func TestConfig_DispatcherMailgunRegion(t *testing.T) {
	cfg := &Config{Email: EmailConfig{
		Provider: "mailgun",
		Mailgun:  MailgunConfig{Domain: "mg.shop.test", Region: "EU"},
	}}
	if got := cfg.Dispatcher().BaseURL; got != email.MailgunEUBaseURL {
		t.Errorf("BaseURL = %q, want %q", got, email.MailgunEUBaseURL)
	}

	cfg.Email.BaseURL = "http://localhost:9999"
	if got := cfg.Dispatcher().BaseURL; got != "http://localhost:9999" {
		t.Errorf("BaseURL override = %q", got)
	}

	cfg.Email.Provider = "resend"
	cfg.Email.BaseURL = ""
	if got := cfg.Dispatcher().BaseURL; got != "" {
		t.Errorf("resend BaseURL = %q, want empty", got)
	}
}

func TestConfig_StoreInfo(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Brand: "Toko", SupportEmail: "halo@toko.test"}}
	info := cfg.StoreInfo(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	if info.Brand != "Toko" || info.SupportEmail != "halo@toko.test" || info.Year != 2025 {
		t.Errorf("StoreInfo() = %+v", info)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("STOREFRONT_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STOREFRONT_TEST_DOTENV", "")
	os.Unsetenv("STOREFRONT_TEST_DOTENV")

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("STOREFRONT_TEST_DOTENV"); got != "from-file" {
		t.Errorf("STOREFRONT_TEST_DOTENV = %q, want from-file", got)
	}
}
