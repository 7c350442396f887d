package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  env: dev
http:
  addr: ":5000"
postgres:
  dsn: "postgres://u:p@localhost:5432/warehouse?sslmode=disable"
metrics:
  enabled: true
mail:
  base_url: "https://relay.example.com"
  service_id: "svc_1"
  public_key: "pk_1"
  low_stock_template: "tpl_low"
notifier:
  enabled: true
  admin_email: "admin@example.com"
  poll_interval: 90s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":5000" {
		t.Errorf("addr = %q", cfg.HTTP.Addr)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics should be enabled")
	}
	if cfg.Mail.BaseURL != "https://relay.example.com" {
		t.Errorf("mail base url = %q", cfg.Mail.BaseURL)
	}
	if cfg.Notifier.AdminEmail != "admin@example.com" {
		t.Errorf("admin email = %q", cfg.Notifier.AdminEmail)
	}
	if cfg.Notifier.PollInterval != 90*time.Second {
		t.Errorf("poll interval = %v", cfg.Notifier.PollInterval)
	}
}

func TestLoadDefaultsPollInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("app:\n  env: prod\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Notifier.PollInterval != 5*time.Minute {
		t.Errorf("default poll interval = %v, want 5m", cfg.Notifier.PollInterval)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
