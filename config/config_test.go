package config

import (
	"strings"
	"testing"
)

func TestValidateYAMLContent_AcceptsExample(t *testing.T) {
	t.Parallel()

	cfg, err := ValidateYAMLContent([]byte(ExampleYAML()))
	if err != nil {
		t.Fatalf("expected example config to validate: %v", err)
	}
	if cfg.Database.Path != "timesheet.db" {
		t.Fatalf("unexpected database path: %q", cfg.Database.Path)
	}
	if cfg.Report.AdminLogin != "admin" {
		t.Fatalf("unexpected admin login: %q", cfg.Report.AdminLogin)
	}
}

func TestValidateYAMLContent_RejectsUnknownTimezone(t *testing.T) {
	t.Parallel()

	content := []byte(`database:
  path: "timesheet.db"
report:
  timezone: "Mars/Olympus"
  admin_login: "admin"
web:
  listen_addr: ":8080"
  downloads_dir: "downloads"
`)

	_, err := ValidateYAMLContent(content)
	if err == nil {
		t.Fatalf("expected validation error for unknown timezone")
	}
	if !strings.Contains(err.Error(), "timezone") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateYAMLContent_RejectsBadCompanyEmail(t *testing.T) {
	t.Parallel()

	content := []byte(`database:
  path: "timesheet.db"
report:
  timezone: "UTC"
  admin_login: "admin"
  company_email: "not-an-address"
web:
  listen_addr: ":8080"
  downloads_dir: "downloads"
`)

	if _, err := ValidateYAMLContent(content); err == nil {
		t.Fatalf("expected validation error for malformed company email")
	}
}

func TestConfig_Location_ResolvesZone(t *testing.T) {
	t.Parallel()

	cfg := &Config{Report: ReportConfig{Timezone: "Europe/Berlin"}}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("expected zone to resolve: %v", err)
	}
	if loc.String() != "Europe/Berlin" {
		t.Fatalf("unexpected location: %v", loc)
	}
}
