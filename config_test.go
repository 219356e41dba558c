package tvimport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tvi.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServiceURL != DefaultServiceURL {
		t.Errorf("service url = %q, want default", cfg.ServiceURL)
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("TVI_TEST_USER", "alex")
	path := writeConfig(t, "username: ${TVI_TEST_USER}\naccount_tag: ira\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Username != "alex" {
		t.Errorf("username = %q, want alex", cfg.Username)
	}
	if cfg.AccountTag != "ira" {
		t.Errorf("account tag = %q, want ira", cfg.AccountTag)
	}
}

func TestLoadConfigInstitutionFixes(t *testing.T) {
	path := writeConfig(t, `
institutions:
  - organization: "4705"
    fid: "4705"
    timezone: America/Chicago
ticker_remaps:
  COMP: $COMPQ
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	fixes, err := cfg.TimeFixes()
	if err != nil {
		t.Fatalf("TimeFixes: %v", err)
	}
	naive := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	inst := Institution{Organization: "4705", FID: "4705"}
	if got, want := fixes.Normalize(naive, inst), "2024-01-15T15:30:00+00:00"; got != want {
		t.Errorf("configured institution normalized to %q, want %q", got, want)
	}
	// the built-in registry stays in effect alongside the configured entries
	if got, want := fixes.Normalize(naive, scottrade), "2024-01-15T14:30:00+00:00"; got != want {
		t.Errorf("built-in institution normalized to %q, want %q", got, want)
	}

	remap := cfg.TickerRemap()
	if got := remap.Remap("COMP"); got != "$COMPQ" {
		t.Errorf(`configured Remap("COMP") = %q, want "$COMPQ"`, got)
	}
	if got := remap.Remap("SPX"); got != "$SPX" {
		t.Errorf(`built-in Remap("SPX") = %q, want "$SPX"`, got)
	}
}

func TestLoadConfigRejectsBadTimezone(t *testing.T) {
	path := writeConfig(t, `
institutions:
  - organization: "1"
    fid: "1"
    timezone: Nowhere/AtAll
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig accepted a bogus timezone")
	}
}

func TestLoadConfigRejectsIncompleteFix(t *testing.T) {
	path := writeConfig(t, `
institutions:
  - organization: "1"
    timezone: America/New_York
`)
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig accepted an institution fix without a fid")
	}
}
