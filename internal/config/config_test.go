package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Analysis.Quick {
		t.Error("Expected quick scan off by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_SCAN_ROWS", "250")
	t.Setenv("ENUM_THRESHOLD", "5")
	t.Setenv("QUICK_SCAN", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Expected port 9090, got %q", cfg.Server.Port)
	}

	ac := cfg.ToAnalysisConfig()
	if ac.MaxScanRows != 250 {
		t.Errorf("Expected MaxScanRows 250, got %d", ac.MaxScanRows)
	}
	if ac.EnumerationThreshold != 5 {
		t.Errorf("Expected EnumerationThreshold 5, got %d", ac.EnumerationThreshold)
	}
	// Quick preset applies beneath the explicit overrides
	if ac.MaxScanCols != 50 {
		t.Errorf("Expected quick MaxScanCols 50, got %d", ac.MaxScanCols)
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	if _, err := Load(); err == nil {
		t.Error("Expected an error for a non-numeric port")
	}
}

func TestInvalidEnvIntFallsBack(t *testing.T) {
	t.Setenv("MAX_SCAN_ROWS", "banana")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Analysis.MaxScanRows != 0 {
		t.Errorf("Expected unparsable int to fall back to zero, got %d", cfg.Analysis.MaxScanRows)
	}
	if got := cfg.ToAnalysisConfig().MaxScanRows; got != 500 {
		t.Errorf("Expected engine default 500, got %d", got)
	}
}
