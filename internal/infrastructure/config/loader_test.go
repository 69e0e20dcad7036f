package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/luminous-dynamics/ask-nix/internal/domain"
)

func TestLoadSeedsDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Preferences.PrivilegeMode != domain.PrivilegeModeUser {
		t.Fatalf("PrivilegeMode = %q, want user", cfg.Preferences.PrivilegeMode)
	}
	if !cfg.Learning.Enabled {
		t.Fatal("learning must default to enabled")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config file was not written: %v", err)
	}
}

func TestLoadParsesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`config_format_version: "1"
preferences:
  default_persona: terse
  dry_run_default: true
  privilege_mode: system
  timeout: 45
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Preferences.DryRunDefault {
		t.Fatal("dry_run_default not parsed")
	}
	if !cfg.SystemMode() {
		t.Fatal("privilege_mode system not parsed")
	}
	if cfg.EffectiveTimeoutSeconds() != 45 {
		t.Fatalf("timeout = %d, want 45", cfg.EffectiveTimeoutSeconds())
	}
	// Unset fields are hydrated.
	if cfg.EffectiveConfidenceThreshold() != domain.DefaultConfidenceThreshold {
		t.Fatalf("confidence threshold not hydrated: %f", cfg.EffectiveConfidenceThreshold())
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("preferences: ["), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}
