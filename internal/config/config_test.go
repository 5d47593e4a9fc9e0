package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WindowTitle != "FL Studio" {
		t.Errorf("WindowTitle = %q, want %q", cfg.WindowTitle, "FL Studio")
	}
	if cfg.Confidence != 0.8 {
		t.Errorf("Confidence = %v, want 0.8", cfg.Confidence)
	}
	if cfg.Mixer.StrideX != 60 {
		t.Errorf("Mixer.StrideX = %d, want 60", cfg.Mixer.StrideX)
	}
	if cfg.FindRetryAttempts != 3 {
		t.Errorf("FindRetryAttempts = %d, want 3", cfg.FindRetryAttempts)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DAWCTL_WINDOW_TITLE", "FL Studio 2024")
	t.Setenv("DAWCTL_CONFIDENCE", "0.65")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WindowTitle != "FL Studio 2024" {
		t.Errorf("WindowTitle = %q", cfg.WindowTitle)
	}
	if cfg.Confidence != 0.65 {
		t.Errorf("Confidence = %v", cfg.Confidence)
	}
}

func TestLoad_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dawctl.yaml")
	data := "window_title: FL Studio 21\nmixer:\n  stride_x: 72\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WindowTitle != "FL Studio 21" {
		t.Errorf("WindowTitle = %q", cfg.WindowTitle)
	}
	if cfg.Mixer.StrideX != 72 {
		t.Errorf("Mixer.StrideX = %d, want 72", cfg.Mixer.StrideX)
	}
	// Untouched keys keep env defaults.
	if cfg.Mixer.TrackY != 400 {
		t.Errorf("Mixer.TrackY = %d, want 400", cfg.Mixer.TrackY)
	}
}

func TestLoad_InvalidConfidence(t *testing.T) {
	t.Setenv("DAWCTL_CONFIDENCE", "1.5")
	if _, err := Load(""); err == nil {
		t.Error("expected error for confidence > 1")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}
