package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yamlText := `
http_addr: ":7070"
log_level: warn
analysis:
  simulations: 50
  activation_threshold: 0.2
`
	if err := os.WriteFile(path, []byte(yamlText), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Errorf("expected http_addr :7070, got %s", cfg.HTTPAddr)
	}
	if cfg.Analysis.Simulations != 50 {
		t.Errorf("expected simulations 50, got %d", cfg.Analysis.Simulations)
	}
	// Unset fields keep defaults
	if cfg.Analysis.PathLength != 3 {
		t.Errorf("expected default path_length 3, got %d", cfg.Analysis.PathLength)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
