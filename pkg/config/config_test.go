package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CHERRY_API_URL", "")
	t.Setenv("CHERRY_DATA_ROOT", "")
	t.Setenv("CHERRY_DB_PATH", "")
	t.Setenv("DEBUG", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err == nil {
		t.Fatal("expected error for explicit missing .env file")
	}

	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Root != "./cherry" {
		t.Errorf("Data.Root = %q, expected default ./cherry", cfg.Data.Root)
	}
	if cfg.API.URL != "" {
		t.Errorf("API.URL = %q, expected empty", cfg.API.URL)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	t.Setenv("CHERRY_API_URL", "")
	t.Setenv("CHERRY_DATA_ROOT", "")
	t.Setenv("DEBUG", "")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "CHERRY_API_URL=http://localhost:3000\nCHERRY_DATA_ROOT=/tmp/cherry\nDEBUG=true\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Load(envFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.URL != "http://localhost:3000" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.Data.Root != "/tmp/cherry" {
		t.Errorf("Data.Root = %q", cfg.Data.Root)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		API:  APIConfig{URL: "http://localhost:3000"},
		Data: DataConfig{Root: "./cherry"},
	}

	if err := cfg.Validate("api.url", "data.root"); err != nil {
		t.Errorf("Validate on set fields: %v", err)
	}
	if err := cfg.Validate("data.layoutFile"); err == nil {
		t.Error("expected error for unset data.layoutFile")
	}
}
