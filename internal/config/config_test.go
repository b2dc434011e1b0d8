package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.ContentDir != "content" {
		t.Errorf("ContentDir: expected 'content', got %q", cfg.ContentDir)
	}
	if cfg.IndexPath != "public/search-index.json" {
		t.Errorf("IndexPath: expected 'public/search-index.json', got %q", cfg.IndexPath)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port: expected '8080', got %q", cfg.Port)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CONTENT_DIR", "/tmp/docs")
	t.Setenv("REVALIDATE_SECRET", "s3cret")

	cfg := Load()
	if cfg.ContentDir != "/tmp/docs" {
		t.Errorf("ContentDir: expected '/tmp/docs', got %q", cfg.ContentDir)
	}
	if err := cfg.ValidateServer(); err != nil {
		t.Errorf("ValidateServer: unexpected error %v", err)
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ValidateServer(); err == nil {
		t.Error("expected error without REVALIDATE_SECRET")
	}
	if err := cfg.ValidateSync(); err == nil {
		t.Error("expected error without GitHub repo settings")
	}
}
