package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("TG_TOKEN", "abc123")

	out, err := expandEnv([]byte("access_token: ${TG_TOKEN}\ndomain: ${TG_DOMAIN:-telegra.ph}\n"))
	if err != nil {
		t.Fatalf("expandEnv() error: %v", err)
	}
	want := "access_token: abc123\ndomain: telegra.ph\n"
	if string(out) != want {
		t.Errorf("expandEnv() = %q, want %q", out, want)
	}
}

func TestExpandEnvUnresolved(t *testing.T) {
	_, err := expandEnv([]byte("access_token: ${TG_DOES_NOT_EXIST}\n"))
	if err == nil {
		t.Fatal("expected error for unresolved variable, got nil")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "access_token: tok\ndomain: graph.org\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(path, true)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.AccessToken != "tok" {
		t.Errorf("AccessToken = %q, want %q", cfg.AccessToken, "tok")
	}
	if cfg.Domain != "graph.org" {
		t.Errorf("Domain = %q, want %q", cfg.Domain, "graph.org")
	}
}

func TestLoadConfigMissingOptional(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.AccessToken != "" {
		t.Errorf("AccessToken = %q, want empty", cfg.AccessToken)
	}
}

func TestLoadConfigMissingRequired(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), true)
	if err == nil {
		t.Fatal("expected error for missing required config, got nil")
	}
}
