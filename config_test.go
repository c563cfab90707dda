package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".config", "repro-guard")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("REPRO_GUARD_MODEL", "")

	cfg := loadConfig()
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want default", cfg.Model)
	}
	if cfg.IdleMinutes != 5 {
		t.Errorf("IdleMinutes = %d, want 5", cfg.IdleMinutes)
	}
	if !cfg.Escalate {
		t.Error("Escalate should default to true")
	}
	if cfg.IdleTimeout() != 5*time.Minute {
		t.Errorf("IdleTimeout = %s, want 5m", cfg.IdleTimeout())
	}
}

func TestLoadConfigFile(t *testing.T) {
	writeConfigFile(t, `
model: claude-test-model
idle_minutes: 2
escalate: false
git_allow:
  - "git remote -v"
protected_files:
  site.lock: "` + "`site.lock`" + ` is generated by the deploy tool. Run make lock to regenerate it."
`)
	t.Setenv("REPRO_GUARD_MODEL", "")

	cfg := loadConfig()
	if cfg.Model != "claude-test-model" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.IdleMinutes != 2 {
		t.Errorf("IdleMinutes = %d", cfg.IdleMinutes)
	}
	if cfg.Escalate {
		t.Error("Escalate should be false")
	}
	if len(cfg.GitAllow) != 1 || cfg.GitAllow[0] != "git remote -v" {
		t.Errorf("GitAllow = %v", cfg.GitAllow)
	}
	if _, ok := cfg.ProtectedFiles["site.lock"]; !ok {
		t.Errorf("ProtectedFiles = %v", cfg.ProtectedFiles)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	writeConfigFile(t, "model: custom-model\n")
	t.Setenv("REPRO_GUARD_MODEL", "")

	cfg := loadConfig()
	if cfg.Model != "custom-model" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.IdleMinutes != 5 {
		t.Errorf("IdleMinutes = %d, want default 5", cfg.IdleMinutes)
	}
	if !cfg.Escalate {
		t.Error("Escalate should stay true when the key is absent")
	}
}

func TestLoadConfigInvalidYAMLFallsBack(t *testing.T) {
	writeConfigFile(t, ":\tnot yaml {{{")
	t.Setenv("REPRO_GUARD_MODEL", "")

	cfg := loadConfig()
	if cfg.Model != DefaultModel || cfg.IdleMinutes != 5 || !cfg.Escalate {
		t.Errorf("invalid config should yield defaults, got %+v", cfg)
	}
}

func TestModelEnvOverride(t *testing.T) {
	writeConfigFile(t, "model: from-file\n")
	t.Setenv("REPRO_GUARD_MODEL", "from-env")

	cfg := loadConfig()
	if cfg.Model != "from-env" {
		t.Errorf("Model = %q, want env override", cfg.Model)
	}
}

func TestApplyConfigExtendsTables(t *testing.T) {
	applyConfig(Config{
		GitAllow: []string{"git remote -v"},
		ProtectedFiles: map[string]string{
			"site.lock": "`site.lock` is generated by the deploy tool and must not be edited by hand.",
		},
	})

	if v := CheckGitCommand("git remote -v"); v != nil {
		t.Errorf("configured git prefix still denied: %v", v)
	}
	if v := CheckWritePath("deploy/site.lock"); v == nil {
		t.Error("configured protected file not denied")
	}
}
