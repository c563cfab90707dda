package main

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the optional user configuration read from
// ~/.config/repro-guard/config.yaml. A missing or unreadable file yields
// the defaults; the policy never hard-fails on configuration the same way
// it never hard-fails on malformed tool input.
type Config struct {
	// Model used by the daemon's second-opinion evaluator.
	Model string
	// IdleMinutes before the daemon shuts itself down.
	IdleMinutes int
	// Escalate controls whether calls the policy has no opinion on are
	// sent to the daemon for a possible auto-approve.
	Escalate bool
	// GitAllow appends extra read-only prefixes to the git allow-list.
	GitAllow []string
	// ProtectedFiles adds basename -> message entries to the lockfile
	// table for site-specific generated files.
	ProtectedFiles map[string]string
}

func defaultConfig() Config {
	return Config{
		Model:       DefaultModel,
		IdleMinutes: 5,
		Escalate:    true,
	}
}

func configFilePath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func loadConfig() Config {
	cfg := defaultConfig()

	data, err := os.ReadFile(configFilePath())
	if err != nil {
		return applyModelEnv(cfg)
	}

	var raw struct {
		Model          string            `yaml:"model"`
		IdleMinutes    int               `yaml:"idle_minutes"`
		Escalate       *bool             `yaml:"escalate"`
		GitAllow       []string          `yaml:"git_allow"`
		ProtectedFiles map[string]string `yaml:"protected_files"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return applyModelEnv(cfg)
	}

	if raw.Model != "" {
		cfg.Model = raw.Model
	}
	if raw.IdleMinutes > 0 {
		cfg.IdleMinutes = raw.IdleMinutes
	}
	if raw.Escalate != nil {
		cfg.Escalate = *raw.Escalate
	}
	cfg.GitAllow = raw.GitAllow
	cfg.ProtectedFiles = raw.ProtectedFiles

	return applyModelEnv(cfg)
}

func applyModelEnv(cfg Config) Config {
	if model := os.Getenv("REPRO_GUARD_MODEL"); model != "" {
		cfg.Model = model
	}
	return cfg
}

func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleMinutes) * time.Minute
}

// applyConfig folds site-specific entries into the static policy tables.
// Called once at startup, before any classification runs.
func applyConfig(cfg Config) {
	gitAllowedPrefixes = append(gitAllowedPrefixes, cfg.GitAllow...)
	for name, msg := range cfg.ProtectedFiles {
		lockfileMessages[name] = msg
	}
}
