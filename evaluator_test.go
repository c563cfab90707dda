package main

import (
	"strings"
	"testing"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		response string
		want     string
	}{
		{"ALLOW", "ALLOW"},
		{"ASK", "ASK"},
		{"allow", "ALLOW"},
		{"ask", "ASK"},
		{"ALLOW - read-only inspection", "ALLOW"},
		{"ASK - mutates cluster state", "ASK"},
		{"I would say ALLOW since this is safe", "ALLOW"},
		{"This should ASK the user", "ASK"},
		{"", "ASK"},           // empty = fail-safe
		{"maybe", "ASK"},      // unclear = fail-safe
		{"not sure", "ASK"},   // unclear = fail-safe
		{"definitely", "ASK"}, // no ALLOW keyword = fail-safe
		{"ALLOW\n\nThis is safe.", "ALLOW"},
		{"  ALLOW  ", "ALLOW"},
		{"  ASK  ", "ASK"},
	}

	for _, tt := range tests {
		t.Run(tt.response, func(t *testing.T) {
			got := ParseDecision(tt.response)
			if got != tt.want {
				t.Errorf("ParseDecision(%q) = %q, want %q", tt.response, got, tt.want)
			}
		})
	}
}

func TestFormatPrompt(t *testing.T) {
	prompt := FormatPrompt("Bash", `{"command":"ls"}`, "/proj")

	if prompt == "" {
		t.Fatal("FormatPrompt returned empty string")
	}

	for _, s := range []string{"Bash", `{"command":"ls"}`, "/proj", "ALLOW", "ASK"} {
		if !strings.Contains(prompt, s) {
			t.Errorf("FormatPrompt missing %q in:\n%s", s, prompt)
		}
	}
}
