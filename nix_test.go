package main

import "testing"

func TestCheckNixCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		denied  bool
	}{
		// ===== trusted reference schemes =====
		{"path scheme", "nix run path:./my-flake#output", false},
		{"github scheme", "nix run github:user/repo#output", false},
		{"git+https scheme", "nix run git+https://github.com/user/repo#output", false},
		{"registry with fragment", "nix run nixpkgs#yq", false},
		{"registry with channel", "nix run nixpkgs/release-24.05#yq", false},

		// ===== untrusted references =====
		{"relative", "nix run ./my-flake#output", true},
		{"parent relative", "nix run ../flake#package", true},
		{"absolute", "nix build /absolute/path#output", true},
		{"bare name", "nix run my-flake", true},
		{"bare registry name", "nix run nixpkgs", true},
		{"flags then bad ref", "nix run --impure ./my-flake#output", true},
		{"flags then good ref", "nix run --impure github:user/repo#pkg", false},

		// ===== non run/build subcommands are not examined =====
		{"flake update", "nix flake update", false},
		{"develop", "nix develop", false},
		{"shell", "nix shell nixpkgs#hello", false},
		{"no ref", "nix build", false},

		// ===== wrappers and obfuscation =====
		{"exec wrapper", "exec nix run ./my-flake#output", true},
		{"eval wrapper", `eval "nix run ../flake#pkg"`, true},
		{"eval wrapper trusted", `eval "nix run github:user/repo#pkg"`, false},
		{"quoted", `sh -c "nix run ./flake#out"`, true},
		{"substitution", "echo $(nix build /tmp/flake#out)", true},
		{"backticks", "echo `nix run ./x#y`", true},
		{"path to nix binary", "/run/current-system/sw/bin/nix run ./flake#out", true},

		// ===== unrelated commands =====
		{"plain ls", "ls -la", false},
		{"mentions nix", "echo nix is installed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := CheckNixCommand(tt.command)
			if (v != nil) != tt.denied {
				t.Errorf("CheckNixCommand(%q) = %v, want denied=%v", tt.command, v, tt.denied)
			}
			if v != nil && v.Message != nixRefMessage {
				t.Errorf("CheckNixCommand(%q) message = %q, want the nix message", tt.command, v.Message)
			}
		})
	}
}

func TestTrustedNixRef(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"path:./my-flake#output", true},
		{"github:user/repo#output", true},
		{"git+https://github.com/user/repo", true},
		{"nixpkgs#yq", true},
		{"nixpkgs/release-24.05#yq", true},
		{"./my-flake#output", false},
		{"../flake#package", false},
		{"/absolute/path#output", false},
		{"my-flake", false},
		{"nixpkgs", false},
		{"some_name.v2", false},
	}
	for _, tt := range tests {
		if got := trustedNixRef(tt.ref); got != tt.want {
			t.Errorf("trustedNixRef(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestFirstPositionalArg(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"./flake#out"}, "./flake#out"},
		{[]string{"--impure", "-L", "github:a/b#c"}, "github:a/b#c"},
		{[]string{"--impure"}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := firstPositionalArg(tt.args); got != tt.want {
			t.Errorf("firstPositionalArg(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
