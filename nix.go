package main

import (
	"regexp"
	"strings"
)

var nixPhraseRe = regexp.MustCompile(`\bnix\s+(run|build)\b`)
var bareIdentifierRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// CheckNixCommand polices the reference argument of `nix run` and
// `nix build`. The tool itself is fine; what matters is where the flake
// comes from. Local and bare references are denied, scheme-prefixed and
// registry references pass. Other nix subcommands are not examined.
func CheckNixCommand(command string) *Violation {
	command = strings.TrimSpace(command)

	if rest := unwrapShellWrapper(command); rest != "" {
		return CheckNixCommand(rest)
	}

	if v := checkNixTokens(strings.Fields(command)); v != nil {
		return v
	}

	// nix run/build phrases smuggled inside substitution, backticks, or
	// quoted strings.
	for _, loc := range nixPhraseRe.FindAllStringIndex(command, -1) {
		if loc[0] == 0 {
			continue // leading invocation, handled by the token walk
		}
		if !startsEmbeddedCommand(command, loc[0]) {
			continue
		}
		frag := extractCommandFragment(command, loc[0])
		if v := checkNixTokens(strings.Fields(frag)); v != nil {
			return v
		}
	}
	return nil
}

// checkNixTokens walks whitespace tokens looking for a nix run/build
// invocation and validates its first positional argument.
func checkNixTokens(fields []string) *Violation {
	for i, tok := range fields {
		if tok != "nix" && !strings.HasSuffix(tok, "/nix") {
			continue
		}
		if i+1 >= len(fields) {
			continue
		}
		sub := fields[i+1]
		if sub != "run" && sub != "build" {
			continue
		}
		ref := firstPositionalArg(fields[i+2:])
		if ref != "" && !trustedNixRef(ref) {
			return &Violation{Message: nixRefMessage}
		}
	}
	return nil
}

// firstPositionalArg skips flag tokens and returns the first positional
// argument, or "" when there is none.
func firstPositionalArg(args []string) string {
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		return arg
	}
	return ""
}

// trustedNixRef reports whether a flake reference is reproducible. A
// reference passes with a trusted scheme, or when it is neither a local
// path nor a bare identifier. The bare-identifier denial is deliberately
// broad: `my-flake` and `nixpkgs` both fail, while `nixpkgs#yq` passes
// because the fragment separator rules it out as a plain local name.
func trustedNixRef(ref string) bool {
	for _, scheme := range nixTrustedSchemes {
		if strings.HasPrefix(ref, scheme) {
			return true
		}
	}
	if strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") || strings.HasPrefix(ref, "/") {
		return false
	}
	return !bareIdentifierRe.MatchString(ref)
}
