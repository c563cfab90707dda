package main

import (
	"regexp"
	"strings"
)

var gitWordRe = regexp.MustCompile(`\bgit\b`)

// CheckGitCommand enforces the read-only allow-list for git. The write
// surface of git is unbounded, so instead of enumerating bad subcommands
// the classifier only passes commands that start with a known read-only
// prefix; anything else naming git — however obfuscated — is denied.
//
// Piping a read-only command elsewhere stays allowed (`git status | grep
// modified` starts with an allowed prefix); the scan only re-triggers when
// the word git itself reappears in a position that starts a command.
func CheckGitCommand(command string) *Violation {
	command = strings.TrimSpace(command)

	if rest := unwrapShellWrapper(command); rest != "" {
		if strings.Contains(rest, "git") {
			return CheckGitCommand(rest)
		}
		return nil
	}

	if actualCommandToken(command) == "git" && !hasAllowedGitPrefix(command) {
		return &Violation{Message: gitWriteMessage}
	}

	for _, loc := range gitWordRe.FindAllStringIndex(command, -1) {
		if loc[0] == 0 {
			continue // leading invocation, handled above
		}
		if !startsEmbeddedCommand(command, loc[0]) {
			continue
		}
		if !hasAllowedGitPrefix(extractCommandFragment(command, loc[0])) {
			return &Violation{Message: gitWriteMessage}
		}
	}
	return nil
}

// hasAllowedGitPrefix reports whether the trimmed command begins with one
// of the exact read-only prefixes.
func hasAllowedGitPrefix(command string) bool {
	command = strings.TrimSpace(command)
	for _, prefix := range gitAllowedPrefixes {
		if command == prefix || strings.HasPrefix(command, prefix+" ") {
			return true
		}
	}
	return false
}

// startsEmbeddedCommand reports whether the token at index i sits in a
// position where the shell would run it as a command: right after a
// substitution/subshell open, a backtick, a quote, or a chaining operator.
func startsEmbeddedCommand(command string, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch command[j] {
		case ' ', '\t':
			continue
		case '(', '`', '\'', '"', ';', '&', '|', '\n':
			return true
		default:
			return false
		}
	}
	return false
}

// extractCommandFragment returns the text from index i up to the end of the
// enclosing shell span: the next operator, backtick, closing paren, or
// quote. Whitespace is kept so multi-word prefixes remain checkable.
func extractCommandFragment(command string, i int) string {
	j := i
	for ; j < len(command); j++ {
		switch command[j] {
		case ';', '&', '|', '`', ')', '\'', '"', '<', '>', '\n':
			return strings.TrimSpace(command[i:j])
		}
	}
	return strings.TrimSpace(command[i:j])
}
