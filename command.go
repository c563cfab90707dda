package main

import (
	"regexp"
	"strings"
)

// CheckBashCommand runs every command classifier in fixed order and returns
// the first violation, or nil when the command passes. The order decides
// which message wins when a command trips more than one rule: blocked
// programs (in table order), then git, then nix, then secret paths.
func CheckBashCommand(command string) *Violation {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}

	for _, rule := range blockedCommands {
		if invokesBlockedCommand(command, rule.Token) {
			return &Violation{Message: rule.Message}
		}
	}

	if v := CheckGitCommand(command); v != nil {
		return v
	}
	if v := CheckNixCommand(command); v != nil {
		return v
	}

	return checkCommandSecrets(command)
}

// --- Tokenizer helpers ---

// actualCommandToken returns the first whitespace token that is not an
// environment variable assignment, so `FOO=1 BAR=2 node x.js` yields `node`.
func actualCommandToken(command string) string {
	for _, w := range strings.Fields(command) {
		if strings.Contains(w, "=") {
			continue
		}
		return w
	}
	return ""
}

// unwrapShellWrapper returns the remainder of an exec- or eval-wrapped
// command, or "" when the command is not wrapped.
func unwrapShellWrapper(command string) string {
	fields := strings.Fields(command)
	if len(fields) < 2 {
		return ""
	}
	if fields[0] != "exec" && fields[0] != "eval" {
		return ""
	}
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(command), fields[0]))
	return strings.Trim(rest, `"'`)
}

// --- Program classifier ---

// tokenPatterns holds the compiled scans for one blocked program token.
// Each scan catches a different obfuscation shape; any match denies.
type tokenPatterns struct {
	envPrefix    *regexp.Regexp // VAR=1 token ...
	word         *regexp.Regexp // token as a standalone word anywhere
	substitution *regexp.Regexp // $( ... token ... )
	backticks    *regexp.Regexp // ` ... token ... `
	quoted       *regexp.Regexp // ' or " substring containing token
	afterOp      *regexp.Regexp // ; & | && || followed by token
	background   *regexp.Regexp // token ... &
	redirect     *regexp.Regexp // token ... < or >
	escaped      *regexp.Regexp // t\o\k\e\n spellings
}

var blockedPatterns = map[string]*tokenPatterns{}

func init() {
	for _, rule := range blockedCommands {
		blockedPatterns[rule.Token] = compileTokenPatterns(rule.Token)
	}
}

func compileTokenPatterns(token string) *tokenPatterns {
	t := regexp.QuoteMeta(token)

	// Token with an optional backslash between every character, so `n\od\e`
	// still reads as node.
	chars := make([]string, 0, len(token))
	for _, ch := range token {
		chars = append(chars, regexp.QuoteMeta(string(ch)))
	}
	escaped := strings.Join(chars, `\\?`)

	return &tokenPatterns{
		envPrefix:    regexp.MustCompile(`(?i)^[A-Z_][A-Z0-9_]*=.*\b` + t + `\b`),
		word:         regexp.MustCompile(`\b` + t + `\b`),
		substitution: regexp.MustCompile(`\$\([^)]*\b` + t + `\b[^)]*\)`),
		backticks:    regexp.MustCompile("`[^`]*\\b" + t + "\\b[^`]*`"),
		quoted:       regexp.MustCompile(`['"][^'"]*\b` + t + `\b[^'"]*['"]`),
		afterOp:      regexp.MustCompile(`(;|\|\||&&|\||&)\s*` + t + `\b`),
		background:   regexp.MustCompile(`\b` + t + `\b[^;|&]*&`),
		redirect:     regexp.MustCompile(`\b` + t + `\b[^;|&]*[<>]`),
		escaped:      regexp.MustCompile(`\b` + escaped + `\b`),
	}
}

// invokesBlockedCommand reports whether the command would invoke the given
// blocked token, directly or through shell obfuscation. `which`/`whereis`
// lookups are always fine, and python-family tokens get the managed-python
// carve-out re-checked at the point of every would-be denial, so a venv
// interpreter stays allowed even inside pipes, chains, or backgrounding.
func invokesBlockedCommand(command, token string) bool {
	first := actualCommandToken(command)
	if first == "which" || first == "whereis" {
		return false
	}

	p := blockedPatterns[token]

	denied := false
	switch {
	case p.envPrefix.MatchString(command):
		denied = true
	case wrapperContains(command, token):
		denied = true
	case first == token:
		denied = true
	default:
		denied = p.word.MatchString(command) ||
			p.substitution.MatchString(command) ||
			p.backticks.MatchString(command) ||
			p.quoted.MatchString(command) ||
			p.afterOp.MatchString(command) ||
			p.background.MatchString(command) ||
			p.redirect.MatchString(command) ||
			p.escaped.MatchString(command)
	}

	if denied && strings.HasPrefix(token, "python") && isManagedPython(command) {
		return false
	}
	return denied
}

func wrapperContains(command, token string) bool {
	rest := unwrapShellWrapper(command)
	return rest != "" && strings.Contains(rest, token)
}

// venvPatterns mark a python invocation as coming from a project-managed
// environment rather than the system interpreter.
var venvPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.venv/bin/`),
	regexp.MustCompile(`(^|[\s/"'=(])venv/bin/`),
	regexp.MustCompile(`(^|[\s/"'=(])env/bin/`),
	regexp.MustCompile(`\buv\s+run\b`),
	regexp.MustCompile(`\buvx\b`),
}

func isManagedPython(command string) bool {
	for _, p := range venvPatterns {
		if p.MatchString(command) {
			return true
		}
	}
	return false
}

// checkCommandSecrets applies the secret-path tables to every bare or
// quoted token in the command, so `cat .env` is caught the same way a
// direct Read of .env would be.
func checkCommandSecrets(command string) *Violation {
	for _, field := range strings.Fields(command) {
		field = strings.Trim(field, "\"'`")
		if field == "" || strings.HasPrefix(field, "-") {
			continue
		}
		if v := CheckReadPath(field); v != nil {
			return v
		}
	}
	return nil
}
