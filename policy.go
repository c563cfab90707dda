package main

// The policy tables. Everything here is fixed text: each entry carries the
// exact message shown to the user when the rule trips, naming the blocked
// tool, why it is blocked, and what to run instead. Messages are never
// composed at runtime.

// commandRule pairs a blocked program token with its canned message.
// This is a slice, not a map: when one command trips several rules, the
// earliest rule in declaration order supplies the message.
type commandRule struct {
	Token   string
	Message string
}

var blockedCommands = []commandRule{
	{
		Token:   "node",
		Message: "`node` is blocked here: the JavaScript runtime for this environment is Bun, and stray `node` invocations drift from the pinned toolchain. Use `bun` instead, e.g. `bun run script.js`.",
	},
	{
		Token:   "npm",
		Message: "`npm` is blocked here: package management runs through Bun so installs stay reproducible. Use `bun` instead, e.g. `bun install` or `bun add <package>`.",
	},
	{
		Token:   "npx",
		Message: "`npx` is blocked here: it fetches and executes unpinned packages. Use `bunx` instead, e.g. `bunx prettier --write src/`.",
	},
	{
		Token:   "pip",
		Message: "`pip` is blocked here: Python dependencies are managed with uv so resolutions stay reproducible. Use `uv` instead, e.g. `uv add <package>` or `uv pip install -r requirements.txt`.",
	},
	{
		Token:   "python",
		Message: "`python` is blocked outside a managed environment: the system interpreter is not the project's pinned one. Use `uv run python script.py` or the project interpreter at `.venv/bin/python`.",
	},
	{
		Token:   "python2",
		Message: "`python2` is blocked outside a managed environment: the system interpreter is not the project's pinned one. Use `uv run python script.py` or the project interpreter at `.venv/bin/python`.",
	},
	{
		Token:   "python3",
		Message: "`python3` is blocked outside a managed environment: the system interpreter is not the project's pinned one. Use `uv run python3 script.py` or the project interpreter at `.venv/bin/python3`.",
	},
}

const gitWriteMessage = "`git` write operations are blocked: the agent must not mutate repository state on its own. Read-only commands are fine (`git status`, `git diff`, `git log`, `git show`, `git rev-parse`); ask the user to run anything else, e.g. `git add` or `git commit`."

const nixRefMessage = "`nix run` and `nix build` need a trusted reference scheme (`path:`, `github:`, or `git+https:`) so the build is reproducible. Use e.g. `nix run path:./my-flake#output` or `nix run github:user/repo#package`."

// gitAllowedPrefixes lists the exact read-only invocations of git. A git
// command must start with one of these to pass; everything else is a write
// as far as the policy is concerned. Extended by applyConfig.
var gitAllowedPrefixes = []string{
	"git status",
	"git diff",
	"git log",
	"git show",
	"git rev-parse",
	"git ls-files",
	"git blame",
}

// nixTrustedSchemes mark a nix run/build reference as reproducible.
var nixTrustedSchemes = []string{"path:", "github:", "git+https:"}

// lockfileMessages maps generated-file basenames to the message shown when
// an Edit/Write targets them. Matching is exact on the basename.
// Extended by applyConfig.
var lockfileMessages = map[string]string{
	"package-lock.json": "`package-lock.json` is generated by npm and must not be edited by hand. Edit `package.json` and run `bun install` to regenerate it.",
	"bun.lockb":         "`bun.lockb` is Bun's binary lockfile and cannot be edited directly. Edit `package.json` and run `bun install` to regenerate it.",
	"yarn.lock":         "`yarn.lock` is generated by Yarn and must not be edited by hand. Edit `package.json` and run `yarn install` to regenerate it.",
	"flake.lock":        "`flake.lock` is generated by Nix and must not be edited by hand. Run `nix flake update` (or `nix flake lock --update-input <input>`) to regenerate it.",
	"uv.lock":           "`uv.lock` is generated by uv and must not be edited by hand. Edit `pyproject.toml` and run `uv lock` to regenerate it.",
}

// secretFileMessages maps secret-bearing basenames to the message shown
// when a Read (or a shell command argument) targets them.
var secretFileMessages = map[string]string{
	".env":            "`.env` holds secrets and must not be read into the conversation. Ask the user for the specific variable you need, or read `.env.example` instead.",
	".env.local":      "`.env.local` holds secrets and must not be read into the conversation. Ask the user for the specific variable you need, or read `.env.example` instead.",
	".env.production": "`.env.production` holds production secrets and must not be read into the conversation. Ask the user for the specific variable you need.",
	".netrc":          "`.netrc` holds machine credentials and must not be read. Ask the user for the endpoint details you need instead.",
	"id_rsa":          "`id_rsa` is a private SSH key and must not be read. Ask the user to run any operation that needs it.",
	"id_ed25519":      "`id_ed25519` is a private SSH key and must not be read. Ask the user to run any operation that needs it.",
	"id_ecdsa":        "`id_ecdsa` is a private SSH key and must not be read. Ask the user to run any operation that needs it.",
}

// sensitiveSubpath flags a path when the fragment appears anywhere in it,
// so `~/.ssh/known_hosts` and `/home/x/.ssh/id_rsa` both match `.ssh/`.
type sensitiveSubpath struct {
	Fragment string
	Message  string
}

var sensitiveSubpaths = []sensitiveSubpath{
	{".ssh/", "Files under `.ssh/` hold SSH keys and must not be read. Ask the user to run any SSH operation that needs them."},
	{".aws/", "Files under `.aws/` hold cloud credentials and must not be read. Ask the user for the account details you need instead."},
	{".gnupg/", "Files under `.gnupg/` hold GPG keyrings and must not be read. Ask the user to run any signing operation that needs them."},
	{".kube/config", "`.kube/config` embeds cluster credentials and must not be read. Use `kubectl config view --minify` output provided by the user instead."},
}
