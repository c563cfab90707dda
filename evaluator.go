package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/victorarias/claude-agent-sdk-go/sdk"
	"github.com/victorarias/claude-agent-sdk-go/types"
)

// DefaultModel is the default model used for second-opinion evaluation
const DefaultModel = "claude-opus-4-5-20251101"

const systemPrompt = `You are a second-opinion evaluator for agent tool calls in a reproducibility-focused environment. The deterministic policy engine has already run and found no violation; your only job is to decide whether the call is so clearly safe that it can be auto-approved without asking the user.

RESPOND WITH ONLY ONE WORD: "ALLOW" or "ASK"

Environment conventions (already enforced before you see a call, do not re-litigate them):
- JavaScript runs through bun/bunx, Python through uv or a project venv
- git is read-only for the agent; nix run/build references use trusted schemes
- Lockfiles are never hand-edited; secret files are never read

ALLOW when the call is:
- A read-only inspection (listing, searching, printing, measuring)
- A project-local build, test, lint, or format step (bun, uv, go, make, nix develop)
- File creation or editing inside the project working directory
- Routine process or session management (kill on a stuck process, tmux)

ASK when the call:
- Deletes or overwrites anything outside the working directory
- Talks to cloud or cluster APIs with a mutating verb
- Downloads and executes code, or pipes network content into an interpreter
- Touches system configuration, services, or device files
- Is too ambiguous to classify from its text alone

When in doubt, ASK. An unnecessary question costs seconds; an unwanted
mutation can cost much more.`

// Evaluator gives second opinions on tool calls the policy has no opinion on.
type Evaluator interface {
	Evaluate(ctx context.Context, req EvalRequest) (EvalResponse, error)
	Close() error
}

// ClaudeEvaluator wraps the Claude SDK for tool call evaluation.
type ClaudeEvaluator struct {
	model string
}

// NewClaudeEvaluator creates an evaluator that uses the Claude API.
func NewClaudeEvaluator(model string) *ClaudeEvaluator {
	return &ClaudeEvaluator{model: model}
}

func (e *ClaudeEvaluator) Evaluate(ctx context.Context, req EvalRequest) (EvalResponse, error) {
	prompt := FormatPrompt(req.ToolName, req.ToolInput, req.WorkDir)

	messages, err := sdk.RunQuery(ctx, prompt,
		types.WithModel(e.model),
		types.WithMaxTurns(1),
		types.WithSystemPrompt(systemPrompt),
	)
	if err != nil {
		return EvalResponse{Decision: "ASK", Reason: "SDK error: " + err.Error()}, nil
	}

	var responseText string
	for _, msg := range messages {
		if m, ok := msg.(*types.AssistantMessage); ok {
			responseText = m.Text()
			break
		}
	}

	if responseText == "" {
		return EvalResponse{Decision: "ASK", Reason: "empty response"}, nil
	}

	decision := ParseDecision(responseText)
	return EvalResponse{Decision: decision, Reason: strings.TrimSpace(responseText)}, nil
}

func (e *ClaudeEvaluator) Close() error {
	return nil
}

// FormatPrompt creates the evaluation prompt for Claude.
func FormatPrompt(toolName, toolInput, workDir string) string {
	return fmt.Sprintf("Tool: %s\nInput: %s\nWorking directory: %s\n\nRespond with ALLOW or ASK.", toolName, toolInput, workDir)
}

// ParseDecision extracts ALLOW or ASK from a Claude response.
// Defaults to ASK (fail-safe) if unclear.
func ParseDecision(responseText string) string {
	upper := strings.ToUpper(strings.TrimSpace(responseText))
	if strings.Contains(upper, "ALLOW") {
		return "ALLOW"
	}
	return "ASK"
}
