package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseHookInput(t *testing.T) {
	input := `{
		"session_id": "test-session",
		"tool_name": "Bash",
		"tool_input": {
			"command": "git status",
			"description": "Show working tree status"
		},
		"cwd": "/home/user/projects/myapp"
	}`

	var hookInput HookInput
	if err := json.Unmarshal([]byte(input), &hookInput); err != nil {
		t.Fatalf("Failed to parse input: %v", err)
	}

	if hookInput.ToolName != "Bash" {
		t.Errorf("Expected tool_name 'Bash', got '%s'", hookInput.ToolName)
	}
	if hookInput.WorkingDir != "/home/user/projects/myapp" {
		t.Errorf("Expected cwd '/home/user/projects/myapp', got '%s'", hookInput.WorkingDir)
	}
	if len(hookInput.ToolInput) == 0 {
		t.Error("Expected tool_input to be non-empty")
	}
}

func TestAllowOutputFormat(t *testing.T) {
	output := HookOutput{
		HookSpecificOutput: &HookSpecificOutput{
			HookEventName: "PermissionRequest",
			Decision: &Decision{
				Behavior: "allow",
			},
		},
	}

	jsonOut, err := json.Marshal(output)
	if err != nil {
		t.Fatalf("Failed to marshal output: %v", err)
	}

	jsonStr := string(jsonOut)
	if !strings.Contains(jsonStr, `"hookEventName":"PermissionRequest"`) {
		t.Errorf("Output missing hookEventName field: %s", jsonStr)
	}
	if !strings.Contains(jsonStr, `"behavior":"allow"`) {
		t.Errorf("Output missing behavior field: %s", jsonStr)
	}
}

func TestDenyOutputFormat(t *testing.T) {
	output := HookOutput{
		HookSpecificOutput: &HookSpecificOutput{
			HookEventName: "PermissionRequest",
			Decision: &Decision{
				Behavior: "deny",
				Message:  lockfileMessages["flake.lock"],
			},
		},
	}

	jsonOut, err := json.Marshal(output)
	if err != nil {
		t.Fatalf("Failed to marshal output: %v", err)
	}

	jsonStr := string(jsonOut)
	if !strings.Contains(jsonStr, `"behavior":"deny"`) {
		t.Errorf("Output missing deny behavior: %s", jsonStr)
	}
	if !strings.Contains(jsonStr, "flake.lock") {
		t.Errorf("Output missing the policy message: %s", jsonStr)
	}
}

func TestShouldSkipEvaluation(t *testing.T) {
	for _, tool := range []string{"Glob", "Grep", "WebFetch", "WebSearch", "Task", "Skill", "ExitPlanMode"} {
		if !shouldSkipEvaluation(tool) {
			t.Errorf("%s should be skipped", tool)
		}
	}
	// Read stays evaluated: the secret-file table applies to it.
	for _, tool := range []string{"Bash", "Edit", "Write", "NotebookEdit", "Read"} {
		if shouldSkipEvaluation(tool) {
			t.Errorf("%s should be evaluated", tool)
		}
	}
}
