package main

import "encoding/json"

// CheckToolUse routes a tool call to the policy classifiers and returns the
// first violation found, or nil when the call passes. Malformed or missing
// input fields pass (fail-open): a broken event is a host bug, not a policy
// breach, and upgrading it to a denial would only break usability.
func CheckToolUse(toolName string, toolInput json.RawMessage) *Violation {
	switch toolName {
	case "Bash":
		var input struct {
			Command string `json:"command"`
		}
		if err := json.Unmarshal(toolInput, &input); err != nil {
			return nil
		}
		return CheckBashCommand(input.Command)

	case "Edit", "Write", "NotebookEdit":
		return checkFileMutation(toolName, toolInput)

	case "Read":
		var input struct {
			FilePath    string `json:"file_path"`
			FilePathAlt string `json:"filePath"`
		}
		if err := json.Unmarshal(toolInput, &input); err != nil {
			return nil
		}
		path := input.FilePath
		if path == "" {
			path = input.FilePathAlt
		}
		return CheckReadPath(path)
	}

	return nil
}

func checkFileMutation(toolName string, toolInput json.RawMessage) *Violation {
	var input struct {
		FilePath     string `json:"file_path"`
		FilePathAlt  string `json:"filePath"`
		NotebookPath string `json:"notebook_path"`
		NewString    string `json:"new_string"`
	}
	if err := json.Unmarshal(toolInput, &input); err != nil {
		return nil
	}

	path := input.FilePath
	if path == "" {
		path = input.FilePathAlt
	}
	if toolName == "NotebookEdit" && input.NotebookPath != "" {
		path = input.NotebookPath
	}

	if v := CheckWritePath(path); v != nil {
		return v
	}

	// new_string is parsed so content-based rules can hook in here; no edit
	// is rejected on its replacement text today.
	_ = input.NewString
	return nil
}
