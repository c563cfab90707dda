package main

// Violation is a policy breach. Message is one of the canned strings from
// policy.go, propagated verbatim to the user.
type Violation struct {
	Message string
}

// EvalRequest is sent from client to daemon via Unix socket when the
// deterministic policy has no opinion and a second opinion is wanted.
type EvalRequest struct {
	ToolName  string `json:"tool_name"`
	ToolInput string `json:"tool_input"`
	WorkDir   string `json:"work_dir"`
}

// EvalResponse is sent from daemon to client via Unix socket.
type EvalResponse struct {
	Decision string `json:"decision"` // "ALLOW" or "ASK"
	Reason   string `json:"reason"`
}
