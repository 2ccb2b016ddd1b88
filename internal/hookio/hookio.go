// Package hookio implements the hook result protocol: a single JSON object
// on stdout telling the orchestration layer whether to continue or block,
// plus the exit-code convention consumed by hook runners.
package hookio

import (
	"encoding/json"
	"io"
)

// Result values for the result field.
const (
	ResultContinue = "continue"
	ResultBlock    = "block"
)

// Result is the standard hook result structure. OK reports that the hook
// itself produced a result; whether the workflow may proceed is carried in
// Result. Message and Reason are omitted from the JSON when empty.
type Result struct {
	OK      bool   `json:"ok"`
	Result  string `json:"result"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Continue returns an allow-through result with the given message.
func Continue(message string) Result {
	return Result{OK: true, Result: ResultContinue, Message: message}
}

// Block returns a blocking result with the given reason.
func Block(reason string) Result {
	return Result{OK: true, Result: ResultBlock, Reason: reason}
}

// IsSuccess reports whether this result allows the workflow to continue.
func (r Result) IsSuccess() bool {
	return r.Result == ResultContinue
}

// ExitCode returns the process exit code for this result: 0 for continue,
// 1 for block.
func (r Result) ExitCode() int {
	if r.IsSuccess() {
		return 0
	}
	return 1
}

// ReadInput parses the JSON payload a hook receives on stdin. Missing or
// malformed input yields an empty map: hooks must not fail because the
// caller sent nothing.
func ReadInput(r io.Reader) map[string]any {
	var payload map[string]any
	if err := json.NewDecoder(r).Decode(&payload); err != nil || payload == nil {
		return map[string]any{}
	}
	return payload
}

// Write serializes the result as a single JSON line.
func Write(w io.Writer, result Result) error {
	return json.NewEncoder(w).Encode(result)
}
