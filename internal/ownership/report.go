package ownership

import (
	"fmt"
	"strings"
)

const conflictHeader = "VALIDATION FAILED: File ownership conflicts detected.\n\nCONFLICTS:\n"

const conflictFooter = "\n\nACTION REQUIRED: Review the File Ownership Matrix and task definitions. " +
	"Ensure each file is CREATEd by at most one task, parallel tasks have non-overlapping scopes, " +
	"and no task modifies files in its BOUNDARY list."

// Validate is the single authoritative entry point: plan text in, Report
// out. CLI-facing wrappers only adapt the Report's formatting.
func Validate(content string) Report {
	plan := ParsePlan(content)
	return Report{
		TaskCount: len(plan.Tasks),
		Conflicts: EvaluateRules(plan.Tasks),
		Warnings:  plan.Warnings,
	}
}

// Summary renders the pass-state message for a validated plan. An empty
// task set gets its own message: a plan with no tasks has nothing to
// validate, which is a pass, not an error.
func (r Report) Summary(source string) string {
	if r.TaskCount == 0 {
		return fmt.Sprintf("No tasks found in plan file %s (nothing to validate)", source)
	}
	msg := fmt.Sprintf("File ownership validation passed for %s (%d tasks)", source, r.TaskCount)
	if n := len(r.Warnings); n > 0 {
		msg += fmt.Sprintf("; %d parse warning(s)", n)
	}
	return msg
}

// Reason renders the block-state message: every conflict, itemized, with
// enough detail to locate and fix the offending declarations.
func (r Report) Reason() string {
	lines := make([]string, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		lines = append(lines, "  - "+c.String())
	}
	return conflictHeader + strings.Join(lines, "\n") + conflictFooter
}
