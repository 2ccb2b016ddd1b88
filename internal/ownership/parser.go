package ownership

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Plan documents are markdown. A task is a ###/#### section carrying a
// "**Task ID:**" field and a "**Wave:**" field, optionally followed by a
// "**File Ownership:**" block with "- CREATE:", "- MODIFY:" and
// "- BOUNDARY:" entries. Sections are parsed individually so a malformed
// field produces a warning pointing at that task, not an empty result.
var (
	headingRe = regexp.MustCompile(`(?m)^###[#]?\s`)
	taskIDRe  = regexp.MustCompile(`\*\*Task ID:\*\*\s*(task-\d+)`)
	waveRe    = regexp.MustCompile(`\*\*Wave:\*\*\s*([^\s*]+)`)
	blockRe   = regexp.MustCompile(`(?s)\*\*File Ownership:\*\*(.*?)(?:\n\*\*[A-Z]|\z)`)

	createRe   = listEntryRe("CREATE")
	modifyRe   = listEntryRe("MODIFY")
	boundaryRe = listEntryRe("BOUNDARY")
)

func listEntryRe(label string) *regexp.Regexp {
	// Only spaces and tabs may follow the colon. A bare "\s*" would eat
	// the newline after an empty value and capture the next entry line as
	// a phantom resource.
	return regexp.MustCompile(`(?s)- ` + label + `:[ \t]*(.*?)(?:\n\s*-|\n\*\*|\z)`)
}

// ParsePlan extracts the declared tasks from plan text, in declaration
// order. Duplicate task identifiers are kept as separate entries; the rule
// engine reports the collision. A plan with no task sections parses to an
// empty Plan, which is a valid nothing-to-validate state, so ParsePlan
// never fails.
func ParsePlan(content string) *Plan {
	plan := &Plan{}

	for _, section := range splitSections(content) {
		idMatch := taskIDRe.FindStringSubmatch(section)
		if idMatch == nil {
			// Not a task section (overview prose, ownership matrix, ...).
			continue
		}
		id := idMatch[1]

		waveMatch := waveRe.FindStringSubmatch(section)
		if waveMatch == nil {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("%s: section has no Wave field, skipping", id))
			continue
		}

		wave, ok := parseWave(waveMatch[1])
		if !ok {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("%s: unparseable wave %q, defaulting to wave 0", id, waveMatch[1]))
		}

		task := Task{ID: id, Wave: wave}
		if block := blockRe.FindStringSubmatch(section); block != nil {
			for _, token := range parseList(block[1], createRe) {
				name, _ := ParseScope(token)
				task.Create = append(task.Create, name)
			}
			for _, token := range parseList(block[1], modifyRe) {
				name, scope := ParseScope(token)
				task.Modify = append(task.Modify, Claim{Resource: name, Scope: scope})
			}
			for _, token := range parseList(block[1], boundaryRe) {
				name, _ := ParseScope(token)
				task.Boundary = append(task.Boundary, name)
			}
		}
		plan.Tasks = append(plan.Tasks, task)
	}

	return plan
}

// splitSections slices the document at ###/#### headings. Text before the
// first heading cannot contain a task section and is dropped.
func splitSections(content string) []string {
	starts := headingRe.FindAllStringIndex(content, -1)
	sections := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(content)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		sections = append(sections, content[loc[0]:end])
	}
	return sections
}

// parseWave normalizes a wave field to an integer. Both bare integers and
// the "W1" marker form are accepted. Anything else falls back to wave 0;
// the caller records a warning so the fallback is visible rather than
// silently merging the task into wave 0's concurrency group.
func parseWave(field string) (int, bool) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(field), "W"), "w")
	wave, err := strconv.Atoi(trimmed)
	if err != nil || wave < 0 {
		return 0, false
	}
	return wave, true
}

// parseList extracts one comma-separated ownership entry. A dash or empty
// value means "none declared" and parses to no tokens, not a dash-named
// file.
func parseList(block string, entry *regexp.Regexp) []string {
	match := entry.FindStringSubmatch(block)
	if match == nil {
		return nil
	}
	value := strings.TrimSpace(match[1])
	if value == "" || value == "-" {
		return nil
	}

	var tokens []string
	for _, token := range strings.Split(value, ",") {
		if token = strings.TrimSpace(token); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
