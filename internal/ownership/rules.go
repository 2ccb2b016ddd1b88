package ownership

import (
	"fmt"
	"sort"
	"strings"
)

// EvaluateRules runs every ownership rule against the task set and returns
// all violations. Nothing short-circuits: a plan with multiple problems
// reports every one of them in a single pass, in rule order, with stable
// ordering inside each rule so repeated validation of the same plan yields
// identical output.
func EvaluateRules(tasks []Task) []Conflict {
	var conflicts []Conflict
	conflicts = append(conflicts, checkCreateUnique(tasks)...)
	conflicts = append(conflicts, checkModifyOverlap(tasks)...)
	conflicts = append(conflicts, checkBoundary(tasks)...)
	conflicts = append(conflicts, checkDuplicateIDs(tasks)...)
	return conflicts
}

// checkCreateUnique enforces rule 1: a file is CREATEd by at most one task,
// across all waves. Creation order is not guaranteed to follow wave
// numbering in every orchestration strategy, so this rule ignores waves.
func checkCreateUnique(tasks []Task) []Conflict {
	creators := make(map[string][]string)
	for _, task := range tasks {
		for _, file := range task.Create {
			creators[file] = append(creators[file], task.ID)
		}
	}

	var conflicts []Conflict
	for _, file := range sortedKeys(creators) {
		ids := creators[file]
		if len(ids) < 2 {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Rule:     RuleCreateUnique,
			Resource: file,
			Tasks:    ids,
			Message: fmt.Sprintf("File '%s' is CREATEd by multiple tasks: %s",
				file, strings.Join(ids, ", ")),
		})
	}
	return conflicts
}

type modifier struct {
	taskID string
	scope  string
}

// checkModifyOverlap enforces rules 2 and 3: tasks in the same wave that
// MODIFY the same file must hold non-overlapping scopes. Waves with a
// single task are skipped, since no same-wave conflict is possible there.
func checkModifyOverlap(tasks []Task) []Conflict {
	byWave := make(map[int][]Task)
	for _, task := range tasks {
		byWave[task.Wave] = append(byWave[task.Wave], task)
	}

	waves := make([]int, 0, len(byWave))
	for wave := range byWave {
		waves = append(waves, wave)
	}
	sort.Ints(waves)

	var conflicts []Conflict
	for _, wave := range waves {
		peers := byWave[wave]
		if len(peers) < 2 {
			continue
		}

		modifiers := make(map[string][]modifier)
		for _, task := range peers {
			for _, claim := range task.Modify {
				modifiers[claim.Resource] = append(modifiers[claim.Resource],
					modifier{taskID: task.ID, scope: claim.Scope})
			}
		}

		for _, file := range sortedKeys(modifiers) {
			claims := modifiers[file]
			for i := 0; i < len(claims); i++ {
				for j := i + 1; j < len(claims); j++ {
					if !ScopesOverlap(claims[i].scope, claims[j].scope) {
						continue
					}
					conflicts = append(conflicts, Conflict{
						Rule:     RuleScopeOverlap,
						Resource: file,
						Tasks:    []string{claims[i].taskID, claims[j].taskID},
						Message: fmt.Sprintf(
							"Tasks %s and %s in Wave %d both MODIFY '%s' with overlapping scopes: %s vs %s",
							claims[i].taskID, claims[j].taskID, wave, file,
							scopeLabel(claims[i].scope), scopeLabel(claims[j].scope)),
					})
				}
			}
		}
	}
	return conflicts
}

func scopeLabel(scope string) string {
	if scope == "" {
		return "(unscoped)"
	}
	return ScopeDelimiter + scope
}

// checkBoundary enforces rule 4: a task must not MODIFY a file it declared
// in its own BOUNDARY list. Each task is checked independently.
func checkBoundary(tasks []Task) []Conflict {
	var conflicts []Conflict
	for _, task := range tasks {
		modified := make(map[string]bool)
		for _, claim := range task.Modify {
			modified[claim.Resource] = true
		}

		var offending []string
		seen := make(map[string]bool)
		for _, file := range task.Boundary {
			if modified[file] && !seen[file] {
				offending = append(offending, file)
				seen[file] = true
			}
		}
		if len(offending) == 0 {
			continue
		}
		sort.Strings(offending)
		conflicts = append(conflicts, Conflict{
			Rule:     RuleBoundary,
			Resource: strings.Join(offending, ", "),
			Tasks:    []string{task.ID},
			Message: fmt.Sprintf("Task %s modifies files in its BOUNDARY: %s",
				task.ID, strings.Join(offending, ", ")),
		})
	}
	return conflicts
}

// checkDuplicateIDs reports task identifiers declared by more than one plan
// section. The parser keeps every section, so a collision here means two
// sections' declarations were both evaluated under the same name.
func checkDuplicateIDs(tasks []Task) []Conflict {
	counts := make(map[string]int)
	var order []string
	for _, task := range tasks {
		if counts[task.ID] == 0 {
			order = append(order, task.ID)
		}
		counts[task.ID]++
	}

	var conflicts []Conflict
	for _, id := range order {
		if counts[id] < 2 {
			continue
		}
		conflicts = append(conflicts, Conflict{
			Rule:  RuleDuplicateID,
			Tasks: []string{id},
			Message: fmt.Sprintf("duplicate task ID '%s' declared by %d sections",
				id, counts[id]),
		})
	}
	return conflicts
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
