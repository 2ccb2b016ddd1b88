package ownership

// Rule identifies which ownership rule a conflict violates.
type Rule int

const (
	// RuleCreateUnique is violated when a file appears in CREATE for more
	// than one task, regardless of wave.
	RuleCreateUnique Rule = 1
	// RuleScopeOverlap is violated when two tasks in the same wave MODIFY
	// the same file with overlapping scopes. This covers both the unscoped
	// (rule 2) and scoped (rule 3) cases, which is why it renders as "2/3".
	RuleScopeOverlap Rule = 2
	// RuleBoundary is violated when a task modifies a file it declared in
	// its own BOUNDARY list.
	RuleBoundary Rule = 4
	// RuleDuplicateID is violated when two plan sections declare the same
	// task identifier.
	RuleDuplicateID Rule = 5
)

// Label returns the rule number as rendered in conflict messages.
func (r Rule) Label() string {
	if r == RuleScopeOverlap {
		return "2/3"
	}
	return map[Rule]string{
		RuleCreateUnique: "1",
		RuleBoundary:     "4",
		RuleDuplicateID:  "5",
	}[r]
}

// Claim is a MODIFY declaration: a file, optionally narrowed to a scope.
// An empty Scope means the task claims the whole file.
type Claim struct {
	Resource string
	Scope    string
}

// Task is one declared unit of work parsed from a plan document.
// Create and Boundary hold bare file names (scopes are meaningless there
// and stripped at parse time); Modify keeps its scopes.
type Task struct {
	ID       string
	Wave     int
	Create   []string
	Modify   []Claim
	Boundary []string
}

// Plan is the parsed view of a plan document: tasks in declaration order
// plus any parse warnings (lenient fallbacks the author should know about).
type Plan struct {
	Tasks    []Task
	Warnings []string
}

// Conflict records one rule violation. Conflicts are additive: every rule
// runs to completion and every violation is reported.
type Conflict struct {
	Rule     Rule
	Resource string
	Tasks    []string
	Message  string
}

// String renders the conflict as it appears in validation output.
func (c Conflict) String() string {
	return "Rule " + c.Rule.Label() + " violation: " + c.Message
}

// Report is the outcome of validating one plan document.
type Report struct {
	TaskCount int
	Conflicts []Conflict
	Warnings  []string
}

// Valid reports whether the plan passed all ownership rules.
func (r Report) Valid() bool {
	return len(r.Conflicts) == 0
}
