// Package ownership validates file ownership declarations in task
// orchestration plans before parallel execution proceeds.
//
// A plan divides work into waves of tasks. Each task declares the files it
// will CREATE, the files (optionally narrowed to a scope such as a class or
// function) it will MODIFY, and the files it must not touch (BOUNDARY).
// Tasks in the same wave are assumed to run concurrently; this package
// statically detects the declarations that would let concurrent tasks
// corrupt the same file.
//
// Four rules are checked:
//
//  1. Each file is CREATEd by at most one task, across all waves.
//  2. Tasks in the same wave with unscoped MODIFY target different files.
//  3. Tasks in the same wave with scoped MODIFY have non-overlapping scopes.
//  4. No task modifies a file in its own BOUNDARY list.
//
// Duplicate task identifiers are reported as a fifth concern rather than
// silently collapsing one section's declarations into another's.
//
// Validation is a pure function of the plan text: conflicts are data in the
// returned Report, never errors, and validating the same text twice yields
// identical results.
package ownership
