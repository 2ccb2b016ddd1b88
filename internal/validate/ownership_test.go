package validate

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/productforge/forge/internal/logging"
	"github.com/productforge/forge/internal/testutil"
)

func ownershipOpts(dir string) Options {
	return Options{Directory: dir, Extension: ".md", MaxAge: 5 * time.Minute}
}

func TestOwnership_NoPlanFileBlocks(t *testing.T) {
	v := NewOwnership(ownershipOpts(t.TempDir()), logging.Nop())

	result := v.Validate(context.Background())
	if result.IsSuccess() {
		t.Fatal("expected a block when no plan file exists")
	}
	if !strings.Contains(result.Reason, "No plan file found") {
		t.Errorf("unexpected reason: %s", result.Reason)
	}
}

func TestOwnership_CleanPlanContinues(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "plan.md",
		"### One\n**Task ID:** task-1\n**Wave:** 1\n"+
			"**File Ownership:**\n- CREATE: a.py\n- MODIFY: shared.py::ClassA\n- BOUNDARY: -\n"+
			"### Two\n**Task ID:** task-2\n**Wave:** 1\n"+
			"**File Ownership:**\n- CREATE: b.py\n- MODIFY: shared.py::ClassB\n- BOUNDARY: a.py\n")

	v := NewOwnership(ownershipOpts(dir), logging.Nop())

	result := v.Validate(context.Background())
	if !result.IsSuccess() {
		t.Fatalf("expected continue, got reason: %s", result.Reason)
	}
	if !strings.Contains(result.Message, "2 tasks") {
		t.Errorf("unexpected message: %s", result.Message)
	}
}

func TestOwnership_ConflictingPlanBlocks(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "plan.md",
		"### One\n**Task ID:** task-1\n**Wave:** 1\n"+
			"**File Ownership:**\n- CREATE: foo.py\n- MODIFY: -\n- BOUNDARY: -\n"+
			"### Two\n**Task ID:** task-2\n**Wave:** 2\n"+
			"**File Ownership:**\n- CREATE: foo.py\n- MODIFY: -\n- BOUNDARY: -\n")

	v := NewOwnership(ownershipOpts(dir), logging.Nop())

	result := v.Validate(context.Background())
	if result.IsSuccess() {
		t.Fatal("expected a block for a conflicting plan")
	}
	if !strings.Contains(result.Reason, "Rule 1 violation") ||
		!strings.Contains(result.Reason, "foo.py") {
		t.Errorf("unexpected reason: %s", result.Reason)
	}
	if result.ExitCode() != 1 {
		t.Errorf("block exit code = %d, want 1", result.ExitCode())
	}
}

func TestOwnership_PlanWithoutTasksContinues(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "plan.md", "# A plan\n\nProse only, no task sections.\n")

	v := NewOwnership(ownershipOpts(dir), logging.Nop())

	result := v.Validate(context.Background())
	if !result.IsSuccess() {
		t.Fatalf("a plan without tasks is a pass, got reason: %s", result.Reason)
	}
	if !strings.Contains(result.Message, "No tasks found") {
		t.Errorf("unexpected message: %s", result.Message)
	}
}

func TestOwnership_PicksNewestPlan(t *testing.T) {
	dir := t.TempDir()
	stale := testutil.WriteFile(t, dir, "old-plan.md",
		"### One\n**Task ID:** task-1\n**Wave:** 1\n"+
			"**File Ownership:**\n- CREATE: foo.py\n- MODIFY: -\n- BOUNDARY: -\n"+
			"### Two\n**Task ID:** task-2\n**Wave:** 1\n"+
			"**File Ownership:**\n- CREATE: foo.py\n- MODIFY: -\n- BOUNDARY: -\n")
	backdate(t, stale)
	testutil.WriteFile(t, dir, "new-plan.md", "# Fixed plan\n")

	v := NewOwnership(ownershipOpts(dir), logging.Nop())

	result := v.Validate(context.Background())
	if !result.IsSuccess() {
		t.Fatalf("newest plan should win, got reason: %s", result.Reason)
	}
	if !strings.Contains(result.Message, "new-plan.md") {
		t.Errorf("unexpected message: %s", result.Message)
	}
}

func TestOwnership_WaitForLatePlan(t *testing.T) {
	dir := t.TempDir()

	go func() {
		time.Sleep(150 * time.Millisecond)
		testutil.WriteFile(t, dir, "plan.md", "# plan\n")
	}()

	opts := ownershipOpts(dir)
	opts.Wait = 5 * time.Second
	v := NewOwnership(opts, logging.Nop())

	result := v.Validate(context.Background())
	if !result.IsSuccess() {
		t.Errorf("expected the wait to find the late plan, got reason: %s", result.Reason)
	}
}
