package validate

import (
	"context"
	"fmt"
	"os"

	"github.com/productforge/forge/internal/discovery"
	"github.com/productforge/forge/internal/hookio"
	"github.com/productforge/forge/internal/logging"
	"github.com/productforge/forge/internal/ownership"
)

const noPlanFileError = "VALIDATION FAILED: No plan file found matching %s.\n\n" +
	"ACTION REQUIRED: Create a plan file in the %s/ directory before validation can run."

// OwnershipValidator checks file ownership rules in the most recent task
// orchestration plan. The rule logic itself lives in the ownership
// package; this wrapper only locates the plan text and adapts the report
// into the hook result protocol.
type OwnershipValidator struct {
	opts Options
	log  *logging.Logger
}

// NewOwnership returns an ownership validator over the given search
// options.
func NewOwnership(opts Options, log *logging.Logger) *OwnershipValidator {
	opts.Extension = discovery.NormalizeExtension(opts.Extension)
	return &OwnershipValidator{opts: opts, log: log.WithValidator("ownership")}
}

// Name implements Validator.
func (v *OwnershipValidator) Name() string { return "ownership" }

// Validate implements Validator.
func (v *OwnershipValidator) Validate(ctx context.Context) hookio.Result {
	v.log.Info("validating ownership",
		"directory", v.opts.Directory, "extension", v.opts.Extension, "max_age", v.opts.MaxAge)

	newest := v.findPlanFile(ctx)
	if newest == "" {
		return hookio.Block(fmt.Sprintf(noPlanFileError, v.opts.Pattern(), v.opts.Directory))
	}
	v.log.Info("found plan file", "path", newest)

	content, err := os.ReadFile(newest)
	if err != nil {
		// The one abnormal condition: a plan that exists but cannot be
		// read. The cause travels with the result.
		v.log.Error("failed to read plan file", "path", newest, "error", err)
		return hookio.Block(fmt.Sprintf("Failed to read plan file %s: %v", newest, err))
	}

	report := ownership.Validate(string(content))
	for _, w := range report.Warnings {
		v.log.Warn("plan parse warning", "warning", w)
	}
	v.log.Info("parsed plan", "tasks", report.TaskCount, "conflicts", len(report.Conflicts))

	if report.Valid() {
		return hookio.Continue(report.Summary(newest))
	}

	for _, c := range report.Conflicts {
		v.log.Warn("ownership conflict", "conflict", c.String())
	}
	return hookio.Block(report.Reason())
}

func (v *OwnershipValidator) findPlanFile(ctx context.Context) string {
	if v.opts.Wait <= 0 {
		return discovery.FindNewestFile(ctx, v.opts.Directory, v.opts.Extension, v.opts.MaxAge)
	}

	waitCtx, cancel := context.WithTimeout(ctx, v.opts.Wait)
	defer cancel()

	found, err := discovery.WaitForFile(waitCtx, v.opts.Directory, v.opts.Extension, v.opts.MaxAge)
	if err != nil {
		v.log.Warn("wait for plan file expired", "error", err)
		return ""
	}
	return found
}
