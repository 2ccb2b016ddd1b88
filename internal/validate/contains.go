package validate

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/productforge/forge/internal/discovery"
	"github.com/productforge/forge/internal/hookio"
	"github.com/productforge/forge/internal/logging"
)

const noNewFileError = "VALIDATION FAILED: No new file found matching %s.\n\n" +
	"ACTION REQUIRED: Use the Write tool to create a new file in the %s/ directory. " +
	"The file must be created before this validation can pass. " +
	"Do not stop until the file has been created."

const missingContentError = "VALIDATION FAILED: File '%s' is missing %d required section(s).\n\n" +
	"MISSING SECTIONS:\n%s\n\n" +
	"ACTION REQUIRED: Use the Edit tool to add the missing sections to '%s'. " +
	"Each section must appear exactly as shown above (case-sensitive). " +
	"Do not stop until all required sections are present in the file."

// ContainsValidator checks that the newest matching file contains every
// required string, case-sensitively.
type ContainsValidator struct {
	opts     Options
	required []string
	log      *logging.Logger
}

// NewContains returns a contains validator requiring the given strings.
func NewContains(opts Options, required []string, log *logging.Logger) *ContainsValidator {
	opts.Extension = discovery.NormalizeExtension(opts.Extension)
	return &ContainsValidator{opts: opts, required: required, log: log.WithValidator("contains")}
}

// Name implements Validator.
func (v *ContainsValidator) Name() string { return "contains" }

// Validate implements Validator.
func (v *ContainsValidator) Validate(ctx context.Context) hookio.Result {
	v.log.Info("validating content",
		"directory", v.opts.Directory, "required", len(v.required))

	newest := discovery.FindNewestFile(ctx, v.opts.Directory, v.opts.Extension, v.opts.MaxAge)
	if newest == "" {
		return hookio.Block(fmt.Sprintf(noNewFileError, v.opts.Pattern(), v.opts.Directory))
	}
	v.log.Info("found file", "path", newest)

	if len(v.required) == 0 {
		return hookio.Continue(fmt.Sprintf("File found: %s (no content checks specified)", newest))
	}

	content, err := os.ReadFile(newest)
	if err != nil {
		v.log.Error("failed to read file", "path", newest, "error", err)
		return hookio.Block(fmt.Sprintf("Failed to read file %s: %v", newest, err))
	}

	var missing []string
	for _, req := range v.required {
		if !strings.Contains(string(content), req) {
			missing = append(missing, req)
		}
	}
	v.log.Info("content check",
		"found", len(v.required)-len(missing), "required", len(v.required))

	if len(missing) == 0 {
		return hookio.Continue(fmt.Sprintf(
			"File '%s' contains all %d required sections", newest, len(v.required)))
	}

	var list strings.Builder
	for i, m := range missing {
		if i > 0 {
			list.WriteString("\n")
		}
		list.WriteString("  - " + m)
	}
	return hookio.Block(fmt.Sprintf(
		missingContentError, newest, len(missing), list.String(), newest))
}
