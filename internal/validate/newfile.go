package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/productforge/forge/internal/discovery"
	"github.com/productforge/forge/internal/hookio"
	"github.com/productforge/forge/internal/logging"
)

const noFileCreatedError = "VALIDATION FAILED: No new file found matching %s.\n\n" +
	"ACTION REQUIRED: Use the Write tool to create a new file in the %s/ directory. " +
	"The file must match the expected pattern (%s). " +
	"Do not stop until the file has been created."

// NewFileValidator checks that a new file was created in the watched
// directory, using git untracked status as the primary signal and
// modification-time recency as the fallback.
type NewFileValidator struct {
	opts Options
	log  *logging.Logger
}

// NewNewFile returns a new-file validator over the given search options.
func NewNewFile(opts Options, log *logging.Logger) *NewFileValidator {
	opts.Extension = discovery.NormalizeExtension(opts.Extension)
	return &NewFileValidator{opts: opts, log: log.WithValidator("new-file")}
}

// Name implements Validator.
func (v *NewFileValidator) Name() string { return "new-file" }

// Validate implements Validator.
func (v *NewFileValidator) Validate(ctx context.Context) hookio.Result {
	v.log.Info("validating new file",
		"directory", v.opts.Directory, "extension", v.opts.Extension, "max_age", v.opts.MaxAge)

	gitNew := discovery.GitUntrackedFiles(ctx, v.opts.Directory, v.opts.Extension)
	if len(gitNew) > 0 {
		v.log.Info("git reports new files", "files", gitNew)
		return hookio.Continue(fmt.Sprintf("New file(s) found: %s", strings.Join(gitNew, ", ")))
	}

	recent := discovery.RecentFiles(v.opts.Directory, v.opts.Extension, v.opts.MaxAge)
	if len(recent) > 0 {
		v.log.Info("recent files found", "files", recent)
		return hookio.Continue(fmt.Sprintf(
			"Recently created file(s) found: %s", strings.Join(recent, ", ")))
	}

	pattern := v.opts.Pattern()
	return hookio.Block(fmt.Sprintf(noFileCreatedError, pattern, v.opts.Directory, pattern))
}
