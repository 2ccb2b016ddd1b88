// Package validate implements the forge validators: hooks that inspect
// recently written files and tell the orchestration layer whether the
// workflow may continue.
package validate

import (
	"context"
	"fmt"
	"time"

	"github.com/productforge/forge/internal/hookio"
	"github.com/productforge/forge/internal/logging"
)

// Validator is one validation check producing a hook result.
type Validator interface {
	// Name identifies the validator in logs and audit entries.
	Name() string
	// Validate runs the check. Conflicts and missing files are results,
	// not errors: every code path yields a structured Result.
	Validate(ctx context.Context) hookio.Result
}

// Options configures where a validator looks for its subject file.
type Options struct {
	// Directory is searched for candidate files.
	Directory string
	// Extension filters candidates ("md" and ".md" both work).
	Extension string
	// MaxAge bounds how old a file may be and still count as "the file
	// this hook fired for".
	MaxAge time.Duration
	// Wait, when positive, bounds a wait for a candidate file to appear
	// before concluding there is none. Zero checks once.
	Wait time.Duration
}

// Pattern renders the human-readable search pattern used in messages.
func (o Options) Pattern() string {
	return o.Directory + "/*" + o.Extension
}

// Run executes a validator and records the outcome in the audit trail.
// A panicking validator is converted into an allow-through result: a
// fault in a validation tool must never block the workflow it advises.
func Run(ctx context.Context, log *logging.Logger, v Validator) (result hookio.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("validator panicked", "validator", v.Name(), "panic", fmt.Sprint(r))
			result = hookio.Continue(fmt.Sprintf("Validation error (allowing through): %v", r))
		}
	}()

	result = v.Validate(ctx)

	detail := result.Message
	if detail == "" {
		detail = result.Reason
	}
	log.LogValidation(v.Name(), result.IsSuccess(), detail)
	return result
}
