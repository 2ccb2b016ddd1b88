package cmd

import (
	"errors"
	"os"
	"time"

	"github.com/productforge/forge/internal/config"
	"github.com/productforge/forge/internal/hookio"
	"github.com/productforge/forge/internal/logging"
	"github.com/productforge/forge/internal/validate"
	"github.com/spf13/cobra"
)

// ErrBlocked signals that a validator blocked; main maps it to exit code 1
// without printing anything beyond the JSON result already on stdout.
var ErrBlocked = errors.New("validation blocked")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Hook validators for generated plan and spec files",
	Long: `Validators check the newest matching file in a directory and emit a
hook protocol result on stdout. A passing check exits 0 with
result "continue"; a failing check exits 1 with result "block" and a
reason the calling agent can act on.

Examples:
  # Validate file ownership in the newest plan file under specs/
  forge validate ownership

  # Require sections in the newest spec, waiting up to 30s for it
  forge validate contains --contains "## Goals" --contains "## Risks" --wait 30

  # Verify that a new file was actually created under docs/
  forge validate new-file -d docs`,
}

var (
	validateDir    string
	validateExt    string
	validateMaxAge int
	validateWait   int
	containsChecks []string
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.PersistentFlags().StringVarP(&validateDir, "directory", "d", "", "Directory to search (default from config)")
	validateCmd.PersistentFlags().StringVarP(&validateExt, "extension", "e", "", "File extension to match (default from config)")
	validateCmd.PersistentFlags().IntVar(&validateMaxAge, "max-age", 0, "Maximum file age in minutes (default from config)")
	validateCmd.PersistentFlags().IntVar(&validateWait, "wait", 0, "Wait up to this many seconds for a matching file to appear")

	ownershipCmd := &cobra.Command{
		Use:   "ownership",
		Short: "Check a task plan for file ownership conflicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidator(cmd, func(opts validate.Options, log *logging.Logger) validate.Validator {
				return validate.NewOwnership(opts, log)
			})
		},
	}

	containsCmd := &cobra.Command{
		Use:   "contains",
		Short: "Check that the newest matching file contains required strings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidator(cmd, func(opts validate.Options, log *logging.Logger) validate.Validator {
				return validate.NewContains(opts, containsChecks, log)
			})
		},
	}
	containsCmd.Flags().StringArrayVar(&containsChecks, "contains", nil, "Required string (repeatable)")

	newFileCmd := &cobra.Command{
		Use:   "new-file",
		Short: "Check that a new file was created in the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidator(cmd, func(opts validate.Options, log *logging.Logger) validate.Validator {
				return validate.NewNewFile(opts, log)
			})
		},
	}

	validateCmd.AddCommand(ownershipCmd, containsCmd, newFileCmd)
}

// validatorOptions resolves validator options from config, with explicitly
// set flags taking precedence.
func validatorOptions(cmd *cobra.Command, cfg *config.Config) validate.Options {
	opts := validate.Options{
		Directory: cfg.Validation.Directory,
		Extension: cfg.Validation.Extension,
		MaxAge:    cfg.MaxAge(),
		Wait:      cfg.Wait(),
	}

	flags := cmd.Flags()
	if flags.Changed("directory") {
		opts.Directory = validateDir
	}
	if flags.Changed("extension") {
		opts.Extension = validateExt
	}
	if flags.Changed("max-age") {
		opts.MaxAge = time.Duration(validateMaxAge) * time.Minute
	}
	if flags.Changed("wait") {
		opts.Wait = time.Duration(validateWait) * time.Second
	}

	return opts
}

func runValidator(cmd *cobra.Command, build func(validate.Options, *logging.Logger) validate.Validator) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := newAuditLogger(cfg)
	defer log.Close()

	// Hook runners deliver a JSON payload on stdin. Only read it when stdin
	// is piped, so interactive invocations don't hang.
	if info, err := os.Stdin.Stat(); err == nil && info.Mode()&os.ModeCharDevice == 0 {
		payload := hookio.ReadInput(os.Stdin)
		if len(payload) > 0 {
			log.Debug("hook payload received", "keys", len(payload))
		}
	}

	v := build(validatorOptions(cmd, cfg), log)
	result := validate.Run(cmd.Context(), log, v)

	if err := hookio.Write(os.Stdout, result); err != nil {
		return err
	}
	if !result.IsSuccess() {
		return ErrBlocked
	}
	return nil
}

// newAuditLogger opens the configured log file. Hooks must not fail because
// the log location is unwritable, so errors degrade to a no-op logger.
func newAuditLogger(cfg *config.Config) *logging.Logger {
	log, err := logging.New(logging.Options{
		Path:  cfg.LogPath(),
		Level: cfg.Logging.Level,
		Rotation: logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			Compress:   cfg.Logging.Compress,
		},
	})
	if err != nil {
		return logging.Nop()
	}
	return log
}
