package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/lsycxyj/disableSplitChunks/splitplan"
	"github.com/spf13/cobra"
)

var errPlanInvalid = errors.New("plan manifest is invalid")

// NewValidateCmd creates and returns the validate subcommand for the splitchunks CLI.
// It re-checks a written plan manifest.
func NewValidateCmd() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a plan manifest",
		Long: `Validate a plan manifest written by build or plan --out.

Every group must be used by more than one chunk, names must be unique and free
of path separators, and the stored digest must match the groups. All
violations are listed; the command exits with status 1 if there are any.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}
			if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
				return fmt.Errorf("manifest does not exist: %s", manifestPath)
			}
			logger.Debug("validating manifest", "path", manifestPath)

			p, err := splitplan.Load(manifestPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			violations := unwrapAll(p.Validate())
			if len(violations) == 0 {
				fmt.Fprintf(out, "%s %s: %d groups, %d modules\n",
					successStyle.Render("valid"), manifestPath, len(p.Groups), p.ModuleCount())
				return nil
			}

			fmt.Fprintf(out, "%s %s has %d violations:\n", errorStyle.Render("invalid"), manifestPath, len(violations))
			for _, v := range violations {
				fmt.Fprintf(out, "  - %s\n", v)
			}
			return fmt.Errorf("%w: %d violations", errPlanInvalid, len(violations))
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "path", "p", "", "Path to the plan manifest (required)")
	_ = cmd.MarkFlagRequired("path")

	return cmd
}

// unwrapAll flattens an errors.Join result.
func unwrapAll(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}
