package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/lsycxyj/disableSplitChunks/bundler"
	"github.com/lsycxyj/disableSplitChunks/splitplan"
	"github.com/spf13/cobra"
)

var errUnsafeClean = errors.New("refusing to clean an output directory that contains the working directory")

// NewBuildCmd creates and returns the build subcommand for the splitchunks CLI.
// It bundles the configured entries to disk and writes the plan manifest next
// to the outputs.
func NewBuildCmd() *cobra.Command {
	var (
		clean  bool
		policy string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Bundle the entries and write the plan manifest",
		Long: `Bundle the configured entries with esbuild into out_dir and write the split
plan to <out_dir>/` + splitplan.ManifestName + `.

--clean empties out_dir before bundling.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, logger)
			if err != nil {
				return err
			}
			if policy != "" {
				cfg.Policy = policy
			}

			workDir, err := filepath.Abs(cfg.WorkDir)
			if err != nil {
				return err
			}
			outDir := resolveIn(workDir, cfg.OutDir)

			if clean {
				if isWithin(workDir, outDir) {
					return fmt.Errorf("%w: %s", errUnsafeClean, outDir)
				}
				logger.Info("cleaning output directory", "dir", outDir)
				if err := cleanDir(outDir); err != nil {
					return fmt.Errorf("failed to clean %s: %w", outDir, err)
				}
			}

			res, err := bundler.Analyze(cmd.Context(), bundleOptions(cfg, logger, true))
			if err != nil {
				return err
			}
			p, err := buildPlan(cfg, res.Graph, logger)
			if err != nil {
				return err
			}
			manifest := filepath.Join(outDir, splitplan.ManifestName)
			if err := p.Save(manifest); err != nil {
				return fmt.Errorf("failed to write manifest: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d outputs in %s\n", successStyle.Render("built"), len(res.Outputs), outDir)
			for _, g := range p.Groups {
				fmt.Fprintf(out, "  %s  %d modules\n", groupStyle(g.Name).Render(g.Name), len(g.Modules))
			}
			if len(res.Warnings) > 0 {
				fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("%d esbuild warnings", len(res.Warnings))))
			}
			fmt.Fprintf(out, "manifest %s\n", manifest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clean, "clean", false, "Empty the output directory before bundling")
	cmd.Flags().StringVarP(&policy, "policy", "p", "", "Override the configured naming policy: "+policyList())

	return cmd
}
