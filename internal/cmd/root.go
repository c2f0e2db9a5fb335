package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lsycxyj/disableSplitChunks/internal/config"
	"github.com/lsycxyj/disableSplitChunks/version"
	"github.com/spf13/cobra"
)

const (
	groupNaming    = "naming"
	groupBundling  = "bundling"
	groupUtilities = "utilities"
)

// NewRootCmd creates and returns the root cobra command for the splitchunks CLI.
// It sets up all subcommands, command groups, and the persistent flags every
// subcommand reads through loggerFor and loadConfig.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "splitchunks - name and plan shared chunks for multi-entry bundles",
		Long: `splitchunks decides which modules of a multi-entry bundle are extracted into
shared chunks and what those chunks are called.

It runs esbuild with code splitting over the configured entries, narrows the
resulting module graph, and applies one naming policy:
  - prefix:  longest common prefix of the chunk names, "common" when every entry shares it
  - segment: one "<group>-common" chunk per leading path segment
  - module:  one cache group per shared module

Use subcommands to perform different operations:
  - name: Apply a policy to a list of chunk names
  - plan: Compute a split plan from esbuild or a stats file
  - build: Bundle the entries and write the plan manifest
  - validate: Check a plan manifest for broken invariants
  - mount: Browse a plan manifest through FUSE`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./"+config.ConfigFileName+")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupNaming,
		Title: "Naming Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupBundling,
		Title: "Bundling Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	nameCmd := NewNameCmd()
	planCmd := NewPlanCmd()
	buildCmd := NewBuildCmd()
	validateCmd := NewValidateCmd()
	initCmd := NewInitCmd()
	mountCmd := NewMountCmd()
	versionCmd := NewVersionCmd()

	nameCmd.GroupID = groupNaming
	planCmd.GroupID = groupNaming
	buildCmd.GroupID = groupBundling
	validateCmd.GroupID = groupUtilities
	initCmd.GroupID = groupUtilities
	mountCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// loggerFor builds the logger described by the persistent flags. Logs go to
// stderr so command output on stdout stays machine readable.
func loggerFor(cmd *cobra.Command) (*log.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	format, _ := cmd.Flags().GetString("log-format")

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: config.AppName,
	})
	switch format {
	case "", "text":
		logger.SetFormatter(log.TextFormatter)
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, nil
}

// loadConfig resolves the configuration named by --config, falling back to
// the working directory.
func loadConfig(cmd *cobra.Command, logger *log.Logger) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, resolved, err := config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: path})
	if err != nil {
		return nil, err
	}
	if resolved == "" {
		logger.Debug("no config file found, using defaults", "dir", mustGetwd())
	} else {
		logger.Debug("loaded config", "path", resolved, "policy", cfg.Policy, "entries", len(cfg.Entries))
	}
	return cfg, nil
}

func mustGetwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
