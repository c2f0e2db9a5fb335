package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/lsycxyj/disableSplitChunks/bundler"
	"github.com/lsycxyj/disableSplitChunks/internal/config"
	"github.com/lsycxyj/disableSplitChunks/splitplan"
	"github.com/spf13/cobra"
)

// Report formats accepted by plan --format.
const (
	formatText     = "text"
	formatJSON     = "json"
	formatYAML     = "yaml"
	formatMarkdown = "markdown"
)

// NewPlanCmd creates and returns the plan subcommand for the splitchunks CLI.
// It computes a split plan without writing any bundle output.
func NewPlanCmd() *cobra.Command {
	var (
		statsPath string
		format    string
		outPath   string
		policy    string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a split plan",
		Long: `Compute which modules are extracted into shared chunks and how those chunks
are named.

By default the configured entries are bundled in memory with esbuild. With
--stats the module graph is read from a JSON file instead:

  {"entries": ["index", "about"], "modules": [{"id": "./a.js", "chunks": ["index", "about"]}]}

Chunks may be plain names or objects with a "name" field.`,
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

			var graph splitplan.Graph
			if statsPath != "" {
				graph, err = splitplan.LoadStats(statsPath)
				if err != nil {
					return err
				}
				logger.Debug("loaded stats", "path", statsPath, "modules", len(graph.Modules))
			} else {
				res, err := bundler.Analyze(cmd.Context(), bundleOptions(cfg, logger, false))
				if err != nil {
					return err
				}
				graph = res.Graph
			}

			p, err := buildPlan(cfg, graph, logger)
			if err != nil {
				return err
			}
			if outPath != "" {
				if err := p.Save(outPath); err != nil {
					return fmt.Errorf("failed to write plan: %w", err)
				}
				logger.Info("wrote plan", "path", outPath)
			}
			return writeReport(cmd.OutOrStdout(), p, format)
		},
	}

	cmd.Flags().StringVarP(&statsPath, "stats", "s", "", "Read the module graph from a JSON stats file instead of running esbuild")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "Output format: text, json, yaml or markdown")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Also save the plan to this file (.json, .yaml or .yml)")
	cmd.Flags().StringVarP(&policy, "policy", "p", "", "Override the configured naming policy: "+policyList())

	return cmd
}

func bundleOptions(cfg *config.Config, logger *log.Logger, write bool) bundler.Options {
	return bundler.Options{
		Entries: cfg.BundlerEntries(),
		WorkDir: cfg.WorkDir,
		Outdir:  cfg.OutDir,
		Minify:  cfg.Minify,
		Write:   write,
		Logger:  logger,
	}
}

func buildPlan(cfg *config.Config, graph splitplan.Graph, logger *log.Logger) (*splitplan.Plan, error) {
	namer, err := cfg.Namer()
	if err != nil {
		return nil, err
	}
	p, err := splitplan.Build(graph, namer)
	if err != nil {
		return nil, err
	}
	logger.Debug("plan ready", "id", p.ID, "groups", len(p.Groups), "modules", p.ModuleCount(), "digest", p.Digest)
	return p, nil
}

func writeReport(w io.Writer, p *splitplan.Plan, format string) error {
	switch strings.ToLower(format) {
	case formatText:
		_, err := io.WriteString(w, textReport(p))
		return err
	case formatJSON:
		return p.Encode(w, splitplan.FormatJSON)
	case formatYAML:
		return p.Encode(w, splitplan.FormatYAML)
	case formatMarkdown:
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return err
		}
		out, err := renderer.Render(markdownReport(p))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("%w: %q", splitplan.ErrUnsupportedFormat, format)
	}
}

func textReport(p *splitplan.Plan) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Split plan"))
	sb.WriteString(" ")
	sb.WriteString(subtitleStyle.Render(fmt.Sprintf("%s, policy %s, %d entries", p.ID, p.Policy, len(p.Entries))))
	sb.WriteString("\n")
	if len(p.Groups) == 0 {
		sb.WriteString(subtitleStyle.Render("no shared chunks"))
		sb.WriteString("\n")
		return sb.String()
	}
	for _, g := range p.Groups {
		fmt.Fprintf(&sb, "\n%s  %s\n", groupStyle(g.Name).Render(g.Name), strings.Join(g.Chunks, ", "))
		for _, m := range g.Modules {
			sb.WriteString("  ")
			sb.WriteString(subtitleStyle.Render(m))
			sb.WriteString("\n")
		}
	}
	fmt.Fprintf(&sb, "\n%d groups, %d modules, digest %s\n", len(p.Groups), p.ModuleCount(), p.Digest)
	return sb.String()
}

func markdownReport(p *splitplan.Plan) string {
	var sb strings.Builder
	sb.WriteString("# Split plan\n\n")
	fmt.Fprintf(&sb, "- **ID:** `%s`\n", p.ID)
	fmt.Fprintf(&sb, "- **Policy:** %s\n", p.Policy)
	fmt.Fprintf(&sb, "- **Entries:** %s\n", strings.Join(p.Entries, ", "))
	fmt.Fprintf(&sb, "- **Digest:** `%s`\n\n", p.Digest)
	if len(p.Groups) == 0 {
		sb.WriteString("No shared chunks.\n")
		return sb.String()
	}
	sb.WriteString("| Group | Chunks | Modules |\n")
	sb.WriteString("|---|---|---|\n")
	for _, g := range p.Groups {
		fmt.Fprintf(&sb, "| `%s` | %s | %d |\n", g.Name, strings.Join(g.Chunks, ", "), len(g.Modules))
	}
	for _, g := range p.Groups {
		fmt.Fprintf(&sb, "\n## %s\n\n", g.Name)
		for _, m := range g.Modules {
			fmt.Fprintf(&sb, "- `%s`\n", m)
		}
	}
	return sb.String()
}
