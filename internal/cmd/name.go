package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/lsycxyj/disableSplitChunks/chunkname"
	"github.com/spf13/cobra"
)

// NewNameCmd creates and returns the name subcommand for the splitchunks CLI.
// It applies a naming policy to chunk names given on the command line.
func NewNameCmd() *cobra.Command {
	var (
		entries    int
		policy     string
		commonName string
		cacheGroup string
		module     string
	)

	cmd := &cobra.Command{
		Use:   "name [CHUNK...]",
		Short: "Apply a naming policy to chunk names",
		Long: `Apply a naming policy to the chunk names that share a module and print the
resulting chunk groups.

--entries is the total number of entries in the build. The prefix policy names
a module shared by every entry after --common-name.

Example:
  splitchunks name --entries 3 blog/a blog/b`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := chunkname.ParsePolicy(policy)
			if err != nil {
				return err
			}
			if entries < 0 {
				return fmt.Errorf("--entries must not be negative, got %d", entries)
			}
			namer, err := chunkname.New(p, chunkname.Options{
				CommonName: commonName,
				CacheGroup: cacheGroup,
			})
			if err != nil {
				return err
			}
			d := namer.Name(chunkname.Request{
				Module:       module,
				Chunks:       chunkname.FromNames(args...),
				TotalEntries: entries,
			})
			printDecision(cmd.OutOrStdout(), d)
			return nil
		},
	}

	cmd.Flags().IntVarP(&entries, "entries", "n", 0, "Total number of entries in the build")
	cmd.Flags().StringVarP(&policy, "policy", "p", string(chunkname.PolicyPrefix), "Naming policy: "+policyList())
	cmd.Flags().StringVar(&commonName, "common-name", chunkname.DefaultCommonName, "Name used when every entry shares a module (prefix policy)")
	cmd.Flags().StringVar(&cacheGroup, "cache-group", chunkname.DefaultCacheGroup, "Cache group name (module policy)")
	cmd.Flags().StringVar(&module, "module", "", "Module path the chunks share (module policy)")

	return cmd
}

func printDecision(w io.Writer, d chunkname.Decision) {
	if !d.Extract() {
		fmt.Fprintln(w, subtitleStyle.Render("no extraction"))
		return
	}
	for _, name := range d.GroupNames() {
		fmt.Fprintf(w, "%s: %s\n", groupStyle(name).Render(name), strings.Join(d[name], ", "))
	}
}

func policyList() string {
	policies := chunkname.Policies()
	names := make([]string, len(policies))
	for i, p := range policies {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
