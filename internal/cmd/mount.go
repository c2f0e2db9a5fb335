package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/lsycxyj/disableSplitChunks/planfs"
	"github.com/lsycxyj/disableSplitChunks/splitplan"
	"github.com/lsycxyj/disableSplitChunks/version"
	"github.com/spf13/cobra"
)

// NewMountCmd creates and returns the mount subcommand for the splitchunks CLI.
// It serves a plan manifest as a read-only filesystem.
func NewMountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mount MANIFEST MOUNTPOINT",
		Short: "Mount a plan manifest as a read-only filesystem",
		Long: `Mount a plan manifest at the specified mountpoint.

MANIFEST is a plan written by build or plan --out, or a directory holding
` + splitplan.ManifestName + `.
MOUNTPOINT is the directory where the filesystem will be mounted.

The tree contains manifest.json, groups/<group>/{chunks,modules} and
chunks/<chunk> listing the groups each chunk loads.`,
		Args: cobra.ExactArgs(2),
		RunE: runMount,
	}
}

func runMount(cmd *cobra.Command, args []string) error {
	logger, err := loggerFor(cmd)
	if err != nil {
		return err
	}
	manifestPath := args[0]
	mountpoint := args[1]

	if pathsOverlap(manifestPath, mountpoint) {
		return fmt.Errorf("manifest %s and mountpoint %s overlap", manifestPath, mountpoint)
	}
	p, filesystem, err := openPlanFS(manifestPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(mountpoint, 0o755); err != nil {
		return fmt.Errorf("failed to create mountpoint: %w", err)
	}

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("splitchunks"),
		fuse.Subtype("splitchunks"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	defer signal.Stop(sigChan)
	done := make(chan struct{})
	defer close(done)
	go unmountOnSignal(sigChan, done, func() {
		logger.Info("received interrupt signal, shutting down")
		if err := fuse.Unmount(mountpoint); err != nil {
			logger.Error("unmount failed", "err", err)
		}
	})

	logger.Info("mounted plan",
		"version", version.GetVersion(),
		"mountpoint", mountpoint,
		"plan", p.ID,
		"groups", len(p.Groups))
	if err := fs.Serve(c, filesystem); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}

// openPlanFS loads the manifest and refuses plans that break their own
// invariants before any of it is turned into file names.
func openPlanFS(manifestPath string) (*splitplan.Plan, *planfs.FS, error) {
	p, err := splitplan.Load(manifestPath)
	if err != nil {
		return nil, nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errPlanInvalid, err)
	}
	filesystem, err := planfs.NewFS(p)
	if err != nil {
		return nil, nil, err
	}
	return p, filesystem, nil
}

// unmountOnSignal calls unmount on the first signal. It returns without
// calling it once done is closed.
func unmountOnSignal(sigChan <-chan os.Signal, done <-chan struct{}, unmount func()) {
	select {
	case <-sigChan:
		unmount()
	case <-done:
	}
}
