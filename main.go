package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/lsycxyj/disableSplitChunks/internal/cmd"
	"github.com/lsycxyj/disableSplitChunks/version"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.GetFullVersion()),
	); err != nil {
		os.Exit(1)
	}
}
