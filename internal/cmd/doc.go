// Package cmd provides the command-line interface implementation for splitchunks.
//
// This package contains all the subcommand implementations for the splitchunks
// CLI tool. It uses the Cobra library for command structure and Fang for styling
// help and errors.
//
// The package is organized into the following commands:
//   - root: Main command, persistent flags, logger and config loading
//   - name: Apply a naming policy to ad-hoc chunk names
//   - plan: Compute a split plan from esbuild or a stats file
//   - build: Bundle with esbuild and write the plan manifest
//   - validate: Check a plan manifest for broken invariants
//   - init: Write a default config file
//   - mount: Serve a plan manifest through FUSE
//   - version: Print build information
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. Commands return errors instead of
// exiting so they can be exercised from tests with SetArgs and SetOut.
package cmd
