package bundler

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/lsycxyj/disableSplitChunks/splitplan"
)

// Options configures an esbuild run.
type Options struct {
	Entries []Entry
	// WorkDir is the directory entry paths and the metafile are relative to.
	WorkDir string
	Outdir  string
	Minify  bool
	// Write puts the outputs on disk; otherwise they stay in memory.
	Write  bool
	Logger *log.Logger
}

// Result is what a build produced.
type Result struct {
	Graph    splitplan.Graph
	Metafile *Metafile
	Outputs  []string
	Warnings []string
}

// Output name templates. Every output name carries a content hash.
const (
	EntryNames = "[dir]/[name]-[hash]"
	ChunkNames = "chunks/[name]-[hash]"
	AssetNames = "images/static/[name]-[hash]"
)

// loaders copies svg files next to the bundle and inlines fonts.
func loaders() map[string]api.Loader {
	return map[string]api.Loader{
		".svg":   api.LoaderFile,
		".woff":  api.LoaderDataURL,
		".woff2": api.LoaderDataURL,
		".eot":   api.LoaderDataURL,
		".ttf":   api.LoaderDataURL,
		".otf":   api.LoaderDataURL,
	}
}

// BuildOptions translates Options into esbuild's options.
func BuildOptions(opts Options) api.BuildOptions {
	points := make([]api.EntryPoint, 0, len(opts.Entries))
	for _, e := range opts.Entries {
		points = append(points, api.EntryPoint{InputPath: e.Path, OutputPath: e.Site})
	}
	return api.BuildOptions{
		EntryPointsAdvanced: points,
		AbsWorkingDir:       opts.WorkDir,
		Outdir:              opts.Outdir,
		Bundle:              true,
		Splitting:           true,
		Format:              api.FormatESModule,
		Platform:            api.PlatformBrowser,
		Target:              api.ES2020,
		EntryNames:          EntryNames,
		ChunkNames:          ChunkNames,
		AssetNames:          AssetNames,
		Loader:              loaders(),
		Define:              map[string]string{"PRODUCTION": "true"},
		Metafile:            true,
		Write:               opts.Write,
		MinifySyntax:        opts.Minify,
		MinifyWhitespace:    opts.Minify,
		MinifyIdentifiers:   opts.Minify,
		LogLevel:            api.LogLevelSilent,
	}
}

// Analyze runs esbuild and narrows its metafile into a Graph.
func Analyze(ctx context.Context, opts Options) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("analyze canceled: %w", ctx.Err())
	default:
	}
	if len(opts.Entries) == 0 {
		return nil, ErrNoEntries
	}
	if opts.Outdir == "" {
		return nil, ErrNoOutdir
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	wd, err := filepath.Abs(opts.WorkDir)
	if err != nil {
		return nil, err
	}
	opts.WorkDir = wd

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Debug("running esbuild", "entries", len(opts.Entries), "outdir", opts.Outdir, "write", opts.Write)

	result := api.Build(BuildOptions(opts))
	if len(result.Errors) > 0 {
		msgs := api.FormatMessages(result.Errors, api.FormatMessagesOptions{Kind: api.ErrorMessage})
		return nil, fmt.Errorf("%w: %d error(s)\n%s", ErrBuildFailed, len(result.Errors), strings.Join(msgs, ""))
	}

	res := &Result{}
	for _, w := range result.Warnings {
		res.Warnings = append(res.Warnings, w.Text)
		logger.Warn("esbuild", "msg", w.Text)
	}
	res.Metafile, err = ParseMetafile(result.Metafile)
	if err != nil {
		return nil, err
	}
	res.Outputs = sortedKeys(res.Metafile.Outputs)
	res.Graph, err = GraphFromMetafile(res.Metafile, relativeEntries(wd, opts.Entries))
	if err != nil {
		return nil, err
	}
	logger.Debug("module graph ready", "modules", len(res.Graph.Modules), "shared", len(res.Graph.Shared()))
	return res, nil
}

// relativeEntries rewrites entry paths relative to wd so they match the
// metafile's entryPoint values.
func relativeEntries(wd string, entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		p := e.Path
		if filepath.IsAbs(p) {
			if rel, err := filepath.Rel(wd, p); err == nil {
				p = rel
			}
		}
		out[i] = Entry{Site: e.Site, Path: p}
	}
	return out
}
