// Package config loads splitchunks.toml.
//
// Values come from, in increasing priority: DefaultConfig, the config file,
// and SPLITCHUNKS_* environment variables. The merged result is checked
// against an embedded CUE schema before it is handed out.
package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/lsycxyj/disableSplitChunks/bundler"
	"github.com/lsycxyj/disableSplitChunks/chunkname"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "splitchunks"
	// ConfigFileName is the default config file looked up in the working directory.
	ConfigFileName = "splitchunks.toml"
	// EnvPrefix prefixes environment overrides, e.g. SPLITCHUNKS_POLICY.
	EnvPrefix = "SPLITCHUNKS"
)

//go:embed config_schema.cue
var configSchema string

type (
	// Entry is one site of the build. Path defaults to <source_dir>/<site>.js.
	Entry struct {
		Site string `mapstructure:"site" json:"site" toml:"site"`
		Path string `mapstructure:"path" json:"path,omitempty" toml:"path,omitempty"`
	}

	// Config is the resolved configuration.
	Config struct {
		Policy     string  `mapstructure:"policy" json:"policy" toml:"policy"`
		CommonName string  `mapstructure:"common_name" json:"common_name" toml:"common_name"`
		CacheGroup string  `mapstructure:"cache_group" json:"cache_group" toml:"cache_group"`
		SourceDir  string  `mapstructure:"source_dir" json:"source_dir" toml:"source_dir"`
		OutDir     string  `mapstructure:"out_dir" json:"out_dir" toml:"out_dir"`
		WorkDir    string  `mapstructure:"work_dir" json:"work_dir" toml:"work_dir"`
		Minify     bool    `mapstructure:"minify" json:"minify" toml:"minify"`
		Entries    []Entry `mapstructure:"entries" json:"entries" toml:"entries"`
	}

	// LoadOptions tells Load where to look.
	LoadOptions struct {
		// ConfigFilePath is used exclusively when set and must exist.
		ConfigFilePath string
		// Dir is searched for ConfigFileName when no explicit path is given.
		// Defaults to the current directory.
		Dir string
	}
)

// DefaultConfig mirrors the three page site the tool was first written for.
func DefaultConfig() *Config {
	return &Config{
		Policy:     string(chunkname.PolicyPrefix),
		CommonName: chunkname.DefaultCommonName,
		CacheGroup: chunkname.DefaultCacheGroup,
		SourceDir:  "sources/js",
		OutDir:     "dist",
		WorkDir:    ".",
		Minify:     true,
		Entries: []Entry{
			{Site: "index"},
			{Site: "about"},
			{Site: "contact"},
		},
	}
}

// Load resolves the configuration. The returned path is the file that was
// read, or "" when only defaults and the environment applied.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("policy", defaults.Policy)
	v.SetDefault("common_name", defaults.CommonName)
	v.SetDefault("cache_group", defaults.CacheGroup)
	v.SetDefault("source_dir", defaults.SourceDir)
	v.SetDefault("out_dir", defaults.OutDir)
	v.SetDefault("work_dir", defaults.WorkDir)
	v.SetDefault("minify", defaults.Minify)
	v.SetDefault("entries", []map[string]any{
		{"site": "index"},
		{"site": "about"},
		{"site": "contact"},
	})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", fmt.Errorf("%w: %s", ErrConfigNotFound, opts.ConfigFilePath)
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		if candidate := filepath.Join(dir, ConfigFileName); fileExists(candidate) {
			resolvedPath = candidate
		}
	}

	if resolvedPath != "" {
		v.SetConfigFile(resolvedPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config %s: %w", resolvedPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Policy = strings.ToLower(strings.TrimSpace(cfg.Policy))
	if cfg.Entries == nil {
		cfg.Entries = []Entry{}
	}

	if err := validateSchema(&cfg); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := validateEntries(cfg.Entries); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.fillEntryPaths()

	return &cfg, resolvedPath, nil
}

// validateSchema unifies the decoded config with the embedded #Config
// definition.
func validateSchema(cfg *Config) error {
	ctx := cuecontext.New()
	schemaValue := ctx.CompileString(configSchema)
	if err := schemaValue.Err(); err != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", err)
	}
	userValue := ctx.Encode(cfg)
	if err := userValue.Err(); err != nil {
		return err
	}
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	return schema.Unify(userValue).Validate(cue.Concrete(true))
}

// validateEntries checks what the schema cannot: sites must be unique.
func validateEntries(entries []Entry) error {
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		if first, ok := seen[e.Site]; ok {
			return fmt.Errorf("entries[%d]: %w %q (same as entries[%d])", i, ErrDuplicateSite, e.Site, first)
		}
		seen[e.Site] = i
	}
	return nil
}

func (c *Config) fillEntryPaths() {
	for i, e := range c.Entries {
		if e.Path == "" {
			c.Entries[i].Path = filepath.Join(c.SourceDir, e.Site+".js")
		}
	}
}

// NamerPolicy parses the configured policy.
func (c *Config) NamerPolicy() (chunkname.Policy, error) {
	return chunkname.ParsePolicy(c.Policy)
}

// Namer builds the configured chunkname.Namer.
func (c *Config) Namer() (chunkname.Namer, error) {
	policy, err := c.NamerPolicy()
	if err != nil {
		return nil, err
	}
	return chunkname.New(policy, chunkname.Options{
		CommonName: c.CommonName,
		CacheGroup: c.CacheGroup,
	})
}

// BundlerEntries converts the configured entries for package bundler.
func (c *Config) BundlerEntries() []bundler.Entry {
	entries := make([]bundler.Entry, len(c.Entries))
	for i, e := range c.Entries {
		entries[i] = bundler.Entry{Site: e.Site, Path: e.Path}
	}
	return entries
}

// GenerateTOML renders cfg as a config file.
func GenerateTOML(cfg *Config) ([]byte, error) {
	body, err := toml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	header := "# splitchunks configuration\n# policy is one of: prefix, segment, module\n\n"
	return append([]byte(header), body...), nil
}

// WriteDefault writes DefaultConfig to path. An existing file is only
// replaced when force is set.
func WriteDefault(path string, force bool) error {
	if fileExists(path) && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	data, err := GenerateTOML(DefaultConfig())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
