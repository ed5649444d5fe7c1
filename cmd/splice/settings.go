package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"splice/internal/config"
	"splice/internal/diagfmt"
	"splice/internal/driver"
	"splice/internal/library"
)

// settings is the merged view of flags, positional arguments and splice.toml.
type settings struct {
	includes string
	list     string
	files    []string
	color    string
	cache    bool
	cacheDir string
	// manifest is nil when no splice.toml was found.
	manifest *config.Manifest
}

// settings merges the persistent flags with splice.toml. libArgs are the
// optional positional includes and list paths; they take precedence over
// [library]. The extra [library].files are used only together with the
// manifest's own list. Without needLibrary a missing library is not an error.
func (c *cli) settings(cmd *cobra.Command, libArgs []string, needLibrary bool) (settings, error) {
	m, err := c.manifest()
	if err != nil {
		return settings{}, err
	}

	s := settings{manifest: m, color: config.ColorAuto}
	if m != nil {
		s.color = m.Config.Output.Color
		s.cache = m.Config.Cache.Enabled
		s.cacheDir = m.CacheDir()
	}

	switch {
	case len(libArgs) == 2:
		s.includes, s.list = libArgs[0], libArgs[1]
	case m != nil && m.Config.Library.Includes != "":
		s.includes = m.IncludesPath()
		s.list = m.ListPath()
		s.files = m.Files()
	case needLibrary:
		return settings{}, fmt.Errorf("no library given: pass includes-file and library-list or set [library] in %s", config.ManifestName)
	}

	pf := cmd.Root().PersistentFlags()
	if pf.Changed("color") {
		if err := config.ValidateColor(c.flags.color); err != nil {
			return settings{}, fmt.Errorf("--color: %w", err)
		}
		s.color = c.flags.color
	}
	if pf.Changed("cache") {
		s.cache = c.flags.cache
	}
	if c.flags.jobs < 0 {
		return settings{}, fmt.Errorf("--jobs must not be negative")
	}
	return s, nil
}

// manifest loads --config when given, otherwise the nearest splice.toml.
func (c *cli) manifest() (*config.Manifest, error) {
	if c.flags.config != "" {
		return config.Load(c.flags.config)
	}
	m, ok, err := config.Discover(".")
	if err != nil || !ok {
		return nil, err
	}
	c.logger.Debug("Using manifest", zap.String("path", m.Path))
	return m, nil
}

// colorMode decides whether diagnostics are coloured.
func colorMode(mode string) bool {
	switch mode {
	case config.ColorOn:
		return true
	case config.ColorOff:
		return false
	}
	return isTerminal(os.Stderr)
}

func (c *cli) driverOptions(s settings) (driver.Options, error) {
	opts := driver.Options{
		IncludesPath: s.includes,
		ListPath:     s.list,
		Files:        s.files,
		Jobs:         c.flags.jobs,
		Color:        colorMode(s.color),
		PathMode:     diagfmt.PathModeAsGiven,
		Timings:      c.flags.timings,
		Logger:       c.logger,
	}
	if s.cache {
		cache, err := library.OpenDiskCache(s.cacheDir, "splice")
		if err != nil {
			return driver.Options{}, fmt.Errorf("failed to open index cache: %w", err)
		}
		c.logger.Debug("Index cache", zap.String("dir", cache.Dir()))
		opts.Cache = cache
	}
	return opts, nil
}
