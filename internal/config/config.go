// Package config loads greenopt's TOML configuration. All fields have
// working defaults; a missing config file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/greenweb/optimizer/pkg/api/optimizerun"
)

// Config is the full greenopt configuration.
type Config struct {
	Server   ServerConfig               `toml:"server"`
	Source   SourceConfig               `toml:"source"`
	Optimize OptimizeConfig             `toml:"optimize"`
	Cleanup  optimizerun.CleanupOptions `toml:"cleanup"`
}

// ServerConfig configures the REST façade.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// SourceConfig configures project acquisition.
type SourceConfig struct {
	// GitHubToken authenticates GitHub API calls. Falls back to the
	// GITHUB_TOKEN environment variable when empty.
	GitHubToken string `toml:"github_token"`
}

// OptimizeConfig tunes the optimization pipeline.
type OptimizeConfig struct {
	// Workers bounds the transform worker pool; 0 means GOMAXPROCS.
	Workers int `toml:"workers"`

	// Format selects the output archive: "zip" or "tar.gz".
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":8080"},
		Optimize: OptimizeConfig{Workers: runtime.GOMAXPROCS(0), Format: string(optimizerun.ArchiveZip)},
		Cleanup:  optimizerun.DefaultCleanupOptions(),
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file
// yields the defaults; a malformed or partially-unknown file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	default:
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
		if err := cfg.validate(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if cfg.Source.GitHubToken == "" {
		cfg.Source.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch optimizerun.ArchiveFormat(c.Optimize.Format) {
	case optimizerun.ArchiveZip, optimizerun.ArchiveTarGz:
	default:
		return fmt.Errorf("[optimize].format must be %q or %q, got %q",
			optimizerun.ArchiveZip, optimizerun.ArchiveTarGz, c.Optimize.Format)
	}
	if c.Optimize.Workers < 0 {
		return fmt.Errorf("[optimize].workers must not be negative, got %d", c.Optimize.Workers)
	}
	return nil
}

// ArchiveFormat returns the configured format as its typed value.
func (c Config) ArchiveFormat() optimizerun.ArchiveFormat {
	return optimizerun.ArchiveFormat(c.Optimize.Format)
}
