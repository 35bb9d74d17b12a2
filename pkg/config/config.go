// Package config loads the packer tool configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/mrhapile/respack/pkg/manifest"
	"github.com/mrhapile/respack/pkg/pack"
)

// DefaultManifest is the primary manifest read from the resource root.
const DefaultManifest = "resource.cgures"

// Config drives one packer invocation.
type Config struct {
	// Root is the resource root: it holds the primary manifest and receives
	// the blob and index.
	Root string `toml:"root"`

	// Manifest is the primary manifest, relative to Root.
	Manifest string `toml:"manifest"`

	// Extra lists supplementary manifests merged after the primary one.
	Extra []string `toml:"extra"`

	DataFile  string `toml:"data_file"`
	IndexFile string `toml:"index_file"`

	// SourceDir is the base for relative asset paths. Empty means Root.
	SourceDir string `toml:"source_dir"`

	// Encoding is one of auto, utf-8 or utf-16le.
	Encoding string `toml:"encoding"`

	// Report enables writing resource.yaml next to the index.
	Report bool `toml:"report"`

	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Root:      ".",
		Manifest:  DefaultManifest,
		DataFile:  pack.DataFileName,
		IndexFile: pack.IndexFileName,
		Encoding:  string(manifest.EncodingAuto),
		LogLevel:  "info",
	}
}

// Load reads path over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return cfg, fmt.Errorf("%s:%d:%d: %w", path, row, col, err)
		}
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports missing or unknown settings.
func (c Config) Validate() error {
	if c.Root == "" {
		return errors.New("config: root is empty")
	}
	if c.Manifest == "" {
		return errors.New("config: manifest is empty")
	}
	if c.DataFile == "" || c.IndexFile == "" {
		return errors.New("config: data_file and index_file must be set")
	}
	if c.DataFile == c.IndexFile {
		return fmt.Errorf("config: data_file and index_file are both %q", c.DataFile)
	}
	if _, err := manifest.ParseEncoding(c.Encoding); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ManifestPaths returns the primary manifest followed by the extras.
func (c Config) ManifestPaths() []string {
	paths := []string{filepath.Join(c.Root, c.Manifest)}
	return append(paths, c.Extra...)
}

// ManifestEncoding returns the parsed Encoding. Validate must have passed.
func (c Config) ManifestEncoding() manifest.Encoding {
	enc, _ := manifest.ParseEncoding(c.Encoding)
	return enc
}

// PackOptions translates the configuration into pack options.
func (c Config) PackOptions() []pack.Option {
	opts := []pack.Option{
		pack.WithOutputDir(c.Root),
		pack.WithFileNames(c.DataFile, c.IndexFile),
	}
	if c.SourceDir != "" {
		opts = append(opts, pack.WithSourceDir(c.SourceDir))
	}
	if c.Report {
		opts = append(opts, pack.WithReport())
	}
	return opts
}
