// Package pack writes declared resources into a single data blob with a
// key index, and reads them back by key.
package pack

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mrhapile/respack/pkg/logging"
	"github.com/mrhapile/respack/pkg/manifest"
	"github.com/mrhapile/respack/pkg/types"
)

// Option configures the packing process.
type Option func(*config)

type config struct {
	outputDir string
	sourceDir string
	dataFile  string
	indexFile string
	report    bool
	timestamp time.Time
	logger    *log.Logger
}

// WithOutputDir sets the directory the blob and index are written to.
func WithOutputDir(path string) Option {
	return func(c *config) {
		c.outputDir = path
	}
}

// WithSourceDir sets the directory relative asset paths are resolved
// against. Defaults to the output directory.
func WithSourceDir(path string) Option {
	return func(c *config) {
		c.sourceDir = path
	}
}

// WithFileNames overrides the blob and index file names. Empty names keep
// the defaults.
func WithFileNames(data, index string) Option {
	return func(c *config) {
		if data != "" {
			c.dataFile = data
		}
		if index != "" {
			c.indexFile = index
		}
	}
}

// WithReport enables writing a YAML report next to the index.
func WithReport() Option {
	return func(c *config) {
		c.report = true
	}
}

// WithTimestamp sets the report timestamp.
// If zero, defaults to time.Now().
func WithTimestamp(t time.Time) Option {
	return func(c *config) {
		c.timestamp = t
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Pack validates decls and writes them, in order, into a freshly reset blob
// and index. Nothing is written when validation fails.
func Pack(decls []types.Declaration, opts ...Option) (*types.PackResult, error) {
	cfg := &config{
		outputDir: ".",
		dataFile:  DataFileName,
		indexFile: IndexFileName,
		timestamp: time.Now(),
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.sourceDir == "" {
		cfg.sourceDir = cfg.outputDir
	}
	plog := logging.Sender(cfg.logger, logging.TagPacker)

	if err := manifest.Validate(decls); err != nil {
		return nil, err
	}

	outDir, err := filepath.Abs(cfg.outputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}
	store := NewStore(outDir,
		DataFile(cfg.dataFile),
		IndexFile(cfg.indexFile),
		SourceDir(cfg.sourceDir),
		Logger(cfg.logger),
	)
	if err := store.Reset(); err != nil {
		return nil, fmt.Errorf("failed to reset output: %w", err)
	}

	rb := NewReportBuilder(ReportVersion, cfg.timestamp)
	for _, d := range decls {
		data, err := store.readSource(d.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q for key %q: %w", d.Path, d.Key, err)
		}
		rec, err := store.AddBytes(d.Key, d.Type, data)
		if err != nil {
			return nil, fmt.Errorf("failed to add %q: %w", d.Key, err)
		}
		rb.AddResource(rec, d.Path, data)
	}
	report := rb.Build()

	result := &types.PackResult{
		DataPath:      store.DataPath,
		IndexPath:     store.IndexPath,
		ResourceCount: report.TotalResources,
		Report:        report,
	}
	if cfg.report {
		result.ReportPath = filepath.Join(outDir, ReportFileName)
		if err := WriteReport(result.ReportPath, report); err != nil {
			return nil, err
		}
	}

	info, err := os.Stat(store.DataPath)
	if err != nil {
		return nil, ioError(err)
	}
	result.SizeBytes = info.Size()

	plog.Info("packed resources", "count", result.ResourceCount, "bytes", result.SizeBytes, "build", report.BuildID)
	return result, nil
}
