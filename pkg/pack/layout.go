package pack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/mrhapile/respack/pkg/logging"
)

const (
	DataFileName   = "resource.uwu"
	IndexFileName  = "finder.qaq"
	ReportFileName = "resource.yaml"
)

var (
	// ErrResourceNotFound is returned when a key is not present in the index.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrIO wraps every file system failure while packing or reading.
	ErrIO = errors.New("i/o failure")

	// ErrCorruptIndex is returned when an index record is truncated or lacks
	// its terminator.
	ErrCorruptIndex = errors.New("corrupt index")
)

// Store names the data blob and index under a root directory. Stores with
// different roots are independent.
type Store struct {
	Root      string // Directory holding the blob and index
	DataPath  string // Path of the data blob
	IndexPath string // Path of the index
	SourceDir string // Base for relative asset paths, defaults to Root

	log     *log.Logger
	packLog *log.Logger
	readLog *log.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// DataFile overrides the data blob file name.
func DataFile(name string) StoreOption {
	return func(s *Store) {
		s.DataPath = filepath.Join(s.Root, name)
	}
}

// IndexFile overrides the index file name.
func IndexFile(name string) StoreOption {
	return func(s *Store) {
		s.IndexPath = filepath.Join(s.Root, name)
	}
}

// SourceDir sets the directory relative asset paths are resolved against.
func SourceDir(dir string) StoreOption {
	return func(s *Store) {
		s.SourceDir = dir
	}
}

// Logger sets the logger; messages are tagged packer or reader.
func Logger(l *log.Logger) StoreOption {
	return func(s *Store) {
		s.log = l
	}
}

// NewStore returns a Store rooted at root using the default file names.
func NewStore(root string, opts ...StoreOption) *Store {
	s := &Store{
		Root:      root,
		DataPath:  filepath.Join(root, DataFileName),
		IndexPath: filepath.Join(root, IndexFileName),
		SourceDir: root,
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.packLog = logging.Sender(s.log, logging.TagPacker)
	s.readLog = logging.Sender(s.log, logging.TagReader)
	return s
}

// Reset deletes the blob and index and recreates them empty.
func (s *Store) Reset() error {
	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return ioError(err)
	}
	for _, p := range []string{s.DataPath, s.IndexPath} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return ioError(err)
		}
		f, err := os.Create(p)
		if err != nil {
			return ioError(err)
		}
		if err := f.Close(); err != nil {
			return ioError(err)
		}
	}
	s.packLog.Debug("reset output", "data", s.DataPath, "index", s.IndexPath)
	return nil
}

// resolve maps a declared asset path to a file system path.
func (s *Store) resolve(path string) string {
	if filepath.IsAbs(path) || s.SourceDir == "" {
		return path
	}
	return filepath.Join(s.SourceDir, path)
}

func ioError(err error) error {
	return fmt.Errorf("%w: %w", ErrIO, err)
}
