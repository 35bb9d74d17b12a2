// Package logging builds the tagged loggers used by the packer, the reader
// and the command line tools.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Sender tags.
const (
	TagCLI      = "cli"
	TagManifest = "manifest"
	TagPacker   = "packer"
	TagReader   = "reader"
	TagWatch    = "watch"
)

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"). An empty level means info.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		lvl, err = log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
	}), nil
}

// Sender derives a logger whose prefix names the component emitting the
// message.
func Sender(l *log.Logger, tag string) *log.Logger {
	if l == nil {
		l = Discard()
	}
	return l.WithPrefix(tag)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
