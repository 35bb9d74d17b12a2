package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mrhapile/respack/pkg/logging"
)

func TestSenderPrefix(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(&buf, "debug")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logging.Sender(l, logging.TagPacker).Debug("packed", "key", "a")

	out := buf.String()
	if !strings.Contains(out, logging.TagPacker) || !strings.Contains(out, "packed") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.New(&buf, "warn")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info logged at warn level: %q", buf.String())
	}
}

func TestInvalidLevel(t *testing.T) {
	if _, err := logging.New(&bytes.Buffer{}, "chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}
