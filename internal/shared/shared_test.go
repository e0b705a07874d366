package shared

import (
	"bytes"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to provided writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello", "series", "A")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
		if !strings.Contains(buf.String(), "series=A") {
			t.Errorf("expected log output to contain key/value, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "tui.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		if logger == nil {
			t.Fatal("expected logger")
		}
	})

	t.Run("ParseLogLevel", func(t *testing.T) {
		tc := []struct {
			name string
			want log.Level
		}{
			{"", log.InfoLevel},
			{"debug", log.DebugLevel},
			{"warn", log.WarnLevel},
			{"nonsense", log.InfoLevel},
		}
		for _, c := range tc {
			if got := ParseLogLevel(c.name); got != c.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", c.name, got, c.want)
			}
		}
	})

	t.Run("GenerateID is unique", func(t *testing.T) {
		if GenerateID() == GenerateID() {
			t.Error("expected distinct ids")
		}
	})
}

func TestOpenLink(t *testing.T) {
	originalRuntime, originalStart := getRuntime, startCmd
	defer func() { getRuntime, startCmd = originalRuntime, originalStart }()

	var started []string
	startCmd = func(cmd *exec.Cmd) error {
		started = cmd.Args
		return nil
	}

	t.Run("rejects non http links", func(t *testing.T) {
		for _, link := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "/relative"} {
			if err := OpenLink(link); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("OpenLink(%q) expected ErrInvalidInput, got %v", link, err)
			}
		}
	})

	t.Run("linux uses xdg-open", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		if err := OpenLink("https://open.spotify.com/episode/1"); err != nil {
			t.Fatalf("OpenLink failed: %v", err)
		}
		if len(started) == 0 || filepath.Base(started[0]) != "xdg-open" {
			t.Errorf("expected xdg-open, got %v", started)
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		getRuntime = func() string { return "plan9" }
		if err := OpenLink("https://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})

	t.Run("start failure is wrapped", func(t *testing.T) {
		getRuntime = func() string { return "darwin" }
		startCmd = func(*exec.Cmd) error { return errors.New("boom") }
		if err := OpenLink("https://example.com"); err == nil || !strings.Contains(err.Error(), "boom") {
			t.Errorf("expected wrapped start error, got %v", err)
		}
	})
}
