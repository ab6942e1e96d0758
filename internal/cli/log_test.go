package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	graphio "github.com/matzehuels/graphedit/pkg/io"
)

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Rendered", "file", "dfa.svg", "bytes", 2048)

	out := buf.String()
	for _, want := range []string{"Rendered", "file=dfa.svg", "bytes=2048", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("progress output %q missing %q", out, want)
		}
	}
}

func TestProgressDoneBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.WarnLevel)
	newProgress(l).done("Rendered", "file", "dfa.svg")
	if buf.Len() != 0 {
		t.Errorf("progress logged %q at warn level", buf.String())
	}
}

func TestRenderLogsEachFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "dfa.json")
	if err := graphio.ExportJSON(testGraph(), path); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--store", t.TempDir(), "render", path, "-f", "svg,dot", "-o", filepath.Join(dir, "dfa"), "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render error: %v", err)
	}

	out := buf.String()
	if n := strings.Count(out, "Rendered"); n != 2 {
		t.Errorf("logged %d Rendered lines, want 2:\n%s", n, out)
	}
	for _, want := range []string{"dfa.svg", "dfa.dot", "cached=false"} {
		if !strings.Contains(out, want) {
			t.Errorf("render log missing %q:\n%s", want, out)
		}
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edit.log")

	for i := 0; i < 2; i++ {
		l, closer, err := newFileLogger(path, log.InfoLevel)
		if err != nil {
			t.Fatalf("newFileLogger() error: %v", err)
		}
		l.With("doc", "dfa").Info("saved", "nodes", 2)
		l.Debug("pointer moved")
		if err := closer.Close(); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if n := strings.Count(out, "msg=saved"); n != 2 {
		t.Errorf("log file has %d saved records, want 2 (appended):\n%s", n, out)
	}
	for _, want := range []string{"level=info", "doc=dfa", "nodes=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log file missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "pointer moved") {
		t.Error("debug record written at info level")
	}
}

func TestNewFileLoggerBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "edit.log")
	if _, _, err := newFileLogger(path, log.InfoLevel); err == nil {
		t.Error("newFileLogger() in a missing directory succeeded")
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("loggerFromContext did not return the attached logger")
	}

	fallback := loggerFromContext(context.Background())
	if fallback == nil {
		t.Fatal("loggerFromContext() = nil without an attached logger")
	}
	fallback.Info("dropped")
	if buf.Len() != 0 {
		t.Error("fallback logger wrote to the attached logger's output")
	}
}
