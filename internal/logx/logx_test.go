package logx

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestNewWritesFileAndMirror(t *testing.T) {
	dir := t.TempDir()
	var mirror bytes.Buffer

	logger, closer, err := New(dir, &mirror)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Printf("add: component=%s", "Button")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".log") {
		t.Fatalf("expected one .log file, got %v", entries)
	}

	data, err := os.ReadFile(dir + "/" + entries[0].Name())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "component=Button") {
		t.Fatalf("log file missing line: %q", data)
	}
	if !strings.Contains(mirror.String(), "component=Button") {
		t.Fatalf("mirror missing line: %q", mirror.String())
	}
}

func TestDiscard(t *testing.T) {
	Discard().Printf("ignored %d", 1)
}
