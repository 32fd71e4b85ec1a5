package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rowedit.log")
	logger, closeLog, err := Init(path)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	logger.Debug("opened", "path", "main.rs", "lines", 3)
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(data)
	for _, want := range []string{"level=DEBUG", "msg=opened", "path=main.rs", "lines=3"} {
		if !strings.Contains(got, want) {
			t.Fatalf("log %q missing %q", got, want)
		}
	}
}

func TestInitEmptyPathDiscards(t *testing.T) {
	logger, closeLog, err := Init("")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer closeLog()
	logger.Info("dropped")
}

func TestInitBadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Init(filepath.Join(blocker, "x.log")); err == nil {
		t.Fatalf("expected error when parent is a file")
	}
}
