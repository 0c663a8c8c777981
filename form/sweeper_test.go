package form

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSweepRemovesOnlyAgedUploads(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, "upload-old")
	fresh := filepath.Join(dir, "upload-fresh")
	other := filepath.Join(dir, "not-an-upload")

	for _, p := range []string{old, fresh, other} {
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatalf("WriteFile(%s): %v", p, err)
		}
	}

	aged := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, aged, aged); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	s := NewSweeper(dir, time.Minute)
	s.sweep()

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected %s to be removed, stat err = %v", old, err)
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("expected %s to survive, stat err = %v", fresh, err)
	}
	if _, err := os.Stat(other); err != nil {
		t.Fatalf("expected %s to survive (no upload- prefix), stat err = %v", other, err)
	}
}

func TestSweeperStartStopWithZeroIntervalIsNoop(t *testing.T) {
	s := NewSweeper(t.TempDir(), 0)
	s.Start()
	s.Stop()

	if s.cron != nil {
		t.Fatal("expected cron to stay nil when interval is zero")
	}
}

func TestNewSweeperDefaultsEmptyTempDir(t *testing.T) {
	s := NewSweeper("", time.Minute)
	if s.tempDir != os.TempDir() {
		t.Fatalf("tempDir = %q, want %q", s.tempDir, os.TempDir())
	}
}
