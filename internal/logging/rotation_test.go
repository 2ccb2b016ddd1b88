package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotatingWriter_RotatesAtSizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forge-cli.log")

	rw, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 1, MaxBackups: 2})
	if err != nil {
		t.Fatalf("NewRotatingWriter returned error: %v", err)
	}
	defer rw.Close()

	// Two writes of ~600KB each: the second must trigger a rotation.
	chunk := bytes.Repeat([]byte("x"), 600*1024)
	for i := 0; i < 2; i++ {
		if _, err := rw.Write(chunk); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("expected a rotated backup at %s.1: %v", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("current log file missing: %v", err)
	}
	if info.Size() != int64(len(chunk)) {
		t.Errorf("current log size = %d, want %d", info.Size(), len(chunk))
	}
}

func TestRotatingWriter_PrunesOldBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forge-cli.log")

	rw, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 1, MaxBackups: 1})
	if err != nil {
		t.Fatalf("NewRotatingWriter returned error: %v", err)
	}
	defer rw.Close()

	chunk := bytes.Repeat([]byte("y"), 700*1024)
	for i := 0; i < 4; i++ {
		if _, err := rw.Write(chunk); err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "forge-cli.log.") {
			backups++
		}
	}
	if backups != 1 {
		t.Errorf("expected exactly 1 backup, found %d", backups)
	}
}

func TestRotatingWriter_ZeroMaxSizeDisablesRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge-cli.log")

	rw, err := NewRotatingWriter(path, RotationConfig{MaxSizeMB: 0, MaxBackups: 3})
	if err != nil {
		t.Fatalf("NewRotatingWriter returned error: %v", err)
	}
	defer rw.Close()

	for i := 0; i < 10; i++ {
		if _, err := rw.Write(bytes.Repeat([]byte("z"), 1024)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	if _, err := os.Stat(path + ".1"); err == nil {
		t.Error("rotation should be disabled when MaxSizeMB is 0")
	}
}

func TestRotatingWriter_WriteAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forge-cli.log")

	rw, err := NewRotatingWriter(path, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewRotatingWriter returned error: %v", err)
	}
	if err := rw.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if _, err := rw.Write([]byte("late")); err == nil {
		t.Error("expected an error writing to a closed writer")
	}
}
