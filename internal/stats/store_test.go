package stats

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session_stats.json"))

	stats, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if stats.Total != 0 || stats.Processed != 0 || len(stats.ByProject) != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session_stats.json")
	store := NewStore(path)

	stats, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	stats.Record("product-forge", "2026-08-30T10:00:00Z")
	stats.Record("product-forge", "2026-08-30T11:00:00Z")
	stats.Record("other", "2026-08-30T12:00:00Z")
	stats.MarkProcessed()

	if err := store.Save(stats); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}
	if loaded.Total != 3 || loaded.Processed != 1 {
		t.Errorf("totals = %d/%d, want 3/1", loaded.Total, loaded.Processed)
	}
	if loaded.ByProject["product-forge"] != 2 || loaded.ByProject["other"] != 1 {
		t.Errorf("by_project = %v", loaded.ByProject)
	}
	if loaded.LastSession != "2026-08-30T12:00:00Z" {
		t.Errorf("last_session = %q", loaded.LastSession)
	}
	if loaded.Version != "1.0" {
		t.Errorf("version = %q", loaded.Version)
	}
}

func TestStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session_stats.json")
	store := NewStore(path)

	if err := store.Save(&SessionStats{}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	// Truncate to garbage.
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(); err == nil {
		t.Error("expected an error loading a corrupt stats file")
	}
}
