package cmd

import (
	"path/filepath"
	"testing"

	"github.com/productforge/forge/internal/config"
	"github.com/productforge/forge/internal/stats"
	"github.com/spf13/viper"
)

func TestStatsRecord(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	config.SetDefaults()

	stateDir := t.TempDir()
	viper.Set("paths.state_dir", stateDir)

	statsRecordProject = "demo"
	statsRecordProcessed = false
	t.Cleanup(func() {
		statsRecordProject = ""
		statsRecordProcessed = false
	})

	if err := runStatsRecord(statsRecordCmd, nil); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	statsRecordProcessed = true
	if err := runStatsRecord(statsRecordCmd, nil); err != nil {
		t.Fatalf("second record failed: %v", err)
	}

	s, err := stats.NewStore(filepath.Join(stateDir, "session_stats.json")).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Total != 2 {
		t.Errorf("Total = %d, want 2", s.Total)
	}
	if s.Processed != 1 {
		t.Errorf("Processed = %d, want 1", s.Processed)
	}
	if s.ByProject["demo"] != 2 {
		t.Errorf("ByProject[demo] = %d, want 2", s.ByProject["demo"])
	}
	if s.LastSession == "" {
		t.Error("LastSession should be set after recording")
	}
}
