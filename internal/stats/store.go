// Package stats tracks session capture statistics. The store is an
// explicit object handed to whoever needs it; nothing in this package
// keeps module-level state.
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const statsVersion = "1.0"

// SessionStats is the persisted statistics document.
type SessionStats struct {
	Version     string         `json:"version"`
	Total       int            `json:"total_sessions"`
	Processed   int            `json:"processed_sessions"`
	ByProject   map[string]int `json:"by_project"`
	LastSession string         `json:"last_session,omitempty"`
}

// Record counts a newly captured session for a project.
func (s *SessionStats) Record(project, capturedAt string) {
	if s.ByProject == nil {
		s.ByProject = make(map[string]int)
	}
	s.Total++
	s.ByProject[project]++
	s.LastSession = capturedAt
}

// MarkProcessed counts one session as processed.
func (s *SessionStats) MarkProcessed() {
	s.Processed++
}

// Store reads and writes SessionStats at a fixed path.
type Store struct {
	path string
}

// NewStore returns a store over the given stats file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the stats file. A missing file yields zero stats, not an
// error: the first session ever has nothing to load.
func (s *Store) Load() (*SessionStats, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &SessionStats{Version: statsVersion, ByProject: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats file: %w", err)
	}

	var stats SessionStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to parse stats file: %w", err)
	}
	if stats.ByProject == nil {
		stats.ByProject = map[string]int{}
	}
	return &stats, nil
}

// Save writes the stats file, creating parent directories as needed.
func (s *Store) Save(stats *SessionStats) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create stats directory: %w", err)
	}

	stats.Version = statsVersion
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}
