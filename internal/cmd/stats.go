package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/productforge/forge/internal/config"
	"github.com/productforge/forge/internal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session capture statistics",
	Long: `Display statistics for captured agent sessions.

Shows:
- Total sessions captured and processed
- Per-project breakdown
- Timestamp of the last captured session`,
	RunE: runStats,
}

var statsRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a captured session",
	Long: `Record one captured agent session in the stats store. Intended to be
called from a session-capture hook; the project defaults to the name of
the current working directory.`,
	RunE: runStatsRecord,
}

var (
	statsJSON            bool // Output as JSON
	statsRecordProject   string
	statsRecordProcessed bool
)

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output statistics as JSON")
	statsRecordCmd.Flags().StringVar(&statsRecordProject, "project", "", "Project name (default: current directory name)")
	statsRecordCmd.Flags().BoolVar(&statsRecordProcessed, "processed", false, "Also count the session as processed")
	statsCmd.AddCommand(statsRecordCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store := stats.NewStore(cfg.StatsPath())
	s, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session stats: %w", err)
	}

	if statsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	return printStatsText(s)
}

func runStatsRecord(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	project := statsRecordProject
	if project == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		project = filepath.Base(wd)
	}

	store := stats.NewStore(cfg.StatsPath())
	s, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session stats: %w", err)
	}

	s.Record(project, time.Now().UTC().Format(time.RFC3339))
	if statsRecordProcessed {
		s.MarkProcessed()
	}
	if err := store.Save(s); err != nil {
		return fmt.Errorf("failed to save session stats: %w", err)
	}

	log := newAuditLogger(cfg)
	defer log.Close()
	log.WithComponent("stats").Info("session recorded",
		"project", project, "processed", statsRecordProcessed)

	fmt.Printf("Recorded session for %s\n", project)
	return nil
}

func printStatsText(s *stats.SessionStats) error {
	fmt.Println()
	fmt.Println("SESSION CAPTURE SUMMARY")
	fmt.Println(strings.Repeat("─", 50))
	fmt.Printf("Captured:  %d\n", s.Total)
	fmt.Printf("Processed: %d\n", s.Processed)
	if s.LastSession != "" {
		fmt.Printf("Last session: %s\n", s.LastSession)
	}
	fmt.Println()

	if len(s.ByProject) == 0 {
		fmt.Println("No sessions captured yet.")
		fmt.Println()
		return nil
	}

	fmt.Println("BY PROJECT")
	fmt.Println(strings.Repeat("─", 50))

	// Sort projects by count descending, name ascending for ties
	type projData struct {
		name  string
		count int
	}
	projects := make([]projData, 0, len(s.ByProject))
	for name, count := range s.ByProject {
		projects = append(projects, projData{name, count})
	}
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].count != projects[j].count {
			return projects[i].count > projects[j].count
		}
		return projects[i].name < projects[j].name
	})

	for _, p := range projects {
		fmt.Printf("%-40s %d\n", p.name, p.count)
	}

	fmt.Println()
	return nil
}
