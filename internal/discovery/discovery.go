// Package discovery locates the plan and spec files that validators
// operate on. "The" file to validate is the most recently written file in
// a directory matching an extension, discovered through a combination of
// modification-time recency and git untracked status.
package discovery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// NormalizeExtension ensures the extension carries a leading dot, so both
// "md" and ".md" are accepted from flags and config.
func NormalizeExtension(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// Matcher compiles the "*<ext>" file name pattern used across discovery.
func Matcher(ext string) (glob.Glob, error) {
	return glob.Compile("*" + NormalizeExtension(ext))
}

// RecentFiles returns the files in dir matching ext that were modified
// within maxAge. A missing directory yields no files, not an error: a
// validator decides what absence means.
func RecentFiles(dir, ext string, maxAge time.Duration) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	pattern, err := Matcher(ext)
	if err != nil {
		return nil
	}

	var recent []string
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() || !pattern.Match(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			recent = append(recent, filepath.Join(dir, entry.Name()))
		}
	}
	return recent
}

// FindNewestFile returns the most recently modified file in dir matching
// ext, considering both recently modified files and files git reports as
// new. Returns "" when nothing qualifies.
func FindNewestFile(ctx context.Context, dir, ext string, maxAge time.Duration) string {
	candidates := make(map[string]bool)
	for _, f := range GitUntrackedFiles(ctx, dir, ext) {
		candidates[f] = true
	}
	for _, f := range RecentFiles(dir, ext, maxAge) {
		candidates[f] = true
	}

	var newest string
	var newestMod time.Time
	for f := range candidates {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		if info.ModTime().After(newestMod) {
			newestMod = info.ModTime()
			newest = f
		}
	}
	return newest
}
