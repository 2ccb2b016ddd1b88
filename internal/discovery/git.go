package discovery

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// gitTimeout bounds the git subprocess: a hung git invocation must never
// stall a hook.
const gitTimeout = 5 * time.Second

// GitUntrackedFiles lists the new files under dir that git knows nothing
// about yet (untracked or freshly added), filtered by extension. Any git
// failure, including not being in a repository, yields an empty list.
func GitUntrackedFiles(ctx context.Context, dir, ext string) []string {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	// -uall expands untracked directories into their files; without it a
	// fully untracked dir collapses to one "?? dir/" line and the files in
	// it are invisible.
	out, err := exec.CommandContext(ctx, "git", "status", "--porcelain", "-uall", dir+"/").Output()
	if err != nil {
		return nil
	}

	suffix := NormalizeExtension(ext)
	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if len(line) < 4 {
			continue
		}
		// Porcelain format: XY <path>. New files show as "??", "A ",
		// " A" or "AM".
		status, path := line[:2], strings.TrimSpace(line[3:])
		switch status {
		case "??", "A ", " A", "AM":
			if strings.HasSuffix(path, suffix) {
				files = append(files, path)
			}
		}
	}
	return files
}
