package discovery

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WaitForFile blocks until a file matching ext exists in dir, bounded by
// the context deadline. It first checks for an already-present candidate,
// then watches the directory for a freshly written one. This covers the
// race where a hook fires before the agent has finished writing its plan.
func WaitForFile(ctx context.Context, dir, ext string, maxAge time.Duration) (string, error) {
	if found := FindNewestFile(ctx, dir, ext, maxAge); found != "" {
		return found, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return "", fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		// Directory may not exist yet; fall back to polling so a late
		// mkdir+write still gets picked up within the deadline.
		return pollForFile(ctx, dir, ext, maxAge)
	}

	pattern, err := Matcher(ext)
	if err != nil {
		return "", fmt.Errorf("bad extension pattern: %w", err)
	}

	// Re-check after the watch is established: the file may have landed
	// between the first scan and watcher.Add.
	if found := FindNewestFile(ctx, dir, ext, maxAge); found != "" {
		return found, nil
	}

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return "", fmt.Errorf("watcher closed")
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if pattern.Match(filepath.Base(event.Name)) {
				return event.Name, nil
			}
		case _, ok := <-watcher.Errors:
			if !ok {
				return "", fmt.Errorf("watcher closed")
			}
			// Transient watch errors are ignored; the deadline still
			// bounds the wait.
		}
	}
}

func pollForFile(ctx context.Context, dir, ext string, maxAge time.Duration) (string, error) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
			if found := FindNewestFile(ctx, dir, ext, maxAge); found != "" {
				return found, nil
			}
		}
	}
}
