package prompt

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads library entries as files in the prompts directory change, so
// prompt iteration never needs a server restart. Blocks until ctx is
// cancelled or the watcher breaks.
func (l *Library) Watch(ctx context.Context) error {
	if l.dir == "" {
		return fmt.Errorf("prompts directory not configured")
	}
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create prompts directory: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(l.dir); err != nil {
		return err
	}

	l.log.Info("prompt watcher started", "dir", l.dir)

	// Catch files created between NewLibrary and Add
	l.loadDir()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(strings.ToLower(event.Name), ".txt") {
				continue
			}
			switch {
			case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
				// Brief delay so editors finish writing
				time.Sleep(100 * time.Millisecond)
				l.loadFile(event.Name)
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				l.removeFile(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.log.Warn("prompt watcher error", "error", err)
		case <-ctx.Done():
			return nil
		}
	}
}
