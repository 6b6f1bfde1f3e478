package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/raoulx24/tsfind/internal/export"
)

// relevant reports whether an event may change the scan result.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Base(ev.Name)
	// our own exports
	if strings.HasPrefix(name, export.TmpPrefix) || w.ignored[name] {
		return false
	}
	// a renamed or removed file no longer carries a useful name, so only
	// creates and writes are filtered by tag
	if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 && ev.Op&(fsnotify.Rename|fsnotify.Remove) == 0 {
		return strings.Contains(name, w.tag)
	}
	return true
}

// StartFsNotify triggers a scan once fsnotify events have been quiet for
// the debounce window.
func (w *Watcher) StartFsNotify(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}
	w.log.Info("watching for file events", "dir", w.dir, "debounce", w.debounce)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				w.log.Error("events channel closed")
				return nil
			}
			w.log.Debug("event", "name", ev.Name, "op", ev.Op.String())

			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() { w.trigger("fsnotify") })
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("fsnotify error", "error", err)
		}
	}
}
