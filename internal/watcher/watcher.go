// Package watcher decides when a directory should be scanned again and
// emits scan jobs.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/raoulx24/tsfind/internal/config"
	"github.com/raoulx24/tsfind/internal/fsprobe"
	"github.com/raoulx24/tsfind/internal/logging"
	"github.com/raoulx24/tsfind/internal/mailbox"
	"github.com/raoulx24/tsfind/internal/runner"
)

// Watch modes.
const (
	ModeAuto     = "auto"
	ModeCron     = "cron"
	ModeFsnotify = "fsnotify"
)

// Watcher triggers scans of dir on a cron schedule or on file events.
type Watcher struct {
	dir      string
	tag      string
	mode     string
	schedule string
	debounce time.Duration
	ignored  map[string]bool

	log logging.Logger
	mb  *mailbox.Mailbox[runner.Job]

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a watcher for dir. tag narrows which file events count.
func New(dir, tag string, cfg config.WatchConfig, log logging.Logger, mb *mailbox.Mailbox[runner.Job]) *Watcher {
	return &Watcher{
		dir:      dir,
		tag:      tag,
		mode:     cfg.Mode,
		schedule: cfg.Schedule,
		debounce: cfg.DebounceWindow,
		log:      log,
		mb:       mb,
		now:      time.Now,
	}
}

// Ignore drops file events for the given base names, e.g. an export
// directory created inside dir.
func (w *Watcher) Ignore(names ...string) {
	if w.ignored == nil {
		w.ignored = make(map[string]bool, len(names))
	}
	for _, n := range names {
		w.ignored[n] = true
	}
}

// Start emits an initial job and then chooses the watching strategy based
// on the mode. It returns when ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.trigger("startup")

	switch w.mode {
	case ModeFsnotify:
		return w.StartFsNotify(ctx)

	case ModeCron:
		return w.StartCron(ctx)

	case ModeAuto, "":
		res := fsprobe.Probe(w.dir, fsprobe.DefaultTimeout)
		if res.FsnotifySupported {
			return w.StartFsNotify(ctx)
		}
		w.log.Warn("fsnotify disabled, falling back to cron", "reason", res.Reason, "schedule", w.schedule)
		return w.StartCron(ctx)

	default:
		return fmt.Errorf("unknown watch mode %q", w.mode)
	}
}

// trigger hands a job to the runner, replacing one that is still pending.
func (w *Watcher) trigger(reason string) {
	w.log.Debug("scan triggered", "reason", reason)
	w.mb.Put(runner.Job{Reason: reason, At: w.now()})
}
