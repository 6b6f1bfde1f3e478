package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/raoulx24/tsfind/internal/export"
	"github.com/raoulx24/tsfind/internal/mailbox"
	"github.com/raoulx24/tsfind/internal/runner"
	"github.com/raoulx24/tsfind/internal/watcher"
)

// errCopyToWatched rejects exporting into the watched directory, where each
// export would look like a change and trigger the next scan.
var errCopyToWatched = errors.New("copy-to must not be the watched directory")

type watchFlags struct {
	mode     string
	schedule string
	debounce time.Duration
}

// newWatchCmd creates the watch command, which repeats the scan whenever the
// directory changes or the schedule fires.
func newWatchCmd(root *rootFlags) *cobra.Command {
	opts := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Repeat the scan on file changes or on a schedule",
		Long: `Watch resolves the scan parameters once and then rescans the directory
whenever files change (fsnotify) or a cron schedule fires. In auto mode
fsnotify is used when the directory supports it, otherwise the schedule.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", "", "trigger: auto, fsnotify or cron")
	cmd.Flags().StringVar(&opts.schedule, "schedule", "", `cron schedule, e.g. "*/5 * * * *" or "@every 30s"`)
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 0, "quiet period after file events before rescanning")
	return cmd
}

func runWatch(cmd *cobra.Command, root *rootFlags, opts *watchFlags) error {
	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Watch.Mode = opts.mode
	}
	if flags.Changed("schedule") {
		cfg.Watch.Schedule = opts.schedule
	}
	if flags.Changed("debounce") {
		cfg.Watch.DebounceWindow = opts.debounce
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s, err := newSession(cmd, cfg)
	if err != nil {
		return err
	}

	if s.exporter != nil && sameDir(cfg.Output.CopyTo, s.req.Dir) {
		return fmt.Errorf("%w: %s", errCopyToWatched, cfg.Output.CopyTo)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mb := mailbox.New[runner.Job]()
	r := runner.New(s.req, s.log, s.scanner, s.presenter, s.exporter, mb)
	w := watcher.New(s.req.Dir, s.req.Tag, cfg.Watch, s.log.With("mode", cfg.Watch.Mode), mb)
	if s.exporter != nil {
		w.Ignore(export.DirName(s.req))
	}

	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()

	err = w.Start(ctx)
	cancel()
	<-done

	if err != nil {
		return err
	}
	s.log.Info("watch stopped")
	return nil
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
