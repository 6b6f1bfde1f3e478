package watcher

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// StartCron triggers a scan on every tick of the configured schedule.
func (w *Watcher) StartCron(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(w.schedule, func() { w.trigger("cron") }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", w.schedule, err)
	}

	w.log.Info("watching on schedule", "dir", w.dir, "schedule", w.schedule)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
