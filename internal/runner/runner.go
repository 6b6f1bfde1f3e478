// Package runner executes scan jobs: scan, present, and optionally export.
package runner

import (
	"context"
	"time"

	"github.com/raoulx24/tsfind/internal/export"
	"github.com/raoulx24/tsfind/internal/logging"
	"github.com/raoulx24/tsfind/internal/mailbox"
	"github.com/raoulx24/tsfind/internal/present"
	"github.com/raoulx24/tsfind/internal/scanner"
)

// Job asks the runner to scan once. Reason is only logged.
type Job struct {
	Reason string
	At     time.Time
}

// Runner owns a fixed scan request and runs it on demand.
type Runner struct {
	req       scanner.Request
	scanner   *scanner.Scanner
	presenter *present.Presenter
	exporter  *export.Exporter
	log       logging.Logger
	mb        *mailbox.Mailbox[Job]
}

// New creates a runner. exporter may be nil; mb is only needed by Start.
func New(req scanner.Request, log logging.Logger, s *scanner.Scanner, p *present.Presenter, ex *export.Exporter, mb *mailbox.Mailbox[Job]) *Runner {
	return &Runner{
		req:       req,
		scanner:   s,
		presenter: p,
		exporter:  ex,
		log:       log,
		mb:        mb,
	}
}

// Run scans once, presents the matches, and exports them when configured.
func (r *Runner) Run(ctx context.Context) (scanner.Result, error) {
	res, err := r.scanner.Scan(ctx, r.req)
	if err != nil {
		return res, err
	}
	if err := r.presenter.Present(res); err != nil {
		return res, err
	}
	if r.exporter != nil {
		if _, err := r.exporter.Export(ctx, res); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Start takes jobs from the mailbox until ctx is done. Failed runs are
// logged and do not stop the loop.
func (r *Runner) Start(ctx context.Context) {
	r.log.Info("starting runner", "dir", r.req.Dir, "tag", r.req.Tag)

	stop := context.AfterFunc(ctx, r.mb.Close)
	defer stop()

	for {
		job, ok := r.mb.Take()
		if !ok || ctx.Err() != nil {
			r.log.Info("runner stopped")
			return
		}

		r.log.Debug("running scan", "reason", job.Reason, "queued_at", job.At)
		if _, err := r.Run(ctx); err != nil {
			r.log.Error("scan failed", "reason", job.Reason, "error", err)
		}
	}
}
