package batch

import (
	"context"
	"fmt"
	"io"
	"time"

	"vencode/internal/logging"
	"vencode/internal/services"
	"vencode/internal/session"
)

// DefaultInterval bounds each wait for encoder events.
const DefaultInterval = 100 * time.Millisecond

// Controller is the part of a session the batch loop drives.
type Controller interface {
	Submit() bool
	Encoding() bool
	LastError() string
	Poll() int
	WaitEvent(timeout time.Duration) bool
	Snapshot() session.View
	Close(ctx context.Context) error
}

// Options configures Run.
type Options struct {
	Interval time.Duration
	// ProgressStep is the percent step between printed progress lines.
	ProgressStep float64
	// CloseTimeout bounds Close after cancellation. Zero uses the session's
	// own shutdown timeout.
	CloseTimeout time.Duration
}

// Summary reports what a batch run accomplished.
type Summary struct {
	Jobs      int
	Completed int
	Elapsed   time.Duration
}

type printer struct {
	out     io.Writer
	seen    int
	sampler *logging.ProgressSampler
}

// Run encodes the queue starting at its cursor. It returns when no run is in
// flight. A failed run ends the chain and its message is returned as an error.
func Run(ctx context.Context, s Controller, out io.Writer, opts Options) (Summary, error) {
	if out == nil {
		out = io.Discard
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	start := time.Now()
	p := &printer{out: out, sampler: logging.NewProgressSampler(opts.ProgressStep)}

	started := s.Submit()
	p.flush(s.Snapshot())
	if !started {
		return summarize(s.Snapshot(), start), services.Wrap(services.ErrValidation, "batch", "submit", "nothing to encode", nil)
	}

	for s.Encoding() {
		select {
		case <-ctx.Done():
			closeErr := closeSession(s, opts.CloseTimeout)
			p.flush(s.Snapshot())
			if closeErr != nil {
				return summarize(s.Snapshot(), start), fmt.Errorf("%w: %w", ctx.Err(), closeErr)
			}
			return summarize(s.Snapshot(), start), ctx.Err()
		default:
		}
		if s.WaitEvent(interval) {
			s.Poll()
		}
		p.flush(s.Snapshot())
	}

	summary := summarize(s.Snapshot(), start)
	if msg := s.LastError(); msg != "" {
		return summary, services.Wrap(services.ErrExit, "batch", "encode", msg, nil)
	}
	return summary, nil
}

func closeSession(s Controller, timeout time.Duration) error {
	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.Close(ctx)
}

// flush prints log lines not yet written and a progress line each time the
// active run crosses a step.
func (p *printer) flush(view session.View) {
	for _, line := range view.Since(p.seen) {
		fmt.Fprintln(p.out, line)
	}
	p.seen = view.LogTotal

	if !view.Encoding || view.ActiveRunID == "" {
		return
	}
	snap := view.Progress
	percent := snap.Fraction * 100
	if snap.Fraction <= 0 {
		percent = -1
	}
	if !p.sampler.ShouldLog(percent, view.ActiveRunID) || percent < 0 {
		return
	}
	job, _ := view.CurrentJob()
	fmt.Fprintf(p.out, "[%5.1f%%] %s fps=%s speed=%s bitrate=%s time=%s\n",
		percent, job.Input, snap.FrameRate, snap.Speed, snap.Bitrate, snap.Elapsed)
}

func summarize(view session.View, start time.Time) Summary {
	return Summary{
		Jobs:      len(view.Jobs),
		Completed: len(view.Completed),
		Elapsed:   time.Since(start),
	}
}
