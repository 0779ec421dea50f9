package queue

import (
	"context"
	"fmt"
	"log/slog"

	"vencode/internal/fileutil"
	"vencode/internal/logging"
	"vencode/internal/settings"
)

// Run identifies a started encoder run.
type Run interface {
	ID() string
}

// Starter launches one encoder run. Start must not block on the encode itself.
type Starter interface {
	Start(ctx context.Context, job Job, index int, params settings.EncodingParameters) (Run, error)
}

// Sink receives operator-facing messages.
type Sink interface {
	Logf(format string, args ...any)
	// Clear drops earlier messages when a fresh submission starts.
	Clear()
}

// Sequencer runs the queue's jobs one at a time, chaining each successful run
// into the next.
type Sequencer struct {
	queue   *Queue
	starter Starter
	sink    Sink
	logger  *slog.Logger

	params settings.EncodingParameters
	active Run
}

// NewSequencer wires a queue to the starter that runs its jobs.
func NewSequencer(q *Queue, starter Starter, sink Sink, logger *slog.Logger) *Sequencer {
	if q == nil {
		q = New()
	}
	return &Sequencer{
		queue:   q,
		starter: starter,
		sink:    sink,
		logger:  logging.NewComponentLogger(logger, "sequencer"),
	}
}

// Queue exposes the underlying queue for read-only inspection.
func (s *Sequencer) Queue() *Queue { return s.queue }

// Active returns the run in flight, or nil.
func (s *Sequencer) Active() Run { return s.active }

// ActiveID returns the identifier of the run in flight, or "".
func (s *Sequencer) ActiveID() string {
	if s.active == nil {
		return ""
	}
	return s.active.ID()
}

// Params returns the parameters frozen by the last submission.
func (s *Sequencer) Params() settings.EncodingParameters { return s.params }

// Submit starts the job under the cursor with params. It is refused while a
// run is in flight and when no job is left. A job that failed earlier is
// retried at the same position.
func (s *Sequencer) Submit(ctx context.Context, params settings.EncodingParameters) (Run, bool) {
	switch {
	case s.active != nil:
		s.logf("Encoding already in progress")
		return nil, false
	case s.queue.Len() == 0:
		s.logf("No files in queue!")
		return nil, false
	case s.queue.Exhausted():
		s.logf("All files processed!")
		return nil, false
	}

	s.params = params
	if s.sink != nil {
		s.sink.Clear()
	}
	job, _ := s.queue.CurrentJob()
	s.logf("Starting encoding: %s", job.Input)
	return s.startCurrent(ctx)
}

// AdvanceOnDone records the success of runID and starts the next job with the
// frozen parameters. It returns the newly started run, if any. A runID that
// is not the active run is ignored.
func (s *Sequencer) AdvanceOnDone(ctx context.Context, runID string) (Run, bool) {
	if !s.Complete(runID) {
		return nil, false
	}

	next, ok := s.queue.CurrentJob()
	if !ok {
		s.logf("All files processed!")
		s.logger.Info("queue finished", logging.Int("completed", len(s.queue.completed)))
		return nil, false
	}
	s.logf("Starting next file: %s", next.Input)
	return s.startCurrent(ctx)
}

// Complete records the success of runID without starting the next job. It
// reports whether runID was the active run.
func (s *Sequencer) Complete(runID string) bool {
	if !s.isActive(runID) {
		s.logger.Debug("ignoring completion from inactive run", logging.String(logging.FieldRunID, runID))
		return false
	}
	s.active = nil
	s.queue.complete()
	return true
}

// AdvanceOnError records the failure of runID. The cursor stays put so a
// later Submit reruns the same job.
func (s *Sequencer) AdvanceOnError(runID, message string) bool {
	if !s.isActive(runID) {
		s.logger.Debug("ignoring failure from inactive run", logging.String(logging.FieldRunID, runID))
		return false
	}
	s.active = nil
	s.queue.markFailed()
	job, _ := s.queue.CurrentJob()
	logging.WarnWithContext(s.logger, "encode failed", "encode_failed",
		logging.String(logging.FieldInput, job.Input),
		logging.Int(logging.FieldJobIndex, s.queue.current),
		logging.String("message", message),
		logging.String(logging.FieldErrorHint, "adjust settings and submit again to retry this file"),
		logging.String(logging.FieldImpact, "queue paused at this file"),
	)
	return true
}

func (s *Sequencer) startCurrent(ctx context.Context) (Run, bool) {
	index := s.queue.current
	job, _ := s.queue.CurrentJob()
	job.Output = fileutil.WithExtension(job.Output, s.params.Container)
	s.queue.setOutput(index, job.Output)
	s.queue.markRunning()

	if s.starter == nil {
		s.queue.markFailed()
		s.logf("ERROR: no encoder configured")
		return nil, false
	}
	run, err := s.starter.Start(ctx, job, index, s.params)
	if err != nil {
		s.queue.markFailed()
		s.logf("ERROR: %v", err)
		logging.ErrorWithContext(s.logger, "encoder start failed", "encoder_start",
			logging.String(logging.FieldInput, job.Input),
			logging.Error(err),
		)
		return nil, false
	}
	s.active = run
	s.logger.Info("encode started",
		logging.String(logging.FieldRunID, run.ID()),
		logging.Int(logging.FieldJobIndex, index),
		logging.String(logging.FieldInput, job.Input),
		logging.String(logging.FieldOutput, job.Output),
	)
	return run, true
}

func (s *Sequencer) isActive(runID string) bool {
	return s.active != nil && runID != "" && s.active.ID() == runID
}

func (s *Sequencer) logf(format string, args ...any) {
	if s.sink != nil {
		s.sink.Logf(format, args...)
	}
	s.logger.Debug(fmt.Sprintf(format, args...))
}
