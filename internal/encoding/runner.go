package encoding

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"vencode/internal/logging"
	"vencode/internal/progress"
	"vencode/internal/queue"
	"vencode/internal/services"
	"vencode/internal/settings"
)

var (
	commandContext = exec.CommandContext
	stderrPipe     = func(cmd *exec.Cmd) (io.ReadCloser, error) { return cmd.StderrPipe() }
)

const defaultStopGrace = 5 * time.Second

// Option configures a Runner.
type Option func(*Runner)

// WithBinary overrides the ffmpeg executable.
func WithBinary(binary string) Option {
	return func(r *Runner) {
		if strings.TrimSpace(binary) != "" {
			r.binary = strings.TrimSpace(binary)
		}
	}
}

// WithAudioCodec overrides the audio codec passed to ffmpeg.
func WithAudioCodec(codec string) Option {
	return func(r *Runner) {
		if strings.TrimSpace(codec) != "" {
			r.audioCodec = strings.TrimSpace(codec)
		}
	}
}

// WithStopGrace sets how long a stopped process may run after SIGTERM.
func WithStopGrace(grace time.Duration) Option {
	return func(r *Runner) {
		if grace > 0 {
			r.stopGrace = grace
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Runner launches ffmpeg runs and publishes their events.
type Runner struct {
	binary     string
	audioCodec string
	stopGrace  time.Duration
	emitter    Emitter
	logger     *slog.Logger
}

// NewRunner constructs a runner that publishes to emitter.
func NewRunner(emitter Emitter, opts ...Option) *Runner {
	r := &Runner{
		binary:     "ffmpeg",
		audioCodec: DefaultAudioCodec,
		stopGrace:  defaultStopGrace,
		emitter:    emitter,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "ffmpeg")
	return r
}

// Handle controls one run.
type Handle struct {
	id      string
	index   int
	job     queue.Job
	cancel  context.CancelFunc
	done    chan struct{}
	stopped atomic.Bool
}

// ID returns the run identifier carried by every event of the run.
func (h *Handle) ID() string { return h.id }

// Job returns the job being encoded.
func (h *Handle) Job() queue.Job { return h.job }

// Index returns the job's queue position.
func (h *Handle) Index() int { return h.index }

// Done is closed after the run's terminal event has been emitted.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Stop terminates the run and waits for its terminal event or for ctx.
func (h *Handle) Stop(ctx context.Context) error {
	h.stopped.Store(true)
	h.cancel()
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start launches job in the background and returns immediately. Launch
// failures are reported as the run's Error event.
func (r *Runner) Start(ctx context.Context, job queue.Job, index int, params settings.EncodingParameters) *Handle {
	runCtx, cancel := context.WithCancel(ctx)
	h := &Handle{
		id:     uuid.NewString(),
		index:  index,
		job:    job,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	runCtx = services.WithRunID(runCtx, h.id)
	runCtx = services.WithJobIndex(runCtx, index)
	go r.run(runCtx, h, params)
	return h
}

func (r *Runner) run(ctx context.Context, h *Handle, params settings.EncodingParameters) {
	defer close(h.done)
	defer h.cancel()

	logger := logging.WithContext(ctx, r.logger).With(logging.String(logging.FieldInput, h.job.Input))
	args := BuildArgs(h.job, params, r.audioCodec)

	cmd := commandContext(ctx, r.binary, args...) //nolint:gosec
	configureProcess(cmd, r.stopGrace)
	stderr, err := stderrPipe(cmd)
	if err != nil {
		r.fail(h, logger, fmt.Sprintf("failed to start %s: %v", r.binary, err),
			services.Wrap(services.ErrLaunch, "ffmpeg", "stderr pipe", "", err))
		return
	}
	if err := cmd.Start(); err != nil {
		r.fail(h, logger, fmt.Sprintf("failed to start %s: %v", r.binary, err),
			services.Wrap(services.ErrLaunch, "ffmpeg", "start", r.binary, err))
		return
	}
	logger.Info("ffmpeg started",
		logging.String("command", r.binary+" "+strings.Join(args, " ")),
		logging.String(logging.FieldOutput, h.job.Output),
		logging.Int("pid", cmd.Process.Pid),
	)

	started := time.Now()
	readErr := r.pump(h, logger, stderr)
	if readErr != nil {
		// Nothing drains the pipe any more; stop the process before reaping it.
		h.cancel()
	}
	waitErr := cmd.Wait()

	switch {
	case readErr != nil:
		r.fail(h, logger, fmt.Sprintf("error reading output: %v", readErr),
			services.Wrap(services.ErrStreamRead, "ffmpeg", "read stderr", "", readErr))
	case h.stopped.Load() || ctx.Err() != nil:
		r.fail(h, logger, "encoder stopped",
			services.Wrap(services.ErrStopped, "ffmpeg", "wait", "stopped before completion", waitErr))
	case waitErr != nil:
		r.fail(h, logger, fmt.Sprintf("encoder exited with error: %v", waitErr),
			services.Wrap(services.ErrExit, "ffmpeg", "wait", "", waitErr))
	default:
		logger.Info("ffmpeg finished", logging.Duration("elapsed", time.Since(started).Round(time.Millisecond)))
		r.emit(h, Event{Kind: EventDone})
	}
}

// pump forwards each diagnostic line as a Log event, preceded by a Progress
// event when the line reports one.
func (r *Runner) pump(h *Handle, logger *slog.Logger, stream io.Reader) error {
	var tracker progress.Tracker
	sampler := logging.NewProgressSampler(10)
	lines := NewLineReader(stream)
	for {
		line, ok := lines.Next()
		if !ok {
			break
		}
		res := tracker.Feed(line)
		switch res.Kind {
		case progress.KindDuration:
			logger.Debug("input duration", logging.Float64("seconds", res.Total))
		case progress.KindProgress:
			r.emit(h, Event{Kind: EventProgress, Progress: res.Snapshot})
			if sampler.ShouldLog(res.Snapshot.Fraction*100, h.job.Input) {
				logger.Info("ffmpeg progress",
					logging.Float64("progress_percent", res.Snapshot.Fraction*100),
					logging.String("fps", res.Snapshot.FrameRate),
					logging.String("speed", res.Snapshot.Speed),
					logging.String("bitrate", res.Snapshot.Bitrate),
				)
			}
		}
		r.emit(h, Event{Kind: EventLog, Line: line})
	}
	return lines.Err()
}

func (r *Runner) fail(h *Handle, logger *slog.Logger, message string, err error) {
	attrs := []logging.Attr{
		logging.String("message", message),
		logging.String("error_kind", services.Kind(err)),
		logging.Error(err),
	}
	if services.Kind(err) == "stopped" {
		logger.Info("ffmpeg stopped", logging.Args(attrs...)...)
	} else {
		logging.ErrorWithContext(logger, "ffmpeg failed", "encoder_failed", attrs...)
	}
	r.emit(h, Event{Kind: EventError, Message: message, Err: err})
}

func (r *Runner) emit(h *Handle, evt Event) {
	if r.emitter == nil {
		return
	}
	evt.RunID = h.id
	evt.JobIndex = h.index
	evt.Input = h.job.Input
	r.emitter.Send(evt)
}
