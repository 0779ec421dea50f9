package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"vencode/internal/encoding"
	"vencode/internal/eventbus"
	"vencode/internal/logging"
	"vencode/internal/progress"
	"vencode/internal/queue"
	"vencode/internal/services"
	"vencode/internal/settings"
)

const defaultShutdownTimeout = 10 * time.Second

// Options configures a Session.
type Options struct {
	// Choices are the option lists offered per control.
	Choices settings.Options
	// Defaults positions each control's cursor initially.
	Defaults        settings.EncodingParameters
	LogCapacity     int
	ShutdownTimeout time.Duration
	SessionID       string
	Logger          *slog.Logger
}

// Session is the state owned by the control loop. Its methods must be called
// from a single goroutine.
type Session struct {
	ctx       context.Context
	id        string
	logger    *slog.Logger
	events    *eventbus.Queue[encoding.Event]
	launcher  Launcher
	handles   map[string]Handle
	seq       *queue.Sequencer
	selection *settings.Selection
	log       *LogBuffer
	progress  progress.Snapshot
	lastError string
	quit      bool
	closing   bool
	shutdown  time.Duration
}

// New constructs a session over q. Messages already in log, such as the
// results of building the queue, are kept. A nil q is an empty queue.
func New(opts Options, q *queue.Queue, newLauncher LauncherFactory, log *LogBuffer) *Session {
	if log == nil {
		log = NewLogBuffer(opts.LogCapacity)
	}
	id := opts.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	shutdown := opts.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = defaultShutdownTimeout
	}
	choices := opts.Choices
	if len(choices.Encoders) == 0 {
		choices = settings.DefaultOptions()
	}

	s := &Session{
		ctx:       services.WithSessionID(context.Background(), id),
		id:        id,
		events:    eventbus.New[encoding.Event](),
		handles:   make(map[string]Handle),
		selection: settings.NewSelection(choices, opts.Defaults),
		log:       log,
		progress:  progress.EmptySnapshot(),
		shutdown:  shutdown,
	}
	s.logger = logging.WithContext(s.ctx, logging.NewComponentLogger(opts.Logger, "session"))
	if newLauncher != nil {
		s.launcher = newLauncher(s.events)
	}
	var st queue.Starter
	if s.launcher != nil {
		st = starter{session: s}
	}
	s.seq = queue.NewSequencer(q, st, s.log, opts.Logger)
	s.logger.Info("session created", logging.Int("jobs", s.seq.Queue().Len()))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Events exposes the queue encoder runs publish to.
func (s *Session) Events() *eventbus.Queue[encoding.Event] { return s.events }

// FocusNext moves focus to the next control.
func (s *Session) FocusNext() { s.selection.NextFocus() }

// FocusPrev moves focus to the previous control.
func (s *Session) FocusPrev() { s.selection.PrevFocus() }

// OptionNext advances the focused control's option.
func (s *Session) OptionNext() { s.selection.NextOption() }

// OptionPrev moves the focused control's option back.
func (s *Session) OptionPrev() { s.selection.PrevOption() }

// Activate submits the queue when the submit control has focus, and
// otherwise advances the focused control's option.
func (s *Session) Activate() {
	if s.selection.Focus() == settings.FocusSubmit {
		s.Submit()
		return
	}
	s.selection.NextOption()
}

// Submit starts the job under the cursor with the current selection. It
// reports whether a run started.
func (s *Session) Submit() bool {
	if s.closing {
		return false
	}
	params := s.selection.Params()
	if _, ok := s.seq.Submit(s.ctx, params); !ok {
		return false
	}
	s.progress = progress.EmptySnapshot()
	s.lastError = ""
	s.logger.Info("submitted",
		logging.String("encoder", params.Encoder),
		logging.String("container", params.Container),
		logging.Int("quantizer", params.Quantizer),
		logging.String("frame_rate", params.FrameRate),
		logging.String("audio_bitrate", params.AudioBitrate),
	)
	return true
}

// Quit asks the control loop to stop.
func (s *Session) Quit() { s.quit = true }

// ShouldQuit reports whether Quit was called.
func (s *Session) ShouldQuit() bool { return s.quit }

// Encoding reports whether a run is in flight.
func (s *Session) Encoding() bool { return s.seq.Active() != nil }

// LastError returns the message of the most recent failed run since the last
// submission, or "".
func (s *Session) LastError() string { return s.lastError }

// Poll applies every pending event without blocking and returns how many
// were applied.
func (s *Session) Poll() int {
	events := s.events.Drain()
	for _, evt := range events {
		s.apply(evt)
	}
	return len(events)
}

// WaitEvent blocks until an event is pending or timeout elapses, and reports
// whether one is pending.
func (s *Session) WaitEvent(timeout time.Duration) bool {
	if s.events.Len() > 0 {
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-s.events.Ready():
		return s.events.Len() > 0
	case <-timer.C:
		return s.events.Len() > 0
	}
}

func (s *Session) apply(evt encoding.Event) {
	active := evt.RunID != "" && evt.RunID == s.seq.ActiveID()
	if evt.Terminal() {
		delete(s.handles, evt.RunID)
	}

	switch evt.Kind {
	case encoding.EventProgress:
		if active {
			s.progress = evt.Progress
		}
	case encoding.EventLog:
		s.log.Append(evt.Line)
	case encoding.EventDone:
		s.log.Append("Encoding Finished!")
		if !active {
			return
		}
		s.progress.Fraction = 1
		if s.closing {
			s.seq.Complete(evt.RunID)
			return
		}
		if _, started := s.seq.AdvanceOnDone(s.ctx, evt.RunID); started {
			s.progress = progress.EmptySnapshot()
		}
	case encoding.EventError:
		s.log.Append("ERROR: " + evt.Message)
		if !active {
			return
		}
		s.lastError = evt.Message
		s.seq.AdvanceOnError(evt.RunID, evt.Message)
	}
}

// Snapshot returns a copy of the state a front-end renders.
func (s *Session) Snapshot() View {
	q := s.seq.Queue()
	jobs := q.Jobs()
	states := make([]queue.Status, len(jobs))
	for i := range jobs {
		states[i] = q.State(i)
	}

	focus := s.selection.Focus()
	controls := make([]Control, 0, len(settings.Controls()))
	for _, f := range settings.Controls() {
		c := Control{Focus: f, Label: f.Label(), Focused: f == focus}
		if sel, ok := s.selection.Selector(f); ok {
			c.Value = sel.Value()
			c.Index = sel.Index()
			c.Count = sel.Len()
		}
		controls = append(controls, c)
	}

	return View{
		Jobs:        jobs,
		States:      states,
		Current:     q.Current(),
		Completed:   q.Completed(),
		Encoding:    s.Encoding(),
		ActiveRunID: s.seq.ActiveID(),
		Progress:    s.progress,
		LastError:   s.lastError,
		Focus:       focus,
		Controls:    controls,
		Log:         s.log.Lines(),
		LogTotal:    s.log.Total(),
		ShouldQuit:  s.quit,
	}
}

// Close stops any run in flight and applies the events it produced. Events
// drained here update the queue but never start another run. The wait is
// capped by the configured shutdown timeout.
func (s *Session) Close(ctx context.Context) error {
	s.closing = true
	if len(s.handles) == 0 {
		s.Poll()
		return nil
	}
	stopCtx, cancel := context.WithTimeout(ctx, s.shutdown)
	defer cancel()

	var errs []error
	for id, h := range s.handles {
		if err := h.Stop(stopCtx); err != nil {
			logging.WarnWithContext(s.logger, "encoder did not stop in time", "encoder_stop",
				logging.String(logging.FieldRunID, id),
				logging.Error(err),
				logging.String(logging.FieldImpact, "ffmpeg may still be running"),
			)
			errs = append(errs, fmt.Errorf("stop run %s: %w", id, err))
		}
	}
	s.Poll()
	s.logger.Info("session closed")
	return errors.Join(errs...)
}
