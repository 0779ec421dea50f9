package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"vencode/internal/encoding"
	"vencode/internal/logging"
	"vencode/internal/progress"
	"vencode/internal/queue"
	"vencode/internal/services"
	"vencode/internal/session"
	"vencode/internal/settings"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type script func(h *scriptedHandle)

type scriptedHandle struct {
	id      string
	index   int
	input   string
	emitter encoding.Emitter
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

func (h *scriptedHandle) ID() string            { return h.id }
func (h *scriptedHandle) Done() <-chan struct{} { return h.done }

func (h *scriptedHandle) Stop(ctx context.Context) error {
	h.once.Do(func() { close(h.stop) })
	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *scriptedHandle) emit(evt encoding.Event) {
	evt.RunID = h.id
	evt.JobIndex = h.index
	evt.Input = h.input
	h.emitter.Send(evt)
}

type scriptedLauncher struct {
	emitter encoding.Emitter
	scripts map[string]script
	count   int
}

func (l *scriptedLauncher) Start(_ context.Context, job queue.Job, index int, _ settings.EncodingParameters) session.Handle {
	l.count++
	h := &scriptedHandle{
		id:      fmt.Sprintf("run-%d", l.count),
		index:   index,
		input:   job.Input,
		emitter: l.emitter,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	run := l.scripts[job.Input]
	go func() {
		defer close(h.done)
		if run != nil {
			run(h)
		}
	}()
	return h
}

func succeed(h *scriptedHandle) {
	for _, f := range []float64{0.25, 0.5, 1} {
		h.emit(encoding.Event{Kind: encoding.EventProgress, Progress: progress.Snapshot{
			Fraction: f, FrameRate: "30", Speed: "1.5", Bitrate: "800kbits/s", Elapsed: "00:00:01.00",
		}})
	}
	h.emit(encoding.Event{Kind: encoding.EventLog, Line: "video:10kB audio:2kB"})
	h.emit(encoding.Event{Kind: encoding.EventDone})
}

func fail(h *scriptedHandle) {
	h.emit(encoding.Event{Kind: encoding.EventError, Message: "encoder exited with error: exit status 1"})
}

func block(h *scriptedHandle) {
	<-h.stop
	h.emit(encoding.Event{Kind: encoding.EventError, Message: "encoder stopped"})
}

func newSession(t *testing.T, scripts map[string]script, inputs ...string) *session.Session {
	t.Helper()
	jobs := make([]queue.Job, 0, len(inputs))
	for _, in := range inputs {
		jobs = append(jobs, queue.Job{Input: in, Output: strings.TrimSuffix(in, ".mkv") + "_encoded.mp4"})
	}
	launcher := &scriptedLauncher{scripts: scripts}
	return session.New(session.Options{
		Defaults: settings.EncodingParameters{
			Encoder: "libx264", Container: "mp4", Quantizer: 23,
			FrameRate: settings.FrameRateSame, AudioBitrate: "128k",
		},
		Logger: logging.NewNop(),
	}, queue.New(jobs...), func(em encoding.Emitter) session.Launcher {
		launcher.emitter = em
		return launcher
	}, nil)
}

func TestRunEncodesWholeQueue(t *testing.T) {
	s := newSession(t, map[string]script{"a.mkv": succeed, "b.mkv": succeed}, "a.mkv", "b.mkv")
	var out bytes.Buffer

	summary, err := Run(context.Background(), s, &out, Options{Interval: 10 * time.Millisecond})
	require.NoError(t, err)
	require.Equal(t, 2, summary.Jobs)
	require.Equal(t, 2, summary.Completed)

	text := out.String()
	require.Contains(t, text, "Starting encoding: a.mkv")
	require.Contains(t, text, "Starting next file: b.mkv")
	require.Contains(t, text, "All files processed!")
	require.Contains(t, text, "video:10kB audio:2kB")
	require.Equal(t, 2, strings.Count(text, "Encoding Finished!"))
}

func TestRunReturnsFailure(t *testing.T) {
	s := newSession(t, map[string]script{"a.mkv": fail, "b.mkv": succeed}, "a.mkv", "b.mkv")
	var out bytes.Buffer

	summary, err := Run(context.Background(), s, &out, Options{Interval: 10 * time.Millisecond})
	require.Error(t, err)
	require.True(t, errors.Is(err, services.ErrExit))
	require.Contains(t, err.Error(), "exit status 1")
	require.Equal(t, 0, summary.Completed)
	require.Contains(t, out.String(), "ERROR: encoder exited with error: exit status 1")
	require.NotContains(t, out.String(), "b.mkv")
}

func TestRunNothingToEncode(t *testing.T) {
	s := newSession(t, nil)
	var out bytes.Buffer

	_, err := Run(context.Background(), s, &out, Options{})
	require.ErrorIs(t, err, services.ErrValidation)
	require.Contains(t, out.String(), "No files in queue!")
}

func TestRunCancelStopsEncoder(t *testing.T) {
	s := newSession(t, map[string]script{"a.mkv": block}, "a.mkv")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer

	_, err := Run(ctx, s, &out, Options{Interval: 10 * time.Millisecond, CloseTimeout: time.Second})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, s.Encoding())
	require.Contains(t, out.String(), "ERROR: encoder stopped")
}

func TestPrinterSamplesProgress(t *testing.T) {
	var out bytes.Buffer
	p := &printer{out: &out, sampler: logging.NewProgressSampler(50)}
	view := session.View{
		Jobs:        []queue.Job{{Input: "a.mkv"}},
		Encoding:    true,
		ActiveRunID: "run-1",
		Progress:    progress.Snapshot{Fraction: 0.1, FrameRate: "30", Speed: "1.0", Bitrate: "1kbits/s", Elapsed: "00:00:01.00"},
		Log:         []string{"one"},
		LogTotal:    1,
	}
	p.flush(view)
	view.Progress.Fraction = 0.2
	p.flush(view)
	view.Progress.Fraction = 0.6
	p.flush(view)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, []string{
		"one",
		"[ 10.0%] a.mkv fps=30 speed=1.0 bitrate=1kbits/s time=00:00:01.00",
		"[ 60.0%] a.mkv fps=30 speed=1.0 bitrate=1kbits/s time=00:00:01.00",
	}, lines)
}
