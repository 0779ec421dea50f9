package session

import (
	"context"

	"vencode/internal/encoding"
	"vencode/internal/queue"
	"vencode/internal/settings"
)

// Handle controls one encoder run.
type Handle interface {
	ID() string
	Stop(ctx context.Context) error
	Done() <-chan struct{}
}

// Launcher starts encoder runs. Start must return without waiting for the
// run; its events arrive on the emitter the launcher was built with.
type Launcher interface {
	Start(ctx context.Context, job queue.Job, index int, params settings.EncodingParameters) Handle
}

// LauncherFactory builds a Launcher that publishes to the session's event queue.
type LauncherFactory func(encoding.Emitter) Launcher

// FFmpeg returns a factory for launchers backed by encoding.Runner.
func FFmpeg(opts ...encoding.Option) LauncherFactory {
	return func(emitter encoding.Emitter) Launcher {
		return ffmpegLauncher{runner: encoding.NewRunner(emitter, opts...)}
	}
}

type ffmpegLauncher struct {
	runner *encoding.Runner
}

func (l ffmpegLauncher) Start(ctx context.Context, job queue.Job, index int, params settings.EncodingParameters) Handle {
	return l.runner.Start(ctx, job, index, params)
}

// starter adapts the session's launcher to the sequencer and tracks handles
// so Close can stop whatever is running.
type starter struct {
	session *Session
}

func (s starter) Start(ctx context.Context, job queue.Job, index int, params settings.EncodingParameters) (queue.Run, error) {
	h := s.session.launcher.Start(ctx, job, index, params)
	s.session.handles[h.ID()] = h
	return h, nil
}
