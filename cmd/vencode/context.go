package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vencode/internal/config"
	"vencode/internal/encoding"
	"vencode/internal/logging"
	"vencode/internal/queue"
	"vencode/internal/services"
	"vencode/internal/session"
	"vencode/internal/settings"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = fmt.Errorf("--log-level: %w", err)
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(console bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg, console)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// sessionLock guards against two encoding sessions sharing a machine.
type sessionLock struct {
	path string
	lock *flock.Flock
}

func acquireSessionLock(cfg *config.Config) (*sessionLock, error) {
	if !cfg.Session.SingleInstance {
		return &sessionLock{}, nil
	}
	path := cfg.LockPath()
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, "session", "lock",
			fmt.Sprintf("another vencode session holds %s; set session.single_instance = false to allow concurrent sessions", path), nil)
	}
	return &sessionLock{path: path, lock: lock}, nil
}

func (l *sessionLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}

// newSession builds the queue from files and a session that encodes with
// the configured ffmpeg.
func newSession(cfg *config.Config, logger *slog.Logger, files []string, defaults settings.EncodingParameters) *session.Session {
	log := session.NewLogBuffer(cfg.Session.LogCapacity)
	q := queue.FromPaths(files, cfg.Defaults.OutputSuffix, nil, log)
	factory := session.FFmpeg(
		encoding.WithBinary(cfg.FFmpeg.Binary),
		encoding.WithAudioCodec(cfg.FFmpeg.AudioCodec),
		encoding.WithStopGrace(cfg.StopGrace()),
		encoding.WithLogger(logger),
	)
	return session.New(session.Options{
		Choices:         settings.DefaultOptions(),
		Defaults:        defaults,
		LogCapacity:     cfg.Session.LogCapacity,
		ShutdownTimeout: cfg.ShutdownTimeout(),
		SessionID:       uuid.NewString(),
		Logger:          logger,
	}, q, factory, log)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
