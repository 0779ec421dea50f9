package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFFmpeg()
	c.normalizeDefaults()
	c.normalizeSession()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	if c.FFmpeg.FFprobeBinary == "" {
		c.FFmpeg.FFprobeBinary = defaultFFprobeBinary
	}
	c.FFmpeg.AudioCodec = strings.TrimSpace(c.FFmpeg.AudioCodec)
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = defaultAudioCodec
	}
	if c.FFmpeg.StopGraceSeconds < 0 {
		c.FFmpeg.StopGraceSeconds = 0
	}
}

func (c *Config) normalizeDefaults() {
	c.Defaults.Encoder = strings.TrimSpace(c.Defaults.Encoder)
	c.Defaults.Container = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Defaults.Container), "."))
	c.Defaults.FrameRate = strings.TrimSpace(c.Defaults.FrameRate)
	if strings.EqualFold(c.Defaults.FrameRate, defaultFrameRate) {
		c.Defaults.FrameRate = defaultFrameRate
	}
	c.Defaults.AudioBitrate = strings.ToLower(strings.TrimSpace(c.Defaults.AudioBitrate))
	if c.Defaults.OutputSuffix == "" {
		c.Defaults.OutputSuffix = defaultOutputSuffix
	}
}

func (c *Config) normalizeSession() {
	if c.Session.LogCapacity <= 0 {
		c.Session.LogCapacity = defaultLogCapacity
	}
	if c.Session.PollIntervalMillis <= 0 {
		c.Session.PollIntervalMillis = defaultPollIntervalMillis
	}
	if c.Session.ShutdownTimeoutSeconds <= 0 {
		c.Session.ShutdownTimeoutSeconds = defaultShutdownTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
