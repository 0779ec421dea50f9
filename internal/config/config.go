package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"vencode/internal/settings"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir   string `toml:"log_dir"`
	StateDir string `toml:"state_dir"`
}

// FFmpeg contains configuration for the external encoder.
type FFmpeg struct {
	Binary           string `toml:"binary"`
	FFprobeBinary    string `toml:"ffprobe_binary"`
	AudioCodec       string `toml:"audio_codec"`
	StopGraceSeconds int    `toml:"stop_grace_seconds"`
}

// Defaults contains the initial cursor positions for the encoding controls.
type Defaults struct {
	Encoder      string `toml:"encoder"`
	Container    string `toml:"container"`
	Quantizer    int    `toml:"quantizer"`
	FrameRate    string `toml:"frame_rate"`
	AudioBitrate string `toml:"audio_bitrate"`
	OutputSuffix string `toml:"output_suffix"`
}

// Session contains configuration for the control loop.
type Session struct {
	LogCapacity            int  `toml:"log_capacity"`
	PollIntervalMillis     int  `toml:"poll_interval_ms"`
	ShutdownTimeoutSeconds int  `toml:"shutdown_timeout_seconds"`
	SingleInstance         bool `toml:"single_instance"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for vencode.
//
// Configuration sections by subsystem:
//   - Paths: log and lock directories
//   - FFmpeg: encoder binaries, fixed audio codec, stop grace period
//   - Defaults: initial encoding parameters and output naming
//   - Session: log buffer size, poll cadence, shutdown timeout
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	FFmpeg   FFmpeg   `toml:"ffmpeg"`
	Defaults Defaults `toml:"defaults"`
	Session  Session  `toml:"session"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/vencode/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("vencode.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and state directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DefaultParameters returns the configured initial encoding parameters.
func (c *Config) DefaultParameters() settings.EncodingParameters {
	return settings.EncodingParameters{
		Encoder:      c.Defaults.Encoder,
		Container:    c.Defaults.Container,
		Quantizer:    c.Defaults.Quantizer,
		FrameRate:    c.Defaults.FrameRate,
		AudioBitrate: c.Defaults.AudioBitrate,
	}
}

// StopGrace is how long a stopped encoder may take to exit after SIGTERM.
func (c *Config) StopGrace() time.Duration {
	return time.Duration(c.FFmpeg.StopGraceSeconds) * time.Second
}

// PollInterval is the control loop's bounded wait between input polls.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Session.PollIntervalMillis) * time.Millisecond
}

// ShutdownTimeout caps how long quitting waits for an active encoder.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Session.ShutdownTimeoutSeconds) * time.Second
}

// LockPath is the single-session lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "vencode.lock")
}

// LogPath is the session log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Paths.LogDir, "vencode.log")
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() (string, error) {
	var b strings.Builder
	encoder := toml.NewEncoder(&b)
	if err := encoder.Encode(c); err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return b.String(), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "vencode")
	}
	return defaultStateDirFallback
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
