package config

const (
	defaultLogDir                 = "~/.local/share/vencode/logs"
	defaultStateDirFallback       = "~/.local/state/vencode"
	defaultFFmpegBinary           = "ffmpeg"
	defaultFFprobeBinary          = "ffprobe"
	defaultAudioCodec             = "aac"
	defaultStopGraceSeconds       = 5
	defaultEncoder                = "libx264"
	defaultContainer              = "mp4"
	defaultQuantizer              = 23
	defaultFrameRate              = "Same"
	defaultAudioBitrate           = "128k"
	defaultOutputSuffix           = "_encoded"
	defaultLogCapacity            = 100
	defaultPollIntervalMillis     = 100
	defaultShutdownTimeoutSeconds = 10
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir(),
		},
		FFmpeg: FFmpeg{
			Binary:           defaultFFmpegBinary,
			FFprobeBinary:    defaultFFprobeBinary,
			AudioCodec:       defaultAudioCodec,
			StopGraceSeconds: defaultStopGraceSeconds,
		},
		Defaults: Defaults{
			Encoder:      defaultEncoder,
			Container:    defaultContainer,
			Quantizer:    defaultQuantizer,
			FrameRate:    defaultFrameRate,
			AudioBitrate: defaultAudioBitrate,
			OutputSuffix: defaultOutputSuffix,
		},
		Session: Session{
			LogCapacity:            defaultLogCapacity,
			PollIntervalMillis:     defaultPollIntervalMillis,
			ShutdownTimeoutSeconds: defaultShutdownTimeoutSeconds,
			SingleInstance:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
