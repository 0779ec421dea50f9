package settings

import "strconv"

const (
	// FrameRateSame keeps the source frame rate.
	FrameRateSame = "Same"

	MinQuantizer = 0
	MaxQuantizer = 53
)

// Options holds the fixed option lists offered for each control.
type Options struct {
	Encoders      []string
	Containers    []string
	Quantizers    []string
	FrameRates    []string
	AudioBitrates []string
}

// DefaultOptions returns the option lists offered by the session.
func DefaultOptions() Options {
	quantizers := make([]string, 0, MaxQuantizer-MinQuantizer+1)
	for i := MinQuantizer; i <= MaxQuantizer; i++ {
		quantizers = append(quantizers, strconv.Itoa(i))
	}
	return Options{
		Encoders: []string{
			"libx264",
			"libx265",
			"libvpx-vp9",
			"libaom-av1",
			"h264_nvenc",
			"hevc_nvenc",
			"av1_nvenc",
		},
		Containers:    []string{"mp4", "mkv", "avi", "webm", "gif", "mov"},
		Quantizers:    quantizers,
		FrameRates:    []string{FrameRateSame, "24", "30", "60", "120", "144"},
		AudioBitrates: []string{"128k", "160k", "192k", "256k", "320k"},
	}
}

// List returns the option list for a control. Submit has none.
func (o Options) List(f Focus) []string {
	switch f {
	case FocusEncoder:
		return o.Encoders
	case FocusContainer:
		return o.Containers
	case FocusQuantizer:
		return o.Quantizers
	case FocusFrameRate:
		return o.FrameRates
	case FocusAudioBitrate:
		return o.AudioBitrates
	default:
		return nil
	}
}

// IndexOf returns the position of value in the control's list, or -1.
func (o Options) IndexOf(f Focus, value string) int {
	for i, candidate := range o.List(f) {
		if candidate == value {
			return i
		}
	}
	return -1
}
