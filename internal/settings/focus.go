package settings

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Focus identifies the control that currently receives option and activate
// commands.
type Focus int

const (
	FocusEncoder Focus = iota
	FocusContainer
	FocusQuantizer
	FocusFrameRate
	FocusAudioBitrate
	FocusSubmit
)

var focusNext = map[Focus]Focus{
	FocusEncoder:      FocusContainer,
	FocusContainer:    FocusQuantizer,
	FocusQuantizer:    FocusFrameRate,
	FocusFrameRate:    FocusAudioBitrate,
	FocusAudioBitrate: FocusSubmit,
	FocusSubmit:       FocusEncoder,
}

var focusPrev = map[Focus]Focus{
	FocusEncoder:      FocusSubmit,
	FocusContainer:    FocusEncoder,
	FocusQuantizer:    FocusContainer,
	FocusFrameRate:    FocusQuantizer,
	FocusAudioBitrate: FocusFrameRate,
	FocusSubmit:       FocusAudioBitrate,
}

var focusNames = map[Focus]string{
	FocusEncoder:      "codec",
	FocusContainer:    "format",
	FocusQuantizer:    "quality (QP)",
	FocusFrameRate:    "fps",
	FocusAudioBitrate: "audio bitrate",
	FocusSubmit:       "start encoding",
}

var labelCaser = cases.Upper(language.Und)

// Controls lists every focusable control in navigation order.
func Controls() []Focus {
	return []Focus{FocusEncoder, FocusContainer, FocusQuantizer, FocusFrameRate, FocusAudioBitrate, FocusSubmit}
}

// Next returns the successor control, wrapping from Submit back to Encoder.
func (f Focus) Next() Focus {
	if next, ok := focusNext[f]; ok {
		return next
	}
	return FocusEncoder
}

// Prev returns the predecessor control, wrapping from Encoder to Submit.
func (f Focus) Prev() Focus {
	if prev, ok := focusPrev[f]; ok {
		return prev
	}
	return FocusEncoder
}

// String returns the lowercase control name.
func (f Focus) String() string {
	if name, ok := focusNames[f]; ok {
		return name
	}
	return "unknown"
}

// Label returns the panel title used by the terminal UI.
func (f Focus) Label() string {
	return labelCaser.String(f.String())
}
