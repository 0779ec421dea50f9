package settings

import (
	"fmt"
	"strconv"
)

// EncodingParameters is the frozen set of values handed to one encoder run.
type EncodingParameters struct {
	Encoder      string
	Container    string
	Quantizer    int
	FrameRate    string
	AudioBitrate string
}

// QuantizerString renders the quantizer as an ffmpeg argument.
func (p EncodingParameters) QuantizerString() string {
	return strconv.Itoa(p.Quantizer)
}

// KeepsFrameRate reports whether the source frame rate is preserved.
func (p EncodingParameters) KeepsFrameRate() bool {
	return p.FrameRate == "" || p.FrameRate == FrameRateSame
}

// Validate checks the values against the option lists.
func (p EncodingParameters) Validate(opts Options) error {
	if opts.IndexOf(FocusEncoder, p.Encoder) < 0 {
		return fmt.Errorf("encoder %q is not one of %v", p.Encoder, opts.Encoders)
	}
	if opts.IndexOf(FocusContainer, p.Container) < 0 {
		return fmt.Errorf("container %q is not one of %v", p.Container, opts.Containers)
	}
	if p.Quantizer < MinQuantizer || p.Quantizer > MaxQuantizer {
		return fmt.Errorf("quantizer %d out of range %d..%d", p.Quantizer, MinQuantizer, MaxQuantizer)
	}
	if opts.IndexOf(FocusFrameRate, p.FrameRate) < 0 {
		return fmt.Errorf("frame rate %q is not one of %v", p.FrameRate, opts.FrameRates)
	}
	if opts.IndexOf(FocusAudioBitrate, p.AudioBitrate) < 0 {
		return fmt.Errorf("audio bitrate %q is not one of %v", p.AudioBitrate, opts.AudioBitrates)
	}
	return nil
}

// Selection holds the focus and one cursor per control.
type Selection struct {
	focus     Focus
	selectors map[Focus]*Selector
}

// NewSelection positions every cursor at the option matching initial. Values
// missing from a list fall back to the first option.
func NewSelection(opts Options, initial EncodingParameters) *Selection {
	values := map[Focus]string{
		FocusEncoder:      initial.Encoder,
		FocusContainer:    initial.Container,
		FocusQuantizer:    initial.QuantizerString(),
		FocusFrameRate:    initial.FrameRate,
		FocusAudioBitrate: initial.AudioBitrate,
	}
	s := &Selection{focus: FocusEncoder, selectors: make(map[Focus]*Selector, len(values))}
	for f, value := range values {
		sel := NewSelector(opts.List(f), opts.IndexOf(f, value))
		s.selectors[f] = &sel
	}
	return s
}

// Focus returns the focused control.
func (s *Selection) Focus() Focus { return s.focus }

// NextFocus moves focus forward.
func (s *Selection) NextFocus() { s.focus = s.focus.Next() }

// PrevFocus moves focus backward.
func (s *Selection) PrevFocus() { s.focus = s.focus.Prev() }

// NextOption advances the focused control's cursor. It is a no-op on Submit.
func (s *Selection) NextOption() {
	if sel, ok := s.selectors[s.focus]; ok {
		sel.Next()
	}
}

// PrevOption moves the focused control's cursor back. It is a no-op on Submit.
func (s *Selection) PrevOption() {
	if sel, ok := s.selectors[s.focus]; ok {
		sel.Prev()
	}
}

// Value returns the displayed value of a control.
func (s *Selection) Value(f Focus) string {
	if sel, ok := s.selectors[f]; ok {
		return sel.Value()
	}
	return ""
}

// Selector returns a copy of a control's cursor.
func (s *Selection) Selector(f Focus) (Selector, bool) {
	sel, ok := s.selectors[f]
	if !ok {
		return Selector{}, false
	}
	return *sel, true
}

// Params freezes the current cursor values.
func (s *Selection) Params() EncodingParameters {
	qp, err := strconv.Atoi(s.Value(FocusQuantizer))
	if err != nil {
		qp = 0
	}
	return EncodingParameters{
		Encoder:      s.Value(FocusEncoder),
		Container:    s.Value(FocusContainer),
		Quantizer:    qp,
		FrameRate:    s.Value(FocusFrameRate),
		AudioBitrate: s.Value(FocusAudioBitrate),
	}
}
