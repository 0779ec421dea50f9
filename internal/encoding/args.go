package encoding

import (
	"strings"

	"vencode/internal/queue"
	"vencode/internal/settings"
)

// DefaultAudioCodec is the audio codec passed to ffmpeg when none is configured.
const DefaultAudioCodec = "aac"

// BuildArgs returns the ffmpeg arguments for job. The result depends only on
// its inputs.
func BuildArgs(job queue.Job, params settings.EncodingParameters, audioCodec string) []string {
	if strings.TrimSpace(audioCodec) == "" {
		audioCodec = DefaultAudioCodec
	}
	args := []string{"-y", "-i", job.Input, "-c:v", params.Encoder}
	args = append(args, qualityArgs(params.Encoder, params.QuantizerString())...)
	if !params.KeepsFrameRate() {
		args = append(args, "-r", params.FrameRate)
	}
	args = append(args, "-c:a", audioCodec, "-b:a", params.AudioBitrate, job.Output)
	return args
}

// qualityArgs maps the quantizer onto the flag each encoder family honours.
func qualityArgs(encoder, quantizer string) []string {
	switch {
	case encoder == "libx264", encoder == "libx265", strings.Contains(encoder, "nvenc"):
		return []string{"-qp", quantizer}
	case encoder == "libvpx-vp9":
		return []string{"-b:v", "0", "-crf", quantizer}
	default:
		return []string{"-q:v", quantizer}
	}
}
