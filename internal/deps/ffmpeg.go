package deps

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	versionPattern = regexp.MustCompile(`^\S+ version (\S+)`)
	encoderPattern = regexp.MustCompile(`^\s*V[A-Z.]{5}\s+(\S+)`)
)

// FFmpegRequirements lists the encoder and probe binaries.
func FFmpegRequirements(ffmpegBinary, ffprobeBinary string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpegBinary,
			Description: "Encodes queued files",
			VersionArgs: []string{"-hide_banner", "-version"},
		},
		{
			Name:        "FFprobe",
			Command:     ffprobeBinary,
			Description: "Inspects media for the probe command",
			Optional:    true,
			VersionArgs: []string{"-hide_banner", "-version"},
		},
	}
}

// ParseVersion extracts the version token from the first line of
// "ffmpeg -version" style output.
func ParseVersion(output string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	match := versionPattern.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return ""
	}
	return match[1]
}

// VideoEncoders returns the names of the video encoders ffmpeg was built with.
func VideoEncoders(ctx context.Context, binary string) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	output, err := commandContext(ctx, binary, "-hide_banner", "-encoders").Output()
	if err != nil {
		return nil, fmt.Errorf("list encoders: %w", err)
	}
	return parseEncoders(string(output)), nil
}

func parseEncoders(output string) map[string]bool {
	encoders := make(map[string]bool)
	pastHeader := false
	for line := range strings.SplitSeq(output, "\n") {
		if strings.TrimSpace(line) == "------" {
			pastHeader = true
			continue
		}
		if !pastHeader {
			continue
		}
		if match := encoderPattern.FindStringSubmatch(line); match != nil {
			encoders[match[1]] = true
		}
	}
	return encoders
}
