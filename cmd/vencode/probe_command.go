package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"vencode/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>...",
		Short: "Summarize the streams of media files with ffprobe",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var errs []error
			for _, path := range args {
				result, err := ffprobe.Inspect(cmd.Context(), cfg.FFmpeg.FFprobeBinary, path)
				if err != nil {
					fmt.Fprintln(out, newStatusPrinter(out).line(path, statusError, err.Error()))
					errs = append(errs, fmt.Errorf("probe %s: %w", path, err))
					continue
				}
				writeProbe(out, path, result)
			}
			return errors.Join(errs...)
		},
	}
}

func writeProbe(out io.Writer, path string, result ffprobe.Result) {
	fmt.Fprintf(out, "%s\n", path)
	fmt.Fprintf(out, "  Format:   %s\n", valueOrDash(result.Format.FormatName))
	fmt.Fprintf(out, "  Duration: %s\n", formatSeconds(result.DurationSeconds()))
	fmt.Fprintf(out, "  Size:     %s\n", formatBytes(result.SizeBytes()))
	fmt.Fprintf(out, "  Bitrate:  %s\n", formatBitrate(result.BitRate()))
	fmt.Fprintln(out, streamTable(result.Streams))
}

func streamTable(streams []ffprobe.Stream) string {
	rows := make([][]string, 0, len(streams))
	for _, s := range streams {
		rows = append(rows, []string{
			strconv.Itoa(s.Index),
			valueOrDash(s.CodecType),
			valueOrDash(s.CodecName),
			valueOrDash(streamDetail(s)),
			s.LanguageName(),
		})
	}
	return tableSpec{
		headers: []string{"#", "Type", "Codec", "Detail", "Language"},
		aligns:  []columnAlignment{alignRight},
	}.render(rows)
}

func streamDetail(s ffprobe.Stream) string {
	var parts []string
	switch strings.ToLower(s.CodecType) {
	case "video":
		if res := s.Resolution(); res != "" {
			parts = append(parts, res)
		}
		if fps := s.FrameRate(); fps > 0 {
			parts = append(parts, strconv.FormatFloat(fps, 'f', 2, 64)+" fps")
		}
		if s.PixelFormat != "" {
			parts = append(parts, s.PixelFormat)
		}
	case "audio":
		if s.Channels > 0 {
			parts = append(parts, fmt.Sprintf("%d ch", s.Channels))
		}
		if s.SampleRate != "" {
			parts = append(parts, s.SampleRate+" Hz")
		}
	}
	return strings.Join(parts, ", ")
}

func formatSeconds(seconds float64) string {
	if seconds <= 0 || seconds != seconds {
		return "-"
	}
	return (time.Duration(seconds * float64(time.Second))).Round(10 * time.Millisecond).String()
}

func formatBytes(size int64) string {
	if size <= 0 {
		return "-"
	}
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

func formatBitrate(bps int64) string {
	if bps <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f kb/s", float64(bps)/1000)
}
