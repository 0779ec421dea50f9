package ffprobe

import (
	"context"
	"errors"
	"math"
	"os"
	"os/exec"
	"testing"

	"vencode/internal/services"
)

const sampleReport = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080,
     "pix_fmt": "yuv420p", "avg_frame_rate": "30000/1001"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "sample_rate": "48000", "channels": 2,
     "tags": {"language": "eng"}},
    {"index": 2, "codec_name": "opus", "codec_type": "audio", "channels": 6}
  ],
  "format": {"filename": "clip.mkv", "nb_streams": 3, "format_name": "matroska,webm",
             "duration": "123.45", "size": "1000", "bit_rate": "32000"}
}`

func TestMain(m *testing.M) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") == "1" {
		switch os.Getenv("FFPROBE_HELPER_MODE") {
		case "fail":
			os.Stderr.WriteString("clip.mkv: No such file or directory\n")
			os.Exit(1)
		case "garbage":
			os.Stdout.WriteString("not json")
		default:
			os.Stdout.WriteString(sampleReport)
		}
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func useHelper(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, _ string, _ ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=^$")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "FFPROBE_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() { commandContext = original })
}

func TestInspectDecodesReport(t *testing.T) {
	useHelper(t, "ok")
	result, err := Inspect(context.Background(), "", "clip.mkv")
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	video, ok := result.Video()
	if !ok || video.Resolution() != "1920x1080" {
		t.Fatalf("unexpected video stream %+v", video)
	}
	if got := video.FrameRate(); math.Abs(got-29.97) > 0.01 {
		t.Fatalf("frame rate = %v", got)
	}
	audio := result.StreamsOf("audio")
	if len(audio) != 2 || audio[0].Language() != "eng" || audio[1].Language() != "und" {
		t.Fatalf("unexpected audio streams %+v", audio)
	}
	if result.Format.FormatName != "matroska,webm" {
		t.Fatalf("format = %q", result.Format.FormatName)
	}
}

func TestInspectErrors(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", " "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty path, got %v", err)
	}

	useHelper(t, "fail")
	_, err := Inspect(context.Background(), "ffprobe", "clip.mkv")
	if !errors.Is(err, services.ErrExit) {
		t.Fatalf("expected exit error, got %v", err)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected wrapped *exec.ExitError, got %T", err)
	}

	useHelper(t, "garbage")
	if _, err := Inspect(context.Background(), "ffprobe", "clip.mkv"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestResultHelpers(t *testing.T) {
	result := Result{
		Format: Format{Duration: "123.45", Size: "1000", BitRate: "32000"},
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 || result.BitRate() != 32000 {
		t.Fatalf("unexpected size/bitrate: %d %d", result.SizeBytes(), result.BitRate())
	}
	if _, ok := result.Video(); ok {
		t.Fatal("expected no video stream")
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{Format: Format{Duration: "bad", Size: "-1", BitRate: "nope"}}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 || result.BitRate() != 0 {
		t.Fatalf("expected zero size and bitrate")
	}
}

func TestStreamFrameRate(t *testing.T) {
	tests := []struct {
		rate string
		want float64
	}{
		{"25/1", 25},
		{"0/0", 0},
		{"24", 24},
		{"", 0},
		{"x/y", 0},
	}
	for _, tt := range tests {
		if got := (Stream{AvgFrameRate: tt.rate}).FrameRate(); got != tt.want {
			t.Fatalf("FrameRate(%q) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestStreamLanguageName(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"eng", "English"},
		{"fr", "French"},
		{"", "und"},
		{"zzzzzzzzz", "zzzzzzzzz"},
	}
	for _, tt := range tests {
		s := Stream{Tags: map[string]string{"language": tt.tag}}
		if got := s.LanguageName(); got != tt.want {
			t.Fatalf("LanguageName(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
