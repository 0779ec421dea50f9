package progress

import (
	"math"
	"testing"
)

const statsLine = "frame=  234 fps= 34 q=28.0 size=    1024kB time=00:00:10.50 bitrate= 800.0kbits/s speed=1.5x"

func TestParseDuration(t *testing.T) {
	res := Parse("  Duration: 00:01:30.50, start: 0.000000, bitrate: 1205 kb/s", 0)
	if res.Kind != KindDuration {
		t.Fatalf("kind = %s, want duration", res.Kind)
	}
	if math.Abs(res.Total-90.5) > 1e-9 {
		t.Fatalf("total = %v, want 90.5", res.Total)
	}
}

func TestParseDurationIgnoredOnceKnown(t *testing.T) {
	res := Parse("  Duration: 00:02:00.00, start: 0.000000", 90.5)
	if res.Kind != KindNone {
		t.Fatalf("kind = %s, want none", res.Kind)
	}
}

func TestParseProgressWithStats(t *testing.T) {
	res := Parse(statsLine, 20)
	if res.Kind != KindProgress {
		t.Fatalf("kind = %s, want progress", res.Kind)
	}
	snap := res.Snapshot
	if math.Abs(snap.Fraction-0.525) > 1e-9 {
		t.Fatalf("fraction = %v, want 0.525", snap.Fraction)
	}
	if snap.FrameRate != "34" {
		t.Fatalf("fps = %q", snap.FrameRate)
	}
	if snap.Elapsed != "00:00:10.50" {
		t.Fatalf("elapsed = %q", snap.Elapsed)
	}
	if snap.Bitrate != "800.0kbits/s" {
		t.Fatalf("bitrate = %q", snap.Bitrate)
	}
	if snap.Speed != "1.5x" {
		t.Fatalf("speed = %q", snap.Speed)
	}
}

func TestParseProgressClampsFraction(t *testing.T) {
	res := Parse(statsLine, 5)
	if res.Kind != KindProgress {
		t.Fatalf("kind = %s, want progress", res.Kind)
	}
	if res.Snapshot.Fraction != 1 {
		t.Fatalf("fraction = %v, want 1", res.Snapshot.Fraction)
	}
}

func TestParseProgressRequiresKnownTotal(t *testing.T) {
	if res := Parse(statsLine, 0); res.Kind != KindNone {
		t.Fatalf("kind = %s, want none before duration is known", res.Kind)
	}
}

func TestParseProgressWithoutStatsUsesPlaceholders(t *testing.T) {
	res := Parse("size=N/A time=00:00:05.00 bitrate=N/A", 10)
	if res.Kind != KindProgress {
		t.Fatalf("kind = %s, want progress", res.Kind)
	}
	snap := res.Snapshot
	if snap.Fraction != 0.5 {
		t.Fatalf("fraction = %v, want 0.5", snap.Fraction)
	}
	for name, value := range map[string]string{
		"fps": snap.FrameRate, "speed": snap.Speed, "bitrate": snap.Bitrate, "elapsed": snap.Elapsed,
	} {
		if value != Placeholder {
			t.Fatalf("%s = %q, want placeholder", name, value)
		}
	}
}

func TestParseLineWithBothPatternsPrefersDuration(t *testing.T) {
	line := "Duration: 00:00:20.00 time=00:00:10.00"
	if res := Parse(line, 0); res.Kind != KindDuration || res.Total != 20 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestParseUnrelatedLine(t *testing.T) {
	for _, line := range []string{"", "Stream #0:0: Video: h264", "time=1:2:3.4"} {
		if res := Parse(line, 10); res.Kind != KindNone {
			t.Fatalf("Parse(%q) kind = %s, want none", line, res.Kind)
		}
	}
}

func TestTrackerCachesFirstDuration(t *testing.T) {
	var tr Tracker
	if res := tr.Feed("Duration: 00:00:20.00, start"); res.Kind != KindDuration {
		t.Fatalf("kind = %s, want duration", res.Kind)
	}
	if res := tr.Feed("Duration: 00:10:00.00, start"); res.Kind != KindNone {
		t.Fatalf("second duration should be ignored, got %s", res.Kind)
	}
	if tr.Total() != 20 {
		t.Fatalf("total = %v, want 20", tr.Total())
	}
	res := tr.Feed(statsLine)
	if res.Kind != KindProgress || res.Snapshot.Fraction != 0.525 {
		t.Fatalf("unexpected progress %+v", res)
	}
	tr.Reset()
	if tr.Total() != 0 {
		t.Fatal("expected reset to clear total")
	}
}

func TestEmptySnapshot(t *testing.T) {
	snap := EmptySnapshot()
	if snap.Fraction != 0 || snap.FrameRate != Placeholder || snap.Elapsed != Placeholder {
		t.Fatalf("unexpected empty snapshot %+v", snap)
	}
}
