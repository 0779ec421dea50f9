package progress

import (
	"regexp"
	"strconv"
)

// Placeholder is displayed for statistics a line did not carry.
const Placeholder = "-"

var (
	durationPattern = regexp.MustCompile(`Duration: (\d{2}):(\d{2}):(\d{2})\.(\d{2})`)
	timePattern     = regexp.MustCompile(`time=(\d{2}):(\d{2}):(\d{2})\.(\d{2})`)
	statsPattern    = regexp.MustCompile(`fps=\s*([\d.]+).*time=([\d:.]+).*bitrate=\s*([\d.]+\w+/s).*speed=\s*([\d.]+)x`)
)

// Kind identifies what a line carried.
type Kind int

const (
	KindNone Kind = iota
	KindDuration
	KindProgress
)

func (k Kind) String() string {
	switch k {
	case KindDuration:
		return "duration"
	case KindProgress:
		return "progress"
	default:
		return "none"
	}
}

// Snapshot is the latest progress report of a run.
type Snapshot struct {
	Fraction  float64
	FrameRate string
	Speed     string
	Bitrate   string
	Elapsed   string
}

// EmptySnapshot is the state before any progress has been reported.
func EmptySnapshot() Snapshot {
	return Snapshot{
		FrameRate: Placeholder,
		Speed:     Placeholder,
		Bitrate:   Placeholder,
		Elapsed:   Placeholder,
	}
}

// Result is the classification of one line.
type Result struct {
	Kind Kind
	// Total is the input duration in seconds when Kind is KindDuration.
	Total float64
	// Snapshot is set when Kind is KindProgress.
	Snapshot Snapshot
}

// Parse classifies line given the total duration learned so far. A duration
// is only recognized while knownTotal is zero, and progress only once it is
// positive, so a single line never yields both.
func Parse(line string, knownTotal float64) Result {
	if knownTotal <= 0 {
		// A line carrying both Duration: and time= reports only the duration;
		// its time= is not turned into progress.
		if m := durationPattern.FindStringSubmatch(line); m != nil {
			return Result{Kind: KindDuration, Total: clockSeconds(m[1:])}
		}
		return Result{}
	}

	m := timePattern.FindStringSubmatch(line)
	if m == nil {
		return Result{}
	}
	fraction := clockSeconds(m[1:]) / knownTotal
	if fraction > 1 {
		fraction = 1
	}
	snap := EmptySnapshot()
	snap.Fraction = fraction
	if stats := statsPattern.FindStringSubmatch(line); stats != nil {
		snap.FrameRate = stats[1]
		snap.Elapsed = stats[2]
		snap.Bitrate = stats[3]
		snap.Speed = stats[4] + "x"
	}
	return Result{Kind: KindProgress, Snapshot: snap}
}

// clockSeconds converts HH, MM, SS, CC captures to seconds. Malformed fields count as zero.
func clockSeconds(fields []string) float64 {
	n := make([]float64, 4)
	for i := 0; i < len(fields) && i < len(n); i++ {
		if v, err := strconv.ParseFloat(fields[i], 64); err == nil {
			n[i] = v
		}
	}
	return n[0]*3600 + n[1]*60 + n[2] + n[3]/100
}
