package progress

// Tracker caches the first duration seen on a stream and classifies
// subsequent lines against it.
type Tracker struct {
	total float64
}

// Feed classifies line, recording the total duration the first time one appears.
func (t *Tracker) Feed(line string) Result {
	res := Parse(line, t.total)
	if res.Kind == KindDuration && t.total == 0 {
		t.total = res.Total
	}
	return res
}

// Total returns the cached duration in seconds, or zero if none has been seen.
func (t *Tracker) Total() float64 {
	return t.total
}

// Reset forgets the cached duration.
func (t *Tracker) Reset() {
	t.total = 0
}
