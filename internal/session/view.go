package session

import (
	"vencode/internal/progress"
	"vencode/internal/queue"
	"vencode/internal/settings"
)

// Control is the displayed state of one settings control.
type Control struct {
	Focus   settings.Focus
	Label   string
	Value   string
	Index   int
	Count   int
	Focused bool
}

// View is a read-only copy of session state for rendering.
type View struct {
	Jobs      []queue.Job
	States    []queue.Status
	Current   int
	Completed []string

	Encoding    bool
	ActiveRunID string
	Progress    progress.Snapshot
	LastError   string

	Focus    settings.Focus
	Controls []Control
	Log      []string
	// LogTotal counts every message appended to the log, including evicted
	// and cleared ones.
	LogTotal int

	ShouldQuit bool
}

// CurrentJob returns the job under the cursor.
func (v View) CurrentJob() (queue.Job, bool) {
	if v.Current < 0 || v.Current >= len(v.Jobs) {
		return queue.Job{}, false
	}
	return v.Jobs[v.Current], true
}

// Control returns the entry for f.
func (v View) Control(f settings.Focus) (Control, bool) {
	for _, c := range v.Controls {
		if c.Focus == f {
			return c, true
		}
	}
	return Control{}, false
}

// Since returns the log lines appended after seen messages, limited to what
// is still buffered.
func (v View) Since(seen int) []string {
	fresh := v.LogTotal - seen
	if fresh <= 0 {
		return nil
	}
	return v.Tail(fresh)
}

// Tail returns up to n of the most recent log lines.
func (v View) Tail(n int) []string {
	if n <= 0 || len(v.Log) == 0 {
		return nil
	}
	if n >= len(v.Log) {
		return v.Log
	}
	return v.Log[len(v.Log)-n:]
}
