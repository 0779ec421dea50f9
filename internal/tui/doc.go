// Package tui renders an encoding session in the terminal with bubbletea.
//
// The Model owns no encoding state of its own. Each poll tick drains the
// session's event queue and the next View renders a fresh Snapshot, so the
// bubbletea update loop is the session's single control goroutine.
package tui
