// Package session owns the state of one encoding session and the control
// loop operations that mutate it.
//
// A Session holds the job queue and its sequencer, the operator's control
// selection, the latest progress snapshot, and a bounded message log. Encoder
// runs publish events to the session's queue from their own goroutines; the
// control loop applies them with Poll and issues operator commands, always
// from one goroutine. Front-ends read state through Snapshot.
package session
