// Package queue holds the ordered list of encoder jobs and the sequencer that
// runs them one at a time.
//
// The Queue records each job's lifecycle and the cursor of the job in flight;
// the cursor only ever moves forward, one step per successful run. The
// Sequencer starts runs through a Starter, chains the next job automatically
// with the parameters frozen at submit time, and reports operator-facing
// messages to a Sink. It performs no I/O of its own and must be driven from a
// single goroutine.
package queue
