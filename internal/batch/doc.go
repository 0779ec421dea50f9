// Package batch drives an encoding session without a terminal UI.
//
// Run submits the queue once and then acts as the session's control loop,
// waiting on the event queue with a bounded timeout and printing log lines
// and sampled progress until the chain finishes, fails or is cancelled.
package batch
