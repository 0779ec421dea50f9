// Package encoding runs ffmpeg for one queued job at a time and reports what
// it sees.
//
// BuildArgs turns a job and its frozen parameters into the ffmpeg argument
// list. The Runner launches the process, rebuilds lines from its diagnostic
// stream (ffmpeg redraws progress with bare carriage returns), classifies each
// line with the progress parser, and publishes Progress, Log, and exactly one
// terminal Done or Error event per run to an Emitter. Handles let the caller
// stop a run: the process group receives SIGTERM and is killed if it outlives
// the grace period.
package encoding
