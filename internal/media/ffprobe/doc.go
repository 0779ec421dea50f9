// Package ffprobe provides a typed wrapper around ffprobe JSON output for the
// probe command.
//
// Inspect executes ffprobe and returns a Result with the stream list and
// container metadata. Helper methods cover stream selection, frame rate
// evaluation and numeric format fields.
package ffprobe
