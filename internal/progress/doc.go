// Package progress classifies ffmpeg diagnostic lines.
//
// A line may announce the input's total duration, report the elapsed encode
// time together with rate statistics, or carry nothing of interest. Parse is
// pure; callers thread the cached total back in, or use a Tracker to hold it.
package progress
