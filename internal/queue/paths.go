package queue

import "vencode/internal/fileutil"

// FromPaths builds a queue from command-line paths. Existing paths are
// enqueued with an output next to the input named <stem><suffix>.<ext>;
// missing paths are reported and skipped. A nil exists uses the filesystem.
func FromPaths(paths []string, suffix string, exists func(string) bool, sink Sink) *Queue {
	if exists == nil {
		exists = fileutil.Exists
	}
	q := New()
	for _, path := range paths {
		if !exists(path) {
			if sink != nil {
				sink.Logf("File not found: %s", path)
			}
			continue
		}
		q.Append(Job{Input: path, Output: fileutil.DefaultOutputPath(path, suffix)})
		if sink != nil {
			sink.Logf("Added to queue: %s", path)
		}
	}
	return q
}
