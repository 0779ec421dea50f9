// Package services defines shared utilities consumed by the encoder runner,
// the queue sequencer, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, queue positions, and session
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep launch, stream,
//     and exit failures distinguishable with errors.Is after they have been
//     flattened into log-visible messages.
//
// Use these helpers when wiring new components so failure handling stays
// uniform across the session.
package services
