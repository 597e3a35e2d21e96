// Package logging provides leveled logging for the transcoding API.
//
// Levels, from most to least verbose:
//   - DEBUG: verbose diagnostics (encoder argument lists, path resolution)
//   - INFO: normal operational messages
//   - WARN: recoverable problems
//   - ERROR: failures
//   - FATAL: unrecoverable failures; logs and exits
//
// The level is read once from the environment: DEBUG=true forces debug,
// otherwise LOG_LEVEL selects the level (default info).
package logging
