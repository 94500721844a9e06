// Package logging provides the leveled logger used across the image picker
// bridge.
//
// Levels, from most to least verbose:
//   - DEBUG: per-item pipeline decisions, host service payloads
//   - INFO: batch results and startup sections
//   - WARN: dropped items and cleanup failures
//   - ERROR: failed batches and host service errors
//   - FATAL: unrecoverable startup errors (exits the process)
//
// The level is read once from LOG_LEVEL, or forced to debug by DEBUG=true.
package logging
