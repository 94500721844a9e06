// Command pickpaths runs the picker pipeline over files named on the command
// line, the way a selection from the native dialog would be processed, and
// prints the resulting media records as JSON.
//
// Usage:
//
//	pickpaths [flags] PATH...
//
// Flags:
//
//	--compress        Re-encode images as JPEG before describing them
//	--quality N       JPEG quality for --compress (1-100, default codec quality)
//	--base64          Include base64 file contents for images
//	--video           Select videos instead of images
//	--max N           Maximum number of items (default: number of paths)
//	--policy NAME     default, best-effort or fail-fast
//	--cache-dir DIR   Cache directory (default: $TMPDIR/image-picker)
//	--pretty          Indent output (on by default when stdout is a terminal)
//
// The output is {"error": ..., "photos": [...]}. The command exits non-zero
// when the batch fails.
package main
