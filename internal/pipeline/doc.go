/*
Package pipeline assembles picker results.

A host picker hands back an ordered list of source paths. Assembler turns that
list into SelectedMedia records in three steps:

 1. Convert: with compression enabled, images are re-encoded into the cache
    and videos are copied; otherwise images and videos are copied. Other
    files are skipped and contribute nothing.
 2. Describe: every converted file is measured (dimensions, size, optional
    base64).
 3. Commit: on success the new records are appended to the Session and the
    whole session is returned.

Every step runs one task per item, bounded by a worker limit, and waits for
all of them. Each task reports an Outcome; the Policy decides whether a failed
outcome drops the item or fails the batch. Items carry their original source
path through every step, so original_uri always matches the file the record
was built from even when earlier items were dropped.

A failed batch leaves the Session untouched.
*/
package pipeline
