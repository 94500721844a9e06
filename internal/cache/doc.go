// Package cache manages the picker's private cache directory.
//
// Every item a picker returns is copied (or compressed) into this directory
// under a collision-free name before it is described, so callers never hold
// a reference into the host's media store. Names follow
// "{prefix}{uuid}.{ext}": Copy uses the "pick_cache_" prefix and the
// compressor in package media asks NewPath for "pick_compress_cache_".
//
// RemoveAll deletes the directory recursively; it is recreated on the next
// write.
package cache
