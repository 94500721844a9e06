/*
Package filesystem wraps the filesystem primitives the picker pipeline relies on
with retry logic for stale file handles.

Host pickers commonly hand back paths on network or FUSE-backed media stores
where a handle can go stale (ESTALE) between listing and opening. Open and Stat
retry such errors with exponential backoff; every other error is returned
immediately.

	f, err := filesystem.OpenWithRetry(src, filesystem.DefaultRetryConfig())
	if err != nil {
	    return err
	}
	defer f.Close()

Metrics are reported through an Observer installed once at startup with
SetObserver, so this package does not import the metrics package. Labels use
the volume name resolved by a VolumeResolver ("cache", "source", or "unknown").
*/
package filesystem
