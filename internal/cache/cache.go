package cache

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"image-picker/internal/filesystem"
	"image-picker/internal/logging"
	"image-picker/internal/mediatypes"

	"github.com/google/uuid"
)

// Name prefixes for files written into the cache.
const (
	CopyPrefix     = "pick_cache_"
	CompressPrefix = "pick_compress_cache_"
	CameraPrefix   = "pick_camera_"
)

// ErrSkipped is returned by Copy for paths that are neither images nor
// videos. The item contributes no entry to a result, it is not a failure.
var ErrSkipped = errors.New("cache: unsupported media type")

// Store is the application-private cache directory.
type Store struct {
	dir   string
	retry filesystem.RetryConfig
}

// New returns a Store rooted at dir. The directory is created lazily.
func New(dir string) *Store {
	return &Store{
		dir:   dir,
		retry: filesystem.DefaultRetryConfig(),
	}
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// NewPath returns a fresh file path inside the cache directory, creating the
// directory if it does not exist.
func (s *Store) NewPath(prefix, ext string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache directory: %w", err)
	}
	return filepath.Join(s.dir, prefix+uuid.NewString()+"."+ext), nil
}

// Copy makes a byte-identical copy of src inside the cache and returns the
// new path. Paths that are not images or videos, or have no extension, return
// ErrSkipped.
func (s *Store) Copy(src string) (string, error) {
	ext, ok := mediatypes.Extension(src)
	if !ok || mediatypes.Classify(src) == mediatypes.KindUnknown {
		return "", ErrSkipped
	}

	in, err := filesystem.OpenWithRetry(src, s.retry)
	if err != nil {
		return "", fmt.Errorf("open source %s: %w", src, err)
	}
	defer filesystem.CloseLogged(in, "source "+src)

	dst, err := s.NewPath(CopyPrefix, ext)
	if err != nil {
		return "", err
	}

	if err := writeFile(dst, in); err != nil {
		return "", fmt.Errorf("copy %s: %w", src, err)
	}

	logging.Debug("Cached %s as %s", src, dst)
	return dst, nil
}

// writeFile streams r into a new file at dst. On failure the partial file is
// removed.
func writeFile(dst string, r io.Reader) (err error) {
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			logging.Warn("Failed to close %s: %v", dst, closeErr)
			if err == nil {
				err = closeErr
			}
		}
		if err != nil {
			if rmErr := os.Remove(dst); rmErr != nil && !os.IsNotExist(rmErr) {
				logging.Warn("Failed to remove partial file %s: %v", dst, rmErr)
			}
		}
	}()

	_, err = io.Copy(out, r)
	return err
}

// Create opens a fresh cache file for writing and returns it with its path.
// The caller closes the file and calls Discard if writing fails.
func (s *Store) Create(prefix, ext string) (*os.File, string, error) {
	path, err := s.NewPath(prefix, ext)
	if err != nil {
		return nil, "", err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("create cache file: %w", err)
	}
	return f, path, nil
}

// Discard removes a cache file left behind by a failed write. Failures are
// logged only.
func (s *Store) Discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.Warn("Failed to remove partial file %s: %v", path, err)
	}
}

// RemoveAll recursively deletes the cache directory. A missing directory is
// not an error.
func (s *Store) RemoveAll() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("remove cache directory: %w", err)
	}
	logging.Info("Cleared picker cache %s", s.dir)
	return nil
}

// Usage returns the total size in bytes and the number of regular files in
// the cache directory. A missing directory reports zero.
func (s *Store) Usage() (int64, int, error) {
	var size int64
	var files int

	err := filepath.WalkDir(s.dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		files++
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return 0, 0, nil
	}

	return size, files, err
}
