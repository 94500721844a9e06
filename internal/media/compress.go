package media

import (
	"errors"
	"fmt"

	"image-picker/internal/cache"
	"image-picker/internal/filesystem"
	"image-picker/internal/logging"
	"image-picker/internal/mediatypes"
)

// ErrNotCompressible is returned when Compress is given a video or an
// unrecognized file.
var ErrNotCompressible = errors.New("media: only images can be compressed")

// Compressor re-encodes images as JPEG into the cache.
type Compressor struct {
	codec Codec
	store *cache.Store
	retry filesystem.RetryConfig
}

// NewCompressor returns a Compressor writing into store.
func NewCompressor(codec Codec, store *cache.Store) *Compressor {
	return &Compressor{
		codec: codec,
		store: store,
		retry: filesystem.DefaultRetryConfig(),
	}
}

// Compress decodes the image at path and writes it to a new cache file as
// JPEG at the given quality. The output keeps the source extension in its
// name although it always holds JPEG data.
func (c *Compressor) Compress(path string, quality int) (string, error) {
	ext, ok := mediatypes.Extension(path)
	if !ok || mediatypes.Classify(path) != mediatypes.KindImage {
		return "", ErrNotCompressible
	}

	in, err := filesystem.OpenWithRetry(path, c.retry)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer filesystem.CloseLogged(in, "source "+path)

	img, err := c.codec.Decode(in)
	if err != nil {
		return "", fmt.Errorf("compress %s: %w", path, err)
	}

	out, dst, err := c.store.Create(cache.CompressPrefix, ext)
	if err != nil {
		return "", err
	}

	if err := c.codec.EncodeJPEG(out, img, quality); err != nil {
		filesystem.CloseLogged(out, "compressed "+dst)
		c.store.Discard(dst)
		return "", fmt.Errorf("compress %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		c.store.Discard(dst)
		return "", fmt.Errorf("compress %s: %w", path, err)
	}

	logging.Debug("Compressed %s to %s (quality %d)", path, dst, quality)
	return dst, nil
}
