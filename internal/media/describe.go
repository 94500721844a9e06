package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"

	"image-picker/internal/filesystem"
	"image-picker/internal/mediatypes"

	"github.com/gabriel-vasile/mimetype"
)

// SelectedMedia is one entry of a picker result.
type SelectedMedia struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	URI         string `json:"uri"`
	OriginalURI string `json:"original_uri"`
	Type        string `json:"type"`
	Size        int64  `json:"size"`
	Base64      string `json:"base64"`
	Mime        string `json:"mime"`
}

// ErrUnknownKind is returned by Describe for files that are neither images
// nor videos.
var ErrUnknownKind = errors.New("media: cannot describe unknown media type")

// Describer builds SelectedMedia records.
type Describer struct {
	codec Codec
	probe VideoProbe
	retry filesystem.RetryConfig
}

// NewDescriber returns a Describer. A nil probe makes every video fail to
// describe.
func NewDescriber(codec Codec, probe VideoProbe) *Describer {
	return &Describer{
		codec: codec,
		probe: probe,
		retry: filesystem.DefaultRetryConfig(),
	}
}

// FileURI returns the file URI reported for a local path.
func FileURI(path string) string {
	return "file://" + path
}

// Describe reads the file at path and returns its metadata. originalURI is
// reported verbatim. base64 is filled only for images when includeBase64 is
// set.
func (d *Describer) Describe(ctx context.Context, path, originalURI string, includeBase64 bool) (SelectedMedia, error) {
	kind := mediatypes.Classify(path)
	if kind == mediatypes.KindUnknown {
		return SelectedMedia{}, ErrUnknownKind
	}
	ext, _ := mediatypes.Extension(path)

	f, err := filesystem.OpenWithRetry(path, d.retry)
	if err != nil {
		return SelectedMedia{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer filesystem.CloseLogged(f, "described "+path)

	info, err := f.Stat()
	if err != nil {
		return SelectedMedia{}, fmt.Errorf("stat %s: %w", path, err)
	}

	result := SelectedMedia{
		URI:         FileURI(path),
		OriginalURI: originalURI,
		Type:        ext,
		Size:        info.Size(),
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return SelectedMedia{}, fmt.Errorf("detect type of %s: %w", path, err)
	}
	result.Mime = mtype.String()
	if mtype.Is("application/octet-stream") {
		// Unrecognized content; fall back to the extension.
		result.Mime = mediatypes.MimeType(ext)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return SelectedMedia{}, fmt.Errorf("rewind %s: %w", path, err)
	}

	switch kind {
	case mediatypes.KindImage:
		if includeBase64 {
			data, err := io.ReadAll(f)
			if err != nil {
				return SelectedMedia{}, fmt.Errorf("read %s: %w", path, err)
			}
			result.Base64 = base64.StdEncoding.EncodeToString(data)
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				return SelectedMedia{}, fmt.Errorf("rewind %s: %w", path, err)
			}
		}

		cfg, err := d.codec.DecodeConfig(f)
		if err != nil {
			return SelectedMedia{}, fmt.Errorf("describe %s: %w", path, err)
		}
		result.Width, result.Height = cfg.Width, cfg.Height

	case mediatypes.KindVideo:
		if d.probe == nil {
			return SelectedMedia{}, fmt.Errorf("describe %s: no video probe configured", path)
		}
		dims, err := d.probe.Probe(ctx, path)
		if err != nil {
			return SelectedMedia{}, fmt.Errorf("describe %s: %w", path, err)
		}
		if result.Width, err = strconv.Atoi(dims.Width); err != nil {
			return SelectedMedia{}, fmt.Errorf("describe %s: invalid width %q", path, dims.Width)
		}
		if result.Height, err = strconv.Atoi(dims.Height); err != nil {
			return SelectedMedia{}, fmt.Errorf("describe %s: invalid height %q", path, dims.Height)
		}
	}

	return result, nil
}
