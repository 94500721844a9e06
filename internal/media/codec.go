package media

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"

	// Image format decoders
	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // BMP format support
	_ "golang.org/x/image/webp" // WebP format support
)

// Codec is the image capability the pipeline needs from its host.
type Codec interface {
	// DecodeConfig returns the image dimensions without decoding pixels.
	DecodeConfig(r io.Reader) (image.Config, error)
	// Decode decodes the full image.
	Decode(r io.Reader) (image.Image, error)
	// EncodeJPEG writes img as JPEG. A quality of 0 selects the codec
	// default; other values are clamped to the codec's range.
	EncodeJPEG(w io.Writer, img image.Image, quality int) error
}

// StdCodec decodes with imaging and encodes with image/jpeg.
type StdCodec struct{}

// DecodeConfig implements Codec.
func (StdCodec) DecodeConfig(r io.Reader) (image.Config, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return image.Config{}, fmt.Errorf("decode image config: %w", err)
	}
	return cfg, nil
}

// Decode implements Codec. EXIF orientation is not applied, so the pixel
// grid matches what DecodeConfig reports.
func (StdCodec) Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodeJPEG implements Codec.
func (StdCodec) EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: clampQuality(quality, jpeg.DefaultQuality)})
}

// clampQuality maps 0 to def and everything else into [1, 100].
func clampQuality(quality, def int) int {
	switch {
	case quality == 0:
		return def
	case quality < 1:
		return 1
	case quality > 100:
		return 100
	}
	return quality
}
