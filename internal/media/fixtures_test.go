package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// gradient returns a width x height test image.
func gradient(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8((x * 255) / width),
				G: uint8((y * 255) / height),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func writeJPEG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, gradient(width, height), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return path
}

// exifOrientation6 is an APP1 segment holding a big-endian TIFF IFD with
// Orientation=6 (rotate 90 CW to display).
var exifOrientation6 = []byte{
	0xFF, 0xE1, 0x00, 0x22,
	'E', 'x', 'i', 'f', 0x00, 0x00,
	'M', 'M', 0x00, 0x2A, 0x00, 0x00, 0x00, 0x08,
	0x00, 0x01,
	0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x06, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00,
}

// writeRotatedJPEG writes a width x height JPEG tagged with EXIF orientation 6.
func writeRotatedJPEG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, gradient(width, height), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	encoded := buf.Bytes()

	data := make([]byte, 0, len(encoded)+len(exifOrientation6))
	data = append(data, encoded[:2]...) // SOI
	data = append(data, exifOrientation6...)
	data = append(data, encoded[2:]...)
	return writeBytes(t, dir, name, data)
}

func writePNG(t *testing.T, dir, name string, width, height int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, gradient(width, height)); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return path
}

func writeBytes(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

// fakeProbe returns fixed dimensions for every path.
type fakeProbe struct {
	dims  VideoDimensions
	err   error
	calls int
}

func (p *fakeProbe) Probe(_ context.Context, _ string) (VideoDimensions, error) {
	p.calls++
	return p.dims, p.err
}
