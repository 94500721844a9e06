package main

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"image-picker/internal/media"
)

func writeJPEG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return path
}

func TestRun(t *testing.T) {
	src := t.TempDir()
	a := writeJPEG(t, src, "a.jpg", 16, 9)
	b := writeJPEG(t, src, "b.jpg", 4, 4)
	notes := filepath.Join(src, "notes.txt")
	if err := os.WriteFile(notes, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		settings  settings
		wantCount int
	}{
		{"all images", settings{Policy: "default"}, 2},
		{"max limits", settings{Policy: "default", Max: 1}, 1},
		{"compressed with base64", settings{Policy: "best-effort", Compress: true, Quality: 60, Base64: true}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.settings.CacheDir = filepath.Join(t.TempDir(), "cache")
			var out bytes.Buffer
			if err := run(context.Background(), &out, tt.settings, []string{a, notes, b}); err != nil {
				t.Fatalf("run() error: %v", err)
			}

			var result output
			if err := json.Unmarshal(out.Bytes(), &result); err != nil {
				t.Fatalf("decoding %q: %v", out.String(), err)
			}
			if result.Error != nil {
				t.Fatalf("error = %s", *result.Error)
			}
			if len(result.Photos) != tt.wantCount {
				t.Fatalf("got %d photos, want %d", len(result.Photos), tt.wantCount)
			}
			first := result.Photos[0]
			if first.OriginalURI != a || first.Width != 16 || first.Height != 9 {
				t.Errorf("photos[0] = %+v", first)
			}
			if tt.settings.Base64 && first.Base64 == "" {
				t.Error("base64 requested but missing")
			}
			if !strings.HasPrefix(first.URI, "file://"+tt.settings.CacheDir) {
				t.Errorf("URI %s not in cache dir", first.URI)
			}
		})
	}
}

type fixedProbe struct{}

func (fixedProbe) Probe(context.Context, string) (media.VideoDimensions, error) {
	return media.VideoDimensions{Width: "1920", Height: "1080"}, nil
}

func TestRunVideos(t *testing.T) {
	saved := videoProbe
	videoProbe = fixedProbe{}
	t.Cleanup(func() { videoProbe = saved })

	src := t.TempDir()
	var clips []string
	for _, name := range []string{"clip1.mp4", "clip2.mkv"} {
		path := filepath.Join(src, name)
		if err := os.WriteFile(path, []byte("not really a video"), 0o644); err != nil {
			t.Fatal(err)
		}
		clips = append(clips, path)
	}

	var out bytes.Buffer
	s := settings{Policy: "default", Video: true, CacheDir: t.TempDir()}
	if err := run(context.Background(), &out, s, clips); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	var result output
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("decoding %q: %v", out.String(), err)
	}
	if len(result.Photos) != len(clips) {
		t.Fatalf("got %d records, want %d", len(result.Photos), len(clips))
	}
	for i, clip := range clips {
		got := result.Photos[i]
		if got.OriginalURI != clip || got.Width != 1920 || got.Height != 1080 {
			t.Errorf("photos[%d] = %+v", i, got)
		}
	}
}

func TestRunPretty(t *testing.T) {
	src := t.TempDir()
	a := writeJPEG(t, src, "a.jpg", 2, 2)

	var out bytes.Buffer
	s := settings{Policy: "default", CacheDir: t.TempDir(), Pretty: true}
	if err := run(context.Background(), &out, s, []string{a}); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if !strings.Contains(out.String(), "\n  \"photos\"") {
		t.Errorf("output is not indented: %s", out.String())
	}
}

func TestRunErrors(t *testing.T) {
	t.Run("unknown policy", func(t *testing.T) {
		err := run(context.Background(), &bytes.Buffer{}, settings{Policy: "sometimes", CacheDir: t.TempDir()}, []string{"x.jpg"})
		if err == nil || !strings.Contains(err.Error(), "sometimes") {
			t.Errorf("run() error = %v", err)
		}
	})

	t.Run("fail-fast on missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "gone.jpg")
		var out bytes.Buffer
		err := run(context.Background(), &out, settings{Policy: "fail-fast", CacheDir: t.TempDir()}, []string{missing})
		if err == nil {
			t.Fatal("run() should fail")
		}
		if !strings.Contains(out.String(), `"photos":null`) {
			t.Errorf("output %s should carry null photos", out.String())
		}
	})
}
