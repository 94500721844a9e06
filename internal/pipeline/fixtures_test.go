package pipeline

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"image-picker/internal/cache"
	"image-picker/internal/media"
)

type staticProbe struct{}

func (staticProbe) Probe(context.Context, string) (media.VideoDimensions, error) {
	return media.VideoDimensions{Width: "640", Height: "480"}, nil
}

// failingDescriber fails for the listed original paths and delegates the rest.
type failingDescriber struct {
	next  Describer
	fails map[string]bool
}

func (d failingDescriber) Describe(ctx context.Context, path, original string, b64 bool) (media.SelectedMedia, error) {
	if d.fails[original] {
		return media.SelectedMedia{}, errors.New("describe exploded")
	}
	return d.next.Describe(ctx, path, original, b64)
}

// recordingCopier records every path it is asked to copy.
type recordingCopier struct {
	next Copier
	mu   sync.Mutex
	seen []string
}

func (c *recordingCopier) Copy(src string) (string, error) {
	c.mu.Lock()
	c.seen = append(c.seen, src)
	c.mu.Unlock()
	return c.next.Copy(src)
}

type env struct {
	srcDir string
	store  *cache.Store
	copier *recordingCopier
	desc   Describer
	comp   Compressor
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := cache.New(filepath.Join(t.TempDir(), "cache"))
	return &env{
		srcDir: t.TempDir(),
		store:  store,
		copier: &recordingCopier{next: store},
		desc:   media.NewDescriber(media.StdCodec{}, staticProbe{}),
		comp:   media.NewCompressor(media.StdCodec{}, store),
	}
}

func (e *env) assembler(policy Policy, session *Session) *Assembler {
	return NewAssembler(Config{
		Copier:     e.copier,
		Compressor: e.comp,
		Describer:  e.desc,
		Session:    session,
		Policy:     policy,
		Workers:    4,
	})
}

func (e *env) jpeg(t *testing.T, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	path := filepath.Join(e.srcDir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return path
}

func (e *env) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.srcDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}
