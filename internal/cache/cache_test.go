package cache

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestCopy(t *testing.T) {
	srcDir := t.TempDir()
	store := New(filepath.Join(t.TempDir(), "cache"))

	tests := []struct {
		name    string
		file    string
		wantExt string
	}{
		{"jpeg image", "photo.jpg", ".jpg"},
		{"uppercase extension", "IMG_0001.PNG", ".PNG"},
		{"video", "clip.mp4", ".mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte("payload-" + tt.file)
			src := writeSource(t, srcDir, tt.file, data)

			dst, err := store.Copy(src)
			if err != nil {
				t.Fatalf("Copy() error: %v", err)
			}

			if filepath.Dir(dst) != store.Dir() {
				t.Errorf("Copy() dir = %s, want %s", filepath.Dir(dst), store.Dir())
			}
			base := filepath.Base(dst)
			if !strings.HasPrefix(base, CopyPrefix) || !strings.HasSuffix(base, tt.wantExt) {
				t.Errorf("Copy() name = %s, want %s*%s", base, CopyPrefix, tt.wantExt)
			}

			got, err := os.ReadFile(dst)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Errorf("copied bytes differ from source")
			}
		})
	}
}

func TestCopyUniqueNames(t *testing.T) {
	src := writeSource(t, t.TempDir(), "a.jpg", []byte("x"))
	store := New(t.TempDir())

	first, err := store.Copy(src)
	if err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	second, err := store.Copy(src)
	if err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if first == second {
		t.Errorf("two copies share the path %s", first)
	}
}

func TestCopySkipped(t *testing.T) {
	srcDir := t.TempDir()
	store := New(t.TempDir())

	for _, name := range []string{"notes.txt", "README"} {
		t.Run(name, func(t *testing.T) {
			src := writeSource(t, srcDir, name, []byte("text"))
			if _, err := store.Copy(src); !errors.Is(err, ErrSkipped) {
				t.Errorf("Copy(%s) error = %v, want ErrSkipped", name, err)
			}
		})
	}
}

func TestCopyMissingSource(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Copy(filepath.Join(t.TempDir(), "missing.jpg"))
	if err == nil {
		t.Fatal("Copy() of missing file should fail")
	}
	if errors.Is(err, ErrSkipped) {
		t.Error("missing file should be a failure, not a skip")
	}
}

func TestCopyAfterRemoveAll(t *testing.T) {
	src := writeSource(t, t.TempDir(), "a.gif", []byte("gif"))
	store := New(filepath.Join(t.TempDir(), "cache"))

	if _, err := store.Copy(src); err != nil {
		t.Fatalf("Copy() error: %v", err)
	}
	if err := store.RemoveAll(); err != nil {
		t.Fatalf("RemoveAll() error: %v", err)
	}
	if _, err := os.Stat(store.Dir()); !os.IsNotExist(err) {
		t.Fatalf("cache dir still exists after RemoveAll")
	}

	if _, err := store.Copy(src); err != nil {
		t.Errorf("Copy() after RemoveAll error: %v", err)
	}
}

func TestRemoveAllMissingDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-created"))
	if err := store.RemoveAll(); err != nil {
		t.Errorf("RemoveAll() on missing dir error: %v", err)
	}
}

func TestUsage(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "cache"))

	size, files, err := store.Usage()
	if err != nil || size != 0 || files != 0 {
		t.Fatalf("Usage() on missing dir = (%d, %d, %v), want (0, 0, nil)", size, files, err)
	}

	srcDir := t.TempDir()
	for _, name := range []string{"a.jpg", "b.mp4"} {
		if _, err := store.Copy(writeSource(t, srcDir, name, []byte("1234"))); err != nil {
			t.Fatalf("Copy() error: %v", err)
		}
	}

	size, files, err = store.Usage()
	if err != nil {
		t.Fatalf("Usage() error: %v", err)
	}
	if size != 8 || files != 2 {
		t.Errorf("Usage() = (%d, %d), want (8, 2)", size, files)
	}
}

func TestCreateAndDiscard(t *testing.T) {
	store := New(t.TempDir())

	f, path, err := store.Create(CompressPrefix, "png")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), CompressPrefix) || !strings.HasSuffix(path, ".png") {
		t.Errorf("Create() path = %s", path)
	}
	f.Close()

	store.Discard(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Discard() left %s behind", path)
	}

	store.Discard(path)
}
