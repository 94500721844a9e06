package picker

import (
	"context"
	"errors"
	"os"

	"image-picker/internal/logging"
	"image-picker/internal/media"
	"image-picker/internal/metrics"
	"image-picker/internal/pipeline"
)

// Errors surfaced by the facade.
var (
	ErrCameraUnsupported = errors.New("camera is not available on this host")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNoPicker          = errors.New("no photo picker configured")
)

// Error codes reported alongside error messages.
const (
	CodeCameraUnavailable = "camera_unavailable"
	CodePermission        = "permission"
	CodeOthers            = "others"
)

// ErrorCode classifies an error returned by the facade.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrCameraUnsupported):
		return CodeCameraUnavailable
	case errors.Is(err, ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return CodePermission
	}
	return CodeOthers
}

// Callback receives the result of a callback-style operation: an empty
// message and the media on success, or a message and nil media on failure.
type Callback func(errMessage string, photos []media.SelectedMedia)

// Cache is the part of the cache store the facade needs.
type Cache interface {
	RemoveAll() error
}

// Config wires a Facade. Camera may be nil.
type Config struct {
	Photos    PhotoPicker
	Camera    CameraService
	Assembler *pipeline.Assembler
	Cache     Cache
}

// Facade exposes the picker operations over a set of host services.
type Facade struct {
	photos    PhotoPicker
	camera    CameraService
	assembler *pipeline.Assembler
	cache     Cache
}

// New returns a Facade.
func New(cfg Config) *Facade {
	return &Facade{
		photos:    cfg.Photos,
		camera:    cfg.Camera,
		assembler: cfg.Assembler,
		cache:     cfg.Cache,
	}
}

// HasCamera reports whether a camera service is configured.
func (f *Facade) HasCamera() bool {
	return f.camera != nil
}

// Policy returns the failure policy of the underlying assembler.
func (f *Facade) Policy() pipeline.Policy {
	return f.assembler.Policy()
}

// ShowPicker opens the photo picker and reports through cb.
func (f *Facade) ShowPicker(ctx context.Context, opts Options, cb Callback) {
	report(cb)(f.PickAsync(ctx, opts))
}

// PickAsync opens the photo picker and returns the full session on success.
func (f *Facade) PickAsync(ctx context.Context, opts Options) ([]media.SelectedMedia, error) {
	return f.pick(ctx, opts, true, "gallery")
}

// OpenVideoPicker opens the picker filtered to videos and reports through cb.
func (f *Facade) OpenVideoPicker(ctx context.Context, opts Options, cb Callback) {
	report(cb)(f.pick(ctx, opts, false, "video"))
}

// OpenCamera captures one photo or video and reports through cb.
func (f *Facade) OpenCamera(ctx context.Context, opts Options, cb Callback) {
	report(cb)(f.OpenCameraAsync(ctx, opts))
}

// OpenCameraAsync captures one photo or video. A failed or cancelled
// capture returns the current session unchanged.
func (f *Facade) OpenCameraAsync(ctx context.Context, opts Options) ([]media.SelectedMedia, error) {
	if f.camera == nil {
		metrics.PickerInvocationsTotal.WithLabelValues("camera", "error").Inc()
		return nil, ErrCameraUnsupported
	}

	opts = opts.WithDefaults()
	profile := Profile{Position: CameraUnspecified, MaxDuration: opts.VideoMaximumDuration}

	result, err := f.camera.Pick(ctx, []CaptureType{CapturePhoto, CaptureVideo}, profile)
	if err != nil {
		metrics.PickerInvocationsTotal.WithLabelValues("camera", "error").Inc()
		logging.Error("Camera capture failed: %v", err)
		return nil, err
	}

	var raw []string
	if result.Code == 0 {
		raw = []string{result.URI}
		metrics.PickerInvocationsTotal.WithLabelValues("camera", "ok").Inc()
	} else {
		logging.Info("Camera capture returned code %d, keeping current selection", result.Code)
		metrics.PickerInvocationsTotal.WithLabelValues("camera", "canceled").Inc()
	}

	return f.assemble(ctx, opts, raw)
}

// DeleteCache removes the cache directory and everything in it.
func (f *Facade) DeleteCache() error {
	if f.cache == nil {
		return nil
	}
	if err := f.cache.RemoveAll(); err != nil {
		logging.Error("deleteCache failed: %v", err)
		return err
	}
	metrics.CacheClearsTotal.Inc()
	return nil
}

// RemoveAtIndex removes one item from the selection session. Out-of-range
// indexes are ignored.
func (f *Facade) RemoveAtIndex(index int) {
	s := f.assembler.Session()
	s.RemoveAt(index)
	logging.Debug("Selection length after removing index %d: %d", index, s.Len())
}

// RemoveAll clears the selection session.
func (f *Facade) RemoveAll() {
	f.assembler.Session().Clear()
	logging.Debug("Selection cleared")
}

// Selection returns a copy of the selection session.
func (f *Facade) Selection() []media.SelectedMedia {
	return f.assembler.Session().Snapshot()
}

func (f *Facade) pick(ctx context.Context, opts Options, image bool, source string) ([]media.SelectedMedia, error) {
	if f.photos == nil {
		metrics.PickerInvocationsTotal.WithLabelValues(source, "error").Inc()
		return nil, ErrNoPicker
	}

	opts = opts.WithDefaults()
	req := BuildSelectRequest(opts, image)

	raw, err := f.photos.Select(ctx, req)
	if err != nil {
		metrics.PickerInvocationsTotal.WithLabelValues(source, "error").Inc()
		logging.Error("Error launching %s picker: %v", source, err)
		return nil, err
	}

	if len(raw) == 0 {
		metrics.PickerInvocationsTotal.WithLabelValues(source, "canceled").Inc()
	} else {
		metrics.PickerInvocationsTotal.WithLabelValues(source, "ok").Inc()
	}

	if len(raw) > req.MaxSelect {
		logging.Warn("Picker returned %d items, limiting to %d", len(raw), req.MaxSelect)
		raw = raw[:req.MaxSelect]
	}

	return f.assemble(ctx, opts, raw)
}

func (f *Facade) assemble(ctx context.Context, opts Options, raw []string) ([]media.SelectedMedia, error) {
	env := f.assembler.Assemble(ctx, opts.pipeline(), raw)
	if !env.OK() {
		return nil, env.Err
	}
	return env.Media, nil
}

// unknownErrorMessage stands in for errors with an empty message, so a
// failure is never reported as success.
const unknownErrorMessage = "unknown error"

func report(cb Callback) func([]media.SelectedMedia, error) {
	return func(photos []media.SelectedMedia, err error) {
		if cb == nil {
			return
		}
		if err != nil {
			msg := err.Error()
			if msg == "" {
				msg = unknownErrorMessage
			}
			cb(msg, nil)
			return
		}
		cb("", photos)
	}
}
