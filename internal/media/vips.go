package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"image-picker/internal/logging"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/disintegration/imaging"
)

// vipsDefaultQuality matches libvips' own JPEG default.
const vipsDefaultQuality = 75

var (
	vipsInitialized bool
	vipsInitMutex   sync.Mutex
	vipsAvailable   bool
)

// ErrVipsUnavailable is returned by VipsCodec when InitVips has not run.
var ErrVipsUnavailable = errors.New("libvips not available")

// InitVips initializes the libvips library
// This should be called once at startup
func InitVips() error {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		return nil
	}

	// Configure vips logging BEFORE Startup() to respect LOG_LEVEL
	vipsLogLevel, logHandler := vipsLogSettings(logging.GetLevel())
	vips.LoggingSettings(logHandler, vipsLogLevel)

	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1,
		MaxCacheMem:      50 * 1024 * 1024, // 50MB cache
		MaxCacheSize:     100,
		ReportLeaks:      false,
		CacheTrace:       false,
		CollectStats:     false,
	})

	vipsInitialized = true
	vipsAvailable = true
	logging.Info("libvips initialized successfully (version: %s)", vips.Version)
	return nil
}

// vipsLogSettings maps the application log level onto the libvips level and
// a handler that forwards libvips messages to the application logger.
func vipsLogSettings(level logging.LogLevel) (vips.LogLevel, func(string, vips.LogLevel, string)) {
	switch level {
	case logging.LevelDebug:
		return vips.LogLevelInfo, func(domain string, lvl vips.LogLevel, msg string) {
			switch lvl {
			case vips.LogLevelError, vips.LogLevelCritical:
				logging.Error("[%s] %s", domain, msg)
			case vips.LogLevelWarning:
				logging.Warn("[%s] %s", domain, msg)
			case vips.LogLevelMessage, vips.LogLevelInfo, vips.LogLevelDebug:
				logging.Debug("[%s] %s", domain, msg)
			}
		}
	case logging.LevelWarn:
		return vips.LogLevelError, func(domain string, lvl vips.LogLevel, msg string) {
			if lvl >= vips.LogLevelError {
				logging.Error("[%s] %s", domain, msg)
			}
		}
	case logging.LevelError:
		return vips.LogLevelCritical, func(domain string, lvl vips.LogLevel, msg string) {
			if lvl >= vips.LogLevelCritical {
				logging.Error("[%s] %s", domain, msg)
			}
		}
	default:
		// Info: only warnings and errors
		return vips.LogLevelWarning, func(domain string, lvl vips.LogLevel, msg string) {
			switch lvl {
			case vips.LogLevelError, vips.LogLevelCritical:
				logging.Error("[%s] %s", domain, msg)
			case vips.LogLevelWarning:
				logging.Warn("[%s] %s", domain, msg)
			case vips.LogLevelMessage, vips.LogLevelInfo, vips.LogLevelDebug:
			}
		}
	}
}

// ShutdownVips cleans up libvips resources
func ShutdownVips() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		vips.Shutdown()
		vipsInitialized = false
		vipsAvailable = false
		logging.Info("libvips shutdown complete")
	}
}

// IsVipsAvailable returns whether libvips is initialized and available
func IsVipsAvailable() bool {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()
	return vipsAvailable
}

// VipsCodec implements Codec with libvips. Decode hands back an image.Image
// for compatibility with the Codec interface; EncodeJPEG re-imports it into
// libvips so encoding uses libjpeg with optimized coding.
type VipsCodec struct{}

// DecodeConfig implements Codec. libvips reads only the header.
func (VipsCodec) DecodeConfig(r io.Reader) (image.Config, error) {
	ref, err := vipsLoad(r)
	if err != nil {
		return image.Config{}, err
	}
	defer ref.Close()

	return image.Config{Width: ref.Width(), Height: ref.Height()}, nil
}

// Decode implements Codec.
func (VipsCodec) Decode(r io.Reader) (image.Image, error) {
	ref, err := vipsLoad(r)
	if err != nil {
		return nil, err
	}
	defer ref.Close()

	// No AutoRotate: dimensions must match DecodeConfig.
	img, err := ref.ToImage(vips.NewDefaultExportParams())
	if err != nil {
		return nil, fmt.Errorf("vips export failed: %w", err)
	}
	return img, nil
}

// EncodeJPEG implements Codec.
func (VipsCodec) EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	if !IsVipsAvailable() {
		return ErrVipsUnavailable
	}

	// libvips imports encoded buffers only, so hand it lossless PNG.
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return fmt.Errorf("stage image for vips: %w", err)
	}

	ref, err := vips.NewImageFromBuffer(buf.Bytes())
	if err != nil {
		return fmt.Errorf("vips failed to load image: %w", err)
	}
	defer ref.Close()

	out, _, err := ref.ExportJpeg(&vips.JpegExportParams{
		Quality:        clampQuality(quality, vipsDefaultQuality),
		StripMetadata:  true,
		OptimizeCoding: true,
	})
	if err != nil {
		return fmt.Errorf("vips export failed: %w", err)
	}

	_, err = w.Write(out)
	return err
}

func vipsLoad(r io.Reader) (*vips.ImageRef, error) {
	if !IsVipsAvailable() {
		return nil, ErrVipsUnavailable
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	ref, err := vips.NewImageFromBuffer(data)
	if err != nil {
		return nil, fmt.Errorf("vips failed to load image: %w", err)
	}
	return ref, nil
}
