package picker

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"image-picker/internal/logging"
)

// PhotoPathFunc returns a fresh path for a captured photo.
type PhotoPathFunc func() (string, error)

// FFmpegCamera captures a single frame from a local capture device with
// ffmpeg. Only photos are captured.
type FFmpegCamera struct {
	// Device is the capture device, for example /dev/video0 or "0".
	Device string
	// Format is the ffmpeg input format; empty picks one for the OS.
	Format string
	// FFmpegPath is the ffmpeg binary; empty looks it up on PATH.
	FFmpegPath string
	// NewPath allocates the output file.
	NewPath PhotoPathFunc
}

// captureFormat returns the ffmpeg input device format for the OS.
func captureFormat(goos string) string {
	switch goos {
	case "darwin":
		return "avfoundation"
	case "windows":
		return "dshow"
	}
	return "v4l2"
}

// deviceInput returns the -i argument for the device.
func deviceInput(format, device string) string {
	if format == "dshow" {
		return "video=" + device
	}
	return device
}

// Pick implements CameraService. A capture that fails once ffmpeg has
// started returns Code 1 and no error.
func (c FFmpegCamera) Pick(ctx context.Context, types []CaptureType, _ Profile) (CameraResult, error) {
	if !supportsPhoto(types) {
		return CameraResult{Code: 1}, nil
	}

	bin := c.FFmpegPath
	if bin == "" {
		var err error
		bin, err = exec.LookPath("ffmpeg")
		if err != nil {
			return CameraResult{}, fmt.Errorf("ffmpeg not found: %w", err)
		}
	}

	if c.NewPath == nil {
		return CameraResult{}, fmt.Errorf("camera has no output location")
	}
	out, err := c.NewPath()
	if err != nil {
		return CameraResult{}, err
	}

	format := c.Format
	if format == "" {
		format = captureFormat(runtime.GOOS)
	}

	cmd := exec.CommandContext(ctx, bin,
		"-hide_banner",
		"-loglevel", "error",
		"-f", format,
		"-i", deviceInput(format, c.Device),
		"-frames:v", "1",
		"-y",
		out,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		logging.Warn("Camera capture from %s failed: %v, stderr: %s", c.Device, err, stderr.String())
		return CameraResult{Code: 1}, nil
	}

	logging.Debug("Captured frame from %s to %s", c.Device, out)
	return CameraResult{Code: 0, URI: out}, nil
}

func supportsPhoto(types []CaptureType) bool {
	for _, t := range types {
		if t == CapturePhoto {
			return true
		}
	}
	return false
}
