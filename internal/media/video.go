package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// VideoDimensions holds width and height as reported by the host. Hosts
// report them as strings; Describer parses them.
type VideoDimensions struct {
	Width  string
	Height string
}

// VideoProbe reads video dimensions.
type VideoProbe interface {
	Probe(ctx context.Context, path string) (VideoDimensions, error)
}

// ErrNoVideoStream is returned when a file has no video stream.
var ErrNoVideoStream = errors.New("no video stream found")

// FFprobe implements VideoProbe with the ffprobe binary.
type FFprobe struct {
	// Path to the ffprobe binary; empty looks it up on PATH.
	Path string
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Probe implements VideoProbe.
func (p FFprobe) Probe(ctx context.Context, path string) (VideoDimensions, error) {
	bin := p.Path
	if bin == "" {
		var err error
		bin, err = exec.LookPath("ffprobe")
		if err != nil {
			return VideoDimensions{}, fmt.Errorf("ffprobe not found in PATH: %w", err)
		}
	}

	cmd := exec.CommandContext(ctx, bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "v:0",
		path,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return VideoDimensions{}, fmt.Errorf("ffprobe failed: %w, stderr: %s", err, stderr.String())
	}

	return parseFFprobe(output)
}

func parseFFprobe(output []byte) (VideoDimensions, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return VideoDimensions{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	for _, s := range probe.Streams {
		if s.CodecType == "video" {
			return VideoDimensions{
				Width:  strconv.Itoa(s.Width),
				Height: strconv.Itoa(s.Height),
			}, nil
		}
	}

	return VideoDimensions{}, ErrNoVideoStream
}
