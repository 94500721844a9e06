package picker

import (
	"context"

	"image-picker/internal/mediatypes"
)

// SelectRequest is what the facade asks of a PhotoPicker.
type SelectRequest struct {
	Kind mediatypes.Kind
	// MIMEType filters the selectable files, for example "image/*".
	MIMEType string
	// MaxSelect is the most files the picker may return.
	MaxSelect int
	// PhotoTaking lets the user take a photo from inside the picker.
	PhotoTaking bool
	// Edit asks the picker to offer editing (cropping) of the selection.
	Edit bool
	Crop CropRequest
}

// CropRequest carries crop geometry through to the host. It is not
// interpreted here.
type CropRequest struct {
	Width        int
	Height       int
	Circle       bool
	CircleRadius int
	ShowFrame    bool
	ShowGrid     bool
	FreeStyle    bool
	Rotate       bool
	Scale        bool
}

// PhotoPicker selects existing media. Results are ordered in selection
// order; a cancelled selection returns an empty list and no error.
type PhotoPicker interface {
	Select(ctx context.Context, req SelectRequest) ([]string, error)
}

// CaptureType is a kind of media the camera may capture.
type CaptureType string

// Capture types.
const (
	CapturePhoto CaptureType = "photo"
	CaptureVideo CaptureType = "video"
)

// CameraPosition selects the camera to open.
type CameraPosition int

// Camera positions.
const (
	CameraUnspecified CameraPosition = iota
	CameraBack
	CameraFront
)

// Profile configures a camera capture.
type Profile struct {
	Position CameraPosition
	// MaxDuration limits video capture in seconds; 0 means the host default.
	MaxDuration float64
}

// CameraResult is what a capture returns. Code 0 is success; anything else
// means the capture failed or was cancelled and URI is meaningless.
type CameraResult struct {
	Code int
	URI  string
}

// CameraService captures new media.
type CameraService interface {
	Pick(ctx context.Context, types []CaptureType, profile Profile) (CameraResult, error)
}

// BuildSelectRequest maps options to a picker request for images (image
// true) or videos.
func BuildSelectRequest(opts Options, image bool) SelectRequest {
	opts = opts.WithDefaults()

	if !image {
		limit := 1
		if opts.AllowPickingMultipleVideo {
			limit = opts.VideoCount
		}
		return SelectRequest{
			Kind:      mediatypes.KindVideo,
			MIMEType:  mediatypes.MimeFamily(mediatypes.KindVideo),
			MaxSelect: limit,
		}
	}

	limit := opts.ImageCount
	if opts.IsCrop {
		limit = 1
	}

	return SelectRequest{
		Kind:        mediatypes.KindImage,
		MIMEType:    mediatypes.MimeFamily(mediatypes.KindImage),
		MaxSelect:   limit,
		PhotoTaking: opts.IsCamera,
		Edit:        opts.IsCrop,
		Crop: CropRequest{
			Width:        opts.CropW,
			Height:       opts.CropH,
			Circle:       opts.ShowCropCircle,
			CircleRadius: opts.CircleCropRadius,
			ShowFrame:    opts.ShowCropFrame,
			ShowGrid:     opts.ShowCropGrid,
			FreeStyle:    opts.FreeStyleCropEnabled,
			Rotate:       opts.RotateEnabled,
			Scale:        opts.ScaleEnabled,
		},
	}
}

func mediaKindMatches(path string, req SelectRequest) bool {
	filter := req.MIMEType
	if filter == "" {
		filter = mediatypes.MimeFamily(req.Kind)
	}
	return mediatypes.MatchesMime(path, filter)
}
