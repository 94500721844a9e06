package picker

import (
	"encoding/json"

	"image-picker/internal/pipeline"
)

// DefaultMaxCount is the default number of images or videos a picker may
// return.
const DefaultMaxCount = 6

// Options configure one picker invocation. Field names follow the bridge's
// JSON contract. Crop and style fields are forwarded to the host only.
type Options struct {
	ImageCount                      int     `json:"imageCount"`
	IsRecordSelected                bool    `json:"isRecordSelected"`
	IsCamera                        bool    `json:"isCamera"`
	IsCrop                          bool    `json:"isCrop"`
	CropW                           int     `json:"CropW"`
	CropH                           int     `json:"CropH"`
	IsGif                           bool    `json:"isGif"`
	ShowCropCircle                  bool    `json:"showCropCircle"`
	CircleCropRadius                int     `json:"circleCropRadius"`
	ShowCropFrame                   bool    `json:"showCropFrame"`
	ShowCropGrid                    bool    `json:"showCropGrid"`
	FreeStyleCropEnabled            bool    `json:"freeStyleCropEnabled"`
	RotateEnabled                   bool    `json:"rotateEnabled"`
	ScaleEnabled                    bool    `json:"scaleEnabled"`
	Compress                        bool    `json:"compress"`
	CompressFocusAlpha              bool    `json:"compressFocusAlpha"`
	MinimumCompressSize             int     `json:"minimumCompressSize"`
	Quality                         int     `json:"quality"`
	EnableBase64                    bool    `json:"enableBase64"`
	AllowPickingOriginalPhoto       bool    `json:"allowPickingOriginalPhoto"`
	AllowPickingMultipleVideo       bool    `json:"allowPickingMultipleVideo"`
	VideoMaximumDuration            float64 `json:"videoMaximumDuration"`
	IsWeChatStyle                   bool    `json:"isWeChatStyle"`
	SortAscendingByModificationDate bool    `json:"sortAscendingByModificationDate"`
	VideoCount                      int     `json:"videoCount"`
	MaxSecond                       float64 `json:"MaxSecond"`
	MinSecond                       float64 `json:"MinSecond"`
	ShowSelectedIndex               bool    `json:"showSelectedIndex"`
}

// DefaultOptions returns the options used for absent fields.
func DefaultOptions() Options {
	return Options{
		ImageCount:    DefaultMaxCount,
		VideoCount:    DefaultMaxCount,
		IsCamera:      true,
		ShowCropFrame: true,
	}
}

// UnmarshalJSON decodes options on top of DefaultOptions, so fields missing
// from the input keep their defaults.
func (o *Options) UnmarshalJSON(data []byte) error {
	type plain Options
	opts := plain(DefaultOptions())
	if err := json.Unmarshal(data, &opts); err != nil {
		return err
	}
	*o = Options(opts)
	return nil
}

// WithDefaults returns o with non-positive counts replaced by the default.
func (o Options) WithDefaults() Options {
	if o.ImageCount <= 0 {
		o.ImageCount = DefaultMaxCount
	}
	if o.VideoCount <= 0 {
		o.VideoCount = DefaultMaxCount
	}
	return o
}

func (o Options) pipeline() pipeline.Options {
	return pipeline.Options{
		Compress:      o.Compress,
		Quality:       o.Quality,
		IncludeBase64: o.EnableBase64,
	}
}
