package picker

import (
	"context"
	"errors"
	"fmt"

	"image-picker/internal/logging"
	"image-picker/internal/mediatypes"

	"github.com/ncruces/zenity"
)

// DesktopPicker selects files with the operating system's native file
// dialog.
type DesktopPicker struct{}

// Select implements PhotoPicker. Cancelling the dialog returns an empty
// list.
func (DesktopPicker) Select(ctx context.Context, req SelectRequest) ([]string, error) {
	title, filterName := "Select images", "Images"
	if req.Kind == mediatypes.KindVideo {
		title, filterName = "Select videos", "Videos"
	}

	opts := []zenity.Option{
		zenity.Context(ctx),
		zenity.Title(title),
		zenity.FileFilters{
			{
				Name:     filterName,
				Patterns: mediatypes.FilterPatterns(req.Kind),
				CaseFold: true,
			},
		},
	}

	logging.Debug("Opening file dialog for %s (max %d)", req.MIMEType, req.MaxSelect)

	var paths []string
	var err error

	if req.MaxSelect == 1 {
		var path string
		path, err = zenity.SelectFile(opts...)
		if path != "" {
			paths = []string{path}
		}
	} else {
		paths, err = zenity.SelectFileMultiple(opts...)
	}

	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			logging.Debug("File dialog canceled")
			return []string{}, nil
		}
		return nil, fmt.Errorf("file dialog failed: %w", err)
	}

	if req.MaxSelect > 0 && len(paths) > req.MaxSelect {
		paths = paths[:req.MaxSelect]
	}

	logging.Info("Files picked via native dialog: %d", len(paths))
	return paths, nil
}
