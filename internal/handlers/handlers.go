package handlers

import (
	"time"

	"image-picker/internal/picker"
	"image-picker/internal/startup"
)

// Handlers serves the picker bridge.
type Handlers struct {
	facade    *picker.Facade
	dialogs   bool
	cacheDir  string
	startTime time.Time
}

// New returns Handlers over facade. config.Dialogs decides whether request
// bodies may supply the selected paths.
func New(facade *picker.Facade, config *startup.Config) *Handlers {
	return &Handlers{
		facade:    facade,
		dialogs:   config.Dialogs,
		cacheDir:  config.CacheDir,
		startTime: time.Now(),
	}
}
