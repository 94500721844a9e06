package pipeline

import (
	"fmt"

	"image-picker/internal/media"
)

// Stage names a step of the pipeline. Values are used as metric labels.
type Stage string

// Pipeline stages.
const (
	StageCopy     Stage = "copy"
	StageCompress Stage = "compress"
	StageDescribe Stage = "describe"
)

// Item is one picked file as it moves through the pipeline. Original is the
// path returned by the host and never changes; Current is the file the next
// stage reads.
type Item struct {
	Original string
	Current  string
}

// Outcome is the result of running one stage on one item.
type Outcome struct {
	Item  Item
	Stage Stage
	Media media.SelectedMedia
	Err   error
	// Skipped marks items the stage does not apply to. They are excluded
	// from the result without counting as failures.
	Skipped bool
}

// Failed reports whether the stage failed for this item.
func (o Outcome) Failed() bool {
	return !o.Skipped && o.Err != nil
}

// StageError is the error reported when a batch fails.
type StageError struct {
	Stage    Stage
	Original string
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Original, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Dropped describes an item left out of a successful result.
type Dropped struct {
	Original string `json:"original_uri"`
	Stage    Stage  `json:"stage"`
	Reason   string `json:"reason"`
}

// Envelope is the result of one assembly: either Media or Err is meaningful,
// never both. Media is never nil on success.
type Envelope struct {
	Media   []media.SelectedMedia
	Err     error
	Dropped []Dropped
}

// OK reports whether the envelope is a success.
func (e Envelope) OK() bool {
	return e.Err == nil
}

func failure(err error) Envelope {
	return Envelope{Media: []media.SelectedMedia{}, Err: err}
}
