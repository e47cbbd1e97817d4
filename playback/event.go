package playback

import (
	"github.com/fastvideo-cli/fastvideo/watermark"
	"github.com/google/uuid"
)

// Origin identifies the handle an event came from.
type Origin struct {
	Mode   Mode
	Handle uuid.UUID
}

// Event is anything the controller inbox accepts.
type Event interface {
	event()
}

// LoadEvent reports that a handle finished loading media metadata.
type LoadEvent struct {
	Origin
	Duration float64
	Natural  watermark.NaturalSize
}

// ProgressEvent reports the playback position of a handle.
type ProgressEvent struct {
	Origin
	CurrentTime float64
}

// EndEvent reports that a handle reached the end of the media.
type EndEvent struct {
	Origin
}

// ViewportEvent reports a new display size.
type ViewportEvent struct {
	Width, Height float64
}

func (LoadEvent) event()     {}
func (ProgressEvent) event() {}
func (EndEvent) event()      {}
func (ViewportEvent) event() {}
