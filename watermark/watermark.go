// Package watermark computes where an overlay label sits on a video surface.
// Everything here is pure and safe to re-run whenever the natural video size,
// the viewport or the orientation changes.
package watermark

import "math"

// Edge is one side (or the middle) of a surface.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
	EdgeRight  Edge = "right"
	EdgeCenter Edge = "center"
)

const (
	// LandscapeInset is the fixed vertical inset used in landscape fullscreen,
	// where the video fills the whole screen.
	LandscapeInset = 12.0

	// Padding surrounds the label on every side.
	Padding = 8.0
)

// Offsets are explicit distances from each edge.
type Offsets struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// NaturalSize is the source video size in pixels.
// A zero value means the metadata has not loaded yet.
type NaturalSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Known reports whether both dimensions are positive.
func (n NaturalSize) Known() bool {
	return n.Width > 0 && n.Height > 0
}

// AspectRatio returns width / height, or 0 when unknown.
func (n NaturalSize) AspectRatio() float64 {
	if !n.Known() {
		return 0
	}

	return n.Width / n.Height
}

// Rect is the visible video rectangle inside a fullscreen container.
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Letterbox returns the fullscreen video rectangle. Landscape fills the full
// viewport height. Otherwise the rectangle spans the viewport width and its
// height follows the natural aspect ratio. Unknown natural size yields a
// zero height, so the label falls back to the vertical center band.
func Letterbox(natural NaturalSize, viewportWidth, viewportHeight float64, landscape bool) Rect {
	if landscape {
		return Rect{Width: viewportWidth, Height: viewportHeight}
	}

	ratio := natural.AspectRatio()
	if ratio == 0 || math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return Rect{Width: viewportWidth}
	}

	return Rect{Width: viewportWidth, Height: viewportWidth / ratio}
}

// Input is everything Resolve needs.
type Input struct {
	Position        Position `json:"position"`
	Offsets         Offsets  `json:"offsets"`
	Fullscreen      bool     `json:"fullscreen"`
	Landscape       bool     `json:"landscape"`
	ViewportHeight  float64  `json:"viewport_height"`
	LetterboxHeight float64  `json:"letterbox_height"`
}

// Anchor places the label: Y is the distance from Vertical, X the distance
// from Horizontal. X is always 0 for centered labels.
type Anchor struct {
	Vertical   Edge    `json:"vertical" jsonschema:"enum=top,enum=bottom"`
	Horizontal Edge    `json:"horizontal" jsonschema:"enum=left,enum=right,enum=center"`
	Y          float64 `json:"y"`
	X          float64 `json:"x"`
	Padding    float64 `json:"padding"`
}

// Resolve computes the anchor for in.
//
// Inline surfaces use the raw offsets. Fullscreen surfaces shift the vertical
// anchor by LandscapeInset in landscape, or by half the gap between the
// viewport and the letterbox in portrait, so the label tracks the visible
// video band.
func Resolve(in Input) Anchor {
	anchor := Anchor{
		Horizontal: in.Position.Horizontal(),
		Padding:    Padding,
	}

	var shift float64
	if in.Fullscreen {
		shift = FullscreenShift(in.Landscape, in.ViewportHeight, in.LetterboxHeight)
	}

	if in.Position.Top() {
		anchor.Vertical = EdgeTop
		anchor.Y = shift + in.Offsets.Top
	} else {
		anchor.Vertical = EdgeBottom
		anchor.Y = shift + in.Offsets.Bottom
	}

	switch anchor.Horizontal {
	case EdgeLeft:
		anchor.X = in.Offsets.Left
	case EdgeRight:
		anchor.X = in.Offsets.Right
	}

	return anchor
}

// FullscreenShift is the vertical shift applied before the explicit offset
// in fullscreen.
func FullscreenShift(landscape bool, viewportHeight, letterboxHeight float64) float64 {
	if landscape {
		return LandscapeInset
	}

	return viewportHeight/2 - letterboxHeight/2
}
