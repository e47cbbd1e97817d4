package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fastvideo-cli/fastvideo/util"
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// middle is the row the transient icons are drawn on.
func (r rect) middle() int {
	return r.y + r.h/2
}

// geometry is where things are on screen. Rows: header, the surface box
// with its border, the control bar, help.
type geometry struct {
	preview rect
	bar     int
}

func (b *playerBubble) geometry() geometry {
	helpHeight := lipgloss.Height(b.helpC.View(b.keymap))

	w := util.Max(b.width-2, 10)
	h := util.Max(b.height-4-helpHeight, 3)

	return geometry{
		preview: rect{x: 1, y: 2, w: w, h: h},
		bar:     2 + h + 1,
	}
}

type target int

const (
	targetNone target = iota
	targetPlay
	targetMute
	targetFullscreen
	targetProgress
)

// segment is one piece of the control bar.
type segment struct {
	target target
	text   string
}

type span struct {
	from, to int
}

func (s span) contains(x int) bool {
	return x >= s.from && x < s.to
}

// spans returns where each target of the bar is, separated by one cell.
func spans(segments []segment) map[target]span {
	out := make(map[target]span)

	x := 0
	for _, s := range segments {
		w := lipgloss.Width(s.text)
		if s.target != targetNone {
			out[s.target] = span{from: x, to: x + w}
		}
		x += w + 1
	}

	return out
}
