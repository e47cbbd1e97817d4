// Package style holds the lipgloss styles shared by the overlay and the CLI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fastvideo-cli/fastvideo/color"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored returns a style with fg and bg set.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

// Fg returns a renderer that paints its input in c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

var (
	Faint = func(s string) string { return New().Faint(true).Render(s) }
	Bold  = func(s string) string { return New().Bold(true).Render(s) }
)

// Title renders a banner such as the app name in the overlay header.
var Title = func(s string) string {
	return Colored(color.New("230"), color.New("62")).Padding(0, 1).Render(s)
}

// ErrorTitle is Title on red.
var ErrorTitle = func(s string) string {
	return Colored(color.New("230"), color.Red).Padding(0, 1).Render(s)
}

// Tag returns a renderer for small padded labels like the surface mode.
func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}
