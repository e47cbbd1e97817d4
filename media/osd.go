package media

import (
	"fmt"
	"strings"

	"github.com/fastvideo-cli/fastvideo/watermark"
)

// Label is text pinned to an anchor on the OSD.
type Label struct {
	Text     string
	Anchor   watermark.Anchor
	Color    string // RRGGBB
	FontSize int
}

// alignment maps an anchor to the ASS \an numpad code.
func alignment(a watermark.Anchor) int {
	base := 7
	if a.Vertical == watermark.EdgeBottom {
		base = 1
	}

	switch a.Horizontal {
	case watermark.EdgeCenter:
		return base + 1
	case watermark.EdgeRight:
		return base + 2
	default:
		return base
	}
}

// assColor converts RRGGBB into the ASS primary color override.
func assColor(rgb string) string {
	rgb = strings.TrimPrefix(strings.TrimSpace(rgb), "#")
	if len(rgb) != 6 {
		rgb = "FFFFFF"
	}

	return fmt.Sprintf("\\1c&H%s%s%s&", rgb[4:6], rgb[2:4], rgb[0:2])
}

func escapeASS(text string) string {
	return strings.NewReplacer(
		"\\", "\\\\",
		"{", "\\{",
		"}", "\\}",
		"\n", "\\N",
	).Replace(text)
}

// ASS renders the label for an OSD of the given size.
func (l Label) ASS(width, height float64) string {
	a := l.Anchor

	var x, y float64
	switch a.Horizontal {
	case watermark.EdgeLeft:
		x = a.X + a.Padding
	case watermark.EdgeRight:
		x = width - a.X - a.Padding
	default:
		x = width / 2
	}

	if a.Vertical == watermark.EdgeBottom {
		y = height - a.Y - a.Padding
	} else {
		y = a.Y + a.Padding
	}

	size := l.FontSize
	if size <= 0 {
		size = 28
	}

	return fmt.Sprintf("{\\an%d\\pos(%.0f,%.0f)\\bord1\\shad0\\fs%d%s}%s",
		alignment(a), x, y, size, assColor(l.Color), escapeASS(l.Text))
}

// ShowOverlay draws ASS events into an osd-overlay slot sized width x height.
func (m *MPV) ShowOverlay(id int, ass string, width, height float64) error {
	_, err := m.sendCommand(map[string]any{
		"name":   "osd-overlay",
		"id":     id,
		"format": "ass-events",
		"data":   ass,
		"res_x":  int(width),
		"res_y":  int(height),
	})
	if err != nil {
		return fmt.Errorf("osd-overlay %d: %w", id, err)
	}

	return nil
}

// ShowLabel draws l into the overlay slot id.
func (m *MPV) ShowLabel(id int, l Label, width, height float64) error {
	if l.Text == "" {
		return m.ClearOverlay(id)
	}

	return m.ShowOverlay(id, l.ASS(width, height), width, height)
}

// ClearOverlay removes the overlay slot id.
func (m *MPV) ClearOverlay(id int) error {
	_, err := m.sendCommand(map[string]any{
		"name":   "osd-overlay",
		"id":     id,
		"format": "none",
		"data":   "",
	})
	return err
}
