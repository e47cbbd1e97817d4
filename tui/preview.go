package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fastvideo-cli/fastvideo/icon"
	"github.com/fastvideo-cli/fastvideo/media"
	"github.com/fastvideo-cli/fastvideo/overlay"
	"github.com/fastvideo-cli/fastvideo/playback"
	"github.com/fastvideo-cli/fastvideo/style"
	"github.com/fastvideo-cli/fastvideo/util"
	"github.com/fastvideo-cli/fastvideo/watermark"
	"github.com/muesli/reflow/truncate"
	"github.com/samber/lo"
)

// mark is a piece of text pinned to one side of a surface row.
type mark struct {
	text   string
	pos    lipgloss.Position
	indent int
}

// cells scales a surface coordinate onto n terminal cells.
func cells(v, total float64, n int) int {
	if total <= 0 {
		return 0
	}

	return int(math.Round(v / total * float64(n)))
}

// placeLabel maps a resolved label anchor into the w x h cell grid of the
// surface box.
func placeLabel(l media.Label, sw, sh float64, w, h int) (int, mark) {
	a := l.Anchor

	row := cells(a.Y, sh, h)
	if a.Vertical == watermark.EdgeBottom {
		row = h - 1 - row
	}
	row = lo.Clamp(row, 0, h-1)

	m := mark{pos: lipgloss.Left}
	switch a.Horizontal {
	case watermark.EdgeCenter:
		m.pos = lipgloss.Center
	case watermark.EdgeRight:
		m.pos = lipgloss.Right
		m.indent = cells(a.X, sw, w)
	default:
		m.indent = cells(a.X, sw, w)
	}

	m.indent = lo.Clamp(m.indent, 0, util.Max(w-1, 0))
	text := truncate.StringWithTail(l.Text, uint(w-m.indent), "…")
	if l.Color != "" {
		text = style.Fg(lipgloss.Color("#" + strings.TrimPrefix(l.Color, "#")))(text)
	}
	m.text = text

	return row, m
}

// renderRow composes the marks of a row into exactly w cells.
func renderRow(marks []mark, w int) string {
	var left, center, right []string
	for _, m := range marks {
		pad := strings.Repeat(" ", m.indent)
		switch m.pos {
		case lipgloss.Left:
			left = append(left, pad+m.text)
		case lipgloss.Right:
			right = append(right, m.text+pad)
		default:
			center = append(center, m.text)
		}
	}

	l := strings.Join(left, " ")
	r := strings.Join(right, " ")
	room := util.Max(w-lipgloss.Width(l)-lipgloss.Width(r), 0)
	c := lipgloss.PlaceHorizontal(room, lipgloss.Center, strings.Join(center, " "))

	return truncate.String(lipgloss.PlaceHorizontal(w, lipgloss.Left, l+c+r), uint(w))
}

// letterboxRows is the band of rows covered by the fullscreen video when
// the device is portrait, or every row otherwise.
func (b *playerBubble) letterboxRows(mode playback.Mode, h int) (from, to int) {
	layout := b.controller().Layout()
	if mode != playback.Fullscreen || layout.Landscape || layout.ViewportHeight <= 0 || layout.Letterbox.Height <= 0 {
		return 0, h
	}

	band := util.Max(cells(layout.Letterbox.Height, layout.ViewportHeight, h), 1)
	from = (h - band) / 2
	return from, from + band
}

// centerRow is what the overlay shows in the middle of the surface: the
// replay affordance, the icon cluster or a seek flash.
func (b *playerBubble) centerRow(view overlay.View, w int) (string, bool) {
	if view.Ended {
		return lipgloss.PlaceHorizontal(w, lipgloss.Center, style.Bold(icon.Get(icon.Replay)+" replay")), true
	}

	if c, ok := view.Cluster.Get(); ok {
		third := w / 3
		row := strings.Join(lo.Map(clusterIcons(c), func(glyph string, i int) string {
			width := third
			if i == 2 {
				width = w - 2*third
			}
			return lipgloss.PlaceHorizontal(width, lipgloss.Center, glyph)
		}), "")

		if c.Fading {
			return style.Faint(row), true
		}
		return row, true
	}

	if f, ok := view.SeekFlash.Get(); ok {
		text := flashText(f, b.session.Config().Timing.SeekStep)
		if f.Fading {
			text = style.Faint(text)
		}

		m := mark{text: text, pos: lipgloss.Left, indent: w / 6}
		if f.Direction == overlay.Right {
			m.pos = lipgloss.Right
		}
		return renderRow([]mark{m}, w), true
	}

	return "", false
}

// viewSurface draws the surface box: watermark and decoration where the
// media surface has them, the letterbox band and the transient icons.
func (b *playerBubble) viewSurface(g geometry) string {
	w, h := g.preview.w, g.preview.h
	mode := b.controller().Mode()
	rows := make([][]mark, h)

	if b.showPreview {
		if deco := b.session.Config().Decoration; deco != "" {
			rows[0] = append(rows[0], mark{text: style.Faint(truncate.StringWithTail(deco, uint(w), "…")), pos: lipgloss.Left})
		}

		if label, ok := b.session.Label(mode).Get(); ok {
			sw, sh := b.session.SurfaceSize(mode)
			row, m := placeLabel(label, sw, sh, w, h)
			rows[row] = append(rows[row], m)
		}
	}

	from, to := b.letterboxRows(mode, h)
	lines := make([]string, h)
	for i := range lines {
		if (i < from || i >= to) && len(rows[i]) == 0 {
			lines[i] = style.Faint(strings.Repeat("·", w))
			continue
		}
		lines[i] = renderRow(rows[i], w)
	}

	if center, ok := b.centerRow(b.engine().View(), w); ok {
		lines[h/2] = center
	}

	return strings.Join(lines, "\n")
}
