package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fastvideo-cli/fastvideo/color"
	"github.com/fastvideo-cli/fastvideo/icon"
	"github.com/fastvideo-cli/fastvideo/overlay"
	"github.com/fastvideo-cli/fastvideo/style"
	"github.com/fastvideo-cli/fastvideo/util"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
)

var (
	paddingStyle = lipgloss.NewStyle().Padding(1, 2)
	surfaceStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(style.Overlay)
)

func (b *playerBubble) View() string {
	var output string

	switch b.state {
	case startingState:
		output = b.viewStarting()
	case errorState:
		output = b.viewError()
	default:
		output = b.viewPlayer()
	}

	return b.notifier.View(output)
}

func (b *playerBubble) viewStarting() string {
	return paddingStyle.Render(strings.Join([]string{
		style.Title("Starting"),
		"",
		b.spinnerC.View() + " Opening surfaces for " + style.Fg(color.Purple)(b.session.Config().Title),
		"",
		b.helpC.View(b.keymap),
	}, "\n"))
}

func (b *playerBubble) viewError() string {
	msg := "unknown error"
	if b.lastError != nil {
		msg = b.lastError.Error()
	}

	return paddingStyle.Render(strings.Join([]string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " " + wrap.String(msg, util.Max(b.width-6, 10)),
		"",
		b.helpC.View(b.keymap),
	}, "\n"))
}

func (b *playerBubble) viewPlayer() string {
	g := b.geometry()

	return strings.Join([]string{
		b.viewHeader(g),
		surfaceStyle.Render(b.viewSurface(g)),
		b.viewBar(g),
		b.helpC.View(b.keymap),
	}, "\n")
}

func (b *playerBubble) viewHeader(g geometry) string {
	mode := b.controller().Mode()
	st := b.controller().State()

	var status string
	switch {
	case st.Ended:
		status = style.Tag(style.Base, style.Peach)("ended")
	case st.Paused:
		status = style.Tag(style.Base, style.Yellow)("paused")
	default:
		status = style.Tag(style.Base, style.Green)("playing")
	}

	header := style.Title("fastvideo") + " " + style.Tag(style.Base, style.Mauve)(mode.String()) + " " + status + " "
	room := util.Max(g.preview.w+2-lipgloss.Width(header), 0)

	return header + style.Fg(style.Subtext)(truncate.StringWithTail(b.session.Config().Title, uint(room), "…"))
}

func button(glyph string) string {
	return "[" + glyph + "]"
}

// barSegments lays out the control bar for the current width. The scrub
// bar takes whatever the buttons leave.
func (b *playerBubble) barSegments(g geometry) []segment {
	st := b.controller().State()
	view := b.engine().View()

	play := icon.Get(icon.Pause)
	switch {
	case st.Ended:
		play = icon.Get(icon.Replay)
	case st.Paused:
		play = icon.Get(icon.Play)
	}

	volume := icon.Get(icon.VolumeOn)
	if st.Muted {
		volume = icon.Get(icon.VolumeOff)
	}

	screen := icon.Get(icon.Fullscreen)
	if b.fullscreen() {
		screen = icon.Get(icon.CloseFullscreen)
	}

	current := st.CurrentTime
	if view.Sliding {
		current = view.ScrubValue
	}

	left := []segment{
		{target: targetPlay, text: button(play)},
		{target: targetNone, text: util.FormatTime(current)},
	}
	right := []segment{
		{target: targetNone, text: util.FormatTime(st.Duration)},
		{target: targetMute, text: button(volume)},
		{target: targetFullscreen, text: button(screen)},
	}

	used := 0
	for _, s := range append(left, right...) {
		used += lipgloss.Width(s.text) + 1
	}
	b.progressC.Width = util.Max(g.preview.w+2-used, 4)

	var ratio float64
	if st.Duration > 0 {
		ratio = current / st.Duration
	}

	segments := append(left, segment{target: targetProgress, text: b.progressC.ViewAs(ratio)})
	return append(segments, right...)
}

func (b *playerBubble) viewBar(g geometry) string {
	view := b.engine().View()
	if view.Phase == overlay.Hidden {
		return ""
	}

	segments := b.barSegments(g)
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.text
	}

	bar := strings.Join(parts, " ")
	if view.Phase == overlay.FadingOut || view.Phase == overlay.Revealing {
		return style.Faint(bar)
	}

	return bar
}

func flashText(f overlay.SeekFlash, step float64) string {
	if f.Direction == overlay.Left {
		return fmt.Sprintf("%s -%gs", icon.Get(icon.SeekBack), step)
	}

	return fmt.Sprintf("+%gs %s", step, icon.Get(icon.SeekForward))
}

func clusterIcons(c overlay.Cluster) []string {
	middle := icon.Get(icon.Pause)
	if c.Paused {
		middle = icon.Get(icon.Play)
	}

	return []string{icon.Get(icon.SeekBack), middle, icon.Get(icon.SeekForward)}
}
