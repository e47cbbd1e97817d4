// Package media drives mpv processes as playback surfaces over mpv's JSON-IPC
// protocol. Each surface is its own mpv instance with its own socket.
package media

import (
	"github.com/fastvideo-cli/fastvideo/constant"
	"github.com/fastvideo-cli/fastvideo/playback"
)

// Options describe one mpv surface.
type Options struct {
	Surface playback.Mode

	// Binary is the mpv executable, constant.MPV when empty.
	Binary string

	// Title is shown in the window title bar.
	Title string

	// Geometry is passed to --geometry for the inline surface, e.g. "640x360".
	Geometry string

	// Cache enables mpv's demuxer cache for the source.
	Cache bool

	Muted bool

	// ExtraArgs are appended verbatim before the source.
	ExtraArgs []string

	// SocketDir holds the IPC socket.
	SocketDir string
}

func (o Options) binary() string {
	if o.Binary == "" {
		return constant.MPV
	}

	return o.Binary
}
