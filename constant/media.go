package constant

// Media backend identifiers.
const (
	MPV = "mpv"

	// OsdWatermarkID is the mpv osd-overlay slot reserved for the watermark label.
	OsdWatermarkID = 63
	// OsdDecorationID is the mpv osd-overlay slot reserved for the host decoration line.
	OsdDecorationID = 62
)
