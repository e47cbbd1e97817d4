package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Play Icon = iota
	Pause
	SeekBack
	SeekForward
	Replay
	VolumeOn
	VolumeOff
	Fullscreen
	CloseFullscreen
	Success
	Fail
	Progress
)

var icons = map[Icon]*iconDef{
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "(>‿◠)✌",
		squares: "▶",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(￣o￣) zzZ",
		squares: "⏸",
	},
	SeekBack: {
		emoji:   "⏪",
		nerd:    "",
		plain:   "<<",
		kaomoji: "(«_«)",
		squares: "◀◀",
	},
	SeekForward: {
		emoji:   "⏩",
		nerd:    "",
		plain:   ">>",
		kaomoji: "(»_»)",
		squares: "▶▶",
	},
	Replay: {
		emoji:   "🔁",
		nerd:    "",
		plain:   "(re)",
		kaomoji: "(↻_↻)",
		squares: "↻",
	},
	VolumeOn: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "vol",
		kaomoji: "ヽ(o♡o)/",
		squares: "◼))",
	},
	VolumeOff: {
		emoji:   "🔇",
		nerd:    "",
		plain:   "mute",
		kaomoji: "(×_×)",
		squares: "◼×",
	},
	Fullscreen: {
		emoji:   "⛶",
		nerd:    "",
		plain:   "[ ]",
		kaomoji: "[(o_o)]",
		squares: "⛶",
	},
	CloseFullscreen: {
		emoji:   "🗗",
		nerd:    "",
		plain:   "]-[",
		kaomoji: "](o_o)[",
		squares: "▣",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "▣",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "✖",
		kaomoji: "(╥﹏╥)",
		squares: "▨",
	},
	Progress: {
		emoji:   "👾",
		nerd:    "",
		plain:   "~",
		kaomoji: "(◕‿◕)",
		squares: "▦",
	},
}
