// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Watermark - these keys describe the overlay label drawn on top of both surfaces.
const (
	WatermarkText         = "watermark.text"
	WatermarkPosition     = "watermark.position"
	WatermarkOffsetTop    = "watermark.offset_top"
	WatermarkOffsetLeft   = "watermark.offset_left"
	WatermarkOffsetRight  = "watermark.offset_right"
	WatermarkOffsetBottom = "watermark.offset_bottom"
	WatermarkColor        = "watermark.color"
	WatermarkFontSize     = "watermark.font_size"
)

// Overlay Timing - these keys tune the interaction state machine. All values are milliseconds unless noted.
const (
	OverlayHideDelay       = "overlay.hide_delay"
	OverlayRevealFade      = "overlay.reveal_fade"
	OverlayHideFade        = "overlay.hide_fade"
	OverlayDoubleTapWindow = "overlay.double_tap_window"
	OverlaySeekStep        = "overlay.seek_step_seconds"
	OverlaySeekFlash       = "overlay.seek_flash"
	OverlayClusterFlash    = "overlay.cluster_flash"
	OverlayIconFade        = "overlay.icon_fade"
	OverlayDecoration      = "overlay.decoration"
)

// Fullscreen Transitions - these keys govern behaviour when switching surfaces.
const (
	FullscreenResumeOnExit = "fullscreen.resume_on_exit"
	FullscreenAutoRotate   = "fullscreen.auto_rotate"
	FullscreenOnEnter      = "fullscreen.on_enter"
	FullscreenOnExit       = "fullscreen.on_exit"
)

// Media Playback - these keys configure the external mpv surfaces.
const (
	PlayerInlineGeometry = "player.inline_geometry"
	PlayerStartMuted     = "player.start_muted"
	PlayerCache          = "player.cache"
	PlayerExtraArgs      = "player.extra_args"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the overlay terminal's styling.
const (
	TUIShowPreview = "tui.show_preview"
	TUIMouse       = "tui.mouse"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
