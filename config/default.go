// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/fastvideo-cli/fastvideo/color"
	"github.com/fastvideo-cli/fastvideo/constant"
	"github.com/fastvideo-cli/fastvideo/key"
	"github.com/fastvideo-cli/fastvideo/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.WatermarkText, "", "Text drawn over the video on both surfaces.\nEmpty disables the watermark")
	register(key.WatermarkPosition, "top-left", "Watermark anchor.\nAvailable options are: top-left, top-center, top-right, bottom-left, bottom-center, bottom-right")
	register(key.WatermarkOffsetTop, 0.0, "Extra distance from the top edge, applied to top-* positions")
	register(key.WatermarkOffsetLeft, 0.0, "Extra distance from the left edge, applied to *-left positions")
	register(key.WatermarkOffsetRight, 0.0, "Extra distance from the right edge, applied to *-right positions")
	register(key.WatermarkOffsetBottom, 0.0, "Extra distance from the bottom edge, applied to bottom-* positions")
	register(key.WatermarkColor, "FFFFFF", "Watermark color as RRGGBB. Opaque to the placement logic")
	register(key.WatermarkFontSize, 28, "Watermark font size in OSD units")
	register(key.OverlayHideDelay, 3000, "Idle time before the control bar starts fading out")
	register(key.OverlayRevealFade, 200, "Duration of the control bar fade-in")
	register(key.OverlayHideFade, 400, "Duration of the control bar fade-out")
	register(key.OverlayDoubleTapWindow, 300, "Maximum gap between two taps to count as a double tap")
	register(key.OverlaySeekStep, 10, "Seconds skipped by a double tap or a seek icon")
	register(key.OverlaySeekFlash, 800, "How long the directional seek icon stays fully visible")
	register(key.OverlayClusterFlash, 1000, "How long the big icon cluster stays fully visible after a single tap")
	register(key.OverlayIconFade, 500, "Fade-out duration shared by all transient icons")
	register(key.OverlayDecoration, "", "Optional decoration line rendered over the video, below the watermark")
	register(key.FullscreenResumeOnExit, false, "Always resume playback when leaving fullscreen, even if it was paused")
	register(key.FullscreenAutoRotate, false, "Lock landscape orientation while fullscreen (only on platforms that support it)")
	register(key.FullscreenOnEnter, "", "Shell command executed after entering fullscreen")
	register(key.FullscreenOnExit, "", "Shell command executed after leaving fullscreen")
	register(key.PlayerInlineGeometry, "640x360", "Window geometry of the inline surface, WxH")
	register(key.PlayerStartMuted, false, "Start playback with audio muted")
	register(key.PlayerCache, true, "Let mpv cache the source so both surfaces share warm data")
	register(key.PlayerExtraArgs, []string{}, "Additional arguments passed to every mpv surface")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIShowPreview, true, "Show a schematic preview of the active surface with the watermark placement")
	register(key.TUIMouse, true, "Accept mouse clicks and drags as gestures")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
