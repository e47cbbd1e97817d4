package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fastvideo-cli/fastvideo/key"
	"github.com/fastvideo-cli/fastvideo/overlay"
	"github.com/fastvideo-cli/fastvideo/watermark"
	"github.com/spf13/viper"
)

// Watermark is the label configuration. It is fixed for the whole session.
type Watermark struct {
	Text     string
	Position watermark.Position
	Offsets  watermark.Offsets
	Color    string
	FontSize int
}

// Config is everything a Session needs besides its collaborators.
type Config struct {
	Source string
	Title  string

	Watermark  Watermark
	Decoration string
	Timing     overlay.Timing

	ResumeOnExit bool
	AutoRotate   bool
	OnEnter      string
	OnExit       string

	Geometry  string
	Cache     bool
	Muted     bool
	ExtraArgs []string
}

func millis(k string) time.Duration {
	return time.Duration(viper.GetInt(k)) * time.Millisecond
}

// FromViper reads the configuration for source from the global settings.
func FromViper(source string) (Config, error) {
	position, err := watermark.ParsePosition(viper.GetString(key.WatermarkPosition))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", key.WatermarkPosition, err)
	}

	return Config{
		Source: source,
		Title:  source,
		Watermark: Watermark{
			Text:     viper.GetString(key.WatermarkText),
			Position: position,
			Offsets: watermark.Offsets{
				Top:    viper.GetFloat64(key.WatermarkOffsetTop),
				Left:   viper.GetFloat64(key.WatermarkOffsetLeft),
				Right:  viper.GetFloat64(key.WatermarkOffsetRight),
				Bottom: viper.GetFloat64(key.WatermarkOffsetBottom),
			},
			Color:    viper.GetString(key.WatermarkColor),
			FontSize: viper.GetInt(key.WatermarkFontSize),
		},
		Decoration: viper.GetString(key.OverlayDecoration),
		Timing: overlay.Timing{
			HideDelay:       millis(key.OverlayHideDelay),
			RevealFade:      millis(key.OverlayRevealFade),
			HideFade:        millis(key.OverlayHideFade),
			DoubleTapWindow: millis(key.OverlayDoubleTapWindow),
			SeekFlash:       millis(key.OverlaySeekFlash),
			ClusterFlash:    millis(key.OverlayClusterFlash),
			IconFade:        millis(key.OverlayIconFade),
			SeekStep:        viper.GetFloat64(key.OverlaySeekStep),
		},
		ResumeOnExit: viper.GetBool(key.FullscreenResumeOnExit),
		AutoRotate:   viper.GetBool(key.FullscreenAutoRotate),
		OnEnter:      viper.GetString(key.FullscreenOnEnter),
		OnExit:       viper.GetString(key.FullscreenOnExit),
		Geometry:     viper.GetString(key.PlayerInlineGeometry),
		Cache:        viper.GetBool(key.PlayerCache),
		Muted:        viper.GetBool(key.PlayerStartMuted),
		ExtraArgs:    viper.GetStringSlice(key.PlayerExtraArgs),
	}, nil
}

// ParseGeometry reads the "WxH" prefix of an mpv geometry string.
func ParseGeometry(geometry string) (width, height float64, ok bool) {
	size, _, _ := strings.Cut(geometry, "+")
	w, h, found := strings.Cut(strings.ToLower(size), "x")
	if !found {
		return 0, 0, false
	}

	wi, err := strconv.Atoi(w)
	if err != nil || wi <= 0 {
		return 0, 0, false
	}

	hi, err := strconv.Atoi(h)
	if err != nil || hi <= 0 {
		return 0, 0, false
	}

	return float64(wi), float64(hi), true
}
