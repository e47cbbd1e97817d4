// Package icon renders the glyphs used by the control bar and the CLI.
//
// The variant is read from icons.variant on every call so a config change
// applies to the next frame.
package icon

import (
	"github.com/fastvideo-cli/fastvideo/key"
	"github.com/spf13/viper"
)

// Variant is a named glyph set.
type Variant string

const (
	Emoji   Variant = "emoji"
	Nerd    Variant = "nerd"
	Plain   Variant = "plain"
	Kaomoji Variant = "kaomoji"
	Squares Variant = "squares"
)

var variants = []Variant{Emoji, Nerd, Plain, Kaomoji, Squares}

// AvailableVariants lists the variant names accepted by icons.variant.
func AvailableVariants() []string {
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = string(v)
	}
	return names
}

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	kaomoji string
	squares string
}

func (d *iconDef) in(v Variant) string {
	switch v {
	case Emoji:
		return d.emoji
	case Nerd:
		return d.nerd
	case Plain:
		return d.plain
	case Kaomoji:
		return d.kaomoji
	case Squares:
		return d.squares
	}
	return ""
}

// In returns the glyph of i for an explicit variant.
func In(i Icon, v Variant) string {
	d, ok := icons[i]
	if !ok {
		return ""
	}
	return d.in(v)
}

// Get returns the glyph of i for the configured variant, empty when the variant is unknown.
func Get(i Icon) string {
	return In(i, Variant(viper.GetString(key.IconsVariant)))
}
