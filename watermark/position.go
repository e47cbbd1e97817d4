package watermark

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
)

// Position names the corner or edge a watermark label is pinned to.
type Position int

const (
	TopLeft Position = iota
	TopCenter
	TopRight
	BottomLeft
	BottomCenter
	BottomRight
)

var positionNames = map[Position]string{
	TopLeft:      "top-left",
	TopCenter:    "top-center",
	TopRight:     "top-right",
	BottomLeft:   "bottom-left",
	BottomCenter: "bottom-center",
	BottomRight:  "bottom-right",
}

// ErrUnknownPosition is returned by ParsePosition for names outside Positions.
var ErrUnknownPosition = errors.New("unknown watermark position")

func (p Position) String() string {
	if name, ok := positionNames[p]; ok {
		return name
	}

	return fmt.Sprintf("Position(%d)", int(p))
}

// Top reports whether the label is anchored to the top edge.
func (p Position) Top() bool {
	return p == TopLeft || p == TopCenter || p == TopRight
}

// Horizontal returns the horizontal edge of the position.
func (p Position) Horizontal() Edge {
	switch p {
	case TopLeft, BottomLeft:
		return EdgeLeft
	case TopRight, BottomRight:
		return EdgeRight
	default:
		return EdgeCenter
	}
}

// Positions returns every valid position name in declaration order.
func Positions() []string {
	return lo.Map([]Position{TopLeft, TopCenter, TopRight, BottomLeft, BottomCenter, BottomRight}, func(p Position, _ int) string {
		return p.String()
	})
}

// ParsePosition accepts names like "top-left", case-insensitively.
// Underscores and spaces are treated as dashes.
func ParsePosition(name string) (Position, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("_", "-", " ", "-").Replace(normalized)

	for p, n := range positionNames {
		if n == normalized {
			return p, nil
		}
	}

	return TopLeft, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownPosition, name, strings.Join(Positions(), ", "))
}

func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}

	*p = parsed
	return nil
}

// JSONSchema describes a Position by its names.
func (Position) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "string",
		Enum: lo.ToAnySlice(Positions()),
	}
}
