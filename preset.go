package inkflow

import (
	"fmt"
	"strings"
)

// Position is one of the nine origin presets on a 3×3 grid.
type Position int

const (
	TopLeft Position = iota
	TopCenter
	TopRight
	LeftCenter
	Center
	RightCenter
	BottomLeft
	BottomCenter
	BottomRight
)

var positionInfo = [...]struct {
	label, name string
	x, y        float64
}{
	TopLeft:      {"TL", "TopLeft", 0.0, 0.0},
	TopCenter:    {"TC", "TopCenter", 0.5, 0.0},
	TopRight:     {"TR", "TopRight", 1.0, 0.0},
	LeftCenter:   {"LC", "LeftCenter", 0.0, 0.5},
	Center:       {"C", "Center", 0.5, 0.5},
	RightCenter:  {"RC", "RightCenter", 1.0, 0.5},
	BottomLeft:   {"BL", "BottomLeft", 0.0, 1.0},
	BottomCenter: {"BC", "BottomCenter", 0.5, 1.0},
	BottomRight:  {"BR", "BottomRight", 1.0, 1.0},
}

// Presets returns the nine positions in row-major order.
func Presets() []Position {
	return []Position{
		TopLeft, TopCenter, TopRight,
		LeftCenter, Center, RightCenter,
		BottomLeft, BottomCenter, BottomRight,
	}
}

// Valid reports whether p is one of the nine defined positions.
func (p Position) Valid() bool {
	return p >= TopLeft && p <= BottomRight
}

// Center returns the normalized origin of the position.
// Invalid positions map to the surface center.
func (p Position) Center() (x, y float64) {
	if !p.Valid() {
		return DefaultCenterX, DefaultCenterY
	}
	info := positionInfo[p]
	return info.x, info.y
}

// Label returns the short label ("TL", "C", ...).
func (p Position) Label() string {
	if !p.Valid() {
		return "?"
	}
	return positionInfo[p].label
}

// String returns the position name.
func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return positionInfo[p].name
}

// ParsePosition resolves a label ("BR") or name ("BottomRight"),
// case-insensitively.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	for _, p := range Presets() {
		info := positionInfo[p]
		if strings.EqualFold(s, info.label) || strings.EqualFold(s, info.name) {
			return p, nil
		}
	}
	return Center, fmt.Errorf("inkflow: unknown position %q", s)
}

// Preset returns the default configuration with its origin at p.
func Preset(p Position) Config {
	return MustConfig(WithPosition(p))
}
