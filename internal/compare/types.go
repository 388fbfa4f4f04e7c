// Shared value types for the comparison core
package compare

import (
	"fmt"
	"math"
	"strings"
)

// Direction selects the axis and sense along which the wipe boundary advances
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

var directionNames = map[Direction]string{
	LeftToRight: "Left to Right",
	RightToLeft: "Right to Left",
	TopToBottom: "Top to Bottom",
	BottomToTop: "Bottom to Top",
}

// Directions lists every direction in menu order.
func Directions() []Direction {
	return []Direction{LeftToRight, RightToLeft, TopToBottom, BottomToTop}
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Horizontal reports whether the boundary moves along the X axis.
func (d Direction) Horizontal() bool {
	return d == LeftToRight || d == RightToLeft
}

// ParseDirection accepts display names ("Left to Right") as well as compact
// config spellings ("left-to-right", "ltr").
func ParseDirection(s string) (Direction, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)

	switch key {
	case "lefttoright", "ltr":
		return LeftToRight, nil
	case "righttoleft", "rtl":
		return RightToLeft, nil
	case "toptobottom", "ttb":
		return TopToBottom, nil
	case "bottomtotop", "btt":
		return BottomToTop, nil
	}
	return LeftToRight, fmt.Errorf("unknown direction: %q", s)
}

// Mode is the active comparison technique
type Mode int

const (
	Wipe Mode = iota
	Dissolve
)

func (m Mode) String() string {
	switch m {
	case Wipe:
		return "Wipe"
	case Dissolve:
		return "Dissolve"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "wipe" or "dissolve", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wipe":
		return Wipe, nil
	case "dissolve":
		return Dissolve, nil
	}
	return Wipe, fmt.Errorf("unknown compare mode: %q", s)
}

// Vec is a point or offset in viewport units
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }

// Size is a width/height pair in viewport units
type Size struct {
	W, H float64
}

// Empty reports whether the size has no area.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Center returns the midpoint of a box of this size anchored at the origin.
func (s Size) Center() Vec {
	return Vec{s.W / 2, s.H / 2}
}

// Rect is an axis-aligned rectangle; Min is inclusive, Max exclusive
type Rect struct {
	Min, Max Vec
}

// RectAt builds the rectangle with top-left corner origin and the given size.
func RectAt(origin Vec, size Size) Rect {
	return Rect{Min: origin, Max: Vec{origin.X + size.W, origin.Y + size.H}}
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Dx() <= 0 || r.Dy() <= 0
}

// Contains reports whether p lies inside the half-open rectangle.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
