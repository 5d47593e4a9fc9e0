package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// ParseMouseButton converts a string flag value to MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// String returns the flag spelling of the button.
func (b MouseButton) String() string {
	switch b {
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return "left"
	}
}

// Bounds represents a screen rectangle.
type Bounds struct {
	X, Y, Width, Height int
}

// Contains reports whether the point (x, y) lies within the rectangle.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// ParseBBox parses a "x,y,w,h" string into a Bounds.
func ParseBBox(s string) (*Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid bbox %q: expected x,y,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid bbox %q: %w", s, err)
		}
		vals[i] = v
	}
	return &Bounds{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// WindowInfo describes a top-level OS window at enumeration time.
// Bounds are a snapshot; consumers needing fresh bounds must re-read them
// through WindowManager.WindowBounds.
type WindowInfo struct {
	Handle    uintptr `yaml:"-"         json:"-"`
	Title     string  `yaml:"title"     json:"title"`
	Bounds    Bounds  `yaml:"-"         json:"-"`
	PID       int     `yaml:"pid"       json:"pid"`
	Visible   bool    `yaml:"visible"   json:"visible"`
	Minimized bool    `yaml:"minimized" json:"minimized"`
}
