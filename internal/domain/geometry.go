package domain

import "fmt"

// Point is a screen position. Which coordinate space it lives in depends
// on where it came from: window enumeration and click injection use a
// top-left origin with Y growing downward ("injection space"), while the
// pointer-position service reports a bottom-left origin with Y growing
// upward ("pointer space").
type Point struct {
	X float64
	Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y)
}

type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Monitor describes one display. Frame is given in injection space.
// A monitor's own frame occupies the same X/Y ranges in both spaces, so
// containment checks are valid against points from either space.
type Monitor struct {
	Frame   Rect
	Primary bool
}

// ToInjectionSpace converts a pointer-space point to injection space by
// flipping the vertical axis within the monitor that contains the point.
// Points outside every monitor fall back to the primary monitor's
// geometry; the conversion never fails.
func ToInjectionSpace(p Point, monitors []Monitor) Point {
	return flipVertical(p, monitorFor(p, monitors))
}

// ToPointerSpace is the exact inverse of ToInjectionSpace for any point
// inside a monitor's bounds.
func ToPointerSpace(p Point, monitors []Monitor) Point {
	return flipVertical(p, monitorFor(p, monitors))
}

// flipVertical mirrors the Y coordinate across the monitor's horizontal
// midline. The flip is an involution, which is what makes the two
// conversions exact inverses of each other.
func flipVertical(p Point, m Monitor) Point {
	offset := p.Y - m.Frame.Y
	return Point{X: p.X, Y: m.Frame.Y + m.Frame.Height - offset}
}

// monitorFor resolves the monitor whose geometry governs a conversion.
// Interior points are unambiguous. A point on a horizontal frame edge is
// resolved to the monitor ABOVE it: the flip maps a monitor's top edge
// onto its own bottom edge, and with vertically stacked monitors that
// row also belongs to the frame below, so a plain containment lookup
// would invert the point within the wrong frame.
func monitorFor(p Point, monitors []Monitor) Monitor {
	for _, m := range monitors {
		if m.Frame.Contains(p) && p.Y > m.Frame.Y {
			return m
		}
	}
	for _, m := range monitors {
		if p.X >= m.Frame.X && p.X < m.Frame.X+m.Frame.Width && p.Y == m.Frame.Y+m.Frame.Height {
			return m
		}
	}
	for _, m := range monitors {
		if m.Frame.Contains(p) {
			return m
		}
	}
	return PrimaryMonitor(monitors)
}

func PrimaryMonitor(monitors []Monitor) Monitor {
	for _, m := range monitors {
		if m.Primary {
			return m
		}
	}
	if len(monitors) > 0 {
		return monitors[0]
	}
	return Monitor{}
}

// OnAnyMonitor reports whether the point lies inside at least one
// monitor's frame. Configured destination points that fail this check are
// configuration errors, never silently clamped.
func OnAnyMonitor(p Point, monitors []Monitor) bool {
	for _, m := range monitors {
		if m.Frame.Contains(p) {
			return true
		}
	}
	return false
}
