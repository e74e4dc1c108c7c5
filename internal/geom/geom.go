// Package geom provides the coordinate math shared by the canvas:
// points, sizes, and the pan/zoom view transform.
package geom

// Pt is a 2D point. Whether it is in screen or world space depends on
// which side of a Transform it sits on.
type Pt struct {
	X, Y float64
}

// Add returns p + q.
func (p Pt) Add(q Pt) Pt {
	return Pt{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Pt) Sub(q Pt) Pt {
	return Pt{X: p.X - q.X, Y: p.Y - q.Y}
}

// Div returns p scaled by 1/s.
func (p Pt) Div(s float64) Pt {
	return Pt{X: p.X / s, Y: p.Y / s}
}

// Size is a width/height pair in world units.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle in world units.
type Rect struct {
	Min Pt
	Max Pt
}

// RectAt builds a rectangle from a top-left corner and a size.
func RectAt(min Pt, sz Size) Rect {
	return Rect{Min: min, Max: Pt{X: min.X + sz.W, Y: min.Y + sz.H}}
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Pt) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Transform is the pan/zoom view transform. A world point w maps to
// screen as w*Scale + (TX, TY).
type Transform struct {
	TX, TY float64
	Scale  float64
}

// Identity returns the neutral transform.
func Identity() Transform {
	return Transform{Scale: 1}
}

// World converts a screen point to world coordinates.
func (t Transform) World(screen Pt) Pt {
	return Pt{
		X: (screen.X - t.TX) / t.Scale,
		Y: (screen.Y - t.TY) / t.Scale,
	}
}

// Screen converts a world point to screen coordinates. Exact inverse of
// World up to floating-point tolerance.
func (t Transform) Screen(world Pt) Pt {
	return Pt{
		X: world.X*t.Scale + t.TX,
		Y: world.Y*t.Scale + t.TY,
	}
}

// ClampScale bounds the scale to [min, max] and returns the result.
func (t *Transform) ClampScale(min, max float64) float64 {
	if t.Scale < min {
		t.Scale = min
	}
	if t.Scale > max {
		t.Scale = max
	}
	return t.Scale
}

// Clamp returns v bounded to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
