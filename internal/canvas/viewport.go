package canvas

import "github.com/flowpad/flowpad/internal/geom"

// Viewport owns the pan/zoom transform. All inputs are sanitized by
// clamping; there are no error conditions.
type Viewport struct {
	Transform geom.Transform

	MinScale float64
	MaxScale float64
	// ZoomStep converts wheel delta into a scale change.
	ZoomStep float64
}

// NewViewport creates a viewport at the identity transform with the
// given zoom bounds.
func NewViewport(minScale, maxScale float64) *Viewport {
	return &Viewport{
		Transform: geom.Identity(),
		MinScale:  minScale,
		MaxScale:  maxScale,
		ZoomStep:  0.001,
	}
}

// Reset returns to the identity transform.
func (v *Viewport) Reset() {
	v.Transform = geom.Identity()
}

// Wheel consumes a scroll event. With the zoom modifier held, vertical
// delta adjusts the scale (translation fixed); otherwise both deltas pan.
func (v *Viewport) Wheel(dx, dy float64, zoomModifier bool) {
	if zoomModifier {
		v.Transform.Scale += -dy * v.ZoomStep
		v.Transform.ClampScale(v.MinScale, v.MaxScale)
		return
	}
	v.Transform.TX += -dx
	v.Transform.TY += -dy
}

// PanDrag adds a raw screen-space movement delta to the translation.
// Panning is intentionally not scaled.
func (v *Viewport) PanDrag(dx, dy float64) {
	v.Transform.TX += dx
	v.Transform.TY += dy
}

// ZoomAt multiplies the scale by factor keeping the world point under
// the given screen position fixed. The clamp contract is the same as
// Wheel's.
func (v *Viewport) ZoomAt(factor float64, center geom.Pt) {
	world := v.Transform.World(center)

	v.Transform.Scale *= factor
	v.Transform.ClampScale(v.MinScale, v.MaxScale)

	after := v.Transform.Screen(world)
	v.Transform.TX += center.X - after.X
	v.Transform.TY += center.Y - after.Y
}
