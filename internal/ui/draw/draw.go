// Package draw renders the canvas: grid, nodes, ports, and wires.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/flowpad/flowpad/internal/canvas"
	"github.com/flowpad/flowpad/internal/geom"
	"github.com/flowpad/flowpad/internal/graph"
)

var (
	ColorNodeBody     = color.NRGBA{R: 48, G: 52, B: 60, A: 255}
	ColorNodeHeader   = color.NRGBA{R: 62, G: 68, B: 80, A: 255}
	ColorNodeSelected = color.NRGBA{R: 255, G: 200, B: 80, A: 255}
	ColorPort         = color.NRGBA{R: 120, G: 170, B: 220, A: 255}
	ColorPortHover    = color.NRGBA{R: 190, G: 225, B: 255, A: 255}
	ColorWire         = color.NRGBA{R: 140, G: 150, B: 165, A: 220}
	ColorWirePending  = color.NRGBA{R: 255, G: 200, B: 80, A: 220}
	ColorHandle       = color.NRGBA{R: 90, G: 98, B: 110, A: 255}
	ColorGrid         = color.NRGBA{R: 40, G: 44, B: 50, A: 255}
)

// HeaderHeight is the node header band in world units.
const HeaderHeight = 26.0

// Grid draws background grid lines at the given world spacing.
func Grid(gtx layout.Context, tr geom.Transform, spacing float64, col color.NRGBA) {
	bounds := gtx.Constraints.Max

	min := tr.World(geom.Pt{})
	max := tr.World(geom.Pt{X: float64(bounds.X), Y: float64(bounds.Y)})

	for x := math.Floor(min.X/spacing) * spacing; x <= max.X; x += spacing {
		sx := tr.Screen(geom.Pt{X: x, Y: min.Y}).X
		if sx >= 0 && sx <= float64(bounds.X) {
			rect := image.Rect(int(sx), 0, int(sx)+1, bounds.Y)
			paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
		}
	}
	for y := math.Floor(min.Y/spacing) * spacing; y <= max.Y; y += spacing {
		sy := tr.Screen(geom.Pt{X: min.X, Y: y}).Y
		if sy >= 0 && sy <= float64(bounds.Y) {
			rect := image.Rect(0, int(sy), bounds.X, int(sy)+1)
			paint.FillShape(gtx.Ops, col, clip.Rect(rect).Op())
		}
	}
}

// Node draws one node: body, header band, ports, and resize handle.
func Node(gtx layout.Context, n *graph.Node, rules graph.Rules, tr geom.Transform, selected bool, hover canvas.Hover) {
	min := tr.Screen(n.Pos())
	max := tr.Screen(geom.Pt{X: n.X + n.W, Y: n.Y + n.H})
	rect := image.Rect(int(min.X), int(min.Y), int(max.X), int(max.Y))

	paint.FillShape(gtx.Ops, ColorNodeBody, clip.Rect(rect).Op())

	headerBottom := tr.Screen(geom.Pt{X: n.X, Y: n.Y + HeaderHeight}).Y
	header := image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, int(headerBottom))
	paint.FillShape(gtx.Ops, ColorNodeHeader, clip.Rect(header).Op())

	if selected {
		border(gtx, rect, ColorNodeSelected, 2)
	}

	handleMin := tr.Screen(geom.Pt{X: n.X + n.W - canvas.HandleSize, Y: n.Y + n.H - canvas.HandleSize})
	handle := image.Rect(int(handleMin.X), int(handleMin.Y), rect.Max.X, rect.Max.Y)
	paint.FillShape(gtx.Ops, ColorHandle, clip.Rect(handle).Op())

	portCol := func(ref canvas.PortRef) color.NRGBA {
		if hover.IsPort && hover.Port == ref {
			return ColorPortHover
		}
		return ColorPort
	}

	circle(gtx, tr.Screen(canvas.InputPortPos(n)), float32(canvas.PortRadius*tr.Scale*0.7),
		portCol(canvas.PortRef{Node: n.ID, Dir: canvas.PortIn}))

	names := canvas.OutPortNames(rules, n)
	for i, name := range names {
		pos := tr.Screen(canvas.OutPortPos(n, i, len(names)))
		circle(gtx, pos, float32(canvas.PortRadius*tr.Scale*0.7),
			portCol(canvas.PortRef{Node: n.ID, Port: name, Dir: canvas.PortOut}))
	}
}

// Wire draws a connection as a horizontal-tangent cubic from the source
// port to the target input.
func Wire(gtx layout.Context, from, to geom.Pt, tr geom.Transform, col color.NRGBA) {
	a := tr.Screen(from)
	b := tr.Screen(to)
	width := float32(2 * tr.Scale)

	// Sample the cubic into short segments.
	bend := math.Abs(b.X-a.X) / 2
	c1 := geom.Pt{X: a.X + bend, Y: a.Y}
	c2 := geom.Pt{X: b.X - bend, Y: b.Y}

	const steps = 24
	prev := a
	for i := 1; i <= steps; i++ {
		t := float64(i) / steps
		p := cubicAt(a, c1, c2, b, t)
		segment(gtx, prev, p, width, col)
		prev = p
	}
}

func cubicAt(p0, p1, p2, p3 geom.Pt, t float64) geom.Pt {
	u := 1 - t
	return geom.Pt{
		X: u*u*u*p0.X + 3*u*u*t*p1.X + 3*u*t*t*p2.X + t*t*t*p3.X,
		Y: u*u*u*p0.Y + 3*u*u*t*p1.Y + 3*u*t*t*p2.Y + t*t*t*p3.Y,
	}
}

func segment(gtx layout.Context, a, b geom.Pt, width float32, col color.NRGBA) {
	dx := float32(b.X - a.X)
	dy := float32(b.Y - a.Y)
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(a.X)+px, float32(a.Y)+py))
	path.LineTo(f32.Pt(float32(b.X)+px, float32(b.Y)+py))
	path.LineTo(f32.Pt(float32(b.X)-px, float32(b.Y)-py))
	path.LineTo(f32.Pt(float32(a.X)-px, float32(a.Y)-py))
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func circle(gtx layout.Context, center geom.Pt, r float32, col color.NRGBA) {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(float32(center.X)+r, float32(center.Y)))

	const segments = 16
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / segments
		path.LineTo(f32.Pt(
			float32(center.X)+r*float32(math.Cos(angle)),
			float32(center.Y)+r*float32(math.Sin(angle)),
		))
	}
	path.Close()
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func border(gtx layout.Context, rect image.Rectangle, col color.NRGBA, w int) {
	paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+w)).Op())
	paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(rect.Min.X, rect.Max.Y-w, rect.Max.X, rect.Max.Y)).Op())
	paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+w, rect.Max.Y)).Op())
	paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(rect.Max.X-w, rect.Min.Y, rect.Max.X, rect.Max.Y)).Op())
}
