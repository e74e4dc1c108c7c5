package ui

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/flowpad/flowpad/internal/canvas"
	"github.com/flowpad/flowpad/internal/geom"
	"github.com/flowpad/flowpad/internal/ui/draw"
)

// Editor is the pannable canvas area. It translates Gio pointer events
// into canvas gestures and renders the graph.
type Editor struct {
	cv *canvas.Canvas
}

// NewEditor creates the editor widget over a canvas.
func NewEditor(cv *canvas.Canvas) *Editor {
	return &Editor{cv: cv}
}

// Layout handles input and renders one frame.
func (e *Editor) Layout(gtx layout.Context) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 26, G: 29, B: 34, A: 255})

	e.handlePointerEvents(gtx)

	tr := e.cv.View.Transform
	draw.Grid(gtx, tr, 50, draw.ColorGrid)

	rules := e.cv.Graph.Rules()
	for _, c := range e.cv.Graph.Connections() {
		from := e.cv.Graph.Node(c.From)
		to := e.cv.Graph.Node(c.To)
		if from == nil || to == nil {
			continue
		}
		draw.Wire(gtx,
			canvas.OutPortPosNamed(rules, from, c.FromPort),
			canvas.InputPortPos(to),
			tr, draw.ColorWire)
	}

	if fixed, loose, ok := e.cv.PendingWire(); ok {
		draw.Wire(gtx, fixed, loose, tr, draw.ColorWirePending)
	}

	hover := e.cv.Hover()
	for _, n := range e.cv.Graph.Nodes() {
		draw.Node(gtx, n, rules, tr, n.ID == e.cv.Selected, hover)
	}

	return layout.Dimensions{Size: bounds}
}

func (e *Editor) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, e)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: e,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll | pointer.Move,
			// Scroll deltas are clamped to the declared range; without
			// one they arrive as zero.
			ScrollX: pointer.ScrollRange{Min: -1e6, Max: 1e6},
			ScrollY: pointer.ScrollRange{Min: -1e6, Max: 1e6},
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		e.handlePointerEvent(pe)
	}
}

func (e *Editor) handlePointerEvent(ev pointer.Event) {
	pt := geom.Pt{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}

	switch ev.Kind {
	case pointer.Press:
		// Secondary/middle button or a held modifier pans from anywhere.
		pan := ev.Buttons.Contain(pointer.ButtonSecondary) ||
			ev.Buttons.Contain(pointer.ButtonTertiary) ||
			ev.Modifiers.Contain(key.ModAlt)
		e.cv.PointerDown(pt, pan)

	case pointer.Drag, pointer.Move:
		e.cv.PointerMove(pt)

	case pointer.Release, pointer.Cancel:
		e.cv.PointerUp(pt)

	case pointer.Scroll:
		e.cv.Wheel(float64(ev.Scroll.X), float64(ev.Scroll.Y),
			ev.Modifiers.Contain(key.ModCtrl))
	}
}
