package ui

import (
	"image"
	"testing"

	"gioui.org/f32"
	"gioui.org/io/input"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/flowpad/flowpad/internal/canvas"
	"github.com/flowpad/flowpad/internal/config"
	"github.com/flowpad/flowpad/internal/graph"
)

// scrollEditor lays the editor out once to register its input filter,
// queues one scroll event through a headless router, and lays out again
// so the event reaches the canvas.
func scrollEditor(t *testing.T, ev pointer.Event) *canvas.Canvas {
	t.Helper()

	cfg := config.Default()
	cv := canvas.New(graph.New(cfg.Rules()), canvas.NewViewport(cfg.Canvas.MinScale, cfg.Canvas.MaxScale))
	cv.View.ZoomStep = cfg.Canvas.ZoomStep
	e := NewEditor(cv)

	router := new(input.Router)
	var ops op.Ops
	gtx := layout.Context{
		Ops:         &ops,
		Constraints: layout.Exact(image.Pt(800, 600)),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Source:      router.Source(),
	}

	e.Layout(gtx)
	router.Frame(&ops)

	ev.Kind = pointer.Scroll
	router.Queue(ev)

	ops.Reset()
	e.Layout(gtx)
	router.Frame(&ops)

	return cv
}

func TestEditorScrollPansViewport(t *testing.T) {
	cv := scrollEditor(t, pointer.Event{
		Position: f32.Pt(100, 100),
		Scroll:   f32.Pt(30, 120),
	})

	tr := cv.View.Transform
	if tr.TX != -30 || tr.TY != -120 {
		t.Fatalf("translation = (%v, %v), want (-30, -120)", tr.TX, tr.TY)
	}
	if tr.Scale != 1 {
		t.Fatalf("scale = %v, want 1 (no zoom without the modifier)", tr.Scale)
	}
}

func TestEditorCtrlScrollZooms(t *testing.T) {
	cv := scrollEditor(t, pointer.Event{
		Position:  f32.Pt(100, 100),
		Scroll:    f32.Pt(0, 120),
		Modifiers: key.ModCtrl,
	})

	tr := cv.View.Transform
	if tr.Scale >= 1 {
		t.Fatalf("scale = %v, want < 1 after scrolling down with ctrl", tr.Scale)
	}
	if tr.TX != 0 || tr.TY != 0 {
		t.Fatalf("translation = (%v, %v), want (0, 0): zoom must not pan", tr.TX, tr.TY)
	}
}
