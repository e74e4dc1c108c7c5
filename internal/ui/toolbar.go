package ui

import (
	"image"
	"image/color"
	"sort"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/flowpad/flowpad/internal/canvas"
	"github.com/flowpad/flowpad/internal/config"
	"github.com/flowpad/flowpad/internal/geom"
	"github.com/flowpad/flowpad/internal/graph"
)

// Toolbar offers one add-button per configured node type plus view and
// save controls.
type Toolbar struct {
	cfg *config.Config
	cv  *canvas.Canvas

	types    []string
	addBtns  map[string]*widget.Clickable
	saveBtn  widget.Clickable
	resetBtn widget.Clickable

	// OnSave is invoked when the save button is clicked.
	OnSave func()
}

// NewToolbar builds a toolbar for the configured node palette.
func NewToolbar(cfg *config.Config, cv *canvas.Canvas) *Toolbar {
	types := make([]string, 0, len(cfg.NodeTypes))
	for name := range cfg.NodeTypes {
		types = append(types, name)
	}
	sort.Strings(types)

	btns := make(map[string]*widget.Clickable, len(types))
	for _, name := range types {
		btns[name] = new(widget.Clickable)
	}
	return &Toolbar{cfg: cfg, cv: cv, types: types, addBtns: btns}
}

// Layout renders the toolbar and applies clicks.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := 48
	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 38, G: 41, B: 46, A: 255}, clip.Rect(rect).Op())

	t.handleClicks(gtx)

	children := make([]layout.FlexChild, 0, len(t.types)+2)
	for _, name := range t.types {
		btn := t.addBtns[name]
		label := "+ " + name
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Right: unit.Dp(6)}.Layout(gtx, material.Button(th, btn, label).Layout)
		}))
	}
	children = append(children,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Right: unit.Dp(6)}.Layout(gtx, material.Button(th, &t.resetBtn, "Reset view").Layout)
		}),
		layout.Rigid(material.Button(th, &t.saveBtn, "Save").Layout),
	)

	return layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx,
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
		})
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	for _, name := range t.types {
		for t.addBtns[name].Clicked(gtx) {
			t.addNode(name)
		}
	}
	for t.resetBtn.Clicked(gtx) {
		t.cv.View.Reset()
	}
	for t.saveBtn.Clicked(gtx) {
		if t.OnSave != nil {
			t.OnSave()
		}
	}
}

// addNode drops a new node of the given type near the view center.
func (t *Toolbar) addNode(typ string) {
	center := t.cv.View.Transform.World(geom.Pt{X: 480, Y: 320})
	n := t.cv.Graph.AddNode(graph.Node{
		Type:    typ,
		X:       center.X,
		Y:       center.Y,
		Payload: t.cfg.Payload(typ),
	})
	if n != nil {
		t.cv.Selected = n.ID
	}
}
