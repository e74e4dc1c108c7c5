// Package ui implements the Gio-based editor front-end over the canvas
// engine.
package ui

import (
	"fmt"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/widget/material"

	"github.com/flowpad/flowpad/internal/canvas"
	"github.com/flowpad/flowpad/internal/config"
	"github.com/flowpad/flowpad/internal/graph"
	"github.com/flowpad/flowpad/internal/setup"
)

// App is the editor application.
type App struct {
	cfg     *config.Config
	cv      *canvas.Canvas
	theme   *material.Theme
	editor  *Editor
	toolbar *Toolbar

	// path is the setup file being edited; empty for an unsaved setup.
	path string
}

// NewApp creates an editor over the given canvas.
func NewApp(cfg *config.Config, cv *canvas.Canvas, path string) *App {
	a := &App{
		cfg:     cfg,
		cv:      cv,
		theme:   material.NewTheme(),
		editor:  NewEditor(cv),
		toolbar: NewToolbar(cfg, cv),
		path:    path,
	}
	a.toolbar.OnSave = func() {
		if err := a.Save(); err != nil {
			slog.Error("save failed", "path", a.path, "error", err)
		}
	}
	return a
}

// LoadSetup reads a setup file into a fresh canvas. A missing file
// yields an empty canvas so `flowpad edit new.json` just works.
func LoadSetup(cfg *config.Config, path string) (*canvas.Canvas, error) {
	view := canvas.NewViewport(cfg.Canvas.MinScale, cfg.Canvas.MaxScale)
	view.ZoomStep = cfg.Canvas.ZoomStep

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return canvas.New(graph.New(cfg.Rules()), view), nil
		}
		return nil, fmt.Errorf("read setup: %w", err)
	}

	doc, err := setup.Decode(data)
	if err != nil {
		return nil, err
	}
	g, tr := doc.Restore(cfg.Rules())
	view.Transform = tr
	view.Transform.ClampScale(cfg.Canvas.MinScale, cfg.Canvas.MaxScale)
	return canvas.New(g, view), nil
}

// Save writes the current setup back to its file.
func (a *App) Save() error {
	if a.path == "" {
		a.path = "setup.json"
	}
	data, err := setup.Snapshot(a.cv.Graph, a.cv.View.Transform).Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.path, data, 0o644); err != nil {
		return fmt.Errorf("write setup: %w", err)
	}
	slog.Info("setup saved", "path", a.path, "nodes", a.cv.Graph.Len())
	return nil
}

// Run drives the window event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	tag := new(int)

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKey(ke)
				}
			}
			event.Op(gtx.Ops, tag)

			a.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (a *App) handleKey(e key.Event) {
	switch e.Name {
	case "R":
		a.cv.View.Reset()
	case key.NameDeleteBackward, key.NameDeleteForward:
		a.cv.DeleteSelected()
	case "S":
		if e.Modifiers.Contain(key.ModCtrl) {
			if err := a.Save(); err != nil {
				slog.Error("save failed", "path", a.path, "error", err)
			}
		}
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return a.editor.Layout(gtx)
		}),
	)
}
