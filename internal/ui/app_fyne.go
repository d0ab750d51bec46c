//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"textcanvas/internal/config"
	"textcanvas/internal/crash"
	"textcanvas/internal/editor"
	"textcanvas/internal/geom"
	"textcanvas/internal/gesture"
	applog "textcanvas/internal/log"
	"textcanvas/internal/render"
	"textcanvas/internal/textlayout"
	"textcanvas/internal/textstyle"
	"textcanvas/internal/version"
)

// Run starts the desktop editor and blocks until the window closes.
func Run(cfg config.AppConfig) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))

	provider, err := textlayout.ProviderFor(cfg.Panel.FontFile, cfg.Panel.FontFiles)
	if err != nil {
		l.Warn("font file unusable, using built-in fonts", slog.Any("err", err))
		provider, _ = textlayout.ProviderFor("", nil)
	}
	ed := editor.New(editor.OptionsFromConfig(cfg, provider))
	defer crash.Recover(ed)

	fyneApp := app.NewWithID("textcanvas")
	w := fyneApp.NewWindow("Text Canvas")
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 1000), 640)
	winH := max(prefs.IntWithFallback("window.height", 720), 480)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	tc := NewTextCanvas(ed, fyne.NewSize(cfg.Canvas.Width, cfg.Canvas.Height))
	panel := newControlPanel(ed, cfg.Panel.Fonts, w)
	status := widget.NewLabel("Ready")

	tc.OnEditText = func(el *editor.Element) {
		entry := widget.NewMultiLineEntry()
		entry.SetText(el.Text.Content)
		dialog.ShowForm("Edit Text", "Apply", "Cancel", []*widget.FormItem{widget.NewFormItem("Text", entry)}, func(ok bool) {
			if ok {
				ed.SetContent(el.ID, entry.Text)
			}
		}, w)
	}

	var lastActive *editor.Element
	ed.OnChange(func() {
		// The panel follows selection changes only, so typing into the
		// size field is not overwritten while an element stays active.
		if a := ed.Active(); a != lastActive {
			lastActive = a
			if a != nil {
				panel.sync()
			}
		}
		panel.showColor(ed.Panel().Color)
		status.SetText(statusText(ed))
		tc.Refresh()
	})

	w.SetContent(container.NewBorder(panel.toolbar, status, nil, nil, tc))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		l.Info("UI closed", slog.Int("elements", len(ed.Elements())))
	})
	w.ShowAndRun()
	return nil
}

func statusText(ed *editor.Editor) string {
	s := fmt.Sprintf("%d text elements", len(ed.Elements()))
	if a := ed.Active(); a != nil {
		s += fmt.Sprintf(" | selected %q at (%.0f, %.0f) %.0fx%.0f", a.Text.Content, a.Left, a.Top, a.Width, a.Height)
	}
	return s
}

// controlPanel is the toolbar with the add button and the style inputs.
type controlPanel struct {
	ed      *editor.Editor
	font    *widget.Select
	size    *widget.Entry
	swatch  *canvas.Rectangle
	toolbar fyne.CanvasObject
	syncing bool
}

func newControlPanel(ed *editor.Editor, fonts []string, w fyne.Window) *controlPanel {
	p := &controlPanel{ed: ed}
	p.font = widget.NewSelect(fonts, func(s string) {
		if !p.syncing {
			ed.SetFontFamily(s)
		}
	})
	p.size = widget.NewEntry()
	p.size.OnChanged = func(s string) {
		if p.syncing {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			return
		}
		ed.SetFontSize(n)
	}
	p.swatch = canvas.NewRectangle(color.Black)
	p.swatch.SetMinSize(fyne.NewSize(24, 24))
	p.swatch.StrokeColor = color.Gray{Y: 120}
	p.swatch.StrokeWidth = 1

	btnColor := widget.NewButton("Color", func() {
		picker := dialog.NewColorPicker("Text Color", "Choose the text color", func(c color.Color) {
			ed.SetColor(textstyle.FromColor(c))
		}, w)
		picker.Advanced = true
		picker.Show()
	})
	btnAdd := widget.NewButton("Add Text", func() { ed.CreateNewText() })
	btnDelete := widget.NewButton("Delete", func() {
		if a := ed.Active(); a != nil {
			ed.RemoveElement(a.ID)
		}
	})
	sizeBox := container.NewGridWrap(fyne.NewSize(64, p.size.MinSize().Height), p.size)
	p.toolbar = container.NewHBox(
		btnAdd, widget.NewSeparator(),
		widget.NewLabel("Font"), p.font,
		widget.NewLabel("Size"), sizeBox,
		btnColor, container.NewCenter(p.swatch),
		widget.NewSeparator(), btnDelete,
	)
	p.sync()
	return p
}

// sync copies the editor's panel state into the widgets without feeding it back.
func (p *controlPanel) sync() {
	p.syncing = true
	defer func() { p.syncing = false }()
	pan := p.ed.Panel()
	if p.font.Selected != pan.FontFamily {
		p.font.SetSelected(pan.FontFamily)
	}
	if sz := strconv.Itoa(pan.FontSizePx); p.size.Text != sz {
		p.size.SetText(sz)
	}
	p.showColor(pan.Color)
}

func (p *controlPanel) showColor(hex string) {
	c, err := textstyle.ToRGBA(hex)
	if err != nil {
		c = color.RGBA{A: 255}
	}
	if p.swatch.FillColor != color.Color(c) {
		p.swatch.FillColor = c
		p.swatch.Refresh()
	}
}

// TextCanvas is the drawing surface. It forwards pointer input to the editor
// and paints the scene with the PNG renderer.
type TextCanvas struct {
	widget.BaseWidget
	ed      *editor.Editor
	pref    fyne.Size
	lastPos fyne.Position
	// OnEditText is called on a double tap over an element.
	OnEditText func(el *editor.Element)
}

var (
	_ desktop.Mouseable   = (*TextCanvas)(nil)
	_ fyne.Draggable      = (*TextCanvas)(nil)
	_ fyne.Tappable       = (*TextCanvas)(nil)
	_ fyne.DoubleTappable = (*TextCanvas)(nil)
)

func NewTextCanvas(ed *editor.Editor, pref fyne.Size) *TextCanvas {
	c := &TextCanvas{ed: ed, pref: pref}
	c.ExtendBaseWidget(c)
	return c
}

func (c *TextCanvas) CreateRenderer() fyne.WidgetRenderer {
	raster := canvas.NewRaster(func(_, _ int) image.Image {
		return render.Image(c.ed, render.Options{Provider: c.ed.Provider(), Padding: c.ed.Padding(), Handles: true})
	})
	return &textCanvasRenderer{tc: c, raster: raster, objects: []fyne.CanvasObject{raster}}
}

func toPointer(pos fyne.Position) gesture.Pointer {
	return gesture.Pointer{Pos: geom.Pt{X: pos.X, Y: pos.Y}}
}

func (c *TextCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.lastPos = e.Position
	c.ed.PointerDown(toPointer(e.Position))
}

func (c *TextCanvas) MouseUp(e *desktop.MouseEvent) {
	c.ed.PointerUp(toPointer(e.Position))
}

func (c *TextCanvas) Dragged(e *fyne.DragEvent) {
	c.lastPos = e.Position
	c.ed.PointerMove(toPointer(e.Position))
}

// DragEnd releases at the last drag position; the following MouseUp is then a no-op.
func (c *TextCanvas) DragEnd() { c.ed.PointerUp(toPointer(c.lastPos)) }

func (c *TextCanvas) Tapped(e *fyne.PointEvent) { c.ed.Click(geom.Pt{X: e.Position.X, Y: e.Position.Y}) }

func (c *TextCanvas) DoubleTapped(e *fyne.PointEvent) {
	t := c.ed.HitTest(geom.Pt{X: e.Position.X, Y: e.Position.Y})
	if t.Element != nil && c.OnEditText != nil {
		c.OnEditText(t.Element)
	}
}

type textCanvasRenderer struct {
	tc      *TextCanvas
	raster  *canvas.Raster
	objects []fyne.CanvasObject
}

func (r *textCanvasRenderer) Destroy()                     {}
func (r *textCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *textCanvasRenderer) MinSize() fyne.Size           { return fyne.NewSize(200, 150) }
func (r *textCanvasRenderer) Refresh()                     { r.Layout(r.tc.Size()); canvas.Refresh(r.raster) }

// Layout keeps the editor's canvas size, which bounds new placements, equal
// to the visible area.
func (r *textCanvasRenderer) Layout(size fyne.Size) {
	if size.Width <= 0 || size.Height <= 0 {
		size = r.tc.pref
	}
	r.raster.Resize(size)
	r.raster.Move(fyne.NewPos(0, 0))
	r.tc.ed.SetCanvasSize(size.Width, size.Height)
}
