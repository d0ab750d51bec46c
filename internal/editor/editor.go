/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor is the in-memory model of the text canvas. It owns the
// elements, routes pointer and control-panel events to them and keeps the
// selection and panel consistent. Front ends (the fyne UI, gesture replay)
// only translate their input into calls on an Editor.
//
// An Editor is not safe for concurrent use; drive it from one goroutine.
package editor

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"textcanvas/internal/config"
	"textcanvas/internal/geom"
	"textcanvas/internal/gesture"
	applog "textcanvas/internal/log"
	"textcanvas/internal/textlayout"
	"textcanvas/internal/textstyle"
)

// Options configures an Editor. Zero values fall back to the config defaults.
type Options struct {
	CanvasW, CanvasH float32
	Content          string
	FootprintW       float32
	FootprintH       float32
	Padding          float32
	Highlight        Outline
	MinSize          float32
	Panel            textstyle.Panel
	Provider         textlayout.Provider
	Rand             *rand.Rand
}

// OptionsFromConfig maps the user configuration onto editor options.
func OptionsFromConfig(cfg config.AppConfig, provider textlayout.Provider) Options {
	return Options{
		CanvasW:    cfg.Canvas.Width,
		CanvasH:    cfg.Canvas.Height,
		Content:    cfg.Element.Content,
		FootprintW: cfg.Element.FootprintW,
		FootprintH: cfg.Element.FootprintH,
		Padding:    cfg.Element.Padding,
		Highlight:  Outline{Width: cfg.Highlight.Width, Color: cfg.Highlight.Color},
		MinSize:    cfg.Gesture.MinSize,
		Panel: textstyle.Panel{
			FontFamily: cfg.Panel.FontFamily,
			FontSizePx: cfg.Panel.FontSizePx,
			Color:      cfg.Panel.Color,
		},
		Provider: provider,
	}
}

func (o *Options) applyDefaults() {
	d := OptionsFromConfig(config.Defaults(), nil)
	if o.CanvasW <= 0 {
		o.CanvasW = d.CanvasW
	}
	if o.CanvasH <= 0 {
		o.CanvasH = d.CanvasH
	}
	if o.Content == "" {
		o.Content = d.Content
	}
	if o.FootprintW <= 0 {
		o.FootprintW = d.FootprintW
	}
	if o.FootprintH <= 0 {
		o.FootprintH = d.FootprintH
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.Highlight.Width <= 0 {
		o.Highlight = d.Highlight
	}
	if o.Panel == (textstyle.Panel{}) {
		o.Panel = d.Panel
	}
	if o.Provider == nil {
		o.Provider = textlayout.BasicProvider{}
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// Editor holds the canvas elements, the selection and the control panel.
type Editor struct {
	opts     Options
	canvasW  float32
	canvasH  float32
	elements []*Element
	panel    textstyle.Panel
	sel      *Selection
	bus      gesture.Bus
	log      *slog.Logger
	onChange []func()
}

func New(opts Options) *Editor {
	opts.applyDefaults()
	e := &Editor{
		opts:    opts,
		canvasW: opts.CanvasW,
		canvasH: opts.CanvasH,
		panel:   opts.Panel,
		log:     applog.WithComponent("editor"),
	}
	e.sel = newSelection(opts.Highlight, &e.panel)
	return e
}

// OnChange registers fn to run after every mutation, e.g. to refresh a view.
func (e *Editor) OnChange(fn func()) { e.onChange = append(e.onChange, fn) }

func (e *Editor) changed() {
	for _, fn := range e.onChange {
		fn()
	}
}

// SetCanvasSize records the visible canvas size used for new placements.
func (e *Editor) SetCanvasSize(w, h float32) { e.canvasW, e.canvasH = w, h }

func (e *Editor) CanvasSize() (w, h float32) { return e.canvasW, e.canvasH }

// Elements returns the elements bottom to top.
func (e *Editor) Elements() []*Element { return append([]*Element(nil), e.elements...) }

// Element looks up an element by ID.
func (e *Editor) Element(id string) *Element {
	for _, el := range e.elements {
		if el.ID == id {
			return el
		}
	}
	return nil
}

// Active returns the selected element or nil.
func (e *Editor) Active() *Element { return e.sel.Active() }

// Selection exposes the selection manager.
func (e *Editor) Selection() *Selection { return e.sel }

// Padding is the gap between an element's edge and its text.
func (e *Editor) Padding() float32 { return e.opts.Padding }

// Provider is the font provider used to measure text.
func (e *Editor) Provider() textlayout.Provider { return e.opts.Provider }

// Panel returns the control panel state.
func (e *Editor) Panel() textstyle.Panel { return e.panel }

// Subscriptions is the number of live pointer subscriptions, three per element.
func (e *Editor) Subscriptions() int { return e.bus.Len() }

// CreateNewText adds a text element at a random spot inside the canvas,
// styles it from the panel, focuses it and selects it.
func (e *Editor) CreateNewText() *Element {
	el := &Element{
		ID:       uuid.NewString(),
		Left:     e.randomIn(e.canvasW - e.opts.FootprintW),
		Top:      e.randomIn(e.canvasH - e.opts.FootprintH),
		Text:     TextNode{Content: e.opts.Content},
		autoSize: true,
		padding:  e.opts.Padding,
	}
	textstyle.Apply(e.panel, &el.Text.Style)
	e.fit(el)

	el.drag = gesture.NewDrag(el)
	el.resize = gesture.NewResize(el, e.opts.MinSize)
	el.rotate = gesture.NewRotate(el)
	el.handles = []gesture.Handle{
		e.bus.Subscribe(el.drag),
		e.bus.Subscribe(el.resize),
		e.bus.Subscribe(el.rotate),
	}
	e.elements = append(e.elements, el)

	e.focus(el)
	e.sel.Select(el)
	applog.WithElement(e.log, el.ID).Info("text created",
		slog.Float64("left", float64(el.Left)), slog.Float64("top", float64(el.Top)))
	e.changed()
	return el
}

// randomIn draws uniformly from [0, limit); an empty range yields 0.
func (e *Editor) randomIn(limit float32) float32 {
	if limit <= 0 {
		return 0
	}
	return e.opts.Rand.Float32() * limit
}

// fit sizes an auto-sized element to its content plus padding.
func (e *Editor) fit(el *Element) {
	if !el.autoSize {
		return
	}
	w, h := textlayout.Measure(e.opts.Provider, []textlayout.Span{{Text: el.Text.Content, Font: el.FontSpec()}})
	el.Width = w + 2*e.opts.Padding
	el.Height = h + 2*e.opts.Padding
}

func (e *Editor) focus(el *Element) {
	for _, o := range e.elements {
		o.Text.Focused = o == el
	}
}

// SetContent replaces the text of an element, as typing into it would.
func (e *Editor) SetContent(id, content string) bool {
	el := e.Element(id)
	if el == nil {
		return false
	}
	el.Text.Content = content
	e.fit(el)
	e.changed()
	return true
}

// HitTest returns the top-most element part under p.
func (e *Editor) HitTest(p geom.Pt) Target {
	for i := len(e.elements) - 1; i >= 0; i-- {
		el := e.elements[i]
		if part := el.hit(p); part != PartCanvas {
			return Target{Element: el, Part: part}
		}
	}
	return Target{Part: PartCanvas}
}

// PointerDown hit-tests p and presses whatever it lands on.
func (e *Editor) PointerDown(p gesture.Pointer) Target {
	t := e.HitTest(p.Pos)
	e.Press(t, p)
	return t
}

// Press starts the gesture belonging to the target part and selects its
// element. Presses on the canvas background or on an element's padding
// frame start nothing and leave the selection alone.
func (e *Editor) Press(t Target, p gesture.Pointer) {
	if t.Element == nil {
		return
	}
	c := t.Element.controller(t.Part)
	if c == nil {
		return
	}
	c.Begin(p)
	if t.Part == PartText {
		e.focus(t.Element)
	}
	e.sel.Select(t.Element)
	e.changed()
}

// PointerMove feeds a move to every live session. It reports whether a
// session consumed it, in which case the front end should suppress its
// default handling.
func (e *Editor) PointerMove(p gesture.Pointer) bool {
	if !e.bus.Move(p) {
		return false
	}
	e.changed()
	return true
}

// PointerUp ends the sessions held by p.
func (e *Editor) PointerUp(p gesture.Pointer) bool {
	handled := e.bus.Up(p)
	if handled {
		e.changed()
	}
	return handled
}

// Click handles a completed click. A click on the empty background clears
// the selection; the panel keeps its last values.
func (e *Editor) Click(pos geom.Pt) Target {
	t := e.HitTest(pos)
	if t.Part == PartCanvas && e.sel.Active() != nil {
		e.sel.Clear()
		e.log.Debug("selection cleared")
		e.changed()
	}
	return t
}

// SetFontFamily, SetFontSize and SetColor are the control-panel inputs.
func (e *Editor) SetFontFamily(family string) {
	e.panel.FontFamily = family
	e.UpdateActiveElementStyle()
}

func (e *Editor) SetFontSize(px int) {
	e.panel.FontSizePx = px
	e.UpdateActiveElementStyle()
}

func (e *Editor) SetColor(c string) {
	e.panel.Color = c
	e.UpdateActiveElementStyle()
}

// UpdateActiveElementStyle pushes the panel onto the active element's text.
// Without an active element it does nothing.
func (e *Editor) UpdateActiveElementStyle() {
	el := e.sel.Active()
	if el == nil {
		return
	}
	textstyle.Apply(e.panel, &el.Text.Style)
	e.fit(el)
	e.changed()
}

// RemoveElement deletes an element, ending its sessions and releasing its
// pointer subscriptions. It reports whether the element existed.
func (e *Editor) RemoveElement(id string) bool {
	idx := -1
	for i, el := range e.elements {
		if el.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	el := e.elements[idx]
	for _, c := range []gesture.Controller{el.drag, el.resize, el.rotate} {
		c.Cancel()
	}
	for _, h := range el.handles {
		h.Remove()
	}
	el.handles = nil
	if e.sel.Active() == el {
		e.sel.Clear()
	}
	e.elements = append(e.elements[:idx], e.elements[idx+1:]...)
	applog.WithElement(e.log, id).Info("text removed")
	e.changed()
	return true
}

// DumpState summarizes the canvas for crash reports.
func (e *Editor) DumpState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "canvas=%gx%g elements=%d subscriptions=%d", e.canvasW, e.canvasH, len(e.elements), e.bus.Len())
	if a := e.sel.Active(); a != nil {
		fmt.Fprintf(&b, " active=%s", a.ID)
	}
	for _, el := range e.elements {
		fmt.Fprintf(&b, "\n%s left=%g top=%g w=%g h=%g rot=%g font=%q size=%q color=%q",
			el.ID, el.Left, el.Top, el.Width, el.Height, el.Rotation, el.Text.Style.FontFamily, el.Text.Style.FontSize, el.Text.Style.Color)
	}
	return b.String()
}
