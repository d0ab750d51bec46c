/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render draws a preview of the canvas into a PNG image. It is a
// snapshot for inspection and replay output, not a saved layout.
package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"

	"github.com/fogleman/gg"

	"textcanvas/internal/editor"
	applog "textcanvas/internal/log"
	"textcanvas/internal/textlayout"
	"textcanvas/internal/textstyle"
)

// Scene is what the renderer needs from an editor.
type Scene interface {
	CanvasSize() (w, h float32)
	Elements() []*editor.Element
}

// Options controls the preview. Zero values get defaults.
type Options struct {
	Background color.Color
	Provider   textlayout.Provider
	Padding    float32
	// Handles draws the resize and rotate handles of the highlighted element.
	Handles bool
}

func (o *Options) defaults() {
	if o.Background == nil {
		o.Background = color.White
	}
	if o.Provider == nil {
		o.Provider = textlayout.BasicProvider{}
	}
}

// Image draws s into a new RGBA image the size of its canvas.
func Image(s Scene, opt Options) image.Image {
	return draw(s, opt).Image()
}

// EncodePNG writes the preview of s as PNG to w.
func EncodePNG(w io.Writer, s Scene, opt Options) error {
	if err := draw(s, opt).EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the preview of s to path.
func SavePNG(path string, s Scene, opt Options) error {
	if err := draw(s, opt).SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}

func draw(s Scene, opt Options) *gg.Context {
	opt.defaults()
	cw, ch := s.CanvasSize()
	dc := gg.NewContext(max(1, int(math.Ceil(float64(cw)))), max(1, int(math.Ceil(float64(ch)))))
	dc.SetColor(opt.Background)
	dc.Clear()
	for _, el := range s.Elements() {
		drawElement(dc, el, opt)
	}
	return dc
}

func drawElement(dc *gg.Context, el *editor.Element, opt Options) {
	r := el.Rect()
	c := r.Center()
	dc.Push()
	defer dc.Pop()
	dc.RotateAbout(float64(el.Rotation), float64(c.X), float64(c.Y))

	face, _ := opt.Provider.Resolve(el.FontSpec())
	dc.SetFontFace(face)
	dc.SetColor(colorOf(el.Text.Style.Color, el.ID))
	maxW := float32(0)
	if !el.AutoSize() {
		maxW = el.Width - 2*opt.Padding
	}
	box, err := textlayout.NewWordWrap(opt.Provider).Layout(
		[]textlayout.Span{{Text: el.Text.Content, Font: el.FontSpec()}}, maxW)
	if err == nil {
		y := r.Y + opt.Padding + box.Metrics.Ascent
		for _, ln := range box.Lines {
			dc.DrawString(ln.Text(), float64(r.X+opt.Padding), float64(y))
			y += box.Metrics.LineHeight() + box.Metrics.LineGap
		}
	}

	if !el.Highlighted() {
		return
	}
	dc.SetColor(colorOf(el.Outline.Color, el.ID))
	dc.SetLineWidth(float64(el.Outline.Width))
	dc.DrawRectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
	dc.Stroke()
	if !opt.Handles {
		return
	}
	h := el.ResizeHandleRect()
	dc.DrawRectangle(float64(h.X), float64(h.Y), float64(h.W), float64(h.H))
	dc.Fill()
	rc := el.RotateHandleCenter()
	dc.SetLineWidth(1)
	dc.DrawLine(float64(c.X), float64(r.Y), float64(rc.X), float64(rc.Y))
	dc.Stroke()
	dc.DrawCircle(float64(rc.X), float64(rc.Y), float64(editor.RotateHandleRadius))
	dc.Fill()
}

func colorOf(s, id string) color.Color {
	c, err := textstyle.ToRGBA(s)
	if err != nil {
		applog.WithElement(applog.WithComponent("render"), id).Warn("unparseable color, drawing black",
			slog.String("color", s), slog.Any("err", err))
		return color.Black
	}
	return c
}
