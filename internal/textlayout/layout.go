/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textlayout measures and wraps the text of canvas elements. All
// measurement goes through a Provider so tests can use a fixed bitmap face
// while the editor uses real outline fonts.
package textlayout

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font. Sizes are points at 72 DPI, so one
// point equals one canvas pixel.
type FontSpec struct {
	Family string
	SizePt float32
	Weight int // 100..900
	Italic bool
}

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// LineHeight is ascent plus descent.
func (m Metrics) LineHeight() float32 { return m.Ascent + m.Descent }

// Span is a run of text with the same font/style.
type Span struct {
	Text string
	Font FontSpec
}

// Line is a single laid out line with width and ascent/descent.
type Line struct {
	Spans   []Span
	Width   float32
	Ascent  float32
	Descent float32
}

// Text joins the spans of the line.
func (l Line) Text() string {
	s := ""
	for _, sp := range l.Spans {
		s += sp.Text
	}
	return s
}

// TextBox is the result of laying out text into a box width.
type TextBox struct {
	Lines   []Line
	Width   float32
	Height  float32
	Metrics Metrics
}

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider uses x/image/basicfont Face7x13 for deterministic tests.
type BasicProvider struct{}

func (BasicProvider) Resolve(FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	return f, metricsOf(f)
}

func metricsOf(f font.Face) Metrics {
	m := f.Metrics()
	return Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// WordWrapLayouter breaks on spaces and newlines; it does no shaping or
// hyphenation. A single word wider than the box gets a line of its own.
type WordWrapLayouter struct{ Provider Provider }

func NewWordWrap(provider Provider) *WordWrapLayouter { return &WordWrapLayouter{Provider: provider} }

// Layout wraps spans into maxWidth. Metrics come from the first span's font;
// maxWidth <= 0 disables wrapping.
func (l *WordWrapLayouter) Layout(spans []Span, maxWidth float32) (TextBox, error) {
	p := l.Provider
	if p == nil {
		p = BasicProvider{}
	}
	var spec FontSpec
	if len(spans) > 0 {
		spec = spans[0].Font
	}
	face, met := p.Resolve(spec)
	drawer := &font.Drawer{Face: face}
	cur := Line{Ascent: met.Ascent, Descent: met.Descent}
	box := TextBox{Metrics: met}
	addLine := func() {
		box.Lines = append(box.Lines, cur)
		if cur.Width > box.Width {
			box.Width = cur.Width
		}
		box.Height += met.LineHeight() + met.LineGap
		cur = Line{Ascent: met.Ascent, Descent: met.Descent}
	}
	for _, sp := range spans {
		start := 0
		for i := 0; i <= len(sp.Text); i++ {
			if i < len(sp.Text) && sp.Text[i] != ' ' && sp.Text[i] != '\n' {
				continue
			}
			word := sp.Text[start:i]
			w := advance(drawer, word)
			if cur.Width > 0 && cur.Width+w > maxWidth && maxWidth > 0 {
				addLine()
			}
			if word != "" {
				cur.Spans = append(cur.Spans, Span{Text: word, Font: sp.Font})
				cur.Width += w
			}
			if i < len(sp.Text) {
				switch sp.Text[i] {
				case ' ':
					cur.Spans = append(cur.Spans, Span{Text: " ", Font: sp.Font})
					cur.Width += advance(drawer, " ")
				case '\n':
					addLine()
				}
			}
			start = i + 1
		}
	}
	if len(cur.Spans) > 0 || len(box.Lines) == 0 {
		addLine()
	}
	return box, nil
}

func advance(d *font.Drawer, s string) float32 {
	return float32(d.MeasureString(s).Ceil())
}

// Measure returns the single-line width and the tallest line height of spans.
func Measure(provider Provider, spans []Span) (w, h float32) {
	if provider == nil {
		provider = BasicProvider{}
	}
	for _, sp := range spans {
		face, met := provider.Resolve(sp.Font)
		w += advance(&font.Drawer{Face: face}, sp.Text)
		h = max(h, met.LineHeight())
	}
	if len(spans) == 0 {
		_, met := provider.Resolve(FontSpec{})
		h = met.LineHeight()
	}
	return w, h
}
