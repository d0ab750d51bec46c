/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"textcanvas/internal/geom"
	"textcanvas/internal/gesture"
	"textcanvas/internal/textlayout"
	"textcanvas/internal/textstyle"
)

// Handle geometry in canvas pixels, measured on the unrotated element.
const (
	ResizeHandleSize   float32 = 10
	RotateHandleRadius float32 = 6
	RotateHandleOffset float32 = 24 // distance above the top edge
)

// Part is the region of the canvas a pointer lands on.
type Part int

const (
	PartCanvas Part = iota
	// PartFrame is the padding between the element border and its text.
	// It belongs to the element but starts no gesture.
	PartFrame
	PartText
	PartResizeHandle
	PartRotateHandle
)

func (p Part) String() string {
	switch p {
	case PartFrame:
		return "frame"
	case PartText:
		return "text"
	case PartResizeHandle:
		return "resize"
	case PartRotateHandle:
		return "rotate"
	default:
		return "canvas"
	}
}

// ParsePart is the inverse of Part.String.
func ParsePart(s string) (Part, bool) {
	for _, p := range []Part{PartCanvas, PartFrame, PartText, PartResizeHandle, PartRotateHandle} {
		if p.String() == s {
			return p, true
		}
	}
	return PartCanvas, false
}

// Target is the result of a hit test. Element is nil for PartCanvas.
type Target struct {
	Element *Element
	Part    Part
}

// Outline is the selection highlight drawn around the active element.
type Outline struct {
	Width float32
	Color string
}

// TextNode is the editable text inside an element.
type TextNode struct {
	Content string
	Style   textstyle.Style
	Focused bool
}

// Element is a positioned, styled, editable text box with a resize handle at
// its bottom-right corner and a rotate handle above its top edge.
type Element struct {
	ID       string
	Left     float32
	Top      float32
	Width    float32
	Height   float32
	Rotation float32 // radians about the element center
	Text     TextNode
	// Outline is the zero value unless the element is highlighted.
	Outline Outline

	// autoSize is true until the first resize; until then the box follows its content.
	autoSize bool
	padding  float32

	drag    *gesture.Drag
	resize  *gesture.Resize
	rotate  *gesture.Rotate
	handles []gesture.Handle
}

// Highlighted reports whether the selection outline is applied.
func (el *Element) Highlighted() bool { return el.Outline.Width > 0 }

// AutoSize reports whether the element still sizes itself to its content.
func (el *Element) AutoSize() bool { return el.autoSize }

// FontSpec resolves the text style into a font request for layout.
func (el *Element) FontSpec() textlayout.FontSpec {
	return textlayout.FontSpec{
		Family: textstyle.StripQuotes(el.Text.Style.FontFamily),
		SizePt: float32(textstyle.ParseFontSize(el.Text.Style.FontSize)),
	}
}

// Rect is the unrotated box.
func (el *Element) Rect() geom.Rect { return geom.R(el.Left, el.Top, el.Width, el.Height) }

// TextRect is the unrotated text area, the box inset by the padding.
func (el *Element) TextRect() geom.Rect {
	p := min(el.padding, el.Width/2, el.Height/2)
	return geom.R(el.Left+p, el.Top+p, el.Width-2*p, el.Height-2*p)
}

// Transform maps unrotated element coordinates to canvas coordinates.
func (el *Element) Transform() geom.Affine2D {
	return geom.RotateAbout(el.Rect().Center(), el.Rotation)
}

// ResizeHandleRect is the handle square in unrotated coordinates.
func (el *Element) ResizeHandleRect() geom.Rect {
	return geom.R(el.Left+el.Width-ResizeHandleSize, el.Top+el.Height-ResizeHandleSize, ResizeHandleSize, ResizeHandleSize)
}

// RotateHandleCenter is the handle center in unrotated coordinates.
func (el *Element) RotateHandleCenter() geom.Pt {
	return geom.Pt{X: el.Left + el.Width/2, Y: el.Top - RotateHandleOffset}
}

// hit returns the part of el under the canvas point p, or PartCanvas.
func (el *Element) hit(p geom.Pt) Part {
	q := el.Transform().Invert().Apply(p)
	c := el.RotateHandleCenter()
	if d := q.Sub(c); d.X*d.X+d.Y*d.Y <= RotateHandleRadius*RotateHandleRadius {
		return PartRotateHandle
	}
	if el.ResizeHandleRect().Contains(q) {
		return PartResizeHandle
	}
	if el.TextRect().Contains(q) {
		return PartText
	}
	if el.Rect().Contains(q) {
		return PartFrame
	}
	return PartCanvas
}

func (el *Element) controller(p Part) gesture.Controller {
	switch p {
	case PartFrame:
		return "frame"
	case PartText:
		return el.drag
	case PartResizeHandle:
		return el.resize
	case PartRotateHandle:
		return el.rotate
	}
	return nil
}

// Active reports whether any gesture session is running on el.
func (el *Element) Active() bool {
	return el.drag.Active() || el.resize.Active() || el.rotate.Active()
}

// gesture.Box

func (el *Element) Origin() geom.Pt          { return geom.Pt{X: el.Left, Y: el.Top} }
func (el *Element) SetOrigin(p geom.Pt)      { el.Left, el.Top = p.X, p.Y }
func (el *Element) Size() (float32, float32) { return el.Width, el.Height }
func (el *Element) SetRotation(rad float32)  { el.Rotation = rad }
func (el *Element) Bounds() geom.Rect        { return geom.Bounds(el.Rect(), el.Transform()) }

func (el *Element) SetSize(w, h float32) {
	el.Width, el.Height = w, h
	el.autoSize = false
}
