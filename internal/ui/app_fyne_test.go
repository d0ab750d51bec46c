//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"textcanvas/internal/editor"
	"textcanvas/internal/textlayout"
)

func newCanvas(t *testing.T) (*editor.Editor, *TextCanvas, *textCanvasRenderer) {
	t.Helper()
	ed := editor.New(editor.Options{CanvasW: 60, CanvasH: 30, Padding: 5, Provider: textlayout.BasicProvider{}})
	tc := NewTextCanvas(ed, fyne.NewSize(800, 600))
	r, ok := tc.CreateRenderer().(*textCanvasRenderer)
	if !ok {
		t.Fatalf("expected textCanvasRenderer, got %T", tc.CreateRenderer())
	}
	return ed, tc, r
}

func press(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: desktop.MouseButtonPrimary}
}

func TestTextCanvas_LayoutSetsCanvasSize(t *testing.T) {
	_ = test.NewTempApp(t)
	ed, _, r := newCanvas(t)
	r.Layout(fyne.NewSize(640, 480))
	if w, h := ed.CanvasSize(); w != 640 || h != 480 {
		t.Fatalf("canvas size = %vx%v, want 640x480", w, h)
	}
	if sz := r.raster.Size(); sz.Width != 640 || sz.Height != 480 {
		t.Fatalf("raster size = %v", sz)
	}
	r.Layout(fyne.NewSize(0, 0))
	if w, h := ed.CanvasSize(); w != 800 || h != 600 {
		t.Fatalf("empty layout should fall back to the preferred size, got %vx%v", w, h)
	}
}

func TestTextCanvas_DragMovesElement(t *testing.T) {
	_ = test.NewTempApp(t)
	ed, tc, _ := newCanvas(t)
	el := ed.CreateNewText() // 66x23 at the origin
	tc.MouseDown(press(20, 8))
	tc.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(70, 48)}, Dragged: fyne.NewDelta(50, 40)})
	tc.DragEnd()
	tc.MouseUp(press(70, 48))
	if el.Left != 50 || el.Top != 40 {
		t.Fatalf("origin = (%v,%v), want (50,40)", el.Left, el.Top)
	}
	if el.Active() {
		t.Fatalf("drag should be finished")
	}
}

func TestTextCanvas_SecondaryButtonIgnored(t *testing.T) {
	_ = test.NewTempApp(t)
	ed, tc, _ := newCanvas(t)
	el := ed.CreateNewText()
	ev := press(20, 8)
	ev.Button = desktop.MouseButtonSecondary
	tc.MouseDown(ev)
	if el.Active() {
		t.Fatalf("secondary button must not start a gesture")
	}
}

func TestTextCanvas_TapBackgroundClearsSelection(t *testing.T) {
	_ = test.NewTempApp(t)
	ed, tc, _ := newCanvas(t)
	ed.CreateNewText()
	tc.Tapped(&fyne.PointEvent{Position: fyne.NewPos(400, 300)})
	if ed.Active() != nil {
		t.Fatalf("tap on background should clear the selection")
	}
}

func TestTextCanvas_DoubleTapEditsElement(t *testing.T) {
	_ = test.NewTempApp(t)
	ed, tc, _ := newCanvas(t)
	el := ed.CreateNewText()
	var got *editor.Element
	tc.OnEditText = func(e *editor.Element) { got = e }
	tc.DoubleTapped(&fyne.PointEvent{Position: fyne.NewPos(20, 8)})
	if got != el {
		t.Fatalf("double tap should request editing of the element under the pointer")
	}
}

func TestControlPanel_SyncAndApply(t *testing.T) {
	a := test.NewTempApp(t)
	w := a.NewWindow("test")
	ed, _, _ := newCanvas(t)
	p := newControlPanel(ed, []string{"Arial", "Verdana"}, w)
	if p.font.Selected != "Arial" || p.size.Text != "16" {
		t.Fatalf("initial panel = %q/%q", p.font.Selected, p.size.Text)
	}
	el := ed.CreateNewText()
	p.font.SetSelected("Verdana")
	p.size.SetText("28")
	if el.Text.Style.FontFamily != "Verdana" || el.Text.Style.FontSize != "28px" {
		t.Fatalf("widgets did not style the active element: %+v", el.Text.Style)
	}
	p.size.SetText("abc")
	if el.Text.Style.FontSize != "28px" {
		t.Fatalf("invalid size should be ignored, got %q", el.Text.Style.FontSize)
	}

	el.Text.Style.FontFamily = "Arial"
	ed.Selection().Select(el)
	p.sync()
	if p.font.Selected != "Arial" || p.size.Text != "28" {
		t.Fatalf("sync = %q/%q", p.font.Selected, p.size.Text)
	}
	if el.Text.Style.FontFamily != "Arial" {
		t.Fatalf("sync must not feed back into the element")
	}
}
