/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package replay

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"textcanvas/internal/editor"
	"textcanvas/internal/textlayout"
)

const gestureScript = `
seed: 3
canvas: {width: 60, height: 30}
steps:
  - op: create
  - op: press
    target: text
    element: 0
    x: 20
    y: 8
  - op: move
    x: 120
    y: 58
  - op: release
  # hit-tested press on the resize handle of the moved element
  - op: press
    x: 160
    y: 70
  - op: move
    x: 180
    y: 90
  - op: release
  - op: press
    target: rotate
    element: 0
    x: 143
    y: 26
  - op: move
    x: 200
    y: 71.5
  - op: release
  - op: font
    value: Verdana
  - op: size
    size: 24
  - op: color
    value: "#ff0000"
`

func newEditor(s *Script) *editor.Editor {
	return editor.New(s.Options(editor.Options{Padding: 5, Provider: textlayout.BasicProvider{}}))
}

func TestRunReproducesGestures(t *testing.T) {
	s, err := Parse([]byte(gestureScript))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ed := newEditor(s)
	res, err := Run(ed, s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Steps != len(s.Steps) || res.Handled != 3 {
		t.Fatalf("result = %+v", res)
	}
	el := ed.Elements()[0]
	if el.Left != 100 || el.Top != 50 {
		t.Fatalf("origin = (%v,%v), want (100,50)", el.Left, el.Top)
	}
	if el.Width != 86 || el.Height != 43 {
		t.Fatalf("size = %vx%v, want 86x43", el.Width, el.Height)
	}
	if math.Abs(float64(el.Rotation)-math.Pi/2) > 1e-3 {
		t.Fatalf("rotation = %v, want pi/2", el.Rotation)
	}
	if el.Text.Style.FontFamily != "Verdana" || el.Text.Style.FontSize != "24px" || el.Text.Style.Color != "#ff0000" {
		t.Fatalf("style = %+v", el.Text.Style)
	}
	sum := Summary(ed)
	if !strings.HasPrefix(sum, "*0 \"New Text\" left=100.0 top=50.0 w=86.0 h=43.0") {
		t.Fatalf("summary = %q", sum)
	}
	if !strings.Contains(sum, "panel font=Verdana size=24 color=#ff0000") {
		t.Fatalf("summary missing panel: %q", sum)
	}
}

func TestRunTextClickAndRemove(t *testing.T) {
	s, err := Parse([]byte(`
canvas: {width: 60, height: 30}
steps:
  - {op: create}
  - {op: create}
  - {op: text, element: 0, value: "Hello"}
  - {op: click, x: 500, y: 500}
  - {op: remove, element: 1}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ed := newEditor(s)
	if _, err := Run(ed, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	els := ed.Elements()
	if len(els) != 1 || els[0].Text.Content != "Hello" {
		t.Fatalf("unexpected elements: %+v", els)
	}
	if ed.Active() != nil || ed.Subscriptions() != 3 {
		t.Fatalf("active=%v subscriptions=%d", ed.Active(), ed.Subscriptions())
	}
}

func TestRunRejectsMissingElement(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - {op: remove, element: 2}\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = Run(newEditor(s), s)
	if err == nil || !strings.Contains(err.Error(), "step 0 (remove)") {
		t.Fatalf("expected out of range error, got %v", err)
	}
}

func TestParseRejectsInvalidScripts(t *testing.T) {
	cases := map[string]string{
		"unknown op":      "steps:\n  - {op: jump}\n",
		"missing value":   "steps:\n  - {op: color}\n",
		"missing size":    "steps:\n  - {op: size}\n",
		"bad target":      "steps:\n  - {op: press, target: corner}\n",
		"unknown field":   "steps: []\nzoom: 2\n",
		"missing steps":   "seed: 1\n",
		"negative canvas": "canvas: {width: -1, height: 10}\nsteps: []\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			if !errors.Is(err, ErrInvalidScript) {
				t.Fatalf("want ErrInvalidScript, got %v", err)
			}
		})
	}
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("steps: [\n"))
	if err == nil || errors.Is(err, ErrInvalidScript) {
		t.Fatalf("want yaml error, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drag.yaml")
	if err := os.WriteFile(path, []byte(gestureScript), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Seed != 3 || s.Canvas == nil || s.Canvas.Width != 60 || len(s.Steps) != 13 {
		t.Fatalf("unexpected script %+v", s)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
