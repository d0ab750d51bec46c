/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"textcanvas/internal/editor"
	"textcanvas/internal/textlayout"
)

func scene(t *testing.T) (*editor.Editor, *editor.Element) {
	t.Helper()
	ed := editor.New(editor.Options{CanvasW: 60, CanvasH: 30, Padding: 5, Provider: textlayout.BasicProvider{}})
	el := ed.CreateNewText() // 66x23 at the origin
	el.Left, el.Top = 20, 20
	ed.SetCanvasSize(300, 200)
	return ed, el
}

func rgba(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestImageDrawsOutlineAndText(t *testing.T) {
	ed, el := scene(t)
	img := Image(ed, Options{Padding: 5})
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Fatalf("image size = %v, want 300x200", b)
	}
	if c := rgba(img, 250, 150); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Fatalf("background = %v, want white", c)
	}
	if c := rgba(img, 20, 31); c.B < 200 || c.R > 60 {
		t.Fatalf("outline pixel = %v, want highlight blue", c)
	}
	dark := false
	for y := int(el.Top) + 5; y < int(el.Top)+18 && !dark; y++ {
		for x := int(el.Left) + 5; x < int(el.Left)+61; x++ {
			if c := rgba(img, x, y); c.R < 100 && c.G < 100 && c.B < 100 {
				dark = true
				break
			}
		}
	}
	if !dark {
		t.Fatalf("no text pixels drawn inside the element")
	}
}

func TestImageUsesTextColorAndRotation(t *testing.T) {
	ed, el := scene(t)
	ed.SetColor("#ff0000")
	ed.Click(el.Rect().Max().Add(el.Rect().Max())) // deselect, no outline
	el.Rotation = 3.14159265 / 2
	img := Image(ed, Options{Padding: 5})
	red, blue := 0, 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := rgba(img, x, y)
			if c.R > 150 && c.G < 100 && c.B < 100 {
				red++
			}
			if c.B > 200 && c.R < 60 {
				blue++
			}
		}
	}
	if red == 0 {
		t.Fatalf("text should be drawn in red")
	}
	if blue != 0 {
		t.Fatalf("deselected element should have no outline")
	}
}

func TestSavePNG(t *testing.T) {
	ed, _ := scene(t)
	path := filepath.Join(t.TempDir(), "preview.png")
	if err := SavePNG(path, ed, Options{Handles: true}); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 300 || cfg.Height != 200 {
		t.Fatalf("png size = %dx%d", cfg.Width, cfg.Height)
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, ed, Options{}); err != nil || buf.Len() == 0 {
		t.Fatalf("EncodePNG: %v (len %d)", err, buf.Len())
	}
}
