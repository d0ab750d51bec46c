/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontLibrary stores loaded OpenType fonts mapped by family/weight/italic.
// It does not support variations beyond weight and italic flags.
type FontLibrary struct {
	fonts map[fontKey]*opentype.Font
	// fallback serves families that were never loaded.
	fallback *opentype.Font
}

type fontKey struct {
	family string
	weight int
	italic bool
}

func NewFontLibrary() *FontLibrary { return &FontLibrary{fonts: make(map[fontKey]*opentype.Font)} }

// LoadTTF loads a font file into the library under the given family/weight/italic.
func (fl *FontLibrary) LoadTTF(family string, weight int, italic bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return fl.Add(family, weight, italic, data)
}

// Add parses font data into the library.
func (fl *FontLibrary) Add(family string, weight int, italic bool, data []byte) error {
	if fl.fonts == nil {
		fl.fonts = make(map[fontKey]*opentype.Font)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	fl.fonts[fontKey{family: normFamily(family), weight: weight, italic: italic}] = f
	return nil
}

func (fl *FontLibrary) find(spec FontSpec) *opentype.Font {
	if fl == nil {
		return nil
	}
	fam := normFamily(spec.Family)
	if f, ok := fl.fonts[fontKey{family: fam, weight: spec.Weight, italic: spec.Italic}]; ok {
		return f
	}
	for k, f := range fl.fonts {
		if k.family == fam {
			return f
		}
	}
	return fl.fallback
}

// SetFallback parses data as the face for every family not in the library.
func (fl *FontLibrary) SetFallback(data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse fallback font: %w", err)
	}
	fl.fallback = f
	return nil
}

// ProviderFor builds a provider from configured font files. families maps a
// family name to its file; fallbackFile serves every other family. With no
// files at all only the embedded Go fonts are used.
func ProviderFor(fallbackFile string, families map[string]string) (*OTProvider, error) {
	lib := NewFontLibrary()
	for family, path := range families {
		if err := lib.LoadTTF(family, 400, false, path); err != nil {
			return nil, err
		}
	}
	if fallbackFile == "" {
		return NewOTProvider(lib), nil
	}
	data, err := os.ReadFile(fallbackFile)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", fallbackFile, err)
	}
	if err := lib.SetFallback(data); err != nil {
		return nil, err
	}
	return NewOTProvider(lib), nil
}

func normFamily(s string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(s), `'"`))
}

// IsMonospace reports whether a CSS-like family name asks for a fixed-width face.
func IsMonospace(family string) bool {
	switch normFamily(family) {
	case "courier new", "courier", "monospace", "consolas", "menlo", "monaco":
		return true
	}
	return false
}

var (
	goFontsOnce sync.Once
	goFonts     map[string]*opentype.Font
)

func builtinGoFonts() map[string]*opentype.Font {
	goFontsOnce.Do(func() {
		goFonts = map[string]*opentype.Font{}
		for name, data := range map[string][]byte{
			"regular": goregular.TTF,
			"bold":    gobold.TTF,
			"italic":  goitalic.TTF,
			"mono":    gomono.TTF,
		} {
			// the embedded Go fonts always parse
			f, _ := opentype.Parse(data)
			goFonts[name] = f
		}
	})
	return goFonts
}

// OTProvider resolves FontSpec from a FontLibrary and falls back to the
// embedded Go fonts. Faces are cached per spec.
type OTProvider struct {
	Lib *FontLibrary
	DPI float64 // default 72 if zero

	mu    sync.Mutex
	faces map[FontSpec]cachedFace
}

type cachedFace struct {
	face font.Face
	met  Metrics
}

func NewOTProvider(lib *FontLibrary) *OTProvider { return &OTProvider{Lib: lib} }

func (p *OTProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	if spec.SizePt <= 0 {
		spec.SizePt = 16
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if cf, ok := p.faces[spec]; ok {
		return cf.face, cf.met
	}
	dpi := p.DPI
	if dpi <= 0 {
		dpi = 72
	}
	f := p.Lib.find(spec)
	if f == nil {
		f = goFontFor(spec)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(spec.SizePt), DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return BasicProvider{}.Resolve(spec)
	}
	if p.faces == nil {
		p.faces = make(map[FontSpec]cachedFace)
	}
	cf := cachedFace{face: face, met: metricsOf(face)}
	p.faces[spec] = cf
	return cf.face, cf.met
}

func goFontFor(spec FontSpec) *opentype.Font {
	fonts := builtinGoFonts()
	switch {
	case IsMonospace(spec.Family):
		return fonts["mono"]
	case spec.Weight >= 600:
		return fonts["bold"]
	case spec.Italic:
		return fonts["italic"]
	default:
		return fonts["regular"]
	}
}
