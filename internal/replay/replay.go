/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package replay drives an editor from a recorded gesture script. Scripts
// are YAML, checked against an embedded JSON Schema before they run, and
// make interaction sequences reproducible without a display.
package replay

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"textcanvas/internal/editor"
	"textcanvas/internal/geom"
	"textcanvas/internal/gesture"
	applog "textcanvas/internal/log"
)

//go:embed schema.json
var schemaJSON []byte

// ErrInvalidScript marks scripts that do not match the schema.
var ErrInvalidScript = errors.New("invalid replay script")

// Step operations.
const (
	OpCreate  = "create"
	OpPress   = "press"
	OpMove    = "move"
	OpRelease = "release"
	OpClick   = "click"
	OpFont    = "font"
	OpSize    = "size"
	OpColor   = "color"
	OpText    = "text"
	OpRemove  = "remove"
)

// Script is a parsed replay file.
type Script struct {
	// Seed makes element placement deterministic; 0 keeps the editor's source.
	Seed   int64  `yaml:"seed"`
	Canvas *Size  `yaml:"canvas"`
	Steps  []Step `yaml:"steps"`
}

type Size struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Step is one input event. Element indexes refer to the editor's element
// list at the time the step runs, bottom to top.
type Step struct {
	Op      string  `yaml:"op"`
	Target  string  `yaml:"target"`
	Element *int    `yaml:"element"`
	Pointer int     `yaml:"pointer"`
	X       float32 `yaml:"x"`
	Y       float32 `yaml:"y"`
	Value   string  `yaml:"value"`
	Size    int     `yaml:"size"`
}

func (s Step) pointer() gesture.Pointer {
	return gesture.Pointer{ID: s.Pointer, Pos: geom.Pt{X: s.X, Y: s.Y}}
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML, validates it against the schema and returns the script.
func Parse(data []byte) (*Script, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse script yaml: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return &s, nil
}

func validate(doc any) error {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validate script: %w", err)
	}
	if res.Valid() {
		return nil
	}
	errs := make([]error, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		errs = append(errs, errors.New(e.String()))
	}
	return fmt.Errorf("%w: %w", ErrInvalidScript, errors.Join(errs...))
}

// Options adapts base editor options to the script's seed and canvas.
func (s *Script) Options(base editor.Options) editor.Options {
	if s.Seed != 0 {
		base.Rand = rand.New(rand.NewSource(s.Seed))
	}
	if s.Canvas != nil {
		base.CanvasW, base.CanvasH = s.Canvas.Width, s.Canvas.Height
	}
	return base
}

// Result counts what a run did.
type Result struct {
	Steps int
	// Handled is the number of moves consumed by a gesture session.
	Handled int
}

// Run applies every step to ed in order and stops at the first failing step.
func Run(ed *editor.Editor, s *Script) (Result, error) {
	log := applog.WithOperation(applog.WithComponent("replay"), "run")
	var res Result
	for i, st := range s.Steps {
		handled, err := apply(ed, st)
		if err != nil {
			return res, fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}
		res.Steps++
		if handled {
			res.Handled++
		}
	}
	log.Info("replay finished", slog.Int("steps", res.Steps), slog.Int("handled_moves", res.Handled),
		slog.Int("elements", len(ed.Elements())))
	return res, nil
}

func apply(ed *editor.Editor, st Step) (bool, error) {
	switch st.Op {
	case OpCreate:
		ed.CreateNewText()
	case OpPress:
		if st.Target == "" {
			ed.PointerDown(st.pointer())
			return false, nil
		}
		part, ok := editor.ParsePart(st.Target)
		if !ok {
			return false, fmt.Errorf("unknown target %q", st.Target)
		}
		var el *editor.Element
		if part != editor.PartCanvas {
			var err error
			if el, err = element(ed, st); err != nil {
				return false, err
			}
		}
		ed.Press(editor.Target{Element: el, Part: part}, st.pointer())
	case OpMove:
		return ed.PointerMove(st.pointer()), nil
	case OpRelease:
		ed.PointerUp(st.pointer())
	case OpClick:
		ed.Click(geom.Pt{X: st.X, Y: st.Y})
	case OpFont:
		ed.SetFontFamily(st.Value)
	case OpSize:
		ed.SetFontSize(st.Size)
	case OpColor:
		ed.SetColor(st.Value)
	case OpText:
		el, err := element(ed, st)
		if err != nil {
			return false, err
		}
		ed.SetContent(el.ID, st.Value)
	case OpRemove:
		el, err := element(ed, st)
		if err != nil {
			return false, err
		}
		ed.RemoveElement(el.ID)
	default:
		return false, fmt.Errorf("unknown op %q", st.Op)
	}
	return false, nil
}

func element(ed *editor.Editor, st Step) (*editor.Element, error) {
	if st.Element == nil {
		return nil, errors.New("element index required")
	}
	els := ed.Elements()
	if *st.Element < 0 || *st.Element >= len(els) {
		return nil, fmt.Errorf("element %d out of range (have %d)", *st.Element, len(els))
	}
	return els[*st.Element], nil
}

// Summary describes the final state of every element, one line each.
func Summary(ed *editor.Editor) string {
	var b strings.Builder
	active := ed.Active()
	for i, el := range ed.Elements() {
		mark := " "
		if el == active {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s%d %q left=%.1f top=%.1f w=%.1f h=%.1f rot=%.3f font=%s size=%s color=%s\n",
			mark, i, el.Text.Content, el.Left, el.Top, el.Width, el.Height, el.Rotation,
			el.Text.Style.FontFamily, el.Text.Style.FontSize, el.Text.Style.Color)
	}
	p := ed.Panel()
	fmt.Fprintf(&b, "panel font=%s size=%d color=%s\n", p.FontFamily, p.FontSizePx, p.Color)
	return b.String()
}
