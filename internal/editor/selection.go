/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"

	applog "textcanvas/internal/log"
	"textcanvas/internal/textstyle"
)

// Selection tracks the single active element and keeps the control panel
// mirroring its text style.
type Selection struct {
	active    *Element
	highlight Outline
	panel     *textstyle.Panel
}

func newSelection(highlight Outline, panel *textstyle.Panel) *Selection {
	return &Selection{highlight: highlight, panel: panel}
}

// Active returns the active element or nil.
func (s *Selection) Active() *Element { return s.active }

// Select makes el the active element: the previous one loses its outline,
// el gains it and the panel is refreshed from el's text style.
func (s *Selection) Select(el *Element) {
	if el == nil {
		return
	}
	if s.active != nil {
		s.Deselect(s.active)
	}
	s.active = el
	el.Outline = s.highlight
	*s.panel = textstyle.Mirror(el.Text.Style)
	applog.WithElement(applog.WithComponent("selection"), el.ID).Debug("selected",
		slog.String("font", s.panel.FontFamily), slog.Int("size", s.panel.FontSizePx), slog.String("color", s.panel.Color))
}

// Deselect removes el's outline. It does not change which element is active.
func (s *Selection) Deselect(el *Element) {
	if el == nil {
		return
	}
	el.Outline = Outline{}
}

// Clear deselects the active element and forgets it. The panel keeps its values.
func (s *Selection) Clear() {
	if s.active == nil {
		return
	}
	s.Deselect(s.active)
	s.active = nil
}
