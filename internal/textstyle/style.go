/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textstyle models the inline style of a text node and the shared
// control panel that edits it.
//
// Styles are stored the way a style sheet would hold them: a font family that
// may carry quotes, a size string such as "24px" and a color in either "#rrggbb"
// or "rgb(r, g, b)" form. The Panel holds the parsed values shown in the
// font select, size field and color picker.
package textstyle

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	applog "textcanvas/internal/log"
)

// Fallbacks used when a style property is unset or cannot be read.
const (
	DefaultFontFamily = "Arial"
	DefaultFontSizePx = 16
	DefaultColor      = "#000000"
)

// Style is the inline style of a text node. Empty fields are unset.
type Style struct {
	FontFamily string `yaml:"font_family,omitempty"`
	FontSize   string `yaml:"font_size,omitempty"`
	Color      string `yaml:"color,omitempty"`
}

// Panel is the control panel state: font select, numeric size field, color picker.
type Panel struct {
	FontFamily string
	FontSizePx int
	Color      string
}

// DefaultPanel is the panel shown before any element has been selected.
func DefaultPanel() Panel {
	return Panel{FontFamily: DefaultFontFamily, FontSizePx: DefaultFontSizePx, Color: DefaultColor}
}

// Apply writes the panel values onto st, replacing whatever was there.
func Apply(p Panel, st *Style) {
	if st == nil {
		return
	}
	st.FontFamily = p.FontFamily
	st.FontSize = fmt.Sprintf("%dpx", p.FontSizePx)
	st.Color = p.Color
}

// Mirror reads st back into panel values, substituting the defaults for
// properties that are unset or unreadable.
func Mirror(st Style) Panel {
	p := Panel{
		FontFamily: StripQuotes(st.FontFamily),
		FontSizePx: ParseFontSize(st.FontSize),
		Color:      HexOrDefault(st.Color),
	}
	if p.FontFamily == "" {
		p.FontFamily = DefaultFontFamily
	}
	return p
}

// StripQuotes removes every single and double quote from a font family.
func StripQuotes(family string) string {
	return strings.Map(func(r rune) rune {
		if r == '\'' || r == '"' {
			return -1
		}
		return r
	}, family)
}

// ParseFontSize reads the leading integer of a size such as "24px" or "18.5px".
// Missing, unparsable or zero sizes yield DefaultFontSizePx.
func ParseFontSize(size string) int {
	s := strings.TrimSpace(size)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return DefaultFontSizePx
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n == 0 {
		return DefaultFontSizePx
	}
	return n
}

// HexOrDefault converts c with RGB2Hex and falls back to DefaultColor.
// Unset colors are expected and only logged at debug level.
func HexOrDefault(c string) string {
	h, err := RGB2Hex(c)
	if err == nil {
		return h
	}
	l := applog.WithOperation(applog.WithComponent("textstyle"), "mirror")
	if strings.TrimSpace(c) == "" {
		l.Debug("color unset, using default", slog.String("default", DefaultColor))
	} else {
		l.Warn("unparseable color, using default", slog.String("color", c), slog.Any("err", err))
	}
	return DefaultColor
}
