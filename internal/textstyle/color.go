/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textstyle

import (
	"errors"
	"fmt"
	"image/color"
	"math/big"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnparseableColor is returned for colors that are neither "#..." nor "rgb(r, g, b)".
var ErrUnparseableColor = errors.New("unparseable color")

var rgbPattern = regexp.MustCompile(`^rgb\((\d+),\s*(\d+),\s*(\d+)\)$`)

// RGB2Hex converts "rgb(r, g, b)" to "#rrggbb". Inputs starting with '#' are
// returned unchanged. Each channel keeps the last two hex digits, so values
// above 255 wrap instead of failing.
func RGB2Hex(c string) (string, error) {
	if strings.HasPrefix(c, "#") {
		return c, nil
	}
	m := rgbPattern.FindStringSubmatch(c)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrUnparseableColor, c)
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, ch := range m[1:] {
		b.WriteString(hexByte(ch))
	}
	return b.String(), nil
}

func hexByte(dec string) string {
	n, ok := new(big.Int).SetString(dec, 10)
	if !ok {
		return "00"
	}
	h := "0" + n.Text(16)
	return h[len(h)-2:]
}

// ToRGBA resolves a style color for drawing. Unset colors are black.
func ToRGBA(c string) (color.RGBA, error) {
	if strings.TrimSpace(c) == "" {
		return color.RGBA{A: 255}, nil
	}
	h, err := RGB2Hex(strings.TrimSpace(c))
	if err != nil {
		return color.RGBA{A: 255}, err
	}
	cf, err := colorful.Hex(h)
	if err != nil {
		return color.RGBA{A: 255}, fmt.Errorf("%w: %v", ErrUnparseableColor, err)
	}
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// FromColor formats any color as "#rrggbb", dropping alpha.
func FromColor(c color.Color) string {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// fully transparent colors cannot be un-premultiplied
		return DefaultColor
	}
	return cf.Clamped().Hex()
}
