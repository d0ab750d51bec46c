/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textstyle

import "testing"

func TestApplyOverwrites(t *testing.T) {
	st := Style{FontFamily: "'Old'", FontSize: "99px", Color: "rgb(1, 1, 1)"}
	Apply(Panel{FontFamily: "Georgia", FontSizePx: 24, Color: "#112233"}, &st)
	want := Style{FontFamily: "Georgia", FontSize: "24px", Color: "#112233"}
	if st != want {
		t.Fatalf("Apply result = %+v, want %+v", st, want)
	}
	Apply(DefaultPanel(), nil) // must not panic
}

func TestMirrorDefaults(t *testing.T) {
	p := Mirror(Style{})
	if p != DefaultPanel() {
		t.Fatalf("Mirror(empty) = %+v, want defaults", p)
	}
}

func TestMirrorReadsStyle(t *testing.T) {
	p := Mirror(Style{FontFamily: `"Times New Roman"`, FontSize: "32px", Color: "rgb(255, 0, 0)"})
	if p.FontFamily != "Times New Roman" || p.FontSizePx != 32 || p.Color != "#ff0000" {
		t.Fatalf("unexpected mirror: %+v", p)
	}
}

func TestParseFontSize(t *testing.T) {
	cases := map[string]int{
		"":       16,
		"px":     16,
		"0px":    16,
		"24px":   24,
		"18.5px": 18,
		" 12px":  12,
		"-4px":   -4,
		"large":  16,
	}
	for in, want := range cases {
		if got := ParseFontSize(in); got != want {
			t.Fatalf("ParseFontSize(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestStripQuotes(t *testing.T) {
	if got := StripQuotes(`'Comic "Sans"'`); got != "Comic Sans" {
		t.Fatalf("StripQuotes = %q", got)
	}
}
