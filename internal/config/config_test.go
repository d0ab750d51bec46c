/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, path)
	for _, k := range []string{EnvCanvasWidth, EnvCanvasHeight, EnvFontFile, EnvMinSize, EnvLogLevel, EnvLogFormat, EnvLogSource, EnvLogFile} {
		t.Setenv(k, "")
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 {
		t.Fatalf("unexpected canvas defaults: %+v", cfg.Canvas)
	}
	if cfg.Element.FootprintW != 100 || cfg.Element.FootprintH != 50 {
		t.Fatalf("unexpected footprint defaults: %+v", cfg.Element)
	}
	if cfg.Highlight.Color != "#007bff" || cfg.Highlight.Width != 2 {
		t.Fatalf("unexpected highlight defaults: %+v", cfg.Highlight)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	isolate(t)
	cfg := Defaults()
	cfg.Canvas.Width = 1024
	cfg.Panel.Fonts = []string{"Georgia"}
	cfg.Gesture.MinSize = 8
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Canvas.Width != 1024 || len(got.Panel.Fonts) != 1 || got.Panel.Fonts[0] != "Georgia" || got.Gesture.MinSize != 8 {
		t.Fatalf("round trip lost values: %+v", got)
	}
}

func TestMalformedFileFallsBackToDefaults(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("canvas: [not, a, map"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas != Defaults().Canvas {
		t.Fatalf("expected default canvas, got %+v", cfg.Canvas)
	}
}

func TestEnvOverridesCanvas(t *testing.T) {
	isolate(t)
	t.Setenv(EnvCanvasWidth, "640")
	t.Setenv(EnvCanvasHeight, "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.Width != 640 {
		t.Fatalf("Canvas.Width = %v, want 640", cfg.Canvas.Width)
	}
	if cfg.Canvas.Height != 600 {
		t.Fatalf("invalid height override should be ignored, got %v", cfg.Canvas.Height)
	}
	if env, ok := EnvOverrideFor("canvas.width"); !ok || env != EnvCanvasWidth {
		t.Fatalf("EnvOverrideFor(canvas.width) = %q, %v", env, ok)
	}
	if _, ok := EnvOverrideFor("canvas.height"); !ok {
		t.Fatalf("height env is set, expected override to be reported")
	}
	if _, ok := EnvOverrideFor("panel.font_file"); ok {
		t.Fatalf("font file env is empty, expected no override")
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := AppConfig{}
	src.Logging.Level = " DEBUG "
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/tc.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/tc.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
	if dst.Panel.FontFamily != "Arial" {
		t.Fatalf("empty source must not clear panel defaults: %+v", dst.Panel)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/tc.log")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/tc.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestFileCanSetZeroPaddingAndMinSize(t *testing.T) {
	path := isolate(t)
	data := "element:\n  padding: 0\ngesture:\n  min_size: 0\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Element.Padding != 0 {
		t.Fatalf("explicit padding 0 ignored, got %v", cfg.Element.Padding)
	}
	if cfg.Element.FootprintW != 100 {
		t.Fatalf("unrelated defaults lost: %+v", cfg.Element)
	}
}

func TestAbsentPaddingKeepsDefault(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("canvas:\n  width: 900\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, _ := Load()
	if cfg.Element.Padding != 5 || cfg.Canvas.Width != 900 {
		t.Fatalf("padding=%v width=%v, want 5 and 900", cfg.Element.Padding, cfg.Canvas.Width)
	}
}

func TestNewerConfigVersionIsReported(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("config_version: 7\ncanvas:\n  width: 640\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load()
	if !errors.Is(err, ErrNewerVersion) {
		t.Fatalf("want ErrNewerVersion, got %v", err)
	}
	if cfg.Canvas.Width != 640 {
		t.Fatalf("known keys of a newer file should still apply, got %v", cfg.Canvas.Width)
	}
}

func TestFontFilesMerged(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("panel:\n  font_files:\n    Brand: \" /fonts/brand.ttf \"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Panel.FontFiles["Brand"] != "/fonts/brand.ttf" {
		t.Fatalf("font_files not merged: %#v", cfg.Panel.FontFiles)
	}
}

func TestInitWritesDefaultsOnce(t *testing.T) {
	path := isolate(t)
	written, got, err := Init(false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got != path || written.Canvas.Width != 800 {
		t.Fatalf("Init returned path %q cfg %+v", got, written.Canvas)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if err := os.WriteFile(path, []byte("canvas:\n  width: 1234\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := Init(false); !errors.Is(err, ErrExists) {
		t.Fatalf("want ErrExists, got %v", err)
	}
	if cfg, _ := Load(); cfg.Canvas.Width != 1234 {
		t.Fatalf("existing file was overwritten without force")
	}
	if _, _, err := Init(true); err != nil {
		t.Fatalf("Init(force): %v", err)
	}
	if cfg, _ := Load(); cfg.Canvas.Width != 800 {
		t.Fatalf("force should rewrite the defaults, got %v", cfg.Canvas.Width)
	}
}

func TestDescribeMarksEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvCanvasWidth, "1024")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	out, err := Describe(cfg)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if !strings.Contains(out, "width: 1024") {
		t.Fatalf("effective value missing:\n%s", out)
	}
	if !strings.Contains(out, "# canvas.width is overridden by TC_CANVAS_WIDTH") {
		t.Fatalf("override not marked:\n%s", out)
	}
	if strings.Contains(out, "canvas.height is overridden") {
		t.Fatalf("unset env marked as override:\n%s", out)
	}
}
