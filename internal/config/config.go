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
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are read-only overrides applied at load time.
//
// config_version: bump when the structure changes in a backward-incompatible way.

// CurrentVersion is the config_version this build writes and understands.
const CurrentVersion = 1

var (
	// ErrNewerVersion reports a file written by a newer build. Its known keys are still applied.
	ErrNewerVersion = errors.New("config file is newer than this build")
	// ErrExists is returned by Init when a config file is already present.
	ErrExists = errors.New("config file already exists")
)

type CanvasConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// ElementConfig controls how new text elements are created.
type ElementConfig struct {
	Content string `yaml:"content"`
	// Footprint bounds the random placement: left < width-FootprintW, top < height-FootprintH.
	FootprintW float32 `yaml:"footprint_w"`
	FootprintH float32 `yaml:"footprint_h"`
	Padding    float32 `yaml:"padding"`
}

type PanelConfig struct {
	FontFamily string   `yaml:"font_family"`
	FontSizePx int      `yaml:"font_size_px"`
	Color      string   `yaml:"color"`
	Fonts      []string `yaml:"fonts"` // choices offered by the font select
	// FontFile serves every family without an entry in FontFiles.
	FontFile string `yaml:"font_file"`
	// FontFiles maps a family name to a TTF/OTF file.
	FontFiles map[string]string `yaml:"font_files"`
}

type HighlightConfig struct {
	Color string  `yaml:"color"`
	Width float32 `yaml:"width"`
}

type GestureConfig struct {
	// MinSize is the smallest width/height a resize can produce.
	MinSize float32 `yaml:"min_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int             `yaml:"config_version"`
	Canvas        CanvasConfig    `yaml:"canvas"`
	Element       ElementConfig   `yaml:"element"`
	Panel         PanelConfig     `yaml:"panel"`
	Highlight     HighlightConfig `yaml:"highlight"`
	Gesture       GestureConfig   `yaml:"gesture"`
	Logging       LoggingConfig   `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: CurrentVersion,
		Canvas:        CanvasConfig{Width: 800, Height: 600},
		Element:       ElementConfig{Content: "New Text", FootprintW: 100, FootprintH: 50, Padding: 5},
		Panel: PanelConfig{
			FontFamily: "Arial",
			FontSizePx: 16,
			Color:      "#000000",
			Fonts:      []string{"Arial", "Times New Roman", "Courier New", "Georgia", "Verdana"},
		},
		Highlight: HighlightConfig{Color: "#007bff", Width: 2},
		Gesture:   GestureConfig{MinSize: 0},
		Logging:   LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvCanvasWidth  = "TC_CANVAS_WIDTH"
	EnvCanvasHeight = "TC_CANVAS_HEIGHT"
	EnvFontFile     = "TC_FONT_FILE"
	EnvMinSize      = "TC_MIN_SIZE"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "TC_LOG_LEVEL"
	EnvLogFormat = "TC_LOG_FORMAT"
	EnvLogSource = "TC_LOG_SOURCE"
	EnvLogFile   = "TC_LOG_FILE"
	// EnvConfigPath points Load/Save at an explicit file.
	EnvConfigPath = "TC_CONFIG"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "TextCanvas")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "TextCanvas")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "textcanvas")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults and merges
// environment overrides. A missing or malformed file is not an error; the
// defaults are used instead.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	var verErr error
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
			mergeExplicitZeros(&cfg, data)
			if fileCfg.ConfigVersion > CurrentVersion {
				verErr = fmt.Errorf("%w: %s has version %d, supported %d", ErrNewerVersion, path, fileCfg.ConfigVersion, CurrentVersion)
			}
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, verErr
}

// Init writes the defaults to the config file and returns what was written.
// An existing file is kept unless force is set.
func Init(force bool) (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return cfg, path, fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := Save(cfg); err != nil {
		return cfg, path, err
	}
	return cfg, path, nil
}

// explicitKeys records keys whose zero value is meaningful, so a file can
// set them to 0 even though mergeInto skips zeros.
type explicitKeys struct {
	Element struct {
		Padding *float32 `yaml:"padding"`
	} `yaml:"element"`
	Gesture struct {
		MinSize *float32 `yaml:"min_size"`
	} `yaml:"gesture"`
}

func mergeExplicitZeros(dst *AppConfig, data []byte) {
	var k explicitKeys
	if err := yaml.Unmarshal(data, &k); err != nil {
		return
	}
	if v := k.Element.Padding; v != nil && *v >= 0 {
		dst.Element.Padding = *v
	}
	if v := k.Gesture.MinSize; v != nil && *v >= 0 {
		dst.Gesture.MinSize = *v
	}
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Canvas.Width > 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height > 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	if src.Element.Content != "" {
		dst.Element.Content = src.Element.Content
	}
	if src.Element.FootprintW > 0 {
		dst.Element.FootprintW = src.Element.FootprintW
	}
	if src.Element.FootprintH > 0 {
		dst.Element.FootprintH = src.Element.FootprintH
	}
	if src.Element.Padding > 0 {
		dst.Element.Padding = src.Element.Padding
	}
	if strings.TrimSpace(src.Panel.FontFamily) != "" {
		dst.Panel.FontFamily = strings.TrimSpace(src.Panel.FontFamily)
	}
	if src.Panel.FontSizePx > 0 {
		dst.Panel.FontSizePx = src.Panel.FontSizePx
	}
	if strings.TrimSpace(src.Panel.Color) != "" {
		dst.Panel.Color = strings.TrimSpace(src.Panel.Color)
	}
	if len(src.Panel.Fonts) > 0 {
		dst.Panel.Fonts = append([]string(nil), src.Panel.Fonts...)
	}
	if strings.TrimSpace(src.Panel.FontFile) != "" {
		dst.Panel.FontFile = strings.TrimSpace(src.Panel.FontFile)
	}
	if len(src.Panel.FontFiles) > 0 {
		dst.Panel.FontFiles = make(map[string]string, len(src.Panel.FontFiles))
		for fam, file := range src.Panel.FontFiles {
			dst.Panel.FontFiles[fam] = strings.TrimSpace(file)
		}
	}
	if strings.TrimSpace(src.Highlight.Color) != "" {
		dst.Highlight.Color = strings.TrimSpace(src.Highlight.Color)
	}
	if src.Highlight.Width > 0 {
		dst.Highlight.Width = src.Highlight.Width
	}
	if src.Gesture.MinSize > 0 {
		dst.Gesture.MinSize = src.Gesture.MinSize
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v, ok := envFloat(EnvCanvasWidth); ok && v > 0 {
		cfg.Canvas.Width = v
	}
	if v, ok := envFloat(EnvCanvasHeight); ok && v > 0 {
		cfg.Canvas.Height = v
	}
	if v, ok := envFloat(EnvMinSize); ok && v >= 0 {
		cfg.Gesture.MinSize = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontFile)); v != "" {
		cfg.Panel.FontFile = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func envFloat(key string) (float32, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

// OverridableKeys lists the dotted keys EnvOverrideFor knows about.
var OverridableKeys = []string{
	"canvas.width", "canvas.height", "gesture.min_size", "panel.font_file",
	"logging.level", "logging.format", "logging.source", "logging.file",
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var env string
	switch key {
	case "canvas.width":
		env = EnvCanvasWidth
	case "canvas.height":
		env = EnvCanvasHeight
	case "gesture.min_size":
		env = EnvMinSize
	case "panel.font_file":
		env = EnvFontFile
	case "logging.level":
		env = EnvLogLevel
	case "logging.format":
		env = EnvLogFormat
	case "logging.source":
		env = EnvLogSource
	case "logging.file":
		env = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}

// Describe renders cfg as YAML followed by one comment line per key that an
// environment variable currently overrides.
func Describe(cfg AppConfig) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	var b strings.Builder
	b.Write(data)
	for _, key := range OverridableKeys {
		if env, ok := EnvOverrideFor(key); ok {
			fmt.Fprintf(&b, "# %s is overridden by %s\n", key, env)
		}
	}
	return b.String(), nil
}
