/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"textcanvas/internal/config"
	"textcanvas/internal/crash"
	"textcanvas/internal/editor"
	applog "textcanvas/internal/log"
	"textcanvas/internal/render"
	"textcanvas/internal/replay"
	"textcanvas/internal/textlayout"
	"textcanvas/internal/ui"
	"textcanvas/internal/version"
)

func usage() {
	fmt.Println("Text Canvas - floating text box editor")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  textcanvas version|-v|--version          Show version")
	fmt.Println("  textcanvas ui                            Launch desktop UI (build with -tags fyne for full UI)")
	fmt.Println("  textcanvas replay <script.yaml> [out.png] Replay a gesture script and print the result")
	fmt.Println("  textcanvas config [init [--force]]       Show the effective config, or write the defaults")
}

// session holds what a crash report should describe.
type session struct{ ed *editor.Editor }

func (s *session) DumpState() string {
	if s.ed == nil {
		return "no editor"
	}
	return s.ed.DumpState()
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config loaded with problems", slog.Any("err", cfgErr))
	}
	st := &session{}
	defer crash.Recover(st)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return
	}
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("Text Canvas")
		fmt.Println(version.String())
	case "ui":
		if err := ui.Run(cfg); err != nil {
			l.Error("ui failed", slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "replay":
		if len(args) < 3 {
			fmt.Println("replay requires <script.yaml>")
			usage()
			os.Exit(2)
		}
		out := ""
		if len(args) >= 4 {
			out = args[3]
		}
		if err := runReplay(cfg, args[2], out, st); err != nil {
			l.Error("replay failed", slog.String("script", args[2]), slog.Any("err", err))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "config":
		if len(args) >= 3 && args[2] == "init" {
			force := len(args) >= 4 && args[3] == "--force"
			written, path, err := config.Init(force)
			if errors.Is(err, config.ErrExists) {
				fmt.Println("Error:", err)
				fmt.Println("Use 'textcanvas config init --force' to overwrite it.")
				os.Exit(1)
			}
			if err != nil {
				l.Error("config init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			l.Info("config written", slog.String("path", path))
			printConfig(path, written)
			return
		}
		path, _ := config.ConfigPath()
		printConfig(path, cfg)
	default:
		usage()
		os.Exit(2)
	}
}

func printConfig(path string, cfg config.AppConfig) {
	out, err := config.Describe(cfg)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Printf("# %s\n%s", path, out)
}

func runReplay(cfg config.AppConfig, script, out string, st *session) error {
	s, err := replay.Load(script)
	if err != nil {
		return err
	}
	provider, err := textlayout.ProviderFor(cfg.Panel.FontFile, cfg.Panel.FontFiles)
	if err != nil {
		return err
	}
	ed := editor.New(s.Options(editor.OptionsFromConfig(cfg, provider)))
	st.ed = ed
	res, err := replay.Run(ed, s)
	if err != nil {
		return err
	}
	fmt.Printf("Replayed %d steps (%d handled moves)\n", res.Steps, res.Handled)
	fmt.Print(replay.Summary(ed))
	if out == "" {
		return nil
	}
	if err := render.SavePNG(out, ed, render.Options{Provider: provider, Padding: ed.Padding()}); err != nil {
		return err
	}
	fmt.Println("Preview written to", out)
	return nil
}
