/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gesture implements press-move-release tracking for the three direct
// manipulation modes of a canvas element: drag, resize and rotate.
//
// Each controller owns one Session. A session is created by Begin on a press,
// updated by Move while active and destroyed by End on release. Controllers
// never touch global state; the editor connects them to pointer events
// through a Bus and releases the subscriptions when the element goes away.
package gesture

import (
	"context"
	"log/slog"

	"textcanvas/internal/geom"
	applog "textcanvas/internal/log"
)

// Kind identifies the gesture a controller performs.
type Kind int

const (
	KindDrag Kind = iota
	KindResize
	KindRotate
)

func (k Kind) String() string {
	switch k {
	case KindDrag:
		return "drag"
	case KindResize:
		return "resize"
	case KindRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// State of a session.
type State int

const (
	Idle State = iota
	Active
)

// Pointer is one pointer sample in canvas coordinates. ID separates
// simultaneous pointers; a mouse always reports 0.
type Pointer struct {
	ID  int
	Pos geom.Pt
}

// Session is the per-gesture state held between a press and its release.
type Session struct {
	State     State
	PointerID int
	Start     geom.Pt
}

func (s *Session) begin(p Pointer) {
	*s = Session{State: Active, PointerID: p.ID, Start: p.Pos}
}

func (s *Session) end() { *s = Session{} }

// owns reports whether p belongs to this active session.
func (s *Session) owns(p Pointer) bool { return s.State == Active && s.PointerID == p.ID }

// Box is the element geometry the controllers read and write.
type Box interface {
	Origin() geom.Pt
	SetOrigin(geom.Pt)
	Size() (w, h float32)
	SetSize(w, h float32)
	// Bounds is the axis-aligned box of the element as currently rendered.
	Bounds() geom.Rect
	SetRotation(rad float32)
}

// Controller is the common surface of Drag, Resize and Rotate.
type Controller interface {
	Kind() Kind
	Begin(p Pointer)
	// Move applies p to the box; it reports whether the sample was consumed.
	Move(p Pointer) bool
	// End finishes the session if p belongs to it.
	End(p Pointer) bool
	Active() bool
	// Cancel drops the session without a release.
	Cancel()
}

func logBegin(kind Kind, p Pointer) {
	l := applog.WithComponent("gesture")
	l.DebugContext(applog.WithGesture(context.Background(), kind.String()), "session begin",
		slog.Int("pointer", p.ID), slog.Float64("x", float64(p.Pos.X)), slog.Float64("y", float64(p.Pos.Y)))
}

func logEnd(kind Kind, p Pointer) {
	l := applog.WithComponent("gesture")
	l.DebugContext(applog.WithGesture(context.Background(), kind.String()), "session end", slog.Int("pointer", p.ID))
}
