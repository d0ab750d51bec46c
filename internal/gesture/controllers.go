/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	"textcanvas/internal/geom"
)

// Drag repositions a box so it follows the pointer rigidly from the grab point.
// The grab offset is captured once at Begin; moves set the origin absolutely,
// so the result does not depend on the path taken.
type Drag struct {
	box    Box
	sess   Session
	offset geom.Pt
}

func NewDrag(b Box) *Drag { return &Drag{box: b} }

func (d *Drag) Kind() Kind   { return KindDrag }
func (d *Drag) Active() bool { return d.sess.State == Active }
func (d *Drag) Cancel()      { d.sess.end() }

func (d *Drag) Begin(p Pointer) {
	d.sess.begin(p)
	d.offset = p.Pos.Sub(d.box.Origin())
	logBegin(KindDrag, p)
}

func (d *Drag) Move(p Pointer) bool {
	if !d.sess.owns(p) {
		return false
	}
	d.box.SetOrigin(p.Pos.Sub(d.offset))
	return true
}

func (d *Drag) End(p Pointer) bool {
	if !d.sess.owns(p) {
		return false
	}
	d.sess.end()
	logEnd(KindDrag, p)
	return true
}

// Resize grows or shrinks a box from its bottom-right handle.
type Resize struct {
	box Box
	// MinSize bounds width and height from below.
	MinSize        float32
	sess           Session
	startW, startH float32
}

func NewResize(b Box, minSize float32) *Resize { return &Resize{box: b, MinSize: minSize} }

func (r *Resize) Kind() Kind   { return KindResize }
func (r *Resize) Active() bool { return r.sess.State == Active }
func (r *Resize) Cancel()      { r.sess.end() }

func (r *Resize) Begin(p Pointer) {
	r.sess.begin(p)
	r.startW, r.startH = r.box.Size()
	logBegin(KindResize, p)
}

func (r *Resize) Move(p Pointer) bool {
	if !r.sess.owns(p) {
		return false
	}
	d := p.Pos.Sub(r.sess.Start)
	r.box.SetSize(max(r.startW+d.X, r.MinSize), max(r.startH+d.Y, r.MinSize))
	return true
}

func (r *Resize) End(p Pointer) bool {
	if !r.sess.owns(p) {
		return false
	}
	r.sess.end()
	logEnd(KindResize, p)
	return true
}

// Rotate turns a box about its center by the angle the pointer has swept
// since the grab. The center is re-measured on every move so a concurrent
// drag or resize moves the pivot with it.
type Rotate struct {
	box        Box
	sess       Session
	startAngle float32
}

func NewRotate(b Box) *Rotate { return &Rotate{box: b} }

func (r *Rotate) Kind() Kind   { return KindRotate }
func (r *Rotate) Active() bool { return r.sess.State == Active }
func (r *Rotate) Cancel()      { r.sess.end() }

func (r *Rotate) Begin(p Pointer) {
	r.sess.begin(p)
	r.startAngle = geom.Angle(r.box.Bounds().Center(), p.Pos)
	logBegin(KindRotate, p)
}

func (r *Rotate) Move(p Pointer) bool {
	if !r.sess.owns(p) {
		return false
	}
	a := geom.Angle(r.box.Bounds().Center(), p.Pos)
	r.box.SetRotation(geom.NormalizeAngle(a - r.startAngle))
	return true
}

func (r *Rotate) End(p Pointer) bool {
	if !r.sess.owns(p) {
		return false
	}
	r.sess.end()
	logEnd(KindRotate, p)
	return true
}
