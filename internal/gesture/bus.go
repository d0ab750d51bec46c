/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

// Bus fans pointer move and release events out to subscribed controllers.
// Every Subscribe returns a Handle; removing it is the only way a controller
// stops receiving events, so owners must release handles when they go away.
type Bus struct {
	subs   []subscription
	nextID uint32
}

type subscription struct {
	id uint32
	c  Controller
}

// Handle allows removing a subscription.
type Handle struct {
	id  uint32
	bus *Bus
}

// Remove unregisters the subscription. Calling it twice is harmless.
func (h Handle) Remove() {
	if h.bus == nil {
		return
	}
	s := h.bus.subs
	for i := range s {
		if s[i].id == h.id {
			h.bus.subs = append(s[:i], s[i+1:]...)
			return
		}
	}
}

// Subscribe registers c for moves and releases.
func (b *Bus) Subscribe(c Controller) Handle {
	b.nextID++
	b.subs = append(b.subs, subscription{id: b.nextID, c: c})
	return Handle{id: b.nextID, bus: b}
}

// Move delivers p to every subscriber and reports whether any active session
// consumed it; the caller suppresses default handling (text selection, native
// drag) when it did.
func (b *Bus) Move(p Pointer) bool {
	handled := false
	for _, s := range b.snapshot() {
		if s.c.Move(p) {
			handled = true
		}
	}
	return handled
}

// Up delivers a release to every subscriber.
func (b *Bus) Up(p Pointer) bool {
	handled := false
	for _, s := range b.snapshot() {
		if s.c.End(p) {
			handled = true
		}
	}
	return handled
}

// Len is the number of live subscriptions.
func (b *Bus) Len() int { return len(b.subs) }

// snapshot lets handlers remove subscriptions while an event is delivered.
func (b *Bus) snapshot() []subscription {
	return append([]subscription(nil), b.subs...)
}
