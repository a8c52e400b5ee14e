// Copyright © 2023 Alibaba Group Holding Ltd.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package event implements a synchronous publish/subscribe primitive.
//
// Listeners run on the emitting goroutine in subscription order. Emit works on
// a snapshot of the listener list, so listeners may subscribe, unsubscribe or
// emit again while being notified: a listener removed during an emit is
// skipped if it has not run yet, and a listener added during an emit first
// runs on the next one. An Event is not safe for concurrent use.
package event

import "sync"

type Listener func(payload interface{})

type subscription struct {
	fn      Listener
	removed bool
}

type Event struct {
	subs []*subscription
}

func New() *Event {
	return &Event{}
}

// Subscribe registers fn and returns a function removing it again. Calling
// the returned function more than once is a no-op.
func (e *Event) Subscribe(fn Listener) (unsubscribe func()) {
	s := &subscription{fn: fn}
	e.subs = append(e.subs, s)

	var once sync.Once
	return func() {
		once.Do(func() {
			e.remove(s)
		})
	}
}

func (e *Event) remove(s *subscription) {
	s.removed = true
	for i, sub := range e.subs {
		if sub == s {
			e.subs = append(e.subs[:i:i], e.subs[i+1:]...)
			return
		}
	}
}

// Emit calls every listener with payload.
func (e *Event) Emit(payload interface{}) {
	if len(e.subs) == 0 {
		return
	}
	snapshot := make([]*subscription, len(e.subs))
	copy(snapshot, e.subs)
	for _, s := range snapshot {
		if s.removed {
			continue
		}
		s.fn(payload)
	}
}

func (e *Event) Len() int {
	return len(e.subs)
}

// Clear drops every listener.
func (e *Event) Clear() {
	for _, s := range e.subs {
		s.removed = true
	}
	e.subs = nil
}
