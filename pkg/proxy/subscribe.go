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

package proxy

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/sealerio/toolkit/pkg/errdefs"
)

type GetEvent struct {
	Path Path
	// Value is the resolved value, possibly rewritten by earlier observers.
	Value interface{}
}

// GetFunc observes a read and returns the value to hand on. Returning
// e.Value keeps it unchanged.
type GetFunc func(e GetEvent) interface{}

type SetEvent struct {
	Path     Path
	NewValue interface{}
	OldValue interface{}
}

type Decision int

const (
	Continue Decision = iota
	PreventDefault
)

// SetFunc observes an assignment before it happens. Any observer returning
// PreventDefault cancels it, the remaining observers still run.
type SetFunc func(e SetEvent) Decision

type AfterSetFunc func(e SetEvent)

type DefaultEvent struct {
	TraversedPath Path
	RemainingPath Path
	// Value is the value supplied by earlier observers, if any.
	Value interface{}
}

// DefaultFunc is asked for the value of a missing container while a Set
// walks to its target. Every matching observer runs; the last one returning
// Supply wins.
type DefaultFunc func(e DefaultEvent) Outcome

type subscribeOptions struct {
	includeSubProperties bool
}

type Option func(*subscribeOptions)

// IncludeSubProperties makes a subscription match every path below the
// subscribed one as well.
func IncludeSubProperties() Option {
	return func(o *subscribeOptions) {
		o.includeSubProperties = true
	}
}

type getDispatch struct {
	path  Path
	value interface{}
}

type setDispatch struct {
	ev        SetEvent
	prevented bool
}

type defaultDispatch struct {
	traversed Path
	remaining Path
	outcome   Outcome
}

func (p *Proxy) subscription(op string, loc Locator, callback bool, opts []Option) (Path, subscribeOptions) {
	if loc == nil {
		panic(errdefs.NewSyntax(fmt.Sprintf("%s requires a target", op), nil))
	}
	if !callback {
		panic(errdefs.NewSyntax(fmt.Sprintf("%s requires a callback", op), nil))
	}
	var o subscribeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return p.resolve(loc), o
}

// OnGet registers fn for reads of loc and returns its unsubscribe function.
func (p *Proxy) OnGet(loc Locator, fn GetFunc, opts ...Option) func() {
	path, o := p.subscription("OnGet", loc, fn != nil, opts)
	return p.onGet.Subscribe(func(payload interface{}) {
		d := payload.(*getDispatch)
		if !PathsMatch(path, d.path, o.includeSubProperties) {
			return
		}
		d.value = fn(GetEvent{Path: d.path.Copy(), Value: d.value})
	})
}

// OnSet registers fn for assignments at loc and returns its unsubscribe
// function.
func (p *Proxy) OnSet(loc Locator, fn SetFunc, opts ...Option) func() {
	path, o := p.subscription("OnSet", loc, fn != nil, opts)
	return p.onSet.Subscribe(func(payload interface{}) {
		d := payload.(*setDispatch)
		if !PathsMatch(path, d.ev.Path, o.includeSubProperties) {
			return
		}
		if fn(copySetEvent(d.ev)) == PreventDefault {
			d.prevented = true
		}
	})
}

// OnAfterSet registers fn for completed assignments at loc and returns its
// unsubscribe function.
func (p *Proxy) OnAfterSet(loc Locator, fn AfterSetFunc, opts ...Option) func() {
	path, o := p.subscription("OnAfterSet", loc, fn != nil, opts)
	return p.onAfterSet.Subscribe(func(payload interface{}) {
		ev := payload.(*SetEvent)
		if !PathsMatch(path, ev.Path, o.includeSubProperties) {
			return
		}
		fn(copySetEvent(*ev))
	})
}

// OnDefault registers fn as a provider of default containers at loc and
// returns its unsubscribe function.
func (p *Proxy) OnDefault(loc Locator, fn DefaultFunc, opts ...Option) func() {
	path, o := p.subscription("OnDefault", loc, fn != nil, opts)
	return p.onDefault.Subscribe(func(payload interface{}) {
		d := payload.(*defaultDispatch)
		if !PathsMatch(path, d.traversed, o.includeSubProperties) {
			return
		}
		out := fn(DefaultEvent{
			TraversedPath: d.traversed.Copy(),
			RemainingPath: d.remaining.Copy(),
			Value:         d.outcome.Value,
		})
		if out.IsSet {
			d.outcome = out
		}
	})
}

func copySetEvent(ev SetEvent) SetEvent {
	ev.Path = ev.Path.Copy()
	return ev
}

// emitSet reports whether an observer prevented the assignment.
func (p *Proxy) emitSet(ev SetEvent) bool {
	d := &setDispatch{ev: ev}
	p.onSet.Emit(d)
	return d.prevented
}

func (p *Proxy) emitAfterSet(ev SetEvent) {
	p.onAfterSet.Emit(&ev)
}

func (p *Proxy) emitDefault(traversed, remaining Path) (Outcome, error) {
	d := &defaultDispatch{traversed: traversed, remaining: remaining}
	p.onDefault.Emit(d)
	if !d.outcome.IsSet {
		return Decline(), nil
	}
	v, err := Normalize(d.outcome.Value)
	if err != nil {
		return Outcome{}, errors.Wrapf(err, "invalid default value at %q", traversed)
	}
	return Supply(v), nil
}
