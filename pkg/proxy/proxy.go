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
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sealerio/toolkit/pkg/errdefs"
	"github.com/sealerio/toolkit/pkg/event"
)

// Proxy owns a target value and the node tree, observers and dispatch
// machinery built on top of it. It is not safe for concurrent use.
type Proxy struct {
	target   interface{}
	accessor *Accessor
	nodes    *arena

	onGet      *event.Event
	onSet      *event.Event
	onAfterSet *event.Event
	onDefault  *event.Event
}

// New wraps target. A target of type map[string]interface{} or []interface{}
// is used in place; see Target for arrays that have to grow.
func New(target interface{}) (*Proxy, error) {
	t, err := Normalize(target)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create proxy")
	}
	p := &Proxy{
		target:     t,
		nodes:      newArena(),
		onGet:      event.New(),
		onSet:      event.New(),
		onAfterSet: event.New(),
		onDefault:  event.New(),
	}
	p.accessor = &Accessor{root: func() interface{} { return p.target }}
	return p, nil
}

// Root returns the node of the empty path.
func (p *Proxy) Root() Node {
	return Node{id: rootID, owner: p}
}

// Node returns the node for path.
func (p *Proxy) Node(path Path) Node {
	n := p.Root()
	for _, seg := range path {
		n = n.At(seg)
	}
	return n
}

// Target returns the live target. Growing an array that is the root target
// replaces its slice header, so callers wrapping an array should read it
// back from here.
func (p *Proxy) Target() interface{} {
	return p.target
}

func (p *Proxy) Accessor() *Accessor {
	return p.accessor
}

// resolve turns a locator into a private copy of its path. A nil locator is
// the root.
func (p *Proxy) resolve(loc Locator) Path {
	if loc == nil {
		return Path{}
	}
	if n, ok := loc.(Node); ok && !n.Valid() {
		panic(errdefs.NewSyntax("node does not belong to a proxy", nil))
	}
	return loc.Path().Copy()
}

// Get resolves loc against the target and passes the value through every
// matching on-get observer.
func (p *Proxy) Get(loc Locator) interface{} {
	path := p.resolve(loc)
	d := &getDispatch{path: path, value: p.accessor.Get(path).Value}
	p.onGet.Emit(d)
	return d.value
}

// IsSet reports whether loc currently resolves to a value. Observers are
// not involved.
func (p *Proxy) IsSet(loc Locator) bool {
	return p.accessor.Get(p.resolve(loc)).IsSet
}

// Traverse walks loc through the live target with caller supplied hooks.
// When OnEmptyProperty is given without Set, materialized values are
// written into the target.
func (p *Proxy) Traverse(loc Locator, opts *TraverseOptions) (Result, error) {
	path := p.resolve(loc)
	if opts != nil && opts.OnEmptyProperty != nil && opts.Set == nil {
		o := *opts
		o.Set = p.write
		opts = &o
	}
	return Traverse(p.target, path, opts)
}

// Set assigns value at loc. Missing containers on the way are created, first
// by asking the on-default observers, then as an array when the next segment
// is an index and an object otherwise. When the parent of loc is not a
// container the call does nothing. On-set observers may prevent the
// assignment, on-after-set observers see it once done. A nil or empty
// locator delegates to Assign.
func (p *Proxy) Set(loc Locator, value interface{}) error {
	path := p.resolve(loc)
	if len(path) == 0 {
		return p.Assign(value)
	}
	v, err := Normalize(value)
	if err != nil {
		return errors.Wrapf(err, "failed to set %q", path)
	}

	parentPath, last := path.Split()
	res, err := Traverse(p.target, parentPath, &TraverseOptions{
		Set: p.write,
		OnEmptyProperty: func(traversed, remaining Path) (Outcome, error) {
			out, err := p.emitDefault(traversed, remaining)
			if err != nil || out.IsSet {
				return out, err
			}
			next := last
			if len(remaining) > 0 {
				next = remaining[0]
			}
			logrus.Debugf("creating missing container at %q", traversed)
			if next.IsIndex() {
				return Supply([]interface{}{}), nil
			}
			return Supply(map[string]interface{}{}), nil
		},
	})
	if err != nil {
		return err
	}
	if !canAssign(res.Value, last) {
		logrus.Debugf("skip setting %q: parent is not a container", path)
		return nil
	}

	old, _, _ := lookup(res.Value, last)
	ev := SetEvent{Path: path, NewValue: v, OldValue: old}
	if p.emitSet(ev) {
		logrus.Debugf("setting %q was prevented", path)
		return nil
	}
	if !p.write(path, v) {
		logrus.Debugf("skip setting %q: value could not be attached", path)
		return nil
	}
	p.emitAfterSet(ev)
	return nil
}

// Assign shallowly merges value onto the root target: the keys of an object
// onto an object, the elements of an array onto an array. Any other value
// replaces the target. On-after-set observers receive a deep copy of the
// target as it was before the merge.
func (p *Proxy) Assign(value interface{}) error {
	v, err := Normalize(value)
	if err != nil {
		return errors.Wrap(err, "failed to assign target")
	}
	if p.emitSet(SetEvent{Path: Path{}, NewValue: v, OldValue: p.target}) {
		logrus.Debug("assigning target was prevented")
		return nil
	}
	if p.target, err = Normalize(p.target); err != nil {
		return errors.Wrap(err, "failed to snapshot target")
	}
	old := DeepCopy(p.target)
	p.target = merge(p.target, v)
	p.emitAfterSet(SetEvent{Path: Path{}, NewValue: v, OldValue: old})
	return nil
}

// write stores v at path and reports whether the target changed.
func (p *Proxy) write(path Path, v interface{}) bool {
	root, ok := writeInto(p.target, path, v)
	if ok {
		p.target = root
	}
	return ok
}
