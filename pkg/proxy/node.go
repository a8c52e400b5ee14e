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
	"github.com/sealerio/toolkit/pkg/errdefs"
)

// NodeID identifies a node inside the arena of its Proxy.
type NodeID int

const rootID NodeID = 0

// Node is a handle on one path of a Proxy. Nodes carry no data: their path is
// kept in the arena of the owning Proxy. Asking the same node for the same
// child always yields the same node, and Nodes compare equal with ==.
type Node struct {
	id    NodeID
	owner *Proxy
}

type childKey struct {
	parent NodeID
	seg    Segment
}

type arena struct {
	paths    []Path
	children map[childKey]NodeID
}

func newArena() *arena {
	return &arena{
		paths:    []Path{{}},
		children: map[childKey]NodeID{},
	}
}

func (a *arena) child(parent NodeID, seg Segment) NodeID {
	key := childKey{parent: parent, seg: seg}
	if id, ok := a.children[key]; ok {
		return id
	}
	id := NodeID(len(a.paths))
	a.paths = append(a.paths, a.paths[parent].Child(seg))
	a.children[key] = id
	return id
}

// Valid reports whether n was obtained from a Proxy. The zero Node is not
// valid.
func (n Node) Valid() bool {
	return n.owner != nil
}

func (n Node) ID() NodeID {
	return n.id
}

func (n Node) mustOwner() *Proxy {
	if n.owner == nil {
		panic(errdefs.NewSyntax("node does not belong to a proxy", nil))
	}
	return n.owner
}

// Path returns a copy of the path n stands for.
func (n Node) Path() Path {
	if n.owner == nil {
		return nil
	}
	return n.owner.nodes.paths[n.id].Copy()
}

func (n Node) String() string {
	return n.Path().String()
}

// At returns the child node for seg.
func (n Node) At(seg Segment) Node {
	p := n.mustOwner()
	return Node{id: p.nodes.child(n.id, seg), owner: p}
}

// Field returns the child node for key k. Canonical decimal keys are turned
// into indices, see Key.
func (n Node) Field(k string) Node {
	return n.At(Key(k))
}

func (n Node) Index(i int) Node {
	return n.At(Index(i))
}

// Has reports whether the child seg of n is currently set.
func (n Node) Has(seg Segment) bool {
	p := n.mustOwner()
	return p.accessor.Get(p.nodes.paths[n.id].Child(seg)).IsSet
}

// Keys lists the keys of the object, or the set indices of the array, that n
// currently resolves to. It returns nil when n does not resolve to either.
func (n Node) Keys() []Segment {
	p := n.mustOwner()
	res := p.accessor.Get(p.nodes.paths[n.id])
	if !res.IsSet {
		return nil
	}
	return keysOf(res.Value)
}

func (n Node) Get() interface{} {
	return n.mustOwner().Get(n)
}

func (n Node) IsSet() bool {
	return n.mustOwner().IsSet(n)
}

func (n Node) Set(v interface{}) error {
	return n.mustOwner().Set(n, v)
}
