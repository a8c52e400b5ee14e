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

package slice

import (
	"reflect"

	"github.com/pkg/errors"
)

// Tracked wraps an array and remembers the contents it had at the last
// Commit, so callers can ask what was added or removed since then.
type Tracked struct {
	items []interface{}
	base  []interface{}
}

func NewTracked(items []interface{}) *Tracked {
	t := &Tracked{items: append([]interface{}{}, items...)}
	t.Commit()
	return t
}

func (t *Tracked) Push(items ...interface{}) int {
	t.items = append(t.items, items...)
	return len(t.items)
}

// Set replaces the element at i, growing the array with nil when i is past
// the end.
func (t *Tracked) Set(i int, v interface{}) error {
	if i < 0 {
		return errors.Errorf("index %d out of range", i)
	}
	for len(t.items) <= i {
		t.items = append(t.items, nil)
	}
	t.items[i] = v
	return nil
}

func (t *Tracked) RemoveAt(i int) (interface{}, error) {
	if i < 0 || i >= len(t.items) {
		return nil, errors.Errorf("index %d out of range [0,%d)", i, len(t.items))
	}
	v := t.items[i]
	t.items = append(t.items[:i], t.items[i+1:]...)
	return v, nil
}

// Items returns a copy of the current contents.
func (t *Tracked) Items() []interface{} {
	return append([]interface{}{}, t.items...)
}

func (t *Tracked) Len() int {
	return len(t.items)
}

// Changes returns the elements present now but not at the last commit, and
// the elements present at the last commit but gone now.
func (t *Tracked) Changes() (added, removed []interface{}) {
	c := NewComparator(t.base, t.items)
	return c.GetDstSubtraction(), c.GetSrcSubtraction()
}

// Dirty reports whether the contents or their order changed since the last
// commit.
func (t *Tracked) Dirty() bool {
	return !reflect.DeepEqual(t.base, t.items)
}

func (t *Tracked) Commit() {
	t.base = append([]interface{}{}, t.items...)
}
