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

package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitOrder(t *testing.T) {
	e := New()
	var got []string
	e.Subscribe(func(p interface{}) { got = append(got, "first:"+p.(string)) })
	e.Subscribe(func(p interface{}) { got = append(got, "second:"+p.(string)) })

	e.Emit("x")
	assert.Equal(t, []string{"first:x", "second:x"}, got)
	assert.Equal(t, 2, e.Len())
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	e := New()
	calls := 0
	unsubscribe := e.Subscribe(func(interface{}) { calls++ })
	other := e.Subscribe(func(interface{}) {})

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 1, e.Len())

	e.Emit(nil)
	assert.Equal(t, 0, calls)

	other()
	assert.Equal(t, 0, e.Len())
}

func TestUnsubscribeDuringEmitSkipsPending(t *testing.T) {
	e := New()
	var got []string
	var second func()
	e.Subscribe(func(interface{}) {
		got = append(got, "first")
		second()
	})
	second = e.Subscribe(func(interface{}) { got = append(got, "second") })

	e.Emit(nil)
	assert.Equal(t, []string{"first"}, got)
}

func TestSubscribeDuringEmitRunsNextTime(t *testing.T) {
	e := New()
	var got []string
	added := false
	e.Subscribe(func(interface{}) {
		got = append(got, "outer")
		if !added {
			added = true
			e.Subscribe(func(interface{}) { got = append(got, "inner") })
		}
	})

	e.Emit(nil)
	assert.Equal(t, []string{"outer"}, got)
	e.Emit(nil)
	assert.Equal(t, []string{"outer", "outer", "inner"}, got)
}

func TestReentrantEmit(t *testing.T) {
	e := New()
	depth := 0
	var seen []int
	e.Subscribe(func(p interface{}) {
		n := p.(int)
		seen = append(seen, n)
		if depth < 2 {
			depth++
			e.Emit(n + 1)
		}
	})

	e.Emit(0)
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestClear(t *testing.T) {
	e := New()
	calls := 0
	unsubscribe := e.Subscribe(func(interface{}) { calls++ })
	e.Clear()
	e.Emit(nil)
	unsubscribe()
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, e.Len())
}
