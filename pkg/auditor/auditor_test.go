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

package auditor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sealerio/toolkit/pkg/proxy"
)

func newAudited(t *testing.T, target interface{}) (*proxy.Proxy, *Auditor) {
	p, err := proxy.New(target)
	assert.NoError(t, err)
	a, err := New(p)
	assert.NoError(t, err)
	return p, a
}

func TestHistory(t *testing.T) {
	p, a := newAudited(t, map[string]interface{}{})
	assert.NoError(t, p.Set(proxy.NewPath("a"), 1))
	assert.NoError(t, p.Set(proxy.NewPath("b", "c"), 2))
	assert.NoError(t, p.Set(proxy.NewPath("a"), 3))

	history := a.History()
	assert.Equal(t, 3, a.Len())
	assert.Len(t, history, 3)

	var paths, pointers []string
	for i, e := range history {
		assert.Equal(t, i+1, e.Seq)
		assert.NotEmpty(t, e.ID)
		paths = append(paths, e.Path)
		pointers = append(pointers, e.Pointer)
	}
	assert.Equal(t, []string{"a", "b.c", "a"}, paths)
	assert.Equal(t, []string{"/a", "/b/c", "/a"}, pointers)

	assert.JSONEq(t, `{"a":1}`, string(history[0].Forward))
	assert.JSONEq(t, `{"a":null}`, string(history[0].Reverse))
	assert.JSONEq(t, `{"b":{"c":2}}`, string(history[1].Forward))
	assert.JSONEq(t, `{"a":3}`, string(history[2].Forward))
	assert.JSONEq(t, `{"a":1}`, string(history[2].Reverse))

	e, ok := a.Entry(history[1].ID)
	assert.True(t, ok)
	assert.Equal(t, history[1], e)
	_, ok = a.Entry("missing")
	assert.False(t, ok)
}

func TestEntriesAt(t *testing.T) {
	p, a := newAudited(t, map[string]interface{}{})
	assert.NoError(t, p.Set(proxy.NewPath("a", "x"), 1))
	assert.NoError(t, p.Set(proxy.NewPath("ab"), 1))
	assert.NoError(t, p.Set(proxy.NewPath("a"), map[string]interface{}{"y": 2}))
	assert.NoError(t, p.Set(proxy.NewPath("a", "x"), 3))

	seqs := func(entries []Entry) []int {
		var res []int
		for _, e := range entries {
			res = append(res, e.Seq)
		}
		return res
	}
	assert.Equal(t, []int{1, 3, 4}, seqs(a.EntriesAt(proxy.NewPath("a"))))
	assert.Equal(t, []int{1, 4}, seqs(a.EntriesAt(p.Root().Field("a").Field("x"))))
	assert.Equal(t, []int{2}, seqs(a.EntriesAt(proxy.NewPath("ab"))))
	assert.Equal(t, []int{1, 2, 3, 4}, seqs(a.EntriesAt(nil)))
	assert.Empty(t, a.EntriesAt(proxy.NewPath("missing")))
}

func TestReplayRewind(t *testing.T) {
	p, a := newAudited(t, map[string]interface{}{"keep": "k"})
	assert.NoError(t, p.Set(proxy.NewPath("a"), 1))
	assert.NoError(t, p.Set(proxy.NewPath("list", 1), "x"))
	assert.NoError(t, p.Set(proxy.NewPath("a"), 2))

	tests := []struct {
		name string
		run  func() (interface{}, error)
		want interface{}
	}{
		{"replay none", func() (interface{}, error) { return a.Replay(0) }, map[string]interface{}{"keep": "k"}},
		{"replay one", func() (interface{}, error) { return a.Replay(1) }, map[string]interface{}{"keep": "k", "a": int64(1)}},
		{"replay two", func() (interface{}, error) { return a.Replay(2) }, map[string]interface{}{
			"keep": "k", "a": int64(1), "list": []interface{}{nil, "x"},
		}},
		{"replay all", func() (interface{}, error) { return a.Replay(3) }, p.Target()},
		{"rewind none", func() (interface{}, error) { return a.Rewind(0) }, p.Target()},
		{"rewind one", func() (interface{}, error) { return a.Rewind(1) }, map[string]interface{}{
			"keep": "k", "a": int64(1), "list": []interface{}{nil, "x"},
		}},
		{"rewind all", func() (interface{}, error) { return a.Rewind(3) }, map[string]interface{}{"keep": "k"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := a.Replay(4)
	assert.Error(t, err)
	_, err = a.Rewind(-1)
	assert.Error(t, err)
}

func TestSkipsUnchangedAndPrevented(t *testing.T) {
	p, a := newAudited(t, map[string]interface{}{"a": "x"})
	p.OnSet(proxy.NewPath("locked"), func(proxy.SetEvent) proxy.Decision {
		return proxy.PreventDefault
	})

	assert.NoError(t, p.Set(proxy.NewPath("a"), "x"))
	assert.NoError(t, p.Set(proxy.NewPath("locked"), 1))
	assert.NoError(t, p.Set(proxy.NewPath("a", "below"), 1))
	assert.Equal(t, 0, a.Len())
	assert.NoError(t, a.Err())
}

func TestSkipsKeyBelowArray(t *testing.T) {
	p, a := newAudited(t, map[string]interface{}{"list": []interface{}{}})
	assert.NoError(t, p.Set(proxy.NewPath("list", "x", "y"), "v"))
	assert.Equal(t, 0, a.Len())
	assert.NoError(t, a.Err())
}

func TestNestedWrites(t *testing.T) {
	p, a := newAudited(t, map[string]interface{}{})
	p.OnAfterSet(proxy.NewPath("a"), func(e proxy.SetEvent) {
		assert.NoError(t, p.Set(proxy.NewPath("double"), e.NewValue.(int64)*2))
	})

	assert.NoError(t, p.Set(proxy.NewPath("a"), 2))
	assert.Equal(t, 2, a.Len())
	got, err := a.Replay(2)
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": int64(2), "double": int64(4)}, got)
}

func TestAssignIsRecorded(t *testing.T) {
	p, a := newAudited(t, map[string]interface{}{"a": 1})
	assert.NoError(t, p.Assign(map[string]interface{}{"b": 2}))

	history := a.History()
	assert.Len(t, history, 1)
	assert.Equal(t, "", history[0].Path)
	assert.Equal(t, "", history[0].Pointer)
	assert.JSONEq(t, `{"b":2}`, string(history[0].Forward))
}

func TestNonObjectRoots(t *testing.T) {
	p, a := newAudited(t, []interface{}{"a"})
	assert.NoError(t, p.Set(proxy.NewPath(2), "c"))
	got, err := a.Replay(1)
	assert.NoError(t, err)
	assert.Equal(t, []interface{}{"a", nil, "c"}, got)
	got, err = a.Rewind(1)
	assert.NoError(t, err)
	assert.Equal(t, []interface{}{"a"}, got)

	q, b := newAudited(t, nil)
	assert.NoError(t, q.Set(proxy.NewPath("a"), 1))
	got, err = b.Replay(0)
	assert.NoError(t, err)
	assert.Nil(t, got)
	got, err = b.Replay(1)
	assert.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": int64(1)}, got)
	got, err = b.Rewind(1)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCaptureErrors(t *testing.T) {
	p, a := newAudited(t, map[string]interface{}{})
	assert.NoError(t, p.Set(proxy.NewPath("bad"), math.NaN()))
	assert.NoError(t, p.Set(proxy.NewPath("worse"), math.Inf(1)))

	assert.Equal(t, 0, a.Len())
	err := a.Err()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
}

func TestClose(t *testing.T) {
	p, a := newAudited(t, map[string]interface{}{})
	assert.NoError(t, p.Set(proxy.NewPath("a"), 1))
	a.Close()
	a.Close()
	assert.NoError(t, p.Set(proxy.NewPath("b"), 1))
	assert.Equal(t, 1, a.Len())
}
