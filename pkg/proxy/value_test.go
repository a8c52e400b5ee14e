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
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sealerio/toolkit/pkg/errdefs"
)

type sample struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want interface{}
	}{
		{"nil", nil, nil},
		{"int", 3, int64(3)},
		{"int32", int32(-3), int64(-3)},
		{"uint16", uint16(7), int64(7)},
		{"huge uint64", uint64(math.MaxUint64), float64(math.MaxUint64)},
		{"float32", float32(1.5), float64(1.5)},
		{"json number", json.Number("12"), json.Number("12")},
		{"string map", map[string]string{"a": "b"}, map[string]interface{}{"a": "b"}},
		{"int slice", []int{1, 2}, []interface{}{int64(1), int64(2)}},
		{"array", [2]bool{true, false}, []interface{}{true, false}},
		{"nested", map[string]interface{}{"list": []interface{}{1, map[string]int{"x": 2}}},
			map[string]interface{}{"list": []interface{}{int64(1), map[string]interface{}{"x": int64(2)}}}},
		{"struct", sample{Name: "n", Count: 2}, map[string]interface{}{"name": "n", "count": int64(2)}},
		{"struct pointer", &sample{Name: "p", Tags: []string{"t"}},
			map[string]interface{}{"name": "p", "count": int64(0), "tags": []interface{}{"t"}}},
		{"nil pointer", (*sample)(nil), nil},
		{"pointer to scalar", func() *int { i := 4; return &i }(), int64(4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeInPlace(t *testing.T) {
	m := map[string]interface{}{"a": 1}
	got, err := Normalize(m)
	assert.NoError(t, err)
	got.(map[string]interface{})["b"] = "x"
	assert.Equal(t, int64(1), m["a"])
	assert.Equal(t, "x", m["b"])
}

func TestNormalizeUnsupported(t *testing.T) {
	for _, v := range []interface{}{make(chan int), func() {}, map[int]string{1: "a"}, complex(1, 2)} {
		_, err := Normalize(v)
		assert.True(t, errdefs.IsArgument(err), "%T: %v", v, err)
	}
}

func TestDeepCopy(t *testing.T) {
	orig := map[string]interface{}{"a": []interface{}{map[string]interface{}{"b": int64(1)}}}
	cp := DeepCopy(orig).(map[string]interface{})
	cp["a"].([]interface{})[0].(map[string]interface{})["b"] = int64(2)
	assert.Equal(t, int64(1), orig["a"].([]interface{})[0].(map[string]interface{})["b"])
}

func TestWriteInto(t *testing.T) {
	root := map[string]interface{}{"list": []interface{}{}}
	got, ok := writeInto(root, NewPath("list", 2), "x")
	assert.True(t, ok)
	assert.Equal(t, []interface{}{nil, nil, "x"}, got.(map[string]interface{})["list"])

	_, ok = writeInto(root, NewPath("list", "name"), "x")
	assert.False(t, ok)
	_, ok = writeInto(root, NewPath("missing", "deeper"), "x")
	assert.False(t, ok)

	got, ok = writeInto(nil, Path{}, "replaced")
	assert.True(t, ok)
	assert.Equal(t, "replaced", got)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		dst  interface{}
		src  interface{}
		want interface{}
	}{
		{"objects", map[string]interface{}{"a": int64(1), "b": int64(2)}, map[string]interface{}{"b": int64(3)},
			map[string]interface{}{"a": int64(1), "b": int64(3)}},
		{"arrays", []interface{}{"a", "b"}, []interface{}{"x", "y", "z"}, []interface{}{"x", "y", "z"}},
		{"shorter array", []interface{}{"a", "b"}, []interface{}{"x"}, []interface{}{"x", "b"}},
		{"mismatched kinds replace", map[string]interface{}{"a": int64(1)}, []interface{}{"x"}, []interface{}{"x"}},
		{"nil source keeps target", map[string]interface{}{"a": int64(1)}, nil, map[string]interface{}{"a": int64(1)}},
		{"nil target is replaced", nil, map[string]interface{}{"a": int64(1)}, map[string]interface{}{"a": int64(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, merge(tt.dst, tt.src))
		})
	}
}

func TestKeysOf(t *testing.T) {
	assert.Equal(t, []Segment{Index(2), Key("a"), Key("b")}, keysOf(map[string]interface{}{"b": 1, "a": 2, "2": 3}))
	assert.Equal(t, []Segment{Index(1), Index(3)}, keysOf([]interface{}{nil, "x", nil, "y"}))
	assert.Nil(t, keysOf("scalar"))
}
