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
	"fmt"
	"math"
	"reflect"

	"k8s.io/apimachinery/pkg/runtime"

	"github.com/sealerio/toolkit/pkg/errdefs"
	"github.com/sealerio/toolkit/utils/maps"
)

// Normalize converts v into the value model understood by the proxy: nil,
// bool, int64, float64, json.Number, string, map[string]interface{} and
// []interface{}. Maps and slices already of those two types are normalized
// in place and keep their identity. Structs go through the unstructured
// converter and come back as maps.
func Normalize(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case nil, bool, int64, float64, string, json.Number:
		return v, nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint:
		return normalizeUint(uint64(t)), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		return normalizeUint(t), nil
	case float32:
		return float64(t), nil
	case map[string]interface{}:
		for k, elem := range t {
			n, err := Normalize(elem)
			if err != nil {
				return nil, err
			}
			t[k] = n
		}
		return t, nil
	case []interface{}:
		for i, elem := range t {
			n, err := Normalize(elem)
			if err != nil {
				return nil, err
			}
			t[i] = n
		}
		return t, nil
	}
	return normalizeReflect(reflect.ValueOf(v))
}

func normalizeUint(u uint64) interface{} {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

func normalizeReflect(rv reflect.Value) (interface{}, error) {
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Elem().Kind() == reflect.Struct {
			return toUnstructured(rv.Interface())
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Struct:
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		return toUnstructured(ptr.Interface())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return nil, nil
		}
		m := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			n, err := Normalize(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			m[iter.Key().String()] = n
		}
		return m, nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		s := make([]interface{}, rv.Len())
		for i := range s {
			n, err := Normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			s[i] = n
		}
		return s, nil
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return normalizeUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}
	return nil, errdefs.NewArgument(fmt.Sprintf("unsupported value of type %s", rv.Type()), nil)
}

func toUnstructured(obj interface{}) (interface{}, error) {
	m, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, errdefs.Wrap(errdefs.KindArgument, err, fmt.Sprintf("failed to convert %T", obj))
	}
	return m, nil
}

// DeepCopy returns a deep copy of a normalized value.
func DeepCopy(v interface{}) interface{} {
	return runtime.DeepCopyJSONValue(v)
}

func isContainer(v interface{}) bool {
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return true
	}
	return false
}

// lookup reads seg from container. exist is false for a missing key or an
// out of range index; indexable is false when container is not an object or
// an array, or when a key segment is applied to an array.
func lookup(container interface{}, seg Segment) (v interface{}, exist bool, indexable bool) {
	switch c := container.(type) {
	case map[string]interface{}:
		v, exist = c[seg.String()]
		return v, exist, true
	case []interface{}:
		if !seg.isIndex {
			return nil, false, false
		}
		if seg.index >= len(c) {
			return nil, false, true
		}
		return c[seg.index], true, true
	}
	return nil, false, false
}

func canAssign(container interface{}, seg Segment) bool {
	switch container.(type) {
	case map[string]interface{}:
		return true
	case []interface{}:
		return seg.isIndex
	}
	return false
}

// assign stores v under seg and returns the container, which for an array is
// a new slice header when it had to grow.
func assign(container interface{}, seg Segment, v interface{}) (interface{}, bool) {
	switch c := container.(type) {
	case map[string]interface{}:
		c[seg.String()] = v
		return c, true
	case []interface{}:
		if !seg.isIndex {
			return container, false
		}
		for len(c) <= seg.index {
			c = append(c, nil)
		}
		c[seg.index] = v
		return c, true
	}
	return container, false
}

// writeInto stores v at path below root and returns the new root. Every
// container on the way is stored back into its parent so grown arrays stay
// attached.
func writeInto(root interface{}, path Path, v interface{}) (interface{}, bool) {
	if len(path) == 0 {
		return v, true
	}
	seg := path[0]
	if len(path) == 1 {
		return assign(root, seg, v)
	}
	child, _, _ := lookup(root, seg)
	newChild, ok := writeInto(child, path[1:], v)
	if !ok {
		return root, false
	}
	return assign(root, seg, newChild)
}

// merge shallowly assigns src onto dst, the way Object.assign does: keys of
// an object onto an object, indices of an array onto an array. Any other
// combination replaces dst entirely, a nil src leaves dst untouched.
func merge(dst, src interface{}) interface{} {
	if src == nil {
		return dst
	}
	switch d := dst.(type) {
	case map[string]interface{}:
		if s, ok := src.(map[string]interface{}); ok {
			return maps.Merge(d, s)
		}
	case []interface{}:
		if s, ok := src.([]interface{}); ok {
			for i, elem := range s {
				if i < len(d) {
					d[i] = elem
				} else {
					d = append(d, elem)
				}
			}
			return d
		}
	}
	return src
}

// keysOf lists the segments present on container, nil for a scalar.
func keysOf(container interface{}) []Segment {
	switch c := container.(type) {
	case map[string]interface{}:
		keys := maps.SortedKeys(c)
		segs := make([]Segment, 0, len(keys))
		for _, k := range keys {
			segs = append(segs, Key(k))
		}
		return segs
	case []interface{}:
		segs := make([]Segment, 0, len(c))
		for i, elem := range c {
			if elem != nil {
				segs = append(segs, Index(i))
			}
		}
		return segs
	}
	return nil
}
