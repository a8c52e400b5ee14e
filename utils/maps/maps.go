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

package maps

import "sort"

// Merge assigns every top-level entry of src onto dst, overriding existing
// keys. Nested values are not merged. A nil dst yields a copy of src.
func Merge(dst, src map[string]interface{}) map[string]interface{} {
	if dst == nil {
		return Copy(src)
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Copy returns a shallow copy of origin.
func Copy(origin map[string]interface{}) map[string]interface{} {
	if origin == nil {
		return nil
	}
	ret := make(map[string]interface{}, len(origin))
	for k, v := range origin {
		ret[k] = v
	}

	return ret
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
