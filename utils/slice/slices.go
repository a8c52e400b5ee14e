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

import "reflect"

type Interface interface {
	// GetIntersection get intersection element form between slice.
	GetIntersection() []interface{}
	// GetUnion get Union element between two slice.
	GetUnion() []interface{}
	// GetSrcSubtraction get different element in src compare to dst.
	GetSrcSubtraction() []interface{}
	// GetDstSubtraction get different element in dst compare to src.
	GetDstSubtraction() []interface{}
}

// Comparator compares elements with reflect.DeepEqual, so it works for
// nested maps and slices as well as scalars.
type Comparator struct {
	Src []interface{}
	Dst []interface{}
}

func (c Comparator) GetIntersection() []interface{} {
	var result []interface{}
	for _, elem := range c.Src {
		if !NotIn(elem, c.Dst) {
			result = append(result, elem)
		}
	}
	return result
}

func (c Comparator) GetUnion() []interface{} {
	result := append([]interface{}{}, c.Src...)
	for _, elem := range c.Dst {
		if NotIn(elem, result) {
			result = append(result, elem)
		}
	}
	return result
}

func (c Comparator) GetSrcSubtraction() []interface{} {
	var result []interface{}
	for _, elem := range c.Src {
		if NotIn(elem, c.Dst) {
			result = append(result, elem)
		}
	}
	return result
}

func (c Comparator) GetDstSubtraction() []interface{} {
	var result []interface{}
	for _, elem := range c.Dst {
		if NotIn(elem, c.Src) {
			result = append(result, elem)
		}
	}
	return result
}

func NewComparator(src, dst []interface{}) Interface {
	return Comparator{
		Src: src,
		Dst: dst,
	}
}

func NotIn(key interface{}, slice []interface{}) bool {
	for _, s := range slice {
		if reflect.DeepEqual(key, s) {
			return false
		}
	}
	return true
}
