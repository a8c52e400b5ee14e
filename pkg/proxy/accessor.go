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

// Accessor is a read-only view bound to one root target. It never
// materializes anything and never mutates the target.
type Accessor struct {
	root func() interface{}
}

func NewAccessor(target interface{}) *Accessor {
	return &Accessor{root: func() interface{} { return target }}
}

func (a *Accessor) Get(path Path) Result {
	// without hooks Traverse cannot fail
	res, _ := Traverse(a.root(), path, nil)
	return res
}
