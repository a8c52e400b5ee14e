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

// TwoLevel is a map addressed by a pair of keys. Rows are created on first
// write and dropped once their last column is deleted.
type TwoLevel struct {
	rows map[string]map[string]interface{}
	size int
}

func NewTwoLevel() *TwoLevel {
	return &TwoLevel{rows: map[string]map[string]interface{}{}}
}

func (t *TwoLevel) Set(row, col string, v interface{}) {
	cols, ok := t.rows[row]
	if !ok {
		cols = map[string]interface{}{}
		t.rows[row] = cols
	}
	if _, exist := cols[col]; !exist {
		t.size++
	}
	cols[col] = v
}

func (t *TwoLevel) Get(row, col string) (interface{}, bool) {
	v, ok := t.rows[row][col]
	return v, ok
}

func (t *TwoLevel) Has(row, col string) bool {
	_, ok := t.Get(row, col)
	return ok
}

// Delete removes one cell and reports whether it existed.
func (t *TwoLevel) Delete(row, col string) bool {
	cols, ok := t.rows[row]
	if !ok {
		return false
	}
	if _, ok = cols[col]; !ok {
		return false
	}
	delete(cols, col)
	t.size--
	if len(cols) == 0 {
		delete(t.rows, row)
	}
	return true
}

// DeleteRow removes a whole row and returns the number of cells dropped.
func (t *TwoLevel) DeleteRow(row string) int {
	n := len(t.rows[row])
	delete(t.rows, row)
	t.size -= n
	return n
}

// Row returns a copy of the columns stored under row.
func (t *TwoLevel) Row(row string) map[string]interface{} {
	return Copy(t.rows[row])
}

// Keys returns the row keys in lexical order.
func (t *TwoLevel) Keys() []string {
	keys := make([]string, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of cells.
func (t *TwoLevel) Len() int {
	return t.size
}
