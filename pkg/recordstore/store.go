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

package recordstore

import (
	"container/list"
	"sync"
)

// Store keeps records keyed by string in insertion order.
// Updating an existing key keeps its original position.
type Store struct {
	lock  sync.RWMutex
	items map[string]*list.Element
	order *list.List
}

type record struct {
	key   string
	value interface{}
}

func New() *Store {
	return &Store{
		items: make(map[string]*list.Element),
		order: list.New(),
	}
}

// Put stores rec under key and reports whether the key is new.
func (s *Store) Put(key string, rec interface{}) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if elem, ok := s.items[key]; ok {
		elem.Value.(*record).value = rec
		return false
	}
	s.items[key] = s.order.PushBack(&record{key: key, value: rec})
	return true
}

func (s *Store) Get(key string) (interface{}, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	elem, ok := s.items[key]
	if !ok {
		return nil, false
	}
	return elem.Value.(*record).value, true
}

func (s *Store) Has(key string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	_, ok := s.items[key]
	return ok
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(key string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	elem, ok := s.items[key]
	if !ok {
		return false
	}
	s.order.Remove(elem)
	delete(s.items, key)
	return true
}

func (s *Store) Keys() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	keys := make([]string, 0, len(s.items))
	for elem := s.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*record).key)
	}
	return keys
}

func (s *Store) Values() []interface{} {
	s.lock.RLock()
	defer s.lock.RUnlock()

	values := make([]interface{}, 0, len(s.items))
	for elem := s.order.Front(); elem != nil; elem = elem.Next() {
		values = append(values, elem.Value.(*record).value)
	}
	return values
}

// At returns the record at position i, counting from the oldest key.
// A negative i counts from the newest.
func (s *Store) At(i int) (string, interface{}, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	n := s.order.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return "", nil, false
	}

	var elem *list.Element
	if i < n/2 {
		elem = s.order.Front()
		for ; i > 0; i-- {
			elem = elem.Next()
		}
	} else {
		elem = s.order.Back()
		for j := n - 1; j > i; j-- {
			elem = elem.Prev()
		}
	}
	r := elem.Value.(*record)
	return r.key, r.value, true
}

func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.order.Len()
}

// Range calls fn for every record in order until fn returns false.
// fn runs on a snapshot, so it may modify the store.
func (s *Store) Range(fn func(key string, rec interface{}) bool) {
	s.lock.RLock()
	snapshot := make([]record, 0, s.order.Len())
	for elem := s.order.Front(); elem != nil; elem = elem.Next() {
		snapshot = append(snapshot, *elem.Value.(*record))
	}
	s.lock.RUnlock()

	for _, r := range snapshot {
		if !fn(r.key, r.value) {
			return
		}
	}
}
