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

// Package auditor records every mutation of a proxied document as a pair of
// JSON merge patches, so any earlier state can be rebuilt.
package auditor

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sealerio/toolkit/pkg/document"
	"github.com/sealerio/toolkit/pkg/proxy"
	"github.com/sealerio/toolkit/pkg/recordstore"
	"github.com/sealerio/toolkit/utils/maps"
)

// Entry describes one recorded mutation.
type Entry struct {
	ID      string    `json:"id"`
	Seq     int       `json:"seq"`
	Path    string    `json:"path"`
	Pointer string    `json:"pointer"`
	Time    time.Time `json:"time"`
	// Forward turns the previous document into the new one.
	Forward json.RawMessage `json:"forward"`
	// Reverse turns the new document back into the previous one.
	Reverse json.RawMessage `json:"reverse"`
}

type Auditor struct {
	lock sync.Mutex

	p       *proxy.Proxy
	base    []byte
	current []byte
	seq     int
	entries *recordstore.Store
	// pointer -> entry id -> seq
	byPointer *maps.TwoLevel
	errs      *multierror.Error

	unsubscribe func()
	closeOnce   sync.Once
}

func New(p *proxy.Proxy) (*Auditor, error) {
	base, err := json.Marshal(p.Target())
	if err != nil {
		return nil, errors.Wrap(err, "failed to snapshot document")
	}
	a := &Auditor{
		p:         p,
		base:      base,
		current:   base,
		entries:   recordstore.New(),
		byPointer: maps.NewTwoLevel(),
	}
	a.unsubscribe = p.OnAfterSet(p.Root(), a.capture, proxy.IncludeSubProperties())
	return a, nil
}

func (a *Auditor) capture(e proxy.SetEvent) {
	a.lock.Lock()
	defer a.lock.Unlock()

	next, err := json.Marshal(a.p.Target())
	if err != nil {
		a.fail(e.Path, errors.Wrap(err, "failed to snapshot document"))
		return
	}
	// an observer nested inside this write may have recorded it already
	if jsonpatch.Equal(a.current, next) {
		logrus.Debugf("skip recording %q: document unchanged", e.Path)
		return
	}
	forward, err := diff(a.current, next)
	if err != nil {
		a.fail(e.Path, errors.Wrap(err, "failed to create forward patch"))
		return
	}
	reverse, err := diff(next, a.current)
	if err != nil {
		a.fail(e.Path, errors.Wrap(err, "failed to create reverse patch"))
		return
	}

	a.seq++
	entry := Entry{
		ID:      uuid.New().String(),
		Seq:     a.seq,
		Path:    e.Path.String(),
		Pointer: e.Path.Pointer(),
		Time:    time.Now(),
		Forward: forward,
		Reverse: reverse,
	}
	a.entries.Put(entry.ID, entry)
	a.byPointer.Set(entry.Pointer, entry.ID, entry.Seq)
	a.current = next
}

func (a *Auditor) fail(path proxy.Path, err error) {
	logrus.Debugf("failed to record %q: %v", path, err)
	a.errs = multierror.Append(a.errs, errors.Wrapf(err, "path %q", path))
}

// History returns the recorded entries, oldest first.
func (a *Auditor) History() []Entry {
	values := a.entries.Values()
	history := make([]Entry, 0, len(values))
	for _, v := range values {
		history = append(history, v.(Entry))
	}
	return history
}

func (a *Auditor) Len() int {
	return a.entries.Len()
}

func (a *Auditor) Entry(id string) (Entry, bool) {
	v, ok := a.entries.Get(id)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

// EntriesAt returns the entries that wrote at or below loc, oldest first.
func (a *Auditor) EntriesAt(loc proxy.Locator) []Entry {
	var prefix string
	if loc != nil {
		prefix = loc.Path().Pointer()
	}

	a.lock.Lock()
	var ids []string
	for _, ptr := range a.byPointer.Keys() {
		if ptr != prefix && !strings.HasPrefix(ptr, prefix+"/") {
			continue
		}
		for id := range a.byPointer.Row(ptr) {
			ids = append(ids, id)
		}
	}
	a.lock.Unlock()

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		if e, ok := a.Entry(id); ok {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Seq < entries[j].Seq })
	return entries
}

// Replay rebuilds the document as it was after the first n entries.
func (a *Auditor) Replay(n int) (interface{}, error) {
	a.lock.Lock()
	base := a.base
	a.lock.Unlock()

	if err := a.checkRange(n); err != nil {
		return nil, err
	}
	doc := base
	for i := 0; i < n; i++ {
		_, v, _ := a.entries.At(i)
		patched, err := apply(doc, v.(Entry).Forward)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to apply entry %d", v.(Entry).Seq)
		}
		doc = patched
	}
	return document.Decode(doc)
}

// Rewind rebuilds the document as it was before the last n entries.
func (a *Auditor) Rewind(n int) (interface{}, error) {
	a.lock.Lock()
	current := a.current
	a.lock.Unlock()

	if err := a.checkRange(n); err != nil {
		return nil, err
	}
	doc := current
	for i := 1; i <= n; i++ {
		_, v, _ := a.entries.At(-i)
		patched, err := apply(doc, v.(Entry).Reverse)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to revert entry %d", v.(Entry).Seq)
		}
		doc = patched
	}
	return document.Decode(doc)
}

// diff creates a merge patch between two objects. Any other root is
// carried whole since a merge patch can only replace it.
func diff(from, to []byte) ([]byte, error) {
	if isObject(from) && isObject(to) {
		return jsonpatch.CreateMergePatch(from, to)
	}
	return to, nil
}

func apply(doc, patch []byte) ([]byte, error) {
	if isObject(doc) && isObject(patch) {
		return jsonpatch.MergePatch(doc, patch)
	}
	return patch, nil
}

func isObject(doc []byte) bool {
	trimmed := bytes.TrimSpace(doc)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func (a *Auditor) checkRange(n int) error {
	if l := a.entries.Len(); n < 0 || n > l {
		return errors.Errorf("entry count %d out of range [0, %d]", n, l)
	}
	return nil
}

// Err returns every capture failure so far, nil if none.
func (a *Auditor) Err() error {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.errs.ErrorOrNil()
}

// Close stops recording. It is safe to call more than once.
func (a *Auditor) Close() {
	a.closeOnce.Do(a.unsubscribe)
}
