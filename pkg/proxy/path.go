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
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/sealerio/toolkit/pkg/errdefs"
	utilstrings "github.com/sealerio/toolkit/utils/strings"
)

// Segment is one element of a Path: either an object key or an array index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a key segment. Canonical decimal text such as "3" becomes an
// index segment, so "3" and 3 address the same location.
func Key(k string) Segment {
	if i, ok := utilstrings.CanonicalIndex(k); ok {
		return Index(i)
	}
	return Segment{key: k}
}

// Index returns an index segment. It panics on a negative index.
func Index(i int) Segment {
	if i < 0 {
		panic(errdefs.NewSyntax(fmt.Sprintf("negative index %d", i), nil))
	}
	return Segment{index: i, isIndex: true}
}

func (s Segment) IsIndex() bool {
	return s.isIndex
}

// Int returns the index of an index segment and -1 for a key segment.
func (s Segment) Int() int {
	if !s.isIndex {
		return -1
	}
	return s.index
}

// String returns the key, or the decimal text of the index.
func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// Locator is anything that designates a location in a target: a Path or a
// Node.
type Locator interface {
	Path() Path
}

type Path []Segment

// NewPath builds a Path from strings, integers and Segments.
func NewPath(keys ...interface{}) Path {
	p := make(Path, 0, len(keys))
	for _, k := range keys {
		switch v := k.(type) {
		case Segment:
			p = append(p, v)
		case string:
			p = append(p, Key(v))
		case int:
			p = append(p, Index(v))
		default:
			rv := reflect.ValueOf(k)
			switch rv.Kind() {
			case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				p = append(p, Index(int(rv.Int())))
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				p = append(p, Index(int(rv.Uint())))
			default:
				panic(errdefs.NewSyntax(fmt.Sprintf("invalid path element of type %T", k), nil))
			}
		}
	}
	return p
}

// Path lets a Path be used as a Locator.
func (p Path) Path() Path {
	return p
}

func (p Path) Copy() Path {
	if p == nil {
		return Path{}
	}
	return append(Path{}, p...)
}

// Child returns a new path with seg appended; p is never modified.
func (p Path) Child(seg Segment) Path {
	c := make(Path, len(p)+1)
	copy(c, p)
	c[len(p)] = seg
	return c
}

// Split returns all segments but the last, and the last one. It panics on an
// empty path.
func (p Path) Split() (Path, Segment) {
	return p[: len(p)-1 : len(p)-1], p[len(p)-1]
}

func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders p as a dotted path, a.b[3]["not an identifier"]. The root
// path renders as the empty string.
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		switch {
		case seg.isIndex:
			b.WriteString("[" + strconv.Itoa(seg.index) + "]")
		case utilstrings.IsIdentifier(seg.key):
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(seg.key)
		default:
			b.WriteString("[" + utilstrings.Quote(seg.key) + "]")
		}
	}
	return b.String()
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders p as an RFC 6901 JSON pointer.
func (p Path) Pointer() string {
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(seg.String()))
	}
	return b.String()
}

// ParsePath parses the notation produced by Path.String. Bare elements and
// bracketed numbers that look like indices become index segments.
func ParsePath(s string) (Path, error) {
	p := Path{}
	for i := 0; i < len(s); {
		switch s[i] {
		case '.':
			if i == 0 || i == len(s)-1 {
				return nil, errdefs.NewSyntax(fmt.Sprintf("unexpected '.' at offset %d in %q", i, s), nil)
			}
			i++
		case '[':
			end, seg, err := parseBracket(s, i)
			if err != nil {
				return nil, err
			}
			p = append(p, seg)
			i = end
			if i < len(s) && s[i] != '.' && s[i] != '[' {
				return nil, errdefs.NewSyntax(fmt.Sprintf("expected '.' or '[' at offset %d in %q", i, s), nil)
			}
			continue
		}
		if i < len(s) && s[i] != '[' {
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}
			if j == i {
				return nil, errdefs.NewSyntax(fmt.Sprintf("empty path element at offset %d in %q", i, s), nil)
			}
			p = append(p, Key(s[i:j]))
			i = j
		}
	}
	return p, nil
}

func parseBracket(s string, start int) (int, Segment, error) {
	rest := s[start+1:]
	if strings.HasPrefix(rest, `"`) {
		k, n, ok := utilstrings.Unquote(rest)
		if !ok || n >= len(rest) || rest[n] != ']' {
			return 0, Segment{}, errdefs.NewSyntax(fmt.Sprintf("unterminated quoted key at offset %d in %q", start, s), nil)
		}
		return start + 1 + n + 1, Key(k), nil
	}
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return 0, Segment{}, errdefs.NewSyntax(fmt.Sprintf("unterminated '[' at offset %d in %q", start, s), nil)
	}
	i, ok := utilstrings.CanonicalIndex(rest[:end])
	if !ok {
		return 0, Segment{}, errdefs.NewSyntax(fmt.Sprintf("invalid index %q in %q", rest[:end], s), nil)
	}
	return start + 1 + end + 1, Index(i), nil
}
