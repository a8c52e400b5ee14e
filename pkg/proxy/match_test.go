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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathsMatch(t *testing.T) {
	tests := []struct {
		name       string
		subscribed Path
		event      Path
		sub        bool
		want       bool
	}{
		{"root matches root", Path{}, Path{}, false, true},
		{"root exact does not match child", Path{}, NewPath("a"), false, false},
		{"root with sub properties matches anything", Path{}, NewPath("a", "b"), true, true},
		{"exact match", NewPath("a", 1), NewPath("a", 1), false, true},
		{"exact match with sub properties", NewPath("a"), NewPath("a"), true, true},
		{"shorter event never matches", NewPath("a", "b"), NewPath("a"), true, false},
		{"descendant without sub properties", NewPath("a"), NewPath("a", "b", "c"), false, false},
		{"descendant with sub properties", NewPath("a"), NewPath("a", "b", "c"), true, true},
		{"sibling", NewPath("a", "b"), NewPath("a", "c"), true, false},
		{"index and numeric key are the same", NewPath("list", 3), NewPath("list", "3"), false, true},
		{"different prefix", NewPath("x"), NewPath("a", "x"), true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PathsMatch(tt.subscribed, tt.event, tt.sub))
		})
	}
}
