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

package errdefs

import (
	"encoding/json"
	"fmt"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		internal   bool
		syntax     bool
		argument   bool
		wantString string
	}{
		{
			name:       "internal",
			err:        NewInternal("container is still empty", map[string]interface{}{"path": "a.b"}),
			internal:   true,
			wantString: "InternalError: container is still empty",
		},
		{
			name:       "syntax",
			err:        NewSyntax("callback is required", nil),
			syntax:     true,
			wantString: "SyntaxError: callback is required",
		},
		{
			name:       "argument wrapped by pkg/errors",
			err:        errors.Wrap(NewArgument("unsupported type chan int", nil), "failed to set"),
			argument:   true,
			wantString: "failed to set: ArgumentError: unsupported type chan int",
		},
		{
			name:       "wrapped with fmt",
			err:        fmt.Errorf("outer: %w", NewSyntax("bad path", nil)),
			syntax:     true,
			wantString: "outer: SyntaxError: bad path",
		},
		{
			name:       "plain error",
			err:        io.EOF,
			wantString: "EOF",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.internal, IsInternal(tt.err))
			assert.Equal(t, tt.syntax, IsSyntax(tt.err))
			assert.Equal(t, tt.argument, IsArgument(tt.err))
			assert.Equal(t, tt.wantString, tt.err.Error())
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(KindArgument, io.ErrUnexpectedEOF, "failed to decode value")
	assert.Equal(t, "ArgumentError: failed to decode value: unexpected EOF", err.Error())
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, err, errors.Cause(err))
}

func TestCauseStopsAtTypedError(t *testing.T) {
	internal := NewInternal("boom", nil)
	tests := []struct {
		name string
		err  error
	}{
		{"bare", internal},
		{"wrapped by pkg/errors", errors.Wrap(internal, "ctx")},
		{"wrapped twice", errors.Wrapf(errors.Wrap(internal, "inner"), "outer")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cause := errors.Cause(tt.err)
			assert.Equal(t, internal, cause)
			assert.True(t, IsInternal(cause))
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewInternal("broken", map[string]interface{}{"path": "a"}))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"name":"InternalError","message":"broken","meta":{"path":"a"}}`, string(data))

	data, err = json.Marshal(NewSyntax("missing", nil))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"name":"SyntaxError","message":"missing"}`, string(data))

	var decoded Error
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, KindSyntax, decoded.Name)
	assert.Equal(t, "missing", decoded.Message)
}
