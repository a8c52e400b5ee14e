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

// Package errdefs defines the typed errors shared by the toolkit packages.
// Every error carries a name, a message and optional metadata, and
// serializes to JSON as {"name": ..., "message": ..., "meta": ...}.
package errdefs

import (
	"fmt"

	"github.com/pkg/errors"
)

type Kind string

const (
	// KindInternal marks a broken internal contract, never a user mistake.
	KindInternal Kind = "InternalError"
	// KindSyntax marks an API used with missing or malformed arguments.
	KindSyntax Kind = "SyntaxError"
	// KindArgument marks a value that cannot be handled.
	KindArgument Kind = "ArgumentError"
)

type Error struct {
	Name    Kind                   `json:"name"`
	Message string                 `json:"message"`
	Meta    map[string]interface{} `json:"meta,omitempty"`

	cause error
}

func New(kind Kind, message string, meta map[string]interface{}) *Error {
	return &Error{Name: kind, Message: message, Meta: meta}
}

func NewInternal(message string, meta map[string]interface{}) *Error {
	return New(KindInternal, message, meta)
}

func NewSyntax(message string, meta map[string]interface{}) *Error {
	return New(KindSyntax, message, meta)
}

func NewArgument(message string, meta map[string]interface{}) *Error {
	return New(KindArgument, message, meta)
}

// Wrap returns a typed error whose cause is err.
func Wrap(kind Kind, err error, message string) *Error {
	e := New(kind, message, nil)
	e.cause = err
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Name, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is and errors.As. There is no
// Cause method, so errors.Cause from github.com/pkg/errors stops at the typed
// error.
func (e *Error) Unwrap() error {
	return e.cause
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Name, true
	}
	return "", false
}

func IsInternal(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindInternal
}

func IsSyntax(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindSyntax
}

func IsArgument(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindArgument
}
