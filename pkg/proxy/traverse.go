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
	"github.com/sealerio/toolkit/pkg/errdefs"
)

// Result is the outcome of resolving a path. IsSet is false when the path or
// one of its prefixes does not exist, and Value is then nil.
type Result struct {
	IsSet bool
	Value interface{}
}

// Outcome is the answer of a default-value provider: either a materialized
// value to use, or a refusal that keeps the regular behavior.
type Outcome struct {
	IsSet bool
	Value interface{}
}

func Supply(v interface{}) Outcome {
	return Outcome{IsSet: true, Value: v}
}

func Decline() Outcome {
	return Outcome{}
}

type TraverseOptions struct {
	// Set persists a value materialized by OnEmptyProperty at path. It
	// returns false when the value could not be attached, which ends the
	// walk with an unset result.
	Set func(path Path, value interface{}) bool
	// OnEmptyProperty is asked for a value whenever the walk reaches an unset
	// location. traversed is the path of that location, remaining what is
	// left to walk below it.
	OnEmptyProperty func(traversed, remaining Path) (Outcome, error)
}

// Traverse walks path through target. Without options, or when
// OnEmptyProperty declines, the walk stops at the first unset location.
// Walking through a scalar yields an unset result.
func Traverse(target interface{}, path Path, opts *TraverseOptions) (Result, error) {
	var (
		current   = target
		traversed = make(Path, 0, len(path))
		remaining = path
	)
	for {
		if current == nil {
			if opts == nil || opts.OnEmptyProperty == nil {
				return Result{}, nil
			}
			out, err := opts.OnEmptyProperty(traversed.Copy(), remaining.Copy())
			if err != nil {
				return Result{}, err
			}
			if !out.IsSet {
				return Result{}, nil
			}
			if out.Value == nil {
				return Result{}, errdefs.NewInternal("default value provider reported a value but the container is still empty",
					map[string]interface{}{"path": traversed.String()})
			}
			if opts.Set != nil && !opts.Set(traversed.Copy(), out.Value) {
				return Result{}, nil
			}
			current = out.Value
		}
		if len(remaining) == 0 {
			return Result{IsSet: true, Value: current}, nil
		}

		v, _, indexable := lookup(current, remaining[0])
		if !indexable {
			return Result{}, nil
		}
		traversed = append(traversed, remaining[0])
		remaining = remaining[1:]
		current = v
	}
}
