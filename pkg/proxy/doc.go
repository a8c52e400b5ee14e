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

// Package proxy wraps a JSON-like value tree. Any location in it is
// addressed through a fluent tree of nodes, and observers can intercept
// reads and writes at a location or below it.
//
// Nodes are pure path handles. Building proxy.Root().Field("a").Index(3)
// evaluates nothing; the path is resolved against the live target only when
// it is passed to Get, Set or IsSet:
//
//	p, _ := proxy.New(map[string]interface{}{})
//	_ = p.Set(p.Root().Field("notSetObject").Field("subArray").Index(3).Field("myProp"), "foo")
//	// {"notSetObject": {"subArray": [nil, nil, nil, {"myProp": "foo"}]}}
//
// A Proxy is meant to be driven from a single goroutine. Observers may call
// back into the same Proxy while they are being notified.
package proxy
