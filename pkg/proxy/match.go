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

// PathsMatch reports whether an access or mutation at event concerns a
// subscriber registered at subscribed. Without includeSubProperties only the
// exact path matches; with it, subscribed also matches every path below it.
func PathsMatch(subscribed, event Path, includeSubProperties bool) bool {
	if len(subscribed) == 0 {
		return includeSubProperties || len(event) == 0
	}
	if len(event) < len(subscribed) {
		return false
	}
	if len(event) != len(subscribed) && !includeSubProperties {
		return false
	}
	for i := range subscribed {
		if subscribed[i] != event[i] {
			return false
		}
	}
	return true
}
