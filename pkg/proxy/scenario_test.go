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

package proxy_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/sealerio/toolkit/pkg/proxy"
)

var _ = Describe("proxy", func() {
	var (
		target map[string]interface{}
		p      *proxy.Proxy
	)

	BeforeEach(func() {
		target = map[string]interface{}{
			"something": "hey",
			"user":      map[string]interface{}{"name": "ann", "tags": []interface{}{"a"}},
		}
		var err error
		p, err = proxy.New(target)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("reading", func() {
		It("resolves present and missing paths", func() {
			Expect(p.Get(p.Root().Field("something"))).To(Equal("hey"))
			Expect(p.Get(p.Root().Field("user").Field("tags").Index(0))).To(Equal("a"))
			Expect(p.Get(p.Root().Field("notSetObject").Field("deep"))).To(BeNil())
			Expect(p.IsSet(p.Root().Field("notSetObject"))).To(BeFalse())
		})

		It("hands out one node per path", func() {
			n := p.Root().Field("user").Field("name")
			Expect(p.Node(proxy.NewPath("user", "name"))).To(Equal(n))
			path, err := proxy.ParsePath("user.name")
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Node(path) == n).To(BeTrue())
		})
	})

	Context("writing", func() {
		It("creates every missing container on the way", func() {
			Expect(p.Set(proxy.NewPath("notSetObject", "subArray", 3, "myProp"), "foo")).To(Succeed())
			Expect(target).To(HaveKeyWithValue("notSetObject", map[string]interface{}{
				"subArray": []interface{}{nil, nil, nil, map[string]interface{}{"myProp": "foo"}},
			}))
		})

		It("ignores writes below a primitive", func() {
			Expect(p.Set(proxy.NewPath("something", "nested"), 1)).To(Succeed())
			Expect(target["something"]).To(Equal("hey"))
		})

		It("merges on assign", func() {
			Expect(p.Assign(map[string]interface{}{"extra": true})).To(Succeed())
			Expect(target).To(HaveKeyWithValue("extra", true))
			Expect(target).To(HaveKeyWithValue("something", "hey"))
		})
	})

	Context("observers", func() {
		It("keeps read-only fields intact", func() {
			p.OnSet(p.Root().Field("user"), func(e proxy.SetEvent) proxy.Decision {
				return proxy.PreventDefault
			}, proxy.IncludeSubProperties())

			Expect(p.Set(proxy.NewPath("user", "name"), "bob")).To(Succeed())
			Expect(p.Get(proxy.NewPath("user", "name"))).To(Equal("ann"))
			Expect(p.Set(proxy.NewPath("other"), "ok")).To(Succeed())
			Expect(p.Get(proxy.NewPath("other"))).To(Equal("ok"))
		})

		It("derives values after a write", func() {
			p.OnAfterSet(proxy.NewPath("user", "name"), func(e proxy.SetEvent) {
				Expect(p.Set(proxy.NewPath("user", "previous"), e.OldValue)).To(Succeed())
			})

			Expect(p.Set(proxy.NewPath("user", "name"), "bob")).To(Succeed())
			Expect(p.Get(proxy.NewPath("user", "previous"))).To(Equal("ann"))
		})

		It("fills in defaults for missing containers", func() {
			var traversed []string
			p.OnDefault(p.Root(), func(e proxy.DefaultEvent) proxy.Outcome {
				traversed = append(traversed, e.TraversedPath.String())
				if e.TraversedPath.String() == "settings" {
					return proxy.Supply(map[string]interface{}{"theme": "dark"})
				}
				return proxy.Decline()
			}, proxy.IncludeSubProperties())

			Expect(p.Set(proxy.NewPath("settings", "font", "size"), 12)).To(Succeed())
			Expect(traversed).To(Equal([]string{"settings", "settings.font"}))
			Expect(p.Get(proxy.NewPath("settings"))).To(Equal(map[string]interface{}{
				"theme": "dark",
				"font":  map[string]interface{}{"size": int64(12)},
			}))
		})

		It("rewrites values on read", func() {
			p.OnGet(p.Root().Field("user"), func(e proxy.GetEvent) interface{} {
				if s, ok := e.Value.(string); ok {
					return "<" + s + ">"
				}
				return e.Value
			}, proxy.IncludeSubProperties())

			Expect(p.Get(proxy.NewPath("user", "name"))).To(Equal("<ann>"))
			Expect(p.Get(proxy.NewPath("something"))).To(Equal("hey"))
		})

		It("stops notifying after unsubscribe", func() {
			calls := 0
			unsubscribe := p.OnAfterSet(p.Root(), func(proxy.SetEvent) { calls++ }, proxy.IncludeSubProperties())
			Expect(p.Set(proxy.NewPath("a"), 1)).To(Succeed())
			unsubscribe()
			Expect(p.Set(proxy.NewPath("a"), 2)).To(Succeed())
			Expect(calls).To(Equal(1))
		})
	})
})
