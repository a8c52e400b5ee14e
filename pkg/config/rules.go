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

package config

import (
	"io/ioutil"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/sealerio/toolkit/pkg/document"
	"github.com/sealerio/toolkit/pkg/proxy"
	osi "github.com/sealerio/toolkit/utils/os"
	"github.com/sealerio/toolkit/utils/slice"
	utilstrings "github.com/sealerio/toolkit/utils/strings"
)

// Rules shape how documents are read and written by the CLI.
type Rules struct {
	// Format used to print values, yaml or json.
	Format string `yaml:"format,omitempty"`
	// Defaults supply containers that are missing while a value is set.
	Defaults []DefaultRule `yaml:"defaults,omitempty"`
	// ReadOnly paths reject every write at or below them.
	ReadOnly []string `yaml:"readOnly,omitempty"`
}

type DefaultRule struct {
	Path                 string      `yaml:"path"`
	Value                interface{} `yaml:"value"`
	IncludeSubProperties bool        `yaml:"includeSubProperties,omitempty"`
}

func Default() *Rules {
	return &Rules{Format: string(document.FormatYAML)}
}

// Parse decodes a rules file, filling unset fields from Default.
func Parse(data []byte) (*Rules, error) {
	r := &Rules{}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, errors.Wrap(err, "failed to decode rules")
	}
	if err := mergo.Merge(r, Default()); err != nil {
		return nil, errors.Wrap(err, "failed to apply default rules")
	}
	return r, nil
}

// Load reads file. A missing file yields the default rules.
func Load(file string) (*Rules, error) {
	if !osi.IsFileExist(file) {
		logrus.Debugf("rules file %s not found, using defaults", file)
		return Default(), nil
	}
	data, err := ioutil.ReadFile(filepath.Clean(file))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read rules file %s", file)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load rules file %s", file)
	}
	return r, nil
}

// Validate reports every invalid rule at once.
func (r *Rules) Validate() error {
	var result *multierror.Error
	if r.Format != "" {
		if _, err := document.ParseFormat(r.Format); err != nil {
			result = multierror.Append(result, err)
		}
	}
	for i, d := range r.Defaults {
		if _, err := proxy.ParsePath(d.Path); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "defaults[%d]", i))
			continue
		}
		v, err := proxy.Normalize(d.Value)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "defaults[%d]", i))
			continue
		}
		switch v.(type) {
		case map[string]interface{}, []interface{}:
		default:
			result = multierror.Append(result, errors.Errorf("defaults[%d]: value at %q must be an object or an array", i, d.Path))
		}
	}
	for i, p := range r.ReadOnly {
		if _, err := proxy.ParsePath(p); err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "readOnly[%d]", i))
		}
	}
	return result.ErrorOrNil()
}

// Conflicts returns the default paths that are also read-only. Such defaults
// still create containers but nothing can be written into them.
func (r *Rules) Conflicts() []string {
	var defaults, readOnly []interface{}
	for _, d := range r.Defaults {
		if path, err := proxy.ParsePath(d.Path); err == nil {
			defaults = append(defaults, path.String())
		}
	}
	for _, ro := range r.ReadOnly {
		if path, err := proxy.ParsePath(ro); err == nil {
			readOnly = append(readOnly, path.String())
		}
	}

	var conflicts []string
	for _, p := range slice.NewComparator(defaults, readOnly).GetIntersection() {
		conflicts = append(conflicts, p.(string))
	}
	return utilstrings.RemoveDuplicate(conflicts)
}

type defaultKey struct {
	path string
	sub  bool
}

// merged layers rules sharing a path in file order, later values winning.
func (r *Rules) merged() ([]DefaultRule, error) {
	var (
		order  []defaultKey
		values = map[defaultKey]interface{}{}
	)
	for _, d := range r.Defaults {
		v, err := proxy.Normalize(d.Value)
		if err != nil {
			return nil, err
		}
		v = proxy.DeepCopy(v)

		key := defaultKey{path: d.Path, sub: d.IncludeSubProperties}
		prev, ok := values[key]
		if !ok {
			order = append(order, key)
			values[key] = v
			continue
		}
		dst, dstIsMap := prev.(map[string]interface{})
		src, srcIsMap := v.(map[string]interface{})
		if !dstIsMap || !srcIsMap {
			values[key] = v
			continue
		}
		if err := mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
			return nil, errors.Wrapf(err, "failed to merge defaults at %q", d.Path)
		}
		values[key] = dst
	}

	rules := make([]DefaultRule, 0, len(order))
	for _, key := range order {
		rules = append(rules, DefaultRule{Path: key.path, Value: values[key], IncludeSubProperties: key.sub})
	}
	return rules, nil
}

// Apply registers the rules on p. The returned func removes all of them.
func (r *Rules) Apply(p *proxy.Proxy) (func(), error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	defaults, err := r.merged()
	if err != nil {
		return nil, err
	}
	for _, c := range r.Conflicts() {
		logrus.Debugf("default at %q is read-only", c)
	}

	var unsubscribes []func()
	for _, d := range defaults {
		path, _ := proxy.ParsePath(d.Path)
		var opts []proxy.Option
		if d.IncludeSubProperties {
			opts = append(opts, proxy.IncludeSubProperties())
		}
		value := d.Value
		unsubscribes = append(unsubscribes, p.OnDefault(path, func(e proxy.DefaultEvent) proxy.Outcome {
			logrus.Debugf("supplying default at %q", e.TraversedPath)
			return proxy.Supply(proxy.DeepCopy(value))
		}, opts...))
	}
	for _, ro := range r.ReadOnly {
		path, _ := proxy.ParsePath(ro)
		unsubscribes = append(unsubscribes, p.OnSet(path, func(e proxy.SetEvent) proxy.Decision {
			logrus.Debugf("rejecting write to read-only %q", e.Path)
			return proxy.PreventDefault
		}, proxy.IncludeSubProperties()))
	}

	return func() {
		for _, unsubscribe := range unsubscribes {
			unsubscribe()
		}
	}, nil
}
