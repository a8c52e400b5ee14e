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

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/sealerio/toolkit/pkg/config"
	"github.com/sealerio/toolkit/pkg/document"
	"github.com/sealerio/toolkit/pkg/proxy"
	osi "github.com/sealerio/toolkit/utils/os"
)

// session is one document opened through a proxy with the rules applied.
type session struct {
	file   string
	rules  *config.Rules
	proxy  *proxy.Proxy
	remove func()
}

func openSession(file string) (*session, error) {
	rules, err := config.Load(viper.GetString(keyRules))
	if err != nil {
		return nil, err
	}
	doc, err := document.Load(file)
	if err != nil {
		return nil, err
	}
	p, err := proxy.New(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", file)
	}
	remove, err := rules.Apply(p)
	if err != nil {
		return nil, errors.Wrap(err, "invalid rules")
	}
	logrus.Debugf("opened %s with %d default and %d read-only rules", file, len(rules.Defaults), len(rules.ReadOnly))
	return &session{file: file, rules: rules, proxy: p, remove: remove}, nil
}

func (s *session) Close() {
	s.remove()
}

// Save writes the document back. Without atomic the file is overwritten in
// place, which keeps symlinks and bind mounts pointing at it.
func (s *session) Save(atomic bool) error {
	if atomic {
		return document.Save(s.file, s.proxy.Target(), document.FormatOf(s.file))
	}
	return document.SaveTo(osi.NewCommonWriter(s.file), s.file, s.proxy.Target(), document.FormatOf(s.file))
}

// outputFormat is the --output flag, else the rules file, else the document format.
func (s *session) outputFormat() (document.Format, error) {
	if f := viper.GetString(keyOutput); f != "" {
		return document.ParseFormat(f)
	}
	if s.rules.Format != "" {
		return document.ParseFormat(s.rules.Format)
	}
	return document.FormatOf(s.file), nil
}

func (s *session) print(w io.Writer, v interface{}) error {
	format, err := s.outputFormat()
	if err != nil {
		return err
	}
	data, err := document.Encode(v, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func parseOptionalPath(args []string) (proxy.Path, error) {
	if len(args) == 0 {
		return proxy.Path{}, nil
	}
	return proxy.ParsePath(args[0])
}

// parseAssignment splits path=value or path+=value, decoding value as YAML.
func parseAssignment(s string) (assignment, error) {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return assignment{}, errors.Errorf("assignment %q must look like path=value", s)
	}
	a := assignment{}
	rawPath := s[:i]
	if strings.HasSuffix(rawPath, "+") {
		a.appendTo = true
		rawPath = strings.TrimSuffix(rawPath, "+")
	}
	path, err := proxy.ParsePath(rawPath)
	if err != nil {
		return assignment{}, err
	}
	if len(path) == 0 {
		return assignment{}, errors.Errorf("assignment %q has an empty path", s)
	}
	value, err := document.Decode([]byte(s[i+1:]))
	if err != nil {
		return assignment{}, errors.Wrapf(err, "invalid value in %q", s)
	}
	a.path, a.value = path, value
	return a, nil
}

func printf(w io.Writer, format string, a ...interface{}) {
	_, _ = fmt.Fprintf(w, format, a...)
}
