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

package document

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/sealerio/toolkit/common"
	osi "github.com/sealerio/toolkit/utils/os"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from the file extension, YAML unless it is .json.
func FormatOf(file string) Format {
	if strings.EqualFold(filepath.Ext(file), common.JSONSuffix) {
		return FormatJSON
	}
	return FormatYAML
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", errors.Errorf("unknown document format %q", s)
}

// Decode reads YAML or JSON into plain values. Integral numbers become int64,
// the rest float64.
func Decode(data []byte) (interface{}, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var v interface{}
	if err := yaml.Unmarshal(data, &v, func(d *json.Decoder) *json.Decoder {
		d.UseNumber()
		return d
	}); err != nil {
		return nil, errors.Wrap(err, "failed to decode document")
	}
	return numbers(v), nil
}

func numbers(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t
	case map[string]interface{}:
		for k, elem := range t {
			t[k] = numbers(elem)
		}
	case []interface{}:
		for i, elem := range t {
			t[i] = numbers(elem)
		}
	}
	return v
}

func Encode(v interface{}, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode json")
		}
		return append(data, '\n'), nil
	case FormatYAML, "":
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode yaml")
		}
		return data, nil
	}
	return nil, errors.Errorf("unknown document format %q", format)
}

// Load reads file. A missing or empty file yields an empty object.
func Load(file string) (interface{}, error) {
	if !osi.IsFileExist(file) {
		return map[string]interface{}{}, nil
	}
	data, err := ioutil.ReadFile(filepath.Clean(file))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", file)
	}
	v, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", file)
	}
	if v == nil {
		return map[string]interface{}{}, nil
	}
	return v, nil
}

// Save replaces file atomically with the encoded v.
func Save(file string, v interface{}, format Format) error {
	return SaveTo(osi.NewAtomicWriter(file), file, v, format)
}

// SaveTo encodes v and hands it to w. file only names the target in errors.
func SaveTo(w osi.FileWriter, file string, v interface{}, format Format) error {
	data, err := Encode(v, format)
	if err != nil {
		return err
	}
	if err := w.WriteFile(data); err != nil {
		return errors.Wrapf(err, "failed to write %s", file)
	}
	return nil
}
