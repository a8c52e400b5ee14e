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

package common

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

const AppName = "treectl"

const (
	DefaultLogDir    = "/var/log/treectl"
	DefaultLogName   = AppName + ".log"
	DefaultRulesFile = ".treectl.yaml"
	EnvPrefix        = "TREECTL"
)

const (
	FileMode0755 = 0755
	FileMode0766 = 0766
	FileMode0644 = 0644
)

const (
	YamlSuffix = ".yaml"
	YmlSuffix  = ".yml"
	JSONSuffix = ".json"
)

// GetDefaultLogDir prefers a directory below the user's home.
func GetDefaultLogDir() string {
	home, err := homedir.Dir()
	if err != nil {
		return DefaultLogDir
	}
	return filepath.Join(home, "."+AppName, "log")
}

func GetDefaultRulesFile() string {
	home, err := homedir.Dir()
	if err != nil {
		return DefaultRulesFile
	}
	return filepath.Join(home, DefaultRulesFile)
}
