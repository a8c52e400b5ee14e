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
	"github.com/spf13/cobra"
)

var exampleForKeysCmd = `treectl keys values.yaml
treectl keys values.yaml pod.containers
`

// NewKeysCmd keysCmd lists the keys or set indices below a path
func NewKeysCmd() *cobra.Command {
	keysCmd := &cobra.Command{
		Use:     "keys FILE [PATH]",
		Short:   "list the keys of an object or the set indices of an array",
		Example: exampleForKeysCmd,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := parseOptionalPath(args[1:])
			if err != nil {
				return err
			}
			s, err := openSession(args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			for _, seg := range s.proxy.Node(path).Keys() {
				printf(cmd.OutOrStdout(), "%s\n", seg)
			}
			return nil
		},
	}
	return keysCmd
}
