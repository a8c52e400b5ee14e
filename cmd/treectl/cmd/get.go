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
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var exampleForGetCmd = `treectl get values.yaml
treectl get values.yaml 'pod.containers[0].image'
treectl get values.json users -o yaml
`

// NewGetCmd getCmd prints the value at a path
func NewGetCmd() *cobra.Command {
	getCmd := &cobra.Command{
		Use:     "get FILE [PATH]",
		Short:   "print the value at a path of a document",
		Example: exampleForGetCmd,
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

			if !s.proxy.IsSet(path) {
				return errors.Errorf("%q is not set in %s", path, args[0])
			}
			return s.print(cmd.OutOrStdout(), s.proxy.Get(path))
		},
	}
	return getCmd
}
