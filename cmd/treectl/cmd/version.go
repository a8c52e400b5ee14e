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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/sealerio/toolkit/pkg/version"
)

func NewVersionCmd() *cobra.Command {
	var (
		shortPrint bool
		output     string
	)
	versionCmd := &cobra.Command{
		Use:     "version",
		Short:   "Print version info",
		Args:    cobra.NoArgs,
		Example: `treectl version`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "yaml" && output != "json" {
				return fmt.Errorf("output format must be yaml or json")
			}
			if shortPrint {
				printf(cmd.OutOrStdout(), "%s\n", version.Get())
				return nil
			}

			info := &version.Output{TreectlVersion: version.Get()}
			var (
				marshalled []byte
				err        error
			)
			switch output {
			case "yaml":
				marshalled, err = yaml.Marshal(info)
				if err != nil {
					return fmt.Errorf("fail to marshal yaml: %w", err)
				}
			case "json":
				marshalled, err = json.Marshal(info)
				if err != nil {
					return fmt.Errorf("fail to marshal json: %w", err)
				}
				marshalled = append(marshalled, '\n')
			}
			_, err = cmd.OutOrStdout().Write(marshalled)
			return err
		},
	}
	versionCmd.Flags().BoolVar(&shortPrint, "short", false, "If true, print just the version number.")
	versionCmd.Flags().StringVar(&output, "format", "yaml", "choose `yaml` or `json` format to print version info")
	return versionCmd
}
