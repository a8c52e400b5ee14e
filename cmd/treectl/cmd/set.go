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
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sealerio/toolkit/pkg/auditor"
	"github.com/sealerio/toolkit/pkg/proxy"
	"github.com/sealerio/toolkit/utils/slice"
)

type setOptions struct {
	dryRun   bool
	history  bool
	noAtomic bool
}

var exampleForSetCmd = `treectl set values.yaml replicas=3
treectl set values.yaml 'pod.containers[0].image=nginx:1.23' 'labels={app: web}'
treectl set values.json settings.theme=dark --dry-run --history
treectl set values.yaml 'args+=--verbose'
`

const (
	historySeq     = "SEQ"
	historyPointer = "POINTER"
	historyPatch   = "PATCH"
)

type assignment struct {
	path     proxy.Path
	value    interface{}
	appendTo bool
}

// apply writes a, appending to the array at a.path for path+=value.
func (a assignment) apply(p *proxy.Proxy) error {
	if !a.appendTo {
		return p.Set(a.path, a.value)
	}
	var items []interface{}
	switch current := p.Get(a.path).(type) {
	case nil:
	case []interface{}:
		items = current
	default:
		return errors.Errorf("cannot append to %q: %T is not an array", a.path, current)
	}
	tracked := slice.NewTracked(items)
	tracked.Push(a.value)
	added, _ := tracked.Changes()
	logrus.Debugf("appending %d new item(s) to %q", len(added), a.path)
	return p.Set(a.path, tracked.Items())
}

// NewSetCmd setCmd writes values at paths, creating what is missing
func NewSetCmd() *cobra.Command {
	opts := &setOptions{}
	setCmd := &cobra.Command{
		Use:   "set FILE PATH=VALUE...",
		Short: "set values at paths of a document",
		Long: `Values are decoded as YAML, so objects, arrays, numbers and booleans keep their type.
PATH+=VALUE appends VALUE to the array at PATH.`,
		Example: exampleForSetCmd,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				assignments []assignment
				parseErrs   *multierror.Error
			)
			for _, arg := range args[1:] {
				a, err := parseAssignment(arg)
				if err != nil {
					parseErrs = multierror.Append(parseErrs, err)
					continue
				}
				assignments = append(assignments, a)
			}
			if err := parseErrs.ErrorOrNil(); err != nil {
				return err
			}

			s, err := openSession(args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			audit, err := auditor.New(s.proxy)
			if err != nil {
				return err
			}
			defer audit.Close()

			var setErrs *multierror.Error
			for _, a := range assignments {
				if err := a.apply(s.proxy); err != nil {
					setErrs = multierror.Append(setErrs, errors.Wrapf(err, "failed to set %q", a.path))
				}
			}
			if err := setErrs.ErrorOrNil(); err != nil {
				return err
			}
			if err := audit.Err(); err != nil {
				logrus.Warnf("history is incomplete: %v", err)
			}

			out := cmd.OutOrStdout()
			if opts.history {
				table := tablewriter.NewWriter(out)
				table.SetAutoWrapText(false)
				table.SetHeader([]string{historySeq, historyPointer, historyPatch})
				for _, e := range audit.History() {
					table.Append([]string{strconv.Itoa(e.Seq), e.Pointer, string(e.Forward)})
				}
				table.Render()
			}
			if opts.dryRun {
				return s.print(out, s.proxy.Target())
			}
			if audit.Len() == 0 {
				logrus.Infof("%s is unchanged", args[0])
				return nil
			}
			if err := s.Save(!opts.noAtomic); err != nil {
				return err
			}
			logrus.Debugf("wrote %d change(s) to %s", audit.Len(), args[0])
			return nil
		},
	}
	setCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the resulting document instead of writing it")
	setCmd.Flags().BoolVar(&opts.noAtomic, "no-atomic", false, "overwrite the file in place instead of replacing it")
	setCmd.Flags().BoolVar(&opts.history, "history", false, "print a table of every recorded change as a JSON merge patch")
	return setCmd
}
