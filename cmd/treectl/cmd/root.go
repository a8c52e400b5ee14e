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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sealerio/toolkit/common"
	"github.com/sealerio/toolkit/pkg/logger"
	"github.com/sealerio/toolkit/pkg/version"
	utilstrings "github.com/sealerio/toolkit/utils/strings"
)

type rootOpts struct {
	cfgFile              string
	debugModeOn          bool
	hideLogPath          bool
	logToFile            bool
	colorMode            string
	remoteLoggerURL      string
	remoteLoggerTaskName string
}

var rootOpt rootOpts

const (
	colorModeNever  = "never"
	colorModeAlways = "always"
)

var supportedColorModes = []string{
	colorModeNever,
	colorModeAlways,
}

var longRootCmdDescription = `treectl reads and writes YAML or JSON documents through an observable proxy.
Rules loaded before every command supply defaults for missing objects and
keep read-only paths untouched.
`

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           common.AppName,
	Short:         "Get and set values of structured documents by path",
	Long:          longRootCmdDescription,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if utilstrings.IsInSlice(rootOpt.colorMode, supportedColorModes) {
			return nil
		}
		return errors.Errorf("color mode must be one of %v", supportedColorModes)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Errorf("%s-%s: %v", common.AppName, version.Get(), err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(NewGetCmd(), NewSetCmd(), NewKeysCmd(), NewVersionCmd())

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootOpt.cfgFile, "config", "", "config file of treectl (default is $HOME/.treectl/config.yaml)")
	flags.String("rules", common.GetDefaultRulesFile(), "rules file with defaults and read-only paths")
	flags.StringP("output", "o", "", "print values as `yaml` or `json`, overrides the rules file")
	flags.BoolVarP(&rootOpt.debugModeOn, "debug", "d", false, "turn on debug mode")
	flags.BoolVar(&rootOpt.hideLogPath, "hide-path", false, "hide the log path")
	flags.BoolVar(&rootOpt.logToFile, "log-to-file", false, "write log message to disk")
	flags.StringVar(&rootOpt.colorMode, "color", colorModeAlways, fmt.Sprintf("set the log color mode, the possible values can be %v", supportedColorModes))
	flags.StringVar(&rootOpt.remoteLoggerURL, "remote-logger-url", "", "remote logger url, if not empty, will send log to this url")
	flags.StringVar(&rootOpt.remoteLoggerTaskName, "task-name", "", "task name which will embedded in the remote logger record, only valid when --remote-logger-url is set")

	_ = viper.BindPFlag(keyRules, flags.Lookup("rules"))
	_ = viper.BindPFlag(keyOutput, flags.Lookup("output"))
	rootCmd.DisableAutoGenTag = true
}

const (
	keyRules  = "rules"
	keyOutput = "output"
)

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if rootOpt.cfgFile == "" {
		rootOpt.cfgFile = filepath.Join(filepath.Dir(common.GetDefaultLogDir()), "config.yaml")
	}
	viper.SetConfigFile(rootOpt.cfgFile)
	viper.SetEnvPrefix(common.EnvPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	if err := logger.Init(logger.LogOptions{
		LogToFile:            rootOpt.logToFile,
		Verbose:              rootOpt.debugModeOn,
		HideLogPath:          rootOpt.hideLogPath,
		RemoteLoggerURL:      rootOpt.remoteLoggerURL,
		RemoteLoggerTaskName: rootOpt.remoteLoggerTaskName,
		DisableColor:         rootOpt.colorMode == colorModeNever,
	}); err != nil {
		panic(fmt.Sprintf("failed to init logger: %v\n", err))
	}

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debugf("no config file loaded from %s: %v", rootOpt.cfgFile, err)
	}
}
