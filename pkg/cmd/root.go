// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kconfig-engine",
	Short: "A configuration engine for Kconfig-style symbol schemas.",
	Long: "Applies, checks and solves assignments against a Kconfig-style configuration schema: a set of " +
		"boolean/tristate/string/numeric symbols related by dependency and reverse-dependency expressions.",
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Print("kconfig-engine ")
			if Version != "" {
				// Built via "make"
				fmt.Printf("%s", Version)
			} else if info, ok := debug.ReadBuildInfo(); ok {
				// Built via "go install"
				fmt.Printf("%s", info.Main.Version)
			} else {
				// Unknown, perhaps "go run"
				fmt.Printf("(unknown version)")
			}
			fmt.Println()

			return
		}

		cmd.Help() //nolint:errcheck
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		if GetFlag(rootCmd, "verbose") {
			logrus.SetLevel(logrus.DebugLevel)
		}
	})

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: false})

	rootCmd.Flags().Bool("version", false, "report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	// Environment the bridge is initialized with
	rootCmd.PersistentFlags().String("arch", "", "value exposed to the schema bridge as the ARCH environment variable")
	rootCmd.PersistentFlags().String("kernelversion", "",
		"value exposed to the schema bridge as the KERNELVERSION environment variable")
	rootCmd.PersistentFlags().String("pwd", "",
		"value exposed to the schema bridge as the PWD environment variable (defaults to the working directory)")
	// Bridge selection
	rootCmd.PersistentFlags().Bool("offline", true, "use the in-memory reference bridge instead of a native Kconfig bridge")
	// Index sidecar
	rootCmd.PersistentFlags().String("index-db", "", "path to the index sidecar database; when empty, no run is recorded")
}
