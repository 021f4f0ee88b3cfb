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

	"github.com/spf13/cobra"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
)

// satisfyCmd derives the assignments needed to make a named symbol
// assumable at a desired tristate, without applying a configuration source
// first. Useful for exploring what a symbol's dependency chain requires.
var satisfyCmd = &cobra.Command{
	Use:   "satisfy schema.yaml symbol [y|m|n]",
	Short: "Derive the assignments required to satisfy a symbol's dependencies",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		schemaFile, name := args[0], args[1]

		desired := kconfig.Yes

		if len(args) == 3 {
			t, err := kconfig.ParseTristate(args[2])
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}

			desired = t
		}

		specs, err := loadSchemaFile(schemaFile)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		schema, err := openSchema(cmd, specs)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		sym, ok := schema.Lookup(name)
		if !ok {
			fmt.Printf("unknown symbol %q\n", name)
			os.Exit(2)
		}

		assignments, err := sym.Satisfy(kconfig.SolverConfig{
			DesiredValue: desired,
			Recursive:    GetFlag(cmd, "recursive"),
		})
		if err != nil {
			fmt.Println(wrapDetail("error: ", err.Error()))
			os.Exit(1)
		}

		if len(assignments) == 0 {
			fmt.Println("already satisfied")
			return
		}

		printAssignments(assignments)
	},
}

func init() {
	satisfyCmd.Flags().Bool("recursive", true, "recursively satisfy every transitive dependency")
	rootCmd.AddCommand(satisfyCmd)
}
