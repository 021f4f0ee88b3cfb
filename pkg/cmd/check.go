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
)

// checkCmd validates a configuration source against a schema without
// writing a .config, the read-only counterpart to applyCmd.
var checkCmd = &cobra.Command{
	Use:   "check schema.yaml source",
	Short: "Validate a configuration source against a schema without writing a .config",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		schemaFile, sourceFile := args[0], args[1]

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

		if err := applySource(schema, sourceFile); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		errCount := printJournalReport(schema)

		outcome := "ok"
		if errCount > 0 {
			outcome = "errors"
		}

		recordRun(cmd, schema, outcome, errCount)

		if errCount > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
