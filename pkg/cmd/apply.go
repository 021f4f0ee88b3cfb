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
	"path"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/index"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/script"
)

var applyCmd = &cobra.Command{
	Use:   "apply schema.yaml source [-o .config]",
	Short: "Apply a configuration source against a schema and write the resulting .config",
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

		out := GetString(cmd, "output")
		if out == "" {
			out = ".config"
		}

		if err := schema.Bridge().WriteConfig(out); err != nil {
			fmt.Println(err)
			os.Exit(3)
		}

		log.Infof("wrote %s", out)
	},
}

// applySource dispatches a configuration source file to the line-oriented
// or scripted frontend by extension.
func applySource(schema *kconfig.Schema, sourceFile string) error {
	data, err := os.ReadFile(sourceFile)
	if err != nil {
		return err
	}

	switch path.Ext(sourceFile) {
	case ".go":
		return script.YaegiSource{File: sourceFile}.Apply(schema, string(data))
	default:
		f, err := os.Open(sourceFile)
		if err != nil {
			return err
		}
		defer f.Close()

		return script.LineSource{File: sourceFile}.Apply(schema, f)
	}
}

// recordRun writes one index sidecar row for the run, if --index-db is set.
func recordRun(cmd *cobra.Command, schema *kconfig.Schema, outcome string, errCount int) {
	dbPath := GetString(cmd, "index-db")
	if dbPath == "" {
		return
	}

	sidecar, err := index.Open(dbPath)
	if err != nil {
		log.Warnf("index sidecar: %v", err)
		return
	}
	defer sidecar.Close()

	env := buildEnvironment(cmd)

	err = sidecar.Record(index.Run{
		RunID:         schema.Journal().RunID.String(),
		PWD:           env["PWD"],
		Arch:          env["ARCH"],
		KernelVersion: env["KERNELVERSION"],
		Outcome:       outcome,
		ErrorCount:    errCount,
	})
	if err != nil {
		log.Warnf("index sidecar: %v", err)
	}
}

func init() {
	applyCmd.Flags().StringP("output", "o", ".config", "path to write the resulting .config to")
	rootCmd.AddCommand(applyCmd)
}
