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

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// watchCmd reapplies a line-oriented configuration source against a fresh
// schema every time the source file changes on disk, printing the journal
// report after each reapplication. Useful while iteratively editing a
// .config-style source file by hand.
var watchCmd = &cobra.Command{
	Use:   "watch schema.yaml source",
	Short: "Reapply a configuration source whenever it changes on disk",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		schemaFile, sourceFile := args[0], args[1]

		specs, err := loadSchemaFile(schemaFile)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		defer watcher.Close()

		if err := watcher.Add(sourceFile); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		reapply := func() {
			schema, err := openSchema(cmd, specs)
			if err != nil {
				log.Errorf("reopen schema: %v", err)
				return
			}

			if err := applySource(schema, sourceFile); err != nil {
				log.Errorf("apply %s: %v", sourceFile, err)
				return
			}

			printJournalReport(schema)
		}

		log.Infof("watching %s", sourceFile)
		reapply()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					reapply()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}

				log.Errorf("watch: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
