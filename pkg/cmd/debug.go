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
	"gopkg.in/yaml.v3"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/expr"
)

// debugCmd groups subcommands that print the engine's internal state for
// inspection.
var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Print internal engine state for debugging.",
}

// debugSchemaCmd dumps the resolved symbol table as YAML: name, type,
// flags, current value, visibility and reverse-dependency floor, and
// (when present) the display forms of the deps/rev-deps expressions.
var debugSchemaCmd = &cobra.Command{
	Use:   "schema schema.yaml",
	Short: "Dump the resolved symbol table as YAML",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		specs, err := loadSchemaFile(args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		schema, err := openSchema(cmd, specs)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		names := func(id kconfig.SymbolId) string {
			if name, ok := schema.Symbol(id).Name(); ok {
				return name
			}

			return "<choice>"
		}

		var dump []debugSymbol

		for _, sym := range schema.Symbols() {
			name, ok := sym.Name()
			if !ok {
				continue
			}

			ds := debugSymbol{
				Name:       name,
				Type:       sym.Type().String(),
				Const:      sym.IsConst(),
				Choice:     sym.IsChoice(),
				Prompts:    sym.PromptCount(),
				Value:      sym.GetString(),
				Visible:    sym.Visible().String(),
				RevDepsMin: sym.ReverseDependencyFloor().String(),
			}

			if e := schema.Bridge().DepsWithPrompts(sym.Id()); e != nil {
				ds.Deps = expr.String(e, names)
			}

			if e := schema.Bridge().ReverseDependencies(sym.Id()); e != nil {
				ds.RevDeps = expr.String(e, names)
			}

			dump = append(dump, ds)
		}

		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()

		if err := enc.Encode(dump); err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
	},
}

// debugSymbol is the YAML shape of one dumped symbol.
type debugSymbol struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Const      bool   `yaml:"const,omitempty"`
	Choice     bool   `yaml:"choice,omitempty"`
	Prompts    int    `yaml:"prompts"`
	Value      string `yaml:"value"`
	Visible    string `yaml:"visible"`
	RevDepsMin string `yaml:"rev_deps_min"`
	Deps       string `yaml:"deps,omitempty"`
	RevDeps    string `yaml:"rev_deps,omitempty"`
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugSchemaCmd)
}
