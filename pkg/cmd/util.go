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
	"github.com/oddlama/kconfig-engine/pkg/kconfig/bridge"
)

// GetFlag gets an expected boolean flag; on error it prints the error and
// exits with status 2.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag; on error it prints the error and
// exits with status 4.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}

	return r
}

// buildEnvironment collects the bridge-facing environment from the command's
// persistent flags, falling back to the process working directory for PWD
// when unset.
func buildEnvironment(cmd *cobra.Command) map[string]string {
	env := map[string]string{
		"ARCH":          GetString(cmd, "arch"),
		"KERNELVERSION": GetString(cmd, "kernelversion"),
	}

	if pwd := GetString(cmd, "pwd"); pwd != "" {
		env["PWD"] = pwd
	} else if wd, err := os.Getwd(); err == nil {
		env["PWD"] = wd
	}

	return env
}

// openSchema constructs the Bridge implementation selected on the command
// line and wraps it in a *kconfig.Schema. Only the in-memory reference
// bridge is available offline; a native bridge is a future addition per
// the Bridge contract's extension point.
func openSchema(cmd *cobra.Command, specs []bridge.SymbolSpec) (*kconfig.Schema, error) {
	if !GetFlag(cmd, "offline") {
		fmt.Println("no native bridge is configured; pass --offline")
		os.Exit(2)
	}

	b := bridge.NewMemoryBridge(specs)

	return kconfig.NewSchema(b, buildEnvironment(cmd))
}
