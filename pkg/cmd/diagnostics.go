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
	"strings"

	"golang.org/x/term"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
)

// terminalWidth returns the current terminal's column width, the way the
// teacher's pkg/util/termio/terminal.go probes stdout before wrapping
// output, falling back to 80 when stdout is not a terminal (e.g. piped
// output, CI logs).
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}

	return 80
}

// printJournalReport renders schema's Journal to stdout and returns the
// number of errors reported. The report is written exactly as the Journal
// formats it; its lines are not wrapped to the terminal width.
func printJournalReport(schema *kconfig.Schema) int {
	return schema.Journal().Report(os.Stdout, func(id kconfig.SymbolId) (string, bool) {
		return schema.Symbol(id).Name()
	})
}

// wrapDetail wraps a detail line's continuation to the terminal width,
// indenting continuations to align under the first word.
func wrapDetail(prefix, body string) string {
	width := terminalWidth()
	if width <= len(prefix) {
		return prefix + body
	}

	budget := width - len(prefix)
	indent := strings.Repeat(" ", len(prefix))

	words := strings.Fields(body)
	if len(words) == 0 {
		return prefix
	}

	var b strings.Builder

	b.WriteString(prefix)

	lineLen := 0

	for i, w := range words {
		if lineLen > 0 && lineLen+1+len(w) > budget {
			b.WriteString("\n")
			b.WriteString(indent)

			lineLen = 0
		} else if i > 0 {
			b.WriteString(" ")
			lineLen++
		}

		b.WriteString(w)
		lineLen += len(w)
	}

	return b.String()
}

func printAssignments(assignments []kconfig.Assignment) {
	for _, a := range assignments {
		fmt.Printf("  %s=%s\n", a.Name, a.Value)
	}
}
