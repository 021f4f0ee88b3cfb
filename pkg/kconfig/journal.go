package kconfig

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Transaction is an append-only record of one attempted assignment.
type Transaction struct {
	Symbol        SymbolId
	File          string
	Line          int
	Traceback     string
	IntendedValue SymbolValue
	ValueBefore   Tristate
	ValueAfter    Tristate
	Err           error
}

// succeeded reports whether the transaction completed without error.
func (t Transaction) succeeded() bool { return t.Err == nil }

// changed reports whether the transaction's before/after values differ.
func (t Transaction) changed() bool { return t.ValueBefore != t.ValueAfter }

// Journal is the ordered, append-only log of every tracked assignment made
// during a run. Every Schema owns exactly one Journal. Each Journal carries
// a RunID correlating its diagnostic report with the index sidecar row for
// the same run.
type Journal struct {
	RunID        uuid.UUID
	transactions []Transaction
	lineCache    map[string][]string
}

// NewJournal creates an empty Journal with a fresh RunID.
func NewJournal() *Journal {
	return &Journal{RunID: uuid.New(), lineCache: make(map[string][]string)}
}

// Transactions returns the journal's transactions in call order.
func (j *Journal) Transactions() []Transaction { return j.transactions }

func (j *Journal) append(t Transaction) { j.transactions = append(j.transactions, t) }

// sourceLine lazily reads and caches file so repeated lookups for the same
// file during a single diagnostic report don't reopen it.
func (j *Journal) sourceLine(file string, line int) (string, bool) {
	lines, ok := j.lineCache[file]
	if !ok {
		data, err := os.ReadFile(file)
		if err != nil {
			j.lineCache[file] = nil
			return "", false
		}

		lines = strings.Split(string(data), "\n")
		j.lineCache[file] = lines
	}

	if lines == nil || line < 1 || line > len(lines) {
		return "", false
	}

	return lines[line-1], true
}

// Report walks the journal in order, writing a compiler-style diagnostic
// report to w: an error block per failed transaction, a reassignment
// warning for any symbol set more than once with a changed value, and a
// summary line. It returns the number of errors reported.
func (j *Journal) Report(w io.Writer, names func(SymbolId) (string, bool)) int {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	errCount := 0
	seen := make(map[SymbolId]Transaction)

	for _, t := range j.transactions {
		if !t.succeeded() {
			errCount++
			j.printError(bw, t, names)
			continue
		}

		if prior, ok := seen[t.Symbol]; ok && transactionsDiffer(prior, t) {
			j.printReassignmentWarning(bw, prior, t, names)
		}

		seen[t.Symbol] = t
	}

	if errCount > 0 {
		fmt.Fprintf(bw, "\naborting due to %d previous error", errCount)

		if errCount != 1 {
			fmt.Fprint(bw, "s")
		}

		fmt.Fprintln(bw)
	}

	return errCount
}

// transactionsDiffer reports whether either transaction actually moved the
// symbol's value; two transactions that both leave the value untouched
// (re-recording an already-current value) are not treated as a
// reassignment.
func transactionsDiffer(prior, next Transaction) bool {
	return prior.changed() || next.changed()
}

func (j *Journal) printError(w io.Writer, t Transaction, names func(SymbolId) (string, bool)) {
	name, _ := names(t.Symbol)
	fmt.Fprintf(w, "error: %s\n", t.Err.Error())
	j.printLocation(w, t, name)
	j.printDetail(w, t, names)
	fmt.Fprintln(w)
}

func (j *Journal) printReassignmentWarning(w io.Writer, prior, next Transaction, names func(SymbolId) (string, bool)) {
	name, _ := names(next.Symbol)
	fmt.Fprintf(w, "warning: reassignment of symbol %s\n", name)
	j.printLocation(w, prior, name)
	j.printLocation(w, next, name)
	fmt.Fprintln(w)
}

// printLocation renders a single "file:line" block with the source line
// and a pointer caret underneath it, compiler-diagnostic style.
func (j *Journal) printLocation(w io.Writer, t Transaction, name string) {
	fmt.Fprintf(w, "  --> %s:%d\n", t.File, t.Line)

	line, ok := j.sourceLine(t.File, t.Line)
	if !ok {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", line)

	col := strings.Index(line, name)
	if col < 0 {
		col = 0
	}

	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", col), strings.Repeat("^", max(1, len(name))))
}

func (j *Journal) printDetail(w io.Writer, t Transaction, names func(SymbolId) (string, bool)) {
	var sse *SymbolSetError
	if !errors.As(t.Err, &sse) {
		return
	}

	switch sse.Kind {
	case ErrUnmetDependencies:
		fmt.Fprintf(w, "  unmet dependencies [min=%s, max=%s]:\n", sse.Min, sse.Max)

		for _, d := range sse.DisplayDeps {
			fmt.Fprintf(w, "    - %s\n", d)
		}

		if sse.Satisfying != nil {
			fmt.Fprintln(w, "  suggestion:")

			for _, a := range sse.Satisfying {
				fmt.Fprintf(w, "    %s=%s\n", a.Name, a.Value)
			}
		}
	case ErrRequiredByOther:
		fmt.Fprintf(w, "  required by [min=%s, max=%s]:\n", sse.Min, sse.Max)

		for _, d := range sse.DisplayRevDeps {
			fmt.Fprintf(w, "    - %s\n", d)
		}
	case ErrMustBeSelected:
		fmt.Fprintln(w, "  must be selected by one of:")

		for _, d := range sse.DisplayRevDeps {
			fmt.Fprintf(w, "    - %s\n", d)
		}
	case ErrSatisfyFailed:
		fmt.Fprintf(w, "  satisfy failed: %s\n", sse.Err.Error())
	}
}
