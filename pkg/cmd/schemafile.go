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

	"gopkg.in/yaml.v3"

	"github.com/oddlama/kconfig-engine/pkg/kconfig"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/bridge"
	"github.com/oddlama/kconfig-engine/pkg/kconfig/expr"
)

// symbolFile is the on-disk shape of one symbol in a YAML schema file. It
// is the pre-built symbol table MemoryBridge expects, authored by hand in
// lieu of a real Kconfig tree parser.
type symbolFile struct {
	Name        string   `yaml:"name"`
	Type        string   `yaml:"type"`
	Flags       []string `yaml:"flags"`
	PromptCount int      `yaml:"prompt_count"`
	Deps        string   `yaml:"deps"`
	RevDeps     string   `yaml:"rev_deps"`
	IntMin      uint64   `yaml:"int_min"`
	IntMax      uint64   `yaml:"int_max"`
	Initial     any      `yaml:"initial"`
}

// loadSchemaFile reads a YAML schema file and resolves its symbol-name
// cross-references into bridge.SymbolSpec, assigning SymbolIds in file
// order (MemoryBridge's documented ordering).
func loadSchemaFile(path string) ([]bridge.SymbolSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []symbolFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	lookup := make(map[string]kconfig.SymbolId, len(raw))
	for i, sf := range raw {
		lookup[sf.Name] = kconfig.SymbolId(i)
	}

	resolve := func(name string) (kconfig.SymbolId, bool) {
		id, ok := lookup[name]
		return id, ok
	}

	specs := make([]bridge.SymbolSpec, len(raw))

	for i, sf := range raw {
		typ, err := parseSymbolType(sf.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: symbol %q: %w", path, sf.Name, err)
		}

		var flags kconfig.SymbolFlags
		for _, f := range sf.Flags {
			switch strings.ToUpper(f) {
			case "CONST":
				flags = flags.Set(kconfig.FlagConst)
			case "CHOICE":
				flags = flags.Set(kconfig.FlagChoice)
			default:
				return nil, fmt.Errorf("%s: symbol %q: unknown flag %q", path, sf.Name, f)
			}
		}

		deps, err := parseDepsExpr(sf.Deps, resolve)
		if err != nil {
			return nil, fmt.Errorf("%s: symbol %q: deps: %w", path, sf.Name, err)
		}

		revDeps, err := parseDepsExpr(sf.RevDeps, resolve)
		if err != nil {
			return nil, fmt.Errorf("%s: symbol %q: rev_deps: %w", path, sf.Name, err)
		}

		specs[i] = bridge.SymbolSpec{
			Name:        sf.Name,
			Type:        typ,
			Flags:       flags,
			PromptCount: sf.PromptCount,
			Deps:        deps,
			RevDeps:     revDeps,
			IntMin:      sf.IntMin,
			IntMax:      sf.IntMax,
			Initial:     sf.Initial,
		}
	}

	return specs, nil
}

func parseSymbolType(s string) (kconfig.SymbolType, error) {
	switch strings.ToLower(s) {
	case "bool", "boolean":
		return kconfig.Boolean, nil
	case "tristate":
		return kconfig.TristateType, nil
	case "int":
		return kconfig.Int, nil
	case "hex":
		return kconfig.Hex, nil
	case "string":
		return kconfig.String, nil
	default:
		return kconfig.Unknown, fmt.Errorf("unknown symbol type %q", s)
	}
}

// parseDepsExpr parses a small boolean-expression grammar over symbol names:
//
//	expr   := or
//	or     := and ("||" and)*
//	and    := unary ("&&" unary)*
//	unary  := "!" unary | atom
//	atom   := "(" or ")" | "true" | "false" | IDENT (cmpop IDENT)?
//	cmpop  := "==" | "!=" | "<=" | ">=" | "<" | ">"
//
// An empty string parses to nil, the "absent" expression used as the
// default for a symbol with no declared visibility or reverse-deps.
func parseDepsExpr(s string, resolve func(string) (kconfig.SymbolId, bool)) (kconfig.Expr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	p := &exprParser{tokens: tokenizeDeps(s), resolve: resolve}

	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.pos != len(p.tokens) {
		return nil, fmt.Errorf("unexpected trailing token %q", p.tokens[p.pos])
	}

	return e, nil
}

func tokenizeDeps(s string) []string {
	var tokens []string

	i := 0
	for i < len(s) {
		c := s[i]

		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(' || c == ')' || c == '!':
			tokens = append(tokens, string(c))
			i++
		case strings.HasPrefix(s[i:], "&&"):
			tokens = append(tokens, "&&")
			i += 2
		case strings.HasPrefix(s[i:], "||"):
			tokens = append(tokens, "||")
			i += 2
		case strings.HasPrefix(s[i:], "=="), strings.HasPrefix(s[i:], "!="),
			strings.HasPrefix(s[i:], "<="), strings.HasPrefix(s[i:], ">="):
			tokens = append(tokens, s[i:i+2])
			i += 2
		case c == '<' || c == '>':
			tokens = append(tokens, string(c))
			i++
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t()!<>", rune(s[j])) &&
				!strings.HasPrefix(s[j:], "&&") && !strings.HasPrefix(s[j:], "||") {
				j++
			}

			tokens = append(tokens, s[i:j])
			i = j
		}
	}

	return tokens
}

type exprParser struct {
	tokens  []string
	pos     int
	resolve func(string) (kconfig.SymbolId, bool)
}

func (p *exprParser) peek() string {
	if p.pos >= len(p.tokens) {
		return ""
	}

	return p.tokens[p.pos]
}

func (p *exprParser) next() string {
	t := p.peek()
	p.pos++

	return t
}

func (p *exprParser) parseOr() (kconfig.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.peek() == "||" {
		p.next()

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = expr.Or(left, right)
	}

	return left, nil
}

func (p *exprParser) parseAnd() (kconfig.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.peek() == "&&" {
		p.next()

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		left = expr.And(left, right)
	}

	return left, nil
}

func (p *exprParser) parseUnary() (kconfig.Expr, error) {
	if p.peek() == "!" {
		p.next()

		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return expr.Not(inner), nil
	}

	return p.parseAtom()
}

func (p *exprParser) parseAtom() (kconfig.Expr, error) {
	tok := p.next()

	switch tok {
	case "":
		return nil, fmt.Errorf("unexpected end of expression")
	case "(":
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}

		if p.next() != ")" {
			return nil, fmt.Errorf("expected closing parenthesis")
		}

		return inner, nil
	case "true":
		return expr.Const(true), nil
	case "false":
		return expr.Const(false), nil
	}

	id, ok := p.resolve(tok)
	if !ok {
		return nil, fmt.Errorf("unknown symbol %q", tok)
	}

	switch p.peek() {
	case "==", "!=", "<", "<=", ">", ">=":
		op := p.next()

		rhsTok := p.next()

		rhsID, ok := p.resolve(rhsTok)
		if !ok {
			return nil, fmt.Errorf("unknown symbol %q (comparisons are between two declared symbols)", rhsTok)
		}

		switch op {
		case "==":
			return expr.NewTerminal(expr.EqTerm{A: id, B: rhsID}), nil
		case "!=":
			return expr.NewTerminal(expr.NeqTerm{A: id, B: rhsID}), nil
		case "<":
			return expr.NewTerminal(expr.LthTerm{A: id, B: rhsID}), nil
		case "<=":
			return expr.NewTerminal(expr.LeqTerm{A: id, B: rhsID}), nil
		case ">":
			return expr.NewTerminal(expr.GthTerm{A: id, B: rhsID}), nil
		default: // ">="
			return expr.NewTerminal(expr.GeqTerm{A: id, B: rhsID}), nil
		}
	default:
		return expr.Sym(id), nil
	}
}
