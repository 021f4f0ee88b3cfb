package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oddlama/kconfig-engine/pkg/kconfig/expr"
)

func sid(n uint32) expr.SymbolId { return expr.SymbolId(n) }

func TestTristateOrdering(t *testing.T) {
	assert.True(t, expr.No < expr.Mod)
	assert.True(t, expr.Mod < expr.Yes)
}

func TestTristateInvert(t *testing.T) {
	assert.Equal(t, expr.Yes, expr.No.Invert())
	assert.Equal(t, expr.No, expr.Yes.Invert())
	assert.Equal(t, expr.Mod, expr.Mod.Invert())
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, expr.No, expr.Min(expr.No, expr.Yes))
	assert.Equal(t, expr.Yes, expr.Max(expr.No, expr.Yes))
	assert.Equal(t, expr.Mod, expr.Min(expr.Mod, expr.Yes))
}

func TestParseTristate(t *testing.T) {
	v, err := expr.ParseTristate("m")
	require.NoError(t, err)
	assert.Equal(t, expr.Mod, v)

	_, err = expr.ParseTristate("x")
	assert.Error(t, err)
}

func TestOrClausesFlattensLeftAssociative(t *testing.T) {
	e := expr.Or(expr.Or(expr.Sym(sid(1)), expr.Sym(sid(2))), expr.Sym(sid(3)))
	clauses := expr.OrClauses(e)
	require.Len(t, clauses, 3)
}

func TestAndClausesSingleton(t *testing.T) {
	e := expr.Sym(sid(1))
	clauses := expr.AndClauses(e)
	require.Len(t, clauses, 1)
	assert.Equal(t, e, clauses[0])
}

type fakeEnv struct {
	tristate map[expr.SymbolId]expr.Tristate
	tsCompat map[expr.SymbolId]bool
	numCompat map[expr.SymbolId]bool
	numStr   map[expr.SymbolId]string
}

func (f *fakeEnv) Tristate(id expr.SymbolId) expr.Tristate     { return f.tristate[id] }
func (f *fakeEnv) IsTristateCompatible(id expr.SymbolId) bool  { return f.tsCompat[id] }
func (f *fakeEnv) IsNumericCompatible(id expr.SymbolId) bool   { return f.numCompat[id] }
func (f *fakeEnv) NumericString(id expr.SymbolId) string       { return f.numStr[id] }
func (f *fakeEnv) Name(id expr.SymbolId) (string, bool)        { return "", false }

func TestEvalConstAndLogic(t *testing.T) {
	env := &fakeEnv{}
	v, err := expr.Eval(expr.And(expr.Const(true), expr.Const(false)), env)
	require.NoError(t, err)
	assert.Equal(t, expr.No, v)

	v, err = expr.Eval(expr.Or(expr.Const(false), expr.Const(true)), env)
	require.NoError(t, err)
	assert.Equal(t, expr.Yes, v)

	v, err = expr.Eval(expr.Not(expr.Const(true)), env)
	require.NoError(t, err)
	assert.Equal(t, expr.No, v)
}

func TestEvalSymbolTerminal(t *testing.T) {
	env := &fakeEnv{tristate: map[expr.SymbolId]expr.Tristate{sid(1): expr.Mod}}
	v, err := expr.Eval(expr.Sym(sid(1)), env)
	require.NoError(t, err)
	assert.Equal(t, expr.Mod, v)
}

func TestEvalComparisonTristate(t *testing.T) {
	env := &fakeEnv{
		tristate: map[expr.SymbolId]expr.Tristate{sid(1): expr.Yes, sid(2): expr.Yes},
		tsCompat: map[expr.SymbolId]bool{sid(1): true, sid(2): true},
	}
	v, err := expr.Eval(expr.NewTerminal(expr.EqTerm{A: sid(1), B: sid(2)}), env)
	require.NoError(t, err)
	assert.Equal(t, expr.Yes, v)
}

func TestEvalComparisonNumeric(t *testing.T) {
	env := &fakeEnv{
		numCompat: map[expr.SymbolId]bool{sid(1): true, sid(2): true},
		numStr:    map[expr.SymbolId]string{sid(1): "10", sid(2): "0xA"},
	}
	v, err := expr.Eval(expr.NewTerminal(expr.EqTerm{A: sid(1), B: sid(2)}), env)
	require.NoError(t, err)
	assert.Equal(t, expr.Yes, v)
}

func TestEvalComparisonIncompatibleFails(t *testing.T) {
	env := &fakeEnv{}
	_, err := expr.Eval(expr.NewTerminal(expr.LthTerm{A: sid(1), B: sid(2)}), env)
	require.Error(t, err)
	var target *expr.InvalidTerminalError
	assert.ErrorAs(t, err, &target)
}

func TestEvalComparisonInvalidInteger(t *testing.T) {
	env := &fakeEnv{
		numCompat: map[expr.SymbolId]bool{sid(1): true, sid(2): true},
		numStr:    map[expr.SymbolId]string{sid(1): "not-a-number", sid(2): "1"},
	}
	_, err := expr.Eval(expr.NewTerminal(expr.EqTerm{A: sid(1), B: sid(2)}), env)
	require.Error(t, err)
	var target *expr.InvalidIntegerSymbolError
	assert.ErrorAs(t, err, &target)
}

func TestConvertNilIsConvertNone(t *testing.T) {
	_, err := expr.Convert(nil)
	require.Error(t, err)
	var target *expr.ExprConvertError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, expr.ConvertNone, target.Kind)
}

func TestConvertSimpleAnd(t *testing.T) {
	a := sid(1)
	b := sid(2)
	n := &expr.RawNode{
		Kind: expr.RawAnd,
		Left: &expr.RawNode{Kind: expr.RawSymbol, A: &a},
		Right: &expr.RawNode{Kind: expr.RawSymbol, A: &b},
	}

	e, err := expr.Convert(n)
	require.NoError(t, err)
	_, ok := e.(expr.AndExpr)
	assert.True(t, ok)
}

func TestConvertListUnsupported(t *testing.T) {
	_, err := expr.Convert(&expr.RawNode{Kind: expr.RawList})
	require.Error(t, err)
	var target *expr.ExprConvertError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, expr.ConvertList, target.Kind)
}

func TestConvertRangeUnsupported(t *testing.T) {
	_, err := expr.Convert(&expr.RawNode{Kind: expr.RawRange})
	require.Error(t, err)
	var target *expr.ExprConvertError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, expr.ConvertRange, target.Kind)
}

func TestConvertNullChildFails(t *testing.T) {
	_, err := expr.Convert(&expr.RawNode{Kind: expr.RawNot})
	require.Error(t, err)
	var target *expr.ExprConvertError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, expr.ConvertNullExpr, target.Kind)
}

func TestDisplayElidesParensWithinSameOperator(t *testing.T) {
	names := func(id expr.SymbolId) string {
		return map[expr.SymbolId]string{sid(1): "A", sid(2): "B", sid(3): "C"}[id]
	}
	e := expr.And(expr.And(expr.Sym(sid(1)), expr.Sym(sid(2))), expr.Sym(sid(3)))
	assert.Equal(t, "A && B && C", expr.String(e, names))
}

func TestDisplayParenthesizesOrInsideAnd(t *testing.T) {
	names := func(id expr.SymbolId) string {
		return map[expr.SymbolId]string{sid(1): "A", sid(2): "B", sid(3): "C"}[id]
	}
	e := expr.And(expr.Or(expr.Sym(sid(1)), expr.Sym(sid(2))), expr.Sym(sid(3)))
	assert.Equal(t, "(A || B) && C", expr.String(e, names))
}
