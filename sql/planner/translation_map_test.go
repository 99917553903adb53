// Copyright 2024 CascadeDB, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	ast "github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/cascadedb/cascade/sql"
	"github.com/cascadedb/cascade/sql/analysis"
	"github.com/cascadedb/cascade/sql/expression"
)

func parseExpr(t *testing.T, s string) ast.Expr {
	t.Helper()
	stmt, err := ast.Parse("SELECT " + s + " FROM t")
	require.NoError(t, err)
	return stmt.(*ast.Select).SelectExprs[0].(*ast.AliasedExpr).Expr
}

func newTestMap(t *testing.T) (*TranslationMap, *analysis.Analysis, []sql.Symbol) {
	t.Helper()

	symbols := NewSymbolAllocator()
	ids := NewPlanNodeIDAllocator()
	relations := &testRelations{symbols: symbols, ids: ids}

	relation, err := relations.scanTable("t")
	require.NoError(t, err)

	a := analysis.New()
	return NewTranslationMap(relation, a), a, relation.OutputSymbols
}

func TestTranslationMapRewritesLiterals(t *testing.T) {
	require := require.New(t)
	tm, _, _ := newTestMap(t)

	rewritten, err := tm.Rewrite(parseExpr(t, "42"))
	require.NoError(err)
	lit, ok := rewritten.(*expression.Literal)
	require.True(ok)
	require.Equal(int64(42), lit.Value())
	require.Equal(sql.BigInt, lit.Type())

	rewritten, err = tm.Rewrite(parseExpr(t, "1.5"))
	require.NoError(err)
	require.Equal(sql.Double, rewritten.Type())

	rewritten, err = tm.Rewrite(parseExpr(t, "'abc'"))
	require.NoError(err)
	require.Equal(sql.Varchar, rewritten.Type())
}

func TestTranslationMapResolvesFields(t *testing.T) {
	require := require.New(t)
	tm, a, fieldSymbols := newTestMap(t)

	col := parseExpr(t, "b").(*ast.ColName)
	a.RecordFieldReference(col, 1)

	rewritten, err := tm.Rewrite(col)
	require.NoError(err)
	ref, ok := rewritten.(*expression.SymbolReference)
	require.True(ok)
	require.Equal(fieldSymbols[1], ref.Symbol())
}

func TestTranslationMapKeepsUnresolvedColumns(t *testing.T) {
	require := require.New(t)
	tm, _, _ := newTestMap(t)

	rewritten, err := tm.Rewrite(parseExpr(t, "nosuchcolumn"))
	require.NoError(err)
	unresolved, ok := rewritten.(*expression.UnresolvedColumn)
	require.True(ok)
	require.False(unresolved.Resolved())
}

func TestTranslationMapPrefersRecordedExpressions(t *testing.T) {
	require := require.New(t)
	tm, a, _ := newTestMap(t)

	expr := parseExpr(t, "b + 1")
	col := findColName(expr)
	a.RecordFieldReference(col, 1)

	computed := sql.NewSymbol("precomputed", sql.BigInt)
	tm.Put(expr, computed)

	// The whole expression hits the mapping, even through a textually
	// identical copy of the tree.
	copyExpr := parseExpr(t, "b + 1")
	rewritten, err := tm.Rewrite(copyExpr)
	require.NoError(err)
	ref, ok := rewritten.(*expression.SymbolReference)
	require.True(ok)
	require.Equal(computed, ref.Symbol())

	symbol, err := tm.Translate(copyExpr)
	require.NoError(err)
	require.Equal(computed, symbol)
}

func TestTranslationMapAppliesCoercions(t *testing.T) {
	require := require.New(t)
	tm, a, _ := newTestMap(t)

	col := parseExpr(t, "b").(*ast.ColName)
	a.RecordFieldReference(col, 1)
	a.RecordCoercion(col, sql.Double)

	rewritten, err := tm.Rewrite(col)
	require.NoError(err)
	c, ok := rewritten.(*expression.Cast)
	require.True(ok, "expected an explicit cast, got %T", rewritten)
	require.Equal(sql.Double, c.Type())
}

func TestTranslationMapMissingTranslation(t *testing.T) {
	require := require.New(t)
	tm, _, _ := newTestMap(t)

	_, err := tm.Translate(parseExpr(t, "b + 1"))
	require.Error(err)
	require.True(sql.ErrTranslationNotFound.Is(err))
}

func TestTranslationMapUnboundSubquery(t *testing.T) {
	require := require.New(t)
	tm, _, _ := newTestMap(t)

	_, err := tm.Rewrite(parseExpr(t, "(SELECT a FROM t2)"))
	require.Error(err)
	require.True(sql.ErrPlannerInternal.Is(err))
}

func TestTranslationMapSubqueryBindingsArePerOccurrence(t *testing.T) {
	require := require.New(t)
	tm, _, _ := newTestMap(t)

	first := parseExpr(t, "(SELECT a FROM t2)")
	second := parseExpr(t, "(SELECT a FROM t2)")

	firstSymbol := sql.NewSymbol("sub_1", sql.BigInt)
	secondSymbol := sql.NewSymbol("sub_2", sql.BigInt)
	tm.PutSubquery(first, firstSymbol)
	tm.PutSubquery(second, secondSymbol)

	rewritten, err := tm.Rewrite(first)
	require.NoError(err)
	require.Equal(firstSymbol, rewritten.(*expression.SymbolReference).Symbol())

	rewritten, err = tm.Rewrite(second)
	require.NoError(err)
	require.Equal(secondSymbol, rewritten.(*expression.SymbolReference).Symbol())
}

func TestTranslationMapRewritesInTuple(t *testing.T) {
	require := require.New(t)
	tm, a, _ := newTestMap(t)

	expr := parseExpr(t, "b IN (1, 2, 3)")
	a.RecordFieldReference(findColName(expr), 1)

	rewritten, err := tm.Rewrite(expr)
	require.NoError(err)
	in, ok := rewritten.(*expression.InTuple)
	require.True(ok)
	require.Equal(sql.Boolean, in.Type())
	require.Len(in.Right.(expression.Tuple), 3)
}

func TestTranslationMapRewritesRowValueIn(t *testing.T) {
	require := require.New(t)
	tm, a, _ := newTestMap(t)

	expr := parseExpr(t, "(a, b) IN ((1, 2), (3, 4))")
	_ = ast.Walk(func(node ast.SQLNode) (bool, error) {
		if col, ok := node.(*ast.ColName); ok {
			switch col.Name.Lowered() {
			case "a":
				a.RecordFieldReference(col, 0)
			case "b":
				a.RecordFieldReference(col, 1)
			}
		}
		return true, nil
	}, expr)

	rewritten, err := tm.Rewrite(expr)
	require.NoError(err)
	in, ok := rewritten.(*expression.InTuple)
	require.True(ok, "expected an IN over a tuple list, got %T", rewritten)

	left, ok := in.Left.(expression.Tuple)
	require.True(ok, "expected a tuple on the left, got %T", in.Left)
	require.Len(left, 2)

	right := in.Right.(expression.Tuple)
	require.Len(right, 2)
	for _, member := range right {
		require.Len(member.(expression.Tuple), 2)
	}
	require.True(rewritten.Resolved())
}

func TestTranslationMapRewritesLogicAndComparisons(t *testing.T) {
	require := require.New(t)
	tm, a, _ := newTestMap(t)

	expr := parseExpr(t, "b > 1 AND NOT c IS NULL")
	_ = ast.Walk(func(node ast.SQLNode) (bool, error) {
		if col, ok := node.(*ast.ColName); ok {
			switch col.Name.Lowered() {
			case "b":
				a.RecordFieldReference(col, 1)
			case "c":
				a.RecordFieldReference(col, 3)
			}
		}
		return true, nil
	}, expr)

	rewritten, err := tm.Rewrite(expr)
	require.NoError(err)
	and, ok := rewritten.(*expression.And)
	require.True(ok)
	require.Equal(sql.Boolean, and.Type())
	require.True(rewritten.Resolved())
}

func findColName(expr ast.Expr) *ast.ColName {
	var col *ast.ColName
	_ = ast.Walk(func(node ast.SQLNode) (bool, error) {
		if c, ok := node.(*ast.ColName); ok && col == nil {
			col = c
		}
		return true, nil
	}, expr)
	return col
}
