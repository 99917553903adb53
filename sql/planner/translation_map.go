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
	"github.com/spf13/cast"

	ast "github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/cascadedb/cascade/sql"
	"github.com/cascadedb/cascade/sql/analysis"
	"github.com/cascadedb/cascade/sql/expression"
)

// TranslationMap tracks which syntax expressions have already been computed
// by the plan built so far, and which symbol carries each one. Expressions
// are keyed structurally, so textually identical expressions share a symbol;
// subquery bindings are keyed by syntax-node identity, so each occurrence of
// a repeated subquery keeps its own symbol.
type TranslationMap struct {
	relation     *RelationPlan
	analysis     *analysis.Analysis
	fieldSymbols []sql.Symbol
	expressions  map[string]sql.Symbol
	subqueries   map[ast.SQLNode]sql.Symbol
}

// NewTranslationMap creates a map for the given base relation. Field mappings
// default to the relation's own output symbols.
func NewTranslationMap(relation RelationPlan, a *analysis.Analysis) *TranslationMap {
	t := &TranslationMap{
		relation:    &relation,
		analysis:    a,
		expressions: make(map[string]sql.Symbol),
		subqueries:  make(map[ast.SQLNode]sql.Symbol),
	}
	t.SetFieldMappings(relation.OutputSymbols...)
	return t
}

// Relation returns the base relation the field mappings refer to.
func (t *TranslationMap) Relation() RelationPlan { return *t.relation }

// FieldSymbols returns the current field-to-symbol mapping, in field order.
func (t *TranslationMap) FieldSymbols() []sql.Symbol {
	return append([]sql.Symbol{}, t.fieldSymbols...)
}

// SetFieldMappings rebinds the base relation's fields to new symbols. Called
// after a projection reshapes the column set.
func (t *TranslationMap) SetFieldMappings(symbols ...sql.Symbol) {
	t.fieldSymbols = append([]sql.Symbol{}, symbols...)
}

// PutField rebinds a single field to a new symbol.
func (t *TranslationMap) PutField(index int, symbol sql.Symbol) {
	t.fieldSymbols[index] = symbol
}

// Put records that the given expression is computed and carried by symbol.
// Re-recording the same expression overwrites; the map stays a function from
// expression to one symbol.
func (t *TranslationMap) Put(expr ast.Expr, symbol sql.Symbol) {
	t.expressions[analysis.ExprKey(expr)] = symbol
}

// PutItem records the symbol carrying a SELECT, ORDER BY or GROUP BY item.
func (t *TranslationMap) PutItem(item analysis.FieldOrExpression, symbol sql.Symbol) {
	if item.IsFieldReference() {
		t.PutField(item.FieldIndex(), symbol)
		return
	}
	t.Put(item.Expression(), symbol)
}

// PutSubquery binds one subquery or IN-predicate occurrence to the symbol its
// decorrelated plan produces.
func (t *TranslationMap) PutSubquery(node ast.SQLNode, symbol sql.Symbol) {
	t.subqueries[node] = symbol
}

// HasSubquery reports whether the given occurrence is already bound.
func (t *TranslationMap) HasSubquery(node ast.SQLNode) bool {
	_, ok := t.subqueries[node]
	return ok
}

// CopyMappingsFrom carries another map's recorded expressions and subquery
// bindings into this one. Field mappings are not copied; they belong to the
// receiver's relation.
func (t *TranslationMap) CopyMappingsFrom(other *TranslationMap) {
	for key, symbol := range other.expressions {
		t.expressions[key] = symbol
	}
	for node, symbol := range other.subqueries {
		t.subqueries[node] = symbol
	}
}

// subqueryBinding probes the occurrence-keyed bindings. Only the node types
// PutSubquery ever stores are probed: slice-typed expressions such as
// ast.ValTuple are not valid map keys and hashing them panics.
func (t *TranslationMap) subqueryBinding(expr ast.Expr) (sql.Symbol, bool) {
	switch expr.(type) {
	case *ast.Subquery, *ast.ComparisonExpr:
		symbol, ok := t.subqueries[expr]
		return symbol, ok
	}
	return sql.Symbol{}, false
}

// Translate returns the symbol recorded for an expression.
func (t *TranslationMap) Translate(expr ast.Expr) (sql.Symbol, error) {
	if symbol, ok := t.subqueryBinding(expr); ok {
		return symbol, nil
	}
	if symbol, ok := t.expressions[analysis.ExprKey(expr)]; ok {
		return symbol, nil
	}
	return sql.Symbol{}, sql.ErrTranslationNotFound.New(ast.String(expr))
}

// TranslateItem returns the symbol carrying a SELECT, ORDER BY or GROUP BY
// item: the field mapping for positional references, the expression mapping
// otherwise.
func (t *TranslationMap) TranslateItem(item analysis.FieldOrExpression) (sql.Symbol, error) {
	if item.IsFieldReference() {
		index := item.FieldIndex()
		if index < 0 || index >= len(t.fieldSymbols) {
			return sql.Symbol{}, sql.ErrBrokenAnalysis.New(item.String())
		}
		if t.fieldSymbols[index].IsZero() {
			return sql.Symbol{}, sql.ErrTranslationNotFound.New(item.String())
		}
		return t.fieldSymbols[index], nil
	}
	return t.Translate(item.Expression())
}

// CanTranslate reports whether the expression already has a recorded symbol.
func (t *TranslationMap) CanTranslate(expr ast.Expr) bool {
	_, err := t.Translate(expr)
	return err == nil
}

// Rewrite converts a syntax expression to a plan expression. Already-computed
// sub-expressions become symbol references; implicit coercions the analyzer
// recorded become explicit casts; column references resolve through the field
// mapping. A column that resolved to nothing is kept as an unresolved
// placeholder rather than failing, so callers can surface it with context.
func (t *TranslationMap) Rewrite(expr ast.Expr) (sql.Expression, error) {
	if symbol, ok := t.subqueryBinding(expr); ok {
		return expression.NewSymbolReference(symbol), nil
	}
	if symbol, ok := t.expressions[analysis.ExprKey(expr)]; ok {
		return expression.NewSymbolReference(symbol), nil
	}

	rewritten, err := t.rewriteStructural(expr)
	if err != nil {
		return nil, err
	}
	if target, ok := t.analysis.Coercion(expr); ok {
		rewritten = expression.NewCast(rewritten, target)
	}
	return rewritten, nil
}

func (t *TranslationMap) rewriteStructural(expr ast.Expr) (sql.Expression, error) {
	switch e := expr.(type) {
	case *ast.ColName:
		if index, ok := t.analysis.FieldIndex(e); ok {
			if index < 0 || index >= len(t.fieldSymbols) {
				return nil, sql.ErrBrokenAnalysis.New(ast.String(e))
			}
			if t.fieldSymbols[index].IsZero() {
				return nil, sql.ErrTranslationNotFound.New(ast.String(e))
			}
			return expression.NewSymbolReference(t.fieldSymbols[index]), nil
		}
		return expression.NewUnresolvedColumn(e.Name.String()), nil

	case *ast.ParenExpr:
		return t.Rewrite(e.Expr)

	case *ast.AndExpr:
		left, right, err := t.rewritePair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewAnd(left, right), nil

	case *ast.OrExpr:
		left, right, err := t.rewritePair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		return expression.NewOr(left, right), nil

	case *ast.NotExpr:
		child, err := t.Rewrite(e.Expr)
		if err != nil {
			return nil, err
		}
		return expression.NewNot(child), nil

	case *ast.ComparisonExpr:
		return t.rewriteComparison(e)

	case *ast.BinaryExpr:
		left, right, err := t.rewritePair(e.Left, e.Right)
		if err != nil {
			return nil, err
		}
		typ, ok := t.analysis.TypeOf(e)
		if !ok {
			typ = left.Type()
		}
		return expression.NewArithmetic(left, right, e.Operator, typ), nil

	case *ast.UnaryExpr:
		child, err := t.Rewrite(e.Expr)
		if err != nil {
			return nil, err
		}
		switch e.Operator {
		case ast.UMinusStr:
			return expression.NewUnaryMinus(child), nil
		case ast.UPlusStr:
			return child, nil
		}
		return nil, sql.ErrUnsupportedExpression.New(ast.String(e))

	case *ast.IsExpr:
		child, err := t.Rewrite(e.Expr)
		if err != nil {
			return nil, err
		}
		switch e.Operator {
		case ast.IsNullStr:
			return expression.NewIsNull(child), nil
		case ast.IsNotNullStr:
			return expression.NewNot(expression.NewIsNull(child)), nil
		}
		return nil, sql.ErrUnsupportedExpression.New(ast.String(e))

	case *ast.SQLVal:
		return rewriteLiteral(e)

	case *ast.NullVal:
		return expression.NewLiteral(nil, sql.Null), nil

	case ast.BoolVal:
		return expression.NewLiteral(bool(e), sql.Boolean), nil

	case *ast.FuncExpr:
		return t.rewriteFunction(e)

	case ast.ValTuple:
		tuple, err := t.rewriteTuple(e)
		if err != nil {
			return nil, err
		}
		return tuple, nil

	case *ast.Subquery:
		// Subqueries are decorrelated and bound before their containing
		// expression is rewritten; an unbound one here is a planner bug.
		return nil, sql.ErrPlannerInternal.New("unbound subquery: " + ast.String(e))

	default:
		return nil, sql.ErrUnsupportedExpression.New(ast.String(expr))
	}
}

func (t *TranslationMap) rewritePair(left, right ast.Expr) (sql.Expression, sql.Expression, error) {
	l, err := t.Rewrite(left)
	if err != nil {
		return nil, nil, err
	}
	r, err := t.Rewrite(right)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func (t *TranslationMap) rewriteComparison(e *ast.ComparisonExpr) (sql.Expression, error) {
	switch e.Operator {
	case ast.InStr, ast.NotInStr:
		return t.rewriteIn(e)
	}

	left, right, err := t.rewritePair(e.Left, e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case ast.EqualStr:
		return expression.NewEquals(left, right), nil
	case ast.NotEqualStr:
		return expression.NewNotEquals(left, right), nil
	case ast.LessThanStr:
		return expression.NewLessThan(left, right), nil
	case ast.LessEqualStr:
		return expression.NewLessThanOrEqual(left, right), nil
	case ast.GreaterThanStr:
		return expression.NewGreaterThan(left, right), nil
	case ast.GreaterEqualStr:
		return expression.NewGreaterThanOrEqual(left, right), nil
	}
	return nil, sql.ErrUnsupportedExpression.New(ast.String(e))
}

func (t *TranslationMap) rewriteIn(e *ast.ComparisonExpr) (sql.Expression, error) {
	if _, ok := e.Right.(*ast.Subquery); ok {
		// IN over a subquery must have been rewritten to a semi-join output
		// symbol before this occurrence is reached.
		return nil, sql.ErrPlannerInternal.New("unbound IN predicate: " + ast.String(e))
	}

	values, ok := e.Right.(ast.ValTuple)
	if !ok {
		return nil, sql.ErrUnsupportedExpression.New(ast.String(e))
	}
	left, err := t.Rewrite(e.Left)
	if err != nil {
		return nil, err
	}
	tuple, err := t.rewriteTuple(values)
	if err != nil {
		return nil, err
	}

	in := expression.NewInTuple(left, tuple)
	if e.Operator == ast.NotInStr {
		return expression.NewNot(in), nil
	}
	return in, nil
}

func (t *TranslationMap) rewriteTuple(values ast.ValTuple) (expression.Tuple, error) {
	tuple := make(expression.Tuple, len(values))
	for i, value := range values {
		rewritten, err := t.Rewrite(value)
		if err != nil {
			return nil, err
		}
		tuple[i] = rewritten
	}
	return tuple, nil
}

func (t *TranslationMap) rewriteFunction(e *ast.FuncExpr) (sql.Expression, error) {
	sig, ok := t.analysis.FunctionSignature(e)
	if !ok {
		return nil, sql.ErrBrokenAnalysis.New(ast.String(e))
	}

	args := make([]sql.Expression, 0, len(e.Exprs))
	for _, se := range e.Exprs {
		switch arg := se.(type) {
		case *ast.AliasedExpr:
			rewritten, err := t.Rewrite(arg.Expr)
			if err != nil {
				return nil, err
			}
			args = append(args, rewritten)
		case *ast.StarExpr:
			// count(*) and friends take no value arguments.
		default:
			return nil, sql.ErrUnsupportedExpression.New(ast.String(e))
		}
	}

	return expression.NewFunction(sig.Name, e.Distinct, sig.ReturnType, args...), nil
}

func rewriteLiteral(v *ast.SQLVal) (sql.Expression, error) {
	switch v.Type {
	case ast.IntVal:
		n, err := cast.ToInt64E(string(v.Val))
		if err != nil {
			return nil, sql.ErrUnsupportedExpression.New(string(v.Val))
		}
		return expression.NewLiteral(n, sql.BigInt), nil
	case ast.FloatVal:
		f, err := cast.ToFloat64E(string(v.Val))
		if err != nil {
			return nil, sql.ErrUnsupportedExpression.New(string(v.Val))
		}
		return expression.NewLiteral(f, sql.Double), nil
	case ast.StrVal:
		return expression.NewLiteral(string(v.Val), sql.Varchar), nil
	}
	return nil, sql.ErrUnsupportedExpression.New(string(v.Val))
}
