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

// Package analysis holds the fact base the semantic analyzer produces for one
// query: resolved column bindings, expression types, implicit coercions,
// function signatures, per-clause expression lists and identified subquery
// locations. The planner consumes it read-only; the Record/Set methods exist
// for the analyzer (and tests) populating it before planning starts.
package analysis

import (
	ast "github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/cascadedb/cascade/sql"
)

// Analysis is the annotated result of semantically analyzing one statement.
// Scalar annotations are keyed by syntax-node identity; clause annotations by
// the identity of the owning statement node.
type Analysis struct {
	types      map[ast.Expr]sql.Type
	coercions  map[ast.Expr]sql.Type
	functions  map[*ast.FuncExpr]sql.Signature
	fieldRefs  map[*ast.ColName]int
	statements map[ast.SQLNode]*statementAnalysis
}

type statementAnalysis struct {
	where             ast.Expr
	having            ast.Expr
	outputs           []FieldOrExpression
	orderBy           []FieldOrExpression
	groupingSets      [][]FieldOrExpression
	aggregates        []*ast.FuncExpr
	windowFunctions   []*ast.FuncExpr
	inPredicates      []*ast.ComparisonExpr
	scalarSubqueries  []*ast.Subquery
	distinct          bool
	limit             string
	hasLimit          bool
	tableHandle       sql.TableHandle
	tableDescriptor   *RelationType
	tableColumns      []sql.ColumnHandle
	outputDescriptors *RelationType
}

// New creates an empty fact base.
func New() *Analysis {
	return &Analysis{
		types:      make(map[ast.Expr]sql.Type),
		coercions:  make(map[ast.Expr]sql.Type),
		functions:  make(map[*ast.FuncExpr]sql.Signature),
		fieldRefs:  make(map[*ast.ColName]int),
		statements: make(map[ast.SQLNode]*statementAnalysis),
	}
}

func (a *Analysis) stmt(node ast.SQLNode) *statementAnalysis {
	s, ok := a.statements[node]
	if !ok {
		s = new(statementAnalysis)
		a.statements[node] = s
	}
	return s
}

// RecordType records the resolved type of an expression occurrence.
func (a *Analysis) RecordType(expr ast.Expr, typ sql.Type) {
	a.types[expr] = typ
}

// TypeOf returns the resolved type of an expression occurrence.
func (a *Analysis) TypeOf(expr ast.Expr) (sql.Type, bool) {
	t, ok := a.types[expr]
	return t, ok
}

// RecordCoercion records that the value of an expression occurrence must be
// implicitly coerced to the given type. Absence means no coercion is needed.
func (a *Analysis) RecordCoercion(expr ast.Expr, typ sql.Type) {
	a.coercions[expr] = typ
}

// Coercion returns the implicit-coercion target type of an expression
// occurrence, if any.
func (a *Analysis) Coercion(expr ast.Expr) (sql.Type, bool) {
	t, ok := a.coercions[expr]
	return t, ok
}

// RecordFunction records the resolved signature of a function call.
func (a *Analysis) RecordFunction(call *ast.FuncExpr, sig sql.Signature) {
	a.functions[call] = sig
}

// FunctionSignature returns the resolved signature of a function call.
func (a *Analysis) FunctionSignature(call *ast.FuncExpr) (sql.Signature, bool) {
	sig, ok := a.functions[call]
	return sig, ok
}

// RecordFieldReference binds a column reference to a field position of the
// relation in scope.
func (a *Analysis) RecordFieldReference(col *ast.ColName, index int) {
	a.fieldRefs[col] = index
}

// FieldIndex returns the field position a column reference resolved to.
func (a *Analysis) FieldIndex(col *ast.ColName) (int, bool) {
	i, ok := a.fieldRefs[col]
	return i, ok
}

// SetWhere records the WHERE predicate of a statement.
func (a *Analysis) SetWhere(node ast.SQLNode, predicate ast.Expr) {
	a.stmt(node).where = predicate
}

// Where returns the WHERE predicate of a statement, or nil.
func (a *Analysis) Where(node ast.SQLNode) ast.Expr {
	return a.stmt(node).where
}

// SetHaving records the HAVING predicate of a statement.
func (a *Analysis) SetHaving(node ast.SQLNode, predicate ast.Expr) {
	a.stmt(node).having = predicate
}

// Having returns the HAVING predicate of a statement, or nil.
func (a *Analysis) Having(node ast.SQLNode) ast.Expr {
	return a.stmt(node).having
}

// SetOutputExpressions records the ordered SELECT-list items.
func (a *Analysis) SetOutputExpressions(node ast.SQLNode, outputs []FieldOrExpression) {
	a.stmt(node).outputs = outputs
}

// OutputExpressions returns the ordered SELECT-list items.
func (a *Analysis) OutputExpressions(node ast.SQLNode) []FieldOrExpression {
	return a.stmt(node).outputs
}

// SetOrderByExpressions records the ordered ORDER BY items.
func (a *Analysis) SetOrderByExpressions(node ast.SQLNode, orderBy []FieldOrExpression) {
	a.stmt(node).orderBy = orderBy
}

// OrderByExpressions returns the ordered ORDER BY items.
func (a *Analysis) OrderByExpressions(node ast.SQLNode) []FieldOrExpression {
	return a.stmt(node).orderBy
}

// SetGroupingSets records the grouping sets of a statement. A plain GROUP BY
// is one set; ROLLUP/CUBE/GROUPING SETS expand to several; a global aggregate
// with no GROUP BY is one empty set.
func (a *Analysis) SetGroupingSets(node ast.SQLNode, sets [][]FieldOrExpression) {
	a.stmt(node).groupingSets = sets
}

// GroupingSets returns the grouping sets of a statement; empty means the
// statement has no aggregation.
func (a *Analysis) GroupingSets(node ast.SQLNode) [][]FieldOrExpression {
	return a.stmt(node).groupingSets
}

// SetAggregates records the aggregate calls of a statement.
func (a *Analysis) SetAggregates(node ast.SQLNode, aggregates []*ast.FuncExpr) {
	a.stmt(node).aggregates = aggregates
}

// Aggregates returns the aggregate calls of a statement.
func (a *Analysis) Aggregates(node ast.SQLNode) []*ast.FuncExpr {
	return a.stmt(node).aggregates
}

// SetWindowFunctions records the window function calls of a statement.
func (a *Analysis) SetWindowFunctions(node ast.SQLNode, funcs []*ast.FuncExpr) {
	a.stmt(node).windowFunctions = funcs
}

// WindowFunctions returns the window function calls of a statement.
func (a *Analysis) WindowFunctions(node ast.SQLNode) []*ast.FuncExpr {
	return a.stmt(node).windowFunctions
}

// AddInPredicate records an identified IN predicate whose value list is a
// subquery.
func (a *Analysis) AddInPredicate(node ast.SQLNode, in *ast.ComparisonExpr) {
	s := a.stmt(node)
	s.inPredicates = append(s.inPredicates, in)
}

// InPredicates returns the identified IN-subquery predicates of a statement.
func (a *Analysis) InPredicates(node ast.SQLNode) []*ast.ComparisonExpr {
	return a.stmt(node).inPredicates
}

// AddScalarSubquery records an identified scalar subquery occurrence.
func (a *Analysis) AddScalarSubquery(node ast.SQLNode, subquery *ast.Subquery) {
	s := a.stmt(node)
	s.scalarSubqueries = append(s.scalarSubqueries, subquery)
}

// ScalarSubqueries returns the identified scalar subquery occurrences of a
// statement.
func (a *Analysis) ScalarSubqueries(node ast.SQLNode) []*ast.Subquery {
	return a.stmt(node).scalarSubqueries
}

// SetDistinct records that the statement selects DISTINCT.
func (a *Analysis) SetDistinct(node ast.SQLNode, distinct bool) {
	a.stmt(node).distinct = distinct
}

// IsDistinct reports whether the statement selects DISTINCT.
func (a *Analysis) IsDistinct(node ast.SQLNode) bool {
	return a.stmt(node).distinct
}

// SetLimit records the raw LIMIT token of a statement; "all" denotes
// LIMIT ALL.
func (a *Analysis) SetLimit(node ast.SQLNode, limit string) {
	s := a.stmt(node)
	s.limit = limit
	s.hasLimit = true
}

// Limit returns the raw LIMIT token of a statement, if present.
func (a *Analysis) Limit(node ast.SQLNode) (string, bool) {
	s := a.stmt(node)
	return s.limit, s.hasLimit
}

// SetTable records the catalog handle, descriptor and column handles of the
// statement's target table (DELETE statements).
func (a *Analysis) SetTable(node ast.SQLNode, handle sql.TableHandle, descriptor *RelationType, columns []sql.ColumnHandle) {
	s := a.stmt(node)
	s.tableHandle = handle
	s.tableDescriptor = descriptor
	s.tableColumns = columns
}

// TableHandle returns the catalog handle of the statement's target table.
func (a *Analysis) TableHandle(node ast.SQLNode) sql.TableHandle {
	return a.stmt(node).tableHandle
}

// TableDescriptor returns the descriptor of the statement's target table.
func (a *Analysis) TableDescriptor(node ast.SQLNode) *RelationType {
	return a.stmt(node).tableDescriptor
}

// TableColumn returns the column handle backing the given field of the
// statement's target table.
func (a *Analysis) TableColumn(node ast.SQLNode, field int) sql.ColumnHandle {
	return a.stmt(node).tableColumns[field]
}

// SetOutputDescriptor records the declared output descriptor of a statement.
func (a *Analysis) SetOutputDescriptor(node ast.SQLNode, descriptor *RelationType) {
	a.stmt(node).outputDescriptors = descriptor
}

// OutputDescriptor returns the declared output descriptor of a statement.
func (a *Analysis) OutputDescriptor(node ast.SQLNode) *RelationType {
	return a.stmt(node).outputDescriptors
}
