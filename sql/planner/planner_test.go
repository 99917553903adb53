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
	"github.com/cascadedb/cascade/sql/plan"
)

// The test catalog: t(a, b, x bigint, c varchar) and t2(a bigint).
var testTables = map[string][]analysis.Field{
	"t": {
		{Name: "a", Type: sql.BigInt},
		{Name: "b", Type: sql.BigInt},
		{Name: "x", Type: sql.BigInt},
		{Name: "c", Type: sql.Varchar},
	},
	"t2": {
		{Name: "a", Type: sql.BigInt},
	},
}

type testTable struct {
	name string
}

func (t testTable) Name() string { return t.name }

type testColumn struct {
	name string
}

func (c testColumn) Name() string { return c.name }

type testCatalog struct{}

func (testCatalog) RowIDHandle(table sql.TableHandle) (sql.ColumnHandle, sql.Type, error) {
	return testColumn{name: "$rowid"}, sql.BigInt, nil
}

// testRelations plans FROM clauses and nested queries as plain scans, which
// is all the clause planners under test need from a relation planner.
type testRelations struct {
	symbols *SymbolAllocator
	ids     *PlanNodeIDAllocator
}

func (r *testRelations) PlanFrom(ctx *sql.Context, from ast.TableExprs) (RelationPlan, error) {
	return r.scanTable(tableName(from))
}

func (r *testRelations) PlanQuery(ctx *sql.Context, query ast.SelectStatement) (RelationPlan, error) {
	sel, ok := query.(*ast.Select)
	if !ok {
		return RelationPlan{}, sql.ErrUnsupportedExpression.New(ast.String(query))
	}

	relation, err := r.scanTable(tableName(sel.From))
	if err != nil {
		return RelationPlan{}, err
	}

	// Narrow to the single selected column.
	aliased, ok := sel.SelectExprs[0].(*ast.AliasedExpr)
	if !ok {
		return RelationPlan{}, sql.ErrUnsupportedExpression.New(ast.String(sel))
	}
	col, ok := aliased.Expr.(*ast.ColName)
	if !ok {
		return RelationPlan{}, sql.ErrUnsupportedExpression.New(ast.String(sel))
	}
	for i, field := range relation.Descriptor.Fields() {
		if field.Name == col.Name.Lowered() {
			return RelationPlan{
				Root:          relation.Root,
				Descriptor:    analysis.NewRelationType(field),
				OutputSymbols: []sql.Symbol{relation.OutputSymbols[i]},
			}, nil
		}
	}
	return RelationPlan{}, sql.ErrTranslationNotFound.New(col.Name.Lowered())
}

func (r *testRelations) scanTable(name string) (RelationPlan, error) {
	fields, ok := testTables[name]
	if !ok {
		return RelationPlan{}, sql.ErrPlannerInternal.New("unknown table " + name)
	}

	columns := make([]plan.ColumnAssignment, len(fields))
	symbols := make([]sql.Symbol, len(fields))
	for i, field := range fields {
		symbol := r.symbols.NewSymbol(field.Name, field.Type, "")
		columns[i] = plan.ColumnAssignment{Symbol: symbol, Column: testColumn{name: field.Name}}
		symbols[i] = symbol
	}

	scan := plan.NewTableScan(r.ids.NextID(), testTable{name: name}, columns)
	return RelationPlan{
		Root:          scan,
		Descriptor:    analysis.NewRelationType(fields...),
		OutputSymbols: symbols,
	}, nil
}

func tableName(from ast.TableExprs) string {
	aliased := from[0].(*ast.AliasedTableExpr)
	return aliased.Expr.(ast.TableName).Name.String()
}

func newTestPlanner(a *analysis.Analysis, opts ...Option) (*QueryPlanner, *sql.Context) {
	symbols := NewSymbolAllocator()
	ids := NewPlanNodeIDAllocator()
	relations := &testRelations{symbols: symbols, ids: ids}
	return NewQueryPlanner(a, symbols, ids, testCatalog{}, relations, opts...), sql.NewEmptyContext()
}

// analyzeSelect builds the fact base for a SELECT the way the semantic
// analyzer would, against the test catalog.
func analyzeSelect(t *testing.T, query string) (*analysis.Analysis, *ast.Select) {
	t.Helper()

	stmt, err := ast.Parse(query)
	require.NoError(t, err)
	sel, ok := stmt.(*ast.Select)
	require.True(t, ok, "expected a select statement")

	a := analysis.New()
	fields := outerFields(sel.From)

	resolveColumns(a, sel, fields)

	var aggregates, windows []*ast.FuncExpr
	seenCalls := make(map[string]struct{})
	walkOuterScope(sel, func(node ast.SQLNode) bool {
		fn, ok := node.(*ast.FuncExpr)
		if !ok {
			return true
		}
		a.RecordFunction(fn, functionSignature(fn, fields))
		if _, dup := seenCalls[analysis.ExprKey(fn)]; dup {
			return true
		}
		seenCalls[analysis.ExprKey(fn)] = struct{}{}
		if fn.Over != nil {
			windows = append(windows, fn)
			return true
		}
		if isAggregateName(fn.Name.Lowered()) {
			aggregates = append(aggregates, fn)
		}
		return true
	})
	a.SetAggregates(sel, aggregates)
	a.SetWindowFunctions(sel, windows)

	walkOuterScope(sel, func(node ast.SQLNode) bool {
		if cmp, ok := node.(*ast.ComparisonExpr); ok && (cmp.Operator == ast.InStr || cmp.Operator == ast.NotInStr) {
			if _, isSubquery := cmp.Right.(*ast.Subquery); isSubquery {
				a.AddInPredicate(sel, cmp)
				return false
			}
		}
		if subquery, ok := node.(*ast.Subquery); ok {
			a.AddScalarSubquery(sel, subquery)
			return false
		}
		return true
	})

	if sel.Where != nil {
		a.SetWhere(sel, sel.Where.Expr)
	}
	if sel.Having != nil {
		a.SetHaving(sel, sel.Having.Expr)
	}

	var groupBy []analysis.FieldOrExpression
	for _, expr := range sel.GroupBy {
		groupBy = append(groupBy, analysis.NewExpression(expr))
	}
	if len(groupBy) > 0 {
		a.SetGroupingSets(sel, [][]analysis.FieldOrExpression{groupBy})
	} else if len(aggregates) > 0 {
		// A global aggregate groups over the empty set of columns.
		a.SetGroupingSets(sel, [][]analysis.FieldOrExpression{{}})
	}

	var outputs []analysis.FieldOrExpression
	var outputFields []analysis.Field
	for _, se := range sel.SelectExprs {
		aliased, ok := se.(*ast.AliasedExpr)
		require.True(t, ok, "expected an aliased select expression")
		outputs = append(outputs, analysis.NewExpression(aliased.Expr))
		outputFields = append(outputFields, analysis.Field{
			Name: outputName(aliased),
			Type: exprType(a, aliased.Expr, fields),
		})
	}
	a.SetOutputExpressions(sel, outputs)
	a.SetOutputDescriptor(sel, analysis.NewRelationType(outputFields...))

	var orderBy []analysis.FieldOrExpression
	for _, item := range sel.OrderBy {
		orderBy = append(orderBy, analysis.NewExpression(item.Expr))
	}
	a.SetOrderByExpressions(sel, orderBy)

	if sel.Limit != nil && sel.Limit.Rowcount != nil {
		if v, ok := sel.Limit.Rowcount.(*ast.SQLVal); ok {
			a.SetLimit(sel, string(v.Val))
		}
	}
	if sel.Distinct != "" {
		a.SetDistinct(sel, true)
	}

	return a, sel
}

// analyzeDelete builds the fact base for a DELETE against the test catalog.
func analyzeDelete(t *testing.T, query string) (*analysis.Analysis, *ast.Delete) {
	t.Helper()

	stmt, err := ast.Parse(query)
	require.NoError(t, err)
	del, ok := stmt.(*ast.Delete)
	require.True(t, ok, "expected a delete statement")

	a := analysis.New()
	name := tableName(del.TableExprs)
	fields := testTables[name]
	require.NotNil(t, fields)

	columns := make([]sql.ColumnHandle, len(fields))
	for i, field := range fields {
		columns[i] = testColumn{name: field.Name}
	}
	a.SetTable(del, testTable{name: name}, analysis.NewRelationType(fields...), columns)

	resolveColumns(a, del, fields)

	if del.Where != nil {
		a.SetWhere(del, del.Where.Expr)
	}
	a.SetOutputDescriptor(del, analysis.NewRelationType(
		analysis.Field{Name: "partialrows", Type: sql.BigInt},
		analysis.Field{Name: "fragment", Type: sql.Varbinary},
	))
	return a, del
}

func resolveColumns(a *analysis.Analysis, node ast.SQLNode, fields []analysis.Field) {
	_ = ast.Walk(func(n ast.SQLNode) (bool, error) {
		col, ok := n.(*ast.ColName)
		if !ok {
			return true, nil
		}
		for i, field := range fields {
			if field.Name == col.Name.Lowered() {
				a.RecordFieldReference(col, i)
				a.RecordType(col, field.Type)
				break
			}
		}
		return true, nil
	}, node)
}

// walkOuterScope visits the statement's own expressions without descending
// into subqueries, which belong to their own scope.
func walkOuterScope(node ast.SQLNode, f func(ast.SQLNode) bool) {
	_ = ast.Walk(func(n ast.SQLNode) (bool, error) {
		if !f(n) {
			return false, nil
		}
		if _, ok := n.(*ast.Subquery); ok {
			return false, nil
		}
		return true, nil
	}, node)
}

func outerFields(from ast.TableExprs) []analysis.Field {
	if isImplicitFrom(from) {
		return nil
	}
	return testTables[tableName(from)]
}

func isAggregateName(name string) bool {
	switch name {
	case "count", "sum", "avg", "min", "max":
		return true
	}
	return false
}

func functionSignature(fn *ast.FuncExpr, fields []analysis.Field) sql.Signature {
	name := fn.Name.Lowered()

	var argTypes []sql.Type
	for _, se := range fn.Exprs {
		if aliased, ok := se.(*ast.AliasedExpr); ok {
			argTypes = append(argTypes, exprType(nil, aliased.Expr, fields))
		}
	}

	var ret sql.Type = sql.BigInt
	switch name {
	case "avg":
		ret = sql.Double
	case "min", "max":
		if len(argTypes) > 0 {
			ret = argTypes[0]
		}
	}
	return sql.Signature{Name: name, ReturnType: ret, ArgumentTypes: argTypes}
}

func exprType(a *analysis.Analysis, expr ast.Expr, fields []analysis.Field) sql.Type {
	switch e := expr.(type) {
	case *ast.ColName:
		for _, field := range fields {
			if field.Name == e.Name.Lowered() {
				return field.Type
			}
		}
	case *ast.FuncExpr:
		if a != nil {
			if sig, ok := a.FunctionSignature(e); ok {
				return sig.ReturnType
			}
		}
		return functionSignature(e, fields).ReturnType
	case *ast.SQLVal:
		switch e.Type {
		case ast.FloatVal:
			return sql.Double
		case ast.StrVal:
			return sql.Varchar
		}
	}
	return sql.BigInt
}

func outputName(aliased *ast.AliasedExpr) string {
	if !aliased.As.IsEmpty() {
		return aliased.As.Lowered()
	}
	if col, ok := aliased.Expr.(*ast.ColName); ok {
		return col.Name.Lowered()
	}
	return ""
}

// findNodes collects every node in the tree matching the predicate, in
// depth-first order.
func findNodes(root sql.Node, match func(sql.Node) bool) []sql.Node {
	var found []sql.Node
	plan.Inspect(root, func(node sql.Node) bool {
		if node != nil && match(node) {
			found = append(found, node)
		}
		return true
	})
	return found
}
