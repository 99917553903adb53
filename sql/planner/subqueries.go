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
	ast "github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/cascadedb/cascade/sql"
	"github.com/cascadedb/cascade/sql/analysis"
	"github.com/cascadedb/cascade/sql/plan"
)

// handleSubqueries decorrelates every subquery occurring inside the given
// items, rewriting each into a plan attached to the current builder and a
// symbol binding the occurrence's value. Each occurrence is planned once,
// even if the clause mentions it in several items; textually identical
// subqueries at different positions each get their own plan.
func (p *QueryPlanner) handleSubqueries(ctx *sql.Context, builder *PlanBuilder, sel ast.SQLNode, items []analysis.FieldOrExpression) *PlanBuilder {
	for _, item := range items {
		if item.IsFieldReference() {
			continue
		}
		builder = p.handleSubqueriesForExpression(ctx, builder, sel, item.Expression())
	}
	return builder
}

func (p *QueryPlanner) handleSubqueriesForExpression(ctx *sql.Context, builder *PlanBuilder, sel ast.SQLNode, expr ast.Expr) *PlanBuilder {
	for _, in := range p.analysis.InPredicates(sel) {
		if builder.Translations().HasSubquery(in) || !nodeContains(expr, in) {
			continue
		}
		builder = p.appendSemiJoin(ctx, builder, in)
	}
	for _, subquery := range p.analysis.ScalarSubqueries(sel) {
		if builder.Translations().HasSubquery(subquery) || !nodeContains(expr, subquery) {
			continue
		}
		builder = p.appendScalarSubqueryJoin(ctx, builder, subquery)
	}
	return builder
}

// appendSemiJoin plans an IN-over-subquery predicate as a semi join: the
// probe value is pre-projected onto the current plan, the subquery becomes
// the filtering source, and the predicate occurrence is bound to the semi
// join's boolean output symbol.
func (p *QueryPlanner) appendSemiJoin(ctx *sql.Context, builder *PlanBuilder, in *ast.ComparisonExpr) *PlanBuilder {
	builder = p.appendProjections(builder, []ast.Expr{in.Left})
	sourceJoinSymbol, err := builder.Translations().Translate(in.Left)
	if err != nil {
		p.fail(err)
	}

	subquery, ok := in.Right.(*ast.Subquery)
	if !ok {
		p.fail(sql.ErrBrokenAnalysis.New(ast.String(in)))
	}
	filteringSource, err := p.relations.PlanQuery(ctx, subquery.Select)
	if err != nil {
		p.fail(err)
	}
	if len(filteringSource.OutputSymbols) != 1 {
		p.fail(sql.ErrBrokenAnalysis.New(ast.String(subquery)))
	}
	filteringSourceJoinSymbol := filteringSource.OutputSymbols[0]

	outputSymbol := p.symbols.NewSymbol("semijoinresult", sql.Boolean, "")
	builder.Translations().PutSubquery(in, outputSymbol)

	semiJoin := plan.NewSemiJoin(
		p.ids.NextID(),
		sourceJoinSymbol,
		filteringSourceJoinSymbol,
		outputSymbol,
		builder.Root(),
		filteringSource.Root,
	)
	return builder.WithRoot(semiJoin)
}

// appendScalarSubqueryJoin plans a scalar subquery occurrence: the subquery
// plan is wrapped in EnforceSingleRow and cross joined against the current
// plan, and the occurrence is bound to the subquery's output symbol. When the
// current plan has no output columns at all, the subquery simply becomes the
// plan.
func (p *QueryPlanner) appendScalarSubqueryJoin(ctx *sql.Context, builder *PlanBuilder, subquery *ast.Subquery) *PlanBuilder {
	relation, err := p.relations.PlanQuery(ctx, subquery.Select)
	if err != nil {
		p.fail(err)
	}
	if len(relation.OutputSymbols) != 1 {
		p.fail(sql.ErrBrokenAnalysis.New(ast.String(subquery)))
	}

	enforced := plan.NewEnforceSingleRow(p.ids.NextID(), relation.Root)
	builder.Translations().PutSubquery(subquery, relation.OutputSymbols[0])

	if len(builder.Root().OutputSymbols()) == 0 {
		return builder.WithRoot(enforced)
	}

	join := plan.NewJoin(p.ids.NextID(), plan.FullJoin, nil, builder.Root(), enforced)
	return builder.WithRoot(join)
}

// nodeContains reports whether target occurs, by node identity, anywhere
// inside root.
func nodeContains(root ast.Expr, target ast.SQLNode) bool {
	found := false
	_ = ast.Walk(func(node ast.SQLNode) (bool, error) {
		if node == target {
			found = true
			return false, nil
		}
		return true, nil
	}, root)
	return found
}
