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
	"sort"

	"github.com/mitchellh/hashstructure"

	ast "github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/cascadedb/cascade/sql"
	"github.com/cascadedb/cascade/sql/analysis"
	"github.com/cascadedb/cascade/sql/expression"
	"github.com/cascadedb/cascade/sql/plan"
)

// aggregate plans GROUP BY and aggregate functions. The shape is a
// pre-projection computing grouping columns and aggregate arguments, an
// optional GroupId node when the query has several grouping sets, an optional
// MarkDistinct per distinct argument set, the Aggregation itself, and an
// optional post-projection reapplying implicit coercions on aggregate
// results.
func (p *QueryPlanner) aggregate(ctx *sql.Context, builder *PlanBuilder, sel *ast.Select) *PlanBuilder {
	groupingSets := p.analysis.GroupingSets(sel)
	aggregates := p.analysis.Aggregates(sel)
	if len(aggregates) == 0 && len(groupingSets) == 0 {
		return builder
	}

	groupingItems := distinctItems(groupingSets)
	argumentItems := aggregateArguments(aggregates)
	inputs := append(append([]analysis.FieldOrExpression{}, groupingItems...), argumentItems...)

	builder = p.handleSubqueries(ctx, builder, sel, inputs)
	if len(inputs) > 0 {
		builder = p.project(builder, inputs)
	}

	translations := p.copyTranslations(builder)

	// Rewrite the aggregate calls over the pre-projected inputs. A call whose
	// result carries an implicit coercion rewrites to a cast around the call;
	// the cast is stripped here and reapplied by a projection above the
	// aggregation, keeping the aggregation's own output uncoerced.
	assignments := make([]plan.AggregationAssignment, 0, len(aggregates))
	needCoercion := false
	for _, aggregate := range aggregates {
		rewritten, err := builder.Translations().Rewrite(aggregate)
		if err != nil {
			p.fail(err)
		}
		if c, ok := rewritten.(*expression.Cast); ok {
			rewritten = c.Child
			needCoercion = true
		}
		call, ok := rewritten.(*expression.Function)
		if !ok {
			p.fail(sql.ErrBrokenAnalysis.New(ast.String(aggregate)))
		}
		sig, ok := p.analysis.FunctionSignature(aggregate)
		if !ok {
			p.fail(sql.ErrBrokenAnalysis.New(ast.String(aggregate)))
		}

		symbol := p.symbols.NewSymbol(aggregate.Name.Lowered(), call.Type(), "")
		assignments = append(assignments, plan.AggregationAssignment{
			Symbol:    symbol,
			Call:      call,
			Signature: sig,
		})
		translations.Put(aggregate, symbol)
	}

	// Rewrite the grouping columns to the symbols the pre-projection bound
	// them to. Columns shared between grouping sets share a symbol.
	var groupingKeys []sql.Symbol
	symbolSets := make([][]sql.Symbol, len(groupingSets))
	keySymbols := make(map[string]sql.Symbol)
	for i, set := range groupingSets {
		for _, column := range set {
			symbol, ok := keySymbols[column.Key()]
			if !ok {
				translated, err := builder.Translations().TranslateItem(column)
				if err != nil {
					p.fail(err)
				}
				symbol = translated
				keySymbols[column.Key()] = symbol
				groupingKeys = append(groupingKeys, symbol)
				translations.PutItem(column, symbol)
			}
			symbolSets[i] = append(symbolSets[i], symbol)
		}
	}

	root := builder.Root()
	if len(groupingSets) > 1 {
		groupIdSym := p.symbols.NewSymbol("groupid", sql.BigInt, "")
		root = plan.NewGroupId(p.ids.NextID(), root.OutputSymbols(), symbolSets, groupIdSym, root)
		groupingKeys = append(groupingKeys, groupIdSym)
	}

	root = p.markDistinctAggregates(builder, aggregates, assignments, groupingKeys, root)

	aggregation := plan.NewAggregation(
		p.ids.NextID(),
		groupingKeys,
		assignments,
		builder.SampleWeight(),
		p.confidence,
		root,
	)
	// The aggregation consumes the sample weight; it does not flow further.
	builder = builder.WithNewTranslations(translations, aggregation, sql.Symbol{})

	if needCoercion {
		builder = p.explicitCoercionFields(builder, groupingItems, aggregates)
	}
	return builder
}

// markDistinctAggregates adds one MarkDistinct node per distinct argument
// set and assigns each DISTINCT aggregate its marker. Aggregates over the
// same arguments share a marker and a node.
func (p *QueryPlanner) markDistinctAggregates(
	builder *PlanBuilder,
	aggregates []*ast.FuncExpr,
	assignments []plan.AggregationAssignment,
	groupingKeys []sql.Symbol,
	root sql.Node,
) sql.Node {
	markers := make(map[uint64]sql.Symbol)
	for i, aggregate := range aggregates {
		if !aggregate.Distinct {
			continue
		}

		arguments := aggregateArguments([]*ast.FuncExpr{aggregate})
		key := argumentSetKey(arguments)

		marker, ok := markers[key]
		if !ok {
			marker = p.symbols.NewSymbol(markerHint(arguments), sql.Boolean, "distinct")
			markers[key] = marker

			distinctSymbols := append([]sql.Symbol{}, groupingKeys...)
			for _, argument := range arguments {
				symbol, err := builder.Translations().TranslateItem(argument)
				if err != nil {
					p.fail(err)
				}
				distinctSymbols = append(distinctSymbols, symbol)
			}
			root = plan.NewMarkDistinct(p.ids.NextID(), marker, distinctSymbols, root)
		}
		assignments[i].Mask = marker
	}
	return root
}

// window plans window functions as a chain of Window nodes, one function per
// node, each preserving all of its input's columns. Arguments, partitioning
// and ordering keys and value frame bounds are pre-projected before each
// node.
func (p *QueryPlanner) window(ctx *sql.Context, builder *PlanBuilder, sel *ast.Select) *PlanBuilder {
	for _, fn := range p.analysis.WindowFunctions(sel) {
		def := (*ast.WindowDef)(fn.Over)
		if def == nil {
			p.fail(sql.ErrBrokenAnalysis.New(ast.String(fn)))
		}

		frameStart, frameEnd, frame := extractFrame(def.Frame)

		inputs := windowInputs(fn, def, frameStart, frameEnd)
		builder = p.appendProjections(builder, inputs)

		partitionBy := make([]sql.Symbol, 0, len(def.PartitionBy))
		for _, partition := range def.PartitionBy {
			symbol, err := builder.Translations().Translate(partition)
			if err != nil {
				p.fail(err)
			}
			partitionBy = append(partitionBy, symbol)
		}

		var orderBy []plan.WindowOrdering
		ordered := make(map[string]struct{})
		for _, item := range def.OrderBy {
			symbol, err := builder.Translations().Translate(item.Expr)
			if err != nil {
				p.fail(err)
			}
			if _, dup := ordered[symbol.Name()]; dup {
				continue
			}
			ordered[symbol.Name()] = struct{}{}
			order := plan.Ascending
			if item.Direction == ast.DescScr {
				order = plan.Descending
			}
			orderBy = append(orderBy, plan.WindowOrdering{Symbol: symbol, Order: order})
		}

		if frameStart != nil {
			symbol, err := builder.Translations().Translate(frameStart)
			if err != nil {
				p.fail(err)
			}
			frame.StartValue = symbol
		}
		if frameEnd != nil {
			symbol, err := builder.Translations().Translate(frameEnd)
			if err != nil {
				p.fail(err)
			}
			frame.EndValue = symbol
		}

		translations := p.copyTranslations(builder)

		rewritten, err := builder.Translations().Rewrite(fn)
		if err != nil {
			p.fail(err)
		}
		needCoercion := false
		if c, ok := rewritten.(*expression.Cast); ok {
			rewritten = c.Child
			needCoercion = true
		}
		call, ok := rewritten.(*expression.Function)
		if !ok {
			p.fail(sql.ErrBrokenAnalysis.New(ast.String(fn)))
		}
		sig, ok := p.analysis.FunctionSignature(fn)
		if !ok {
			p.fail(sql.ErrBrokenAnalysis.New(ast.String(fn)))
		}

		symbol := p.symbols.NewSymbol(fn.Name.Lowered(), call.Type(), "")
		translations.Put(fn, symbol)

		sourceSymbols := builder.Root().OutputSymbols()
		window := plan.NewWindow(
			p.ids.NextID(),
			partitionBy,
			orderBy,
			frame,
			[]plan.WindowAssignment{{Symbol: symbol, Call: call, Signature: sig}},
			builder.Root(),
		)
		builder = builder.WithNewTranslations(translations, window, builder.SampleWeight())

		if needCoercion {
			builder = p.explicitCoercionSymbols(builder, sourceSymbols, fn)
		}
	}
	return builder
}

// extractFrame reads a frame clause; a missing clause yields
// RANGE UNBOUNDED PRECEDING .. CURRENT ROW. Value-offset bound expressions
// come back for pre-projection; their symbols are filled in afterwards.
func extractFrame(frame *ast.Frame) (frameStart, frameEnd ast.Expr, out plan.WindowFrame) {
	out = plan.DefaultWindowFrame()
	if frame == nil {
		return nil, nil, out
	}

	if frame.Unit == ast.RowsUnit {
		out.Unit = plan.RowsFrame
	} else {
		out.Unit = plan.RangeFrame
	}

	if frame.Extent.Start != nil {
		out.StartType, frameStart = convertFrameBound(frame.Extent.Start)
	}
	if frame.Extent.End != nil {
		out.EndType, frameEnd = convertFrameBound(frame.Extent.End)
	} else {
		out.EndType = plan.CurrentRow
	}
	return frameStart, frameEnd, out
}

func convertFrameBound(bound *ast.FrameBound) (plan.FrameBoundType, ast.Expr) {
	switch bound.Type {
	case ast.UnboundedPreceding:
		return plan.UnboundedPreceding, nil
	case ast.ExprPreceding:
		return plan.Preceding, bound.Expr
	case ast.CurrentRow:
		return plan.CurrentRow, nil
	case ast.ExprFollowing:
		return plan.Following, bound.Expr
	default:
		return plan.UnboundedFollowing, nil
	}
}

func windowInputs(fn *ast.FuncExpr, def *ast.WindowDef, frameStart, frameEnd ast.Expr) []ast.Expr {
	var inputs []ast.Expr
	for _, se := range fn.Exprs {
		if aliased, ok := se.(*ast.AliasedExpr); ok {
			inputs = append(inputs, aliased.Expr)
		}
	}
	inputs = append(inputs, def.PartitionBy...)
	for _, item := range def.OrderBy {
		inputs = append(inputs, item.Expr)
	}
	if frameStart != nil {
		inputs = append(inputs, frameStart)
	}
	if frameEnd != nil {
		inputs = append(inputs, frameEnd)
	}
	return inputs
}

// appendProjections adds a projection that keeps every current output column
// and additionally computes the given expressions. Translations carry over;
// the new expressions are recorded against their symbols.
func (p *QueryPlanner) appendProjections(builder *PlanBuilder, exprs []ast.Expr) *PlanBuilder {
	translations := p.copyTranslations(builder)

	var assignments plan.Assignments
	for _, symbol := range builder.Root().OutputSymbols() {
		assignments = append(assignments, plan.Assignment{
			Symbol: symbol,
			Expr:   expression.NewSymbolReference(symbol),
		})
	}

	for _, expr := range exprs {
		if translations.CanTranslate(expr) {
			continue
		}
		rewritten, err := builder.Translations().Rewrite(expr)
		if err != nil {
			p.fail(err)
		}
		symbol := p.symbols.NewSymbol(expressionHint(expr), rewritten.Type(), "")
		assignments = append(assignments, plan.Assignment{Symbol: symbol, Expr: rewritten})
		translations.Put(expr, symbol)
	}

	project := plan.NewProject(p.ids.NextID(), assignments, builder.Root())
	return builder.WithNewTranslations(translations, project, builder.SampleWeight())
}

// explicitCoercionFields projects the grouping columns through unchanged and
// reapplies implicit result coercions of the uncoerced calls as explicit
// casts.
func (p *QueryPlanner) explicitCoercionFields(builder *PlanBuilder, alreadyCoerced []analysis.FieldOrExpression, uncoerced []*ast.FuncExpr) *PlanBuilder {
	translations := NewTranslationMap(builder.Translations().Relation(), p.analysis)
	translations.SetFieldMappings(builder.Translations().FieldSymbols()...)

	var assignments plan.Assignments
	for _, item := range alreadyCoerced {
		symbol, err := builder.Translations().TranslateItem(item)
		if err != nil {
			p.fail(err)
		}
		assignments = append(assignments, plan.Assignment{
			Symbol: symbol,
			Expr:   expression.NewSymbolReference(symbol),
		})
		translations.PutItem(item, symbol)
	}

	for _, call := range uncoerced {
		assignments = p.coerce(builder, translations, assignments, call)
	}

	project := plan.NewProject(p.ids.NextID(), assignments, builder.Root())
	return builder.WithNewTranslations(translations, project, builder.SampleWeight())
}

// explicitCoercionSymbols projects the given symbols through unchanged and
// reapplies the implicit result coercion of the uncoerced call.
func (p *QueryPlanner) explicitCoercionSymbols(builder *PlanBuilder, alreadyCoerced []sql.Symbol, uncoerced *ast.FuncExpr) *PlanBuilder {
	translations := p.copyTranslations(builder)

	var assignments plan.Assignments
	for _, symbol := range alreadyCoerced {
		assignments = append(assignments, plan.Assignment{
			Symbol: symbol,
			Expr:   expression.NewSymbolReference(symbol),
		})
	}
	assignments = p.coerce(builder, translations, assignments, uncoerced)

	project := plan.NewProject(p.ids.NextID(), assignments, builder.Root())
	return builder.WithNewTranslations(translations, project, builder.SampleWeight())
}

// coerce appends either a cast of the call's symbol to its recorded coercion
// target, under a fresh symbol, or an identity projection when the call needs
// no coercion.
func (p *QueryPlanner) coerce(builder *PlanBuilder, translations *TranslationMap, assignments plan.Assignments, call *ast.FuncExpr) plan.Assignments {
	input, err := builder.Translations().Translate(call)
	if err != nil {
		p.fail(err)
	}

	if target, ok := p.analysis.Coercion(call); ok {
		symbol := p.symbols.NewSymbol(call.Name.Lowered(), target, "")
		assignments = append(assignments, plan.Assignment{
			Symbol: symbol,
			Expr:   expression.NewCast(expression.NewSymbolReference(input), target),
		})
		translations.Put(call, symbol)
		return assignments
	}

	assignments = append(assignments, plan.Assignment{
		Symbol: input,
		Expr:   expression.NewSymbolReference(input),
	})
	translations.Put(call, input)
	return assignments
}

// copyTranslations clones the builder's translation map, field mappings and
// subquery bindings included.
func (p *QueryPlanner) copyTranslations(builder *PlanBuilder) *TranslationMap {
	translations := NewTranslationMap(builder.Translations().Relation(), p.analysis)
	translations.SetFieldMappings(builder.Translations().FieldSymbols()...)
	translations.CopyMappingsFrom(builder.Translations())
	return translations
}

// distinctItems flattens grouping sets into the distinct grouping columns, in
// first-appearance order.
func distinctItems(sets [][]analysis.FieldOrExpression) []analysis.FieldOrExpression {
	var items []analysis.FieldOrExpression
	seen := make(map[string]struct{})
	for _, set := range sets {
		for _, item := range set {
			if _, ok := seen[item.Key()]; ok {
				continue
			}
			seen[item.Key()] = struct{}{}
			items = append(items, item)
		}
	}
	return items
}

// aggregateArguments collects the distinct value arguments of the given
// calls. Zero-argument aggregates such as count(*) contribute nothing.
func aggregateArguments(aggregates []*ast.FuncExpr) []analysis.FieldOrExpression {
	var items []analysis.FieldOrExpression
	seen := make(map[string]struct{})
	for _, aggregate := range aggregates {
		for _, se := range aggregate.Exprs {
			aliased, ok := se.(*ast.AliasedExpr)
			if !ok {
				continue
			}
			item := analysis.NewExpression(aliased.Expr)
			if _, dup := seen[item.Key()]; dup {
				continue
			}
			seen[item.Key()] = struct{}{}
			items = append(items, item)
		}
	}
	return items
}

// argumentSetKey hashes an argument set order-independently, so sum(DISTINCT
// x) and count(DISTINCT x) share one distinct marker.
func argumentSetKey(arguments []analysis.FieldOrExpression) uint64 {
	keys := make([]string, len(arguments))
	for i, argument := range arguments {
		keys[i] = argument.Key()
	}
	sort.Strings(keys)
	hash, err := hashstructure.Hash(keys, nil)
	if err != nil {
		return 0
	}
	return hash
}

func markerHint(arguments []analysis.FieldOrExpression) string {
	if len(arguments) == 0 {
		return "marker"
	}
	if !arguments[0].IsFieldReference() {
		return expressionHint(arguments[0].Expression())
	}
	return "marker"
}
