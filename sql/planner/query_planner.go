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
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	ast "github.com/dolthub/vitess/go/vt/sqlparser"

	"github.com/cascadedb/cascade/sql"
	"github.com/cascadedb/cascade/sql/analysis"
	"github.com/cascadedb/cascade/sql/expression"
	"github.com/cascadedb/cascade/sql/plan"
)

// QueryPlanner compiles one analyzed statement into a logical plan. Clause
// planners run in relational evaluation order; each consumes the builder the
// previous one produced. A planner instance serves one statement and is not
// safe for concurrent use.
type QueryPlanner struct {
	analysis   *analysis.Analysis
	symbols    *SymbolAllocator
	ids        *PlanNodeIDAllocator
	metadata   Metadata
	relations  RelationPlanner
	confidence float64
	log        *logrus.Entry
}

// Option configures a QueryPlanner.
type Option func(*QueryPlanner)

// WithConfidence sets the confidence carried by aggregations, for
// approximate queries. The default is 1.0.
func WithConfidence(confidence float64) Option {
	return func(p *QueryPlanner) { p.confidence = confidence }
}

// NewQueryPlanner creates a planner over one statement's analysis.
func NewQueryPlanner(
	a *analysis.Analysis,
	symbols *SymbolAllocator,
	ids *PlanNodeIDAllocator,
	metadata Metadata,
	relations RelationPlanner,
	opts ...Option,
) *QueryPlanner {
	p := &QueryPlanner{
		analysis:   a,
		symbols:    symbols,
		ids:        ids,
		metadata:   metadata,
		relations:  relations,
		confidence: 1.0,
		log:        logrus.StandardLogger().WithField("component", "planner"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type planError struct {
	err error
}

func (p *QueryPlanner) fail(err error) {
	panic(planError{err: err})
}

func (p *QueryPlanner) recoverPlanError(err *error) {
	if r := recover(); r != nil {
		pe, ok := r.(planError)
		if !ok {
			panic(r)
		}
		*err = pe.err
	}
}

// PlanSelect compiles a SELECT statement.
func (p *QueryPlanner) PlanSelect(ctx *sql.Context, sel *ast.Select) (result RelationPlan, err error) {
	span, ctx := ctx.Span("plan.select")
	defer span.Finish()
	defer p.recoverPlanError(&err)

	builder := p.planFrom(ctx, sel)
	builder = p.filter(ctx, builder, sel, p.analysis.Where(sel))
	builder = p.aggregate(ctx, builder, sel)
	builder = p.filter(ctx, builder, sel, p.analysis.Having(sel))
	builder = p.window(ctx, builder, sel)

	orderBy := p.analysis.OrderByExpressions(sel)
	outputs := p.analysis.OutputExpressions(sel)

	builder = p.handleSubqueries(ctx, builder, sel, append(append([]analysis.FieldOrExpression{}, orderBy...), outputs...))
	builder = p.project(builder, append(append([]analysis.FieldOrExpression{}, orderBy...), outputs...))
	builder = p.distinct(builder, sel, outputs, orderBy)
	builder = p.sort(builder, sel)
	builder = p.project(builder, outputs)
	builder = p.limit(builder, sel)

	outputSymbols := make([]sql.Symbol, len(outputs))
	for i, output := range outputs {
		symbol, terr := builder.Translations().TranslateItem(output)
		if terr != nil {
			p.fail(terr)
		}
		outputSymbols[i] = symbol
	}

	p.log.WithField(sql.QueryIDLogField, ctx.ID()).Debug("planned select")

	return RelationPlan{
		Root:          builder.Root(),
		Descriptor:    p.analysis.OutputDescriptor(sel),
		OutputSymbols: outputSymbols,
		SampleWeight:  builder.SampleWeight(),
	}, nil
}

// planFrom plans the FROM clause. A query with no FROM clause reads one
// zero-column row from a Values node.
func (p *QueryPlanner) planFrom(ctx *sql.Context, sel *ast.Select) *PlanBuilder {
	var relation RelationPlan
	if isImplicitFrom(sel.From) {
		relation = RelationPlan{
			Root:       plan.NewValues(p.ids.NextID(), nil, [][]sql.Expression{{}}),
			Descriptor: analysis.NewRelationType(),
		}
	} else {
		planned, err := p.relations.PlanFrom(ctx, sel.From)
		if err != nil {
			p.fail(err)
		}
		relation = planned
	}

	translations := NewTranslationMap(relation, p.analysis)
	return NewPlanBuilder(translations, relation.Root, relation.SampleWeight)
}

func isImplicitFrom(from ast.TableExprs) bool {
	if len(from) == 0 {
		return true
	}
	if len(from) != 1 {
		return false
	}
	aliased, ok := from[0].(*ast.AliasedTableExpr)
	if !ok {
		return false
	}
	table, ok := aliased.Expr.(ast.TableName)
	return ok && table.Name.String() == "dual"
}

// filter wraps the plan in a Filter when the clause has a predicate. Used for
// WHERE, where the filter sits below aggregation, and for HAVING, where it
// sits above it.
func (p *QueryPlanner) filter(ctx *sql.Context, builder *PlanBuilder, sel ast.SQLNode, predicate ast.Expr) *PlanBuilder {
	if predicate == nil {
		return builder
	}

	builder = p.handleSubqueriesForExpression(ctx, builder, sel, predicate)
	rewritten, err := builder.Translations().Rewrite(predicate)
	if err != nil {
		p.fail(err)
	}
	return builder.WithRoot(plan.NewFilter(p.ids.NextID(), rewritten, builder.Root()))
}

// project computes the given items into fresh symbols and rebinds the
// translation map to them. Duplicate items collapse onto one symbol. The
// sample weight, if present, is carried through by identity.
func (p *QueryPlanner) project(builder *PlanBuilder, items []analysis.FieldOrExpression) *PlanBuilder {
	// Fields start unbound: only the projected ones are rebound below, so a
	// reference to a column the projection dropped fails with a translation
	// miss instead of naming a symbol the new node no longer outputs.
	translations := NewTranslationMap(builder.Translations().Relation(), p.analysis)
	translations.SetFieldMappings(make([]sql.Symbol, len(builder.Translations().FieldSymbols()))...)

	var assignments plan.Assignments
	seen := make(map[string]sql.Symbol)

	for _, item := range items {
		if _, done := seen[item.Key()]; done {
			continue
		}

		var symbol sql.Symbol
		var value sql.Expression
		if item.IsFieldReference() {
			input, err := builder.Translations().TranslateItem(item)
			if err != nil {
				p.fail(err)
			}
			field := builder.Translations().Relation().Descriptor.FieldByIndex(item.FieldIndex())
			symbol = p.symbols.NewSymbol(fieldHint(field), field.Type, "")
			value = expression.NewSymbolReference(input)
		} else {
			rewritten, err := builder.Translations().Rewrite(item.Expression())
			if err != nil {
				p.fail(err)
			}
			symbol = p.symbols.NewSymbol(expressionHint(item.Expression()), rewritten.Type(), "")
			value = rewritten
		}

		assignments = append(assignments, plan.Assignment{Symbol: symbol, Expr: value})
		translations.PutItem(item, symbol)
		seen[item.Key()] = symbol
	}

	if builder.HasSampleWeight() {
		weight := builder.SampleWeight()
		assignments = append(assignments, plan.Assignment{
			Symbol: weight,
			Expr:   expression.NewSymbolReference(weight),
		})
	}

	project := plan.NewProject(p.ids.NextID(), assignments, builder.Root())
	return builder.WithNewTranslations(translations, project, builder.SampleWeight())
}

// distinct plans SELECT DISTINCT as a grouping aggregation with no aggregate
// functions: the grouping keys are every column of the plan so far, and the
// grouping engine enforces row distinctness.
func (p *QueryPlanner) distinct(builder *PlanBuilder, sel *ast.Select, outputs, orderBy []analysis.FieldOrExpression) *PlanBuilder {
	if !p.analysis.IsDistinct(sel) {
		return builder
	}

	outputKeys := make(map[string]struct{}, len(outputs))
	for _, output := range outputs {
		outputKeys[output.Key()] = struct{}{}
	}
	for _, item := range orderBy {
		if _, ok := outputKeys[item.Key()]; !ok {
			p.fail(sql.ErrBrokenAnalysis.New("ORDER BY term " + item.String() + " missing from DISTINCT select list"))
		}
	}

	aggregation := plan.NewAggregation(
		p.ids.NextID(),
		builder.Root().OutputSymbols(),
		nil,
		sql.Symbol{},
		1.0,
		builder.Root(),
	)
	return builder.WithRoot(aggregation)
}

// sort plans ORDER BY. With a numeric limit the sort and the limit fold into
// one TopN node; otherwise a full Sort is produced and any LIMIT ALL is a
// no-op.
func (p *QueryPlanner) sort(builder *PlanBuilder, sel *ast.Select) *PlanBuilder {
	orderBy := p.analysis.OrderByExpressions(sel)
	if len(orderBy) == 0 {
		return builder
	}
	if len(orderBy) != len(sel.OrderBy) {
		p.fail(sql.ErrBrokenAnalysis.New("ORDER BY item count mismatch"))
	}

	var sortFields []plan.SortField
	ordered := make(map[string]struct{})
	for i, item := range orderBy {
		symbol, err := builder.Translations().TranslateItem(item)
		if err != nil {
			p.fail(err)
		}
		// The same column listed twice sorts by its first direction.
		if _, dup := ordered[symbol.Name()]; dup {
			continue
		}
		ordered[symbol.Name()] = struct{}{}
		sortFields = append(sortFields, toSortField(symbol, sel.OrderBy[i]))
	}

	if count, ok := p.numericLimit(sel); ok {
		return builder.WithRoot(plan.NewTopN(p.ids.NextID(), count, sortFields, builder.Root()))
	}
	return builder.WithRoot(plan.NewSort(p.ids.NextID(), sortFields, builder.Root()))
}

// limit plans a LIMIT with no ORDER BY; with one, sort already folded the
// limit into a TopN. LIMIT ALL changes nothing.
func (p *QueryPlanner) limit(builder *PlanBuilder, sel *ast.Select) *PlanBuilder {
	if len(p.analysis.OrderByExpressions(sel)) > 0 {
		return builder
	}
	count, ok := p.numericLimit(sel)
	if !ok {
		return builder
	}
	return builder.WithRoot(plan.NewLimit(p.ids.NextID(), count, builder.Root()))
}

// numericLimit returns the statement's limit row count, reporting false for
// no limit and for LIMIT ALL.
func (p *QueryPlanner) numericLimit(sel *ast.Select) (int64, bool) {
	raw, ok := p.analysis.Limit(sel)
	if !ok || raw == "all" {
		return 0, false
	}
	count, err := cast.ToInt64E(raw)
	if err != nil || count < 0 {
		p.fail(sql.ErrBrokenAnalysis.New("invalid limit " + raw))
	}
	return count, true
}

func toSortField(symbol sql.Symbol, item *ast.Order) plan.SortField {
	if item != nil && item.Direction == ast.DescScr {
		return plan.SortField{Symbol: symbol, Order: plan.Descending, NullOrdering: plan.NullsFirst}
	}
	return plan.SortField{Symbol: symbol, Order: plan.Ascending, NullOrdering: plan.NullsLast}
}

func fieldHint(field analysis.Field) string {
	if field.Name != "" {
		return field.Name
	}
	return "field"
}

func expressionHint(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.ColName:
		return e.Name.String()
	case *ast.FuncExpr:
		return e.Name.Lowered()
	default:
		return "expr"
	}
}
