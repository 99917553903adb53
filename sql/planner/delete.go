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

// PlanDelete compiles a DELETE statement: a scan of every column of the
// target table plus its row identity column, an optional filter for the WHERE
// clause, and a Delete node reporting affected row counts and fragments.
func (p *QueryPlanner) PlanDelete(ctx *sql.Context, del *ast.Delete) (result RelationPlan, err error) {
	span, ctx := ctx.Span("plan.delete")
	defer span.Finish()
	defer p.recoverPlanError(&err)

	handle := p.analysis.TableHandle(del)
	descriptor := p.analysis.TableDescriptor(del)
	if handle == nil || descriptor == nil {
		p.fail(sql.ErrBrokenAnalysis.New("delete target not analyzed"))
	}

	rowIdHandle, rowIdType, merr := p.metadata.RowIDHandle(handle)
	if merr != nil {
		p.fail(merr)
	}

	columns := make([]plan.ColumnAssignment, 0, descriptor.Size()+1)
	outputSymbols := make([]sql.Symbol, 0, descriptor.Size()+1)
	for i, field := range descriptor.Fields() {
		symbol := p.symbols.NewSymbol(fieldHint(field), field.Type, "")
		columns = append(columns, plan.ColumnAssignment{Symbol: symbol, Column: p.analysis.TableColumn(del, i)})
		outputSymbols = append(outputSymbols, symbol)
	}
	rowIdSymbol := p.symbols.NewSymbol("$rowid", rowIdType, "")
	columns = append(columns, plan.ColumnAssignment{Symbol: rowIdSymbol, Column: rowIdHandle})
	outputSymbols = append(outputSymbols, rowIdSymbol)

	scan := plan.NewTableScan(p.ids.NextID(), handle, columns)
	relation := RelationPlan{
		Root:          scan,
		Descriptor:    descriptor.WithField(analysis.Field{Type: rowIdType}),
		OutputSymbols: outputSymbols,
	}

	builder := NewPlanBuilder(NewTranslationMap(relation, p.analysis), scan, sql.Symbol{})
	builder = p.filter(ctx, builder, del, p.analysis.Where(del))

	deleteOutputs := []sql.Symbol{
		p.symbols.NewSymbol("partialrows", sql.BigInt, ""),
		p.symbols.NewSymbol("fragment", sql.Varbinary, ""),
	}
	deleteNode := plan.NewDelete(p.ids.NextID(), handle, rowIdSymbol, deleteOutputs, builder.Root())

	p.log.WithField(sql.QueryIDLogField, ctx.ID()).Debug("planned delete")

	return RelationPlan{
		Root:          deleteNode,
		Descriptor:    p.analysis.OutputDescriptor(del),
		OutputSymbols: deleteOutputs,
	}, nil
}
