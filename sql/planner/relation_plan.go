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
)

// RelationPlan is a planned relation: a plan subtree plus the mapping from
// the fields of its semantic descriptor to the output symbols the subtree
// produces, position by position.
type RelationPlan struct {
	Root          sql.Node
	Descriptor    *analysis.RelationType
	OutputSymbols []sql.Symbol
	// SampleWeight is the per-row weight column when the relation was sampled
	// with rescaling, zero otherwise.
	SampleWeight sql.Symbol
}

// Symbol returns the output symbol carrying the given descriptor field.
func (p RelationPlan) Symbol(field int) sql.Symbol {
	return p.OutputSymbols[field]
}

// RelationPlanner plans table expressions and whole relations. The query
// planner calls back through this interface for FROM clauses and for nested
// queries, keeping clause planning independent from join and set-operation
// planning.
type RelationPlanner interface {
	// PlanFrom plans the FROM clause of a query.
	PlanFrom(ctx *sql.Context, from ast.TableExprs) (RelationPlan, error)
	// PlanQuery plans a full nested query (a subquery's SELECT).
	PlanQuery(ctx *sql.Context, query ast.SelectStatement) (RelationPlan, error)
}

// Metadata is the slice of the catalog the planner needs directly: resolving
// the synthetic row identity column used by row-level deletes.
type Metadata interface {
	// RowIDHandle returns the column handle and type of the row identity
	// column of a table.
	RowIDHandle(table sql.TableHandle) (sql.ColumnHandle, sql.Type, error)
}
