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

package plan

import (
	"strings"

	"github.com/cascadedb/cascade/sql"
	"github.com/cascadedb/cascade/sql/expression"
)

// AggregationAssignment binds an output symbol to one aggregate call. The
// call is stored without any implicit result coercion: coercion is reapplied
// by an explicit projection above the aggregation.
type AggregationAssignment struct {
	Symbol    sql.Symbol
	Call      *expression.Function
	Signature sql.Signature
	// Mask is the distinct-marker symbol for DISTINCT aggregates, zero
	// otherwise. Aggregates sharing an argument set share one marker.
	Mask sql.Symbol
}

// Aggregation groups its input by the grouping keys and computes one row of
// aggregate results per group, in a single step. DISTINCT over a select list
// is an Aggregation with no aggregate assignments: the grouping engine
// computes row distinctness.
type Aggregation struct {
	UnaryNode
	id           sql.PlanNodeID
	GroupingKeys []sql.Symbol
	Assignments  []AggregationAssignment
	// SampleWeight is the per-row weight column consumed by approximate
	// aggregation, if the pipeline carries one.
	SampleWeight sql.Symbol
	// Confidence is 1.0 unless an approximate-query confidence was requested.
	Confidence float64
}

var _ sql.Node = (*Aggregation)(nil)

// NewAggregation creates a single-step aggregation node.
func NewAggregation(
	id sql.PlanNodeID,
	groupingKeys []sql.Symbol,
	assignments []AggregationAssignment,
	sampleWeight sql.Symbol,
	confidence float64,
	child sql.Node,
) *Aggregation {
	return &Aggregation{
		UnaryNode:    UnaryNode{Child: child},
		id:           id,
		GroupingKeys: groupingKeys,
		Assignments:  assignments,
		SampleWeight: sampleWeight,
		Confidence:   confidence,
	}
}

// ID implements the Node interface.
func (a *Aggregation) ID() sql.PlanNodeID { return a.id }

// OutputSymbols implements the Node interface: the grouping keys followed by
// one symbol per aggregate.
func (a *Aggregation) OutputSymbols() []sql.Symbol {
	symbols := make([]sql.Symbol, 0, len(a.GroupingKeys)+len(a.Assignments))
	symbols = append(symbols, a.GroupingKeys...)
	for _, as := range a.Assignments {
		symbols = append(symbols, as.Symbol)
	}
	return symbols
}

func (a *Aggregation) String() string {
	var calls []string
	for _, as := range a.Assignments {
		call := as.Symbol.Name() + " := " + as.Call.String()
		if !as.Mask.IsZero() {
			call += " mask " + as.Mask.Name()
		}
		calls = append(calls, call)
	}

	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Aggregation(keys: [%s], aggs: [%s])",
		symbolNames(a.GroupingKeys), strings.Join(calls, ", "))
	_ = pr.WriteChildren(a.Child.String())
	return pr.String()
}
