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
	"github.com/cascadedb/cascade/sql"
)

// SemiJoin produces the source rows annotated with a boolean telling whether
// the probe value matched any row of the filtering source. IN predicates over
// subqueries decorrelate into this node.
type SemiJoin struct {
	BinaryNode
	id sql.PlanNodeID
	// SourceJoinSymbol is the pre-projected probe value on the source side.
	SourceJoinSymbol sql.Symbol
	// FilteringSourceJoinSymbol is the sole output of the subquery relation.
	FilteringSourceJoinSymbol sql.Symbol
	// OutputSymbol is the produced boolean match column.
	OutputSymbol sql.Symbol
}

var _ sql.Node = (*SemiJoin)(nil)

// NewSemiJoin creates a new SemiJoin node; source is the left child and the
// filtering source the right one.
func NewSemiJoin(
	id sql.PlanNodeID,
	sourceJoinSymbol, filteringSourceJoinSymbol, outputSymbol sql.Symbol,
	source, filteringSource sql.Node,
) *SemiJoin {
	return &SemiJoin{
		BinaryNode:                BinaryNode{Left: source, Right: filteringSource},
		id:                        id,
		SourceJoinSymbol:          sourceJoinSymbol,
		FilteringSourceJoinSymbol: filteringSourceJoinSymbol,
		OutputSymbol:              outputSymbol,
	}
}

// ID implements the Node interface.
func (j *SemiJoin) ID() sql.PlanNodeID { return j.id }

// OutputSymbols implements the Node interface: the source columns plus the
// boolean match column.
func (j *SemiJoin) OutputSymbols() []sql.Symbol {
	return append(append([]sql.Symbol{}, j.Left.OutputSymbols()...), j.OutputSymbol)
}

func (j *SemiJoin) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("SemiJoin(%s := %s in %s)",
		j.OutputSymbol.Name(), j.SourceJoinSymbol.Name(), j.FilteringSourceJoinSymbol.Name())
	_ = pr.WriteChildren(j.Left.String(), j.Right.String())
	return pr.String()
}
