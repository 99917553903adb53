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

// MarkDistinct annotates every row with a boolean marking the first
// occurrence of its key, underlying DISTINCT-aggregate support.
type MarkDistinct struct {
	UnaryNode
	id sql.PlanNodeID
	// MarkerSymbol is the produced boolean column.
	MarkerSymbol sql.Symbol
	// DistinctSymbols is the key: the grouping keys plus one DISTINCT
	// aggregate's argument set.
	DistinctSymbols []sql.Symbol
}

var _ sql.Node = (*MarkDistinct)(nil)

// NewMarkDistinct creates a MarkDistinct node.
func NewMarkDistinct(id sql.PlanNodeID, marker sql.Symbol, distinctSymbols []sql.Symbol, child sql.Node) *MarkDistinct {
	return &MarkDistinct{
		UnaryNode:       UnaryNode{Child: child},
		id:              id,
		MarkerSymbol:    marker,
		DistinctSymbols: distinctSymbols,
	}
}

// ID implements the Node interface.
func (m *MarkDistinct) ID() sql.PlanNodeID { return m.id }

// OutputSymbols implements the Node interface.
func (m *MarkDistinct) OutputSymbols() []sql.Symbol {
	return append(append([]sql.Symbol{}, m.Child.OutputSymbols()...), m.MarkerSymbol)
}

func (m *MarkDistinct) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("MarkDistinct(%s over [%s])", m.MarkerSymbol.Name(), symbolNames(m.DistinctSymbols))
	_ = pr.WriteChildren(m.Child.String())
	return pr.String()
}
