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
)

// GroupId fans its input out once per grouping set and tags every row with
// the id of the set that produced it, so result rows from different grouping
// sets stay distinguishable. Only present when a query has more than one
// grouping set (ROLLUP, CUBE, GROUPING SETS).
type GroupId struct {
	UnaryNode
	id sql.PlanNodeID
	// Inputs are the child columns passed through unchanged.
	Inputs       []sql.Symbol
	GroupingSets [][]sql.Symbol
	GroupIdSym   sql.Symbol
}

var _ sql.Node = (*GroupId)(nil)

// NewGroupId creates a GroupId node over the given grouping sets.
func NewGroupId(
	id sql.PlanNodeID,
	inputs []sql.Symbol,
	groupingSets [][]sql.Symbol,
	groupIdSym sql.Symbol,
	child sql.Node,
) *GroupId {
	return &GroupId{
		UnaryNode:    UnaryNode{Child: child},
		id:           id,
		Inputs:       inputs,
		GroupingSets: groupingSets,
		GroupIdSym:   groupIdSym,
	}
}

// ID implements the Node interface.
func (g *GroupId) ID() sql.PlanNodeID { return g.id }

// OutputSymbols implements the Node interface.
func (g *GroupId) OutputSymbols() []sql.Symbol {
	return append(append([]sql.Symbol{}, g.Inputs...), g.GroupIdSym)
}

func (g *GroupId) String() string {
	sets := make([]string, len(g.GroupingSets))
	for i, set := range g.GroupingSets {
		sets[i] = "(" + symbolNames(set) + ")"
	}

	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("GroupId(%s: %s)", g.GroupIdSym.Name(), strings.Join(sets, ", "))
	_ = pr.WriteChildren(g.Child.String())
	return pr.String()
}
