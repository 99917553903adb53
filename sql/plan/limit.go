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

// Limit is a node that only allows up to N rows to be retrieved. Only planned
// when no ORDER BY is present; otherwise the limit folds into a TopN.
type Limit struct {
	UnaryNode
	id    sql.PlanNodeID
	Count int64
}

var _ sql.Node = (*Limit)(nil)

// NewLimit creates a new Limit node with the given size.
func NewLimit(id sql.PlanNodeID, count int64, child sql.Node) *Limit {
	return &Limit{
		UnaryNode: UnaryNode{Child: child},
		id:        id,
		Count:     count,
	}
}

// ID implements the Node interface.
func (l *Limit) ID() sql.PlanNodeID { return l.id }

// OutputSymbols implements the Node interface.
func (l *Limit) OutputSymbols() []sql.Symbol { return l.Child.OutputSymbols() }

func (l *Limit) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Limit(%d)", l.Count)
	_ = pr.WriteChildren(l.Child.String())
	return pr.String()
}
