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

// Filter skips rows that don't match a certain expression.
type Filter struct {
	UnaryNode
	id        sql.PlanNodeID
	Predicate sql.Expression
}

var _ sql.Node = (*Filter)(nil)

// NewFilter creates a new filter node.
func NewFilter(id sql.PlanNodeID, predicate sql.Expression, child sql.Node) *Filter {
	return &Filter{
		UnaryNode: UnaryNode{Child: child},
		id:        id,
		Predicate: predicate,
	}
}

// ID implements the Node interface.
func (f *Filter) ID() sql.PlanNodeID { return f.id }

// OutputSymbols implements the Node interface.
func (f *Filter) OutputSymbols() []sql.Symbol { return f.Child.OutputSymbols() }

func (f *Filter) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Filter(%s)", f.Predicate)
	_ = pr.WriteChildren(f.Child.String())
	return pr.String()
}
