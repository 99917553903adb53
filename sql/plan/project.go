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

// Project computes a new set of columns from its input.
type Project struct {
	UnaryNode
	id          sql.PlanNodeID
	Assignments Assignments
}

var _ sql.Node = (*Project)(nil)

// NewProject creates a projection of the given assignments.
func NewProject(id sql.PlanNodeID, assignments Assignments, child sql.Node) *Project {
	return &Project{
		UnaryNode:   UnaryNode{Child: child},
		id:          id,
		Assignments: assignments,
	}
}

// ID implements the Node interface.
func (p *Project) ID() sql.PlanNodeID { return p.id }

// OutputSymbols implements the Node interface.
func (p *Project) OutputSymbols() []sql.Symbol { return p.Assignments.Symbols() }

// Expression returns the expression assigned to the given symbol, if any.
func (p *Project) Expression(symbol sql.Symbol) (sql.Expression, bool) {
	for _, a := range p.Assignments {
		if a.Symbol == symbol {
			return a.Expr, true
		}
	}
	return nil, false
}

func (p *Project) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Project(%s)", p.Assignments)
	_ = pr.WriteChildren(p.Child.String())
	return pr.String()
}
