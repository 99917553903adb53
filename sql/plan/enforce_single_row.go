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

// EnforceSingleRow passes its input through and fails at execution time if
// the input yields more than one row. Scalar subqueries are wrapped in this
// node.
type EnforceSingleRow struct {
	UnaryNode
	id sql.PlanNodeID
}

var _ sql.Node = (*EnforceSingleRow)(nil)

// NewEnforceSingleRow creates a new EnforceSingleRow node.
func NewEnforceSingleRow(id sql.PlanNodeID, child sql.Node) *EnforceSingleRow {
	return &EnforceSingleRow{UnaryNode: UnaryNode{Child: child}, id: id}
}

// ID implements the Node interface.
func (e *EnforceSingleRow) ID() sql.PlanNodeID { return e.id }

// OutputSymbols implements the Node interface.
func (e *EnforceSingleRow) OutputSymbols() []sql.Symbol { return e.Child.OutputSymbols() }

func (e *EnforceSingleRow) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("EnforceSingleRow")
	_ = pr.WriteChildren(e.Child.String())
	return pr.String()
}
