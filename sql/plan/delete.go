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

// Delete terminates a DELETE plan. It carries the row-identifier symbol the
// executor uses to address rows, and produces two synthetic columns the
// executor fills in: a partial row count and a serialized write fragment.
type Delete struct {
	UnaryNode
	id          sql.PlanNodeID
	Table       sql.TableHandle
	RowIdSymbol sql.Symbol
	outputs     []sql.Symbol
}

var _ sql.Node = (*Delete)(nil)

// NewDelete creates a new Delete node. outputs must be the partial-row-count
// and fragment symbols, in that order.
func NewDelete(id sql.PlanNodeID, table sql.TableHandle, rowId sql.Symbol, outputs []sql.Symbol, child sql.Node) *Delete {
	return &Delete{
		UnaryNode:   UnaryNode{Child: child},
		id:          id,
		Table:       table,
		RowIdSymbol: rowId,
		outputs:     outputs,
	}
}

// ID implements the Node interface.
func (d *Delete) ID() sql.PlanNodeID { return d.id }

// OutputSymbols implements the Node interface.
func (d *Delete) OutputSymbols() []sql.Symbol { return d.outputs }

func (d *Delete) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Delete(%s by %s)", d.Table.Name(), d.RowIdSymbol.Name())
	_ = pr.WriteChildren(d.Child.String())
	return pr.String()
}
