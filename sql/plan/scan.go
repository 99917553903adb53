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

// ColumnAssignment binds an output symbol to the catalog column it reads.
type ColumnAssignment struct {
	Symbol sql.Symbol
	Column sql.ColumnHandle
}

// TableScan is a leaf node reading a base table.
type TableScan struct {
	id      sql.PlanNodeID
	Table   sql.TableHandle
	Columns []ColumnAssignment
}

var _ sql.Node = (*TableScan)(nil)

// NewTableScan creates a scan of the given table producing the given columns.
func NewTableScan(id sql.PlanNodeID, table sql.TableHandle, columns []ColumnAssignment) *TableScan {
	return &TableScan{id: id, Table: table, Columns: columns}
}

// ID implements the Node interface.
func (t *TableScan) ID() sql.PlanNodeID { return t.id }

// OutputSymbols implements the Node interface.
func (t *TableScan) OutputSymbols() []sql.Symbol {
	symbols := make([]sql.Symbol, len(t.Columns))
	for i, c := range t.Columns {
		symbols[i] = c.Symbol
	}
	return symbols
}

// Children implements the Node interface.
func (t *TableScan) Children() []sql.Node { return nil }

func (t *TableScan) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("TableScan(%s: %s)", t.Table.Name(), symbolNames(t.OutputSymbols()))
	return pr.String()
}
