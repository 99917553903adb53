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

// Values is a leaf node producing a constant list of rows. A query with no
// FROM clause plans as a Values node with one empty row.
type Values struct {
	id      sql.PlanNodeID
	symbols []sql.Symbol
	Rows    [][]sql.Expression
}

var _ sql.Node = (*Values)(nil)

// NewValues creates a Values node with the given output symbols and rows.
func NewValues(id sql.PlanNodeID, symbols []sql.Symbol, rows [][]sql.Expression) *Values {
	return &Values{id: id, symbols: symbols, Rows: rows}
}

// ID implements the Node interface.
func (v *Values) ID() sql.PlanNodeID { return v.id }

// OutputSymbols implements the Node interface.
func (v *Values) OutputSymbols() []sql.Symbol { return v.symbols }

// Children implements the Node interface.
func (v *Values) Children() []sql.Node { return nil }

func (v *Values) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Values(%d rows: %s)", len(v.Rows), symbolNames(v.symbols))
	return pr.String()
}
