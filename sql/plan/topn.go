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

// TopN is the combined sort-and-truncate operator: ORDER BY plus a numeric
// LIMIT fold into one node so the executor can prune while sorting instead of
// sorting everything and then truncating.
type TopN struct {
	UnaryNode
	id         sql.PlanNodeID
	Count      int64
	SortFields []SortField
}

var _ sql.Node = (*TopN)(nil)

// NewTopN creates a new TopN node keeping the first count rows.
func NewTopN(id sql.PlanNodeID, count int64, sortFields []SortField, child sql.Node) *TopN {
	return &TopN{
		UnaryNode:  UnaryNode{Child: child},
		id:         id,
		Count:      count,
		SortFields: sortFields,
	}
}

// ID implements the Node interface.
func (t *TopN) ID() sql.PlanNodeID { return t.id }

// OutputSymbols implements the Node interface.
func (t *TopN) OutputSymbols() []sql.Symbol { return t.Child.OutputSymbols() }

func (t *TopN) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("TopN(%d by %s)", t.Count, sortFieldsString(t.SortFields))
	_ = pr.WriteChildren(t.Child.String())
	return pr.String()
}
