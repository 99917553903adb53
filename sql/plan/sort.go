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
	"fmt"
	"strings"

	"github.com/cascadedb/cascade/sql"
)

// SortOrder represents the order of the sort (ascending or descending).
type SortOrder byte

const (
	// Ascending order.
	Ascending SortOrder = iota
	// Descending order.
	Descending
)

func (s SortOrder) String() string {
	switch s {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return "invalid SortOrder"
	}
}

// NullOrdering represents how to order based on null values.
type NullOrdering byte

const (
	// NullsFirst puts the null values before any other values.
	NullsFirst NullOrdering = iota
	// NullsLast puts the null values after all other values.
	NullsLast
)

func (n NullOrdering) String() string {
	if n == NullsFirst {
		return "NULLS FIRST"
	}
	return "NULLS LAST"
}

// SortField is a column by which the input will be sorted.
type SortField struct {
	Symbol       sql.Symbol
	Order        SortOrder
	NullOrdering NullOrdering
}

func (f SortField) String() string {
	return fmt.Sprintf("%s %s %s", f.Symbol.Name(), f.Order, f.NullOrdering)
}

func sortFieldsString(fields []SortField) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, ", ")
}

// Sort orders its input by the given sort fields. A sort bounded by a numeric
// limit is planned as a TopN node instead.
type Sort struct {
	UnaryNode
	id         sql.PlanNodeID
	SortFields []SortField
}

var _ sql.Node = (*Sort)(nil)

// NewSort creates a new Sort node.
func NewSort(id sql.PlanNodeID, sortFields []SortField, child sql.Node) *Sort {
	return &Sort{
		UnaryNode:  UnaryNode{Child: child},
		id:         id,
		SortFields: sortFields,
	}
}

// ID implements the Node interface.
func (s *Sort) ID() sql.PlanNodeID { return s.id }

// OutputSymbols implements the Node interface.
func (s *Sort) OutputSymbols() []sql.Symbol { return s.Child.OutputSymbols() }

func (s *Sort) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Sort(%s)", sortFieldsString(s.SortFields))
	_ = pr.WriteChildren(s.Child.String())
	return pr.String()
}
