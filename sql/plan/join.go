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

// JoinType is the semantic of a Join node.
type JoinType byte

const (
	// InnerJoin keeps matching row pairs.
	InnerJoin JoinType = iota
	// LeftJoin keeps every left row.
	LeftJoin
	// RightJoin keeps every right row.
	RightJoin
	// FullJoin keeps every row of both sides. A full join with no criteria
	// is a cross join; scalar subqueries are attached this way.
	FullJoin
)

func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "Inner"
	case LeftJoin:
		return "Left"
	case RightJoin:
		return "Right"
	default:
		return "Full"
	}
}

// EquiJoinClause is one left = right equality criterion of a join.
type EquiJoinClause struct {
	Left  sql.Symbol
	Right sql.Symbol
}

func (c EquiJoinClause) String() string {
	return fmt.Sprintf("%s = %s", c.Left.Name(), c.Right.Name())
}

// Join combines two inputs. Output columns are the left columns followed by
// the right columns.
type Join struct {
	BinaryNode
	id       sql.PlanNodeID
	JoinType JoinType
	Criteria []EquiJoinClause
}

var _ sql.Node = (*Join)(nil)

// NewJoin creates a new Join node.
func NewJoin(id sql.PlanNodeID, joinType JoinType, criteria []EquiJoinClause, left, right sql.Node) *Join {
	return &Join{
		BinaryNode: BinaryNode{Left: left, Right: right},
		id:         id,
		JoinType:   joinType,
		Criteria:   criteria,
	}
}

// ID implements the Node interface.
func (j *Join) ID() sql.PlanNodeID { return j.id }

// OutputSymbols implements the Node interface.
func (j *Join) OutputSymbols() []sql.Symbol {
	return append(append([]sql.Symbol{}, j.Left.OutputSymbols()...), j.Right.OutputSymbols()...)
}

func (j *Join) String() string {
	criteria := make([]string, len(j.Criteria))
	for i, c := range j.Criteria {
		criteria[i] = c.String()
	}

	pr := sql.NewTreePrinter()
	if len(criteria) == 0 {
		_ = pr.WriteNode("%sJoin", j.JoinType)
	} else {
		_ = pr.WriteNode("%sJoin(%s)", j.JoinType, strings.Join(criteria, ", "))
	}
	_ = pr.WriteChildren(j.Left.String(), j.Right.String())
	return pr.String()
}
