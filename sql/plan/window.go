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
	"github.com/cascadedb/cascade/sql/expression"
)

// FrameUnit is the unit of a window frame.
type FrameUnit byte

const (
	// RangeFrame frames rows by value range.
	RangeFrame FrameUnit = iota
	// RowsFrame frames rows by physical offset.
	RowsFrame
)

func (u FrameUnit) String() string {
	if u == RowsFrame {
		return "ROWS"
	}
	return "RANGE"
}

// FrameBoundType is the kind of one end of a window frame.
type FrameBoundType byte

const (
	// UnboundedPreceding starts the frame at the partition start.
	UnboundedPreceding FrameBoundType = iota
	// Preceding starts or ends the frame a value offset before the row.
	Preceding
	// CurrentRow starts or ends the frame at the current row.
	CurrentRow
	// Following starts or ends the frame a value offset after the row.
	Following
	// UnboundedFollowing ends the frame at the partition end.
	UnboundedFollowing
)

func (t FrameBoundType) String() string {
	switch t {
	case UnboundedPreceding:
		return "UNBOUNDED PRECEDING"
	case Preceding:
		return "PRECEDING"
	case CurrentRow:
		return "CURRENT ROW"
	case Following:
		return "FOLLOWING"
	default:
		return "UNBOUNDED FOLLOWING"
	}
}

// WindowFrame is the frame of one window operator. Bound value expressions
// are pre-projected, so bounds reference symbols.
type WindowFrame struct {
	Unit      FrameUnit
	StartType FrameBoundType
	// StartValue is set only for value-offset bounds.
	StartValue sql.Symbol
	EndType    FrameBoundType
	// EndValue is set only for value-offset bounds.
	EndValue sql.Symbol
}

// DefaultWindowFrame is the frame used when a window has no explicit frame
// clause: RANGE UNBOUNDED PRECEDING .. CURRENT ROW.
func DefaultWindowFrame() WindowFrame {
	return WindowFrame{
		Unit:      RangeFrame,
		StartType: UnboundedPreceding,
		EndType:   CurrentRow,
	}
}

func (f WindowFrame) String() string {
	start := f.StartType.String()
	if !f.StartValue.IsZero() {
		start = f.StartValue.Name() + " " + start
	}
	end := f.EndType.String()
	if !f.EndValue.IsZero() {
		end = f.EndValue.Name() + " " + end
	}
	return fmt.Sprintf("%s BETWEEN %s AND %s", f.Unit, start, end)
}

// WindowOrdering is one ORDER BY key of a window.
type WindowOrdering struct {
	Symbol sql.Symbol
	Order  SortOrder
}

// WindowAssignment binds an output symbol to one window function call. As
// with aggregation, implicit result coercions are stripped and reapplied by a
// projection above the window.
type WindowAssignment struct {
	Symbol    sql.Symbol
	Call      *expression.Function
	Signature sql.Signature
}

// Window computes one window function over its input. Multiple window
// functions compose sequentially: each Window node's input is the previous
// one's output, and every node preserves all input columns.
type Window struct {
	UnaryNode
	id          sql.PlanNodeID
	PartitionBy []sql.Symbol
	OrderBy     []WindowOrdering
	Frame       WindowFrame
	Assignments []WindowAssignment
}

var _ sql.Node = (*Window)(nil)

// NewWindow creates a new Window node.
func NewWindow(
	id sql.PlanNodeID,
	partitionBy []sql.Symbol,
	orderBy []WindowOrdering,
	frame WindowFrame,
	assignments []WindowAssignment,
	child sql.Node,
) *Window {
	return &Window{
		UnaryNode:   UnaryNode{Child: child},
		id:          id,
		PartitionBy: partitionBy,
		OrderBy:     orderBy,
		Frame:       frame,
		Assignments: assignments,
	}
}

// ID implements the Node interface.
func (w *Window) ID() sql.PlanNodeID { return w.id }

// OutputSymbols implements the Node interface.
func (w *Window) OutputSymbols() []sql.Symbol {
	symbols := append([]sql.Symbol{}, w.Child.OutputSymbols()...)
	for _, a := range w.Assignments {
		symbols = append(symbols, a.Symbol)
	}
	return symbols
}

func (w *Window) String() string {
	var calls []string
	for _, a := range w.Assignments {
		calls = append(calls, a.Symbol.Name()+" := "+a.Call.String())
	}
	orderings := make([]string, len(w.OrderBy))
	for i, o := range w.OrderBy {
		orderings[i] = o.Symbol.Name() + " " + o.Order.String()
	}

	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Window([%s] partition by [%s] order by [%s] %s)",
		strings.Join(calls, ", "), symbolNames(w.PartitionBy), strings.Join(orderings, ", "), w.Frame)
	_ = pr.WriteChildren(w.Child.String())
	return pr.String()
}
