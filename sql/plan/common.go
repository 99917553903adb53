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
	"strings"

	"github.com/cascadedb/cascade/sql"
)

// UnaryNode is a node that has only one child.
type UnaryNode struct {
	Child sql.Node
}

// Children implements the Node interface.
func (n UnaryNode) Children() []sql.Node {
	return []sql.Node{n.Child}
}

// BinaryNode is a node with two children.
type BinaryNode struct {
	Left  sql.Node
	Right sql.Node
}

// Children implements the Node interface.
func (n BinaryNode) Children() []sql.Node {
	return []sql.Node{n.Left, n.Right}
}

// Assignment binds an output symbol to the expression that computes it.
type Assignment struct {
	Symbol sql.Symbol
	Expr   sql.Expression
}

// Assignments is an ordered list of assignments; order defines output order.
type Assignments []Assignment

// Symbols returns the assigned symbols in order.
func (a Assignments) Symbols() []sql.Symbol {
	symbols := make([]sql.Symbol, len(a))
	for i, as := range a {
		symbols[i] = as.Symbol
	}
	return symbols
}

func (a Assignments) String() string {
	parts := make([]string, len(a))
	for i, as := range a {
		parts[i] = as.Symbol.Name() + " := " + as.Expr.String()
	}
	return strings.Join(parts, ", ")
}

func symbolNames(symbols []sql.Symbol) string {
	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = s.Name()
	}
	return strings.Join(names, ", ")
}
