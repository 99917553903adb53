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

package sql

import "fmt"

// Nameable is something that has a name.
type Nameable interface {
	// Name returns the name.
	Name() string
}

// PlanNodeID uniquely identifies a node within one plan tree.
type PlanNodeID int

// Symbol is a unique, typed identifier for an intermediate or output column
// within one compiled plan. Symbols are allocated once and never renamed; the
// zero Symbol is invalid.
type Symbol struct {
	name string
	typ  Type
}

// NewSymbol creates a symbol with the given unique name and type. Callers are
// expected to go through a symbol allocator, which guarantees name uniqueness
// for the whole compilation.
func NewSymbol(name string, typ Type) Symbol {
	return Symbol{name: name, typ: typ}
}

// Name returns the unique name of the symbol.
func (s Symbol) Name() string { return s.name }

// Type returns the semantic type of the column the symbol stands for.
func (s Symbol) Type() Type { return s.typ }

// IsZero reports whether the symbol is the invalid zero value.
func (s Symbol) IsZero() bool { return s.name == "" }

func (s Symbol) String() string { return s.name }

// Expression is a node in a scalar expression tree produced by translation.
type Expression interface {
	// Resolved reports whether the expression and all its children are bound
	// to symbols or constants.
	Resolved() bool
	// Type returns the semantic type of the result of the expression.
	Type() Type
	// Children returns the immediate children of the expression.
	Children() []Expression
	fmt.Stringer
}

// Node is one operator of a logical plan tree. Nodes are immutable after
// construction and own their children by value: a node appears in exactly one
// plan tree, under exactly one parent.
type Node interface {
	// ID returns the unique id of the node within its plan tree.
	ID() PlanNodeID
	// OutputSymbols returns the ordered columns the node produces.
	OutputSymbols() []Symbol
	// Children returns the input nodes of this node, leaves first.
	Children() []Node
	fmt.Stringer
}

// TableHandle is an opaque reference to a catalog table.
type TableHandle interface {
	Nameable
}

// ColumnHandle is an opaque reference to a column of a catalog table.
type ColumnHandle interface {
	Nameable
}

// Signature identifies a resolved function: its canonical name, return type
// and argument types, as reported by the analyzer.
type Signature struct {
	Name          string
	ReturnType    Type
	ArgumentTypes []Type
}
