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

package expression

import (
	"fmt"

	"github.com/cascadedb/cascade/sql"
)

// Arithmetic expressions (+, -, *, /, %).
type Arithmetic struct {
	BinaryExpression
	Op  string
	typ sql.Type
}

var _ sql.Expression = (*Arithmetic)(nil)

// NewArithmetic creates a new Arithmetic expression of the given operator and
// result type.
func NewArithmetic(left, right sql.Expression, op string, typ sql.Type) *Arithmetic {
	return &Arithmetic{BinaryExpression{left, right}, op, typ}
}

// Type implements the Expression interface.
func (a *Arithmetic) Type() sql.Type { return a.typ }

func (a *Arithmetic) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Left, a.Op, a.Right)
}

// UnaryMinus is the negation of an expression.
type UnaryMinus struct {
	UnaryExpression
}

var _ sql.Expression = (*UnaryMinus)(nil)

// NewUnaryMinus creates a new UnaryMinus expression.
func NewUnaryMinus(child sql.Expression) *UnaryMinus {
	return &UnaryMinus{UnaryExpression{Child: child}}
}

// Type implements the Expression interface.
func (e *UnaryMinus) Type() sql.Type { return e.Child.Type() }

func (e *UnaryMinus) String() string {
	return fmt.Sprintf("-%s", e.Child)
}
