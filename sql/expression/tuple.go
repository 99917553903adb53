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
	"strings"

	"github.com/cascadedb/cascade/sql"
)

// Tuple is a fixed, ordered list of expressions.
type Tuple []sql.Expression

var _ sql.Expression = (Tuple)(nil)

// NewTuple creates a new Tuple expression.
func NewTuple(exprs ...sql.Expression) Tuple {
	return Tuple(exprs)
}

// Resolved implements the Expression interface.
func (t Tuple) Resolved() bool {
	for _, e := range t {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

// Type implements the Expression interface. A tuple has no scalar type of its
// own.
func (t Tuple) Type() sql.Type { return sql.Null }

// Children implements the Expression interface.
func (t Tuple) Children() []sql.Expression { return t }

func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, e := range t {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// InTuple checks whether the left expression equals any member of the right
// tuple. IN predicates over subqueries never reach this form: they are bound
// to semi-join output symbols during decorrelation.
type InTuple struct {
	BinaryExpression
}

var _ sql.Expression = (*InTuple)(nil)

// NewInTuple creates an InTuple expression.
func NewInTuple(left sql.Expression, right Tuple) *InTuple {
	return &InTuple{BinaryExpression{left, right}}
}

// Type implements the Expression interface.
func (*InTuple) Type() sql.Type { return sql.Boolean }

func (in *InTuple) String() string {
	return fmt.Sprintf("(%s IN %s)", in.Left, in.Right)
}
