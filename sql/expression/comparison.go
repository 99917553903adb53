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

// Comparison is a binary predicate over two scalar values.
type Comparison struct {
	BinaryExpression
	op string
}

var _ sql.Expression = (*Comparison)(nil)

// NewEquals returns an equality comparison.
func NewEquals(left, right sql.Expression) *Comparison {
	return &Comparison{BinaryExpression{left, right}, "="}
}

// NewNotEquals returns an inequality comparison.
func NewNotEquals(left, right sql.Expression) *Comparison {
	return &Comparison{BinaryExpression{left, right}, "<>"}
}

// NewLessThan returns a < comparison.
func NewLessThan(left, right sql.Expression) *Comparison {
	return &Comparison{BinaryExpression{left, right}, "<"}
}

// NewLessThanOrEqual returns a <= comparison.
func NewLessThanOrEqual(left, right sql.Expression) *Comparison {
	return &Comparison{BinaryExpression{left, right}, "<="}
}

// NewGreaterThan returns a > comparison.
func NewGreaterThan(left, right sql.Expression) *Comparison {
	return &Comparison{BinaryExpression{left, right}, ">"}
}

// NewGreaterThanOrEqual returns a >= comparison.
func NewGreaterThanOrEqual(left, right sql.Expression) *Comparison {
	return &Comparison{BinaryExpression{left, right}, ">="}
}

// Operator returns the comparison operator.
func (c *Comparison) Operator() string { return c.op }

// Type implements the Expression interface.
func (c *Comparison) Type() sql.Type { return sql.Boolean }

func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.op, c.Right)
}
