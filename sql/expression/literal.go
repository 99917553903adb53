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

	"github.com/shopspring/decimal"

	"github.com/cascadedb/cascade/sql"
)

// Literal represents a constant value.
type Literal struct {
	value interface{}
	typ   sql.Type
}

var _ sql.Expression = (*Literal)(nil)

// NewLiteral creates a new Literal expression.
func NewLiteral(value interface{}, typ sql.Type) *Literal {
	return &Literal{value: value, typ: typ}
}

// Value returns the literal value.
func (l *Literal) Value() interface{} { return l.value }

// Resolved implements the Expression interface.
func (l *Literal) Resolved() bool { return true }

// Type implements the Expression interface.
func (l *Literal) Type() sql.Type { return l.typ }

// Children implements the Expression interface.
func (l *Literal) Children() []sql.Expression { return nil }

func (l *Literal) String() string {
	switch v := l.value.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("%q", v)
	case decimal.Decimal:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
