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

package analysis

import (
	"fmt"
	"strings"

	ast "github.com/dolthub/vitess/go/vt/sqlparser"
)

// FieldOrExpression is one SELECT, ORDER BY or GROUP BY item: either a
// positional reference into the base relation's output, or a scalar
// expression tree. The two resolve through different paths, so the union is
// explicit.
type FieldOrExpression struct {
	expr    ast.Expr
	field   int
	isField bool
}

// NewFieldReference creates a positional reference to the given field.
func NewFieldReference(index int) FieldOrExpression {
	return FieldOrExpression{field: index, isField: true}
}

// NewExpression wraps a scalar expression.
func NewExpression(expr ast.Expr) FieldOrExpression {
	return FieldOrExpression{expr: expr}
}

// IsFieldReference reports whether this is a positional reference.
func (fe FieldOrExpression) IsFieldReference() bool { return fe.isField }

// FieldIndex returns the referenced field position; only valid for field
// references.
func (fe FieldOrExpression) FieldIndex() int { return fe.field }

// Expression returns the wrapped expression; only valid for expressions.
func (fe FieldOrExpression) Expression() ast.Expr { return fe.expr }

// Key returns the structural identity of the item, used for set membership
// and translation lookups.
func (fe FieldOrExpression) Key() string {
	if fe.isField {
		return fmt.Sprintf("$field:%d", fe.field)
	}
	return ExprKey(fe.expr)
}

func (fe FieldOrExpression) String() string {
	if fe.isField {
		return fmt.Sprintf("$%d", fe.field)
	}
	return ast.String(fe.expr)
}

// ExprKey returns the structural identity of an expression: its canonical SQL
// text, case-folded. Two textually identical expressions share a key.
func ExprKey(expr ast.Expr) string {
	return strings.ToLower(ast.String(expr))
}
