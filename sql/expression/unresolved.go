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

// UnresolvedColumn is a column reference translation could not bind yet. It
// stays in a rewritten tree when an expression is rewritten before all of its
// parts are individually projected; translating it is an error.
type UnresolvedColumn struct {
	name string
}

var _ sql.Expression = (*UnresolvedColumn)(nil)

// NewUnresolvedColumn creates a new UnresolvedColumn expression.
func NewUnresolvedColumn(name string) *UnresolvedColumn {
	return &UnresolvedColumn{name: name}
}

// Name returns the column name.
func (c *UnresolvedColumn) Name() string { return c.name }

// Resolved implements the Expression interface.
func (*UnresolvedColumn) Resolved() bool { return false }

// Type implements the Expression interface.
func (*UnresolvedColumn) Type() sql.Type { return sql.Null }

// Children implements the Expression interface.
func (*UnresolvedColumn) Children() []sql.Expression { return nil }

func (c *UnresolvedColumn) String() string {
	return fmt.Sprintf("unresolved(%s)", c.name)
}
