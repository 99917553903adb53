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

// Cast converts its child to another type. Implicit coercions recorded by the
// analyzer become explicit Cast expressions during translation.
type Cast struct {
	UnaryExpression
	typ sql.Type
}

var _ sql.Expression = (*Cast)(nil)

// NewCast creates a cast of the given expression to the given type.
func NewCast(child sql.Expression, typ sql.Type) *Cast {
	return &Cast{UnaryExpression: UnaryExpression{Child: child}, typ: typ}
}

// Type implements the Expression interface.
func (c *Cast) Type() sql.Type { return c.typ }

func (c *Cast) String() string {
	return fmt.Sprintf("cast(%s as %s)", c.Child, c.typ.Name())
}
