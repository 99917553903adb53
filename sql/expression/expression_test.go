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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadedb/cascade/sql"
)

func TestInspectVisitsNestedChildren(t *testing.T) {
	a := NewSymbolReference(sql.NewSymbol("a", sql.BigInt))
	b := NewSymbolReference(sql.NewSymbol("b", sql.BigInt))
	expr := NewAnd(
		NewGreaterThan(a, NewLiteral(int64(1), sql.BigInt)),
		NewNot(NewIsNull(b)),
	)

	var refs []string
	Inspect(expr, func(e sql.Expression) bool {
		if ref, ok := e.(*SymbolReference); ok {
			refs = append(refs, ref.Symbol().Name())
		}
		return true
	})

	assert.Equal(t, []string{"a", "b"}, refs)
}

func TestResolutionPropagates(t *testing.T) {
	resolved := NewEquals(
		NewSymbolReference(sql.NewSymbol("a", sql.BigInt)),
		NewLiteral(int64(1), sql.BigInt),
	)
	assert.True(t, resolved.Resolved())

	unresolved := NewAnd(resolved, NewIsNull(NewUnresolvedColumn("ghost")))
	assert.False(t, unresolved.Resolved())
}

func TestCastReportsTargetType(t *testing.T) {
	require := require.New(t)

	child := NewSymbolReference(sql.NewSymbol("a", sql.BigInt))
	c := NewCast(child, sql.Double)

	require.Equal(sql.Double, c.Type())
	require.Equal(sql.BigInt, c.Child.Type())
	require.Equal("cast(a as double)", c.String())
}

func TestFunctionArgumentsAndDistinct(t *testing.T) {
	require := require.New(t)

	arg := NewSymbolReference(sql.NewSymbol("b", sql.BigInt))
	fn := NewFunction("count", true, sql.BigInt, arg)

	require.Equal("count", fn.Name())
	require.True(fn.Distinct())
	require.Len(fn.Arguments(), 1)
	require.Equal(sql.BigInt, fn.Type())
}
