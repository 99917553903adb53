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

package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadedb/cascade/sql"
)

func TestSymbolAllocatorUniqueNames(t *testing.T) {
	allocator := NewSymbolAllocator()

	first := allocator.NewSymbol("col", sql.BigInt, "")
	second := allocator.NewSymbol("col", sql.BigInt, "")
	third := allocator.NewSymbol("col", sql.Varchar, "")

	assert.Equal(t, "col", first.Name())
	assert.NotEqual(t, first.Name(), second.Name())
	assert.NotEqual(t, second.Name(), third.Name())
	assert.Len(t, allocator.Symbols(), 3)
}

func TestSymbolAllocatorSuffixAndCase(t *testing.T) {
	allocator := NewSymbolAllocator()

	marker := allocator.NewSymbol("Price", sql.Boolean, "distinct")
	assert.Equal(t, "price$distinct", marker.Name())
	assert.Equal(t, sql.Boolean, marker.Type())

	fallback := allocator.NewSymbol("   ", sql.BigInt, "")
	assert.Equal(t, "expr", fallback.Name())
}

func TestSymbolAllocatorKeepsTypes(t *testing.T) {
	allocator := NewSymbolAllocator()
	allocator.NewSymbol("a", sql.BigInt, "")
	allocator.NewSymbol("b", sql.Varchar, "")

	symbols := allocator.Symbols()
	require.Len(t, symbols, 2)
	assert.Equal(t, sql.BigInt, symbols["a"])
	assert.Equal(t, sql.Varchar, symbols["b"])
}

func TestPlanNodeIDAllocatorIsMonotonic(t *testing.T) {
	allocator := NewPlanNodeIDAllocator()

	seen := make(map[sql.PlanNodeID]struct{})
	last := sql.PlanNodeID(-1)
	for i := 0; i < 100; i++ {
		id := allocator.NextID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = struct{}{}
		require.Greater(t, id, last)
		last = id
	}
}
