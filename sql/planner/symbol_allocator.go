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

// Package planner turns an analyzed statement into a logical plan tree. The
// entry point is QueryPlanner, which orders the clause planners the way the
// relational semantics require and threads symbol translations between them.
package planner

import (
	"fmt"
	"strings"

	"github.com/cascadedb/cascade/sql"
)

// SymbolAllocator mints unique, typed symbols for one compilation. Names are
// derived from a caller hint plus an optional suffix, lowercased, with a
// numeric tail appended on collision. Not safe for concurrent use; one
// compilation owns one allocator.
type SymbolAllocator struct {
	symbols map[string]sql.Type
	next    int
}

// NewSymbolAllocator creates an empty allocator.
func NewSymbolAllocator() *SymbolAllocator {
	return &SymbolAllocator{symbols: make(map[string]sql.Type)}
}

// NewSymbol mints a fresh symbol. The hint seeds the name; a non-empty suffix
// is appended as "$suffix" so related symbols group visually in plan dumps.
func (a *SymbolAllocator) NewSymbol(hint string, typ sql.Type, suffix string) sql.Symbol {
	base := strings.ToLower(strings.TrimSpace(hint))
	if base == "" {
		base = "expr"
	}
	if suffix != "" {
		base = base + "$" + suffix
	}

	name := base
	for {
		if _, taken := a.symbols[name]; !taken {
			break
		}
		a.next++
		name = fmt.Sprintf("%s_%d", base, a.next)
	}

	a.symbols[name] = typ
	return sql.NewSymbol(name, typ)
}

// NewSymbolForExpression mints a symbol for an expression, hinting the name
// from its shape.
func (a *SymbolAllocator) NewSymbolForExpression(expr sql.Expression, suffix string) sql.Symbol {
	return a.NewSymbol(nameHint(expr), expr.Type(), suffix)
}

// Symbols returns every allocated name and its type.
func (a *SymbolAllocator) Symbols() map[string]sql.Type {
	out := make(map[string]sql.Type, len(a.symbols))
	for name, typ := range a.symbols {
		out[name] = typ
	}
	return out
}

func nameHint(expr sql.Expression) string {
	if named, ok := expr.(sql.Nameable); ok {
		return named.Name()
	}
	return "expr"
}
