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
	"github.com/cascadedb/cascade/sql"
)

// SymbolReference is a direct reference to a column symbol produced by an
// upstream plan node. Translation replaces every resolved field or
// sub-expression with one of these.
type SymbolReference struct {
	symbol sql.Symbol
}

var _ sql.Expression = (*SymbolReference)(nil)

// NewSymbolReference creates a reference to the given symbol.
func NewSymbolReference(symbol sql.Symbol) *SymbolReference {
	return &SymbolReference{symbol: symbol}
}

// Symbol returns the referenced symbol.
func (s *SymbolReference) Symbol() sql.Symbol { return s.symbol }

// Resolved implements the Expression interface.
func (s *SymbolReference) Resolved() bool { return true }

// Type implements the Expression interface.
func (s *SymbolReference) Type() sql.Type { return s.symbol.Type() }

// Children implements the Expression interface.
func (s *SymbolReference) Children() []sql.Expression { return nil }

func (s *SymbolReference) String() string { return s.symbol.Name() }
