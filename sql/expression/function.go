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

// Function is a call to a function the analyzer already resolved. Aggregate
// and window calls also take this form once their arguments are rewritten to
// pre-projected symbols.
type Function struct {
	name     string
	distinct bool
	args     []sql.Expression
	typ      sql.Type
}

var _ sql.Expression = (*Function)(nil)

// NewFunction creates a resolved function call expression.
func NewFunction(name string, distinct bool, typ sql.Type, args ...sql.Expression) *Function {
	return &Function{name: name, distinct: distinct, args: args, typ: typ}
}

// Name returns the canonical function name.
func (f *Function) Name() string { return f.name }

// Distinct reports whether the call carries a DISTINCT qualifier.
func (f *Function) Distinct() bool { return f.distinct }

// Arguments returns the call arguments.
func (f *Function) Arguments() []sql.Expression { return f.args }

// Resolved implements the Expression interface.
func (f *Function) Resolved() bool {
	for _, a := range f.args {
		if !a.Resolved() {
			return false
		}
	}
	return true
}

// Type implements the Expression interface.
func (f *Function) Type() sql.Type { return f.typ }

// Children implements the Expression interface.
func (f *Function) Children() []sql.Expression { return f.args }

func (f *Function) String() string {
	args := make([]string, len(f.args))
	for i, a := range f.args {
		args[i] = a.String()
	}
	if f.distinct {
		return fmt.Sprintf("%s(distinct %s)", f.name, strings.Join(args, ", "))
	}
	return fmt.Sprintf("%s(%s)", f.name, strings.Join(args, ", "))
}
