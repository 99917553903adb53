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
	"github.com/cascadedb/cascade/sql"
)

// Field is the semantic metadata of one output column of a relation. An
// anonymous field (e.g. a synthetic row id) has an empty name.
type Field struct {
	Name string
	Type sql.Type
}

// RelationType describes the ordered output columns of a relation.
type RelationType struct {
	fields []Field
}

// NewRelationType creates a descriptor of the given fields.
func NewRelationType(fields ...Field) *RelationType {
	return &RelationType{fields: fields}
}

// Fields returns all fields in order.
func (r *RelationType) Fields() []Field { return r.fields }

// Size returns the number of fields.
func (r *RelationType) Size() int { return len(r.fields) }

// FieldByIndex returns the field at the given position.
func (r *RelationType) FieldByIndex(index int) Field { return r.fields[index] }

// WithField returns a new descriptor with the given field appended.
func (r *RelationType) WithField(field Field) *RelationType {
	fields := make([]Field, 0, len(r.fields)+1)
	fields = append(fields, r.fields...)
	fields = append(fields, field)
	return &RelationType{fields: fields}
}
