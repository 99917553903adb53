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
	"github.com/cascadedb/cascade/sql"
)

// PlanBuilder is the state threaded between clause planners: the plan built
// so far and the translation map describing what it computes. Builders are
// immutable; each clause planner derives a new one, so a failed step never
// leaves a half-updated pipeline behind.
type PlanBuilder struct {
	translations *TranslationMap
	root         sql.Node
	sampleWeight sql.Symbol
}

// NewPlanBuilder creates a builder over the given root.
func NewPlanBuilder(translations *TranslationMap, root sql.Node, sampleWeight sql.Symbol) *PlanBuilder {
	return &PlanBuilder{
		translations: translations,
		root:         root,
		sampleWeight: sampleWeight,
	}
}

// Root returns the current plan root.
func (b *PlanBuilder) Root() sql.Node { return b.root }

// Translations returns the current translation map.
func (b *PlanBuilder) Translations() *TranslationMap { return b.translations }

// SampleWeight returns the per-row weight symbol, zero when the pipeline
// carries none.
func (b *PlanBuilder) SampleWeight() sql.Symbol { return b.sampleWeight }

// HasSampleWeight reports whether the pipeline carries a weight column.
func (b *PlanBuilder) HasSampleWeight() bool { return !b.sampleWeight.IsZero() }

// WithRoot derives a builder with a new root and the same translations and
// sample weight. Used when a node only wraps the plan without reshaping its
// columns.
func (b *PlanBuilder) WithRoot(root sql.Node) *PlanBuilder {
	return &PlanBuilder{
		translations: b.translations,
		root:         root,
		sampleWeight: b.sampleWeight,
	}
}

// WithNewTranslations derives a builder with a new root and translation map,
// dropping the sample weight unless the caller rethreads it.
func (b *PlanBuilder) WithNewTranslations(translations *TranslationMap, root sql.Node, sampleWeight sql.Symbol) *PlanBuilder {
	return &PlanBuilder{
		translations: translations,
		root:         root,
		sampleWeight: sampleWeight,
	}
}
