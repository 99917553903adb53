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

// PlanNodeIDAllocator hands out monotonically increasing plan node ids. One
// compilation shares a single allocator so ids are unique across the whole
// tree, subplans included.
type PlanNodeIDAllocator struct {
	next sql.PlanNodeID
}

// NewPlanNodeIDAllocator creates an allocator starting at zero.
func NewPlanNodeIDAllocator() *PlanNodeIDAllocator {
	return &PlanNodeIDAllocator{}
}

// NextID returns a fresh id.
func (a *PlanNodeIDAllocator) NextID() sql.PlanNodeID {
	id := a.next
	a.next++
	return id
}
