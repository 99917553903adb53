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

package sql

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrInvalidType is thrown when there is an unexpected type at some part
	// of the plan tree.
	ErrInvalidType = errors.NewKind("invalid type: %s")

	// ErrTranslationNotFound is returned when a field or expression that
	// planning order guarantees was already projected has no recorded symbol.
	// This is indicative of a planner bug, not of bad user input.
	ErrTranslationNotFound = errors.NewKind("no symbol recorded for %s")

	// ErrPlannerInternal is returned when the planner reaches a state its
	// construction order should have made impossible.
	ErrPlannerInternal = errors.NewKind("internal planner error: %s")

	// ErrBrokenAnalysis is returned when the analyzer handed the planner a
	// combination it should have rejected, e.g. an ORDER BY term missing from
	// a DISTINCT select list.
	ErrBrokenAnalysis = errors.NewKind("broken analysis: %s")

	// ErrUnsupportedExpression is returned when translation meets a syntax
	// node it has no rewrite for.
	ErrUnsupportedExpression = errors.NewKind("unsupported expression: %s")

	// ErrNodeAlreadyWritten is returned when WriteNode is called twice on the
	// same TreePrinter.
	ErrNodeAlreadyWritten = errors.NewKind("treeprinter: node already written")

	// ErrChildrenAlreadyWritten is returned when WriteChildren is called
	// twice on the same TreePrinter.
	ErrChildrenAlreadyWritten = errors.NewKind("treeprinter: children already written")

	// ErrNodeNotWritten is returned when WriteChildren is called before
	// WriteNode.
	ErrNodeNotWritten = errors.NewKind("treeprinter: a node must be written before its children")
)
