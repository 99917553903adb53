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

import (
	"bytes"
	"fmt"
	"strings"
)

// TreePrinter is a printer for tree nodes.
type TreePrinter struct {
	buf             bytes.Buffer
	nodeWritten     bool
	childrenWritten bool
}

// NewTreePrinter creates a new tree printer.
func NewTreePrinter() *TreePrinter {
	return new(TreePrinter)
}

// WriteNode writes the main node.
func (p *TreePrinter) WriteNode(format string, args ...interface{}) error {
	if p.nodeWritten {
		return ErrNodeAlreadyWritten.New()
	}

	_, err := fmt.Fprintf(&p.buf, format, args...)
	if err != nil {
		return err
	}
	p.buf.WriteRune('\n')
	p.nodeWritten = true
	return nil
}

// WriteChildren writes the children of the node. Children are written in the
// order they are given.
func (p *TreePrinter) WriteChildren(children ...string) error {
	if !p.nodeWritten {
		return ErrNodeNotWritten.New()
	}
	if p.childrenWritten {
		return ErrChildrenAlreadyWritten.New()
	}

	p.childrenWritten = true
	for i, child := range children {
		last := i+1 == len(children)
		p.writeChild(strings.TrimRight(child, "\n"), last)
	}
	return nil
}

func (p *TreePrinter) writeChild(child string, last bool) {
	first, cont := " ├─ ", " │  "
	if last {
		first, cont = " └─ ", "    "
	}
	for i, line := range strings.Split(child, "\n") {
		if i == 0 {
			p.buf.WriteString(first)
		} else {
			p.buf.WriteString(cont)
		}
		p.buf.WriteString(line)
		p.buf.WriteRune('\n')
	}
}

// String returns the rendered tree.
func (p *TreePrinter) String() string {
	return p.buf.String()
}
