// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package toposort provides a generic topological sort.
package toposort

import (
	"iter"

	"github.com/bufbuild/lazyresolve/internal/cycle"
)

const (
	unsorted byte = iota
	walking
	sorted
)

// Sort sorts the part of a graph reachable from roots so that every node
// comes after all of its children.
//
// key returns a comparable key for each node, and children the nodes a node
// depends on. Children are visited in the order they are yielded, and roots
// in the order given.
//
// If the graph has a cycle, returns the first one found as a
// [*cycle.Error].
func Sort[Node any, Key comparable](
	roots []Node,
	key func(Node) Key,
	children func(Node) iter.Seq[Node],
) ([]Node, error) {
	s := sorter[Node, Key]{
		key:      key,
		children: children,
		state:    make(map[Key]byte),
	}
	for _, root := range roots {
		if err := s.visit(root); err != nil {
			return nil, err
		}
	}
	return s.out, nil
}

type sorter[Node any, Key comparable] struct {
	key      func(Node) Key
	children func(Node) iter.Seq[Node]

	state map[Key]byte
	path  []Node
	out   []Node
}

func (s *sorter[Node, Key]) visit(node Node) error {
	k := s.key(node)
	switch s.state[k] {
	case sorted:
		return nil
	case walking:
		return cycle.From(s.path, func(n Node) bool { return s.key(n) == k })
	}

	s.state[k] = walking
	s.path = append(s.path, node)
	for child := range s.children(node) {
		if err := s.visit(child); err != nil {
			return err
		}
	}
	s.path = s.path[:len(s.path)-1]

	s.state[k] = sorted
	s.out = append(s.out, node)
	return nil
}
