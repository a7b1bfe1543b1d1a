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

package fir

import (
	"fmt"
	"iter"
	"sync"

	"github.com/tidwall/btree"
)

// Session is the symbol table of declarations taking part in a compilation,
// ordered by name.
//
// The zero value is empty and ready to use. A Session may be used by
// multiple goroutines concurrently.
type Session struct {
	mu    sync.RWMutex
	decls btree.Map[string, *Declaration]
}

// Add adds a declaration to the session.
//
// Returns an error if a declaration with the same name was already added.
func (s *Session) Add(d *Declaration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.decls.Get(d.Name); ok {
		return fmt.Errorf("duplicate declaration %q: already declared as a %s", d.Name, prev.Kind)
	}
	s.decls.Set(d.Name, d)
	return nil
}

// Lookup finds a declaration by its fully qualified name.
func (s *Session) Lookup(name string) (*Declaration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.decls.Get(name)
}

// Len returns the number of declarations in the session.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.decls.Len()
}

// All returns an iterator over a snapshot of the session's declarations, in
// name order.
func (s *Session) All() iter.Seq[*Declaration] {
	return func(yield func(*Declaration) bool) {
		s.mu.RLock()
		decls := make([]*Declaration, 0, s.decls.Len())
		s.decls.Scan(func(_ string, d *Declaration) bool {
			decls = append(decls, d)
			return true
		})
		s.mu.RUnlock()

		for _, d := range decls {
			if !yield(d) {
				return
			}
		}
	}
}
