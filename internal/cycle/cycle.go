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

// Package cycle contains helpers for reporting dependency cycles.
package cycle

import (
	"fmt"
	"strings"
)

// Error is an error due to a cyclic dependency between values of type T.
type Error[T any] struct {
	// The offending cycle. The first and last entries are equal.
	Cycle []T
}

// From builds a cycle error out of the path that led back to one of its own
// entries. The cycle starts at the first entry of path for which isStart
// returns true, and is closed by repeating that entry.
//
// If no entry matches, the whole path is kept and closed with its first
// entry.
func From[T any](path []T, isStart func(T) bool) *Error[T] {
	if len(path) == 0 {
		return &Error[T]{}
	}
	start := 0
	for i, v := range path {
		if isStart(v) {
			start = i
			break
		}
	}
	cycle := make([]T, 0, len(path)-start+1)
	cycle = append(cycle, path[start:]...)
	cycle = append(cycle, path[start])
	return &Error[T]{Cycle: cycle}
}

// Error implements [error].
func (e *Error[T]) Error() string {
	var buf strings.Builder
	buf.WriteString("cycle detected: ")
	for i, q := range e.Cycle {
		if i != 0 {
			buf.WriteString(" -> ")
		}
		if s, ok := any(q).(fmt.Stringer); ok {
			buf.WriteString(s.String())
			continue
		}
		fmt.Fprintf(&buf, "%#v", q)
	}
	return buf.String()
}
