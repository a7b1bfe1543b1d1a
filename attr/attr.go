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

// Package attr provides [Table], a sparse, typed side table of facts attached
// to a declaration.
//
// Phases compute facts about a declaration (how it is deprecated, its
// resolved status, and so on) that do not belong in the declaration's core
// shape. These are stored in the declaration's Table, under a [Key] that
// identifies both the fact and its Go type.
//
// # Slots
//
// Every Key is assigned a small integer slot from a process-wide registry
// the first time its name is seen; a Table is then just an array indexed by
// slot. Keys should be declared once, as package-level variables:
//
//	var StatusKey = attr.NewKey[Status]("status")
//
// # Concurrency
//
// A Table is not synchronized. The expected discipline is that a slot is
// written only by the phase that computes it, while that phase holds the
// declaration exclusively, and is read only once the declaration is observed
// to be resolved past that phase. The resolution state machine provides the
// necessary happens-before edges.
package attr

import "fmt"

// Key identifies a slot in a [Table] holding values of type V.
//
// The zero value is not a valid key; use [NewKey].
type Key[V any] struct {
	slot int
	set  bool
}

// NewKey returns the key for the attribute with the given name.
//
// Calling NewKey twice with the same name returns keys for the same slot. It
// is the caller's responsibility to use the same type V each time; getting a
// value through a key of the wrong type panics.
func NewKey[V any](name string) Key[V] {
	return Key[V]{slot: slots.slot(name), set: true}
}

// Name returns the name this key was registered with.
func (k Key[V]) Name() string {
	k.check()
	return slots.name(k.slot)
}

// String implements [fmt.Stringer].
func (k Key[V]) String() string {
	if !k.set {
		return "attr.Key(<zero>)"
	}
	return fmt.Sprintf("attr.Key(%q)", k.Name())
}

func (k Key[V]) check() {
	if !k.set {
		panic("attr: use of zero Key")
	}
}

// Table is a sparse side table of attribute values.
//
// The zero value is empty and ready to use.
type Table struct {
	values []any
	len    int
}

// Get returns the value stored under k, if any.
func Get[V any](t *Table, k Key[V]) (V, bool) {
	k.check()
	var zero V
	if t == nil || k.slot >= len(t.values) {
		return zero, false
	}

	raw := t.values[k.slot]
	if raw == nil {
		return zero, false
	}
	v, ok := raw.(box[V])
	if !ok {
		panic(fmt.Sprintf("attr: %v holds %T, not a %T", k, raw, zero))
	}
	return v.value, true
}

// Set stores v under k, replacing any existing value.
//
// Unlike the other operations, Set requires a non-nil t.
func Set[V any](t *Table, k Key[V], v V) {
	k.check()
	if k.slot >= len(t.values) {
		values := make([]any, k.slot+1)
		copy(values, t.values)
		t.values = values
	}
	if t.values[k.slot] == nil {
		t.len++
	}
	// Values are boxed so that a stored nil interface or pointer still reads
	// back as present.
	t.values[k.slot] = box[V]{v}
}

// Delete clears the value stored under k, if any.
func Delete[V any](t *Table, k Key[V]) {
	k.check()
	if t == nil || k.slot >= len(t.values) || t.values[k.slot] == nil {
		return
	}
	t.values[k.slot] = nil
	t.len--
}

// Len returns the number of values set in t.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.len
}

// Copy returns an independent copy of t.
//
// Values themselves are copied shallowly: a pointer stored in t is shared
// with the copy.
func (t *Table) Copy() *Table {
	if t == nil {
		return new(Table)
	}
	return &Table{
		values: append([]any(nil), t.values...),
		len:    t.len,
	}
}

// Names returns the names of the attributes set in t, in slot order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, t.len)
	for slot, v := range t.values {
		if v != nil {
			names = append(names, slots.name(slot))
		}
	}
	return names
}

type box[V any] struct{ value V }
