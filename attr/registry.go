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

package attr

import (
	"fmt"
	"sync"
)

// slots is the process-wide mapping from attribute names to side table
// slots. It is shared by every [Table].
var slots registry

// registry assigns small integer slots to attribute names.
//
// Slots are only ever appended, so a slot, once handed out, is valid for the
// lifetime of the process.
type registry struct {
	mu    sync.RWMutex
	index map[string]int
	names []string
}

// slot returns the slot for name, registering it if necessary.
//
// This function may be called by multiple goroutines concurrently.
func (r *registry) slot(name string) int {
	// Fast path for names that have already been registered.
	r.mu.RLock()
	slot, ok := r.index[name]
	r.mu.RUnlock()
	if ok {
		return slot
	}

	return r.slotSlow(name)
}

func (r *registry) slotSlow(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Someone may have registered name between RUnlock and Lock.
	if slot, ok := r.index[name]; ok {
		return slot
	}

	if r.index == nil {
		r.index = make(map[string]int)
	}
	slot := len(r.names)
	r.names = append(r.names, name)
	r.index[name] = slot
	return slot
}

// name returns the name registered for slot.
func (r *registry) name(slot int) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if slot < 0 || slot >= len(r.names) {
		panic(fmt.Sprintf("attr: unregistered slot %d", slot))
	}
	return r.names[slot]
}

// len returns the number of registered slots.
func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// SlotCount returns the number of attribute slots registered so far.
func SlotCount() int {
	return slots.len()
}
