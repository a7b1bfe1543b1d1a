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

package attr_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/lazyresolve/attr"
)

var (
	nameKey  = attr.NewKey[string]("test.name")
	countKey = attr.NewKey[int]("test.count")
	errKey   = attr.NewKey[error]("test.err")
)

func TestGetSet(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var table attr.Table
	_, ok := attr.Get(&table, nameKey)
	assert.False(ok)
	assert.Equal(0, table.Len())

	attr.Set(&table, nameKey, "foo")
	attr.Set(&table, countKey, 42)
	attr.Set(&table, countKey, 43)

	name, ok := attr.Get(&table, nameKey)
	assert.True(ok)
	assert.Equal("foo", name)
	count, ok := attr.Get(&table, countKey)
	assert.True(ok)
	assert.Equal(43, count)
	assert.Equal(2, table.Len())
	assert.Equal([]string{"test.name", "test.count"}, table.Names())

	attr.Delete(&table, nameKey)
	_, ok = attr.Get(&table, nameKey)
	assert.False(ok)
	assert.Equal(1, table.Len())
}

func TestNilValue(t *testing.T) {
	t.Parallel()

	var table attr.Table
	attr.Set(&table, errKey, nil)

	err, ok := attr.Get(&table, errKey)
	assert.True(t, ok)
	assert.NoError(t, err)
}

func TestSharedSlots(t *testing.T) {
	t.Parallel()

	again := attr.NewKey[string]("test.name")
	var table attr.Table
	attr.Set(&table, nameKey, "bar")

	v, ok := attr.Get(&table, again)
	assert.True(t, ok)
	assert.Equal(t, "bar", v)
	assert.Equal(t, `attr.Key("test.name")`, again.String())
}

func TestWrongType(t *testing.T) {
	t.Parallel()

	wrong := attr.NewKey[int]("test.name")
	var table attr.Table
	attr.Set(&table, nameKey, "bar")
	assert.Panics(t, func() { attr.Get(&table, wrong) })
	assert.Panics(t, func() { attr.Get(&table, attr.Key[int]{}) })
}

func TestCopy(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	type payload struct{ n int }
	ptrKey := attr.NewKey[*payload]("test.payload")

	var table attr.Table
	shared := &payload{n: 1}
	attr.Set(&table, nameKey, "orig")
	attr.Set(&table, ptrKey, shared)

	fork := table.Copy()
	attr.Set(fork, nameKey, "fork")
	attr.Delete(fork, ptrKey)

	name, _ := attr.Get(&table, nameKey)
	assert.Equal("orig", name)
	p, ok := attr.Get(&table, ptrKey)
	assert.True(ok)
	assert.Same(shared, p)

	name, _ = attr.Get(fork, nameKey)
	assert.Equal("fork", name)
	_, ok = attr.Get(fork, ptrKey)
	assert.False(ok)

	assert.Equal(0, (*attr.Table)(nil).Copy().Len())
}

func TestConcurrentRegistration(t *testing.T) {
	t.Parallel()

	const n = 64
	keys := make([]attr.Key[int], n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Half the goroutines race on the same name.
			keys[i] = attr.NewKey[int](fmt.Sprintf("test.concurrent.%d", i%(n/2)))
		}()
	}
	wg.Wait()

	var table attr.Table
	for i := range n / 2 {
		attr.Set(&table, keys[i], i)
	}
	for i := range n {
		v, ok := attr.Get(&table, keys[i])
		require.True(t, ok)
		assert.Equal(t, i%(n/2), v)
	}
	assert.GreaterOrEqual(t, attr.SlotCount(), n/2)
}

func TestNilTable(t *testing.T) {
	t.Parallel()

	key := attr.NewKey[int]("attr_test.nil")
	var table *attr.Table
	_, ok := attr.Get(table, key)
	assert.False(t, ok)
	assert.Zero(t, table.Len())
	assert.Empty(t, table.Names())
	attr.Delete(table, key)
	assert.Panics(t, func() { attr.Set(table, key, 1) })
}
