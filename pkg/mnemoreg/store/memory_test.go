package store

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetGet(t *testing.T) {
	m := NewMemory[int]()

	require.NoError(t, m.Set("a", 1, "first"))

	e, err := m.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1, e.Value)
	assert.Equal(t, "first", e.Description)
}

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory[int]()

	_, err := m.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySetOverwrites(t *testing.T) {
	m := NewMemory[string]()

	require.NoError(t, m.Set("k", "old", "old desc"))
	require.NoError(t, m.Set("k", "new", ""))

	e, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "new", e.Value)
	assert.Empty(t, e.Description)
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory[int]()
	require.NoError(t, m.Set("a", 1, ""))

	require.NoError(t, m.Delete("a"))

	_, err := m.Get("a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDeleteAbsentIsNoop(t *testing.T) {
	m := NewMemory[int]()

	assert.NoError(t, m.Delete("missing"))
}

func TestMemoryClear(t *testing.T) {
	m := NewMemory[int]()
	require.NoError(t, m.Set("a", 1, ""))
	require.NoError(t, m.Set("b", 2, ""))

	require.NoError(t, m.Clear())

	n, err := m.Len()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Store remains usable after Clear
	require.NoError(t, m.Set("c", 3, ""))
}

func TestMemoryUpdate(t *testing.T) {
	m := NewMemory[int]()
	require.NoError(t, m.Set("a", 1, "keep"))

	require.NoError(t, m.Update(map[string]Entry[int]{
		"a": {Value: 10},
		"b": {Value: 2, Description: "added"},
	}))

	e, err := m.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 10, e.Value, "update overwrites unconditionally")

	e, err = m.Get("b")
	require.NoError(t, err)
	assert.Equal(t, 2, e.Value)
	assert.Equal(t, "added", e.Description)
}

func TestMemoryKeysLenContains(t *testing.T) {
	m := NewMemory[int]()
	require.NoError(t, m.Set("a", 1, ""))
	require.NoError(t, m.Set("b", 2, ""))

	keys, err := m.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)

	n, err := m.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	ok, err := m.Contains("a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Contains("z")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySnapshotIsCopy(t *testing.T) {
	m := NewMemory[int]()
	require.NoError(t, m.Set("a", 1, ""))

	snap, err := m.Snapshot()
	require.NoError(t, err)

	require.NoError(t, m.Set("b", 2, ""))
	require.NoError(t, m.Delete("a"))

	assert.Len(t, snap, 1)
	assert.Equal(t, 1, snap["a"].Value)
}

func TestMemoryClosed(t *testing.T) {
	m := NewMemory[int]()
	require.NoError(t, m.Set("a", 1, ""))
	require.NoError(t, m.Close())

	assert.ErrorIs(t, m.Set("b", 2, ""), ErrStoreClosed)
	_, err := m.Get("a")
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, m.Delete("a"), ErrStoreClosed)
	assert.ErrorIs(t, m.Clear(), ErrStoreClosed)
	assert.ErrorIs(t, m.Update(nil), ErrStoreClosed)
	_, err = m.Keys()
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = m.Len()
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = m.Contains("a")
	assert.ErrorIs(t, err, ErrStoreClosed)
	_, err = m.Snapshot()
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestMemoryConcurrentSet(t *testing.T) {
	m := NewMemory[int]()
	var wg sync.WaitGroup
	n := 1000

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			assert.NoError(t, m.Set(key(val), val, ""))
		}(i)
	}

	wg.Wait()

	count, err := m.Len()
	require.NoError(t, err)
	assert.Equal(t, n, count)
}

func key(i int) string {
	return "k" + strconv.Itoa(i)
}
