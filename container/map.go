package container

import (
	"encoding/binary"
	"iter"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps a key to a 64-bit hash.
type Hasher[K comparable] func(K) uint64

// HashUint64 hashes the little-endian bytes of an unsigned 64-bit key.
func HashUint64[K ~uint64](k K) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k))
	return xxhash.Sum64(buf[:])
}

// HashString hashes the bytes of a string key.
func HashString[K ~string](k K) uint64 {
	return xxhash.Sum64String(string(k))
}

// Map is an open-addressing hash map with linear probing.
//
// Slots live in fixed arrays alongside a parallel in-use vector. Before an insert would
// push occupancy past 3/4 the map rehashes into one twice the size, so every linear scan for a
// new key finds a free slot. Removal shifts the rest of the cluster back instead of
// leaving tombstones, which keeps a freed slot immediately reusable.
type Map[K comparable, V any] struct {
	keys   []K
	values []V
	used   []bool
	count  int
	hash   Hasher[K]
}

// NewMap returns a map with at least capacity slots. Capacity is rounded up to a power of two.
func NewMap[K comparable, V any](capacity int, hash Hasher[K]) *Map[K, V] {
	m := &Map[K, V]{hash: hash}
	m.init(slotsFor(capacity))
	return m
}

func slotsFor(capacity int) int {
	n := defaultCapacity
	for n < capacity {
		n <<= 1
	}
	return n
}

func (m *Map[K, V]) init(slots int) {
	m.keys = make([]K, slots)
	m.values = make([]V, slots)
	m.used = make([]bool, slots)
	m.count = 0
}

func (m *Map[K, V]) mask() int {
	return len(m.keys) - 1
}

// Put inserts or overwrites the value for k.
func (m *Map[K, V]) Put(k K, v V) {
	if i, ok := m.slot(k); ok {
		m.values[i] = v
		return
	}
	if (m.count+1)*4 > len(m.keys)*3 {
		m.grow()
	}
	mask := m.mask()
	i := int(m.hash(k)) & mask
	for n := 0; n < len(m.keys); n++ {
		if !m.used[i] {
			m.keys[i] = k
			m.values[i] = v
			m.used[i] = true
			m.count++
			return
		}
		i = (i + 1) & mask
	}
	panic("container: map slot scan exhausted")
}

// Find returns the value stored for k.
func (m *Map[K, V]) Find(k K) (V, bool) {
	if i, ok := m.slot(k); ok {
		return m.values[i], true
	}
	var zero V
	return zero, false
}

// Has reports whether k is present.
func (m *Map[K, V]) Has(k K) bool {
	_, ok := m.slot(k)
	return ok
}

// Remove deletes k and reports whether it was present.
func (m *Map[K, V]) Remove(k K) bool {
	i, ok := m.slot(k)
	if !ok {
		return false
	}
	m.vacate(i)
	m.count--

	mask := m.mask()
	j := i
	for {
		j = (j + 1) & mask
		if !m.used[j] {
			return true
		}
		home := int(m.hash(m.keys[j])) & mask
		if between(i, home, j) {
			continue
		}
		m.keys[i] = m.keys[j]
		m.values[i] = m.values[j]
		m.used[i] = true
		m.vacate(j)
		i = j
	}
}

// between reports whether home lies in the cyclic interval (i, j].
func between(i, home, j int) bool {
	if i < j {
		return i < home && home <= j
	}
	return home > i || home <= j
}

func (m *Map[K, V]) vacate(i int) {
	var zk K
	var zv V
	m.keys[i] = zk
	m.values[i] = zv
	m.used[i] = false
}

// Len reports the number of slots in use, which equals the number of live keys.
func (m *Map[K, V]) Len() int {
	return m.count
}

// Cap reports the number of slots.
func (m *Map[K, V]) Cap() int {
	return len(m.keys)
}

// Clear removes every key and keeps the slot arrays.
func (m *Map[K, V]) Clear() {
	clear(m.keys)
	clear(m.values)
	clear(m.used)
	m.count = 0
}

// All yields every key/value pair in slot order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, inUse := range m.used {
			if !inUse {
				continue
			}
			if !yield(m.keys[i], m.values[i]) {
				return
			}
		}
	}
}

// Keys yields every key in slot order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i, inUse := range m.used {
			if inUse && !yield(m.keys[i]) {
				return
			}
		}
	}
}

func (m *Map[K, V]) slot(k K) (int, bool) {
	mask := m.mask()
	i := int(m.hash(k)) & mask
	for n := 0; n < len(m.keys); n++ {
		if !m.used[i] {
			return -1, false
		}
		if m.keys[i] == k {
			return i, true
		}
		i = (i + 1) & mask
	}
	return -1, false
}

func (m *Map[K, V]) grow() {
	keys, values, used := m.keys, m.values, m.used
	m.init(len(keys) * 2)
	mask := m.mask()
	for idx, inUse := range used {
		if !inUse {
			continue
		}
		i := int(m.hash(keys[idx])) & mask
		for m.used[i] {
			i = (i + 1) & mask
		}
		m.keys[i] = keys[idx]
		m.values[i] = values[idx]
		m.used[i] = true
		m.count++
	}
}
