package container

import (
	"fmt"
	"math/rand"
	"testing"
)

func TestMapPutFind(t *testing.T) {
	m := NewMap[uint64, string](4, HashUint64[uint64])
	m.Put(1, "one")
	m.Put(2, "two")
	m.Put(1, "uno")

	if v, ok := m.Find(1); !ok || v != "uno" {
		t.Errorf("Find(1) = %q, %v", v, ok)
	}
	if _, ok := m.Find(3); ok {
		t.Errorf("Find(3) reported a missing key as present")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestMapLoadFactor(t *testing.T) {
	capacities := []int{1, 8, 16, 100}
	for _, c := range capacities {
		t.Run(fmt.Sprintf("cap%d", c), func(t *testing.T) {
			m := NewMap[uint64, int](c, HashUint64[uint64])
			for k := 0; k < 5000; k++ {
				m.Put(uint64(k), k)
				if m.Len()*4 > m.Cap()*3 {
					t.Fatalf("occupancy %d/%d exceeds 0.75 after %d puts", m.Len(), m.Cap(), k+1)
				}
				if m.Len() != k+1 {
					t.Fatalf("Len() = %d after %d puts", m.Len(), k+1)
				}
			}
			for k := 0; k < 5000; k++ {
				if v, ok := m.Find(uint64(k)); !ok || v != k {
					t.Fatalf("Find(%d) = %d, %v", k, v, ok)
				}
			}
		})
	}
}

func TestMapRemoveKeepsClusterReachable(t *testing.T) {
	// A constant hash forces every key into one cluster.
	m := NewMap[int, int](16, func(int) uint64 { return 3 })
	for k := 0; k < 10; k++ {
		m.Put(k, k*10)
	}
	for _, k := range []int{0, 4, 9} {
		if !m.Remove(k) {
			t.Fatalf("Remove(%d) = false", k)
		}
	}
	for k := 0; k < 10; k++ {
		removed := k == 0 || k == 4 || k == 9
		v, ok := m.Find(k)
		if removed && ok {
			t.Errorf("Find(%d) found a removed key", k)
		}
		if !removed && (!ok || v != k*10) {
			t.Errorf("Find(%d) = %d, %v after removals", k, v, ok)
		}
	}
	if m.Len() != 7 {
		t.Errorf("Len() = %d, want 7", m.Len())
	}
	if m.Remove(4) {
		t.Errorf("second Remove(4) = true")
	}
}

func TestMapRandomOpsMatchBuiltin(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := NewMap[uint64, int](8, HashUint64[uint64])
	ref := make(map[uint64]int)

	for i := 0; i < 20000; i++ {
		k := uint64(rng.Intn(512))
		switch rng.Intn(3) {
		case 0, 1:
			m.Put(k, i)
			ref[k] = i
		case 2:
			_, want := ref[k]
			if got := m.Remove(k); got != want {
				t.Fatalf("Remove(%d) = %v, want %v", k, got, want)
			}
			delete(ref, k)
		}
		if m.Len() != len(ref) {
			t.Fatalf("Len() = %d, want %d", m.Len(), len(ref))
		}
	}

	for k, want := range ref {
		if got, ok := m.Find(k); !ok || got != want {
			t.Fatalf("Find(%d) = %d, %v, want %d", k, got, ok, want)
		}
	}
	seen := 0
	for k, v := range m.All() {
		if ref[k] != v {
			t.Fatalf("All() yielded %d=%d, want %d", k, v, ref[k])
		}
		seen++
	}
	if seen != len(ref) {
		t.Fatalf("All() yielded %d pairs, want %d", seen, len(ref))
	}
}

func TestMapClear(t *testing.T) {
	m := NewMap[string, int](4, HashString[string])
	m.Put("a", 1)
	m.Put("b", 2)
	m.Clear()
	if m.Len() != 0 || m.Has("a") {
		t.Fatalf("Clear() left %d keys", m.Len())
	}
	m.Put("a", 3)
	if v, _ := m.Find("a"); v != 3 {
		t.Fatalf("Find(a) after Clear = %d, want 3", v)
	}
}
