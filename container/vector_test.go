package container

import "testing"

func TestVectorPushPop(t *testing.T) {
	v := NewVector[int](1)
	for i := 0; i < 100; i++ {
		v.Push(i)
	}
	if v.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", v.Len())
	}
	if v.Cap() != 128 {
		t.Errorf("Cap() = %d, want 128 after doubling", v.Cap())
	}
	if v.Top() != 99 || v.At(42) != 42 {
		t.Errorf("Top() = %d, At(42) = %d", v.Top(), v.At(42))
	}
	for i := 99; i >= 0; i-- {
		if got := v.Pop(); got != i {
			t.Fatalf("Pop() = %d, want %d", got, i)
		}
	}
	if v.Len() != 0 {
		t.Errorf("Len() = %d after draining, want 0", v.Len())
	}
}

func TestVectorResizeOnlyGrows(t *testing.T) {
	v := NewVector[string](2)
	v.Push("a")
	v.Resize(5)
	if v.Len() != 5 || v.At(0) != "a" || v.At(4) != "" {
		t.Fatalf("Resize(5) produced %v", v.Slice())
	}
	v.Resize(1)
	if v.Len() != 5 {
		t.Fatalf("Resize(1) shrank the vector to %d", v.Len())
	}
}

func TestVectorCopyIsIndependent(t *testing.T) {
	v := NewVector[int](4)
	v.Push(1)
	v.Push(2)
	c := v.Copy()
	c.Set(0, 10)
	c.Push(3)
	if v.At(0) != 1 || v.Len() != 2 {
		t.Fatalf("copy mutated the original: %v", v.Slice())
	}
	v.Clear()
	if v.Len() != 0 || v.Cap() != 4 {
		t.Fatalf("Clear() left len %d cap %d", v.Len(), v.Cap())
	}
}

func TestVectorHigherOrder(t *testing.T) {
	v := NewVector[int](0)
	for i := 1; i <= 10; i++ {
		v.Push(i)
	}
	even := func(n int) bool { return n%2 == 0 }

	if got := v.Count(even); got != 5 {
		t.Errorf("Count(even) = %d, want 5", got)
	}
	evens := v.Filter(even)
	if evens.Len() != 5 || evens.At(0) != 2 || evens.Top() != 10 {
		t.Errorf("Filter(even) = %v", evens.Slice())
	}
	squares := MapVector(v, func(n int) int { return n * n })
	if squares.At(9) != 100 {
		t.Errorf("Map square At(9) = %d, want 100", squares.At(9))
	}
	sum := Fold(v, 0, func(acc, n int) int { return acc + n })
	if sum != 55 {
		t.Errorf("Fold sum = %d, want 55", sum)
	}

	seen := 0
	for i, n := range v.All() {
		if n != i+1 {
			t.Fatalf("All() yielded %d at %d", n, i)
		}
		seen++
	}
	if seen != 10 {
		t.Errorf("All() yielded %d items, want 10", seen)
	}
}
