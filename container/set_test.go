package container

import "testing"

func TestSetBasics(t *testing.T) {
	s := NewSet[uint64](0, HashUint64[uint64])
	if !s.Place(5) || s.Place(5) {
		t.Fatalf("Place should add once and refuse the duplicate")
	}
	s.Place(6)
	if !s.Has(5) || s.Count() != 2 {
		t.Fatalf("Has(5) = %v, Count() = %d", s.Has(5), s.Count())
	}
	if !s.Delete(5) || s.Has(5) || s.Count() != 1 {
		t.Fatalf("Delete(5) did not remove the member")
	}
}

func TestSetIntersectAndSubset(t *testing.T) {
	hash := HashUint64[uint64]
	tests := []struct {
		name       string
		a, b       []uint64
		wantCommon []uint64
		aSubsetB   bool
	}{
		{"disjoint", []uint64{1, 2}, []uint64{3, 4}, nil, false},
		{"subset", []uint64{1, 2}, []uint64{1, 2, 3}, []uint64{1, 2}, true},
		{"overlap", []uint64{1, 2, 5}, []uint64{2, 5, 9}, []uint64{2, 5}, false},
		{"empty", nil, []uint64{7}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := SetOf(hash, tt.a...)
			b := SetOf(hash, tt.b...)
			common := a.Intersect(b)
			if common.Count() != len(tt.wantCommon) {
				t.Fatalf("Intersect count = %d, want %d", common.Count(), len(tt.wantCommon))
			}
			for _, k := range tt.wantCommon {
				if !common.Has(k) {
					t.Errorf("Intersect missing %d", k)
				}
			}
			if got := a.SubsetOf(b); got != tt.aSubsetB {
				t.Errorf("SubsetOf = %v, want %v", got, tt.aSubsetB)
			}
		})
	}
}
