package depot

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Key is the sorted set of component-name hashes identifying a table.
type Key []uint64

// ParseKey hashes a comma separated component list into a Key. Spacing and order do not
// matter: the same names always produce the same Key.
func ParseKey(list string) (Key, error) {
	names, err := tokenize(list)
	if err != nil {
		return nil, err
	}
	hashes := make([]uint64, len(names))
	for i, name := range names {
		hashes[i] = HashName(name)
	}
	return KeyOf(hashes...), nil
}

// KeyOf builds a Key from component hashes in any order.
func KeyOf(hashes ...uint64) Key {
	k := Key(slices.Clone(hashes))
	slices.Sort(k)
	return slices.Compact(k)
}

// ID is the content hash of the key. The empty key maps to 0, the empty table.
func (k Key) ID() uint64 {
	if len(k) == 0 {
		return 0
	}
	d := xxhash.New()
	var buf [8]byte
	for _, h := range k {
		binary.LittleEndian.PutUint64(buf[:], h)
		d.Write(buf[:])
	}
	return d.Sum64()
}

func (k Key) Contains(hash uint64) bool {
	_, found := slices.BinarySearch(k, hash)
	return found
}

func (k Key) Equal(other Key) bool {
	return slices.Equal(k, other)
}

// With returns the union of k and other.
func (k Key) With(other Key) Key {
	merged := make([]uint64, 0, len(k)+len(other))
	merged = append(merged, k...)
	merged = append(merged, other...)
	return KeyOf(merged...)
}

// Without returns k minus every hash in other.
func (k Key) Without(other Key) Key {
	out := make(Key, 0, len(k))
	for _, h := range k {
		if !other.Contains(h) {
			out = append(out, h)
		}
	}
	return out
}

// tokenize splits a component list on commas and trims blanks around each name.
func tokenize(list string) ([]string, error) {
	var names []string
	start := 0
	for i := 0; i <= len(list); i++ {
		if i < len(list) && list[i] != ',' {
			continue
		}
		name := trimBlank(list[start:i])
		if name == "" {
			return nil, ErrEmptyKey
		}
		if slices.Contains(names, name) {
			return nil, DuplicateComponentError{Name: name}
		}
		names = append(names, name)
		start = i + 1
	}
	return names, nil
}

func trimBlank(s string) string {
	isBlank := func(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
	for len(s) > 0 && isBlank(s[0]) {
		s = s[1:]
	}
	for len(s) > 0 && isBlank(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}
