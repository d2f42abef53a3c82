package frame

import "strings"

// Key is a composite column label, one part per column level.
type Key []string

// NewKey builds a Key from its parts.
func NewKey(parts ...string) Key {
	k := make(Key, len(parts))
	copy(k, parts)
	return k
}

// String formats the key as a tuple, e.g. (ID_1, Feature_1, m1).
func (k Key) String() string {
	return "(" + strings.Join(k, ", ") + ")"
}

// id is the map key used internally. Parts may contain any printable text,
// so the separator is a control character.
func (k Key) id() string {
	return strings.Join(k, "\x1f")
}

// Equal reports whether both keys have the same parts.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// Compare orders keys level by level. A shorter key sorts before a longer
// key sharing its prefix.
func (k Key) Compare(other Key) int {
	for i := 0; i < len(k) && i < len(other); i++ {
		if c := strings.Compare(k[i], other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	}
	return 0
}

// Prefix returns the first n parts.
func (k Key) Prefix(n int) Key {
	if n > len(k) {
		n = len(k)
	}
	return NewKey(k[:n]...)
}

// With returns a new key with part appended.
func (k Key) With(part string) Key {
	out := make(Key, len(k), len(k)+1)
	copy(out, k)
	return append(out, part)
}
