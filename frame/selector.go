package frame

// Range is an inclusive label range on one column level. An empty bound is
// open, so the zero Range matches every label.
type Range struct {
	Start string
	Stop  string
}

// Between returns the inclusive range [start, stop].
func Between(start, stop string) Range {
	return Range{Start: start, Stop: stop}
}

// Exactly matches a single label.
func Exactly(label string) Range {
	return Range{Start: label, Stop: label}
}

// UpTo matches every label up to and including stop.
func UpTo(stop string) Range {
	return Range{Stop: stop}
}

// From matches every label from start onwards.
func From(start string) Range {
	return Range{Start: start}
}

// Contains reports whether label lies within the range.
func (r Range) Contains(label string) bool {
	if r.Start != "" && label < r.Start {
		return false
	}
	if r.Stop != "" && label > r.Stop {
		return false
	}
	return true
}

// Selector picks columns by one Range per leading column level. Levels
// beyond the selector's length are unconstrained.
type Selector []Range

// Matches reports whether key falls inside every range of the selector.
func (s Selector) Matches(key Key) bool {
	if len(s) > len(key) {
		return false
	}
	for i, r := range s {
		if !r.Contains(key[i]) {
			return false
		}
	}
	return true
}
