// Package bitset implements a fixed-universe bit-set used by the grammar
// analyzer to represent FIRST and FOLLOW sets over the terminal alphabet.
package bitset

import "fmt"

const wordBits = 32

// Set is a bit-set over the range [0, n) for some fixed n chosen at
// construction time. The zero value is not usable; use New.
type Set struct {
	bits []uint32
	n    int
}

// New returns an empty set large enough to hold bits in [0, n).
func New(n int) *Set {
	return &Set{
		bits: make([]uint32, (n+wordBits-1)/wordBits),
		n:    n,
	}
}

// Add sets bit i. i is not checked against the universe size: an i past
// the last backing word panics the same way indexing a slice out of
// bounds would, while an i inside the last partly used word is accepted.
func (s *Set) Add(i int) {
	s.bits[i/wordBits] |= 1 << uint(i%wordBits)
}

// Test reports whether bit i is set.
func (s *Set) Test(i int) bool {
	return s.bits[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

// Union ORs other into s and reports whether s changed as a result. This is
// the primitive the FIRST/FOLLOW fixed points iterate on: the outer loop
// keeps going only while some Union call returns true.
func (s *Set) Union(other *Set) bool {
	changed := false
	for i, w := range other.bits {
		if s.bits[i]|w != s.bits[i] {
			s.bits[i] |= w
			changed = true
		}
	}
	return changed
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	cp := &Set{bits: make([]uint32, len(s.bits)), n: s.n}
	copy(cp.bits, s.bits)
	return cp
}

// Len returns the universe size the set was constructed with.
func (s *Set) Len() int {
	return s.n
}

// Each calls fn for every set bit in ascending order.
func (s *Set) Each(fn func(i int)) {
	for i := 0; i < s.n; i++ {
		if s.Test(i) {
			fn(i)
		}
	}
}

// Empty reports whether no bit is set.
func (s *Set) Empty() bool {
	for _, w := range s.bits {
		if w != 0 {
			return false
		}
	}
	return true
}

// String renders the set as a space-separated list of bit indexes, mainly
// for use in tests and debug dumps; callers that need symbol names render
// Each themselves.
func (s *Set) String() string {
	out := ""
	first := true
	s.Each(func(i int) {
		if !first {
			out += " "
		}
		out += fmt.Sprintf("%d", i)
		first = false
	})
	return out
}
