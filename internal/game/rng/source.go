// Package rng provides the seeded, reproducible randomness used by the combat engine.
//
// Every battle owns exactly one Source. The same seed always yields the same
// stream of draws on every platform because the generator works purely on
// fixed-width uint32 arithmetic.
package rng

// Source is a mulberry32 pseudo-random generator.
//
// Invariant: Next always returns a value in [0, 1).
// Source is NOT safe for concurrent use; each battle owns its own instance.
type Source struct {
	seed  uint32
	state uint32
}

// New creates a Source from seed. An absent seed is replaced with a freshly
// generated one, which is then reported by Seed.
//
// Postcondition: Returns a non-nil Source whose Seed() is the value actually used.
func New(seed Seed) *Source {
	return NewFromUint32(seed.Resolve())
}

// NewFromUint32 creates a Source from an already-resolved 32-bit seed.
func NewFromUint32(seed uint32) *Source {
	return &Source{seed: seed, state: seed}
}

// Seed returns the 32-bit seed this Source was created from.
func (s *Source) Seed() uint32 { return s.seed }

// Next returns the next float in [0, 1).
//
// Postcondition: 0 <= return value < 1.
func (s *Source) Next() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Intn returns floor(Next() * n).
//
// Precondition: n > 0. Panics with "rng: Intn called with n <= 0" otherwise.
// Postcondition: 0 <= return value < n.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int(s.Next() * float64(n))
}
