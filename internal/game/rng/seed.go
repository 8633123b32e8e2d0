package rng

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"strings"
)

type seedKind int

const (
	seedAbsent seedKind = iota
	seedNumber
	seedText
)

// Seed is the caller-facing seed input: a number, a string, or absent.
// The zero value is absent.
//
// Seed implements encoding.TextMarshaler and encoding.TextUnmarshaler so it can
// be read from YAML, JSON and flags.
type Seed struct {
	kind  seedKind
	value uint32
	text  string
}

// SeedFromInt returns a numeric Seed. Only the low 32 bits are used.
func SeedFromInt(n int64) Seed {
	return Seed{kind: seedNumber, value: uint32(n)}
}

// SeedFromString returns a Seed for s. Strings that parse as integers are
// treated as numeric seeds; any other non-empty string is hashed.
// An empty string yields an absent Seed.
func SeedFromString(s string) Seed {
	s = strings.TrimSpace(s)
	if s == "" {
		return Seed{}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return SeedFromInt(n)
	}
	return Seed{kind: seedText, value: HashString(s), text: s}
}

// IsSet reports whether a seed was supplied.
func (s Seed) IsSet() bool { return s.kind != seedAbsent }

// Resolve returns the 32-bit seed value, generating one when the seed is absent.
//
// Postcondition: calling Resolve on a set Seed always returns the same value.
func (s Seed) Resolve() uint32 {
	if s.kind == seedAbsent {
		return Generate()
	}
	return s.value
}

// String returns the original seed text, the numeric value, or "" when absent.
func (s Seed) String() string {
	switch s.kind {
	case seedText:
		return s.text
	case seedNumber:
		return strconv.FormatUint(uint64(s.value), 10)
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Seed) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Seed) UnmarshalText(text []byte) error {
	*s = SeedFromString(string(text))
	return nil
}

// HashString folds s into a 32-bit value with the xmur3 mixing function.
//
// Postcondition: equal strings always hash to equal values.
func HashString(s string) uint32 {
	h := uint32(1779033703) ^ uint32(len(s))
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * 3432918353
		h = h<<13 | h>>19
	}
	h = (h ^ (h >> 16)) * 2246822507
	h = (h ^ (h >> 13)) * 3266489909
	h ^= h >> 16
	return h
}

// Generate returns a fresh seed from crypto/rand.
//
// Panics with "rng: crypto/rand failure: <err>" if crypto/rand fails.
func Generate() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("rng: crypto/rand failure: " + err.Error())
	}
	return binary.LittleEndian.Uint32(b[:])
}
