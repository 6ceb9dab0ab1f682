package oxide

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrEmptySet is returned when a Set would contain no oxides.
	ErrEmptySet = errors.New("oxide set is empty")

	// ErrMisaligned is the sentinel matched by MisalignedError.
	ErrMisaligned = errors.New("oxide sets are misaligned")

	// ErrUnknownOxide is returned when an oxide is not part of a set or table.
	ErrUnknownOxide = errors.New("unknown oxide")

	// ErrDuplicateOxide is returned when a Set lists an oxide twice.
	ErrDuplicateOxide = errors.New("duplicate oxide")
)

// MisalignedError reports that a subset cannot be mapped onto a set without
// reordering. Position-only merging of such sets would pair unrelated oxides.
type MisalignedError struct {
	Oxide    string
	Position int
	Previous string
}

func (e *MisalignedError) Error() string {
	if e.Previous == "" {
		return fmt.Sprintf("oxide sets are misaligned: %q at position %d", e.Oxide, e.Position)
	}
	return fmt.Sprintf("oxide sets are misaligned: %q at position %d precedes %q in the reference order", e.Oxide, e.Position, e.Previous)
}

// Is reports whether target is ErrMisaligned.
func (e *MisalignedError) Is(target error) bool { return target == ErrMisaligned }

// Set is an ordered, duplicate-free list of oxide identifiers.
// The zero value is an empty set. Sets are immutable.
type Set struct {
	names []string
	index map[string]int
}

// NewSet builds a Set from identifiers in the given order.
func NewSet(names ...string) (Set, error) {
	if len(names) == 0 {
		return Set{}, ErrEmptySet
	}

	cleaned := make([]string, len(names))
	index := make(map[string]int, len(names))
	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return Set{}, fmt.Errorf("oxide at position %d has an empty identifier", i)
		}
		if _, dup := index[n]; dup {
			return Set{}, fmt.Errorf("%w %q at position %d", ErrDuplicateOxide, n, i)
		}
		index[n] = i
		cleaned[i] = n
	}

	return Set{names: cleaned, index: index}, nil
}

// MustSet is like NewSet but panics on error. Intended for tests and fixed tables.
func MustSet(names ...string) Set {
	s, err := NewSet(names...)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of oxides.
func (s Set) Len() int { return len(s.names) }

// Names returns a copy of the identifiers in order.
func (s Set) Names() []string { return slices.Clone(s.names) }

// At returns the identifier at position i.
func (s Set) At(i int) string { return s.names[i] }

// Index returns the position of id, or -1.
func (s Set) Index(id string) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// Contains reports whether id is part of the set.
func (s Set) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Equal reports whether both sets hold the same oxides in the same order.
func (s Set) Equal(other Set) bool {
	return slices.Equal(s.names, other.names)
}

// Without returns the set minus id, preserving order.
func (s Set) Without(id string) (Set, error) {
	if !s.Contains(id) {
		return Set{}, fmt.Errorf("%w: %q", ErrUnknownOxide, id)
	}
	rest := make([]string, 0, len(s.names)-1)
	for _, n := range s.names {
		if n != id {
			rest = append(rest, n)
		}
	}
	return NewSet(rest...)
}

// Align returns, for every oxide of sub, its position in s.
//
// sub must be a subset of s listed in the same relative order; the returned
// positions are therefore strictly increasing.
func (s Set) Align(sub Set) ([]int, error) {
	pos := make([]int, sub.Len())
	last := -1
	for i, n := range sub.names {
		j, ok := s.index[n]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOxide, n)
		}
		if j <= last {
			return nil, &MisalignedError{Oxide: n, Position: i, Previous: s.names[last]}
		}
		pos[i] = j
		last = j
	}
	return pos, nil
}

func (s Set) String() string {
	return "[" + strings.Join(s.names, " ") + "]"
}
