// SPDX-License-Identifier: MIT
package token

import (
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// KindSlice is a wrapper type for []Kind.
	KindSlice []Kind

	// KindSet is an unordered collection of unique [Kind]s.
	KindSet map[Kind]struct{}
)

// Locate obtains the index of a Kind in the KindSlice.
//
// Returns -1 for a missing Kind.
func (s KindSlice) Locate(k Kind) (resl int) {
	resl = -1

	for index := range s {
		if s[index] != k {
			continue
		}

		resl = index
		break
	}

	return
}

// Sort orders the KindSlice in ascending Kind order.
func (s KindSlice) Sort() { slices.Sort(s) }

// String is the `fmt.Stringer` interface implementation for KindSlice.
func (s KindSlice) String() string {
	var buffer strings.Builder
	for index := range s {
		if index > 0 {
			buffer.WriteString(" ")
		}
		buffer.WriteString(s[index].String())
	}

	return buffer.String()
}

// NewKindSet initializes a KindSet holding the provided kinds.
func NewKindSet(kinds ...Kind) (set KindSet) {
	set = make(KindSet, len(kinds))
	set.Add(kinds...)

	return
}

// Add inserts kinds into the KindSet.
func (set KindSet) Add(kinds ...Kind) {
	for _, k := range kinds {
		set[k] = struct{}{}
	}
}

// Has checks a Kind's membership in the KindSet.
func (set KindSet) Has(k Kind) (ok bool) {
	_, ok = set[k]
	return
}

// Clone obtains an independent copy of the KindSet.
func (set KindSet) Clone() KindSet { return maps.Clone(set) }

// Kinds obtains the KindSet's members in ascending order.
func (set KindSet) Kinds() (kinds KindSlice) {
	kinds = maps.Keys(set)
	kinds.Sort()

	return
}

// String is the `fmt.Stringer` interface implementation for KindSet.
func (set KindSet) String() string { return set.Kinds().String() }
