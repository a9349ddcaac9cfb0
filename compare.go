// SPDX-License-Identifier: MIT
package perlscan

import (
	"gitlab.com/fisherprime/perlscan/token"
)

type (
	// Result captures one stream comparison.
	Result struct {
		// Score is 1 - 2·Common/(LenA+LenB): 0 for filtered streams
		// that agree, 1 for fully disjoint ones. Two empty streams
		// score 0.
		Score float64

		// Common is the longest-common-subsequence length of the
		// filtered kind sequences.
		Common int

		// LenA & LenB are the filtered sequence lengths.
		LenA int
		LenB int
	}
)

// Filter projects a stream onto its kind sequence, dropping members of
// ignore.
func Filter(stream *token.Stream, ignore token.KindSet) (kinds token.KindSlice) {
	kinds = make(token.KindSlice, 0, stream.Len())
	for index := 0; index < stream.Len(); index++ {
		if k := stream.At(index).Kind; !ignore.Has(k) {
			kinds = append(kinds, k)
		}
	}

	return
}

// Counts tallies kind occurrences outside ignore.
func Counts(stream *token.Stream, ignore token.KindSet) (counts map[token.Kind]int) {
	counts = make(map[token.Kind]int)
	for index := 0; index < stream.Len(); index++ {
		if k := stream.At(index).Kind; !ignore.Has(k) {
			counts[k]++
		}
	}

	return
}

// LCS computes the longest-common-subsequence length of two kind
// sequences.
//
// The dynamic program keeps two rows over the shorter sequence, so
// memory stays linear however long the inputs are.
func LCS(a, b token.KindSlice) (length int) {
	if len(a) < 1 || len(b) < 1 {
		return
	}

	if len(b) > len(a) {
		a, b = b, a
	}

	previous := make([]int, len(b)+1)
	current := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				current[j] = previous[j-1] + 1
			case previous[j] >= current[j-1]:
				current[j] = previous[j]
			default:
				current[j] = current[j-1]
			}
		}

		previous, current = current, previous
	}

	length = previous[len(b)]
	return
}

// Compare filters both streams by the Strictness ignore set & scores
// their kind alignment.
func Compare(a, b *token.Stream, strictness Strictness) (resl Result) {
	ignore := strictness.Clamp().IgnoreSet()

	ka := Filter(a, ignore)
	kb := Filter(b, ignore)

	resl.LenA, resl.LenB = len(ka), len(kb)
	resl.Common = LCS(ka, kb)

	if total := resl.LenA + resl.LenB; total > 0 {
		resl.Score = 1 - float64(2*resl.Common)/float64(total)
	}

	return
}
