// SPDX-License-Identifier: MIT
package perlscan

import (
	"fmt"

	"gitlab.com/fisherprime/perlscan/token"
)

type (
	// Strictness selects how much of a token stream a comparison
	// disregards; each level ignores everything its predecessors do.
	Strictness int
)

const (
	// StrictnessNone compares every token kind.
	StrictnessNone Strictness = iota

	// StrictnessLayout additionally ignores comments, documentation
	// blocks, whitespace, plain quoted strings & statement ends.
	StrictnessLayout

	// StrictnessRound additionally ignores round brackets.
	StrictnessRound

	// StrictnessQuoteLike additionally ignores heredocs & the
	// non-pattern q-family strings.
	StrictnessQuoteLike

	// StrictnessRadix additionally ignores hexadecimal & binary
	// literals.
	StrictnessRadix
)

// strictnessNames indexes the presentation of every Strictness level.
var strictnessNames = [...]string{
	StrictnessNone:      "none",
	StrictnessLayout:    "layout",
	StrictnessRound:     "round",
	StrictnessQuoteLike: "quote-like",
	StrictnessRadix:     "radix",
}

// Clamp bounds the Strictness to the defined levels.
func (s Strictness) Clamp() Strictness {
	switch {
	case s < StrictnessNone:
		return StrictnessNone
	case s > StrictnessRadix:
		return StrictnessRadix
	default:
		return s
	}
}

// IgnoreSet obtains the cumulative ignored-kind set for the level.
func (s Strictness) IgnoreSet() (ignore token.KindSet) {
	ignore = token.NewKindSet()

	if s >= StrictnessLayout {
		ignore.Add(
			token.KindComment, token.KindPod,
			token.KindHorizontalSpace, token.KindVerticalSpace, token.KindOtherSpace,
			token.KindSingleString, token.KindDoubleString, token.KindBacktickString,
			token.KindStatementEnd,
		)
	}
	if s >= StrictnessRound {
		ignore.Add(token.KindOpenRound, token.KindCloseRound)
	}
	if s >= StrictnessQuoteLike {
		ignore.Add(
			token.KindHeredocBegin, token.KindHeredocBody,
			token.KindQString, token.KindQQString, token.KindQWString, token.KindQXString,
		)
	}
	if s >= StrictnessRadix {
		ignore.Add(token.KindHexNumber, token.KindBinaryNumber)
	}

	return
}

// String is the `fmt.Stringer` interface implementation for
// Strictness.
func (s Strictness) String() string {
	if s < StrictnessNone || int(s) >= len(strictnessNames) {
		return fmt.Sprintf("strictness(%d)", int(s))
	}

	return strictnessNames[s]
}
