// SPDX-License-Identifier: MIT
package token

import "strings"

type (
	// Stream couples scanned [Token]s with the source text they index
	// into.
	//
	// Tokens are appended in source order; spans never overlap and,
	// barring unscannable runes, tile the whole input.
	Stream struct {
		src    []rune
		tokens []Token
	}
)

// NewStream initializes an empty Stream over input.
func NewStream(input string) *Stream {
	return &Stream{src: []rune(input)}
}

// Append records a Token at the end of the Stream.
func (s *Stream) Append(t Token) { s.tokens = append(s.tokens, t) }

// Len retrieves the number of Tokens recorded.
func (s *Stream) Len() int { return len(s.tokens) }

// At retrieves the Token at index.
func (s *Stream) At(index int) Token { return s.tokens[index] }

// Tokens retrieves the underlying Token slice; callers must not modify
// it.
func (s *Stream) Tokens() []Token { return s.tokens }

// Kinds projects the Stream onto its [Kind] sequence.
func (s *Stream) Kinds() (kinds KindSlice) {
	kinds = make(KindSlice, len(s.tokens))
	for index := range s.tokens {
		kinds[index] = s.tokens[index].Kind
	}

	return
}

// Text retrieves the source text spanned by t.
func (s *Stream) Text(t Token) string { return string(s.src[t.Start:t.End]) }

// Source retrieves the full source text backing the Stream.
func (s *Stream) Source() string { return string(s.src) }

// Runes retrieves the backing rune slice; callers must not modify it.
func (s *Stream) Runes() []rune { return s.src }

// String is the `fmt.Stringer` interface implementation for Stream.
func (s *Stream) String() string {
	var buffer strings.Builder
	for index := range s.tokens {
		if index > 0 {
			buffer.WriteString(" ")
		}
		buffer.WriteString(s.tokens[index].String())
	}

	return buffer.String()
}
