// SPDX-License-Identifier: MIT
package token

import "fmt"

type (
	// Kind identifies the lexical class of a scanned span.
	Kind int

	// Token is a labeled span over the source text of its owning [Stream].
	//
	// Start & End are rune (code point) indices, Start <= End. A Token is
	// only meaningful alongside the Stream that produced it.
	Token struct {
		Kind  Kind
		Start int
		End   int
	}
)

// Token kinds, grouped by lexical family.
const (
	KindNone Kind = iota // Zero value; never emitted.

	KindHorizontalSpace // Run of spaces & tabs.
	KindVerticalSpace   // Run of line breaks.
	KindOtherSpace      // Form feeds & other unicode spacing.
	KindComment         // `#` to end of line.
	KindPod             // Documentation block, `=x` .. `=cut`.
	KindEndOfInput      // Zero-width end marker.

	KindScalarSign // `$`, also `$#`.
	KindArraySign  // `@`.
	KindHashSign   // `%` in operand position.
	KindGlobSign   // `*` in operand position.

	KindVarName        // Name following a sigil.
	KindSpecialVarName // Punctuation variable name, e.g. the `_` of `$_` family specials.

	KindOpenRound
	KindCloseRound
	KindOpenCurly
	KindCloseCurly
	KindOpenSquare
	KindCloseSquare

	KindSingleString   // `'…'`.
	KindDoubleString   // `"…"`.
	KindBacktickString // backtick command string.

	KindQString  // q{…}.
	KindQQString // qq{…}.
	KindQWString // qw{…}.
	KindQXString // qx{…}.
	KindQRString // qr{…}.

	KindMatchRegex // m{…} or bare /…/.
	KindSubstRegex // s{…}{…}.
	KindTransRegex // tr{…}{…} or y{…}{…}.

	KindHeredocBegin // `<<TERM` marker.
	KindHeredocBody  // Deferred heredoc body through its terminator line.

	KindNumber        // Decimal, possibly fractional/scientific.
	KindHexNumber     // `0x…`.
	KindBinaryNumber  // `0b…`.
	KindVersionString // `v1.2.3` or `1.2.3`.

	KindKeyword
	KindBareword
	KindSubName    // Bareword right after `sub`.
	KindPrototype  // Parenthesized span after a sub declaration.
	KindFileTest   // `-e` & friends in operand position.
	KindFileHandle // `<FH>`, `<>` reads & the standard handle barewords.

	KindOperator
	KindAssignOperator
	KindDerefOperator // `->`.
	KindStatementEnd  // `;`.
	KindComma
	KindFatComma // `=>`.

	KindFormat // Deferred `format` body through its lone-dot line.
)

// kindNames indexes the snake_case presentation of every Kind.
var kindNames = [...]string{
	KindNone:            "none",
	KindHorizontalSpace: "horizontal_space",
	KindVerticalSpace:   "vertical_space",
	KindOtherSpace:      "other_space",
	KindComment:         "comment",
	KindPod:             "pod",
	KindEndOfInput:      "end_of_input",
	KindScalarSign:      "scalar_sign",
	KindArraySign:       "array_sign",
	KindHashSign:        "hash_sign",
	KindGlobSign:        "glob_sign",
	KindVarName:         "var_name",
	KindSpecialVarName:  "special_var_name",
	KindOpenRound:       "open_round",
	KindCloseRound:      "close_round",
	KindOpenCurly:       "open_curly",
	KindCloseCurly:      "close_curly",
	KindOpenSquare:      "open_square",
	KindCloseSquare:     "close_square",
	KindSingleString:    "single_quoted_string",
	KindDoubleString:    "double_quoted_string",
	KindBacktickString:  "backtick_string",
	KindQString:         "q_string",
	KindQQString:        "qq_string",
	KindQWString:        "qw_string",
	KindQXString:        "qx_string",
	KindQRString:        "qr_string",
	KindMatchRegex:      "match_regex",
	KindSubstRegex:      "substitution_regex",
	KindTransRegex:      "translation_regex",
	KindHeredocBegin:    "heredoc_begin",
	KindHeredocBody:     "heredoc_body",
	KindNumber:          "number",
	KindHexNumber:       "hex_number",
	KindBinaryNumber:    "binary_number",
	KindVersionString:   "version_string",
	KindKeyword:         "keyword",
	KindBareword:        "bareword",
	KindSubName:         "sub_name",
	KindPrototype:       "prototype",
	KindFileTest:        "file_test",
	KindFileHandle:      "file_handle",
	KindOperator:        "operator",
	KindAssignOperator:  "assignment_operator",
	KindDerefOperator:   "dereference_operator",
	KindStatementEnd:    "end_of_statement",
	KindComma:           "comma",
	KindFatComma:        "fat_comma",
	KindFormat:          "format",
}

// String is the `fmt.Stringer` interface implementation for Kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}

	return kindNames[k]
}

// Len retrieves the rune length of the Token's span.
func (t Token) Len() int { return t.End - t.Start }

// String is the `fmt.Stringer` interface implementation for Token.
func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Kind, t.Start, t.End)
}
