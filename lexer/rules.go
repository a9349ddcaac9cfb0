// SPDX-License-Identifier: MIT
package lexer

import (
	"fmt"
	"unicode"

	"gitlab.com/fisherprime/perlscan/token"
)

type (
	// rule pairs a scan function with a name for debug traces.
	rule struct {
		name string
		scan func(*Lexer) bool
	}
)

// scanRules is evaluated top-down at every cursor position; earlier
// entries outrank later ones, settling overlaps such as `<<` (heredoc
// marker before shift) & `(` (prototype before plain bracket).
var scanRules = [...]rule{
	{"whitespace", (*Lexer).scanWhitespace},
	{"comment", (*Lexer).scanComment},
	{"sigil", (*Lexer).scanSigil},
	{"var-name", (*Lexer).scanVarName},
	{"prototype", (*Lexer).scanPrototype},
	{"bracket", (*Lexer).scanBracket},
	{"quote", (*Lexer).scanQuote},
	{"quote-like", (*Lexer).scanQuoteLike},
	{"pattern", (*Lexer).scanPattern},
	{"number", (*Lexer).scanNumber},
	{"keyword", (*Lexer).scanKeyword},
	{"heredoc-begin", (*Lexer).scanHeredocBegin},
	{"file-test", (*Lexer).scanFileTest},
	{"angle-read", (*Lexer).scanAngleRead},
	{"operator", (*Lexer).scanOperator},
	{"bareword", (*Lexer).scanBareword},
}

// scanWhitespace captures a run of one spacing class.
//
// A vertical run stops past its first line break while a heredoc or
// format body is queued, so the body scan receives its line start.
func (l *Lexer) scanWhitespace() (matched bool) {
	start := l.pos

	switch r := l.peek(); {
	case isHorizontalSpace(r):
		for isHorizontalSpace(l.peek()) {
			l.pos++
		}
		l.emit(token.KindHorizontalSpace, start)
	case isVerticalSpace(r):
		for isVerticalSpace(l.peek()) {
			newline := l.peek() == '\n'
			l.pos++

			if newline && l.state.pendingLine() {
				break
			}
		}
		l.emit(token.KindVerticalSpace, start)
		l.state.podOK = true
	case isOtherSpace(r):
		for isOtherSpace(l.peek()) {
			l.pos++
		}
		l.emit(token.KindOtherSpace, start)
	default:
		return
	}

	matched = true
	return
}

// scanComment captures `#` through end of line.
func (l *Lexer) scanComment() (matched bool) {
	if l.peek() != '#' {
		return
	}

	start := l.pos
	l.lineEnd()
	l.emit(token.KindComment, start)

	matched = true
	return
}

// scanSigil captures a variable sign, folding in the `$#` last-index
// form & single-rune punctuation variable names.
//
// `%` & `*` only read as signs in operand position; elsewhere they are
// the modulus & multiplication operators.
func (l *Lexer) scanSigil() (matched bool) {
	r := l.peek()

	var kind token.Kind
	switch r {
	case '$':
		kind = token.KindScalarSign
	case '@':
		kind = token.KindArraySign
	case '%':
		if !l.state.regexOK {
			return
		}
		kind = token.KindHashSign
	case '*':
		if !l.state.regexOK {
			return
		}
		kind = token.KindGlobSign
	default:
		return
	}

	next := l.peekAt(1)
	if !sigilOperand(r, next) {
		return
	}

	start := l.pos
	l.pos++

	// `$#array` addresses a last index; the `#` rides on the sign so it
	// never opens a comment.
	if r == '$' && next == '#' && (isWord(l.peekAt(1)) || l.peekAt(1) == '{' || l.peekAt(1) == '$') {
		l.pos++
	}

	l.emit(kind, start)

	l.state.flat = false
	l.state.regexOK = false

	switch next = l.peek(); {
	case next == '{':
		// Braced form: the block supplies the name.
		l.state.flat = true
	case next == '$' && (isWord(l.peekAt(1)) || l.peekAt(1) == '{' || l.peekAt(1) == '$'):
		// Chained dereference; the inner sign is scanned next pass.
		l.state.pendingVars++
	case r == '$' && next == '^' && isWord(l.peekAt(1)):
		// Caret variable, e.g. `$^W`.
		nameStart := l.pos
		l.pos += 2
		l.emit(token.KindSpecialVarName, nameStart)
	case isWord(next):
		l.state.pendingVars++
	case next != emptyRune && !unicode.IsSpace(next):
		// Punctuation variable: `$!`, `$$`, `@-`, …
		nameStart := l.pos
		l.pos++
		l.emit(token.KindSpecialVarName, nameStart)
	default:
		// Sign with its name yet to come; finish() reports it if none
		// ever does.
		l.state.pendingVars++
	}

	matched = true
	return
}

// sigilOperand reports whether next can begin the operand of sigil: a
// name, a braced block, a chained scalar dereference or a punctuation
// special.
func sigilOperand(sigil, next rune) bool {
	switch {
	case next == emptyRune:
		// Commit so the dangling sign surfaces in finish().
		return true
	case isWord(next) || next == '{' || next == '$':
		return true
	case sigil == '$':
		// Scalars admit every punctuation special: $!, $", $;, …
		return true
	case sigil == '@' || sigil == '%':
		return next == '+' || next == '-' || next == '!'
	default:
		return false
	}
}

// scanVarName captures the name resolving one or more pending signs.
func (l *Lexer) scanVarName() (matched bool) {
	if l.state.pendingVars < 1 || !isWord(l.peek()) {
		return
	}

	start := l.pos
	l.wordEnd()
	l.emit(token.KindVarName, start)

	l.state.pendingVars = 0
	l.state.flat = false
	l.state.regexOK = false

	if l.peek() == '{' {
		// `$h{key}` subscript: the key word is a plain string.
		l.state.flat = true
	}

	matched = true
	return
}

// scanPrototype captures the parenthesized span of a sub declaration.
func (l *Lexer) scanPrototype() (matched bool) {
	if !l.state.protoExpected || l.peek() != '(' {
		return
	}

	start := l.pos
	l.pos, _ = l.matchBalanced(l.pos+1, '(', 0)
	l.emit(token.KindPrototype, start)

	l.state.protoExpected = false
	l.state.flat = false
	l.state.regexOK = false

	matched = true
	return
}

// scanBracket captures a single bracket, maintaining the per-class
// depth counters.
func (l *Lexer) scanBracket() (matched bool) {
	r := l.peek()

	var (
		kind token.Kind
		open bool
	)
	switch r {
	case '(':
		kind, open = token.KindOpenRound, true
		l.state.depthRound++
	case ')':
		kind = token.KindCloseRound
		l.state.depthRound = l.dropDepth(l.state.depthRound, "round")
	case '{':
		kind, open = token.KindOpenCurly, true
		l.state.depthCurly++
	case '}':
		kind = token.KindCloseCurly
		l.state.depthCurly = l.dropDepth(l.state.depthCurly, "curly")
	case '[':
		kind, open = token.KindOpenSquare, true
		l.state.depthSquare++
	case ']':
		kind = token.KindCloseSquare
		l.state.depthSquare = l.dropDepth(l.state.depthSquare, "square")
	default:
		return
	}

	start := l.pos
	l.pos++
	l.emit(kind, start)

	if r == '{' {
		// An opening curly both ends a sub declaration head & protects
		// a following flat word (hash key).
		l.state.protoExpected = false
	} else {
		l.state.flat = false
	}
	// A chained subscript rearms key protection: `$h{a}{s}` must not
	// read `s` as an operator.
	if (r == '}' || r == ']') && l.peek() == '{' {
		l.state.flat = true
	}
	l.state.regexOK = open

	matched = true
	return
}

// dropDepth decrements a bracket depth counter, clamping & warning on
// an unmatched close.
func (l *Lexer) dropDepth(depth int, class string) int {
	if depth--; depth < 0 {
		l.warn(l.pos, fmt.Errorf("%w: unmatched %s close", ErrBracketImbalance, class))
		depth = 0
	}

	return depth
}

// scanQuote captures a plain single-, double- or backtick-quoted
// string.
func (l *Lexer) scanQuote() (matched bool) {
	r := l.peek()
	if !isQuote(r) {
		return
	}

	var kind token.Kind
	switch r {
	case '\'':
		kind = token.KindSingleString
	case '"':
		kind = token.KindDoubleString
	default:
		kind = token.KindBacktickString
	}

	start := l.pos
	l.pos, _ = l.matchBalanced(l.pos+1, r, 0)
	l.emit(kind, start)

	l.state.flat = false
	l.state.regexOK = false

	matched = true
	return
}

// scanQuoteLike captures the q/qq/qw/qx/qr/m/s/tr/y family with an
// arbitrary delimiter.
func (l *Lexer) scanQuoteLike() (matched bool) {
	if l.state.flat || !isWordStart(l.peek()) {
		return
	}

	var wordLen int
	switch {
	case isWord(l.peekAt(1)) && !isWord(l.peekAt(2)):
		wordLen = 2
	case !isWord(l.peekAt(1)):
		wordLen = 1
	default:
		return
	}

	op, found := quoteLikeOps[string(l.src[l.pos:l.pos+wordLen])]
	if !found {
		return
	}

	// Horizontal space may precede a punctuation delimiter, except `#`
	// which would open a comment there.
	off := wordLen
	for isHorizontalSpace(l.peekAt(off)) {
		off++
	}

	delim := l.peekAt(off)
	switch {
	case delim == emptyRune || isWord(delim) || unicode.IsSpace(delim):
		return
	case delim == '=' && l.peekAt(off+1) == '>':
		// `q => 1` style hash key, not a quote operation.
		return
	case delim == ')' || delim == '}' || delim == ']':
		// A lone closing bracket reads as a subscript or block closer,
		// never as a delimiter.
		return
	case delim == '#' && off > wordLen:
		return
	}

	start := l.pos
	l.pos += off + 1

	end, ok := l.matchBalanced(l.pos, delim, 0)
	l.pos = end
	if ok && op.spans == 2 {
		ok = l.scanReplacement(delim)
	}
	if ok && op.flags {
		for isAlpha(l.peek()) {
			l.pos++
		}
	}

	l.emit(op.kind, start)
	l.state.regexOK = false

	matched = true
	return
}

// scanReplacement captures the second span of s///, tr/// & y///.
//
// A paired first delimiter opens a fresh pair, whitespace allowed in
// between; a same-rune delimiter continues straight from the middle
// occurrence.
func (l *Lexer) scanReplacement(delim rune) (ok bool) {
	if _, paired := delimiterPairs[delim]; !paired {
		l.pos, ok = l.matchBalanced(l.pos, delim, 0)
		return
	}

	mark := l.pos
	for unicode.IsSpace(l.peek()) {
		l.pos++
	}

	next := l.peek()
	if next == emptyRune || isWord(next) {
		l.pos = mark
		l.warn(mark, fmt.Errorf("%w: replacement part", ErrUnterminated))
		return
	}

	l.pos++
	l.pos, ok = l.matchBalanced(l.pos, next, 0)

	return
}

// scanPattern captures a bare /…/ match in operand position.
func (l *Lexer) scanPattern() (matched bool) {
	if l.peek() != '/' || !l.state.regexOK {
		return
	}

	start := l.pos

	var ok bool
	if l.pos, ok = l.matchBalanced(l.pos+1, '/', 0); ok {
		for isAlpha(l.peek()) {
			l.pos++
		}
	}
	l.emit(token.KindMatchRegex, start)

	l.state.flat = false
	l.state.regexOK = false

	matched = true
	return
}

// scanNumber captures decimal, hexadecimal, binary & version-string
// literals.
func (l *Lexer) scanNumber() (matched bool) {
	r := l.peek()
	start := l.pos

	switch {
	case r == 'v' && isDigit(l.peekAt(1)):
		// v-string; at least one dot group keeps `v1` a bareword.
		off := 1
		for isDigit(l.peekAt(off)) {
			off++
		}
		if l.peekAt(off) != '.' || !isDigit(l.peekAt(off+1)) {
			return
		}

		l.pos += off
		for l.peek() == '.' && isDigit(l.peekAt(1)) {
			l.pos++
			l.scanDigitRun()
		}
		l.emit(token.KindVersionString, start)
	case isDigit(r):
		if r == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') && isHexDigit(l.peekAt(2)) {
			l.pos += 2
			for isHexDigit(l.peek()) || (l.peek() == '_' && isHexDigit(l.peekAt(1))) {
				l.pos++
			}
			l.emit(token.KindHexNumber, start)
			break
		}
		if r == '0' && (l.peekAt(1) == 'b' || l.peekAt(1) == 'B') && isBinaryDigit(l.peekAt(2)) {
			l.pos += 2
			for isBinaryDigit(l.peek()) || (l.peek() == '_' && isBinaryDigit(l.peekAt(1))) {
				l.pos++
			}
			l.emit(token.KindBinaryNumber, start)
			break
		}

		l.scanDigitRun()

		if l.peek() == '.' && isDigit(l.peekAt(1)) {
			l.pos++
			l.scanDigitRun()

			// Two or more dot groups read as a bare version string.
			if l.peek() == '.' && isDigit(l.peekAt(1)) {
				for l.peek() == '.' && isDigit(l.peekAt(1)) {
					l.pos++
					l.scanDigitRun()
				}

				l.emit(token.KindVersionString, start)
				break
			}
		}

		l.scanExponent()
		l.emit(token.KindNumber, start)
	case r == '.' && isDigit(l.peekAt(1)) && l.state.regexOK:
		// Leading-dot fraction in operand position; elsewhere `.`
		// concatenates.
		l.pos++
		l.scanDigitRun()
		l.scanExponent()
		l.emit(token.KindNumber, start)
	default:
		return
	}

	l.state.flat = false
	l.state.regexOK = false

	matched = true
	return
}

// scanDigitRun consumes digits with embedded underscore separators.
func (l *Lexer) scanDigitRun() {
	for isDigit(l.peek()) || (l.peek() == '_' && isDigit(l.peekAt(1))) {
		l.pos++
	}
}

// scanExponent consumes a scientific-notation suffix when present.
func (l *Lexer) scanExponent() {
	if r := l.peek(); r != 'e' && r != 'E' {
		return
	}

	off := 1
	if l.peekAt(off) == '+' || l.peekAt(off) == '-' {
		off++
	}
	if !isDigit(l.peekAt(off)) {
		return
	}

	l.pos += off
	l.scanDigitRun()
}

// scanKeyword captures a reserved word, raising the declaration flags
// for `sub` & `format`.
func (l *Lexer) scanKeyword() (matched bool) {
	if l.state.flat || !isWordStart(l.peek()) {
		return
	}

	// `x=` repeat-assign is one operator; plain `x` stays a keyword.
	if l.peek() == 'x' && l.peekAt(1) == '=' && l.peekAt(2) != '=' {
		start := l.pos
		l.pos += 2
		l.emit(token.KindAssignOperator, start)

		l.state.regexOK = true
		matched = true
		return
	}

	start := l.pos
	word := l.wordEnd()
	if !keywords[word] {
		l.pos = start
		return
	}

	l.emit(token.KindKeyword, start)

	switch word {
	case "sub":
		l.state.protoExpected = true
	case "format":
		l.state.formatExpected = true
	}

	l.state.regexOK = true
	matched = true
	return
}

// scanHeredocBegin captures a `<<TERM` marker & queues its body for
// the next line start.
//
// The terminator follows `<<` immediately: a word, optionally
// backslashed, or a quoted string. Anything else leaves `<<` to the
// shift operator.
func (l *Lexer) scanHeredocBegin() (matched bool) {
	if l.peek() != '<' || l.peekAt(1) != '<' {
		return
	}

	off := 2
	if l.peekAt(off) == '\\' && isWordStart(l.peekAt(off+1)) {
		off++
	}

	var term string
	switch r := l.peekAt(off); {
	case isWordStart(r):
		wordAt := off
		for isWord(l.peekAt(off)) {
			off++
		}
		term = string(l.src[l.pos+wordAt : l.pos+off])
	case isQuote(r):
		contentAt := off + 1
		scan := contentAt
		for l.peekAt(scan) != r {
			if c := l.peekAt(scan); c == emptyRune || c == '\n' {
				// No closing quote on the line: not a heredoc marker.
				return
			}
			scan++
		}

		term = string(l.src[l.pos+contentAt : l.pos+scan])
		off = scan + 1
	default:
		return
	}

	start := l.pos
	l.pos += off
	l.emit(token.KindHeredocBegin, start)

	l.state.heredocs = append(l.state.heredocs, heredoc{term: term, offset: start})
	l.state.podOK = false
	l.state.regexOK = false
	l.state.flat = false

	matched = true
	return
}

// scanFileTest captures a `-X` file test in operand position.
func (l *Lexer) scanFileTest() (matched bool) {
	if l.peek() != '-' || !l.state.regexOK {
		return
	}
	if !isAlpha(l.peekAt(1)) || isWord(l.peekAt(2)) {
		return
	}

	start := l.pos
	l.pos += 2
	l.emit(token.KindFileTest, start)

	l.state.flat = false
	l.state.regexOK = true

	matched = true
	return
}

// scanAngleRead captures `<FH>`, `<$fh>` & `<>` reads in operand
// position; anything else between the angles leaves `<` to the
// comparison operators.
func (l *Lexer) scanAngleRead() (matched bool) {
	if l.peek() != '<' || !l.state.regexOK {
		return
	}

	off := 1
	if l.peekAt(off) == '$' {
		off++
	}
	for isWord(l.peekAt(off)) {
		off++
	}
	if l.peekAt(off) != '>' {
		return
	}

	start := l.pos
	l.pos += off + 1
	l.emit(token.KindFileHandle, start)

	l.state.flat = false
	l.state.regexOK = false

	matched = true
	return
}

// scanOperator captures the longest operator at the cursor.
func (l *Lexer) scanOperator() (matched bool) {
	length, kind := l.matchOperator()
	if length == 0 {
		return
	}

	start := l.pos
	l.pos += length
	l.emit(kind, start)

	l.state.flat = kind == token.KindDerefOperator
	if kind == token.KindStatementEnd {
		l.state.protoExpected = false
	}
	l.state.regexOK = true

	matched = true
	return
}

// matchOperator resolves the operator table at the cursor, longest
// spelling first.
func (l *Lexer) matchOperator() (length int, kind token.Kind) {
	var buffer [3]rune
	count := 0
	for ; count < len(buffer); count++ {
		r := l.peekAt(count)
		if r == emptyRune {
			break
		}
		buffer[count] = r
	}

	for length = count; length > 0; length-- {
		var found bool
		if kind, found = operatorTable[length-1][string(buffer[:length])]; found {
			return
		}
	}

	return
}

// scanBareword captures an unreserved word: a sub name right after
// `sub`, a standard handle name, or a plain bareword.
func (l *Lexer) scanBareword() (matched bool) {
	if !isWordStart(l.peek()) {
		return
	}

	start := l.pos
	word := l.wordEnd()

	kind := token.KindBareword
	switch {
	case l.state.protoExpected:
		kind = token.KindSubName
	case fileHandles[word]:
		kind = token.KindFileHandle
	}
	l.emit(kind, start)

	l.state.flat = false
	l.state.regexOK = false

	matched = true
	return
}
