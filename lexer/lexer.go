// SPDX-License-Identifier: MIT

// Package lexer captures Perl token spans from source text.
//
// The scan is context sensitive: a handful of flags carried in [state]
// settle the ambiguities Perl is notorious for, such as `/` opening a
// match pattern versus dividing, `%` starting a hash versus taking a
// modulus & `<<` queueing a heredoc versus shifting bits. Scanning
// never fails; defects surface as [Warning]s beside a best-effort
// stream.
package lexer

// REF: https://perldoc.perl.org/perlop
// REF: https://perldoc.perl.org/perldata
// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go

import (
	"context"
	"fmt"
	"unicode"

	"gitlab.com/fisherprime/perlscan/token"
)

type (
	// Lexer defines a type to capture Perl tokens from a string.
	Lexer struct {
		cfg *Config

		// src is the input as runes; pos indexes the rune under the
		// cursor.
		src []rune
		pos int

		stream *token.Stream

		state    state
		warnings []Warning
	}
)

// New creates a new scanner for the input string.
func New(cfg *Config, input string) *Lexer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.Validate()

	stream := token.NewStream(input)

	return &Lexer{
		cfg:    cfg,
		src:    stream.Runes(),
		stream: stream,
		state:  newState(),
	}
}

// Tokenize scans input under the default Config.
func Tokenize(ctx context.Context, input string) (*token.Stream, []Warning) {
	return New(nil, input).Run(ctx)
}

// Run scans the whole input, returning the token stream & any warnings
// raised along the way.
//
// The stream's spans are emitted in source order and, unscannable runes
// aside, tile the input; a zero-width end-of-input token closes the
// stream. Run is a one-shot operation.
func (l *Lexer) Run(ctx context.Context) (*token.Stream, []Warning) {
	for !l.atEnd() {
		select {
		case <-ctx.Done():
			l.warn(l.pos, ctx.Err())
			return l.stream, l.warnings
		default:
		}

		// Deferred multi-line bodies & documentation blocks claim line
		// starts before the rule table runs.
		if l.atLineStart() && l.scanPending() {
			continue
		}

		if l.step() {
			continue
		}

		// Resynchronize past a rune no rule claims.
		l.warn(l.pos, fmt.Errorf("%w: %q", ErrUnknownToken, string(l.peek())))
		l.pos++
	}

	l.finish()

	return l.stream, l.warnings
}

// Warnings obtains the warnings raised so far.
func (l *Lexer) Warnings() []Warning { return l.warnings }

// step runs the rule table at the cursor; the first rule to claim the
// position wins.
func (l *Lexer) step() (matched bool) {
	for index := range scanRules {
		if !scanRules[index].scan(l) {
			continue
		}

		if l.cfg.Debug {
			l.cfg.Logger.Debugf("lexer rule %s matched through %d", scanRules[index].name, l.pos)
		}

		matched = true
		break
	}

	return
}

// finish closes the stream with a zero-width end-of-input token &
// reports scan context left unresolved at end of input.
func (l *Lexer) finish() {
	l.stream.Append(token.Token{Kind: token.KindEndOfInput, Start: l.pos, End: l.pos})

	if l.state.depthRound != 0 {
		l.warn(l.pos, fmt.Errorf("%w: round, depth %d", ErrBracketImbalance, l.state.depthRound))
	}
	if l.state.depthCurly != 0 {
		l.warn(l.pos, fmt.Errorf("%w: curly, depth %d", ErrBracketImbalance, l.state.depthCurly))
	}
	if l.state.depthSquare != 0 {
		l.warn(l.pos, fmt.Errorf("%w: square, depth %d", ErrBracketImbalance, l.state.depthSquare))
	}

	for _, h := range l.state.heredocs {
		l.warn(h.offset, fmt.Errorf("%w: %q", ErrUnresolvedHeredoc, h.term))
	}

	if l.state.formatExpected {
		l.warn(l.pos, ErrUnterminatedFormat)
	}

	if l.state.pendingVars > 0 {
		l.warn(l.pos, fmt.Errorf("%w: %d unresolved", ErrDanglingSigil, l.state.pendingVars))
	}
}

// emit records a token spanning [start, l.pos).
func (l *Lexer) emit(kind token.Kind, start int) {
	if l.cfg.Debug {
		// Debug operation makes this operation un-inlinable.
		l.cfg.Logger.Debugf("lexer emit %s: %q", kind, string(l.src[start:l.pos]))
	}

	l.stream.Append(token.Token{Kind: kind, Start: start, End: l.pos})
}

// warn records a recoverable defect at offset.
func (l *Lexer) warn(offset int, err error) {
	w := Warning{Offset: offset, Err: err}
	l.warnings = append(l.warnings, w)

	if l.cfg.Debug {
		l.cfg.Logger.Debug("lexer warning: ", w)
	}
}

// atEnd reports cursor exhaustion.
func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

// atLineStart reports the cursor sitting at offset zero or just past a
// line break.
func (l *Lexer) atLineStart() bool { return l.pos == 0 || l.src[l.pos-1] == '\n' }

// peek returns the rune under the cursor, emptyRune at end of input.
func (l *Lexer) peek() rune { return l.peekAt(0) }

// peekAt returns the rune offset runes past the cursor, emptyRune past
// end of input.
func (l *Lexer) peekAt(offset int) (r rune) {
	if index := l.pos + offset; index < len(l.src) {
		r = l.src[index]
	}

	return
}

// lineEnd advances the cursor to the next line break or end of input,
// returning the text crossed.
func (l *Lexer) lineEnd() string {
	start := l.pos
	for !l.atEnd() && l.peek() != '\n' {
		l.pos++
	}

	return string(l.src[start:l.pos])
}

// wordEnd advances the cursor over a word run, `::` package separators
// included, returning the text crossed.
func (l *Lexer) wordEnd() string {
	start := l.pos
	for {
		switch {
		case isWord(l.peek()):
			l.pos++
		case l.peek() == ':' && l.peekAt(1) == ':' && isWord(l.peekAt(2)):
			l.pos += 2
		default:
			return string(l.src[start:l.pos])
		}
	}
}

// Improves on performance compared to ORs.
//
// Reduces function cost improving probability of inlining.
var (
	horizontalSpace = [256]bool{
		' ':  true,
		'\t': true,
	}

	verticalSpace = [256]bool{
		'\n': true,
		'\r': true,
	}

	quoteRunes = [256]bool{
		'\'': true,
		'"':  true,
		'`':  true,
	}
)

// isHorizontalSpace return true for space or tab.
func isHorizontalSpace(r rune) bool { return r < 256 && horizontalSpace[r] }

// isVerticalSpace return true for newline & carriage return.
func isVerticalSpace(r rune) bool { return r < 256 && verticalSpace[r] }

// isOtherSpace return true for spacing outside the ASCII horizontal &
// vertical classes.
func isOtherSpace(r rune) bool {
	return unicode.IsSpace(r) && !isHorizontalSpace(r) && !isVerticalSpace(r)
}

// isQuote return true for the plain string openers.
func isQuote(r rune) bool { return r < 256 && quoteRunes[r] }

// isWord return true for an identifier rune.
func isWord(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

// isWordStart return true for an identifier-opening rune.
func isWordStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

// isDigit return true for a decimal digit.
func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// isAlpha return true for an ASCII letter.
func isAlpha(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }

// isHexDigit return true for a hexadecimal digit.
func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// isBinaryDigit return true for a binary digit.
func isBinaryDigit(r rune) bool { return r == '0' || r == '1' }
