// SPDX-License-Identifier: MIT
package lexer

import (
	"fmt"
	"unicode"

	"gitlab.com/fisherprime/perlscan/token"
)

// scanPending claims a line start for deferred multi-line constructs:
// a declared format body first, queued heredoc bodies next, then a
// documentation block opening at the margin.
func (l *Lexer) scanPending() (matched bool) {
	switch {
	case l.state.formatExpected:
		l.scanFormatBody()
	case len(l.state.heredocs) > 0:
		l.scanHeredocBody()
	case l.state.podOK && l.peek() == '=' && unicode.IsLetter(l.peekAt(1)):
		l.scanPod()
	default:
		return
	}

	matched = true
	return
}

// scanHeredocBody captures the earliest queued heredoc body through
// its terminator line, the trailing line break excluded.
//
// Bodies resolve in marker declaration order.
func (l *Lexer) scanHeredocBody() {
	h := l.state.heredocs[0]
	l.state.heredocs = l.state.heredocs[1:]

	start := l.pos
	for {
		if line := l.lineEnd(); line == h.term {
			break
		}
		if l.atEnd() {
			l.warn(h.offset, fmt.Errorf("%w: heredoc %q", ErrUnterminated, h.term))
			break
		}

		l.pos++ // cross the line break
	}

	l.emit(token.KindHeredocBody, start)
}

// scanFormatBody captures a format body through its lone-dot line.
func (l *Lexer) scanFormatBody() {
	l.state.formatExpected = false

	start := l.pos
	for {
		if line := l.lineEnd(); line == "." {
			break
		}
		if l.atEnd() {
			l.warn(start, fmt.Errorf("%w: format body", ErrUnterminated))
			break
		}

		l.pos++
	}

	l.emit(token.KindFormat, start)
}

// scanPod captures a documentation block from its `=word` line through
// the line reading exactly `=cut`, or end of input.
func (l *Lexer) scanPod() {
	start := l.pos
	for {
		if line := l.lineEnd(); line == "=cut" {
			break
		}
		if l.atEnd() {
			l.warn(start, fmt.Errorf("%w: pod block", ErrUnterminated))
			break
		}

		l.pos++
	}

	l.emit(token.KindPod, start)
}
