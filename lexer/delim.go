// SPDX-License-Identifier: MIT
package lexer

import "fmt"

// delimiterPairs maps paired quote-like openers to their closers; any
// other delimiter closes on its own rune.
var delimiterPairs = map[rune]rune{
	'(': ')',
	'{': '}',
	'[': ']',
	'<': '>',
}

// matchBalanced advances from pos, the first content rune after an
// opening delimiter, to just past open's closing delimiter, returning
// the end offset.
//
// Paired delimiters nest; `\` escapes the next rune unless `\` is
// itself the delimiter. On exhausted input or nesting beyond
// Config.MaxDepth a warning is raised once, end of input is returned &
// ok is false.
func (l *Lexer) matchBalanced(pos int, open rune, depth int) (end int, ok bool) {
	if depth >= l.cfg.MaxDepth {
		l.warn(pos, fmt.Errorf("%w: %d", ErrMaxDepth, depth))
		end = len(l.src)
		return
	}

	closer, paired := delimiterPairs[open]
	if !paired {
		closer = open
	}

	for index := pos; index < len(l.src); index++ {
		switch r := l.src[index]; {
		case r == '\\' && open != '\\':
			index++
		case paired && r == open:
			nested, nestedOK := l.matchBalanced(index+1, open, depth+1)
			if !nestedOK {
				end = nested
				return
			}
			index = nested - 1
		case r == closer:
			end = index + 1
			ok = true
			return
		}
	}

	// Only the frame that hits end of input warns; callers unwinding on
	// ok == false stay silent.
	l.warn(pos-1, fmt.Errorf("%w: delimiter %q", ErrUnterminated, string(open)))
	end = len(l.src)

	return
}
