// SPDX-License-Identifier: MIT
package lexer

type (
	// state is the mutable scan context threaded through the rule table.
	state struct {
		// regexOK is true while the scan expects an operand, making a
		// `/` open a match pattern instead of dividing, `%` & `*` read
		// as sigils instead of operators and `<…>` read as a handle.
		regexOK bool

		// pendingVars counts sigils awaiting a variable name; chained
		// dereference sigils stack before a single name resolves them.
		pendingVars int

		// flat suppresses keyword & quote-like recognition for the next
		// word so hash keys like `{q}` stay barewords. It survives
		// whitespace, comments and an opening curly.
		flat bool

		// podOK is true at offset zero & after every vertical-space
		// token, gating documentation-block recognition to line starts.
		podOK bool

		// protoExpected is raised by the `sub` keyword; the next word
		// names the sub & a following parenthesized span is its
		// prototype rather than a call.
		protoExpected bool

		// formatExpected is raised by the `format` keyword; the body is
		// consumed from the next line start.
		formatExpected bool

		depthRound  int
		depthCurly  int
		depthSquare int

		// heredocs queues `<<TERM` markers awaiting their bodies, in
		// declaration order.
		heredocs []heredoc
	}

	// heredoc pairs a pending terminator with the offset of its marker.
	heredoc struct {
		term   string
		offset int
	}
)

// newState initializes the scan context; an input's first offset is
// both an operand position & a line start.
func newState() state {
	return state{
		regexOK: true,
		podOK:   true,
	}
}

// pendingLine reports deferred work that must claim the next line
// start: a declared format body or a queued heredoc body.
func (s *state) pendingLine() bool {
	return s.formatExpected || len(s.heredocs) > 0
}
