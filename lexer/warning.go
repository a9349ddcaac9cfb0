// SPDX-License-Identifier: MIT
package lexer

import (
	"errors"
	"fmt"
)

type (
	// Warning records a recoverable scan defect at a rune offset.
	//
	// Warnings never abort a scan; the Lexer resynchronizes and carries
	// on so that a best-effort token stream is always produced.
	Warning struct {
		Offset int
		Err    error
	}
)

// Scan defects reported through Warnings.
var (
	ErrUnknownToken       = errors.New("unknown token")
	ErrUnterminated       = errors.New("unterminated construct")
	ErrBracketImbalance   = errors.New("bracket imbalance")
	ErrUnresolvedHeredoc  = errors.New("unresolved heredoc")
	ErrUnterminatedFormat = errors.New("unterminated format")
	ErrDanglingSigil      = errors.New("dangling sigil")
	ErrMaxDepth           = errors.New("delimiter nesting exceeds limit")
)

// String is the `fmt.Stringer` interface implementation for Warning.
func (w Warning) String() string { return fmt.Sprintf("offset %d: %v", w.Offset, w.Err) }
