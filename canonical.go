// SPDX-License-Identifier: MIT
package perlscan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type (
	// Canonicalizer rewrites Perl source into a normalized rendition
	// for comparison against the original.
	Canonicalizer interface {
		Canonicalize(ctx context.Context, source string) (string, error)
	}

	// CanonicalizerFunc adapts a function to the Canonicalizer
	// interface.
	CanonicalizerFunc func(ctx context.Context, source string) (string, error)

	// CommandCanonicalizer canonicalizes by piping source through an
	// external command.
	CommandCanonicalizer struct {
		Path string
		Args []string
	}
)

// ErrCanonicalize indicates a failed canonicalization run.
var ErrCanonicalize = errors.New("canonicalize failure")

// Canonicalize is the Canonicalizer interface implementation for
// CanonicalizerFunc.
func (f CanonicalizerFunc) Canonicalize(ctx context.Context, source string) (string, error) {
	return f(ctx, source)
}

// NewCommandCanonicalizer instantiates a CommandCanonicalizer.
func NewCommandCanonicalizer(path string, args ...string) *CommandCanonicalizer {
	return &CommandCanonicalizer{Path: path, Args: args}
}

// DefaultCanonicalizer pipes source through the system perl's Deparse
// backend, the reference normalizer for obfuscated input.
func DefaultCanonicalizer() Canonicalizer {
	return NewCommandCanonicalizer("perl", "-MO=Deparse")
}

// Canonicalize runs the command with source on stdin, returning its
// stdout.
//
// Deparse chatters on stderr even on success; stderr is only consulted
// when the run fails.
func (c *CommandCanonicalizer) Canonicalize(ctx context.Context, source string) (output string, err error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = strings.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err = cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		err = fmt.Errorf("%w: %s: %s", ErrCanonicalize, c.Path, detail)

		return
	}

	output = stdout.String()
	return
}

// String is the `fmt.Stringer` interface implementation for
// CommandCanonicalizer.
func (c *CommandCanonicalizer) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}
