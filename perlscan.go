// SPDX-License-Identifier: MIT

// Package perlscan scores how far Perl source strays from its
// canonicalized rendition by comparing token-kind streams.
//
// Tokenization lives in the lexer & token subpackages; this package
// filters the resulting kind sequences by a [Strictness] level, aligns
// them with a longest-common-subsequence pass & reduces the alignment
// to a single score: 0 for streams that agree, approaching 1 as they
// diverge.
package perlscan

import (
	"github.com/sirupsen/logrus"
)

var fLogger logrus.FieldLogger = logrus.NewEntry(logrus.New())

// SetLogger configures a logrus.FieldLogger for the package.
func SetLogger(l logrus.FieldLogger) { fLogger = l }
