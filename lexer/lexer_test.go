// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/perlscan/token"
)

func TestTokenize(t *testing.T) {
	type args struct {
		ctx   context.Context
		input string
	}
	tests := []struct {
		name      string
		args      args
		want      token.KindSlice
		wantWarns int
	}{{
		name: "scalar assignment",
		args: args{context.Background(), "my $x = 1;\n"},
		want: token.KindSlice{
			token.KindKeyword, token.KindHorizontalSpace, token.KindScalarSign,
			token.KindVarName, token.KindHorizontalSpace, token.KindAssignOperator,
			token.KindHorizontalSpace, token.KindNumber, token.KindStatementEnd,
			token.KindVerticalSpace, token.KindEndOfInput,
		},
	}, {
		name: "divide then match",
		args: args{context.Background(), "my $n = $x / 2;\nsplit / /, $x;\n"},
		want: token.KindSlice{
			token.KindKeyword, token.KindHorizontalSpace, token.KindScalarSign,
			token.KindVarName, token.KindHorizontalSpace, token.KindAssignOperator,
			token.KindHorizontalSpace, token.KindScalarSign, token.KindVarName,
			token.KindHorizontalSpace, token.KindOperator, token.KindHorizontalSpace,
			token.KindNumber, token.KindStatementEnd, token.KindVerticalSpace,
			token.KindKeyword, token.KindHorizontalSpace, token.KindMatchRegex,
			token.KindComma, token.KindHorizontalSpace, token.KindScalarSign,
			token.KindVarName, token.KindStatementEnd, token.KindVerticalSpace,
			token.KindEndOfInput,
		},
	}, {
		name: "match after return",
		args: args{context.Background(), "return /ab+c/ if $ok;\n"},
		want: token.KindSlice{
			token.KindKeyword, token.KindHorizontalSpace, token.KindMatchRegex,
			token.KindHorizontalSpace, token.KindKeyword, token.KindHorizontalSpace,
			token.KindScalarSign, token.KindVarName, token.KindStatementEnd,
			token.KindVerticalSpace, token.KindEndOfInput,
		},
	}, {
		name: "match with hash delimiter",
		args: args{context.Background(), "m#a#;\n"},
		want: token.KindSlice{
			token.KindMatchRegex, token.KindStatementEnd, token.KindVerticalSpace,
			token.KindEndOfInput,
		},
	}, {
		name: "substitution with nested braces",
		args: args{context.Background(), "s{a{b}}{c}gi;\n"},
		want: token.KindSlice{
			token.KindSubstRegex, token.KindStatementEnd, token.KindVerticalSpace,
			token.KindEndOfInput,
		},
	}, {
		name: "substitution with spaced parts",
		args: args{context.Background(), "s {a} {b};\n"},
		want: token.KindSlice{
			token.KindSubstRegex, token.KindStatementEnd, token.KindVerticalSpace,
			token.KindEndOfInput,
		},
	}, {
		name: "translation",
		args: args{context.Background(), "tr/a-z/A-Z/;\n"},
		want: token.KindSlice{
			token.KindTransRegex, token.KindStatementEnd, token.KindVerticalSpace,
			token.KindEndOfInput,
		},
	}, {
		name: "bind operator match",
		args: args{context.Background(), "$x =~ m!foo!;\n"},
		want: token.KindSlice{
			token.KindScalarSign, token.KindVarName, token.KindHorizontalSpace,
			token.KindOperator, token.KindHorizontalSpace, token.KindMatchRegex,
			token.KindStatementEnd, token.KindVerticalSpace, token.KindEndOfInput,
		},
	}, {
		name: "heredocs resolve in declaration order",
		args: args{context.Background(), "print <<A, <<B;\n1\nA\n2\nB\n"},
		want: token.KindSlice{
			token.KindKeyword, token.KindHorizontalSpace, token.KindHeredocBegin,
			token.KindComma, token.KindHorizontalSpace, token.KindHeredocBegin,
			token.KindStatementEnd, token.KindVerticalSpace, token.KindHeredocBody,
			token.KindVerticalSpace, token.KindHeredocBody, token.KindVerticalSpace,
			token.KindEndOfInput,
		},
	}, {
		name: "pod block",
		args: args{context.Background(), "$a = 1;\n=pod\ndocs\n=cut\nprint;\n"},
		want: token.KindSlice{
			token.KindScalarSign, token.KindVarName, token.KindHorizontalSpace,
			token.KindAssignOperator, token.KindHorizontalSpace, token.KindNumber,
			token.KindStatementEnd, token.KindVerticalSpace, token.KindPod,
			token.KindVerticalSpace, token.KindKeyword, token.KindStatementEnd,
			token.KindVerticalSpace, token.KindEndOfInput,
		},
	}, {
		name: "format block",
		args: args{context.Background(), "format STDOUT =\n@<<<\n$name\n.\nprint;\n"},
		want: token.KindSlice{
			token.KindKeyword, token.KindHorizontalSpace, token.KindFileHandle,
			token.KindHorizontalSpace, token.KindAssignOperator, token.KindVerticalSpace,
			token.KindFormat, token.KindVerticalSpace, token.KindKeyword,
			token.KindStatementEnd, token.KindVerticalSpace, token.KindEndOfInput,
		},
	}, {
		name: "list and word quote",
		args: args{context.Background(), "my @list = qw(a b c);\n"},
		want: token.KindSlice{
			token.KindKeyword, token.KindHorizontalSpace, token.KindArraySign,
			token.KindVarName, token.KindHorizontalSpace, token.KindAssignOperator,
			token.KindHorizontalSpace, token.KindQWString, token.KindStatementEnd,
			token.KindVerticalSpace, token.KindEndOfInput,
		},
	}, {
		name: "hash literal",
		args: args{context.Background(), "%h = (a => 1);\n"},
		want: token.KindSlice{
			token.KindHashSign, token.KindVarName, token.KindHorizontalSpace,
			token.KindAssignOperator, token.KindHorizontalSpace, token.KindOpenRound,
			token.KindBareword, token.KindHorizontalSpace, token.KindFatComma,
			token.KindHorizontalSpace, token.KindNumber, token.KindCloseRound,
			token.KindStatementEnd, token.KindVerticalSpace, token.KindEndOfInput,
		},
	}, {
		name: "quote words as hash keys",
		args: args{context.Background(), "%h = (q => 1, s => 2);\n"},
		want: token.KindSlice{
			token.KindHashSign, token.KindVarName, token.KindHorizontalSpace,
			token.KindAssignOperator, token.KindHorizontalSpace, token.KindOpenRound,
			token.KindBareword, token.KindHorizontalSpace, token.KindFatComma,
			token.KindHorizontalSpace, token.KindNumber, token.KindComma,
			token.KindHorizontalSpace, token.KindBareword, token.KindHorizontalSpace,
			token.KindFatComma, token.KindHorizontalSpace, token.KindNumber,
			token.KindCloseRound, token.KindStatementEnd, token.KindVerticalSpace,
			token.KindEndOfInput,
		},
	}, {
		name: "modulus after value",
		args: args{context.Background(), "my $r = $x % 3;\n"},
		want: token.KindSlice{
			token.KindKeyword, token.KindHorizontalSpace, token.KindScalarSign,
			token.KindVarName, token.KindHorizontalSpace, token.KindAssignOperator,
			token.KindHorizontalSpace, token.KindScalarSign, token.KindVarName,
			token.KindHorizontalSpace, token.KindOperator, token.KindHorizontalSpace,
			token.KindNumber, token.KindStatementEnd, token.KindVerticalSpace,
			token.KindEndOfInput,
		},
	}, {
		name: "single span nested quote",
		args: args{context.Background(), "my $s = q{a{b}c};\n"},
		want: token.KindSlice{
			token.KindKeyword, token.KindHorizontalSpace, token.KindScalarSign,
			token.KindVarName, token.KindHorizontalSpace, token.KindAssignOperator,
			token.KindHorizontalSpace, token.KindQString, token.KindStatementEnd,
			token.KindVerticalSpace, token.KindEndOfInput,
		},
	}, {
		name: "comment to line end",
		args: args{context.Background(), "1; # note\n"},
		want: token.KindSlice{
			token.KindNumber, token.KindStatementEnd, token.KindHorizontalSpace,
			token.KindComment, token.KindVerticalSpace, token.KindEndOfInput,
		},
	}, {
		name: "numeric literals",
		args: args{context.Background(), "$v = 0x1F + 0b10 + 1_000 + 3.14e-2 + v5.10.1;\n"},
		want: token.KindSlice{
			token.KindScalarSign, token.KindVarName, token.KindHorizontalSpace,
			token.KindAssignOperator, token.KindHorizontalSpace, token.KindHexNumber,
			token.KindHorizontalSpace, token.KindOperator, token.KindHorizontalSpace,
			token.KindBinaryNumber, token.KindHorizontalSpace, token.KindOperator,
			token.KindHorizontalSpace, token.KindNumber, token.KindHorizontalSpace,
			token.KindOperator, token.KindHorizontalSpace, token.KindNumber,
			token.KindHorizontalSpace, token.KindOperator, token.KindHorizontalSpace,
			token.KindVersionString, token.KindStatementEnd, token.KindVerticalSpace,
			token.KindEndOfInput,
		},
	}, {
		name: "hash subscript keys stay flat",
		args: args{context.Background(), "$h{q}{s} = 1;\n"},
		want: token.KindSlice{
			token.KindScalarSign, token.KindVarName, token.KindOpenCurly,
			token.KindBareword, token.KindCloseCurly, token.KindOpenCurly,
			token.KindBareword, token.KindCloseCurly, token.KindHorizontalSpace,
			token.KindAssignOperator, token.KindHorizontalSpace, token.KindNumber,
			token.KindStatementEnd, token.KindVerticalSpace, token.KindEndOfInput,
		},
	}, {
		name: "dereference chain",
		args: args{context.Background(), "$ref->{key}[0];\n"},
		want: token.KindSlice{
			token.KindScalarSign, token.KindVarName, token.KindDerefOperator,
			token.KindOpenCurly, token.KindBareword, token.KindCloseCurly,
			token.KindOpenSquare, token.KindNumber, token.KindCloseSquare,
			token.KindStatementEnd, token.KindVerticalSpace, token.KindEndOfInput,
		},
	}, {
		name: "special variables",
		args: args{context.Background(), "print $0, $!, $$;\n"},
		want: token.KindSlice{
			token.KindKeyword, token.KindHorizontalSpace, token.KindScalarSign,
			token.KindVarName, token.KindComma, token.KindHorizontalSpace,
			token.KindScalarSign, token.KindSpecialVarName, token.KindComma,
			token.KindHorizontalSpace, token.KindScalarSign, token.KindSpecialVarName,
			token.KindStatementEnd, token.KindVerticalSpace, token.KindEndOfInput,
		},
	}, {
		name: "file test and angle read",
		args: args{context.Background(), "if (-e $file) { $line = <STDIN>; }\n"},
		want: token.KindSlice{
			token.KindKeyword, token.KindHorizontalSpace, token.KindOpenRound,
			token.KindFileTest, token.KindHorizontalSpace, token.KindScalarSign,
			token.KindVarName, token.KindCloseRound, token.KindHorizontalSpace,
			token.KindOpenCurly, token.KindHorizontalSpace, token.KindScalarSign,
			token.KindVarName, token.KindHorizontalSpace, token.KindAssignOperator,
			token.KindHorizontalSpace, token.KindFileHandle, token.KindStatementEnd,
			token.KindHorizontalSpace, token.KindCloseCurly, token.KindVerticalSpace,
			token.KindEndOfInput,
		},
	}, {
		name: "sub declaration",
		args: args{context.Background(), "sub greet ($) { print \"hi\"; }\n"},
		want: token.KindSlice{
			token.KindKeyword, token.KindHorizontalSpace, token.KindSubName,
			token.KindHorizontalSpace, token.KindPrototype, token.KindHorizontalSpace,
			token.KindOpenCurly, token.KindHorizontalSpace, token.KindKeyword,
			token.KindHorizontalSpace, token.KindDoubleString, token.KindStatementEnd,
			token.KindHorizontalSpace, token.KindCloseCurly, token.KindVerticalSpace,
			token.KindEndOfInput,
		},
	}, {
		name: "repeat assignment",
		args: args{context.Background(), "$s x= 3;\n"},
		want: token.KindSlice{
			token.KindScalarSign, token.KindVarName, token.KindHorizontalSpace,
			token.KindAssignOperator, token.KindHorizontalSpace, token.KindNumber,
			token.KindStatementEnd, token.KindVerticalSpace, token.KindEndOfInput,
		},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream, warns := Tokenize(tt.args.ctx, tt.args.input)
			if got := stream.Kinds(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize() kinds = %v, want %v", got, tt.want)
			}
			if len(warns) != tt.wantWarns {
				t.Errorf("Tokenize() warnings = %v, want %d", warns, tt.wantWarns)
			}
		})
	}
}

func TestLexer_Run_warnings(t *testing.T) {
	type args struct {
		input string
	}
	tests := []struct {
		name    string
		args    args
		wantErr error
	}{{
		name:    "unterminated string",
		args:    args{"my $s = \"abc;\n"},
		wantErr: ErrUnterminated,
	}, {
		name:    "unclosed round",
		args:    args{"(($x);\n"},
		wantErr: ErrBracketImbalance,
	}, {
		name:    "unmatched close",
		args:    args{")\n"},
		wantErr: ErrBracketImbalance,
	}, {
		name:    "heredoc declared at end of input",
		args:    args{"print <<EOT;\n"},
		wantErr: ErrUnresolvedHeredoc,
	}, {
		name:    "heredoc terminator missing",
		args:    args{"print <<EOT;\nbody\n"},
		wantErr: ErrUnterminated,
	}, {
		name:    "format declared at end of input",
		args:    args{"format STDOUT ="},
		wantErr: ErrUnterminatedFormat,
	}, {
		name:    "pod without cut",
		args:    args{"=pod\nabc"},
		wantErr: ErrUnterminated,
	}, {
		name:    "unknown rune",
		args:    args{"\x01"},
		wantErr: ErrUnknownToken,
	}, {
		name:    "dangling sigil",
		args:    args{"$"},
		wantErr: ErrDanglingSigil,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, warns := Tokenize(context.Background(), tt.args.input)
			if len(warns) != 1 {
				t.Fatalf("Tokenize() warnings = %v, want 1", warns)
			}
			if !errors.Is(warns[0].Err, tt.wantErr) {
				t.Errorf("Tokenize() warning = %v, want %v", warns[0], tt.wantErr)
			}
		})
	}
}

func TestLexer_Run_coverage(t *testing.T) {
	src := `#!/usr/bin/perl
use strict;

my %config = (name => "demo", retries => 3);
my @items = qw(alpha beta gamma);

sub greet ($) {
	my ($who) = @_;
	return "hello, $who";
}

print <<EOT;
greeting: @{[ greet("world") ]}
EOT

for my $item (@items) {
	next if $item =~ m/^b/;
	print "$item\n";
}

=pod

Internal notes.

=cut

1;
`

	stream, warns := Tokenize(context.Background(), src)
	if len(warns) != 0 {
		t.Fatalf("Tokenize() warnings = %v, want none", warns)
	}

	last := stream.At(stream.Len() - 1)
	if last.Kind != token.KindEndOfInput || last.Start != len([]rune(src)) || last.End != last.Start {
		t.Errorf("Tokenize() closed with %v, want zero width end at %d", last, len([]rune(src)))
	}

	// Spans tile the input without gap or overlap.
	offset := 0
	for index := 0; index < stream.Len(); index++ {
		tok := stream.At(index)
		if tok.Start != offset {
			t.Fatalf("Tokenize() span %d starts at %d, want %d", index, tok.Start, offset)
		}
		offset = tok.End
	}

	again, _ := Tokenize(context.Background(), src)
	if !reflect.DeepEqual(again.Kinds(), stream.Kinds()) {
		t.Errorf("Tokenize() kinds differ across identical scans")
	}
}

func TestLexer_Run_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stream, warns := Tokenize(ctx, "my $x = 1;\n")
	if stream.Len() != 0 {
		t.Errorf("Tokenize() tokens = %d, want 0", stream.Len())
	}
	if len(warns) != 1 || !errors.Is(warns[0].Err, context.Canceled) {
		t.Errorf("Tokenize() warnings = %v, want %v", warns, context.Canceled)
	}
}

func BenchmarkLexer_Run(b *testing.B) {
	src := "my %config = (name => \"demo\", retries => 3);\n"

	cfg := &Config{Logger: logrus.New()}
	ctx := context.Background()

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		b.StopTimer()
		l := New(cfg, src)
		b.StartTimer()

		l.Run(ctx)
	}
}
