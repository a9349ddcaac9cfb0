// SPDX-License-Identifier: MIT
package lexer

import "gitlab.com/fisherprime/perlscan/token"

type (
	// quoteLikeOp describes one member of the quote-like operator
	// family.
	quoteLikeOp struct {
		kind token.Kind

		// spans is 1 for the quoting forms, 2 for the
		// substitution/translation forms carrying a replacement part.
		spans int

		// flags marks operations absorbing trailing modifier letters.
		flags bool
	}
)

// quoteLikeOps keys the quote-like family by its operator word.
var quoteLikeOps = map[string]quoteLikeOp{
	"q":  {kind: token.KindQString, spans: 1},
	"qq": {kind: token.KindQQString, spans: 1},
	"qw": {kind: token.KindQWString, spans: 1},
	"qx": {kind: token.KindQXString, spans: 1},
	"qr": {kind: token.KindQRString, spans: 1, flags: true},
	"m":  {kind: token.KindMatchRegex, spans: 1, flags: true},
	"s":  {kind: token.KindSubstRegex, spans: 2, flags: true},
	"tr": {kind: token.KindTransRegex, spans: 2, flags: true},
	"y":  {kind: token.KindTransRegex, spans: 2, flags: true},
}

// fileHandles names the standard handles read as such in bareword
// position.
var fileHandles = map[string]bool{
	"STDIN":   true,
	"STDOUT":  true,
	"STDERR":  true,
	"ARGV":    true,
	"ARGVOUT": true,
	"DATA":    true,
}

// operatorTable resolves punctuation operators by spelling, indexed by
// rune count less one. Longer spellings outrank shorter prefixes.
var operatorTable = [3]map[string]token.Kind{
	{
		"=":  token.KindAssignOperator,
		";":  token.KindStatementEnd,
		",":  token.KindComma,
		"+":  token.KindOperator,
		"-":  token.KindOperator,
		"*":  token.KindOperator,
		"/":  token.KindOperator,
		"%":  token.KindOperator,
		".":  token.KindOperator,
		"!":  token.KindOperator,
		"~":  token.KindOperator,
		"<":  token.KindOperator,
		">":  token.KindOperator,
		"?":  token.KindOperator,
		":":  token.KindOperator,
		"&":  token.KindOperator,
		"|":  token.KindOperator,
		"^":  token.KindOperator,
		"\\": token.KindOperator,
	},
	{
		"=>": token.KindFatComma,
		"->": token.KindDerefOperator,
		"==": token.KindOperator,
		"!=": token.KindOperator,
		"<=": token.KindOperator,
		">=": token.KindOperator,
		"=~": token.KindOperator,
		"!~": token.KindOperator,
		"**": token.KindOperator,
		"..": token.KindOperator,
		"&&": token.KindOperator,
		"||": token.KindOperator,
		"//": token.KindOperator,
		"<<": token.KindOperator,
		">>": token.KindOperator,
		"++": token.KindOperator,
		"--": token.KindOperator,
		"::": token.KindOperator,
		"+=": token.KindAssignOperator,
		"-=": token.KindAssignOperator,
		"*=": token.KindAssignOperator,
		"/=": token.KindAssignOperator,
		".=": token.KindAssignOperator,
		"%=": token.KindAssignOperator,
		"|=": token.KindAssignOperator,
		"&=": token.KindAssignOperator,
		"^=": token.KindAssignOperator,
	},
	{
		"<=>": token.KindOperator,
		"...": token.KindOperator,
		"**=": token.KindAssignOperator,
		"||=": token.KindAssignOperator,
		"&&=": token.KindAssignOperator,
		"//=": token.KindAssignOperator,
		"<<=": token.KindAssignOperator,
		">>=": token.KindAssignOperator,
	},
}

// keywords holds the reserved & builtin words, the word-spelled
// operators included. The quote-like operator words stay out; they
// resolve through quoteLikeOps first.
var keywords = map[string]bool{
	// Declarations & scoping.
	"my": true, "our": true, "local": true, "state": true,
	"use": true, "no": true, "require": true, "package": true,
	"sub": true, "format": true,

	// Flow control.
	"if": true, "elsif": true, "else": true, "unless": true,
	"while": true, "until": true, "for": true, "foreach": true,
	"do": true, "last": true, "next": true, "redo": true,
	"goto": true, "return": true, "continue": true,
	"BEGIN": true, "END": true,

	// Word-spelled operators.
	"and": true, "or": true, "not": true, "xor": true,
	"eq": true, "ne": true, "lt": true, "gt": true,
	"le": true, "ge": true, "cmp": true, "x": true,

	// Inspection & conversion.
	"defined": true, "undef": true, "exists": true, "delete": true,
	"each": true, "keys": true, "values": true, "scalar": true,
	"wantarray": true, "ref": true, "bless": true, "lock": true,
	"chr": true, "ord": true, "hex": true, "oct": true,
	"abs": true, "int": true, "sqrt": true, "exp": true,
	"log": true, "sin": true, "cos": true, "atan2": true,
	"rand": true, "srand": true, "pos": true, "quotemeta": true,

	// Strings & lists.
	"length": true, "substr": true, "index": true, "rindex": true,
	"sprintf": true, "uc": true, "lc": true, "ucfirst": true,
	"lcfirst": true, "split": true, "join": true, "reverse": true,
	"sort": true, "grep": true, "map": true, "push": true,
	"pop": true, "shift": true, "unshift": true, "splice": true,
	"chomp": true, "chop": true, "study": true,

	// I/O & filesystem.
	"print": true, "printf": true, "say": true, "open": true,
	"close": true, "read": true, "write": true, "eof": true,
	"seek": true, "tell": true, "binmode": true, "select": true,
	"opendir": true, "readdir": true, "closedir": true,
	"mkdir": true, "rmdir": true, "unlink": true, "rename": true,
	"chdir": true, "chmod": true, "chown": true, "stat": true,
	"lstat": true, "glob": true,

	// Processes & control.
	"die": true, "warn": true, "exit": true, "eval": true,
	"system": true, "exec": true, "fork": true, "wait": true,
	"waitpid": true, "kill": true, "pipe": true, "sleep": true,
	"alarm": true, "time": true, "localtime": true, "gmtime": true,
	"caller": true, "tie": true, "untie": true, "tied": true,
}
