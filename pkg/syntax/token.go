// Copyright 2024, the Smithy Go Authors.  All rights reserved.

// Package syntax contains the lexical and concrete-syntax layers of the Smithy IDL: a tokenizer, a lossless
// token tree, and the builder that parses a token stream into such a tree with structured error recovery.
package syntax

import "fmt"

// Token is a discriminator for the lexical category of a scanned token.
type Token int

// The complete set of lexical categories produced by the tokenizer.
const (
	SPACE Token = iota
	NEWLINE
	COMMA
	COMMENT
	DOC_COMMENT
	AT
	STRING
	TEXT_BLOCK
	COLON
	WALRUS
	IDENTIFIER
	DOT
	POUND
	DOLLAR
	NUMBER
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	LPAREN
	RPAREN
	EQUAL
	EOF
	ERROR
)

var tokenNames = map[Token]string{
	SPACE:       "SPACE",
	NEWLINE:     "NEWLINE",
	COMMA:       "COMMA",
	COMMENT:     "COMMENT",
	DOC_COMMENT: "DOC_COMMENT",
	AT:          "AT",
	STRING:      "STRING",
	TEXT_BLOCK:  "TEXT_BLOCK",
	COLON:       "COLON",
	WALRUS:      "WALRUS",
	IDENTIFIER:  "IDENTIFIER",
	DOT:         "DOT",
	POUND:       "POUND",
	DOLLAR:      "DOLLAR",
	NUMBER:      "NUMBER",
	LBRACE:      "LBRACE",
	RBRACE:      "RBRACE",
	LBRACKET:    "LBRACKET",
	RBRACKET:    "RBRACKET",
	LPAREN:      "LPAREN",
	RPAREN:      "RPAREN",
	EQUAL:       "EQUAL",
	EOF:         "EOF",
	ERROR:       "ERROR",
}

func (tok Token) String() string {
	if s, has := tokenNames[tok]; has {
		return s
	}
	return fmt.Sprintf("Token(%d)", int(tok))
}

// IsWhitespace returns true for tokens the grammar treats as insignificant filler.  Commas are whitespace in the
// Smithy IDL, and ordinary comments ride along with the whitespace they interrupt; doc comments do not, since
// they attach documentation to the statement that follows.
func (tok Token) IsWhitespace() bool {
	switch tok {
	case SPACE, NEWLINE, COMMA, COMMENT:
		return true
	default:
		return false
	}
}

// Debug renders a token kind along with its lexeme for use in error messages (e.g., "IDENTIFIER('foo')").
func (tok Token) Debug(lexeme string) string {
	switch tok {
	case SPACE:
		return "SPACE(' ')"
	case NEWLINE:
		return "NEWLINE"
	case EOF:
		return "EOF"
	default:
		return fmt.Sprintf("%v('%v')", tok, lexeme)
	}
}
