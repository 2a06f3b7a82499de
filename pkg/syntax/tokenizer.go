// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package syntax

import (
	"fmt"
	"strings"

	"github.com/smithylang/smithy-go/pkg/diag"
)

// Tokenizer is the token-source boundary consumed by the tree builder.  It exposes a single forward cursor with
// one-token lookahead: the "current" token plus its lexeme and position.  There is no backtracking.
type Tokenizer interface {
	// Current returns the kind of the current token.
	Current() Token
	// CurrentLexeme returns the raw source text of the current token.
	CurrentLexeme() string
	// CurrentLocation returns the source region occupied by the current token.
	CurrentLocation() diag.Location
	// Line returns the 1-based line on which the current token starts.
	Line() int
	// Column returns the 1-based column at which the current token starts.
	Column() int
	// HasNext returns true if the cursor has not yet reached EOF.
	HasNext() bool
	// Next advances the cursor and returns the new current token kind.
	Next() Token
	// Expect returns nil if the current token is one of the given kinds; otherwise it returns a positioned
	// syntax error.  It never advances the cursor.
	Expect(tokens ...Token) error
	// ExpectLexeme returns a positioned syntax error unless the current token is an identifier whose lexeme
	// equals the given contextual keyword.
	ExpectLexeme(keyword string) error
	// IdentifierStartsWith is a cheap lookahead classifier: it returns true if the current token is an
	// identifier whose lexeme begins with ch.
	IdentifierStartsWith(ch byte) bool
	// Intern returns a canonical copy of the given lexeme, deduplicating repeated strings.
	Intern(lexeme string) string
}

// Lexer is the concrete Tokenizer over an in-memory document.
type Lexer struct {
	filename string
	src      string
	pos      int // byte offset one past the current token.
	line     int // 1-based line of the scan cursor.
	column   int // 1-based column of the scan cursor.

	tok      Token
	lexStart int
	lexEnd   int
	start    diag.Pos
	end      diag.Pos

	interned map[string]string
}

var _ Tokenizer = (*Lexer)(nil)

// NewLexer creates a tokenizer over the given document and scans its first token.
func NewLexer(doc *diag.Document) *Lexer {
	l := &Lexer{
		filename: doc.Path,
		src:      string(doc.Body),
		line:     1,
		column:   1,
		interned: make(map[string]string),
	}
	l.scan()
	return l
}

func (l *Lexer) Current() Token        { return l.tok }
func (l *Lexer) CurrentLexeme() string { return l.src[l.lexStart:l.lexEnd] }
func (l *Lexer) Line() int             { return l.start.Line }
func (l *Lexer) Column() int           { return l.start.Column }

func (l *Lexer) CurrentLocation() diag.Location {
	return diag.Location{Filename: l.filename, Start: l.start, End: l.end}
}

func (l *Lexer) HasNext() bool {
	return l.tok != EOF
}

func (l *Lexer) Next() Token {
	if l.tok != EOF {
		l.scan()
	}
	return l.tok
}

func (l *Lexer) Expect(tokens ...Token) error {
	for _, tok := range tokens {
		if l.tok == tok {
			return nil
		}
	}
	var expected string
	if len(tokens) == 1 {
		expected = tokens[0].String()
	} else {
		names := make([]string, len(tokens))
		for i, tok := range tokens {
			names[i] = tok.String()
		}
		expected = "one of [" + strings.Join(names, ", ") + "]"
	}
	return diag.NewSyntaxError(l.CurrentLocation(),
		fmt.Sprintf("Expected %v but found %v", expected, l.tok.Debug(l.CurrentLexeme())))
}

func (l *Lexer) ExpectLexeme(keyword string) error {
	if l.tok != IDENTIFIER || l.CurrentLexeme() != keyword {
		return diag.NewSyntaxError(l.CurrentLocation(),
			fmt.Sprintf("Expected '%v' but found %v", keyword, l.tok.Debug(l.CurrentLexeme())))
	}
	return nil
}

func (l *Lexer) IdentifierStartsWith(ch byte) bool {
	return l.tok == IDENTIFIER && l.lexEnd > l.lexStart && l.src[l.lexStart] == ch
}

func (l *Lexer) Intern(lexeme string) string {
	if s, has := l.interned[lexeme]; has {
		return s
	}
	l.interned[lexeme] = lexeme
	return lexeme
}

// scan consumes the next token from the source, leaving it as the current token.
func (l *Lexer) scan() {
	l.lexStart = l.pos
	l.start = diag.Pos{Line: l.line, Column: l.column, Offset: l.pos}

	if l.pos >= len(l.src) {
		l.tok = EOF
		l.lexEnd = l.pos
		l.end = l.start
		return
	}

	c := l.src[l.pos]
	switch {
	case c == ' ' || c == '\t':
		for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
			l.advance()
		}
		l.tok = SPACE
	case c == '\r' || c == '\n':
		if c == '\r' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '\n' {
			l.advance()
		}
		l.advance() // advance resets line/column when it consumes the newline byte.
		l.tok = NEWLINE
	case c == ',':
		l.advance()
		l.tok = COMMA
	case c == '/':
		l.scanComment()
	case c == '@':
		l.advance()
		l.tok = AT
	case c == ':':
		l.advance()
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.advance()
			l.tok = WALRUS
		} else {
			l.tok = COLON
		}
	case c == '.':
		l.advance()
		l.tok = DOT
	case c == '#':
		l.advance()
		l.tok = POUND
	case c == '$':
		l.advance()
		l.tok = DOLLAR
	case c == '{':
		l.advance()
		l.tok = LBRACE
	case c == '}':
		l.advance()
		l.tok = RBRACE
	case c == '[':
		l.advance()
		l.tok = LBRACKET
	case c == ']':
		l.advance()
		l.tok = RBRACKET
	case c == '(':
		l.advance()
		l.tok = LPAREN
	case c == ')':
		l.advance()
		l.tok = RPAREN
	case c == '=':
		l.advance()
		l.tok = EQUAL
	case c == '"':
		l.scanString()
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.advance()
		}
		l.tok = IDENTIFIER
	case c == '-' || isDigit(c):
		l.scanNumber()
	default:
		l.advance()
		l.tok = ERROR
	}

	l.lexEnd = l.pos
	l.end = diag.Pos{Line: l.line, Column: l.column, Offset: l.pos}
}

// scanComment scans "//" and "///" comments through the end of the line, excluding the line terminator.
func (l *Lexer) scanComment() {
	l.advance() // consume '/'
	if l.pos >= len(l.src) || l.src[l.pos] != '/' {
		l.tok = ERROR
		return
	}
	l.advance() // consume second '/'
	l.tok = COMMENT
	if l.pos < len(l.src) && l.src[l.pos] == '/' {
		l.advance()
		l.tok = DOC_COMMENT
	}
	for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
		l.advance()
	}
}

// scanString scans a quoted string or a """ text block.  The lexeme keeps the raw source, quotes and escapes
// included, so the tree stays lossless; decoding happens elsewhere.
func (l *Lexer) scanString() {
	l.advance() // consume opening quote.
	if l.pos+1 < len(l.src) && l.src[l.pos] == '"' && l.src[l.pos+1] == '"' {
		l.advance()
		l.advance()
		l.scanTextBlock()
		return
	}
	if l.pos < len(l.src) && l.src[l.pos] == '"' {
		// An empty string: "".
		l.advance()
		l.tok = STRING
		return
	}
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' && l.pos+1 < len(l.src) {
			l.advance()
			l.advance()
			continue
		}
		if c == '\n' || c == '\r' {
			break
		}
		l.advance()
		if c == '"' {
			l.tok = STRING
			return
		}
	}
	l.tok = ERROR
}

func (l *Lexer) scanTextBlock() {
	for l.pos < len(l.src) {
		if l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
			l.advance()
			l.advance()
			continue
		}
		if strings.HasPrefix(l.src[l.pos:], `"""`) {
			l.advance()
			l.advance()
			l.advance()
			l.tok = TEXT_BLOCK
			return
		}
		l.advance()
	}
	l.tok = ERROR
}

func (l *Lexer) scanNumber() {
	if l.src[l.pos] == '-' {
		l.advance()
	}
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.advance()
	}
	if l.pos+1 < len(l.src) && l.src[l.pos] == '.' && isDigit(l.src[l.pos+1]) {
		l.advance()
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.advance()
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		mark := l.pos
		l.advance()
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.advance()
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.advance()
			}
		} else {
			// Not an exponent after all; rewind to the 'e' and let it scan as a separate token.
			l.rewind(mark)
		}
	}
	l.tok = NUMBER
}

// advance consumes one byte, maintaining the line and column counters.
func (l *Lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

// rewind moves the cursor back to an earlier offset on the current line.
func (l *Lexer) rewind(offset int) {
	l.column -= l.pos - offset
	l.pos = offset
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
