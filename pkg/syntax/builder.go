// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package syntax

import (
	"github.com/golang/glog"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/smithylang/smithy-go/pkg/diag"
	"github.com/smithylang/smithy-go/pkg/util/contract"
)

// TreeBuilder parses a token stream into a lossless TokenTree.  It maintains an explicit stack of open interior
// nodes; the top of the stack is the current insertion point.  A syntax error inside a statement never aborts
// the parse: the enclosing withTree wrapper converts it into an ERROR node and skips forward to the next
// plausible statement start.
type TreeBuilder struct {
	tokenizer Tokenizer
	root      *TokenTree
	trees     []*TokenTree // the stack of open trees; the last element is the insertion point.
}

// NewTreeBuilder creates a builder that consumes the given tokenizer.
func NewTreeBuilder(tokenizer Tokenizer) *TreeBuilder {
	contract.Require(tokenizer != nil, "tokenizer")
	root := NewTree(TreeIDL)
	return &TreeBuilder{
		tokenizer: tokenizer,
		root:      root,
		trees:     []*TokenTree{root},
	}
}

// Parse builds a token tree for an entire document.  The returned tree always covers the full input; malformed
// statements surface as ERROR nodes within it, never as a returned error.
func Parse(doc *diag.Document) *TokenTree {
	glog.V(3).Infof("Parsing token tree for %v (len(body)=%v)", doc.Path, len(doc.Body))
	tree := NewTreeBuilder(NewLexer(doc)).Build()
	if glog.V(5) {
		glog.V(5).Infof("Token tree for %v:\n%v", doc.Path, tree)
	}
	return tree
}

// Diagnostics collects the syntax errors captured by every ERROR node in the tree, aggregated into a single
// error, or nil if the tree is error-free.
func Diagnostics(tree *TokenTree) error {
	var result *multierror.Error
	var walk func(t *TokenTree)
	walk = func(t *TokenTree) {
		if err := t.Err(); err != nil {
			result = multierror.Append(result, err)
		}
		for _, child := range t.Children() {
			walk(child)
		}
	}
	walk(tree)
	return result.ErrorOrNil()
}

// Build runs the grammar entry point: a control section, then a metadata section, then a shape section.  The
// section order is fixed and non-backtracking; once a section's lookahead condition fails it is never retried.
func (b *TreeBuilder) Build() *TokenTree {
	b.parseControlSection()
	b.parseMetadataSection()
	b.parseShapeSection()
	return b.root
}

func (b *TreeBuilder) current() *TokenTree {
	return b.trees[len(b.trees)-1]
}

func (b *TreeBuilder) push(tree *TokenTree) {
	b.current().AppendChild(tree)
	b.trees = append(b.trees, tree)
}

func (b *TreeBuilder) pop() {
	contract.Assertf(len(b.trees) > 1, "cannot pop the root tree")
	b.trees = b.trees[:len(b.trees)-1]
}

// withTree pushes a new interior node of the given production, runs parse, and pops.  If parse fails with a
// syntax error, the error is contained here: an ERROR node capturing the diagnostic is pushed in its place, the
// offending token is consumed into it, and the default error recovery skips forward until a token at column 1
// that looks like the start of a new top-level statement (an identifier, '$', doc comment, or '@') or EOF.
func (b *TreeBuilder) withTree(typ TreeType, parse func() error) {
	b.withTreeRecover(typ, b.defaultErrorRecovery, parse)
}

func (b *TreeBuilder) withTreeRecover(typ TreeType, recovery func(), parse func() error) {
	b.push(NewTree(typ))
	if err := parse(); err != nil {
		syntax, ok := err.(*diag.SyntaxError)
		contract.Assertf(ok, "tree builder parse functions may only fail with syntax errors, got %v", err)
		errTree := NewErrorTree(syntax)
		b.push(errTree)
		if b.tokenizer.HasNext() {
			b.appendAndNext()
		}
		recovery()
		b.pop()
	}
	b.pop()
}

// defaultErrorRecovery consumes tokens into the current (ERROR) tree until the next plausible statement start.
func (b *TreeBuilder) defaultErrorRecovery() {
	for b.tokenizer.HasNext() {
		if b.tokenizer.Column() == 1 {
			switch b.tokenizer.Current() {
			case DOLLAR, IDENTIFIER, DOC_COMMENT, AT:
				return
			}
		}
		b.appendAndNext()
	}
}

// appendAndNext moves the current token into the current open tree as a leaf and advances the tokenizer.
func (b *TreeBuilder) appendAndNext() {
	b.current().AppendChild(NewLeaf(CaptureToken(b.tokenizer)))
	b.tokenizer.Next()
}

// expectAppendNext fails with a syntax error unless the current token is one of the given kinds; otherwise it
// appends the token and advances.
func (b *TreeBuilder) expectAppendNext(tokens ...Token) error {
	if err := b.tokenizer.Expect(tokens...); err != nil {
		return err
	}
	b.appendAndNext()
	return nil
}

func (b *TreeBuilder) skipWhitespace() {
	for b.tokenizer.Current().IsWhitespace() {
		b.appendAndNext()
	}
}

func (b *TreeBuilder) skipWhitespaceAndDocs() {
	for b.tokenizer.Current().IsWhitespace() || b.tokenizer.Current() == DOC_COMMENT {
		b.appendAndNext()
	}
}

func (b *TreeBuilder) skipSpaces() {
	for b.tokenizer.Current() == SPACE {
		b.appendAndNext()
	}
}

func (b *TreeBuilder) expectAndSkipSpaces() error {
	if err := b.expectAppendNext(SPACE); err != nil {
		return err
	}
	b.skipSpaces()
	return nil
}

// expectAndSkipBr requires the statement to be terminated by a line break.  Trailing whitespace is captured into
// a BR subtree; if the line has not advanced and input remains, that is a syntax error.
func (b *TreeBuilder) expectAndSkipBr() {
	b.withTree(TreeBR, func() error {
		if b.tokenizer.Current() == NEWLINE {
			b.skipWhitespace()
			return nil
		}
		line := b.tokenizer.Line()
		b.skipWhitespace()
		if line == b.tokenizer.Line() && b.tokenizer.HasNext() {
			return diag.NewSyntaxError(b.tokenizer.CurrentLocation(), "Expected newline")
		}
		return nil
	})
}

// parseControlSection parses zero or more `$key: value` statements.
func (b *TreeBuilder) parseControlSection() {
	b.withTree(TreeControlSection, func() error {
		b.skipWhitespace()
		for b.tokenizer.Current() == DOLLAR {
			b.withTree(TreeControlStatement, func() error {
				b.appendAndNext() // append '$'
				b.withTree(TreeKey, func() error {
					return b.expectAppendNext(IDENTIFIER, STRING)
				})
				b.skipSpaces()
				if err := b.expectAppendNext(COLON); err != nil {
					return err
				}
				b.skipSpaces()
				b.parseNode()
				b.expectAndSkipBr()
				return nil
			})
		}
		return nil
	})
}

// parseMetadataSection parses zero or more `metadata key = value` statements.  The section is entered on the
// cheap identifier-prefix check and the full keyword is verified inside, so a stray identifier starting with 'm'
// becomes a contained ERROR rather than ending the parse.
func (b *TreeBuilder) parseMetadataSection() {
	b.withTree(TreeMetadataSection, func() error {
		b.skipWhitespace()
		for b.tokenizer.IdentifierStartsWith('m') {
			b.withTree(TreeMetadataStatement, func() error {
				b.withTree(TreeKeyword, func() error {
					if err := b.tokenizer.ExpectLexeme("metadata"); err != nil {
						return err
					}
					b.appendAndNext()
					return nil
				})
				b.skipSpaces()
				b.withTree(TreeKey, func() error {
					return b.expectAppendNext(IDENTIFIER, STRING)
				})
				b.skipSpaces()
				if err := b.expectAppendNext(EQUAL); err != nil {
					return err
				}
				b.skipSpaces()
				b.parseNode()
				b.expectAndSkipBr()
				return nil
			})
		}
		return nil
	})
}

// parseShapeSection parses an optional `namespace` declaration followed by the use section.
func (b *TreeBuilder) parseShapeSection() {
	b.withTree(TreeShapeSection, func() error {
		if b.tokenizer.IdentifierStartsWith('n') {
			b.withTree(TreeNamespaceStatement, func() error {
				b.withTree(TreeKeyword, func() error {
					if err := b.tokenizer.ExpectLexeme("namespace"); err != nil {
						return err
					}
					b.appendAndNext()
					return nil
				})
				if err := b.expectAndSkipSpaces(); err != nil {
					return err
				}
				b.withTree(TreeValue, func() error {
					return b.parseShapeIDNamespace()
				})
				b.expectAndSkipBr()
				return nil
			})
			b.skipWhitespaceAndDocs()
			b.parseUseSection()
		} else if b.tokenizer.HasNext() {
			return diag.NewSyntaxError(b.tokenizer.CurrentLocation(),
				"Expected a namespace definition but found "+
					b.tokenizer.Current().Debug(b.tokenizer.CurrentLexeme()))
		}
		return nil
	})
}

// parseUseSection parses zero or more `use absolute.namespace#Name` import statements.
func (b *TreeBuilder) parseUseSection() {
	b.withTree(TreeUseSection, func() error {
		for b.tokenizer.Current() == IDENTIFIER {
			// Don't over-parse here: a non-"use" identifier starts the next section.
			if b.tokenizer.Intern(b.tokenizer.CurrentLexeme()) != "use" {
				break
			}
			b.withTree(TreeUseStatement, func() error {
				b.withTree(TreeKeyword, func() error {
					b.appendAndNext()
					return nil
				})
				if err := b.expectAndSkipSpaces(); err != nil {
					return err
				}
				b.withTree(TreeValue, func() error {
					// Use statements import root shapes only, so member references are disallowed.
					b.parseAbsoluteShapeID(false)
					return nil
				})
				b.expectAndSkipBr()
				b.skipWhitespaceAndDocs()
				return nil
			})
		}
		return nil
	})
}

// parseShapeIDNamespace parses one-or-more dot-separated identifiers into an ID_NAMESPACE tree.
func (b *TreeBuilder) parseShapeIDNamespace() error {
	b.withTree(TreeIDNamespace, func() error {
		if err := b.expectAppendNext(IDENTIFIER); err != nil {
			return err
		}
		for b.tokenizer.Current() == DOT {
			b.appendAndNext()
			if err := b.expectAppendNext(IDENTIFIER); err != nil {
				return err
			}
		}
		return nil
	})
	return nil
}

// parseRelativeRootShapeID parses a shape name and, when allowed and present, a `$member` suffix.
func (b *TreeBuilder) parseRelativeRootShapeID(allowMember bool) {
	b.withTree(TreeIDName, func() error {
		return b.expectAppendNext(IDENTIFIER)
	})
	if allowMember && b.tokenizer.Current() == DOLLAR {
		b.appendAndNext() // append '$'
		b.withTree(TreeIDMember, func() error {
			return b.expectAppendNext(IDENTIFIER)
		})
	}
}

// parseAbsoluteShapeID parses `namespace.parts#Name` with an optional `$member` suffix.
func (b *TreeBuilder) parseAbsoluteShapeID(allowMember bool) {
	b.withTree(TreeReference, func() error {
		if err := b.parseShapeIDNamespace(); err != nil {
			return err
		}
		if err := b.expectAppendNext(POUND); err != nil {
			return err
		}
		b.parseRelativeRootShapeID(allowMember)
		return nil
	})
}

// parseNode parses a node value literal: a scalar token, an object, or an array.
func (b *TreeBuilder) parseNode() {
	b.withTree(TreeNodeValue, func() error {
		if err := b.tokenizer.Expect(STRING, TEXT_BLOCK, NUMBER, IDENTIFIER, LBRACE, LBRACKET); err != nil {
			return err
		}
		switch b.tokenizer.Current() {
		case LBRACE:
			b.parseNodeObject()
		case LBRACKET:
			b.parseNodeArray()
		default:
			b.appendAndNext()
		}
		return nil
	})
}

// parseNodeObject parses `{ key: value ... }` into a NODE_OBJECT tree of NODE_OBJECT_KVP children.
func (b *TreeBuilder) parseNodeObject() {
	b.withTree(TreeNodeObject, func() error {
		b.appendAndNext() // append '{'
		b.skipWhitespace()
		for b.tokenizer.HasNext() && b.tokenizer.Current() != RBRACE {
			b.withTree(TreeNodeObjectKVP, func() error {
				b.withTree(TreeKey, func() error {
					return b.expectAppendNext(IDENTIFIER, STRING)
				})
				b.skipWhitespace()
				if err := b.expectAppendNext(COLON); err != nil {
					return err
				}
				b.skipWhitespace()
				b.parseNode()
				return nil
			})
			b.skipWhitespace()
		}
		return b.expectAppendNext(RBRACE)
	})
}

// parseNodeArray parses `[ value ... ]` into a NODE_ARRAY tree.
func (b *TreeBuilder) parseNodeArray() {
	b.withTree(TreeNodeArray, func() error {
		b.appendAndNext() // append '['
		b.skipWhitespace()
		for b.tokenizer.HasNext() && b.tokenizer.Current() != RBRACKET {
			b.parseNode()
			b.skipWhitespace()
		}
		return b.expectAppendNext(RBRACKET)
	})
}
