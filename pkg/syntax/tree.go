// Copyright 2024, the Smithy Go Authors.  All rights reserved.

package syntax

import (
	"fmt"
	"strings"

	"github.com/smithylang/smithy-go/pkg/diag"
	"github.com/smithylang/smithy-go/pkg/util/contract"
)

// TreeType is a type discriminator indicating which grammar production a tree node represents.
type TreeType string

// The closed set of grammar productions appearing in a token tree.
const (
	TreeIDL                TreeType = "IDL"
	TreeControlSection     TreeType = "CONTROL_SECTION"
	TreeControlStatement   TreeType = "CONTROL_STATEMENT"
	TreeMetadataSection    TreeType = "METADATA_SECTION"
	TreeMetadataStatement  TreeType = "METADATA_STATEMENT"
	TreeShapeSection       TreeType = "SHAPE_SECTION"
	TreeNamespaceStatement TreeType = "NAMESPACE_STATEMENT"
	TreeUseSection         TreeType = "USE_SECTION"
	TreeUseStatement       TreeType = "USE_STATEMENT"
	TreeKeyword            TreeType = "KEYWORD"
	TreeKey                TreeType = "KEY"
	TreeValue              TreeType = "VALUE"
	TreeReference          TreeType = "REFERENCE"
	TreeIDNamespace        TreeType = "ID_NAMESPACE"
	TreeIDName             TreeType = "ID_NAME"
	TreeIDMember           TreeType = "ID_MEMBER"
	TreeNodeValue          TreeType = "NODE_VALUE"
	TreeNodeObject         TreeType = "NODE_OBJECT"
	TreeNodeObjectKVP      TreeType = "NODE_OBJECT_KVP"
	TreeNodeArray          TreeType = "NODE_ARRAY"
	TreeError              TreeType = "ERROR"
	TreeBR                 TreeType = "BR"
	TreeToken              TreeType = "TOKEN"
)

// CapturedToken is an immutable token value lifted out of a Tokenizer: its lexical category, raw lexeme, and
// source region.
type CapturedToken struct {
	Token  Token
	Lexeme string
	Loc    diag.Location
}

// CaptureToken captures the tokenizer's current token, interning its lexeme.
func CaptureToken(t Tokenizer) CapturedToken {
	return CapturedToken{
		Token:  t.Current(),
		Lexeme: t.Intern(t.CurrentLexeme()),
		Loc:    t.CurrentLocation(),
	}
}

// TokenTree is a lossless concrete syntax tree node: either a leaf wrapping exactly one captured token, or an
// interior node tagged with a grammar production and owning an ordered sequence of children.  Concatenating the
// lexemes of a tree's leaves in depth-first order reconstructs the original source text exactly.
type TokenTree struct {
	typ      TreeType
	token    *CapturedToken // set only for leaves.
	children []*TokenTree   // set only for interior nodes.
	err      *diag.SyntaxError
}

// NewTree creates an empty interior node for the given grammar production.
func NewTree(typ TreeType) *TokenTree {
	contract.Requiref(typ != TreeToken, "typ", "leaves are created with NewLeaf")
	return &TokenTree{typ: typ}
}

// NewLeaf creates a leaf node owning a single captured token.
func NewLeaf(token CapturedToken) *TokenTree {
	return &TokenTree{typ: TreeToken, token: &token}
}

// NewErrorTree creates an ERROR node carrying a captured syntax error.  Recovery tokens are appended to it by
// the builder as ordinary children, keeping the tree lossless.
func NewErrorTree(err *diag.SyntaxError) *TokenTree {
	contract.Require(err != nil, "err")
	return &TokenTree{typ: TreeError, err: err}
}

// Type returns the grammar production this node represents.
func (t *TokenTree) Type() TreeType { return t.typ }

// IsLeaf returns true if this node wraps a single token.
func (t *TokenTree) IsLeaf() bool { return t.token != nil }

// Token returns the leaf's captured token; ok is false for interior nodes.
func (t *TokenTree) Token() (CapturedToken, bool) {
	if t.token == nil {
		return CapturedToken{}, false
	}
	return *t.token, true
}

// Children returns this node's ordered children.  The returned slice is owned by the tree and must not be
// mutated by callers.
func (t *TokenTree) Children() []*TokenTree { return t.children }

// Err returns the diagnostic captured by an ERROR node, or nil.
func (t *TokenTree) Err() *diag.SyntaxError { return t.err }

// AppendChild appends a child to this interior node.  Each child is owned by exactly one parent; appending a
// node that already has a parent elsewhere is a caller bug the tree does not detect.
func (t *TokenTree) AppendChild(child *TokenTree) {
	contract.Require(child != nil, "child")
	contract.Assertf(!t.IsLeaf(), "cannot append a child to a %v leaf", t.typ)
	t.children = append(t.children, child)
}

// Where returns the source region this node spans: a leaf's token location, or the union of an interior node's
// children.  An empty interior node spans nothing.
func (t *TokenTree) Where() diag.Location {
	if t.token != nil {
		return t.token.Loc
	}
	var loc diag.Location
	for _, child := range t.children {
		loc = loc.Union(child.Where())
	}
	return loc
}

// VisitTokens walks every leaf token in depth-first order, invoking visit for each until it returns false.  The
// walk is restartable: calling VisitTokens again replays the same sequence.
func (t *TokenTree) VisitTokens(visit func(CapturedToken) bool) bool {
	if t.token != nil {
		return visit(*t.token)
	}
	for _, child := range t.children {
		if !child.VisitTokens(visit) {
			return false
		}
	}
	return true
}

// Tokens collects every leaf token in depth-first order.
func (t *TokenTree) Tokens() []CapturedToken {
	var tokens []CapturedToken
	t.VisitTokens(func(tok CapturedToken) bool {
		tokens = append(tokens, tok)
		return true
	})
	return tokens
}

// ConcatLexemes reconstructs the source text covered by this node by concatenating its leaf lexemes in order.
func (t *TokenTree) ConcatLexemes() string {
	var b strings.Builder
	t.VisitTokens(func(tok CapturedToken) bool {
		b.WriteString(tok.Lexeme)
		return true
	})
	return b.String()
}

// FindAt locates the deepest node whose span contains the given 1-based line and column, or nil if the position
// falls outside this tree.  Leaves win over interior wrappers spanning the same region because the descent
// prefers any matching child over the node itself.
func (t *TokenTree) FindAt(line int, column int) *TokenTree {
	if !t.Where().Contains(line, column) {
		return nil
	}
	for _, child := range t.children {
		if match := child.FindAt(line, column); match != nil {
			return match
		}
	}
	return t
}

// String renders the tree in an indented debug form.
func (t *TokenTree) String() string {
	var b strings.Builder
	t.format(&b, 0)
	return b.String()
}

func (t *TokenTree) format(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("    ", depth))
	if t.token != nil {
		fmt.Fprintf(b, "%v (%v)\n", t.token.Token.Debug(t.token.Lexeme), t.token.Loc)
		return
	}
	fmt.Fprintf(b, "%v", t.typ)
	if t.err != nil {
		fmt.Fprintf(b, " [%v]", t.err)
	}
	b.WriteString("\n")
	for _, child := range t.children {
		child.format(b, depth+1)
	}
}
