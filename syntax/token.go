// Package syntax tokenizes Rust source text and parses its top-level items.
//
// Only the structure needed to flatten a module graph is modelled: `use`
// declarations with their full use tree, `mod` declarations, and the extent
// of every other item. Item bodies are skipped by delimiter matching.
package syntax

import "fmt"

// Position is a location in source text. Line is 1-based; Column counts
// UTF-8 characters (not bytes) from the start of the line, 0-based.
type Position struct {
	Line   int
	Column int
}

// Before reports whether p sorts strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open region of source text.
type Span struct {
	Start Position
	End   Position
	// byte offsets into the source
	Lo, Hi int
}

// TokenKind identifies a token type.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokIdent
	TokLifetime
	TokLiteral
	// TokDocComment is an outer doc comment (`///` or `/** */`).
	TokDocComment
	TokPunct
	TokOpenDelim
	TokCloseDelim
)

// Token is a token with its kind, text and span.
type Token struct {
	Kind TokenKind
	Text string
	Span Span
}

// Is reports whether the token is punctuation or an identifier with the
// given text.
func (t Token) Is(text string) bool {
	return t.Kind != TokLiteral && t.Kind != TokDocComment && t.Text == text
}

func (t Token) String() string {
	if t.Kind == TokEOF {
		return "end of file"
	}
	return fmt.Sprintf("%q", t.Text)
}

// Error is a lexing or parsing failure at a source position.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func errorf(pos Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
