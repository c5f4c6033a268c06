package syntax

import (
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes Rust source text.
type Lexer struct {
	src  []byte
	pos  int
	line int
	col  int
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Tokenize consumes all source text and returns the token stream. The last
// token is always TokEOF.
func Tokenize(src []byte) ([]Token, error) {
	l := NewLexer(src)
	tokens := make([]Token, 0, max(len(src)/4, 16))
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Column: l.col}
}

func (l *Lexer) peekRune(offset int) rune {
	p := l.pos
	for i := 0; ; i++ {
		if p >= len(l.src) {
			return -1
		}
		r, size := utf8.DecodeRune(l.src[p:])
		if i == offset {
			return r
		}
		p += size
	}
}

func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return -1
	}
	r, size := utf8.DecodeRune(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) token(kind TokenKind, start Position, lo int) Token {
	return Token{
		Kind: kind,
		Text: string(l.src[lo:l.pos]),
		Span: Span{Start: start, End: l.position(), Lo: lo, Hi: l.pos},
	}
}

// Next returns the next token, skipping whitespace and non-doc comments.
func (l *Lexer) Next() (Token, error) {
	for {
		l.skipTrivia()
		start, lo := l.position(), l.pos
		r := l.peekRune(0)
		switch {
		case r == -1:
			return l.token(TokEOF, start, lo), nil
		case r == '/' && l.peekRune(1) == '/':
			if l.lineComment() {
				return l.token(TokDocComment, start, lo), nil
			}
		case r == '/' && l.peekRune(1) == '*':
			doc, err := l.blockComment(start)
			if err != nil {
				return Token{}, err
			}
			if doc {
				return l.token(TokDocComment, start, lo), nil
			}
		default:
			return l.scan(start, lo)
		}
	}
}

func (l *Lexer) skipTrivia() {
	for {
		r := l.peekRune(0)
		switch {
		case r == '\uFEFF' && l.pos == 0:
			l.advance()
		case r == '#' && l.pos == 0 && l.peekRune(1) == '!' && l.peekRune(2) != '[':
			// shebang line
			for r := l.peekRune(0); r != -1 && r != '\n'; r = l.peekRune(0) {
				l.advance()
			}
		case r != -1 && unicode.IsSpace(r):
			l.advance()
		default:
			return
		}
	}
}

// lineComment consumes a `//` comment and reports whether it is an outer
// doc comment.
func (l *Lexer) lineComment() bool {
	doc := l.peekRune(2) == '/' && l.peekRune(3) != '/'
	for r := l.peekRune(0); r != -1 && r != '\n'; r = l.peekRune(0) {
		l.advance()
	}
	return doc
}

// blockComment consumes a possibly nested `/* */` comment and reports
// whether it is an outer doc comment.
func (l *Lexer) blockComment(start Position) (bool, error) {
	third, fourth := l.peekRune(2), l.peekRune(3)
	doc := third == '*' && fourth != '*' && fourth != '/'
	l.advance()
	l.advance()
	depth := 1
	for depth > 0 {
		switch r := l.advance(); {
		case r == -1:
			return false, errorf(start, "unterminated block comment")
		case r == '/' && l.peekRune(0) == '*':
			l.advance()
			depth++
		case r == '*' && l.peekRune(0) == '/':
			l.advance()
			depth--
		}
	}
	return doc, nil
}

func (l *Lexer) scan(start Position, lo int) (Token, error) {
	r := l.peekRune(0)
	switch {
	case r == '"':
		return l.quoted(start, lo)
	case r == '\'':
		return l.quote(start, lo)
	case isIdentStart(r):
		return l.identOrPrefixed(start, lo)
	case r >= '0' && r <= '9':
		l.number()
		return l.token(TokLiteral, start, lo), nil
	}

	l.advance()
	switch r {
	case '(', '[', '{':
		return l.token(TokOpenDelim, start, lo), nil
	case ')', ']', '}':
		return l.token(TokCloseDelim, start, lo), nil
	case ':':
		if l.peekRune(0) == ':' {
			l.advance()
		}
	}
	return l.token(TokPunct, start, lo), nil
}

// identOrPrefixed scans an identifier, a raw identifier, or a literal with
// a b/c/r prefix.
func (l *Lexer) identOrPrefixed(start Position, lo int) (Token, error) {
	r0, r1, r2 := l.peekRune(0), l.peekRune(1), l.peekRune(2)
	switch {
	case r0 == 'r' && r1 == '#' && isIdentStart(r2):
		l.advance()
		l.advance()
		l.identTail()
		return l.token(TokIdent, start, lo), nil
	case r0 == 'r' && (r1 == '"' || r1 == '#'):
		l.advance()
		return l.rawString(start, lo)
	case (r0 == 'b' || r0 == 'c') && r1 == 'r' && (r2 == '"' || r2 == '#'):
		l.advance()
		l.advance()
		return l.rawString(start, lo)
	case (r0 == 'b' || r0 == 'c') && r1 == '"':
		l.advance()
		return l.quoted(start, lo)
	case r0 == 'b' && r1 == '\'':
		l.advance()
		return l.quote(start, lo)
	}
	l.identTail()
	return l.token(TokIdent, start, lo), nil
}

func (l *Lexer) identTail() {
	for isIdentContinue(l.peekRune(0)) {
		l.advance()
	}
}

func (l *Lexer) number() {
	for isIdentContinue(l.peekRune(0)) {
		l.advance()
	}
	if r1 := l.peekRune(1); l.peekRune(0) == '.' && r1 >= '0' && r1 <= '9' {
		l.advance()
		for isIdentContinue(l.peekRune(0)) {
			l.advance()
		}
	}
}

// quoted scans a `"..."` string whose opening quote is the next rune.
func (l *Lexer) quoted(start Position, lo int) (Token, error) {
	l.advance()
	for {
		switch l.advance() {
		case -1:
			return Token{}, errorf(start, "unterminated string literal")
		case '\\':
			l.advance()
		case '"':
			l.identTail() // literal suffix
			return l.token(TokLiteral, start, lo), nil
		}
	}
}

// rawString scans `#*"..."#*` after its r prefix.
func (l *Lexer) rawString(start Position, lo int) (Token, error) {
	hashes := 0
	for l.peekRune(0) == '#' {
		l.advance()
		hashes++
	}
	if l.advance() != '"' {
		return Token{}, errorf(start, "malformed raw string literal")
	}
	for {
		switch l.advance() {
		case -1:
			return Token{}, errorf(start, "unterminated raw string literal")
		case '"':
			n := 0
			for n < hashes && l.peekRune(0) == '#' {
				l.advance()
				n++
			}
			if n == hashes {
				l.identTail()
				return l.token(TokLiteral, start, lo), nil
			}
		}
	}
}

// quote scans a character literal or a lifetime; the next rune is `'`.
func (l *Lexer) quote(start Position, lo int) (Token, error) {
	l.advance()
	r := l.peekRune(0)
	switch {
	case r == '\\':
		l.advance()
		l.advance()
		for {
			switch l.advance() {
			case -1, '\n':
				return Token{}, errorf(start, "unterminated character literal")
			case '\'':
				l.identTail()
				return l.token(TokLiteral, start, lo), nil
			}
		}
	case r == -1:
		return Token{}, errorf(start, "unterminated character literal")
	case l.peekRune(1) == '\'':
		l.advance()
		l.advance()
		l.identTail()
		return l.token(TokLiteral, start, lo), nil
	case isIdentStart(r):
		l.identTail()
		return l.token(TokLifetime, start, lo), nil
	}
	return Token{}, errorf(start, "malformed character literal")
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
