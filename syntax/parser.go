package syntax

// Parser converts a token stream into top-level items.
type Parser struct {
	src  []byte
	toks []Token
	pos  int
}

// Parse tokenizes and parses a complete source file.
func Parse(src []byte) (*File, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &Parser{src: src, toks: toks}
	return p.parseFile()
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TokEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) spanFrom(first, last Token) Span {
	return Span{
		Start: first.Span.Start,
		End:   last.Span.End,
		Lo:    first.Span.Lo,
		Hi:    last.Span.Hi,
	}
}

func (p *Parser) parseFile() (*File, error) {
	file := &File{}
	for {
		tok := p.peek()
		switch {
		case tok.Kind == TokEOF:
			return file, nil
		case tok.Is("#") && p.peekN(1).Is("!") && p.peekN(2).Is("["):
			// inner attribute
			p.next()
			p.next()
			if _, err := p.skipDelimited(); err != nil {
				return nil, err
			}
		case tok.Is(";"):
			p.next()
		default:
			item, err := p.parseItem()
			if err != nil {
				return nil, err
			}
			file.Items = append(file.Items, item)
		}
	}
}

func (p *Parser) parseItem() (Item, error) {
	first := p.peek()
	var attrs []string
	for {
		tok := p.peek()
		if tok.Kind == TokDocComment {
			attrs = append(attrs, tok.Text)
			p.next()
			continue
		}
		if tok.Is("#") && p.peekN(1).Is("[") {
			p.next()
			end, err := p.skipDelimited()
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, string(p.src[tok.Span.Lo:end.Span.Hi]))
			continue
		}
		break
	}
	if tok := p.peek(); tok.Kind == TokEOF {
		return nil, errorf(tok.Span.Start, "expected item after attributes")
	}

	vis, err := p.parseVis()
	if err != nil {
		return nil, err
	}
	switch tok := p.peek(); {
	case tok.Is("use"):
		return p.parseUse(first, attrs, vis)
	case tok.Is("mod"):
		return p.parseMod(first, attrs, vis)
	}
	return p.skipItem(first)
}

func (p *Parser) parseVis() (string, error) {
	tok := p.peek()
	if !tok.Is("pub") {
		return "", nil
	}
	p.next()
	end := tok
	if p.peek().Is("(") {
		switch p.peekN(1).Text {
		case "crate", "self", "super", "in":
			last, err := p.skipDelimited()
			if err != nil {
				return "", err
			}
			end = last
		}
	}
	return string(p.src[tok.Span.Lo:end.Span.Hi]), nil
}

func (p *Parser) parseUse(first Token, attrs []string, vis string) (*ItemUse, error) {
	p.next()
	item := &ItemUse{Attrs: attrs, Vis: vis}
	if p.peek().Is("::") {
		p.next()
		item.LeadingColon = true
	}
	tree, err := p.parseUseTree()
	if err != nil {
		return nil, err
	}
	semi := p.peek()
	if !semi.Is(";") {
		return nil, errorf(semi.Span.Start, "expected `;` after use tree, found %s", semi)
	}
	p.next()
	item.Tree = tree
	item.Span = p.spanFrom(first, semi)
	return item, nil
}

func (p *Parser) parseUseTree() (UseTree, error) {
	tok := p.peek()
	switch {
	case tok.Is("*"):
		p.next()
		return &UseGlob{}, nil
	case tok.Is("{"):
		p.next()
		group := &UseGroup{}
		for {
			if p.peek().Is("}") {
				p.next()
				return group, nil
			}
			item, err := p.parseUseTree()
			if err != nil {
				return nil, err
			}
			group.Items = append(group.Items, item)
			switch sep := p.peek(); {
			case sep.Is(","):
				p.next()
			case !sep.Is("}"):
				return nil, errorf(sep.Span.Start, "expected `,` or `}` in use group, found %s", sep)
			}
		}
	case tok.Kind == TokIdent:
		p.next()
		if p.peek().Is("::") {
			p.next()
			sub, err := p.parseUseTree()
			if err != nil {
				return nil, err
			}
			return &UsePath{Ident: tok.Text, Tree: sub}, nil
		}
		if p.peek().Is("as") {
			p.next()
			rename := p.peek()
			if rename.Kind != TokIdent {
				return nil, errorf(rename.Span.Start, "expected identifier after `as`, found %s", rename)
			}
			p.next()
			return &UseRename{Ident: tok.Text, Rename: rename.Text}, nil
		}
		return &UseName{Ident: tok.Text}, nil
	}
	return nil, errorf(tok.Span.Start, "expected use tree, found %s", tok)
}

func (p *Parser) parseMod(first Token, attrs []string, vis string) (*ItemMod, error) {
	p.next()
	ident := p.peek()
	if ident.Kind != TokIdent {
		return nil, errorf(ident.Span.Start, "expected module name, found %s", ident)
	}
	p.next()
	item := &ItemMod{Attrs: attrs, Vis: vis, Ident: ident.Text}
	switch tok := p.peek(); {
	case tok.Is(";"):
		p.next()
		item.Span = p.spanFrom(first, tok)
	case tok.Is("{"):
		last, err := p.skipDelimited()
		if err != nil {
			return nil, err
		}
		item.Inline = true
		item.Span = p.spanFrom(first, last)
	default:
		return nil, errorf(tok.Span.Start, "expected `;` or `{` after module name, found %s", tok)
	}
	return item, nil
}

// skipItem consumes an item this package does not model. Items end at a
// top-level `;`, or at the closing brace of their body unless they are
// const, static or type items, which always end in `;`.
func (p *Parser) skipItem(first Token) (*ItemOther, error) {
	kw := p.peek()
	semiOnly := kw.Is("static") || kw.Is("type") || (kw.Is("const") && !isFnQualifier(p.peekN(1)))
	for {
		tok := p.peek()
		switch {
		case tok.Kind == TokEOF:
			return nil, errorf(first.Span.Start, "unexpected end of file in item")
		case tok.Kind == TokOpenDelim:
			last, err := p.skipDelimited()
			if err != nil {
				return nil, err
			}
			if tok.Is("{") && !semiOnly {
				return &ItemOther{Span: p.spanFrom(first, last)}, nil
			}
		case tok.Kind == TokCloseDelim:
			return nil, errorf(tok.Span.Start, "unexpected closing delimiter %s", tok)
		case tok.Is(";"):
			p.next()
			return &ItemOther{Span: p.spanFrom(first, tok)}, nil
		default:
			p.next()
		}
	}
}

func isFnQualifier(tok Token) bool {
	switch tok.Text {
	case "fn", "unsafe", "async", "extern":
		return tok.Kind == TokIdent
	}
	return false
}

var closing = map[string]string{"(": ")", "[": "]", "{": "}"}

// skipDelimited consumes a balanced delimiter group starting at the current
// open delimiter and returns its closing token.
func (p *Parser) skipDelimited() (Token, error) {
	open := p.next()
	if open.Kind != TokOpenDelim {
		return Token{}, errorf(open.Span.Start, "expected delimiter, found %s", open)
	}
	stack := []Token{open}
	for {
		tok := p.next()
		switch tok.Kind {
		case TokEOF:
			top := stack[len(stack)-1]
			return Token{}, errorf(top.Span.Start, "unclosed delimiter %s", top)
		case TokOpenDelim:
			stack = append(stack, tok)
		case TokCloseDelim:
			top := stack[len(stack)-1]
			if closing[top.Text] != tok.Text {
				return Token{}, errorf(tok.Span.Start, "mismatched closing delimiter %s", tok)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return tok, nil
			}
		}
	}
}
