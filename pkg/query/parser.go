package query

// Parser: recursive descent over the token stream, precedence low to high:
// pipe, alternative, or, and, comparison, additive, multiplicative, unary,
// postfix accessor chain, primary. Accessor segments chain arbitrarily, so
// `.a.b[0].c[]` is five segments hanging off one base.

type parser struct {
	toks []token
	pos  int
}

// Parse compiles a query string into an expression tree. The returned error
// is always a *QueryError with kind ErrParse.
func Parse(input string) (Expr, error) {
	toks, lerr := lex(input)
	if lerr != nil {
		return nil, lerr
	}
	p := &parser{toks: toks}
	expr, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	if p.cur().typ != tokEOF {
		return nil, parseErrorf(p.cur().pos, "unexpected %q", p.cur().lit)
	}
	return expr, nil
}

func (p *parser) cur() token { return p.toks[p.pos] }
func (p *parser) peek() token {
	if p.pos+1 < len(p.toks) {
		return p.toks[p.pos+1]
	}
	return p.toks[len(p.toks)-1]
}
func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(typ tokenType, what string) (token, *QueryError) {
	if p.cur().typ != typ {
		return token{}, parseErrorf(p.cur().pos, "expected %s, found %q", what, p.cur().lit)
	}
	return p.advance(), nil
}

func (p *parser) expectKeyword(word string) *QueryError {
	if !p.cur().isKeyword(word) {
		return parseErrorf(p.cur().pos, "expected %q, found %q", word, p.cur().lit)
	}
	p.advance()
	return nil
}

func (p *parser) parsePipe() (Expr, *QueryError) {
	left, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	for p.cur().typ == tokPipe {
		pipe := p.advance()
		if p.cur().typ == tokEOF {
			return nil, parseErrorf(pipe.pos, "dangling pipe")
		}
		right, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		left = Pipe{L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseAlt() (Expr, *QueryError) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	for p.cur().typ == tokAlt {
		p.advance()
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = Alt{L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseOr() (Expr, *QueryError) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().isKeyword("or") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: "or", L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, *QueryError) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.cur().isKeyword("and") {
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: "and", L: left, R: right}
	}
	return left, nil
}

var comparisonOps = map[tokenType]string{
	tokEq: "==", tokNe: "!=",
	tokLt: "<", tokLe: "<=",
	tokGt: ">", tokGe: ">=",
}

func (p *parser) parseComparison() (Expr, *QueryError) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if op, ok := comparisonOps[p.cur().typ]; ok {
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseAdditive() (Expr, *QueryError) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur().typ == tokPlus || p.cur().typ == tokMinus {
		op := p.advance().lit
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (Expr, *QueryError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur().typ == tokStar || p.cur().typ == tokSlash || p.cur().typ == tokPercent {
		op := p.advance().lit
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, L: left, R: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, *QueryError) {
	if p.cur().isKeyword("not") {
		p.advance()
		if !p.startsExpression() {
			// Pipe-style usage: `.active | not`.
			return Not{X: Identity{}}, nil
		}
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{X: inner}, nil
	}
	if p.cur().typ == tokMinus {
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg{X: inner}, nil
	}
	return p.parsePostfix()
}

// startsExpression reports whether the current token can begin a primary.
func (p *parser) startsExpression() bool {
	switch p.cur().typ {
	case tokDot, tokDotDot, tokNumber, tokString, tokIdent, tokLParen, tokLBracket, tokLBrace, tokMinus:
		return true
	case tokKeyword:
		return p.cur().lit == "if" || p.cur().lit == "try" || p.cur().lit == "not"
	}
	return false
}

func (p *parser) parsePostfix() (Expr, *QueryError) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().typ {
		case tokDot:
			// Lookahead decides between a chained field and a stray dot.
			nxt := p.peek()
			if nxt.typ == tokIdent || nxt.typ == tokString ||
				(nxt.typ == tokKeyword && !clauseKeywords[nxt.lit]) {
				p.advance()
				name := p.advance()
				expr = Field{Base: expr, Name: name.lit}
				continue
			}
			if nxt.typ == tokLBracket {
				// `.a.[0]` form: the dot is decorative.
				p.advance()
				continue
			}
			return nil, parseErrorf(p.cur().pos, "expected field name after '.'")
		case tokLBracket:
			open := p.advance()
			seg, err := p.parseBracketSegment(expr, open)
			if err != nil {
				return nil, err
			}
			expr = seg
		case tokQuestion:
			p.advance()
			expr = Optional{X: expr}
		default:
			return expr, nil
		}
	}
}

// parseBracketSegment handles everything after an opening bracket in a
// postfix chain: `[]`, `[*]`, `[expr]`, `[a:b]`, `[:b]`, `[a:]`.
func (p *parser) parseBracketSegment(base Expr, open token) (Expr, *QueryError) {
	switch p.cur().typ {
	case tokRBracket:
		p.advance()
		return Iterate{Base: base}, nil
	case tokStar:
		if p.peek().typ == tokRBracket {
			p.advance()
			p.advance()
			return Iterate{Base: base}, nil
		}
	case tokColon:
		p.advance()
		end, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRBracket, "']'"); err != nil {
			return nil, err
		}
		return Slice{Base: base, End: end}, nil
	}
	idx, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	if p.cur().typ == tokColon {
		p.advance()
		if p.cur().typ == tokRBracket {
			p.advance()
			return Slice{Base: base, Start: idx}, nil
		}
		end, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRBracket, "']'"); err != nil {
			return nil, err
		}
		return Slice{Base: base, Start: idx, End: end}, nil
	}
	if p.cur().typ != tokRBracket {
		return nil, parseErrorf(open.pos, "unbalanced bracket")
	}
	p.advance()
	return Index{Base: base, Idx: idx}, nil
}

func (p *parser) parsePrimary() (Expr, *QueryError) {
	switch p.cur().typ {
	case tokDot:
		p.advance()
		if p.cur().typ == tokIdent || p.cur().typ == tokString ||
			(p.cur().typ == tokKeyword && !clauseKeywords[p.cur().lit]) {
			name := p.advance()
			return Field{Base: Identity{}, Name: name.lit}, nil
		}
		return Identity{}, nil
	case tokDotDot:
		p.advance()
		return Recurse{}, nil
	case tokNumber:
		t := p.advance()
		if t.isInt {
			return Literal{Val: NewInt(int64(t.num))}, nil
		}
		return Literal{Val: NewFloat(t.num)}, nil
	case tokString:
		t := p.advance()
		return Literal{Val: NewString(t.lit)}, nil
	case tokIdent:
		return p.parseIdent()
	case tokKeyword:
		switch p.cur().lit {
		case "if":
			return p.parseIf()
		case "try":
			return p.parseTry()
		}
		return nil, parseErrorf(p.cur().pos, "unexpected keyword %q", p.cur().lit)
	case tokLParen:
		p.advance()
		inner, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	case tokLBracket:
		return p.parseArrayCons()
	case tokLBrace:
		return p.parseObjectCons()
	}
	return nil, parseErrorf(p.cur().pos, "unexpected %q", p.cur().lit)
}

func (p *parser) parseIdent() (Expr, *QueryError) {
	t := p.advance()
	switch t.lit {
	case "true":
		return Literal{Val: NewBool(true)}, nil
	case "false":
		return Literal{Val: NewBool(false)}, nil
	case "null":
		return Literal{Val: NewNull()}, nil
	}
	if p.cur().typ == tokLParen {
		p.advance()
		var args []Expr
		if p.cur().typ != tokRParen {
			for {
				arg, err := p.parsePipe()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.cur().typ != tokComma {
					break
				}
				p.advance()
			}
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		if err := checkBuiltin(t, len(args)); err != nil {
			return nil, err
		}
		return FuncCall{Name: t.lit, Args: args}, nil
	}
	if _, ok := builtins[t.lit]; ok {
		if err := checkBuiltin(t, 0); err != nil {
			return nil, err
		}
		return FuncCall{Name: t.lit}, nil
	}
	// Unquoted bare word: a string literal, as used for defaults
	// (`.mode // fast`) and assignment values.
	return Literal{Val: NewString(t.lit)}, nil
}

func checkBuiltin(t token, argc int) *QueryError {
	b, ok := builtins[t.lit]
	if !ok {
		return parseErrorf(t.pos, "unknown function %q", t.lit)
	}
	if argc < b.minArgs || argc > b.maxArgs {
		if b.minArgs == b.maxArgs {
			return parseErrorf(t.pos, "%s expects %d argument(s), got %d", t.lit, b.minArgs, argc)
		}
		return parseErrorf(t.pos, "%s expects %d to %d arguments, got %d", t.lit, b.minArgs, b.maxArgs, argc)
	}
	return nil
}

func (p *parser) parseIf() (Expr, *QueryError) {
	p.advance() // if
	cond, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	then, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	out := If{Cond: cond, Then: then}
	for p.cur().isKeyword("elif") {
		p.advance()
		econd, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("then"); err != nil {
			return nil, err
		}
		ethen, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		out.Elifs = append(out.Elifs, ElifClause{Cond: econd, Then: ethen})
	}
	if p.cur().isKeyword("else") {
		p.advance()
		els, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		out.Else = els
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parseTry() (Expr, *QueryError) {
	p.advance() // try
	body, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	out := Try{Body: body}
	if p.cur().isKeyword("catch") {
		p.advance()
		handler, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		out.Handler = handler
	}
	return out, nil
}

func (p *parser) parseArrayCons() (Expr, *QueryError) {
	open := p.advance() // [
	if p.cur().typ == tokRBracket {
		p.advance()
		return ArrayCons{}, nil
	}
	var elems []Expr
	for {
		elem, err := p.parsePipe()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if p.cur().typ != tokComma {
			break
		}
		p.advance()
	}
	if p.cur().typ != tokRBracket {
		return nil, parseErrorf(open.pos, "unbalanced bracket")
	}
	p.advance()
	return ArrayCons{Elems: elems}, nil
}

func (p *parser) parseObjectCons() (Expr, *QueryError) {
	open := p.advance() // {
	out := ObjectCons{}
	if p.cur().typ == tokRBrace {
		p.advance()
		return out, nil
	}
	for {
		entry, err := p.parseObjectEntry()
		if err != nil {
			return nil, err
		}
		out.Entries = append(out.Entries, entry)
		if p.cur().typ != tokComma {
			break
		}
		p.advance()
	}
	if p.cur().typ != tokRBrace {
		return nil, parseErrorf(open.pos, "unbalanced brace")
	}
	p.advance()
	return out, nil
}

func (p *parser) parseObjectEntry() (ObjectEntry, *QueryError) {
	var entry ObjectEntry
	switch p.cur().typ {
	case tokIdent, tokKeyword, tokString:
		name := p.advance()
		entry.Key = Literal{Val: NewString(name.lit)}
		if p.cur().typ != tokColon {
			// Shorthand `{name}` means `{name: .name}`.
			entry.Value = Field{Base: Identity{}, Name: name.lit}
			return entry, nil
		}
	case tokLParen:
		p.advance()
		key, err := p.parsePipe()
		if err != nil {
			return entry, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return entry, err
		}
		entry.Key = key
	default:
		return entry, parseErrorf(p.cur().pos, "expected object key, found %q", p.cur().lit)
	}
	if _, err := p.expect(tokColon, "':'"); err != nil {
		return entry, err
	}
	// Object values bind tighter than pipes and commas so entries stay
	// unambiguous; parenthesize to use a pipeline as a value.
	val, err := p.parseAlt()
	if err != nil {
		return entry, err
	}
	entry.Value = val
	return entry, nil
}
