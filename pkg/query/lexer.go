package query

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer turns a query string into a token stream. It is a plain scanner
// with one rune of lookahead; all disambiguation between multi-character
// operators (.., //, <=, |=, ...) happens here so the parser only deals
// with whole tokens.
type lexer struct {
	input string
	pos   int
	toks  []token
}

func lex(input string) ([]token, *QueryError) {
	l := &lexer{input: input}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.toks, nil
}

func (l *lexer) run() *QueryError {
	for {
		l.skipSpace()
		if l.pos >= len(l.input) {
			l.emit(token{typ: tokEOF, pos: l.pos})
			return nil
		}
		start := l.pos
		ch := l.input[l.pos]
		switch {
		case ch == '.':
			if l.peekAt(1) == '.' {
				l.pos += 2
				l.emit(token{typ: tokDotDot, lit: "..", pos: start})
			} else {
				l.pos++
				l.emit(token{typ: tokDot, lit: ".", pos: start})
			}
		case ch == '[':
			l.pos++
			l.emit(token{typ: tokLBracket, lit: "[", pos: start})
		case ch == ']':
			l.pos++
			l.emit(token{typ: tokRBracket, lit: "]", pos: start})
		case ch == '{':
			l.pos++
			l.emit(token{typ: tokLBrace, lit: "{", pos: start})
		case ch == '}':
			l.pos++
			l.emit(token{typ: tokRBrace, lit: "}", pos: start})
		case ch == '(':
			l.pos++
			l.emit(token{typ: tokLParen, lit: "(", pos: start})
		case ch == ')':
			l.pos++
			l.emit(token{typ: tokRParen, lit: ")", pos: start})
		case ch == ',':
			l.pos++
			l.emit(token{typ: tokComma, lit: ",", pos: start})
		case ch == ':':
			l.pos++
			l.emit(token{typ: tokColon, lit: ":", pos: start})
		case ch == '?':
			l.pos++
			l.emit(token{typ: tokQuestion, lit: "?", pos: start})
		case ch == '|':
			if l.peekAt(1) == '=' {
				l.pos += 2
				l.emit(token{typ: tokPipeAssign, lit: "|=", pos: start})
			} else {
				l.pos++
				l.emit(token{typ: tokPipe, lit: "|", pos: start})
			}
		case ch == '=':
			if l.peekAt(1) == '=' {
				l.pos += 2
				l.emit(token{typ: tokEq, lit: "==", pos: start})
			} else {
				l.pos++
				l.emit(token{typ: tokAssign, lit: "=", pos: start})
			}
		case ch == '!':
			if l.peekAt(1) != '=' {
				return parseErrorf(start, "unexpected character %q", ch)
			}
			l.pos += 2
			l.emit(token{typ: tokNe, lit: "!=", pos: start})
		case ch == '<':
			if l.peekAt(1) == '=' {
				l.pos += 2
				l.emit(token{typ: tokLe, lit: "<=", pos: start})
			} else {
				l.pos++
				l.emit(token{typ: tokLt, lit: "<", pos: start})
			}
		case ch == '>':
			if l.peekAt(1) == '=' {
				l.pos += 2
				l.emit(token{typ: tokGe, lit: ">=", pos: start})
			} else {
				l.pos++
				l.emit(token{typ: tokGt, lit: ">", pos: start})
			}
		case ch == '+':
			if l.peekAt(1) == '=' {
				l.pos += 2
				l.emit(token{typ: tokAddAssign, lit: "+=", pos: start})
			} else {
				l.pos++
				l.emit(token{typ: tokPlus, lit: "+", pos: start})
			}
		case ch == '-':
			if l.peekAt(1) == '=' {
				l.pos += 2
				l.emit(token{typ: tokSubAssign, lit: "-=", pos: start})
			} else {
				l.pos++
				l.emit(token{typ: tokMinus, lit: "-", pos: start})
			}
		case ch == '*':
			if l.peekAt(1) == '=' {
				l.pos += 2
				l.emit(token{typ: tokMulAssign, lit: "*=", pos: start})
			} else {
				l.pos++
				l.emit(token{typ: tokStar, lit: "*", pos: start})
			}
		case ch == '/':
			switch l.peekAt(1) {
			case '/':
				l.pos += 2
				l.emit(token{typ: tokAlt, lit: "//", pos: start})
			case '=':
				l.pos += 2
				l.emit(token{typ: tokDivAssign, lit: "/=", pos: start})
			default:
				l.pos++
				l.emit(token{typ: tokSlash, lit: "/", pos: start})
			}
		case ch == '%':
			l.pos++
			l.emit(token{typ: tokPercent, lit: "%", pos: start})
		case ch == '"':
			if err := l.lexString(); err != nil {
				return err
			}
		case ch >= '0' && ch <= '9':
			if err := l.lexNumber(); err != nil {
				return err
			}
		case isIdentStart(rune(ch)):
			l.lexIdent()
		default:
			return parseErrorf(start, "unexpected character %q", ch)
		}
	}
}

func (l *lexer) emit(t token) {
	l.toks = append(l.toks, t)
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.pos += size
	}
}

func (l *lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// lexString scans a JSON-style double-quoted literal, including escapes.
func (l *lexer) lexString() *QueryError {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch ch {
		case '"':
			l.pos++
			l.emit(token{typ: tokString, lit: sb.String(), pos: start})
			return nil
		case '\\':
			// Let strconv handle the full JSON escape set, \uXXXX included.
			end := l.pos + 2
			if end > len(l.input) {
				return parseErrorf(start, "unterminated string literal")
			}
			if l.input[l.pos+1] == 'u' {
				end = l.pos + 6
				if end > len(l.input) {
					return parseErrorf(start, "invalid unicode escape")
				}
			}
			unquoted, err := strconv.Unquote(`"` + l.input[l.pos:end] + `"`)
			if err != nil {
				return parseErrorf(l.pos, "invalid escape sequence %q", l.input[l.pos:end])
			}
			sb.WriteString(unquoted)
			l.pos = end
		default:
			sb.WriteByte(ch)
			l.pos++
		}
	}
	return parseErrorf(start, "unterminated string literal")
}

func (l *lexer) lexNumber() *QueryError {
	start := l.pos
	isInt := true
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch >= '0' && ch <= '9' {
			l.pos++
			continue
		}
		if ch == '.' && l.peekAt(1) >= '0' && l.peekAt(1) <= '9' && isInt {
			isInt = false
			l.pos++
			continue
		}
		if (ch == 'e' || ch == 'E') && l.pos > start {
			isInt = false
			l.pos++
			if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
				l.pos++
			}
			continue
		}
		break
	}
	lit := l.input[start:l.pos]
	num, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return parseErrorf(start, "invalid number literal %q", lit)
	}
	l.emit(token{typ: tokNumber, lit: lit, pos: start, num: num, isInt: isInt})
	return nil
}

func (l *lexer) lexIdent() {
	start := l.pos
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.pos += size
	}
	lit := l.input[start:l.pos]
	if keywords[lit] {
		l.emit(token{typ: tokKeyword, lit: lit, pos: start})
		return
	}
	l.emit(token{typ: tokIdent, lit: lit, pos: start})
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
