package query

type tokenType int

const (
	tokEOF tokenType = iota
	tokDot
	tokDotDot
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokPipe
	tokComma
	tokColon
	tokQuestion
	tokIdent
	tokNumber
	tokString
	tokKeyword

	// comparison
	tokEq
	tokNe
	tokLt
	tokLe
	tokGt
	tokGe

	// arithmetic
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent

	// alternative
	tokAlt

	// assignment
	tokAssign
	tokAddAssign
	tokSubAssign
	tokMulAssign
	tokDivAssign
	tokPipeAssign
)

type token struct {
	typ tokenType
	lit string
	pos int
	num float64
	// isInt marks number literals that were written without a fraction.
	isInt bool
}

var keywords = map[string]bool{
	"if":    true,
	"then":  true,
	"elif":  true,
	"else":  true,
	"end":   true,
	"try":   true,
	"catch": true,
	"and":   true,
	"or":    true,
	"not":   true,
}

// clauseKeywords continue or close an enclosing construct, so a dot never
// reads them as bare field names; `if . then ...` must see its `then`.
// Fields with these names stay reachable as `.["end"]`.
var clauseKeywords = map[string]bool{
	"then":  true,
	"elif":  true,
	"else":  true,
	"end":   true,
	"catch": true,
}

func (t token) isKeyword(word string) bool {
	return t.typ == tokKeyword && t.lit == word
}
