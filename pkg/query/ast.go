package query

// Expr is the closed set of AST node variants. The marker method keeps the
// set sealed inside this package; the evaluator switches exhaustively over
// these types.
type Expr interface {
	exprNode()
}

// Identity is the bare `.` filter.
type Identity struct{}

// Literal holds a constant value parsed from the query text.
type Literal struct {
	Val *Value
}

// Field accesses an object field on every result of Base.
type Field struct {
	Base Expr
	Name string
}

// Index accesses an array element (or an object field, when the index
// expression yields a string) on every result of Base.
type Index struct {
	Base Expr
	Idx  Expr
}

// Slice extracts a subrange of an array or string. Start and End may be nil
// for open-ended slices.
type Slice struct {
	Base  Expr
	Start Expr
	End   Expr
}

// Iterate is the `[]` accessor: expands an array or object into one result
// per element.
type Iterate struct {
	Base Expr
}

// Recurse is `..`: the input plus everything reachable by repeated
// field/index descent, pre-order.
type Recurse struct{}

// Pipe feeds every result of L through R (flat-map).
type Pipe struct {
	L, R Expr
}

// Binary covers arithmetic, comparison and logical operators. Op is the
// operator's source text ("+", "==", "and", ...).
type Binary struct {
	Op   string
	L, R Expr
}

// Not is the `not` prefix operator.
type Not struct {
	X Expr
}

// Neg is unary minus.
type Neg struct {
	X Expr
}

// FuncCall invokes a builtin with unevaluated argument expressions.
type FuncCall struct {
	Name string
	Args []Expr
}

// ElifClause is one `elif cond then expr` arm of a conditional.
type ElifClause struct {
	Cond Expr
	Then Expr
}

// If is the full if/then/elif/else/end form. Else is nil when absent, in
// which case the conditional yields its input unchanged on a false branch.
type If struct {
	Cond  Expr
	Then  Expr
	Elifs []ElifClause
	Else  Expr
}

// Try evaluates Body and, on a catchable error, evaluates Handler against
// the original input. A nil Handler yields an empty sequence.
type Try struct {
	Body    Expr
	Handler Expr
}

// Optional is the `?` postfix: suppress catchable errors, yielding nothing.
type Optional struct {
	X Expr
}

// Alt is the `//` operator: truthy results of L, or the results of R when L
// errors, is empty, or yields only null/false.
type Alt struct {
	L, R Expr
}

// ObjectEntry is one key/value pair in an object construction. Key is an
// expression so `{(.k): v}` computed keys work.
type ObjectEntry struct {
	Key   Expr
	Value Expr
}

// ObjectCons builds a new object from its entries, in order.
type ObjectCons struct {
	Entries []ObjectEntry
}

// ArrayCons builds a new array by collecting every result of every element
// expression.
type ArrayCons struct {
	Elems []Expr
}

func (Identity) exprNode()   {}
func (Literal) exprNode()    {}
func (Field) exprNode()      {}
func (Index) exprNode()      {}
func (Slice) exprNode()      {}
func (Iterate) exprNode()    {}
func (Recurse) exprNode()    {}
func (Pipe) exprNode()       {}
func (Binary) exprNode()     {}
func (Not) exprNode()        {}
func (Neg) exprNode()        {}
func (FuncCall) exprNode()   {}
func (If) exprNode()         {}
func (Try) exprNode()        {}
func (Optional) exprNode()   {}
func (Alt) exprNode()        {}
func (ObjectCons) exprNode() {}
func (ArrayCons) exprNode()  {}
