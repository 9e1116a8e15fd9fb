package query

import "fmt"

// ErrorKind classifies query failures. Parse errors are raised before
// evaluation begins and are never catchable from inside a query;
// every other kind can be intercepted by try/catch, ? or //.
type ErrorKind int

const (
	ErrParse ErrorKind = iota
	ErrType
	ErrPathNotFound
	ErrIndexOutOfRange
	ErrDivisionByZero
	ErrRegex
	ErrCustom
)

func (k ErrorKind) String() string {
	switch k {
	case ErrParse:
		return "parse error"
	case ErrType:
		return "type error"
	case ErrPathNotFound:
		return "path not found"
	case ErrIndexOutOfRange:
		return "index out of range"
	case ErrDivisionByZero:
		return "division by zero"
	case ErrRegex:
		return "regex error"
	case ErrCustom:
		return "error"
	}
	return "unknown error"
}

// QueryError is the single error type produced by the engine.
// Pos is a byte offset into the query string; it is only meaningful
// for parse errors and is -1 otherwise.
type QueryError struct {
	Kind ErrorKind
	Msg  string
	Pos  int
}

func (e *QueryError) Error() string {
	if e.Kind == ErrParse && e.Pos >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Kind, e.Pos, e.Msg)
	}
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Catchable reports whether a query-level try/catch may intercept e.
func (e *QueryError) Catchable() bool {
	return e.Kind != ErrParse
}

func parseErrorf(pos int, format string, args ...any) *QueryError {
	return &QueryError{Kind: ErrParse, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

func typeErrorf(format string, args ...any) *QueryError {
	return &QueryError{Kind: ErrType, Msg: fmt.Sprintf(format, args...), Pos: -1}
}

func indexErrorf(format string, args ...any) *QueryError {
	return &QueryError{Kind: ErrIndexOutOfRange, Msg: fmt.Sprintf(format, args...), Pos: -1}
}

func pathErrorf(format string, args ...any) *QueryError {
	return &QueryError{Kind: ErrPathNotFound, Msg: fmt.Sprintf(format, args...), Pos: -1}
}

func regexErrorf(format string, args ...any) *QueryError {
	return &QueryError{Kind: ErrRegex, Msg: fmt.Sprintf(format, args...), Pos: -1}
}

func customError(msg string) *QueryError {
	return &QueryError{Kind: ErrCustom, Msg: msg, Pos: -1}
}

var errDivisionByZero = &QueryError{Kind: ErrDivisionByZero, Pos: -1}
