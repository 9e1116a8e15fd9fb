package query

import "math"

// Seq is an ordered, finite list of results from one evaluation. Pipes
// flat-map over it: every element of one stage feeds the next stage once.
type Seq []*Value

// First returns the first result, or null for an empty sequence.
func (s Seq) First() *Value {
	if len(s) == 0 {
		return NewNull()
	}
	return s[0]
}

// maxEvalDepth bounds evaluator recursion so pathologically nested queries
// or values fail with a catchable error instead of exhausting the stack.
const maxEvalDepth = 2048

type evaluator struct {
	depth int
}

// Execute runs a query against a value in read mode. The value is never
// mutated; re-running the same pair yields identical output.
func Execute(v *Value, queryStr string) (Seq, error) {
	expr, err := Parse(queryStr)
	if err != nil {
		return nil, err
	}
	ev := &evaluator{}
	out, qerr := ev.eval(v, expr)
	if qerr != nil {
		return nil, qerr
	}
	return out, nil
}

func (ev *evaluator) eval(in *Value, e Expr) (Seq, *QueryError) {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.depth > maxEvalDepth {
		return nil, customError("evaluation depth limit exceeded")
	}

	switch n := e.(type) {
	case Identity:
		return Seq{in}, nil

	case Literal:
		return Seq{n.Val.Clone()}, nil

	case Field:
		base, err := ev.eval(in, n.Base)
		if err != nil {
			return nil, err
		}
		out := make(Seq, 0, len(base))
		for _, b := range base {
			v, err := fieldAccess(b, n.Name)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case Index:
		base, err := ev.eval(in, n.Base)
		if err != nil {
			return nil, err
		}
		idxs, err := ev.eval(in, n.Idx)
		if err != nil {
			return nil, err
		}
		var out Seq
		for _, b := range base {
			for _, i := range idxs {
				v, err := indexAccess(b, i)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
		}
		return out, nil

	case Slice:
		base, err := ev.eval(in, n.Base)
		if err != nil {
			return nil, err
		}
		start, err := ev.sliceBound(in, n.Start)
		if err != nil {
			return nil, err
		}
		end, err := ev.sliceBound(in, n.End)
		if err != nil {
			return nil, err
		}
		out := make(Seq, 0, len(base))
		for _, b := range base {
			v, err := sliceValue(b, start, end)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case Iterate:
		base, err := ev.eval(in, n.Base)
		if err != nil {
			return nil, err
		}
		var out Seq
		for _, b := range base {
			switch b.Kind() {
			case KindArray:
				out = append(out, b.Elems()...)
			case KindObject:
				b.Entries(func(_ string, v *Value) {
					out = append(out, v)
				})
			default:
				return nil, typeErrorf("cannot iterate over %s", b.TypeName())
			}
		}
		return out, nil

	case Recurse:
		return recurseAll(in), nil

	case Pipe:
		left, err := ev.eval(in, n.L)
		if err != nil {
			return nil, err
		}
		var out Seq
		for _, v := range left {
			results, err := ev.eval(v, n.R)
			if err != nil {
				return nil, err
			}
			out = append(out, results...)
		}
		return out, nil

	case Binary:
		return ev.evalBinary(in, n)

	case Not:
		inner, err := ev.eval(in, n.X)
		if err != nil {
			return nil, err
		}
		out := make(Seq, 0, len(inner))
		for _, v := range inner {
			out = append(out, NewBool(!v.IsTruthy()))
		}
		return out, nil

	case Neg:
		inner, err := ev.eval(in, n.X)
		if err != nil {
			return nil, err
		}
		out := make(Seq, 0, len(inner))
		for _, v := range inner {
			if v.Kind() != KindNumber {
				return nil, typeErrorf("cannot negate %s", v.TypeName())
			}
			neg := &Value{kind: KindNumber, num: -v.num, isInt: v.isInt}
			out = append(out, neg)
		}
		return out, nil

	case FuncCall:
		return builtins[n.Name].fn(ev, in, n.Args)

	case If:
		return ev.evalIf(in, n)

	case Try:
		out, err := ev.eval(in, n.Body)
		if err == nil {
			return out, nil
		}
		if !err.Catchable() {
			return nil, err
		}
		if n.Handler == nil {
			return Seq{}, nil
		}
		// The catch body receives the error message as its input.
		return ev.eval(NewString(err.Msg), n.Handler)

	case Optional:
		out, err := ev.eval(in, n.X)
		if err != nil {
			if !err.Catchable() {
				return nil, err
			}
			return Seq{}, nil
		}
		return out, nil

	case Alt:
		left, err := ev.eval(in, n.L)
		if err == nil {
			var truthy Seq
			for _, v := range left {
				if v.IsTruthy() {
					truthy = append(truthy, v)
				}
			}
			if len(truthy) > 0 {
				return truthy, nil
			}
		} else if !err.Catchable() {
			return nil, err
		}
		return ev.eval(in, n.R)

	case ObjectCons:
		obj := NewObject()
		for _, entry := range n.Entries {
			keys, err := ev.eval(in, entry.Key)
			if err != nil {
				return nil, err
			}
			key := keys.First()
			if key.Kind() != KindString {
				return nil, typeErrorf("object key must be a string, got %s", key.TypeName())
			}
			vals, err := ev.eval(in, entry.Value)
			if err != nil {
				return nil, err
			}
			obj.Set(key.Str(), vals.First())
		}
		return Seq{obj}, nil

	case ArrayCons:
		arr := NewArray()
		for _, elem := range n.Elems {
			results, err := ev.eval(in, elem)
			if err != nil {
				return nil, err
			}
			for _, v := range results {
				arr.Append(v)
			}
		}
		return Seq{arr}, nil
	}
	return nil, typeErrorf("unhandled expression node %T", e)
}

func fieldAccess(in *Value, name string) (*Value, *QueryError) {
	switch in.Kind() {
	case KindObject:
		if v, ok := in.Get(name); ok {
			return v, nil
		}
		return NewNull(), nil
	case KindNull:
		return NewNull(), nil
	}
	return nil, typeErrorf("cannot access field %q on %s", name, in.TypeName())
}

func indexAccess(base, idx *Value) (*Value, *QueryError) {
	switch idx.Kind() {
	case KindNumber:
		if base.Kind() == KindNull {
			return NewNull(), nil
		}
		if base.Kind() != KindArray {
			return nil, typeErrorf("cannot index %s with number", base.TypeName())
		}
		i := int(idx.Int())
		if i < 0 {
			i += base.Len()
		}
		if i < 0 || i >= base.Len() {
			return NewNull(), nil
		}
		return base.Elems()[i], nil
	case KindString:
		return fieldAccess(base, idx.Str())
	}
	return nil, typeErrorf("cannot index with %s", idx.TypeName())
}

func (ev *evaluator) sliceBound(in *Value, e Expr) (*int, *QueryError) {
	if e == nil {
		return nil, nil
	}
	results, err := ev.eval(in, e)
	if err != nil {
		return nil, err
	}
	v := results.First()
	if v.IsNull() {
		return nil, nil
	}
	if v.Kind() != KindNumber {
		return nil, typeErrorf("slice bound must be a number, got %s", v.TypeName())
	}
	i := int(v.Int())
	return &i, nil
}

// clampSlice normalizes possibly-negative, possibly-out-of-range slice
// bounds against length n.
func clampSlice(start, end *int, n int) (int, int) {
	s, e := 0, n
	if start != nil {
		s = *start
		if s < 0 {
			s += n
		}
	}
	if end != nil {
		e = *end
		if e < 0 {
			e += n
		}
	}
	if s < 0 {
		s = 0
	}
	if s > n {
		s = n
	}
	if e < s {
		e = s
	}
	if e > n {
		e = n
	}
	return s, e
}

func sliceValue(base *Value, start, end *int) (*Value, *QueryError) {
	switch base.Kind() {
	case KindArray:
		s, e := clampSlice(start, end, base.Len())
		return NewArray(base.Elems()[s:e]...), nil
	case KindString:
		runes := []rune(base.Str())
		s, e := clampSlice(start, end, len(runes))
		return NewString(string(runes[s:e])), nil
	case KindNull:
		return NewNull(), nil
	}
	return nil, typeErrorf("cannot slice %s", base.TypeName())
}

// recurseAll walks the value pre-order without recursing in Go, so deeply
// nested inputs cannot blow the goroutine stack.
func recurseAll(in *Value) Seq {
	var out Seq
	stack := []*Value{in}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, v)
		switch v.Kind() {
		case KindArray:
			elems := v.Elems()
			for i := len(elems) - 1; i >= 0; i-- {
				stack = append(stack, elems[i])
			}
		case KindObject:
			keys := v.Keys()
			for i := len(keys) - 1; i >= 0; i-- {
				child, _ := v.Get(keys[i])
				stack = append(stack, child)
			}
		}
	}
	return out
}

func (ev *evaluator) evalBinary(in *Value, n Binary) (Seq, *QueryError) {
	switch n.Op {
	case "and", "or":
		return ev.evalLogical(in, n)
	}
	left, err := ev.eval(in, n.L)
	if err != nil {
		return nil, err
	}
	right, err := ev.eval(in, n.R)
	if err != nil {
		return nil, err
	}
	var out Seq
	for _, l := range left {
		for _, r := range right {
			v, err := applyBinary(n.Op, l, r)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

func (ev *evaluator) evalLogical(in *Value, n Binary) (Seq, *QueryError) {
	left, err := ev.eval(in, n.L)
	if err != nil {
		return nil, err
	}
	var right Seq
	var out Seq
	for _, l := range left {
		shortCircuit := (n.Op == "and" && !l.IsTruthy()) || (n.Op == "or" && l.IsTruthy())
		if shortCircuit {
			out = append(out, NewBool(n.Op == "or"))
			continue
		}
		if right == nil {
			right, err = ev.eval(in, n.R)
			if err != nil {
				return nil, err
			}
		}
		for _, r := range right {
			out = append(out, NewBool(r.IsTruthy()))
		}
	}
	return out, nil
}

func applyBinary(op string, l, r *Value) (*Value, *QueryError) {
	switch op {
	case "==":
		return NewBool(l.Equal(r)), nil
	case "!=":
		return NewBool(!l.Equal(r)), nil
	case "<", "<=", ">", ">=":
		return applyComparison(op, l, r)
	case "+":
		return applyAdd(l, r)
	case "-":
		return applySub(l, r)
	case "*", "/", "%":
		return applyNumeric(op, l, r)
	}
	return nil, typeErrorf("unknown operator %q", op)
}

func applyComparison(op string, l, r *Value) (*Value, *QueryError) {
	if l.Kind() != r.Kind() || (l.Kind() != KindNumber && l.Kind() != KindString) {
		return nil, typeErrorf("cannot compare %s and %s with %s", l.TypeName(), r.TypeName(), op)
	}
	c := l.Compare(r)
	switch op {
	case "<":
		return NewBool(c < 0), nil
	case "<=":
		return NewBool(c <= 0), nil
	case ">":
		return NewBool(c > 0), nil
	}
	return NewBool(c >= 0), nil
}

func numberResult(f float64, isInt bool) *Value {
	if isInt && f == math.Trunc(f) {
		return NewInt(int64(f))
	}
	return NewFloat(f)
}

func applyAdd(l, r *Value) (*Value, *QueryError) {
	switch {
	case l.Kind() == KindNumber && r.Kind() == KindNumber:
		return numberResult(l.num+r.num, l.isInt && r.isInt), nil
	case l.Kind() == KindString && r.Kind() == KindString:
		return NewString(l.Str() + r.Str()), nil
	case l.Kind() == KindArray && r.Kind() == KindArray:
		out := NewArray()
		for _, e := range l.Elems() {
			out.Append(e.Clone())
		}
		for _, e := range r.Elems() {
			out.Append(e.Clone())
		}
		return out, nil
	}
	return nil, typeErrorf("cannot add %s and %s", l.TypeName(), r.TypeName())
}

func applySub(l, r *Value) (*Value, *QueryError) {
	switch {
	case l.Kind() == KindNumber && r.Kind() == KindNumber:
		return numberResult(l.num-r.num, l.isInt && r.isInt), nil
	case l.Kind() == KindArray && r.Kind() == KindArray:
		// Multiset removal: each element of the right array removes one
		// matching occurrence from the left.
		remaining := append([]*Value(nil), r.Elems()...)
		out := NewArray()
		for _, e := range l.Elems() {
			removed := false
			for i, rem := range remaining {
				if rem != nil && e.Equal(rem) {
					remaining[i] = nil
					removed = true
					break
				}
			}
			if !removed {
				out.Append(e.Clone())
			}
		}
		return out, nil
	}
	return nil, typeErrorf("cannot subtract %s from %s", r.TypeName(), l.TypeName())
}

func applyNumeric(op string, l, r *Value) (*Value, *QueryError) {
	if l.Kind() != KindNumber || r.Kind() != KindNumber {
		return nil, typeErrorf("cannot apply %s to %s and %s", op, l.TypeName(), r.TypeName())
	}
	switch op {
	case "*":
		return numberResult(l.num*r.num, l.isInt && r.isInt), nil
	case "/":
		if r.num == 0 {
			return nil, errDivisionByZero
		}
		return numberResult(l.num/r.num, l.isInt && r.isInt), nil
	case "%":
		if r.num == 0 {
			return nil, errDivisionByZero
		}
		return numberResult(math.Mod(l.num, r.num), l.isInt && r.isInt), nil
	}
	return nil, typeErrorf("unknown numeric operator %q", op)
}

func (ev *evaluator) evalIf(in *Value, n If) (Seq, *QueryError) {
	conds, err := ev.eval(in, n.Cond)
	if err != nil {
		return nil, err
	}
	var out Seq
	for _, c := range conds {
		branch, err := ev.selectBranch(in, c, n)
		if err != nil {
			return nil, err
		}
		results, err := ev.eval(in, branch)
		if err != nil {
			return nil, err
		}
		out = append(out, results...)
	}
	return out, nil
}

func (ev *evaluator) selectBranch(in *Value, cond *Value, n If) (Expr, *QueryError) {
	if cond.IsTruthy() {
		return n.Then, nil
	}
	for _, elif := range n.Elifs {
		results, err := ev.eval(in, elif.Cond)
		if err != nil {
			return nil, err
		}
		if results.First().IsTruthy() {
			return elif.Then, nil
		}
	}
	if n.Else != nil {
		return n.Else, nil
	}
	// No else clause: the input passes through unchanged.
	return Identity{}, nil
}
