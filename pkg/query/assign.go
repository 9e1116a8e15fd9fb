package query

// Write mode. A query of the form `<path> <op> <expr>` is split on the
// top-level assignment operator; the left side becomes a Path of field,
// index, and slice segments, and the right side is an ordinary expression
// evaluated in read mode. The target Value is then mutated in place.

type segKind int

const (
	segField segKind = iota
	segIndex
	segSlice
)

type pathSeg struct {
	kind  segKind
	name  string
	idx   int64
	start *int
	end   *int
}

// ExecuteWrite mutates v according to an assignment query. Supported
// operators: =, +=, -=, *=, /=, |=.
func ExecuteWrite(v *Value, queryStr string) error {
	tokens, lerr := lex(queryStr)
	if lerr != nil {
		return lerr
	}
	opIdx := findAssignOp(tokens)
	if opIdx < 0 {
		return parseErrorf(0, "not an assignment: expected one of = += -= *= /= |=")
	}
	op := tokens[opIdx]
	segs, perr := parsePath(tokens[:opIdx])
	if perr != nil {
		return perr
	}
	rhsText := queryStr[op.pos+len(op.lit):]
	rhs, err := Parse(rhsText)
	if err != nil {
		return err
	}

	parent, serr := resolveParent(v, segs)
	if serr != nil {
		return serr
	}
	terminal := pathSeg{}
	if len(segs) > 0 {
		terminal = segs[len(segs)-1]
	}

	ev := &evaluator{}
	var newVal *Value
	switch op.typ {
	case tokAssign:
		// The RHS sees the document root, not the assignment target.
		results, qerr := ev.eval(v, rhs)
		if qerr != nil {
			return qerr
		}
		newVal = results.First().Clone()
	case tokPipeAssign:
		current, qerr := readSeg(parent, terminal, len(segs) == 0, v)
		if qerr != nil {
			return qerr
		}
		results, qerr := ev.eval(current, rhs)
		if qerr != nil {
			return qerr
		}
		newVal = results.First().Clone()
	default:
		current, qerr := readSeg(parent, terminal, len(segs) == 0, v)
		if qerr != nil {
			return qerr
		}
		results, qerr := ev.eval(v, rhs)
		if qerr != nil {
			return qerr
		}
		combined, qerr := applyBinary(arithOp(op.typ), current, results.First())
		if qerr != nil {
			return qerr
		}
		newVal = combined.Clone()
	}

	if len(segs) == 0 {
		*v = *newVal
		return nil
	}
	if qerr := writeSeg(parent, terminal, newVal); qerr != nil {
		return qerr
	}
	return nil
}

func arithOp(t tokenType) string {
	switch t {
	case tokAddAssign:
		return "+"
	case tokSubAssign:
		return "-"
	case tokMulAssign:
		return "*"
	}
	return "/"
}

// findAssignOp returns the index of the first assignment token outside any
// bracketing, or -1.
func findAssignOp(tokens []token) int {
	depth := 0
	for i, t := range tokens {
		switch t.typ {
		case tokLBracket, tokLBrace, tokLParen:
			depth++
		case tokRBracket, tokRBrace, tokRParen:
			depth--
		case tokAssign, tokAddAssign, tokSubAssign, tokMulAssign, tokDivAssign, tokPipeAssign:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parsePath turns the token stream left of the operator into path segments.
// `users[0].name` and `.users[0].name` are equivalent; an identifier before
// `[` is always a field traversal, never part of a literal key.
func parsePath(tokens []token) ([]pathSeg, *QueryError) {
	var segs []pathSeg
	i := 0
	// `.` alone targets the document root.
	if len(tokens) == 1 && tokens[0].typ == tokDot {
		return nil, nil
	}
	for i < len(tokens) {
		t := tokens[i]
		switch t.typ {
		case tokDot:
			i++
			if i < len(tokens) && tokens[i].typ == tokLBracket {
				// `.["key"]` and `.[0]` forms: the dot is decorative.
				continue
			}
			if i >= len(tokens) || (tokens[i].typ != tokIdent && tokens[i].typ != tokString && tokens[i].typ != tokKeyword) {
				return nil, parseErrorf(t.pos, "expected field name after '.'")
			}
			segs = append(segs, pathSeg{kind: segField, name: tokens[i].lit})
			i++
		case tokIdent, tokKeyword:
			if len(segs) > 0 {
				return nil, parseErrorf(t.pos, "unexpected identifier %q in path", t.lit)
			}
			segs = append(segs, pathSeg{kind: segField, name: t.lit})
			i++
		case tokLBracket:
			seg, next, err := parseBracketSeg(tokens, i)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
			i = next
		default:
			return nil, parseErrorf(t.pos, "unexpected %q in assignment path", t.lit)
		}
	}
	if len(segs) == 0 {
		return nil, parseErrorf(0, "empty assignment path")
	}
	return segs, nil
}

func parseBracketSeg(tokens []token, i int) (pathSeg, int, *QueryError) {
	open := tokens[i]
	i++
	num := func() (*int, *QueryError) {
		neg := false
		if i < len(tokens) && tokens[i].typ == tokMinus {
			neg = true
			i++
		}
		if i >= len(tokens) || tokens[i].typ != tokNumber || !tokens[i].isInt {
			return nil, parseErrorf(open.pos, "expected integer index in path")
		}
		n := int(tokens[i].num)
		if neg {
			n = -n
		}
		i++
		return &n, nil
	}

	if i < len(tokens) && tokens[i].typ == tokString {
		// `["key with spaces"]` addresses an object field.
		seg := pathSeg{kind: segField, name: tokens[i].lit}
		i++
		if i >= len(tokens) || tokens[i].typ != tokRBracket {
			return pathSeg{}, 0, parseErrorf(open.pos, "expected ']' in path")
		}
		return seg, i + 1, nil
	}

	var start, end *int
	if i < len(tokens) && tokens[i].typ != tokColon {
		n, err := num()
		if err != nil {
			return pathSeg{}, 0, err
		}
		start = n
	}
	if i < len(tokens) && tokens[i].typ == tokColon {
		i++
		if i < len(tokens) && tokens[i].typ != tokRBracket {
			n, err := num()
			if err != nil {
				return pathSeg{}, 0, err
			}
			end = n
		}
		if i >= len(tokens) || tokens[i].typ != tokRBracket {
			return pathSeg{}, 0, parseErrorf(open.pos, "expected ']' in path")
		}
		return pathSeg{kind: segSlice, start: start, end: end}, i + 1, nil
	}
	if start == nil {
		return pathSeg{}, 0, parseErrorf(open.pos, "expected index or slice in path")
	}
	if i >= len(tokens) || tokens[i].typ != tokRBracket {
		return pathSeg{}, 0, parseErrorf(open.pos, "expected ']' in path")
	}
	return pathSeg{kind: segIndex, idx: int64(*start)}, i + 1, nil
}

// resolveParent walks all but the last segment, auto-vivifying missing
// containers: a missing field becomes an empty Object, or an empty Array
// when the next segment is an index.
func resolveParent(v *Value, segs []pathSeg) (*Value, *QueryError) {
	cur := v
	for i := 0; i+1 < len(segs); i++ {
		seg := segs[i]
		next := segs[i+1]
		switch seg.kind {
		case segField:
			if cur.Kind() == KindNull {
				*cur = *NewObject()
			}
			if cur.Kind() != KindObject {
				return nil, typeErrorf("cannot index %s with field %q", cur.TypeName(), seg.name)
			}
			child, ok := cur.Get(seg.name)
			if !ok || child.Kind() == KindNull {
				child = vivify(next)
				cur.Set(seg.name, child)
			}
			cur = child
		case segIndex:
			if cur.Kind() == KindNull {
				*cur = *NewArray()
			}
			if cur.Kind() != KindArray {
				return nil, typeErrorf("cannot index %s with a number", cur.TypeName())
			}
			idx := seg.idx
			if idx < 0 {
				idx += int64(cur.Len())
				if idx < 0 {
					return nil, indexErrorf("index %d out of range for array of length %d", seg.idx, cur.Len())
				}
			}
			for int64(cur.Len()) <= idx {
				cur.Append(NewNull())
			}
			child := cur.Elems()[idx]
			if child.Kind() == KindNull {
				*child = *vivify(next)
			}
			cur = child
		case segSlice:
			return nil, pathErrorf("a slice must be the final path segment")
		}
	}
	return cur, nil
}

func vivify(next pathSeg) *Value {
	if next.kind == segIndex || next.kind == segSlice {
		return NewArray()
	}
	return NewObject()
}

// readSeg fetches the current value at the terminal segment, yielding Null
// for locations that do not exist yet.
func readSeg(parent *Value, seg pathSeg, root bool, v *Value) (*Value, *QueryError) {
	if root {
		return v, nil
	}
	switch seg.kind {
	case segField:
		if parent.Kind() == KindNull {
			return NewNull(), nil
		}
		if parent.Kind() != KindObject {
			return nil, typeErrorf("cannot index %s with field %q", parent.TypeName(), seg.name)
		}
		if cur, ok := parent.Get(seg.name); ok {
			return cur, nil
		}
		return NewNull(), nil
	case segIndex:
		if parent.Kind() == KindNull {
			return NewNull(), nil
		}
		if parent.Kind() != KindArray {
			return nil, typeErrorf("cannot index %s with a number", parent.TypeName())
		}
		idx := seg.idx
		if idx < 0 {
			idx += int64(parent.Len())
		}
		if idx < 0 || idx >= int64(parent.Len()) {
			return NewNull(), nil
		}
		return parent.Elems()[idx], nil
	}
	if parent.Kind() != KindArray {
		return nil, typeErrorf("cannot slice %s", parent.TypeName())
	}
	start, end := clampSlice(seg.start, seg.end, parent.Len())
	return NewArray(parent.Elems()[start:end]...), nil
}

// writeSeg stores newVal at the terminal segment of parent.
func writeSeg(parent *Value, seg pathSeg, newVal *Value) *QueryError {
	switch seg.kind {
	case segField:
		if parent.Kind() == KindNull {
			*parent = *NewObject()
		}
		if parent.Kind() != KindObject {
			return typeErrorf("cannot set field %q on %s", seg.name, parent.TypeName())
		}
		parent.Set(seg.name, newVal)
		return nil
	case segIndex:
		if parent.Kind() == KindNull {
			*parent = *NewArray()
		}
		if parent.Kind() != KindArray {
			return typeErrorf("cannot set index on %s", parent.TypeName())
		}
		idx := seg.idx
		if idx < 0 {
			idx += int64(parent.Len())
			if idx < 0 {
				return indexErrorf("index %d out of range for array of length %d", seg.idx, parent.Len())
			}
		}
		// Writing past the end pads the gap with nulls.
		for int64(parent.Len()) < idx {
			parent.Append(NewNull())
		}
		if idx == int64(parent.Len()) {
			parent.Append(newVal)
		} else {
			parent.arr[idx] = newVal
		}
		return nil
	}
	// Slice assignment splices the RHS elements over the subrange.
	if parent.Kind() != KindArray {
		return typeErrorf("cannot slice %s", parent.TypeName())
	}
	if newVal.Kind() != KindArray {
		return typeErrorf("slice assignment requires an array value, got %s", newVal.TypeName())
	}
	start, end := clampSlice(seg.start, seg.end, parent.Len())
	spliced := make([]*Value, 0, parent.Len()-(end-start)+newVal.Len())
	spliced = append(spliced, parent.arr[:start]...)
	spliced = append(spliced, newVal.Elems()...)
	spliced = append(spliced, parent.arr[end:]...)
	parent.arr = spliced
	return nil
}

// exprToPath converts a parsed read-mode path expression (as passed to del)
// into write-mode segments. Returns false for anything that is not a plain
// field/index/slice chain.
func exprToPath(e Expr) ([]pathSeg, bool) {
	var segs []pathSeg
	for {
		switch n := e.(type) {
		case Identity:
			reverseSegs(segs)
			return segs, true
		case nil:
			reverseSegs(segs)
			return segs, true
		case Field:
			segs = append(segs, pathSeg{kind: segField, name: n.Name})
			e = n.Base
		case Index:
			lit, ok := n.Idx.(Literal)
			if !ok {
				return nil, false
			}
			switch lit.Val.Kind() {
			case KindNumber:
				segs = append(segs, pathSeg{kind: segIndex, idx: lit.Val.Int()})
			case KindString:
				segs = append(segs, pathSeg{kind: segField, name: lit.Val.Str()})
			default:
				return nil, false
			}
			e = n.Base
		case Slice:
			seg := pathSeg{kind: segSlice}
			if n.Start != nil {
				lit, ok := n.Start.(Literal)
				if !ok || lit.Val.Kind() != KindNumber {
					return nil, false
				}
				v := int(lit.Val.Int())
				seg.start = &v
			}
			if n.End != nil {
				lit, ok := n.End.(Literal)
				if !ok || lit.Val.Kind() != KindNumber {
					return nil, false
				}
				v := int(lit.Val.Int())
				seg.end = &v
			}
			segs = append(segs, seg)
			e = n.Base
		default:
			return nil, false
		}
	}
}

func reverseSegs(segs []pathSeg) {
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
}

// deletePath removes the value at segs. Paths that resolve to nothing are a
// no-op rather than an error.
func deletePath(v *Value, segs []pathSeg) *QueryError {
	if len(segs) == 0 {
		return typeErrorf("cannot delete the document root")
	}
	cur := v
	for _, seg := range segs[:len(segs)-1] {
		switch seg.kind {
		case segField:
			if cur.Kind() != KindObject {
				return nil
			}
			child, ok := cur.Get(seg.name)
			if !ok {
				return nil
			}
			cur = child
		case segIndex:
			if cur.Kind() != KindArray {
				return nil
			}
			idx := seg.idx
			if idx < 0 {
				idx += int64(cur.Len())
			}
			if idx < 0 || idx >= int64(cur.Len()) {
				return nil
			}
			cur = cur.Elems()[idx]
		case segSlice:
			return pathErrorf("a slice must be the final path segment")
		}
	}
	last := segs[len(segs)-1]
	switch last.kind {
	case segField:
		if cur.Kind() != KindObject {
			return typeErrorf("cannot delete field %q from %s", last.name, cur.TypeName())
		}
		cur.Delete(last.name)
	case segIndex:
		if cur.Kind() != KindArray {
			return typeErrorf("cannot delete an index from %s", cur.TypeName())
		}
		idx := last.idx
		if idx < 0 {
			idx += int64(cur.Len())
		}
		if idx < 0 || idx >= int64(cur.Len()) {
			return nil
		}
		cur.arr = append(cur.arr[:idx], cur.arr[idx+1:]...)
	case segSlice:
		if cur.Kind() != KindArray {
			return typeErrorf("cannot delete a slice from %s", cur.TypeName())
		}
		start, end := clampSlice(last.start, last.end, cur.Len())
		cur.arr = append(cur.arr[:start], cur.arr[end:]...)
	}
	return nil
}
