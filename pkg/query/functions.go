package query

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// builtin is one named engine function. Arguments arrive as unevaluated
// sub-expressions and are evaluated against the current input, which is what
// makes `{count: length}` compute rather than stringify.
type builtin struct {
	minArgs int
	maxArgs int
	fn      func(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError)
}

var builtins map[string]*builtin

func init() {
	builtins = map[string]*builtin{
		// array
		"map":      {1, 1, fnMap},
		"select":   {1, 1, fnSelect},
		"sort":     {0, 0, fnSort},
		"sort_by":  {1, 1, fnSortBy},
		"group_by": {1, 1, fnGroupBy},
		"unique":   {0, 0, fnUnique},
		"reverse":  {0, 0, fnReverse},
		"add":      {0, 0, fnAdd},
		"min":      {0, 0, fnMin},
		"max":      {0, 0, fnMax},
		"flatten":  {0, 1, fnFlatten},
		"indices":  {1, 1, fnIndices},

		// object
		"keys":          {0, 0, fnKeys},
		"keys_unsorted": {0, 0, fnKeysUnsorted},
		"values":        {0, 0, fnValues},
		"has":           {1, 1, fnHas},
		"del":           {1, 1, fnDel},
		"to_entries":    {0, 0, fnToEntries},
		"from_entries":  {0, 0, fnFromEntries},
		"with_entries":  {1, 1, fnWithEntries},
		"paths":         {0, 0, fnPaths},
		"leaf_paths":    {0, 0, fnLeafPaths},

		// string
		"split":          {1, 1, fnSplit},
		"join":           {1, 1, fnJoin},
		"trim":           {0, 0, fnTrim},
		"ltrimstr":       {1, 1, fnLtrimstr},
		"rtrimstr":       {1, 1, fnRtrimstr},
		"contains":       {1, 1, fnContains},
		"startswith":     {1, 1, fnStartswith},
		"endswith":       {1, 1, fnEndswith},
		"test":           {1, 2, fnTest},
		"match":          {1, 2, fnMatch},
		"ascii_upcase":   {0, 0, fnUpcase},
		"ascii_downcase": {0, 0, fnDowncase},
		"tostring":       {0, 0, fnTostring},
		"tonumber":       {0, 0, fnTonumber},

		// math
		"floor": {0, 0, fnFloor},
		"ceil":  {0, 0, fnCeil},
		"round": {0, 0, fnRound},
		"abs":   {0, 0, fnAbs},

		// introspection / control
		"length": {0, 0, fnLength},
		"type":   {0, 0, fnType},
		"empty":  {0, 0, fnEmpty},
		"error":  {0, 1, fnError},
	}
}

func requireArray(in *Value, name string) *QueryError {
	if in.Kind() != KindArray {
		return typeErrorf("%s requires an array, got %s", name, in.TypeName())
	}
	return nil
}

func requireString(in *Value, name string) *QueryError {
	if in.Kind() != KindString {
		return typeErrorf("%s requires a string, got %s", name, in.TypeName())
	}
	return nil
}

// argValue evaluates an argument expression and takes its first result.
func (ev *evaluator) argValue(in *Value, arg Expr) (*Value, *QueryError) {
	results, err := ev.eval(in, arg)
	if err != nil {
		return nil, err
	}
	return results.First(), nil
}

func fnMap(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	if err := requireArray(in, "map"); err != nil {
		return nil, err
	}
	out := NewArray()
	for _, elem := range in.Elems() {
		results, err := ev.eval(elem, args[0])
		if err != nil {
			return nil, err
		}
		for _, v := range results {
			out.Append(v)
		}
	}
	return Seq{out}, nil
}

func fnSelect(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	results, err := ev.eval(in, args[0])
	if err != nil {
		return nil, err
	}
	// A falsy predicate yields nothing at all, never null.
	if len(results) > 0 && results[0].IsTruthy() {
		return Seq{in}, nil
	}
	return Seq{}, nil
}

func fnSort(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	if err := requireArray(in, "sort"); err != nil {
		return nil, err
	}
	elems := append([]*Value(nil), in.Elems()...)
	sort.SliceStable(elems, func(i, j int) bool {
		return elems[i].Compare(elems[j]) < 0
	})
	return Seq{NewArray(elems...)}, nil
}

func fnSortBy(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	if err := requireArray(in, "sort_by"); err != nil {
		return nil, err
	}
	type keyed struct {
		key  *Value
		elem *Value
	}
	items := make([]keyed, 0, in.Len())
	for _, elem := range in.Elems() {
		key, err := ev.argValue(elem, args[0])
		if err != nil {
			return nil, err
		}
		items = append(items, keyed{key: key, elem: elem})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].key.Compare(items[j].key) < 0
	})
	out := NewArray()
	for _, it := range items {
		out.Append(it.elem)
	}
	return Seq{out}, nil
}

func fnGroupBy(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	if err := requireArray(in, "group_by"); err != nil {
		return nil, err
	}
	// Groups keep the first-seen order of their keys; members keep input
	// order within each group.
	var keys []*Value
	var groups []*Value
	for _, elem := range in.Elems() {
		key, err := ev.argValue(elem, args[0])
		if err != nil {
			return nil, err
		}
		found := false
		for i, k := range keys {
			if k.Equal(key) {
				groups[i].Append(elem)
				found = true
				break
			}
		}
		if !found {
			keys = append(keys, key)
			groups = append(groups, NewArray(elem))
		}
	}
	return Seq{NewArray(groups...)}, nil
}

func fnUnique(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	if err := requireArray(in, "unique"); err != nil {
		return nil, err
	}
	out := NewArray()
	for _, elem := range in.Elems() {
		dup := false
		for _, seen := range out.Elems() {
			if seen.Equal(elem) {
				dup = true
				break
			}
		}
		if !dup {
			out.Append(elem)
		}
	}
	return Seq{out}, nil
}

func fnReverse(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	if err := requireArray(in, "reverse"); err != nil {
		return nil, err
	}
	elems := in.Elems()
	out := NewArray()
	for i := len(elems) - 1; i >= 0; i-- {
		out.Append(elems[i])
	}
	return Seq{out}, nil
}

func fnAdd(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	if err := requireArray(in, "add"); err != nil {
		return nil, err
	}
	if in.Len() == 0 {
		return Seq{NewNull()}, nil
	}
	acc := in.Elems()[0]
	for _, elem := range in.Elems()[1:] {
		next, err := applyAdd(acc, elem)
		if err != nil {
			return nil, err
		}
		acc = next
	}
	return Seq{acc}, nil
}

func fnMin(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	return extremum(in, "min", func(c int) bool { return c < 0 })
}

func fnMax(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	return extremum(in, "max", func(c int) bool { return c > 0 })
}

func extremum(in *Value, name string, better func(int) bool) (Seq, *QueryError) {
	if err := requireArray(in, name); err != nil {
		return nil, err
	}
	if in.Len() == 0 {
		return Seq{NewNull()}, nil
	}
	best := in.Elems()[0]
	for _, elem := range in.Elems()[1:] {
		if better(elem.Compare(best)) {
			best = elem
		}
	}
	return Seq{best}, nil
}

func fnFlatten(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	if err := requireArray(in, "flatten"); err != nil {
		return nil, err
	}
	depth := 1
	if len(args) == 1 {
		d, err := ev.argValue(in, args[0])
		if err != nil {
			return nil, err
		}
		if d.Kind() != KindNumber {
			return nil, typeErrorf("flatten depth must be a number, got %s", d.TypeName())
		}
		depth = int(d.Int())
	}
	out := NewArray()
	flattenInto(out, in, depth)
	return Seq{out}, nil
}

func flattenInto(out, in *Value, depth int) {
	for _, elem := range in.Elems() {
		if elem.Kind() == KindArray && depth > 0 {
			flattenInto(out, elem, depth-1)
		} else {
			out.Append(elem)
		}
	}
}

func fnIndices(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	needle, err := ev.argValue(in, args[0])
	if err != nil {
		return nil, err
	}
	out := NewArray()
	switch in.Kind() {
	case KindString:
		if needle.Kind() != KindString {
			return nil, typeErrorf("indices on a string requires a string argument, got %s", needle.TypeName())
		}
		if needle.Str() == "" {
			return Seq{out}, nil
		}
		offset := 0
		for {
			i := strings.Index(in.Str()[offset:], needle.Str())
			if i < 0 {
				break
			}
			out.Append(NewInt(int64(offset + i)))
			offset += i + 1
		}
	case KindArray:
		if needle.Kind() == KindArray {
			sub := needle.Elems()
			if len(sub) == 0 {
				return Seq{out}, nil
			}
			elems := in.Elems()
			for i := 0; i+len(sub) <= len(elems); i++ {
				matched := true
				for j := range sub {
					if !elems[i+j].Equal(sub[j]) {
						matched = false
						break
					}
				}
				if matched {
					out.Append(NewInt(int64(i)))
				}
			}
		} else {
			for i, elem := range in.Elems() {
				if elem.Equal(needle) {
					out.Append(NewInt(int64(i)))
				}
			}
		}
	default:
		return nil, typeErrorf("indices requires an array or string, got %s", in.TypeName())
	}
	return Seq{out}, nil
}

func fnKeys(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	switch in.Kind() {
	case KindObject:
		keys := in.Keys()
		sort.Strings(keys)
		out := NewArray()
		for _, k := range keys {
			out.Append(NewString(k))
		}
		return Seq{out}, nil
	case KindArray:
		out := NewArray()
		for i := 0; i < in.Len(); i++ {
			out.Append(NewInt(int64(i)))
		}
		return Seq{out}, nil
	}
	return nil, typeErrorf("keys requires an object or array, got %s", in.TypeName())
}

func fnKeysUnsorted(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	if in.Kind() != KindObject {
		return fnKeys(nil, in, nil)
	}
	out := NewArray()
	for _, k := range in.Keys() {
		out.Append(NewString(k))
	}
	return Seq{out}, nil
}

func fnValues(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	switch in.Kind() {
	case KindObject:
		out := NewArray()
		in.Entries(func(_ string, v *Value) {
			out.Append(v)
		})
		return Seq{out}, nil
	case KindArray:
		return Seq{NewArray(in.Elems()...)}, nil
	}
	return nil, typeErrorf("values requires an object or array, got %s", in.TypeName())
}

func fnHas(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	key, err := ev.argValue(in, args[0])
	if err != nil {
		return nil, err
	}
	switch in.Kind() {
	case KindObject:
		if key.Kind() != KindString {
			return nil, typeErrorf("has on an object requires a string key, got %s", key.TypeName())
		}
		_, ok := in.Get(key.Str())
		return Seq{NewBool(ok)}, nil
	case KindArray:
		if key.Kind() != KindNumber {
			return nil, typeErrorf("has on an array requires a number index, got %s", key.TypeName())
		}
		i := key.Int()
		return Seq{NewBool(i >= 0 && i < int64(in.Len()))}, nil
	}
	return nil, typeErrorf("has requires an object or array, got %s", in.TypeName())
}

func fnDel(_ *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	segs, ok := exprToPath(args[0])
	if !ok {
		return nil, typeErrorf("del requires a path expression")
	}
	out := in.Clone()
	if err := deletePath(out, segs); err != nil {
		return nil, err
	}
	return Seq{out}, nil
}

func fnToEntries(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	if in.Kind() != KindObject {
		return nil, typeErrorf("to_entries requires an object, got %s", in.TypeName())
	}
	out := NewArray()
	in.Entries(func(k string, v *Value) {
		entry := NewObject()
		entry.Set("key", NewString(k))
		entry.Set("value", v)
		out.Append(entry)
	})
	return Seq{out}, nil
}

// entryKey and entryValue accept the alternate spellings from_entries
// tolerates: key/k/name and value/v.
func entryKey(entry *Value) (string, bool) {
	for _, name := range []string{"key", "k", "name"} {
		if v, ok := entry.Get(name); ok && v.Kind() == KindString {
			return v.Str(), true
		}
	}
	return "", false
}

func entryValue(entry *Value) *Value {
	for _, name := range []string{"value", "v"} {
		if v, ok := entry.Get(name); ok {
			return v
		}
	}
	return NewNull()
}

func fnFromEntries(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	if err := requireArray(in, "from_entries"); err != nil {
		return nil, err
	}
	out := NewObject()
	for _, entry := range in.Elems() {
		if entry.Kind() != KindObject {
			return nil, typeErrorf("from_entries entries must be objects, got %s", entry.TypeName())
		}
		key, ok := entryKey(entry)
		if !ok {
			return nil, typeErrorf("from_entries entry missing a string key")
		}
		out.Set(key, entryValue(entry))
	}
	return Seq{out}, nil
}

func fnWithEntries(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	entries, err := fnToEntries(ev, in, nil)
	if err != nil {
		return nil, err
	}
	mapped, err := fnMap(ev, entries.First(), args)
	if err != nil {
		return nil, err
	}
	return fnFromEntries(ev, mapped.First(), nil)
}

func fnPaths(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	out := NewArray()
	collectPaths(in, nil, false, out)
	return Seq{out}, nil
}

func fnLeafPaths(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	out := NewArray()
	collectPaths(in, nil, true, out)
	return Seq{out}, nil
}

func collectPaths(v *Value, prefix []*Value, leavesOnly bool, out *Value) {
	emit := func(path []*Value) {
		arr := NewArray()
		for _, p := range path {
			arr.Append(p)
		}
		out.Append(arr)
	}
	switch v.Kind() {
	case KindArray:
		for i, elem := range v.Elems() {
			path := append(append([]*Value(nil), prefix...), NewInt(int64(i)))
			if !leavesOnly || isLeaf(elem) {
				emit(path)
			}
			collectPaths(elem, path, leavesOnly, out)
		}
	case KindObject:
		v.Entries(func(k string, elem *Value) {
			path := append(append([]*Value(nil), prefix...), NewString(k))
			if !leavesOnly || isLeaf(elem) {
				emit(path)
			}
			collectPaths(elem, path, leavesOnly, out)
		})
	}
}

func isLeaf(v *Value) bool {
	return v.Kind() != KindArray && v.Kind() != KindObject
}

func fnSplit(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	if err := requireString(in, "split"); err != nil {
		return nil, err
	}
	sep, err := ev.argValue(in, args[0])
	if err != nil {
		return nil, err
	}
	if sep.Kind() != KindString {
		return nil, typeErrorf("split separator must be a string, got %s", sep.TypeName())
	}
	out := NewArray()
	for _, part := range strings.Split(in.Str(), sep.Str()) {
		out.Append(NewString(part))
	}
	return Seq{out}, nil
}

func fnJoin(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	if err := requireArray(in, "join"); err != nil {
		return nil, err
	}
	sep, err := ev.argValue(in, args[0])
	if err != nil {
		return nil, err
	}
	if sep.Kind() != KindString {
		return nil, typeErrorf("join separator must be a string, got %s", sep.TypeName())
	}
	parts := make([]string, 0, in.Len())
	for _, elem := range in.Elems() {
		switch elem.Kind() {
		case KindNull:
			parts = append(parts, "")
		case KindString:
			parts = append(parts, elem.Str())
		case KindNumber:
			parts = append(parts, formatNumber(elem))
		case KindBool:
			parts = append(parts, strconv.FormatBool(elem.Bool()))
		default:
			return nil, typeErrorf("cannot join %s elements", elem.TypeName())
		}
	}
	return Seq{NewString(strings.Join(parts, sep.Str()))}, nil
}

func fnTrim(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	if err := requireString(in, "trim"); err != nil {
		return nil, err
	}
	return Seq{NewString(strings.TrimSpace(in.Str()))}, nil
}

func fnLtrimstr(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	return trimstr(ev, in, args, strings.TrimPrefix)
}

func fnRtrimstr(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	return trimstr(ev, in, args, strings.TrimSuffix)
}

func trimstr(ev *evaluator, in *Value, args []Expr, trim func(string, string) string) (Seq, *QueryError) {
	// jq compatibility: non-string inputs pass through unchanged.
	if in.Kind() != KindString {
		return Seq{in}, nil
	}
	prefix, err := ev.argValue(in, args[0])
	if err != nil {
		return nil, err
	}
	if prefix.Kind() != KindString {
		return Seq{in}, nil
	}
	return Seq{NewString(trim(in.Str(), prefix.Str()))}, nil
}

func fnContains(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	needle, err := ev.argValue(in, args[0])
	if err != nil {
		return nil, err
	}
	switch in.Kind() {
	case KindString:
		if needle.Kind() != KindString {
			return nil, typeErrorf("contains on a string requires a string, got %s", needle.TypeName())
		}
		return Seq{NewBool(strings.Contains(in.Str(), needle.Str()))}, nil
	case KindArray:
		for _, elem := range in.Elems() {
			if elem.Equal(needle) {
				return Seq{NewBool(true)}, nil
			}
		}
		return Seq{NewBool(false)}, nil
	}
	return nil, typeErrorf("contains requires a string or array, got %s", in.TypeName())
}

func fnStartswith(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	return affix(ev, in, args, "startswith", strings.HasPrefix)
}

func fnEndswith(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	return affix(ev, in, args, "endswith", strings.HasSuffix)
}

func affix(ev *evaluator, in *Value, args []Expr, name string, check func(string, string) bool) (Seq, *QueryError) {
	if err := requireString(in, name); err != nil {
		return nil, err
	}
	arg, err := ev.argValue(in, args[0])
	if err != nil {
		return nil, err
	}
	if arg.Kind() != KindString {
		return nil, typeErrorf("%s requires a string argument, got %s", name, arg.TypeName())
	}
	return Seq{NewBool(check(in.Str(), arg.Str()))}, nil
}

// compileRegex builds a pattern from regex and flag arguments. Supported
// flags: i (case insensitive), x (extended), s (dot matches newline),
// g (all matches; meaningful for match only).
func (ev *evaluator) compileRegex(in *Value, args []Expr) (*regexp.Regexp, bool, *QueryError) {
	pattern, err := ev.argValue(in, args[0])
	if err != nil {
		return nil, false, err
	}
	if pattern.Kind() != KindString {
		return nil, false, typeErrorf("regex pattern must be a string, got %s", pattern.TypeName())
	}
	global := false
	expr := pattern.Str()
	if len(args) == 2 {
		flags, err := ev.argValue(in, args[1])
		if err != nil {
			return nil, false, err
		}
		if flags.Kind() != KindString {
			return nil, false, typeErrorf("regex flags must be a string, got %s", flags.TypeName())
		}
		var mode string
		for _, f := range flags.Str() {
			switch f {
			case 'g':
				global = true
			case 'i', 'x', 's':
				mode += string(f)
			default:
				return nil, false, regexErrorf("unsupported regex flag %q", string(f))
			}
		}
		if mode != "" {
			expr = "(?" + mode + ")" + expr
		}
	}
	re, cerr := regexp.Compile(expr)
	if cerr != nil {
		return nil, false, regexErrorf("invalid pattern: %v", cerr)
	}
	return re, global, nil
}

func fnTest(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	if err := requireString(in, "test"); err != nil {
		return nil, err
	}
	re, _, err := ev.compileRegex(in, args)
	if err != nil {
		return nil, err
	}
	return Seq{NewBool(re.MatchString(in.Str()))}, nil
}

func fnMatch(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	if err := requireString(in, "match"); err != nil {
		return nil, err
	}
	re, global, err := ev.compileRegex(in, args)
	if err != nil {
		return nil, err
	}
	limit := 1
	if global {
		limit = -1
	}
	matches := re.FindAllStringSubmatchIndex(in.Str(), limit)
	names := re.SubexpNames()
	var out Seq
	for _, m := range matches {
		out = append(out, matchObject(in.Str(), m, names))
	}
	return out, nil
}

func matchObject(s string, m []int, names []string) *Value {
	obj := NewObject()
	obj.Set("offset", NewInt(int64(m[0])))
	obj.Set("length", NewInt(int64(m[1]-m[0])))
	obj.Set("string", NewString(s[m[0]:m[1]]))
	captures := NewArray()
	for i := 1; i*2 < len(m); i++ {
		group := NewObject()
		if m[i*2] < 0 {
			group.Set("offset", NewInt(-1))
			group.Set("length", NewInt(0))
			group.Set("string", NewNull())
		} else {
			group.Set("offset", NewInt(int64(m[i*2])))
			group.Set("length", NewInt(int64(m[i*2+1]-m[i*2])))
			group.Set("string", NewString(s[m[i*2]:m[i*2+1]]))
		}
		if names[i] != "" {
			group.Set("name", NewString(names[i]))
		} else {
			group.Set("name", NewNull())
		}
		captures.Append(group)
	}
	obj.Set("captures", captures)
	return obj
}

func fnUpcase(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	if err := requireString(in, "ascii_upcase"); err != nil {
		return nil, err
	}
	return Seq{NewString(strings.ToUpper(in.Str()))}, nil
}

func fnDowncase(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	if err := requireString(in, "ascii_downcase"); err != nil {
		return nil, err
	}
	return Seq{NewString(strings.ToLower(in.Str()))}, nil
}

func fnTostring(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	if in.Kind() == KindString {
		return Seq{in}, nil
	}
	return Seq{NewString(in.String())}, nil
}

func fnTonumber(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	switch in.Kind() {
	case KindNumber:
		return Seq{in}, nil
	case KindString:
		text := strings.TrimSpace(in.Str())
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Seq{NewInt(i)}, nil
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, typeErrorf("cannot parse %q as a number", in.Str())
		}
		return Seq{NewFloat(f)}, nil
	}
	return nil, typeErrorf("tonumber requires a string or number, got %s", in.TypeName())
}

func mathUnary(name string, f func(float64) float64, makesInt bool) func(*evaluator, *Value, []Expr) (Seq, *QueryError) {
	return func(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
		if in.Kind() != KindNumber {
			return nil, typeErrorf("%s requires a number, got %s", name, in.TypeName())
		}
		result := f(in.Float())
		if makesInt {
			return Seq{NewInt(int64(result))}, nil
		}
		return Seq{numberResult(result, in.IsInt())}, nil
	}
}

var (
	fnFloor = mathUnary("floor", math.Floor, true)
	fnCeil  = mathUnary("ceil", math.Ceil, true)
	fnRound = mathUnary("round", math.Round, true)
	fnAbs   = mathUnary("abs", math.Abs, false)
)

func fnLength(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	switch in.Kind() {
	case KindNull:
		return Seq{NewInt(0)}, nil
	case KindString, KindArray, KindObject:
		return Seq{NewInt(int64(in.Len()))}, nil
	}
	return nil, typeErrorf("%s has no length", in.TypeName())
}

func fnType(_ *evaluator, in *Value, _ []Expr) (Seq, *QueryError) {
	return Seq{NewString(in.TypeName())}, nil
}

func fnEmpty(_ *evaluator, _ *Value, _ []Expr) (Seq, *QueryError) {
	return Seq{}, nil
}

func fnError(ev *evaluator, in *Value, args []Expr) (Seq, *QueryError) {
	if len(args) == 0 {
		return nil, customError("error")
	}
	msg, err := ev.argValue(in, args[0])
	if err != nil {
		return nil, err
	}
	if msg.Kind() == KindString {
		return nil, customError(msg.Str())
	}
	return nil, customError(msg.String())
}
