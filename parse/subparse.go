package parse

import "github.com/homoiconic-lang/core"

// MatchResult is what Subparse reports for one rule-block match attempt
// (§4.3 "PARSE result-wrapping"): the furthest cursor index reached, and
// whether the block matched at all.
type MatchResult struct {
	End     int32
	Matched bool
}

type segment struct{ start, end int32 }

// splitAlternatives cuts rules into its top-level BAR!-separated
// alternatives (§4.3 "BAR! alternation"): a rule block is tried
// alternative by alternative, left to right, until one succeeds.
func splitAlternatives(vm *core.Interpreter, rules *core.Series) []segment {
	var segs []segment
	var start int32
	n := int32(rules.Len())
	for i := int32(0); i < n; i++ {
		c := *rules.At(i)
		if c.Kind == core.KindBlank && c.Flags.Has(core.CellFlagUnevaluated) {
			segs = append(segs, segment{start, i})
			start = i + 1
		}
	}
	return append(segs, segment{start, n})
}

// Subparse matches rules against input starting at startIndex, as a
// recursive descent over the rule block rather than a compiled bytecode
// program. Grounded on the teacher's virtualMachine.Match loop (vm.go):
// an explicit backtracking stack of choice points walked by a pc,
// adapted here from "bytecode program counter over compiled opcodes" to
// "rule index read lazily off a PARSE rule BLOCK!", since the host spec
// has SUBPARSE read its own rules rather than compile them up front.
// GROUP!/DO sub-evaluations run as real core.Frames off vm so tracebacks
// and breakpoints work inside PARSE.
func Subparse(vm *core.Interpreter, parent *core.Frame, rules *core.Series, input *core.Series, specifier core.NodeID, startIndex int32) (MatchResult, error) {
	segments := splitAlternatives(vm, rules)

	for _, seg := range segments {
		pc := seg.start
		cur := NewCursor(input, startIndex)
		ok := true

		for pc < seg.end {
			op, read := readRuleOp(vm, rules, &pc)
			if !read {
				ok = false
				break
			}

			next, matched, threw, label, err := matchOp(vm, parent, op, cur, specifier)
			if err != nil {
				return MatchResult{}, err
			}
			if threw {
				switch label {
				case core.ThrowParseAccept:
					if parent != nil {
						parent.Catch(core.ThrowParseAccept)
					}
					return MatchResult{End: next.Index, Matched: true}, nil
				case core.ThrowParseReject:
					if parent != nil {
						parent.Catch(core.ThrowParseReject)
					}
					ok = false
				default:
					// BREAK, CONTINUE, a named throw, etc: propagate past
					// PARSE entirely by leaving it on parent.Thrown.
					return MatchResult{}, nil
				}
				break
			}
			if !matched {
				ok = false
				break
			}

			if op.setCapture != core.NilNode {
				assignCapture(vm, parent, op.setCapture, specifier, cur, next, op.collectCopy)
			}
			if op.getSeek != core.NilNode {
				if seek, ok2 := seekCapture(vm, parent, op.getSeek, specifier); ok2 {
					next = next.Seek(seek)
				}
			}

			cur = next
		}

		if ok {
			return MatchResult{End: cur.Index, Matched: true}, nil
		}
	}

	return MatchResult{End: startIndex, Matched: false}, nil
}

// assignCapture implements SET/COPY's position-or-range capture (§4.3
// "SET-WORD!/GET-WORD! position capture/seek"): COPY binds the matched
// range as a new series value; a bare SET-WORD! (without COPY) binds
// just the element or position.
func assignCapture(vm *core.Interpreter, parent *core.Frame, symbol core.NodeID, specifier core.NodeID, from, to Cursor, asCopy bool) {
	if parent == nil {
		return
	}
	var value core.Cell
	if asCopy {
		value = copyRange(vm, from, to)
	} else if from.Series.Flags.Has(core.SeriesFlagArray) && !from.AtEnd() {
		value = from.PeekCell()
	} else {
		value = core.NewInteger(int64(from.Index))
	}
	assignWord(vm, parent, symbol, specifier, value)
}

func seekCapture(vm *core.Interpreter, parent *core.Frame, symbol core.NodeID, specifier core.NodeID) (int32, bool) {
	if parent == nil {
		return 0, false
	}
	ctx := parent.Varlist
	if ctx == nil {
		return 0, false
	}
	if v := ctx.Lookup(symbol); v != nil && v.Kind == core.KindInteger {
		return int32(v.AsInteger()), true
	}
	return 0, false
}

func assignWord(vm *core.Interpreter, parent *core.Frame, symbol core.NodeID, specifier core.NodeID, value core.Cell) {
	ctx := parent.Varlist
	if ctx == nil {
		return
	}
	if idx := ctx.IndexOf(symbol); idx != 0 {
		*ctx.Slot(idx) = value
		return
	}
	ctx.AddSlot(symbol, value)
}

// copyRange builds the series-valued result of a COPY capture: a fresh
// series over the same backing kind as the input, holding [from, to),
// registered in the arena so the returned Cell addresses it directly.
func copyRange(vm *core.Interpreter, from, to Cursor) core.Cell {
	s := from.Series
	switch {
	case s.Flags.Has(core.SeriesFlagArray):
		out := core.NewArraySeries()
		for i := from.Index; i < to.Index; i++ {
			out.AppendCell(*s.At(i))
		}
		return core.Cell{Kind: core.KindBlock, First: vm.Arena.AllocSeries(out)}
	case s.Flags.Has(core.SeriesFlagString):
		var runes []rune
		for i := from.Index; i < to.Index; i++ {
			runes = append(runes, s.RuneAt(i))
		}
		out := core.NewStringSeries(string(runes))
		return core.Cell{Kind: core.KindText, First: vm.Arena.AllocSeries(out)}
	default:
		var bytes []byte
		for i := from.Index; i < to.Index; i++ {
			bytes = append(bytes, s.ByteAt(i))
		}
		out := core.NewBinarySeries(bytes)
		return core.Cell{Kind: core.KindBinary, First: vm.Arena.AllocSeries(out)}
	}
}

// matchOp applies an op's iteration bounds (min, max) around one base
// match, per §4.3 "Iteration flags".
func matchOp(vm *core.Interpreter, parent *core.Frame, op ruleOp, cur Cursor, specifier core.NodeID) (Cursor, bool, bool, core.ThrowLabel, error) {
	count := 0
	for op.max < 0 || count < op.max {
		next, matched, threw, label, err := matchOnce(vm, parent, op, cur, specifier)
		if err != nil {
			return cur, false, false, 0, err
		}
		if threw {
			return next, false, true, label, nil
		}
		if !matched {
			break
		}
		cur = next
		count++
		if op.ahead || op.negate {
			break
		}
	}
	if count < op.min {
		return cur, false, false, 0, nil
	}
	return cur, true, false, 0, nil
}

// matchOnce applies NOT/AND-AHEAD's zero-width semantics around a single
// base match attempt.
func matchOnce(vm *core.Interpreter, parent *core.Frame, op ruleOp, cur Cursor, specifier core.NodeID) (Cursor, bool, bool, core.ThrowLabel, error) {
	if op.negate {
		_, matched, threw, label, err := matchBase(vm, parent, op, cur, specifier)
		if err != nil || threw {
			return cur, false, threw, label, err
		}
		return cur, !matched, false, 0, nil
	}
	if op.ahead {
		_, matched, threw, label, err := matchBase(vm, parent, op, cur, specifier)
		if err != nil || threw {
			return cur, false, threw, label, err
		}
		return cur, matched, false, 0, nil
	}
	return matchBase(vm, parent, op, cur, specifier)
}

func matchBase(vm *core.Interpreter, parent *core.Frame, op ruleOp, cur Cursor, specifier core.NodeID) (Cursor, bool, bool, core.ThrowLabel, error) {
	switch op.keyword {
	case "":
		return matchOperand(vm, op.operand, cur, specifier)
	case "skip":
		if cur.AtEnd() {
			return cur, false, false, 0, nil
		}
		return cur.Advance(1), true, false, 0, nil
	case "end":
		return cur, cur.AtEnd(), false, 0, nil
	case "to":
		return matchScan(vm, op.operand, cur, specifier, false)
	case "thru":
		return matchScan(vm, op.operand, cur, specifier, true)
	case "into":
		return matchInto(vm, parent, op, cur, specifier)
	case "do":
		return matchDo(vm, parent, cur, specifier)
	case "quote", "match":
		return matchOperand(vm, op.operand, cur, specifier)
	case "accept", "break":
		if parent != nil {
			parent.Throw(core.ThrowParseAccept, core.NewLogic(true))
		}
		return cur, false, true, core.ThrowParseAccept, nil
	case "reject":
		if parent != nil {
			parent.Throw(core.ThrowParseReject, core.NulledCell)
		}
		return cur, false, true, core.ThrowParseReject, nil
	case "fail":
		return cur, false, false, 0, nil
	default:
		return cur, false, false, 0, nil
	}
}

// matchOperand matches one literal/DATATYPE!/TYPESET!/charset/nested-rule
// token against cur, per §4.3's rule-token list.
func matchOperand(vm *core.Interpreter, operand core.Cell, cur Cursor, specifier core.NodeID) (Cursor, bool, bool, core.ThrowLabel, error) {
	if cur.Series.Flags.Has(core.SeriesFlagArray) {
		if operand.Kind == core.KindDatatype && operand.AsDatatype() == core.KindEnd {
			return cur, cur.AtEnd(), false, 0, nil
		}
		if cur.AtEnd() {
			return cur, false, false, 0, nil
		}
		elem := cur.PeekCell()
		switch operand.Kind {
		case core.KindDatatype:
			if elem.Unescaped() == operand.AsDatatype() {
				return cur.Advance(1), true, false, 0, nil
			}
			return cur, false, false, 0, nil
		case core.KindTypeset:
			s := vm.Arena.Series(operand.First)
			if KindInTypeset(s, elem.Unescaped()) {
				return cur.Advance(1), true, false, 0, nil
			}
			return cur, false, false, 0, nil
		case core.KindBlock, core.KindGroup:
			sub := vm.Arena.Series(operand.First)
			res, err := Subparse(vm, nil, sub, cur.Series, specifier, cur.Index)
			if err != nil {
				return cur, false, false, 0, err
			}
			if res.Matched {
				return cur.Seek(res.End), true, false, 0, nil
			}
			return cur, false, false, 0, nil
		default:
			if cellsEqual(elem, operand) {
				return cur.Advance(1), true, false, 0, nil
			}
			return cur, false, false, 0, nil
		}
	}

	switch operand.Kind {
	case core.KindBitset:
		r, ok := cur.PeekRune()
		if !ok {
			return cur, false, false, 0, nil
		}
		s := vm.Arena.Series(operand.First)
		if CharsetHasRune(s, r) {
			return cur.Advance(1), true, false, 0, nil
		}
		return cur, false, false, 0, nil
	case core.KindChar:
		r, ok := cur.PeekRune()
		if ok && r == operand.AsChar() {
			return cur.Advance(1), true, false, 0, nil
		}
		return cur, false, false, 0, nil
	case core.KindText:
		return matchTextLiteral(vm, operand, cur)
	case core.KindDatatype:
		if operand.AsDatatype() == core.KindEnd {
			return cur, cur.AtEnd(), false, 0, nil
		}
		return cur, false, false, 0, nil
	default:
		return cur, false, false, 0, nil
	}
}

func cellsEqual(a, b core.Cell) bool {
	return a.Unescaped() == b.Unescaped() && a.Bits == b.Bits && a.First == b.First
}

func matchTextLiteral(vm *core.Interpreter, operand core.Cell, cur Cursor) (Cursor, bool, bool, core.ThrowLabel, error) {
	lit := vm.Arena.Series(operand.First)
	n := int32(lit.Len())
	if cur.Index+n > cur.Len() {
		return cur, false, false, 0, nil
	}
	for i := int32(0); i < n; i++ {
		probe := Cursor{Series: cur.Series, Index: cur.Index + i}
		r, _ := probe.PeekRune()
		if r != lit.RuneAt(i) {
			return cur, false, false, 0, nil
		}
	}
	return cur.Advance(n), true, false, 0, nil
}

// matchScan implements TO/THRU's "advance until operand matches" (§4.3):
// TO leaves the cursor before the match, THRU leaves it after.
func matchScan(vm *core.Interpreter, operand core.Cell, cur Cursor, specifier core.NodeID, thru bool) (Cursor, bool, bool, core.ThrowLabel, error) {
	probe := cur
	for {
		next, matched, threw, label, err := matchOperand(vm, operand, probe, specifier)
		if err != nil || threw {
			return probe, false, threw, label, err
		}
		if matched {
			if thru {
				return next, true, false, 0, nil
			}
			return probe, true, false, 0, nil
		}
		if probe.AtEnd() {
			return cur, false, false, 0, nil
		}
		probe = probe.Advance(1)
	}
}

// matchInto implements INTO's recursion into a nested series value
// (§4.3): the current array element must itself be a series, matched in
// full by the given sub-rule block.
func matchInto(vm *core.Interpreter, parent *core.Frame, op ruleOp, cur Cursor, specifier core.NodeID) (Cursor, bool, bool, core.ThrowLabel, error) {
	if !cur.Series.Flags.Has(core.SeriesFlagArray) || cur.AtEnd() {
		return cur, false, false, 0, nil
	}
	elem := cur.PeekCell()
	if !elem.Kind.HoldsNode() {
		return cur, false, false, 0, nil
	}
	inner := vm.Arena.Series(elem.First)
	if inner == nil {
		return cur, false, false, 0, nil
	}
	subRules := vm.Arena.Series(op.operand.First)
	res, err := Subparse(vm, parent, subRules, inner, specifier, 0)
	if err != nil {
		return cur, false, false, 0, err
	}
	if res.Matched && int(res.End) == inner.Len() {
		return cur.Advance(1), true, false, 0, nil
	}
	return cur, false, false, 0, nil
}

// matchDo implements DO's "evaluate one expression from array input"
// (§4.3), running a real core.Frame over the input array positioned at
// cur so tracebacks work the same as any other evaluation. The rule
// operand read after DO is not matched against the evaluated result: DO
// succeeds whenever the step completes without a throw.
func matchDo(vm *core.Interpreter, parent *core.Frame, cur Cursor, specifier core.NodeID) (Cursor, bool, bool, core.ThrowLabel, error) {
	if !cur.Series.Flags.Has(core.SeriesFlagArray) {
		return cur, false, false, 0, nil
	}
	feed := core.NewArrayFeed(cur.Series, specifier)
	for i := int32(0); i < cur.Index; i++ {
		feed.Next()
	}
	var out core.Cell
	sub := vm.NewFrame(feed, &out, parent)
	threw, err := sub.Step()
	if err != nil {
		return cur, false, false, 0, err
	}
	if threw {
		if parent != nil {
			parent.Propagate(sub)
		}
		return cur, false, true, sub.Thrown.Label, nil
	}
	return cur.Seek(feed.Index()), true, false, 0, nil
}
