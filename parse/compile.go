package parse

import "github.com/homoiconic-lang/core"

// ruleOp is one parsed PARSE rule step: a keyword/literal/charset match
// plus whatever iteration prefix and modifier flags (§4.3 "Iteration
// flags") preceded it. Building ruleOp values from the raw rule BLOCK!
// is the PARSE-engine analogue of the teacher's bytecode compiler
// (vm.go's Bytecode), except the "compiled form" here is read lazily,
// one rule at a time, straight off the rule array -- matching the host
// spec's "SUBPARSE ... reads rules variadically from its feed" rather
// than compiling the whole rule set up front.
type ruleOp struct {
	keyword  string // SKIP, END, TO, THRU, INTO, DO, SOME, ANY, WHILE, OPT, etc., or "" for a literal/charset match
	operand  core.Cell
	min, max int // iteration bounds; (1,1) for a single match

	setCapture  core.NodeID // SET-WORD! target, or NilNode
	getSeek     core.NodeID // GET-WORD! seek source, or NilNode
	negate      bool        // NOT prefix seen
	ahead       bool        // AND/AHEAD prefix seen
	collectCopy bool        // COPY prefix seen (captures matched range as a series, vs SET's single-position mark)
}

// readRuleOp reads one rule step starting at rules[*pc], advancing *pc
// past everything it consumes (count prefix, SET-WORD!/GET-WORD!
// prefix, the operand itself), mirroring the scanner's single-token
// prescan (core/scanner_token.go) but over an already-scanned rule array
// instead of raw bytes.
func readRuleOp(vm *core.Interpreter, rules *core.Series, pc *int32) (ruleOp, bool) {
	op := ruleOp{min: 1, max: 1}

	for !rules.Tail(*pc) {
		cur := *rules.At(*pc)
		switch cur.Kind {
		case core.KindSetWord:
			op.setCapture = cur.First
			*pc++
			continue
		case core.KindGetWord:
			op.getSeek = cur.First
			*pc++
			continue
		case core.KindInteger:
			n := int(cur.AsInteger())
			*pc++
			if !rules.Tail(*pc) && rules.At(*pc).Kind == core.KindInteger {
				op.min = n
				op.max = int(rules.At(*pc).AsInteger())
				*pc++
			} else {
				op.min, op.max = n, n
			}
			continue
		}
		break
	}

	if rules.Tail(*pc) {
		return ruleOp{}, false
	}
	cur := *rules.At(*pc)
	*pc++

	if cur.Kind == core.KindWord {
		name := vm.Symbols.Spelling(cur.First)
		switch name {
		case "not":
			op.negate = true
			sub, ok := readRuleOp(vm, rules, pc)
			if !ok {
				return ruleOp{}, false
			}
			sub.negate = !sub.negate
			sub.min, sub.max = op.min, op.max
			return sub, true
		case "and", "ahead":
			op.ahead = true
			sub, ok := readRuleOp(vm, rules, pc)
			if !ok {
				return ruleOp{}, false
			}
			sub.ahead = true
			return sub, true
		case "copy":
			op.collectCopy = true
			sub, ok := readRuleOp(vm, rules, pc)
			if !ok {
				return ruleOp{}, false
			}
			sub.collectCopy = true
			sub.setCapture = op.setCapture
			return sub, true
		case "some":
			op.min, op.max = 1, -1
			return continuationOp(vm, op, rules, pc)
		case "any", "while":
			op.min, op.max = 0, -1
			return continuationOp(vm, op, rules, pc)
		case "opt":
			op.min, op.max = 0, 1
			return continuationOp(vm, op, rules, pc)
		}
		switch name {
		case "to", "thru", "into", "do", "quote", "match":
			sub, ok := readRuleOp(vm, rules, pc)
			if !ok {
				return ruleOp{}, false
			}
			op.keyword = name
			op.operand = sub.operand
			return op, true
		default:
			op.keyword = name
			return op, true
		}
	}

	op.operand = cur
	return op, true
}

// continuationOp reads the rule this iteration keyword applies to.
func continuationOp(vm *core.Interpreter, op ruleOp, rules *core.Series, pc *int32) (ruleOp, bool) {
	sub, ok := readRuleOp(vm, rules, pc)
	if !ok {
		return ruleOp{}, false
	}
	sub.min, sub.max = op.min, op.max
	sub.setCapture = op.setCapture
	return sub, true
}
