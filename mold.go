package core

import (
	"strconv"
	"strings"
)

// stringEscaper reverses the scanner's `^`-escape decoding for mold
// output, grounded on the teacher's literalSanitizer (tree_printer.go) --
// the same "replacer over the characters that need round-tripping"
// shape, extended here from `"`/`\` to the full source escape set.
var stringEscaper = strings.NewReplacer(
	`"`, `^"`,
	"\n", `^/`,
	"\t", `^-`,
)

// Mold is the value-to-source-text serializer of the spec's round-trip
// property: molding a scanned value and re-scanning the result must
// reproduce an equal value. Grounded on the teacher's treePrinter
// (tree_printer.go): a strings.Builder-backed writer walked recursively
// over the node tree, generalized here from a fixed AST node set to the
// full Kind-indexed value model.
type Mold struct {
	out   strings.Builder
	vm    *Interpreter
	depth int
}

func NewMold(vm *Interpreter) *Mold { return &Mold{vm: vm} }

func (m *Mold) String() string { return m.out.String() }

// Value appends c's source-text representation to the mold buffer.
func (m *Mold) Value(c Cell) {
	for i := uint8(0); i < c.QuoteDepth; i++ {
		m.out.WriteByte('\'')
	}
	if c.Kind == KindQuoted {
		c.Kind = c.Unescaped()
		c.Bits &^= 0xFF << 56
		c.QuoteDepth = 0
	}
	switch c.Unescaped() {
	case KindEnd:
		return
	case KindNulled:
		m.out.WriteString("~null~")
	case KindVoid:
		return
	case KindBlank:
		m.out.WriteString("_")
	case KindLogic:
		if c.AsLogic() {
			m.out.WriteString("true")
		} else {
			m.out.WriteString("false")
		}
	case KindInteger:
		m.out.WriteString(strconv.FormatInt(c.AsInteger(), 10))
	case KindDecimal:
		m.out.WriteString(strconv.FormatFloat(c.AsDecimal(), 'g', -1, 64))
	case KindChar:
		m.out.WriteString("#\"")
		m.out.WriteRune(c.AsChar())
		m.out.WriteByte('"')
	case KindText:
		m.moldString(c)
	case KindBinary:
		m.moldBinary(c)
	case KindWord:
		m.out.WriteString(m.spelling(c))
	case KindSetWord:
		m.out.WriteString(m.spelling(c))
		m.out.WriteByte(':')
	case KindGetWord:
		m.out.WriteByte(':')
		m.out.WriteString(m.spelling(c))
	case KindLitWord:
		m.out.WriteByte('\'')
		m.out.WriteString(m.spelling(c))
	case KindRefinement:
		m.out.WriteByte('/')
		m.out.WriteString(m.spelling(c))
	case KindTag:
		m.out.WriteByte('<')
		m.out.WriteString(m.seriesString(c))
		m.out.WriteByte('>')
	case KindFile:
		m.out.WriteByte('%')
		m.out.WriteString(m.seriesString(c))
	case KindBlock:
		m.moldArray(c, '[', ']')
	case KindGroup:
		m.moldArray(c, '(', ')')
	case KindPath:
		m.moldPath(c)
	case KindAction:
		m.out.WriteString("#[action!]")
	case KindFrame:
		m.out.WriteString("#[frame!]")
	case KindDatatype:
		m.out.WriteString(c.AsDatatype().String())
		m.out.WriteByte('!')
	default:
		m.out.WriteString("#[")
		m.out.WriteString(c.Unescaped().String())
		m.out.WriteByte(']')
	}
}

func (m *Mold) spelling(c Cell) string {
	if m.vm == nil {
		return ""
	}
	return m.vm.Symbols.Spelling(c.First)
}

func (m *Mold) seriesString(c Cell) string {
	s := m.vm.Arena.Series(c.First)
	if s == nil {
		return ""
	}
	return string(s.Str)
}

func (m *Mold) moldString(c Cell) {
	m.out.WriteByte('"')
	m.out.WriteString(stringEscaper.Replace(m.seriesString(c)))
	m.out.WriteByte('"')
}

func (m *Mold) moldBinary(c Cell) {
	s := m.vm.Arena.Series(c.First)
	m.out.WriteString("#{")
	if s != nil {
		for _, b := range s.Bin {
			m.out.WriteString(hexByte(b))
		}
	}
	m.out.WriteByte('}')
}

func hexByte(b byte) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[b>>4], digits[b&0xF]})
}

func (m *Mold) moldArray(c Cell, open, close byte) {
	s := m.vm.Arena.Series(c.First)
	m.out.WriteByte(open)
	if s != nil {
		for i, v := range s.Array {
			if i > 0 {
				m.out.WriteByte(' ')
			}
			m.Value(v)
		}
	}
	m.out.WriteByte(close)
}

func (m *Mold) moldPath(c Cell) {
	s := m.vm.Arena.Series(c.First)
	if s == nil {
		return
	}
	for i, v := range s.Array {
		if i > 0 {
			m.out.WriteByte('/')
		}
		m.Value(v)
	}
}

// MoldValue is a convenience wrapper returning the molded text of a
// single cell.
func MoldValue(vm *Interpreter, c Cell) string {
	m := NewMold(vm)
	m.Value(c)
	return m.String()
}
