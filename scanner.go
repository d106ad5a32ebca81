package core

import (
	"fmt"
)

// tokenKind is the scanner's token classification (§4.1 "Token kinds").
type tokenKind uint8

const (
	tokEnd tokenKind = iota
	tokNewline
	tokBar
	tokLitBar
	tokBlank
	tokWord
	tokSet
	tokGet
	tokLit
	tokRefine
	tokIssue
	tokBlockBegin
	tokBlockEnd
	tokGroupBegin
	tokGroupEnd
	tokPath
	tokInteger
	tokDecimal
	tokPercent
	tokMoney
	tokTime
	tokDate
	tokPair
	tokTuple
	tokString
	tokBinary
	tokChar
	tokFile
	tokEmail
	tokURL
	tokTag
	tokConstruct
)

// byteClass is one entry of the 256-entry classification table (§4.1
// "Character classes"): a coarse class in the low bits and, for hex
// digits, the numeric value packed in the high bits.
type byteClass uint16

const (
	classDefault byteClass = iota
	classWord
	classNumber
	classDelimit
	classSpecial
	classUTF8Err
)

const (
	hexShift = 8
	hexMask  = 0xFF << hexShift
)

var charClassTable [256]byteClass

func init() {
	for i := 0; i < 256; i++ {
		charClassTable[i] = classDefault
	}
	for c := 'a'; c <= 'z'; c++ {
		charClassTable[c] = classWord
	}
	for c := 'A'; c <= 'Z'; c++ {
		charClassTable[c] = classWord
	}
	charClassTable['_'] = classWord
	charClassTable['?'] = classWord
	charClassTable['!'] = classWord
	charClassTable['\''] = classWord
	charClassTable['+'] = classWord
	charClassTable['-'] = classWord
	charClassTable['*'] = classWord
	charClassTable['='] = classWord
	charClassTable['&'] = classWord
	charClassTable['|'] = classWord
	charClassTable['~'] = classWord

	for c := '0'; c <= '9'; c++ {
		charClassTable[c] = classNumber | byteClass(c-'0')<<hexShift
	}
	for c := 'a'; c <= 'f'; c++ {
		charClassTable[c] |= byteClass(10+c-'a') << hexShift
	}
	for c := 'A'; c <= 'F'; c++ {
		charClassTable[c] |= byteClass(10+c-'A') << hexShift
	}

	for _, c := range []byte{' ', '\t', '\n', '\r'} {
		charClassTable[c] = classDelimit
	}
	for _, c := range []byte{'[', ']', '(', ')', '{', '}', ':', '/', ';', '"'} {
		charClassTable[c] = classDelimit
	}

	for _, c := range []byte{'%', '$', '@', '#', '^', '<', '>', '.', ','} {
		charClassTable[c] = classSpecial
	}

	for c := 0x80; c <= 0xBF; c++ {
		charClassTable[c] = classUTF8Err
	}
}

func hexValue(b byte) int { return int(charClassTable[b] >> hexShift) }

// Scanner turns a UTF-8 byte stream into Cells collected into array
// series; ScanAll returns the top-level ones. Scanned values are not
// pushed onto the data stack, and the whole input is scanned in one call.
//
// Grounded on the teacher's BaseParser (base_parser.go): a cursor/line/
// column triple over an input buffer with Peek/Any and a NewError/Throw
// pair, generalized here from rune-at-a-time recursive-descent predicate
// combinators to a table-driven tokenizer per §4.1.
type Scanner struct {
	input  []byte
	cursor int
	lines  *LineIndex
	file   string

	relaxed         bool
	maxConstructDep int
	depth           int

	sym   *symbolTable
	arena *nodeArena
	ds    *DataStack
}

func NewScanner(input []byte, file string, cfg *Config, sym *symbolTable, arena *nodeArena, ds *DataStack) *Scanner {
	return &Scanner{
		input:           input,
		lines:           NewLineIndex(input),
		file:            file,
		relaxed:         cfg.GetBool("scanner.relaxed"),
		maxConstructDep: cfg.GetInt("scanner.max_construct_depth"),
		sym:             sym,
		arena:           arena,
		ds:              ds,
	}
}

func (s *Scanner) loc() Location {
	l := s.lines.LocationAt(s.cursor)
	l.File = s.file
	return l
}

func (s *Scanner) peekByte() (byte, bool) {
	if s.cursor >= len(s.input) {
		return 0, false
	}
	return s.input[s.cursor], true
}

func (s *Scanner) advance(n int) { s.cursor += n }

func (s *Scanner) atEnd() bool { return s.cursor >= len(s.input) }

func (s *Scanner) errorf(token tokenKind, start int, format string, args ...interface{}) error {
	span := s.lines.Span(start, s.cursor)
	near := s.lines.LineText(start)
	return NewSyntaxError(tokenName(token), fmt.Sprintf(format, args...), span, near)
}

func tokenName(t tokenKind) string {
	names := [...]string{
		"end", "newline", "bar", "lit-bar", "blank", "word", "set-word",
		"get-word", "lit-word", "refinement", "issue", "block-begin",
		"block-end", "group-begin", "group-end", "path", "integer",
		"decimal", "percent", "money", "time", "date", "pair", "tuple",
		"string", "binary", "char", "file", "email", "url", "tag",
		"construct",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown-token"
}

// skipWhitespace consumes spaces, tabs, line breaks, and comments (`;`
// to end of line), per §4.1 "skip whitespace".
func (s *Scanner) skipWhitespace() {
	for !s.atEnd() {
		b := s.input[s.cursor]
		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
			s.cursor++
		case b == ';':
			for !s.atEnd() && s.input[s.cursor] != '\n' {
				s.cursor++
			}
		default:
			return
		}
	}
}

// ScanAll tokenizes the whole input and returns its top-level values, in
// order, as an array series. An unmatched closing bracket is a scan
// error (in relaxed mode, an inline error value). Construction of nested
// BLOCK!/GROUP! series recurses through scanValue.
func (s *Scanner) ScanAll() (*Series, error) {
	out := NewArraySeries()
	for {
		s.skipWhitespace()
		if s.atEnd() {
			return out, nil
		}
		c, err := s.scanValue()
		if err != nil {
			if s.relaxed {
				out.AppendCell(s.relaxedErrorCell(err))
				continue
			}
			return out, err
		}
		out.AppendCell(c)
	}
}

// relaxedErrorCell wraps a scan error's message as an inline TEXT! value so
// relaxed-mode callers get a stream that keeps flowing past the failing
// byte instead of aborting the whole scan (§4.1 "emits an error value
// into the stream").
func (s *Scanner) relaxedErrorCell(err error) Cell {
	ce, _ := err.(CoreError)
	msg := err.Error()
	if ce != nil {
		msg = ce.Error()
	}
	str := NewStringSeries(msg)
	id := s.arena.AllocSeries(str)
	return Cell{Kind: KindText, First: id}
}

// scanValue scans exactly one value, including the retroactive path
// promotion of §4.1 "Paths".
func (s *Scanner) scanValue() (Cell, error) {
	start := s.cursor
	tok, cell, err := s.scanToken()
	if err != nil {
		return Cell{}, err
	}
	if !s.atEnd() && s.input[s.cursor] == '/' && canStartPath(tok) {
		return s.scanPathFrom(start, tok, cell)
	}
	return cell, nil
}

func canStartPath(t tokenKind) bool {
	switch t {
	case tokWord, tokSet, tokGet, tokLit, tokInteger, tokBlockBegin, tokGroupBegin:
		return true
	default:
		return false
	}
}
