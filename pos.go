package core

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Location is a cursor position in source text: byte offset plus its
// derived line/column, carried alongside an optional file name for error
// messages. Grounded on the teacher's BaseParser.Location() shape
// (base_parser.go), generalized from the parser's own internal line/
// column counters to a value anyone holding a byte offset can derive via
// LineIndex.
type Location struct {
	Line   int32
	Column int32
	Cursor int
	File   string
}

// Span is a half-open [Start, End) region of source, used by the scanner
// (§4.1 "Error reporting") to report the byte range of an offending
// token and by mold/error values that must point at a sub-expression.
type Span struct {
	Start Location
	End   Location
}

func NewSpan(start, end Location) Span { return Span{Start: start, End: end} }

func (s Span) String() string {
	startLine, startCol := int(s.Start.Line), int(s.Start.Column)
	endLine, endCol := int(s.End.Line), int(s.End.Column)
	if startLine == endLine && startLine == 1 {
		if startCol == endCol {
			return fmt.Sprintf("%d", startCol)
		}
		return fmt.Sprintf("%d..%d", startCol, endCol)
	}
	if startLine == endLine && startCol == endCol {
		return fmt.Sprintf("%d:%d", startLine, startCol)
	}
	return fmt.Sprintf("%d:%d..%d:%d", startLine, startCol, endLine, endCol)
}

// LineIndex allows fast conversion from byte cursor offsets to line/
// column, used by the scanner's error reporting ("report ... the line
// number and full line text at the error point", §4.1) without having to
// recompute line starts on every token.
//
// It stores the start byte offset of each line (0-based). Given a
// cursor, it finds the line by binary searching line starts (O(log
// lines)) and computes the column as (runes since lineStart + 1).
//
// Construction is O(n) over the input and is intended to be cached per
// input.
type LineIndex struct {
	input     []byte
	lineStart []int
}

func NewLineIndex(input []byte) *LineIndex {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i, b := range input {
		if b == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &LineIndex{input: input, lineStart: lineStart}
}

func (li *LineIndex) Span(start, end int) Span {
	return Span{Start: li.LocationAt(start), End: li.LocationAt(end)}
}

func (li *LineIndex) LocationAt(cursor int) Location {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(li.input) {
		cursor = len(li.input)
	}

	lineIdx := sort.Search(len(li.lineStart), func(i int) bool {
		return li.lineStart[i] > cursor
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	lineStart := li.lineStart[lineIdx]
	col := int32(utf8.RuneCount(li.input[lineStart:cursor])) + 1

	return Location{
		Line:   int32(lineIdx + 1),
		Column: col,
		Cursor: cursor,
	}
}

// LineText returns the full text of the line containing cursor, with any
// trailing newline stripped, for inclusion in error messages (§4.1
// "the line number and full line text at the error point").
func (li *LineIndex) LineText(cursor int) string {
	loc := li.LocationAt(cursor)
	startIdx := int(loc.Line) - 1
	start := li.lineStart[startIdx]
	end := len(li.input)
	if startIdx+1 < len(li.lineStart) {
		end = li.lineStart[startIdx+1]
	}
	line := li.input[start:end]
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return string(line)
}
