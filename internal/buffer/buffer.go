// Package buffer holds the document being edited: an ordered sequence of
// byte lines and the edit operations that mutate it.
//
// Offsets are byte offsets. A store always holds at least one line until it
// is released; an empty document is a single empty line.
package buffer

import (
	"bytes"
	"errors"
	"slices"
)

var (
	// ErrNoMemory is returned when the allocator refuses the memory an
	// operation needs.
	ErrNoMemory = errors.New("buffer: out of memory")

	// ErrReleased is returned by operations on a released store.
	ErrReleased = errors.New("buffer: line store released")

	// ErrNewline is returned when a line given to FromLines contains '\n'.
	ErrNewline = errors.New("buffer: line contains a newline")
)

// Line is one line of text without its terminator.
type Line struct {
	data []byte
}

// LineStore is the ordered sequence of lines making up a document.
// It is owned by a single editing session and is not safe for concurrent use.
type LineStore struct {
	lines    []Line
	alloc    Allocator
	released bool
}

// New returns a store holding one empty line. A nil alloc means Unbounded.
func New(alloc Allocator) (*LineStore, error) {
	if alloc == nil {
		alloc = Unbounded()
	}
	if !alloc.Reserve(LineOverhead) {
		return nil, ErrNoMemory
	}
	return &LineStore{lines: []Line{{}}, alloc: alloc}, nil
}

// FromLines returns a store holding a copy of lines. No line may contain '\n'.
func FromLines(alloc Allocator, lines []string) (*LineStore, error) {
	parts := make([][]byte, len(lines))
	for i, l := range lines {
		if bytes.IndexByte([]byte(l), '\n') >= 0 {
			return nil, ErrNewline
		}
		parts[i] = []byte(l)
	}
	return build(alloc, parts)
}

// build copies parts into owned lines, claiming their memory first. On
// refusal everything claimed so far is given back.
func build(alloc Allocator, parts [][]byte) (*LineStore, error) {
	if alloc == nil {
		alloc = Unbounded()
	}
	if len(parts) == 0 {
		return New(alloc)
	}

	lines := make([]Line, 0, len(parts))
	claimed := 0
	for _, p := range parts {
		cost := len(p) + LineOverhead
		if !alloc.Reserve(cost) {
			alloc.Free(claimed)
			return nil, ErrNoMemory
		}
		claimed += cost
		lines = append(lines, Line{data: bytes.Clone(p)})
	}
	return &LineStore{lines: lines, alloc: alloc}, nil
}

// LineCount returns the number of lines. It is at least 1 until Release.
func (s *LineStore) LineCount() int {
	return len(s.lines)
}

// LineLen returns the length of line i, or 0 if i is out of range.
func (s *LineStore) LineLen(i int) int {
	if i < 0 || i >= len(s.lines) {
		return 0
	}
	return len(s.lines[i].data)
}

// Line returns a copy of line i, or nil if i is out of range.
func (s *LineStore) Line(i int) []byte {
	if i < 0 || i >= len(s.lines) {
		return nil
	}
	return bytes.Clone(s.lines[i].data)
}

// Lines returns a snapshot of every line as a string.
func (s *LineStore) Lines() []string {
	out := make([]string, len(s.lines))
	for i, l := range s.lines {
		out[i] = string(l.data)
	}
	return out
}

// Bytes returns the persisted form of the document: every line followed by
// a single '\n'.
func (s *LineStore) Bytes() []byte {
	total := 0
	for _, l := range s.lines {
		total += len(l.data) + 1
	}
	out := make([]byte, 0, total)
	for _, l := range s.lines {
		out = append(out, l.data...)
		out = append(out, '\n')
	}
	return out
}

// valid reports whether (row, col) addresses an insertion point.
func (s *LineStore) valid(row, col int) bool {
	if s.released || row < 0 || row >= len(s.lines) {
		return false
	}
	return col >= 0 && col <= len(s.lines[row].data)
}

// InsertChar inserts b into line row at offset col. It reports false and
// leaves the store unchanged if the position is invalid, b is '\n', or the
// allocator refuses the extra byte.
func (s *LineStore) InsertChar(row, col int, b byte) bool {
	if !s.valid(row, col) || b == '\n' {
		return false
	}
	if !s.alloc.Reserve(1) {
		return false
	}
	ln := &s.lines[row]
	ln.data = slices.Insert(ln.data, col, b)
	return true
}

// DeleteCharForward removes the byte at offset col of line row. At the end
// of a line it does nothing; it never joins lines.
func (s *LineStore) DeleteCharForward(row, col int) bool {
	if !s.valid(row, col) || col == len(s.lines[row].data) {
		return false
	}
	ln := &s.lines[row]
	ln.data = slices.Delete(ln.data, col, col+1)
	s.alloc.Free(1)
	return true
}

// Backspace removes the byte before (row, col). At the start of a line other
// than the first, the line is appended to the previous one and removed.
// It returns the new insertion point and whether anything changed.
func (s *LineStore) Backspace(row, col int) (int, int, bool) {
	if !s.valid(row, col) {
		return row, col, false
	}

	if col > 0 {
		ln := &s.lines[row]
		ln.data = slices.Delete(ln.data, col-1, col)
		s.alloc.Free(1)
		return row, col - 1, true
	}

	if row == 0 {
		return row, col, false
	}

	cur := s.lines[row].data
	prevLen := len(s.lines[row-1].data)
	if !s.alloc.Reserve(len(cur)) {
		return row, col, false
	}
	s.lines[row-1].data = append(s.lines[row-1].data, cur...)
	s.lines = slices.Delete(s.lines, row, row+1)
	s.alloc.Free(len(cur) + LineOverhead)
	s.ensureLine()

	return row - 1, prevLen, true
}

// SplitLine breaks line row at col. The bytes from col onward become a new
// line inserted after it. It returns the new insertion point, the start of
// the new line, and whether the split happened.
func (s *LineStore) SplitLine(row, col int) (int, int, bool) {
	if !s.valid(row, col) {
		return row, col, false
	}

	data := s.lines[row].data
	rightLen := len(data) - col
	if !s.alloc.Reserve(rightLen + LineOverhead) {
		return row, col, false
	}

	right := make([]byte, rightLen)
	copy(right, data[col:])
	s.lines = slices.Insert(s.lines, row+1, Line{data: right})
	s.lines[row].data = data[:col]
	s.alloc.Free(rightLen)

	return row + 1, 0, true
}

// Release gives every line back to the allocator. The store must not be
// used afterwards; mutators report false and LineCount returns 0.
func (s *LineStore) Release() {
	if s.released {
		return
	}
	for i := range s.lines {
		s.alloc.Free(len(s.lines[i].data) + LineOverhead)
		s.lines[i].data = nil
	}
	s.lines = nil
	s.released = true
}

// Released reports whether Release has been called.
func (s *LineStore) Released() bool {
	return s.released
}

// ensureLine restores the one-line minimum after a removal.
func (s *LineStore) ensureLine() {
	if s.released || len(s.lines) > 0 {
		return
	}
	// The empty line is not optional, so a refusal here is ignored.
	s.alloc.Reserve(LineOverhead)
	s.lines = []Line{{}}
}
