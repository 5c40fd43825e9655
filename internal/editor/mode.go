package editor

import "github.com/JackWReid/svim/internal/buffer"

// Mode represents the editor mode.
type Mode int

const (
	ModeNormal  Mode = iota // navigation and single-key commands
	ModeInsert              // text entry
	ModeCommand             // collecting a ':' command line
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	}
	return "UNKNOWN"
}

// Cursor is an insertion point: a line index and a byte offset into it.
// Col may equal the line length, meaning after the last byte.
type Cursor struct {
	Row int
	Col int
}

// Clamp returns c moved to the nearest valid position in s.
func (c Cursor) Clamp(s *buffer.LineStore) Cursor {
	if c.Row >= s.LineCount() {
		c.Row = s.LineCount() - 1
	}
	if c.Row < 0 {
		c.Row = 0
	}
	if n := s.LineLen(c.Row); c.Col > n {
		c.Col = n
	}
	if c.Col < 0 {
		c.Col = 0
	}
	return c
}
