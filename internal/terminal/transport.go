// Package terminal carries bytes between the editor and a terminal-like peer.
package terminal

import (
	"bufio"
	"io"
)

// Transport moves raw bytes to and from the peer. GetByte blocks until a
// byte arrives.
type Transport interface {
	PutByte(b byte) error
	GetByte() (byte, error)
	Write(p []byte) (int, error)
}

// Stream is a Transport over any reader and writer. Output is unbuffered so
// that every Write reaches the peer immediately.
type Stream struct {
	r *bufio.Reader
	w io.Writer
}

// NewStream returns a Stream reading from r and writing to w.
func NewStream(r io.Reader, w io.Writer) *Stream {
	return &Stream{r: bufio.NewReader(r), w: w}
}

// Ensure Stream implements Transport.
var _ Transport = (*Stream)(nil)

// GetByte reads the next input byte.
func (s *Stream) GetByte() (byte, error) {
	return s.r.ReadByte()
}

// PutByte writes a single byte.
func (s *Stream) PutByte(b byte) error {
	_, err := s.w.Write([]byte{b})
	return err
}

// Write writes p in one call.
func (s *Stream) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Peek returns the next input byte without consuming it. It never blocks:
// ok is false when no byte is already buffered.
func (s *Stream) Peek() (b byte, ok bool) {
	if s.r.Buffered() == 0 {
		return 0, false
	}
	p, err := s.r.Peek(1)
	if err != nil {
		return 0, false
	}
	return p[0], true
}
