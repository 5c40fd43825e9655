package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/JackWReid/svim/internal/vfs"
)

const (
	// DefaultLoadCapacity is the number of bytes Load stages from a file.
	DefaultLoadCapacity = 511
	// MaxLoadCapacity bounds the staging buffer; larger capacities are clamped.
	MaxLoadCapacity = 1 << 20
)

// LoadInfo describes what Load found.
type LoadInfo struct {
	New       bool // the path could not be opened; the store is an empty document
	Bytes     int  // bytes taken from the file
	Truncated bool // the file holds more than the staging capacity
}

// Load reads path into a new store. A path that cannot be opened is not an
// error: it yields a single empty line, the state for editing a new file.
// At most capacity bytes are read (DefaultLoadCapacity if capacity <= 0,
// MaxLoadCapacity if it is larger); anything beyond is dropped and
// reported through LoadInfo.Truncated. A read failure after the file opens
// is returned as an error.
func Load(fsys vfs.FS, path string, capacity int, alloc Allocator) (*LineStore, LoadInfo, error) {
	var info LoadInfo

	h, err := fsys.Open(path, false)
	if err != nil {
		info.New = true
		s, err := New(alloc)
		return s, info, err
	}
	defer h.Close()

	if capacity <= 0 {
		capacity = DefaultLoadCapacity
	}
	capacity = min(capacity, MaxLoadCapacity)
	// One extra byte tells a full file apart from a truncated one.
	staging := make([]byte, capacity+1)
	n, err := h.ReadAt(staging, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, info, fmt.Errorf("read %s: %w", path, err)
	}
	if n > capacity {
		n = capacity
		info.Truncated = true
	}
	info.Bytes = n

	s, err := build(alloc, splitLines(staging[:n]))
	if err != nil {
		return nil, info, err
	}
	return s, info, nil
}

// splitLines splits data on '\n'. A final '\n' terminates the last line
// rather than starting an empty one, and empty data is one empty line.
func splitLines(data []byte) [][]byte {
	data = bytes.TrimSuffix(data, []byte{'\n'})
	if len(data) == 0 {
		return [][]byte{{}}
	}
	return bytes.Split(data, []byte{'\n'})
}

// Save writes every line of s, each followed by '\n', to path in a single
// write after truncating the file. The whole image is staged before the
// file is touched. s is not modified.
func Save(fsys vfs.FS, s *LineStore, path string) error {
	if s.released {
		return ErrReleased
	}

	image := s.Bytes()
	if !s.alloc.Reserve(len(image)) {
		return ErrNoMemory
	}
	defer s.alloc.Free(len(image))

	h, err := fsys.Open(path, true)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	if err := h.Truncate(0); err != nil {
		h.Close()
		return fmt.Errorf("truncate %s: %w", path, err)
	}
	if _, err := h.WriteAt(image, 0); err != nil {
		h.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := h.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
