package vfs

import (
	"io"
	"io/fs"
	"path"
	"sync"
)

// MemFS implements FS in memory. It is used by tests and can stand in for a
// device file store.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu       sync.RWMutex
	files    map[string]*memFile
	readOnly bool
	readErr  error
}

type memFile struct {
	content []byte
}

// NewMemFS creates an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string]*memFile)}
}

// Ensure MemFS implements FS.
var _ FS = (*MemFS)(nil)

// SetReadOnly makes every later Open with create fail with fs.ErrPermission.
// Existing files can still be opened for reading.
func (m *MemFS) SetReadOnly(readOnly bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readOnly = readOnly
}

// SetReadError makes every later ReadAt fail with err, as a faulty device
// would. A nil err restores normal reads.
func (m *MemFS) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// WriteFile replaces the content of name.
func (m *MemFS) WriteFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[m.cleanPath(name)] = &memFile{content: append([]byte(nil), data...)}
}

// ReadFile returns a copy of the content of name.
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[m.cleanPath(name)]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), f.content...), nil
}

// Exists reports whether name has been created.
func (m *MemFS) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[m.cleanPath(name)]
	return ok
}

// Open opens name, creating it when create is set.
func (m *MemFS) Open(name string, create bool) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.cleanPath(name)
	f, ok := m.files[p]
	if !ok {
		if !create {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		if m.readOnly {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
		}
		f = &memFile{}
		m.files[p] = f
	} else if create && m.readOnly {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}

	return &memHandle{fs: m, file: f, name: name}, nil
}

func (m *MemFS) cleanPath(p string) string {
	return path.Clean("/" + p)
}

// memHandle is an open MemFS file.
type memHandle struct {
	fs     *MemFS
	file   *memFile
	name   string
	closed bool
}

func (h *memHandle) ReadAt(p []byte, off int64) (int, error) {
	h.fs.mu.RLock()
	defer h.fs.mu.RUnlock()

	if h.closed {
		return 0, &fs.PathError{Op: "read", Path: h.name, Err: fs.ErrClosed}
	}
	if h.fs.readErr != nil {
		return 0, &fs.PathError{Op: "read", Path: h.name, Err: h.fs.readErr}
	}
	if off < 0 {
		return 0, &fs.PathError{Op: "read", Path: h.name, Err: fs.ErrInvalid}
	}
	if off >= int64(len(h.file.content)) {
		return 0, io.EOF
	}
	n := copy(p, h.file.content[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (h *memHandle) WriteAt(p []byte, off int64) (int, error) {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	if h.closed {
		return 0, &fs.PathError{Op: "write", Path: h.name, Err: fs.ErrClosed}
	}
	if off < 0 {
		return 0, &fs.PathError{Op: "write", Path: h.name, Err: fs.ErrInvalid}
	}
	end := int(off) + len(p)
	if end > len(h.file.content) {
		grown := make([]byte, end)
		copy(grown, h.file.content)
		h.file.content = grown
	}
	copy(h.file.content[off:], p)
	return len(p), nil
}

func (h *memHandle) Truncate(size int64) error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	if h.closed {
		return &fs.PathError{Op: "truncate", Path: h.name, Err: fs.ErrClosed}
	}
	if size < 0 {
		return &fs.PathError{Op: "truncate", Path: h.name, Err: fs.ErrInvalid}
	}
	if int(size) <= len(h.file.content) {
		h.file.content = h.file.content[:size]
		return nil
	}
	grown := make([]byte, size)
	copy(grown, h.file.content)
	h.file.content = grown
	return nil
}

func (h *memHandle) Close() error {
	h.fs.mu.Lock()
	defer h.fs.mu.Unlock()

	if h.closed {
		return &fs.PathError{Op: "close", Path: h.name, Err: fs.ErrClosed}
	}
	h.closed = true
	return nil
}
