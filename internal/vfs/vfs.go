// Package vfs is the byte-addressable file store the editor loads from and
// saves to.
//
// The interface mirrors the handful of calls the editor actually makes
// (open, positional read and write, truncate, close) so that the OS-backed
// store and the in-memory store used by tests are interchangeable.
package vfs

import (
	"io"
)

// FS opens files by path.
type FS interface {
	// Open opens path. With create set the handle is writable and a missing
	// file is created empty. Without it the file must already exist (the
	// error wraps fs.ErrNotExist otherwise) and only reads are required to
	// succeed.
	Open(path string, create bool) (Handle, error)
}

// Handle is an open file. *os.File satisfies it.
type Handle interface {
	io.ReaderAt
	io.WriterAt

	// Truncate changes the size of the file.
	Truncate(size int64) error

	// Close releases the handle. Any further call fails.
	Close() error
}
