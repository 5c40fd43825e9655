package vfs

import (
	"io/fs"
	"os"
	"syscall"
)

// OSFS implements FS on the host file system.
type OSFS struct{}

// NewOSFS returns the host file system.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Ensure OSFS implements FS.
var _ FS = (*OSFS)(nil)

// Open opens path. Without create the file is opened read-only so that
// read-only files can still be loaded.
func (OSFS) Open(path string, create bool) (Handle, error) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: path, Err: syscall.EISDIR}
	}

	if !create {
		return os.Open(path)
	}
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
}
