package gocfb

import (
	"os"
	"time"
)

// FileInfo describes the entry as os.FileInfo. Storages are directories.
func (e *DirectoryEntry) FileInfo() os.FileInfo {
	return entryFileInfo{*e}
}

type entryFileInfo struct {
	entry DirectoryEntry
}

func (e entryFileInfo) Name() string {
	return e.entry.Name
}

// Size is 0 for storages. The size field of the root describes the mini stream and
// no user data.
func (e entryFileInfo) Size() int64 {
	if !e.entry.IsStream() {
		return 0
	}
	return int64(e.entry.Size)
}

func (e entryFileInfo) Mode() os.FileMode {
	if e.IsDir() {
		return os.ModeDir | 0555
	}
	return 0444
}

// ModTime falls back to the creation time as many writers only set one of both.
func (e entryFileInfo) ModTime() time.Time {
	if modified := e.entry.Modified(); !modified.IsZero() {
		return modified
	}
	return e.entry.Created()
}

func (e entryFileInfo) IsDir() bool {
	return e.entry.IsStorage()
}

func (e entryFileInfo) Sys() interface{} {
	return e.entry
}
