package gocfb

import (
	"io/fs"
)

type GoDirEntry struct {
	fs.FileInfo
}

func (g GoDirEntry) Type() fs.FileMode {
	return g.FileInfo.Mode().Type()
}

func (g GoDirEntry) Info() (fs.FileInfo, error) {
	return g.FileInfo, nil
}

// GoFile is a File usable as fs.File. It also keeps io.ReaderAt and io.Seeker of File.
type GoFile struct {
	*File
}

func (g GoFile) Stat() (fs.FileInfo, error) {
	return g.File.Stat()
}

func (g GoFile) Read(bytes []byte) (int, error) {
	return g.File.Read(bytes)
}

func (g GoFile) Close() error {
	return g.File.Close()
}

func (g GoFile) ReadDir(n int) ([]fs.DirEntry, error) {
	entries, err := g.File.Readdir(n)

	goEntries := make([]fs.DirEntry, len(entries))
	for i, e := range entries {
		goEntries[i] = GoDirEntry{e}
	}

	return goEntries, err
}

// GoFs wraps the afero implementation to be compatible with fs.FS.
// afero.IOFS{Fs} may be used as well.
type GoFs struct {
	*Fs
}

// NewGoFS opens the compound file contained in data as fs.FS compatible filesystem.
func NewGoFS(data []byte, opts ...Option) (*GoFs, error) {
	fs, err := NewFs(data, opts...)
	if err != nil {
		return nil, err
	}

	return &GoFs{fs}, nil
}

// NewGoFSSkipChecks opens the compound file as fs.FS just like NewGoFS but it skips
// some header validations which may allow you to open not perfectly standard files.
// Use with caution!
func NewGoFSSkipChecks(data []byte, opts ...Option) (*GoFs, error) {
	fs, err := NewFsSkipChecks(data, opts...)
	if err != nil {
		return nil, err
	}

	return &GoFs{fs}, nil
}

// Open follows the fs.FS path rules: names are unrooted, slash separated and "." is the root.
func (g GoFs) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	file, err := g.Fs.open(name)
	if err != nil {
		return nil, err
	}

	return GoFile{file}, nil
}
