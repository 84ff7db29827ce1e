package gocfb

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aligator/gocfb/checkpoint"
	"github.com/spf13/afero"
)

// ErrReadOnly is returned by every operation which would modify the container.
var ErrReadOnly = errors.New("the compound file is read only")

// Fs exposes a compound file as read only afero.Fs.
// Storages are directories and streams are files.
type Fs struct {
	reader *Reader
}

// NewFs opens the compound file contained in data as afero.Fs.
func NewFs(data []byte, opts ...Option) (*Fs, error) {
	reader, err := New(data, opts...)
	if err != nil {
		return nil, err
	}
	return &Fs{reader: reader}, nil
}

// NewFsSkipChecks opens the compound file just like NewFs but uses NewSkipChecks.
// Use with caution!
func NewFsSkipChecks(data []byte, opts ...Option) (*Fs, error) {
	reader, err := NewSkipChecks(data, opts...)
	if err != nil {
		return nil, err
	}
	return &Fs{reader: reader}, nil
}

// FromReader exposes an already opened Reader as afero.Fs.
func FromReader(reader *Reader) *Fs {
	return &Fs{reader: reader}
}

// Reader returns the underlying Reader.
func (fs *Fs) Reader() *Reader {
	return fs.reader
}

// readStreamAt reads up to readSize bytes at offset of the stream entry.
// It returns io.EOF together with the available bytes if the stream ends before.
func (fs *Fs) readStreamAt(entry *DirectoryEntry, offset int64, readSize int64) ([]byte, error) {
	stream, err := fs.reader.Open(entry)
	if err != nil {
		return nil, err
	}

	if offset >= stream.Size() {
		return nil, io.EOF
	}

	n := min(readSize, stream.Size()-offset)
	data := make([]byte, n)
	if _, err := stream.ReadAt(data, offset); err != nil {
		return nil, err
	}

	if n < readSize {
		return data, io.EOF
	}
	return data, nil
}

func (fs *Fs) readDir(entry *DirectoryEntry) ([]*DirectoryEntry, error) {
	return fs.reader.Children(entry)
}

func readOnlyError(op, name string) error {
	return &os.PathError{Op: op, Path: name, Err: checkpoint.Wrap(syscall.EPERM, ErrReadOnly)}
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return nil, readOnlyError("create", name)
}

func (fs *Fs) Mkdir(name string, perm os.FileMode) error {
	return readOnlyError("mkdir", name)
}

func (fs *Fs) MkdirAll(path string, perm os.FileMode) error {
	return readOnlyError("mkdir", path)
}

// Open opens the storage or stream at path. Both "/" and the OS separator may be used.
func (fs *Fs) Open(name string) (afero.File, error) {
	return fs.open(name)
}

func (fs *Fs) open(name string) (*File, error) {
	entry, err := fs.reader.Find(filepath.ToSlash(name))
	if err != nil {
		// os.IsNotExist, which afero relies on, does not unwrap.
		if errors.Is(err, os.ErrNotExist) {
			err = os.ErrNotExist
		}
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}

	return &File{
		fs:          fs,
		path:        name,
		isDirectory: entry.IsStorage(),
		entry:       entry,
		stat:        entry.FileInfo(),
	}, nil
}

// OpenFile only supports read only access.
func (fs *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, readOnlyError("open", name)
	}
	return fs.Open(name)
}

func (fs *Fs) Remove(name string) error {
	return readOnlyError("remove", name)
}

func (fs *Fs) RemoveAll(path string) error {
	return readOnlyError("remove", path)
}

func (fs *Fs) Rename(oldname, newname string) error {
	return readOnlyError("rename", oldname)
}

func (fs *Fs) Stat(name string) (os.FileInfo, error) {
	file, err := fs.open(name)
	if err != nil {
		return nil, err
	}
	return file.Stat()
}

func (fs *Fs) Name() string {
	return "gocfb"
}

func (fs *Fs) Chmod(name string, mode os.FileMode) error {
	return readOnlyError("chmod", name)
}

func (fs *Fs) Chown(name string, uid, gid int) error {
	return readOnlyError("chown", name)
}

func (fs *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return readOnlyError("chtimes", name)
}
