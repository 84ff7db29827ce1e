package gocfb

import (
	"fmt"
	"io"
	"syscall"

	"github.com/aligator/gocfb/checkpoint"
	"go.uber.org/zap"
)

// Read copies length bytes starting at offset out of the data of entry.
// Entries smaller than the mini stream cutoff are stored in the mini stream and
// their StartSectorLocation is a mini sector, all others use regular sectors.
// Only streams can be read. The size of the root describes the mini stream, which
// is no user data.
func (r *Reader) Read(entry *DirectoryEntry, offset, length uint64) ([]byte, error) {
	if entry == nil {
		return nil, checkpoint.Errorf(ErrInvalidArgument, "no entry to read from")
	}
	if !entry.IsStream() {
		return nil, checkpoint.Errorf(ErrInvalidArgument, "%q is a %v and no stream", entry.Name, entry.Type)
	}
	if length > entry.Size || offset > entry.Size-length {
		return nil, checkpoint.Errorf(ErrInvalidArgument, "range %d+%d exceeds the size %d of %q", offset, length, entry.Size, entry.Name)
	}
	if length == 0 {
		return []byte{}, nil
	}
	// No stream can hold more than the whole container.
	if length > uint64(len(r.data)) {
		return nil, checkpoint.Errorf(ErrFileCorrupted, "size %d of %q exceeds the container", entry.Size, entry.Name)
	}

	out := make([]byte, length)
	if err := copyChain(r.data, r.resolverFor(entry), entry.StartSectorLocation, offset, out); err != nil {
		r.log.Debug("stream read failed", zap.Uint32("entry", entry.ID), zap.Uint64("offset", offset), zap.Uint64("length", length), zap.Error(err))
		return nil, checkpoint.Wrap(err, fmt.Errorf("could not read %q", entry.Name))
	}
	return out, nil
}

func (r *Reader) resolverFor(entry *DirectoryEntry) chainResolver {
	if entry.Size < uint64(r.header.MiniStreamCutoffSize) {
		return r.mini
	}
	return r.fat
}

// copyChain fills out with the chain data starting at offset.
// A sector which is reached twice is a cycle in the allocation table.
func copyChain(data buffer, c chainResolver, start uint32, offset uint64, out []byte) error {
	sector, sectorOffset, err := c.seek(start, offset)
	if err != nil {
		return checkpoint.From(err)
	}

	visited := make(map[uint32]struct{})

	size := c.blockSize()
	for copied := 0; copied < len(out); {
		if _, ok := visited[sector]; ok {
			return checkpoint.Errorf(ErrFileCorrupted, "sector %d is part of a cycle", sector)
		}
		visited[sector] = struct{}{}

		address, err := c.address(sector, sectorOffset)
		if err != nil {
			return checkpoint.From(err)
		}

		n := min(len(out)-copied, int(size-sectorOffset))
		chunk, err := data.slice(address, int64(n))
		if err != nil {
			return checkpoint.From(err)
		}
		copied += copy(out[copied:], chunk)

		if copied < len(out) {
			sector, err = c.next(sector)
			if err != nil {
				return checkpoint.From(err)
			}
			sectorOffset = 0
		}
	}
	return nil
}

// Stream is a read only view of the data of one stream entry.
// It implements io.Reader, io.ReaderAt and io.Seeker.
type Stream struct {
	r      *Reader
	entry  *DirectoryEntry
	offset int64
}

// Open returns a Stream for entry which has to be a stream.
func (r *Reader) Open(entry *DirectoryEntry) (*Stream, error) {
	if entry == nil || !entry.IsStream() {
		return nil, checkpoint.Errorf(ErrInvalidArgument, "only streams can be opened")
	}
	return &Stream{r: r, entry: entry}, nil
}

func (s *Stream) Size() int64 {
	return int64(s.entry.Size)
}

func (s *Stream) Entry() *DirectoryEntry {
	return s.entry
}

func (s *Stream) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, checkpoint.Errorf(ErrInvalidArgument, "negative offset %d", off)
	}
	if off >= s.Size() {
		return 0, io.EOF
	}

	n := min(int64(len(p)), s.Size()-off)
	data, err := s.r.Read(s.entry, uint64(off), uint64(n))
	if err != nil {
		return 0, err
	}
	copy(p, data)

	if int(n) < len(p) {
		return int(n), io.EOF
	}
	return int(n), nil
}

func (s *Stream) Read(p []byte) (int, error) {
	n, err := s.ReadAt(p, s.offset)
	s.offset += int64(n)
	if err == io.EOF && n > 0 {
		return n, nil
	}
	return n, err
}

func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += s.offset
	case io.SeekEnd:
		offset += s.Size()
	default:
		return 0, checkpoint.Wrap(syscall.EINVAL, fmt.Errorf("%w: whence %d", ErrInvalidArgument, whence))
	}

	if offset < 0 {
		return 0, checkpoint.Errorf(ErrInvalidArgument, "negative position %d", offset)
	}
	s.offset = offset
	return offset, nil
}
