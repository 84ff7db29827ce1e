package gocfb

import (
	"encoding/binary"

	"github.com/aligator/gocfb/checkpoint"
)

// buffer gives bounds checked little-endian access to the borrowed container bytes.
// Every read of the decoder goes through it so there is exactly one bounds check.
type buffer []byte

func (b buffer) slice(offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset > int64(len(b)) || length > int64(len(b))-offset {
		return nil, checkpoint.Errorf(ErrFileCorrupted, "range %d+%d exceeds the buffer of %d bytes", offset, length, len(b))
	}
	return b[offset : offset+length], nil
}

func (b buffer) readU8At(offset int64) (uint8, error) {
	s, err := b.slice(offset, 1)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

func (b buffer) readU16At(offset int64) (uint16, error) {
	s, err := b.slice(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(s), nil
}

func (b buffer) readU32At(offset int64) (uint32, error) {
	s, err := b.slice(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(s), nil
}

func (b buffer) readU64At(offset int64) (uint64, error) {
	s, err := b.slice(offset, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(s), nil
}

// SectorAddress translates a regular sector number and an offset inside of that sector
// into an absolute position in the buffer.
// The header occupies the first sector, so sector 0 starts right after it.
func (r *Reader) SectorAddress(sector, offset uint32) (int64, error) {
	if sector >= MaxRegSect {
		return 0, checkpoint.Errorf(ErrFileCorrupted, "sector %#x is no regular sector", sector)
	}
	if offset >= r.sectorSize {
		return 0, checkpoint.Errorf(ErrFileCorrupted, "offset %d exceeds the sector size %d", offset, r.sectorSize)
	}

	address := int64(r.sectorSize) + int64(sector)*int64(r.sectorSize) + int64(offset)
	if address >= int64(len(r.data)) {
		return 0, checkpoint.Errorf(ErrFileCorrupted, "sector %d offset %d points behind the end of the buffer", sector, offset)
	}
	return address, nil
}

// MiniSectorAddress translates a mini sector number and an offset inside of it into an
// absolute position in the buffer.
// Mini sectors are addressed inside of the mini stream, which is a regular FAT chain
// starting at the root entry.
func (r *Reader) MiniSectorAddress(miniSector, offset uint32) (int64, error) {
	if miniSector >= MaxRegSect {
		return 0, checkpoint.Errorf(ErrFileCorrupted, "mini sector %#x is no regular sector", miniSector)
	}
	if offset >= miniSectorSize {
		return 0, checkpoint.Errorf(ErrFileCorrupted, "offset %d exceeds the mini sector size", offset)
	}

	sector, sectorOffset, err := r.Seek(r.miniStreamStart, uint64(miniSector)*miniSectorSize+uint64(offset))
	if err != nil {
		return 0, checkpoint.From(err)
	}
	return r.SectorAddress(sector, sectorOffset)
}
