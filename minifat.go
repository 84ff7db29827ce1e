package gocfb

import (
	"github.com/aligator/gocfb/checkpoint"
)

// miniFATResolver navigates the MiniFAT.
// Mini sectors are 64 byte blocks inside of the mini stream.
type miniFATResolver struct {
	r *Reader
}

func (m miniFATResolver) blockSize() uint32 {
	return miniSectorSize
}

func (m miniFATResolver) next(miniSector uint32) (uint32, error) {
	return m.r.NextMiniSector(miniSector)
}

func (m miniFATResolver) seek(start uint32, offset uint64) (uint32, uint32, error) {
	return seekChain(m, start, offset, m.r.maxMiniSteps)
}

func (m miniFATResolver) address(miniSector, offset uint32) (int64, error) {
	return m.r.MiniSectorAddress(miniSector, offset)
}

// NextMiniSector returns the mini sector which follows miniSector in its chain.
// The MiniFAT itself is a regular stream starting at the header's
// FirstMiniFATSectorLocation, so the pointer is found by seeking to miniSector*4 in it.
func (r *Reader) NextMiniSector(miniSector uint32) (uint32, error) {
	if miniSector >= MaxRegSect {
		return 0, checkpoint.Errorf(ErrFileCorrupted, "cannot follow the mini chain behind %#x", miniSector)
	}

	sector, offset, err := r.Seek(r.header.FirstMiniFATSectorLocation, uint64(miniSector)*4)
	if err != nil {
		return 0, checkpoint.From(err)
	}

	address, err := r.SectorAddress(sector, offset)
	if err != nil {
		return 0, checkpoint.From(err)
	}
	return r.data.readU32At(address)
}

// MiniSeek is the mini stream equivalent of Seek.
func (r *Reader) MiniSeek(startMiniSector uint32, byteOffset uint64) (uint32, uint32, error) {
	return miniFATResolver{r}.seek(startMiniSector, byteOffset)
}

// MiniChain returns all mini sectors of the chain starting at startMiniSector.
func (r *Reader) MiniChain(startMiniSector uint32) ([]uint32, error) {
	return walkChain(miniFATResolver{r}, startMiniSector, r.maxMiniSteps)
}
