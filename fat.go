package gocfb

import (
	"github.com/aligator/gocfb/checkpoint"
)

// fatResolver navigates the regular FAT.
type fatResolver struct {
	r *Reader
}

func (f fatResolver) blockSize() uint32 {
	return f.r.sectorSize
}

func (f fatResolver) next(sector uint32) (uint32, error) {
	return f.r.NextSector(sector)
}

func (f fatResolver) seek(start uint32, offset uint64) (uint32, uint32, error) {
	return seekChain(f, start, offset, f.r.maxSectorSteps)
}

func (f fatResolver) address(sector, offset uint32) (int64, error) {
	return f.r.SectorAddress(sector, offset)
}

// FATSectorLocation returns the sector which holds the FAT sector with the given index.
// The first 109 locations are stored in the header, all others are found by
// walking the DIFAT chain. Each DIFAT sector holds sectorSize/4-1 locations
// followed by the number of the next DIFAT sector.
func (r *Reader) FATSectorLocation(index uint32) (uint32, error) {
	if index < inlineDIFATCount {
		return r.header.DIFAT[index], nil
	}

	index -= inlineDIFATCount
	perSector := r.sectorSize/4 - 1
	difatSector := r.header.FirstDIFATSectorLocation

	for steps := 0; index >= perSector; steps++ {
		if steps >= r.maxSectorSteps {
			return 0, checkpoint.Errorf(ErrFileCorrupted, "DIFAT chain is longer than %d sectors", r.maxSectorSteps)
		}

		address, err := r.SectorAddress(difatSector, perSector*4)
		if err != nil {
			return 0, checkpoint.From(err)
		}
		difatSector, err = r.data.readU32At(address)
		if err != nil {
			return 0, checkpoint.From(err)
		}
		index -= perSector
	}

	address, err := r.SectorAddress(difatSector, index*4)
	if err != nil {
		return 0, checkpoint.From(err)
	}
	return r.data.readU32At(address)
}

// NextSector returns the sector which follows sector in its chain.
// The result may be EndOfChain or any other reserved value.
func (r *Reader) NextSector(sector uint32) (uint32, error) {
	if sector >= MaxRegSect {
		return 0, checkpoint.Errorf(ErrFileCorrupted, "cannot follow the chain behind %#x", sector)
	}

	entriesPerSector := r.sectorSize / 4
	fatSector, err := r.FATSectorLocation(sector / entriesPerSector)
	if err != nil {
		return 0, checkpoint.From(err)
	}

	address, err := r.SectorAddress(fatSector, (sector%entriesPerSector)*4)
	if err != nil {
		return 0, checkpoint.From(err)
	}
	return r.data.readU32At(address)
}

// Seek follows the regular chain from startSector until the remaining byteOffset fits
// into one sector and returns that sector together with the offset inside of it.
func (r *Reader) Seek(startSector uint32, byteOffset uint64) (uint32, uint32, error) {
	return fatResolver{r}.seek(startSector, byteOffset)
}

// Chain returns all sectors of the regular chain starting at startSector.
// A chain longer than the buffer can hold is reported as ErrFileCorrupted.
func (r *Reader) Chain(startSector uint32) ([]uint32, error) {
	return walkChain(fatResolver{r}, startSector, r.maxSectorSteps)
}
