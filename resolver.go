package gocfb

import (
	"github.com/aligator/gocfb/checkpoint"
)

// chainResolver provides the navigation along one allocation table.
// The regular FAT and the MiniFAT both satisfy it, which allows the stream reader
// to use the same copy loop for both and to be tested with a mock.
// Generated mock using mockgen:
//  mockgen -source=resolver.go -destination=resolver_mock.go -package gocfb
type chainResolver interface {
	// blockSize is the size of one sector of this table.
	blockSize() uint32
	// next returns the sector following sector in its chain.
	next(sector uint32) (uint32, error)
	// seek follows the chain from start until offset fits into one sector.
	seek(start uint32, offset uint64) (uint32, uint32, error)
	// address returns the absolute buffer position of the offset inside of sector.
	address(sector, offset uint32) (int64, error)
}

// seekChain walks at most maxSteps links of the chain rooted at start.
func seekChain(c chainResolver, start uint32, offset uint64, maxSteps int) (uint32, uint32, error) {
	size := uint64(c.blockSize())
	sector := start
	for steps := 0; offset >= size; steps++ {
		if steps >= maxSteps {
			return 0, 0, checkpoint.Errorf(ErrFileCorrupted, "chain starting at %d is longer than %d sectors", start, maxSteps)
		}

		next, err := c.next(sector)
		if err != nil {
			return 0, 0, checkpoint.From(err)
		}
		sector = next
		offset -= size
	}

	return sector, uint32(offset), nil
}

// walkChain collects all sectors of the chain rooted at start.
func walkChain(c chainResolver, start uint32, maxSteps int) ([]uint32, error) {
	var chain []uint32
	for sector := start; sector != EndOfChain; {
		if sector >= MaxRegSect {
			return nil, checkpoint.Errorf(ErrFileCorrupted, "chain starting at %d contains the reserved value %#x", start, sector)
		}
		if len(chain) >= maxSteps {
			return nil, checkpoint.Errorf(ErrFileCorrupted, "chain starting at %d is longer than %d sectors", start, maxSteps)
		}
		chain = append(chain, sector)

		next, err := c.next(sector)
		if err != nil {
			return nil, checkpoint.From(err)
		}
		sector = next
	}
	return chain, nil
}
