// File model contains the constants which describe the direct structures of the compound file.

package gocfb

// Magic is the signature every compound file starts with.
var Magic = [8]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Sector numbers with a special meaning inside the FAT and MiniFAT.
const (
	MaxRegSect uint32 = 0xFFFFFFFA // Maximum regular sector number.
	DIFATSect  uint32 = 0xFFFFFFFC // Marks a DIFAT sector in the FAT.
	FATSect    uint32 = 0xFFFFFFFD // Marks a FAT sector in the FAT.
	EndOfChain uint32 = 0xFFFFFFFE // End of a linked chain of sectors.
	FreeSect   uint32 = 0xFFFFFFFF // Unallocated sector.
)

// Directory entry ids with a special meaning.
const (
	MaxRegSID uint32 = 0xFFFFFFFA // Maximum regular directory entry id.
	NoStream  uint32 = 0xFFFFFFFF // The link is absent.
	RootID    uint32 = 0
)

// ObjectType is the type tag of a directory entry.
type ObjectType uint8

const (
	TypeUnknown     ObjectType = 0
	TypeStorage     ObjectType = 1
	TypeStream      ObjectType = 2
	TypeRootStorage ObjectType = 5
)

func (t ObjectType) String() string {
	switch t {
	case TypeUnknown:
		return "unknown"
	case TypeStorage:
		return "storage"
	case TypeStream:
		return "stream"
	case TypeRootStorage:
		return "root"
	}
	return "invalid"
}

// Color is the red-black tree color of a directory entry.
// It is stored but not needed to traverse the tree.
type Color uint8

const (
	ColorRed   Color = 0
	ColorBlack Color = 1
)

const (
	headerSize        = 512
	dirEntrySize      = 128
	miniSectorSize    = 64
	inlineDIFATCount  = 109
	defaultCutoffSize = 4096
	byteOrderMark     = 0xFFFE
)

// Header field offsets.
const (
	offMagic             = 0
	offMinorVersion      = 24
	offMajorVersion      = 26
	offByteOrder         = 28
	offSectorShift       = 30
	offMiniSectorShift   = 32
	offNumDirSectors     = 40
	offNumFATSectors     = 44
	offFirstDirSector    = 48
	offTransaction       = 52
	offMiniStreamCutoff  = 56
	offFirstMiniFAT      = 60
	offNumMiniFATSectors = 64
	offFirstDIFAT        = 68
	offNumDIFATSectors   = 72
	offInlineDIFAT       = 76
)

// Directory entry field offsets, relative to the start of the 128 byte record.
const (
	offEntryName         = 0
	offEntryNameLen      = 64
	offEntryType         = 66
	offEntryColor        = 67
	offEntryLeftSibling  = 68
	offEntryRightSibling = 72
	offEntryChild        = 76
	offEntryCLSID        = 80
	offEntryStateBits    = 96
	offEntryCreated      = 100
	offEntryModified     = 108
	offEntryStartSector  = 116
	offEntrySize         = 120
)
