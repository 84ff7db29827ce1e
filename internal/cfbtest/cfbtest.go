// Package cfbtest builds small synthetic compound files for tests and sample fixtures.
// The directory tree is wired exactly as given, which allows to build broken and
// unusual trees as well.
package cfbtest

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// Raw values used by the format.
const (
	NoStream   uint32 = 0xFFFFFFFF
	FreeSect   uint32 = 0xFFFFFFFF
	EndOfChain uint32 = 0xFFFFFFFE
	FATSect    uint32 = 0xFFFFFFFD

	TypeUnknown uint8 = 0
	TypeStorage uint8 = 1
	TypeStream  uint8 = 2
	TypeRoot    uint8 = 5

	MiniSectorSize = 64
	Cutoff         = 4096
	headerSize     = 512
	entrySize      = 128
)

var magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Entry is one directory entry. Its position in Builder.Entries is its id.
type Entry struct {
	Name  string
	Type  uint8
	Color uint8

	Left, Right, Child uint32

	// Data is placed in the mini stream if it is shorter than Cutoff.
	// It is ignored for the root, which always holds the mini stream.
	Data []byte

	CLSID             [16]byte
	Created, Modified uint64
}

// Root returns a root entry whose children tree starts at child.
func Root(child uint32) Entry {
	return Entry{Name: "Root Entry", Type: TypeRoot, Left: NoStream, Right: NoStream, Child: child}
}

// Storage returns a storage entry.
func Storage(name string, left, right, child uint32) Entry {
	return Entry{Name: name, Type: TypeStorage, Left: left, Right: right, Child: child}
}

// Stream returns a stream entry holding data.
func Stream(name string, left, right uint32, data []byte) Entry {
	return Entry{Name: name, Type: TypeStream, Left: left, Right: right, Child: NoStream, Data: data}
}

// Builder describes the container to build.
type Builder struct {
	// Version is 3 (512 byte sectors, the default) or 4 (4096 byte sectors).
	Version uint16
	Entries []Entry
	// ExtraSectors are appended as free zeroed sectors which tests may fill.
	ExtraSectors int
}

// Image is a built container together with the layout information needed to patch it.
type Image struct {
	Data       []byte
	SectorSize int

	FATSectors       []uint32
	DirectorySectors []uint32
	MiniFATSectors   []uint32
	MiniStreamStart  uint32
	ExtraSectors     []uint32

	// StartSectors holds the start sector of each entry, a mini sector for small streams.
	StartSectors []uint32
}

type layout struct {
	sectorSize int
	sectors    [][]byte
	fat        []uint32
}

func (l *layout) reserve(count int) []uint32 {
	var numbers []uint32
	for i := 0; i < count; i++ {
		numbers = append(numbers, uint32(len(l.sectors)))
		l.sectors = append(l.sectors, make([]byte, l.sectorSize))
		l.fat = append(l.fat, FreeSect)
	}
	return numbers
}

// chain stores data in a new chain of sectors and returns their numbers.
func (l *layout) chain(data []byte) []uint32 {
	count := (len(data) + l.sectorSize - 1) / l.sectorSize
	numbers := l.reserve(count)
	for i, sector := range numbers {
		copy(l.sectors[sector], data[i*l.sectorSize:])
		if i == count-1 {
			l.fat[sector] = EndOfChain
		} else {
			l.fat[sector] = numbers[i+1]
		}
	}
	return numbers
}

func first(numbers []uint32) uint32 {
	if len(numbers) == 0 {
		return EndOfChain
	}
	return numbers[0]
}

// Build lays out the container. Directory sectors come first, followed by the
// regular streams, the mini stream, the MiniFAT, the extra sectors and the FAT.
func (b Builder) Build() *Image {
	version := b.Version
	if version == 0 {
		version = 3
	}
	sectorSize := 512
	sectorShift := uint16(9)
	if version == 4 {
		sectorSize = 4096
		sectorShift = 12
	}

	l := &layout{sectorSize: sectorSize}
	img := &Image{SectorSize: sectorSize, StartSectors: make([]uint32, len(b.Entries))}

	entriesPerSector := sectorSize / entrySize
	img.DirectorySectors = l.chain(make([]byte, max(1, (len(b.Entries)+entriesPerSector-1)/entriesPerSector)*sectorSize))

	// Regular streams.
	for id, entry := range b.Entries {
		img.StartSectors[id] = EndOfChain
		if entry.Type == TypeRoot || len(entry.Data) < Cutoff {
			continue
		}
		img.StartSectors[id] = first(l.chain(entry.Data))
	}

	// Small streams go into the mini stream.
	var miniStream []byte
	var miniFAT []uint32
	for id, entry := range b.Entries {
		if entry.Type == TypeRoot || len(entry.Data) == 0 || len(entry.Data) >= Cutoff {
			continue
		}

		count := (len(entry.Data) + MiniSectorSize - 1) / MiniSectorSize
		start := uint32(len(miniFAT))
		for i := 0; i < count; i++ {
			block := make([]byte, MiniSectorSize)
			copy(block, entry.Data[i*MiniSectorSize:])
			miniStream = append(miniStream, block...)
			if i == count-1 {
				miniFAT = append(miniFAT, EndOfChain)
			} else {
				miniFAT = append(miniFAT, start+uint32(i)+1)
			}
		}
		img.StartSectors[id] = start
	}
	img.MiniStreamStart = first(l.chain(miniStream))

	if len(miniFAT) > 0 {
		for len(miniFAT)%(sectorSize/4) != 0 {
			miniFAT = append(miniFAT, FreeSect)
		}
		raw := make([]byte, len(miniFAT)*4)
		for i, next := range miniFAT {
			binary.LittleEndian.PutUint32(raw[i*4:], next)
		}
		img.MiniFATSectors = l.chain(raw)
	}

	img.ExtraSectors = l.reserve(b.ExtraSectors)

	// The FAT has to describe itself as well.
	fatEntries := sectorSize / 4
	fatCount := 1
	for len(l.sectors)+fatCount > fatCount*fatEntries {
		fatCount++
	}
	if fatCount > 109 {
		panic("cfbtest: containers which need DIFAT sectors are not supported")
	}
	img.FATSectors = l.reserve(fatCount)
	for _, sector := range img.FATSectors {
		l.fat[sector] = FATSect
	}
	for len(l.fat) < fatCount*fatEntries {
		l.fat = append(l.fat, FreeSect)
	}
	for i, next := range l.fat {
		sector := img.FATSectors[i/fatEntries]
		binary.LittleEndian.PutUint32(l.sectors[sector][(i%fatEntries)*4:], next)
	}

	// Directory.
	for id := 0; id < len(img.DirectorySectors)*entriesPerSector; id++ {
		raw := l.sectors[img.DirectorySectors[id/entriesPerSector]][(id%entriesPerSector)*entrySize:][:entrySize]
		if id >= len(b.Entries) {
			binary.LittleEndian.PutUint32(raw[68:], NoStream)
			binary.LittleEndian.PutUint32(raw[72:], NoStream)
			binary.LittleEndian.PutUint32(raw[76:], NoStream)
			continue
		}

		entry := b.Entries[id]
		size := uint64(len(entry.Data))
		start := img.StartSectors[id]
		if entry.Type == TypeRoot {
			size = uint64(len(miniStream))
			start = img.MiniStreamStart
			img.StartSectors[id] = start
		}
		putEntry(raw, entry, start, size)
	}

	// Header.
	header := make([]byte, sectorSize)
	copy(header, magic)
	binary.LittleEndian.PutUint16(header[24:], 0x3E)
	binary.LittleEndian.PutUint16(header[26:], version)
	binary.LittleEndian.PutUint16(header[28:], 0xFFFE)
	binary.LittleEndian.PutUint16(header[30:], sectorShift)
	binary.LittleEndian.PutUint16(header[32:], 6)
	if version == 4 {
		binary.LittleEndian.PutUint32(header[40:], uint32(len(img.DirectorySectors)))
	}
	binary.LittleEndian.PutUint32(header[44:], uint32(fatCount))
	binary.LittleEndian.PutUint32(header[48:], first(img.DirectorySectors))
	binary.LittleEndian.PutUint32(header[56:], Cutoff)
	binary.LittleEndian.PutUint32(header[60:], first(img.MiniFATSectors))
	binary.LittleEndian.PutUint32(header[64:], uint32(len(img.MiniFATSectors)))
	binary.LittleEndian.PutUint32(header[68:], EndOfChain)
	for i := 0; i < 109; i++ {
		location := FreeSect
		if i < fatCount {
			location = img.FATSectors[i]
		}
		binary.LittleEndian.PutUint32(header[76+i*4:], location)
	}

	img.Data = header
	for _, sector := range l.sectors {
		img.Data = append(img.Data, sector...)
	}
	return img
}

var utf16Encoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func putEntry(raw []byte, entry Entry, start uint32, size uint64) {
	name, err := utf16Encoder.NewEncoder().Bytes([]byte(entry.Name))
	if err != nil {
		panic(err)
	}
	if len(name) > 62 {
		name = name[:62]
	}
	copy(raw, name)
	if len(name) > 0 {
		binary.LittleEndian.PutUint16(raw[64:], uint16(len(name)+2))
	}

	raw[66] = entry.Type
	raw[67] = entry.Color
	binary.LittleEndian.PutUint32(raw[68:], entry.Left)
	binary.LittleEndian.PutUint32(raw[72:], entry.Right)
	binary.LittleEndian.PutUint32(raw[76:], entry.Child)
	copy(raw[80:96], entry.CLSID[:])
	binary.LittleEndian.PutUint64(raw[100:], entry.Created)
	binary.LittleEndian.PutUint64(raw[108:], entry.Modified)
	binary.LittleEndian.PutUint32(raw[116:], start)
	binary.LittleEndian.PutUint64(raw[120:], size)
}

// SectorOffset returns the position of sector in Data.
func (img *Image) SectorOffset(sector uint32) int {
	return img.SectorSize + int(sector)*img.SectorSize
}

// EntryOffset returns the position of the directory entry id in Data.
func (img *Image) EntryOffset(id uint32) int {
	perSector := uint32(img.SectorSize / entrySize)
	return img.SectorOffset(img.DirectorySectors[id/perSector]) + int(id%perSector)*entrySize
}

func (img *Image) PutU32(offset int, value uint32) {
	binary.LittleEndian.PutUint32(img.Data[offset:], value)
}

func (img *Image) PutU64(offset int, value uint64) {
	binary.LittleEndian.PutUint64(img.Data[offset:], value)
}

// SetFAT overwrites the FAT entry of sector.
func (img *Image) SetFAT(sector, next uint32) {
	perSector := uint32(img.SectorSize / 4)
	img.PutU32(img.SectorOffset(img.FATSectors[sector/perSector])+int(sector%perSector)*4, next)
}

// SetMiniFAT overwrites the MiniFAT entry of miniSector.
func (img *Image) SetMiniFAT(miniSector, next uint32) {
	perSector := uint32(img.SectorSize / 4)
	img.PutU32(img.SectorOffset(img.MiniFATSectors[miniSector/perSector])+int(miniSector%perSector)*4, next)
}

// SetLinks overwrites the sibling and child links of the entry id.
func (img *Image) SetLinks(id, left, right, child uint32) {
	offset := img.EntryOffset(id)
	img.PutU32(offset+68, left)
	img.PutU32(offset+72, right)
	img.PutU32(offset+76, child)
}
