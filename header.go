package gocfb

import (
	"bytes"
	"encoding/binary"

	"github.com/aligator/gocfb/checkpoint"
)

// Header contains the information of the first sector of the compound file.
type Header struct {
	MinorVersion    uint16
	MajorVersion    uint16
	ByteOrder       uint16
	SectorShift     uint16
	MiniSectorShift uint16

	// NumDirectorySectors is always 0 for version 3 files.
	NumDirectorySectors          uint32
	NumFATSectors                uint32
	FirstDirectorySectorLocation uint32
	TransactionSignature         uint32

	// MiniStreamCutoffSize is the size below which a stream lives inside of the mini stream.
	MiniStreamCutoffSize       uint32
	FirstMiniFATSectorLocation uint32
	NumMiniFATSectors          uint32
	FirstDIFATSectorLocation   uint32
	NumDIFATSectors            uint32

	// DIFAT holds the locations of the first 109 FAT sectors.
	DIFAT [inlineDIFATCount]uint32
}

// SectorSize returns the size of a sector which is derived from the major version.
// It returns 0 for unknown versions.
func (h *Header) SectorSize() uint32 {
	switch h.MajorVersion {
	case 3:
		return 512
	case 4:
		return 4096
	}
	return 0
}

// parseHeader reads and validates the header.
// The checks which are not needed to navigate the file can be skipped.
func parseHeader(data buffer, skipChecks bool) (*Header, error) {
	magic, err := data.slice(offMagic, int64(len(Magic)))
	if err != nil {
		return nil, checkpoint.From(err)
	}

	// Format detection comes first: a wrong signature is no corruption.
	if !bytes.Equal(magic, Magic[:]) {
		return nil, checkpoint.Errorf(ErrWrongFormat, "invalid signature %x", magic)
	}

	raw, err := data.slice(0, headerSize)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	h := &Header{
		MinorVersion:                 binary.LittleEndian.Uint16(raw[offMinorVersion:]),
		MajorVersion:                 binary.LittleEndian.Uint16(raw[offMajorVersion:]),
		ByteOrder:                    binary.LittleEndian.Uint16(raw[offByteOrder:]),
		SectorShift:                  binary.LittleEndian.Uint16(raw[offSectorShift:]),
		MiniSectorShift:              binary.LittleEndian.Uint16(raw[offMiniSectorShift:]),
		NumDirectorySectors:          binary.LittleEndian.Uint32(raw[offNumDirSectors:]),
		NumFATSectors:                binary.LittleEndian.Uint32(raw[offNumFATSectors:]),
		FirstDirectorySectorLocation: binary.LittleEndian.Uint32(raw[offFirstDirSector:]),
		TransactionSignature:         binary.LittleEndian.Uint32(raw[offTransaction:]),
		MiniStreamCutoffSize:         binary.LittleEndian.Uint32(raw[offMiniStreamCutoff:]),
		FirstMiniFATSectorLocation:   binary.LittleEndian.Uint32(raw[offFirstMiniFAT:]),
		NumMiniFATSectors:            binary.LittleEndian.Uint32(raw[offNumMiniFATSectors:]),
		FirstDIFATSectorLocation:     binary.LittleEndian.Uint32(raw[offFirstDIFAT:]),
		NumDIFATSectors:              binary.LittleEndian.Uint32(raw[offNumDIFATSectors:]),
	}
	for i := range h.DIFAT {
		h.DIFAT[i] = binary.LittleEndian.Uint32(raw[offInlineDIFAT+i*4:])
	}

	sectorSize := h.SectorSize()
	if sectorSize == 0 {
		return nil, checkpoint.Errorf(ErrWrongFormat, "unsupported major version %d", h.MajorVersion)
	}

	// Header, at least one directory sector and one FAT sector.
	if int64(len(data)) < 3*int64(sectorSize) {
		return nil, checkpoint.Errorf(ErrFileCorrupted, "%d bytes are too short for a container with %d byte sectors", len(data), sectorSize)
	}

	if skipChecks {
		return h, nil
	}

	if h.ByteOrder != byteOrderMark {
		return nil, checkpoint.Errorf(ErrWrongFormat, "invalid byte order mark %#x", h.ByteOrder)
	}
	if uint32(1)<<h.SectorShift != sectorSize {
		return nil, checkpoint.Errorf(ErrFileCorrupted, "sector shift %d does not match major version %d", h.SectorShift, h.MajorVersion)
	}
	if uint32(1)<<h.MiniSectorShift != miniSectorSize {
		return nil, checkpoint.Errorf(ErrFileCorrupted, "invalid mini sector shift %d", h.MiniSectorShift)
	}
	if h.MiniStreamCutoffSize != defaultCutoffSize {
		return nil, checkpoint.Errorf(ErrFileCorrupted, "invalid mini stream cutoff size %d", h.MiniStreamCutoffSize)
	}

	return h, nil
}
