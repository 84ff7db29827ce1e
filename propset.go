package gocfb

import (
	"encoding/binary"

	"github.com/aligator/gocfb/checkpoint"
	"github.com/google/uuid"
)

// Names of the well known property set streams.
const (
	SummaryInformationStream         = "\x05SummaryInformation"
	DocumentSummaryInformationStream = "\x05DocumentSummaryInformation"
)

// Format ids of the well known property sets.
var (
	FMTIDSummaryInformation         = uuid.MustParse("f29f85e0-4ff9-1068-ab91-08002b27b3d9")
	FMTIDDocumentSummaryInformation = uuid.MustParse("d5cdd502-2e9c-101b-9397-08002b2cf9ae")
)

// Property ids of the summary information property set.
const (
	PIDCodepage   uint32 = 0x01
	PIDTitle      uint32 = 0x02
	PIDSubject    uint32 = 0x03
	PIDAuthor     uint32 = 0x04
	PIDKeywords   uint32 = 0x05
	PIDComments   uint32 = 0x06
	PIDTemplate   uint32 = 0x07
	PIDLastAuthor uint32 = 0x08
	PIDRevNumber  uint32 = 0x09
	PIDAppName    uint32 = 0x12
)

// VTLPWSTR is the type of a length prefixed UTF-16 string property.
const VTLPWSTR uint16 = 0x001F

const (
	propertySetStreamHeaderSize = 28
	formatOffsetPairSize        = 20
	propertySetHeaderSize       = 8
	propertyPairSize            = 8
)

// PropertySetStream is the parsed content of a property set stream.
type PropertySetStream struct {
	ByteOrder        uint16
	Version          uint16
	SystemIdentifier uint32
	CLSID            uuid.UUID
	Sets             []*PropertySet
}

// PropertySet is one block of (property id, offset) pairs inside of a property set stream.
type PropertySet struct {
	FormatID   uuid.UUID
	data       buffer
	properties []propertyLocation
}

type propertyLocation struct {
	id     uint32
	offset uint32
}

// ParsePropertySetStream parses the bytes of a property set stream.
func ParsePropertySetStream(data []byte) (*PropertySetStream, error) {
	b := buffer(data)
	raw, err := b.slice(0, propertySetStreamHeaderSize)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrFileCorrupted)
	}

	s := &PropertySetStream{
		ByteOrder:        binary.LittleEndian.Uint16(raw[0:]),
		Version:          binary.LittleEndian.Uint16(raw[2:]),
		SystemIdentifier: binary.LittleEndian.Uint32(raw[4:]),
	}
	var clsid [16]byte
	copy(clsid[:], raw[8:24])
	s.CLSID = guidToUUID(clsid)

	if s.ByteOrder != byteOrderMark {
		return nil, checkpoint.Errorf(ErrFileCorrupted, "invalid property set byte order %#x", s.ByteOrder)
	}

	count := binary.LittleEndian.Uint32(raw[24:])
	if uint64(count)*formatOffsetPairSize > uint64(len(data)) {
		return nil, checkpoint.Errorf(ErrFileCorrupted, "%d property sets do not fit into %d bytes", count, len(data))
	}

	for i := uint32(0); i < count; i++ {
		pairOffset := int64(propertySetStreamHeaderSize) + int64(i)*formatOffsetPairSize
		pair, err := b.slice(pairOffset, formatOffsetPairSize)
		if err != nil {
			return nil, checkpoint.From(err)
		}

		var fmtid [16]byte
		copy(fmtid[:], pair[:16])
		setOffset := binary.LittleEndian.Uint32(pair[16:])

		set, err := parsePropertySet(b, int64(setOffset))
		if err != nil {
			return nil, checkpoint.From(err)
		}
		set.FormatID = guidToUUID(fmtid)
		s.Sets = append(s.Sets, set)
	}

	return s, nil
}

func parsePropertySet(b buffer, offset int64) (*PropertySet, error) {
	size, err := b.readU32At(offset)
	if err != nil {
		return nil, checkpoint.From(err)
	}
	if size < propertySetHeaderSize {
		return nil, checkpoint.Errorf(ErrFileCorrupted, "property set size %d is too small", size)
	}

	data, err := b.slice(offset, int64(size))
	if err != nil {
		return nil, checkpoint.From(err)
	}

	set := &PropertySet{data: data}
	count := binary.LittleEndian.Uint32(data[4:])
	if uint64(count)*propertyPairSize > uint64(size)-propertySetHeaderSize {
		return nil, checkpoint.Errorf(ErrFileCorrupted, "%d properties do not fit into a set of %d bytes", count, size)
	}

	set.properties = make([]propertyLocation, count)
	for i := range set.properties {
		pair := data[propertySetHeaderSize+i*propertyPairSize:]
		set.properties[i].id = binary.LittleEndian.Uint32(pair)
		set.properties[i].offset = binary.LittleEndian.Uint32(pair[4:])
	}
	return set, nil
}

// PropertySetStream reads entry and parses it as property set stream.
func (r *Reader) PropertySetStream(entry *DirectoryEntry) (*PropertySetStream, error) {
	if entry == nil || !entry.IsStream() {
		return nil, checkpoint.Errorf(ErrInvalidArgument, "property sets are stored in streams")
	}

	data, err := r.Read(entry, 0, entry.Size)
	if err != nil {
		return nil, checkpoint.From(err)
	}
	return ParsePropertySetStream(data)
}

// Set returns the property set with the given format id.
func (s *PropertySetStream) Set(formatID uuid.UUID) (*PropertySet, bool) {
	for _, set := range s.Sets {
		if set.FormatID == formatID {
			return set, true
		}
	}
	return nil, false
}

// IDs returns the property ids in the order they are stored.
func (p *PropertySet) IDs() []uint32 {
	ids := make([]uint32, len(p.properties))
	for i, property := range p.properties {
		ids[i] = property.id
	}
	return ids
}

// StringProperty returns the value of the string property id.
// Only VTLPWSTR values are supported, any other type results in ErrInvalidArgument.
// The second result is false if the set does not contain the property.
func (p *PropertySet) StringProperty(id uint32) (string, bool, error) {
	for _, property := range p.properties {
		if property.id != id {
			continue
		}

		offset := int64(property.offset)
		valueType, err := p.data.readU16At(offset)
		if err != nil {
			return "", false, checkpoint.From(err)
		}
		if valueType != VTLPWSTR {
			return "", false, checkpoint.Errorf(ErrInvalidArgument, "property %d has the unsupported type %#x", id, valueType)
		}

		characters, err := p.data.readU32At(offset + 4)
		if err != nil {
			return "", false, checkpoint.From(err)
		}
		raw, err := p.data.slice(offset+8, int64(characters)*2)
		if err != nil {
			return "", false, checkpoint.From(err)
		}

		value, err := decodeUTF16(raw)
		if err != nil {
			return "", false, checkpoint.From(err)
		}
		return value, true, nil
	}

	return "", false, nil
}
