package cfbtest

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Property types supported by PropertySetStream.
const (
	VTI4     uint16 = 0x0003
	VTLPWSTR uint16 = 0x001F
)

// Property is one value of a property set. A zero Type means VTLPWSTR.
type Property struct {
	ID     uint32
	Type   uint16
	String string
	Int32  int32
}

// GUIDBytes returns id in the byte order used on disk.
func GUIDBytes(id uuid.UUID) [16]byte {
	var guid [16]byte
	guid[0], guid[1], guid[2], guid[3] = id[3], id[2], id[1], id[0]
	guid[4], guid[5] = id[5], id[4]
	guid[6], guid[7] = id[7], id[6]
	copy(guid[8:], id[8:])
	return guid
}

// PropertySetStream returns the bytes of a property set stream with a single set.
func PropertySetStream(formatID uuid.UUID, properties ...Property) []byte {
	const setOffset = 28 + 20

	var values []byte
	offsets := make([]uint32, len(properties))
	valuesStart := 8 + 8*len(properties)
	for i, property := range properties {
		offsets[i] = uint32(valuesStart + len(values))

		switch property.Type {
		case VTI4:
			value := make([]byte, 8)
			binary.LittleEndian.PutUint16(value, VTI4)
			binary.LittleEndian.PutUint32(value[4:], uint32(property.Int32))
			values = append(values, value...)
		default:
			text, err := utf16Encoder.NewEncoder().Bytes([]byte(property.String))
			if err != nil {
				panic(err)
			}
			// The count includes the terminating zero.
			text = append(text, 0, 0)
			value := make([]byte, 8, 8+len(text)+2)
			binary.LittleEndian.PutUint16(value, VTLPWSTR)
			binary.LittleEndian.PutUint32(value[4:], uint32(len(text)/2))
			value = append(value, text...)
			for len(value)%4 != 0 {
				value = append(value, 0)
			}
			values = append(values, value...)
		}
	}

	set := make([]byte, valuesStart, valuesStart+len(values))
	binary.LittleEndian.PutUint32(set, uint32(valuesStart+len(values)))
	binary.LittleEndian.PutUint32(set[4:], uint32(len(properties)))
	for i, property := range properties {
		binary.LittleEndian.PutUint32(set[8+i*8:], property.ID)
		binary.LittleEndian.PutUint32(set[12+i*8:], offsets[i])
	}
	set = append(set, values...)

	stream := make([]byte, setOffset, setOffset+len(set))
	binary.LittleEndian.PutUint16(stream, 0xFFFE)
	binary.LittleEndian.PutUint16(stream[2:], 0)
	binary.LittleEndian.PutUint32(stream[4:], 0x00020006)
	binary.LittleEndian.PutUint32(stream[24:], 1)
	guid := GUIDBytes(formatID)
	copy(stream[28:], guid[:])
	binary.LittleEndian.PutUint32(stream[44:], setOffset)
	return append(stream, set...)
}
