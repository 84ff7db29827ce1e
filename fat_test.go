package gocfb

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aligator/gocfb/internal/cfbtest"
)

// The sample file (version 3) uses the sectors
//  0-1   directory
//  2-11  C
//  12-13 mini stream
//  14    MiniFAT
//  15    FAT

func TestReader_NextSector(t *testing.T) {
	r := testingNew(t, sampleBuilder(3).Build().Data)

	tests := []struct {
		name    string
		sector  uint32
		want    uint32
		wantErr error
	}{
		{name: "inside of a chain", sector: 2, want: 3},
		{name: "end of the directory", sector: 1, want: EndOfChain},
		{name: "end of C", sector: 11, want: EndOfChain},
		{name: "FAT sector", sector: 15, want: FATSect},
		{name: "free sector", sector: 16, want: FreeSect},
		{name: "last entry of the FAT", sector: 127, want: FreeSect},
		{name: "not covered by any FAT sector", sector: 128, wantErr: ErrFileCorrupted},
		{name: "reserved value", sector: EndOfChain, wantErr: ErrFileCorrupted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.NextSector(tt.sector)
			if !errors.Is(err, tt.wantErr) || (err != nil) != (tt.wantErr != nil) {
				t.Errorf("Reader.NextSector() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Reader.NextSector() = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestReader_Chain(t *testing.T) {
	tests := []struct {
		name    string
		patch   func(img *cfbtest.Image)
		start   uint32
		want    []uint32
		wantErr error
	}{
		{name: "directory", start: 0, want: []uint32{0, 1}},
		{name: "big stream", start: 2, want: []uint32{2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{name: "empty chain", start: EndOfChain, want: nil},
		{name: "free sector in the chain", start: 16, wantErr: ErrFileCorrupted},
		{name: "starts at a reserved value", start: FreeSect, wantErr: ErrFileCorrupted},
		{
			name:    "cycle",
			patch:   func(img *cfbtest.Image) { img.SetFAT(11, 2) },
			start:   2,
			wantErr: ErrFileCorrupted,
		},
		{
			name:    "self loop",
			patch:   func(img *cfbtest.Image) { img.SetFAT(0, 0) },
			start:   0,
			wantErr: ErrFileCorrupted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := sampleBuilder(3).Build()
			if tt.patch != nil {
				tt.patch(img)
			}
			r := testingNew(t, img.Data)

			got, err := r.Chain(tt.start)
			if !errors.Is(err, tt.wantErr) || (err != nil) != (tt.wantErr != nil) {
				t.Errorf("Reader.Chain() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Reader.Chain() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReader_Seek(t *testing.T) {
	tests := []struct {
		name       string
		patch      func(img *cfbtest.Image)
		start      uint32
		offset     uint64
		wantSector uint32
		wantOffset uint32
		wantErr    error
	}{
		{name: "start of the chain", start: 2, offset: 0, wantSector: 2, wantOffset: 0},
		{name: "inside of the first sector", start: 2, offset: 511, wantSector: 2, wantOffset: 511},
		{name: "second sector", start: 2, offset: 513, wantSector: 3, wantOffset: 1},
		{name: "last byte of C", start: 2, offset: 4999, wantSector: 11, wantOffset: 391},
		{name: "directly behind the chain", start: 2, offset: 5120, wantSector: EndOfChain, wantOffset: 0},
		{name: "far behind the chain", start: 2, offset: 5632, wantErr: ErrFileCorrupted},
		{
			name:    "cycle",
			patch:   func(img *cfbtest.Image) { img.SetFAT(11, 2) },
			start:   2,
			offset:  20 * 512,
			wantErr: ErrFileCorrupted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := sampleBuilder(3).Build()
			if tt.patch != nil {
				tt.patch(img)
			}
			r := testingNew(t, img.Data)

			gotSector, gotOffset, err := r.Seek(tt.start, tt.offset)
			if !errors.Is(err, tt.wantErr) || (err != nil) != (tt.wantErr != nil) {
				t.Errorf("Reader.Seek() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if gotSector != tt.wantSector || gotOffset != tt.wantOffset {
				t.Errorf("Reader.Seek() = %#x, %v, want %#x, %v", gotSector, gotOffset, tt.wantSector, tt.wantOffset)
			}
		})
	}
}

// difatImage returns a file with two DIFAT sectors (1 and 2) which hold
// made up FAT locations: index 109 is 77 and index 236 is 88.
func difatImage() *cfbtest.Image {
	img := cfbtest.Builder{
		Entries:      []cfbtest.Entry{cfbtest.Root(noStream)},
		ExtraSectors: 2,
	}.Build()

	img.PutU32(68, 1)
	img.PutU32(img.SectorOffset(1), 77)
	img.PutU32(img.SectorOffset(1)+127*4, 2)
	img.PutU32(img.SectorOffset(2), 88)
	img.PutU32(img.SectorOffset(2)+127*4, EndOfChain)
	return img
}

func TestReader_FATSectorLocation(t *testing.T) {
	tests := []struct {
		name    string
		patch   func(img *cfbtest.Image)
		index   uint32
		want    uint32
		wantErr error
	}{
		{name: "inline location", index: 0, want: 3},
		{name: "unused inline location", index: 108, want: FreeSect},
		{name: "first DIFAT sector", index: 109, want: 77},
		{name: "second DIFAT sector", index: 109 + 127, want: 88},
		{name: "behind the DIFAT chain", index: 109 + 2*127, wantErr: ErrFileCorrupted},
		{
			name: "cycle",
			patch: func(img *cfbtest.Image) {
				img.PutU32(img.SectorOffset(2)+127*4, 1)
			},
			index:   109 + 10*127,
			wantErr: ErrFileCorrupted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := difatImage()
			if tt.patch != nil {
				tt.patch(img)
			}
			r := testingNew(t, img.Data)

			got, err := r.FATSectorLocation(tt.index)
			if !errors.Is(err, tt.wantErr) || (err != nil) != (tt.wantErr != nil) {
				t.Errorf("Reader.FATSectorLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Reader.FATSectorLocation() = %#x, want %#x", got, tt.want)
			}
		})
	}
}
