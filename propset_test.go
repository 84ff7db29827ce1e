package gocfb

import (
	"encoding/binary"
	"errors"
	"reflect"
	"testing"

	"github.com/aligator/gocfb/internal/cfbtest"
)

// summaryInformation returns a SummaryInformation stream with a title, an author
// and a codepage. The set starts at 48 and the title value at 80.
func summaryInformation() []byte {
	return cfbtest.PropertySetStream(FMTIDSummaryInformation,
		cfbtest.Property{ID: PIDTitle, String: "Schematic"},
		cfbtest.Property{ID: PIDAuthor, String: "Jane"},
		cfbtest.Property{ID: PIDCodepage, Type: cfbtest.VTI4, Int32: 1200},
	)
}

func TestReader_PropertySetStream(t *testing.T) {
	img := cfbtest.Builder{Entries: []cfbtest.Entry{
		cfbtest.Root(1),
		cfbtest.Stream(SummaryInformationStream, noStream, 2, summaryInformation()),
		cfbtest.Storage("Storage", noStream, noStream, noStream),
	}}.Build()
	r := testingNew(t, img.Data)

	entry, err := r.Find(SummaryInformationStream)
	if err != nil {
		t.Fatalf("Reader.Find() error = %v", err)
	}
	if entry.Size != 136 {
		t.Fatalf("DirectoryEntry.Size = %d, want 136", entry.Size)
	}

	stream, err := r.PropertySetStream(entry)
	if err != nil {
		t.Fatalf("Reader.PropertySetStream() error = %v", err)
	}
	if stream.ByteOrder != 0xFFFE || stream.Version != 0 || stream.SystemIdentifier != 0x00020006 || len(stream.Sets) != 1 {
		t.Errorf("Reader.PropertySetStream() = %+v", stream)
	}

	if _, ok := stream.Set(FMTIDDocumentSummaryInformation); ok {
		t.Errorf("PropertySetStream.Set() found a set which does not exist")
	}
	set, ok := stream.Set(FMTIDSummaryInformation)
	if !ok {
		t.Fatalf("PropertySetStream.Set() did not find the summary information")
	}
	if got := set.IDs(); !reflect.DeepEqual(got, []uint32{PIDTitle, PIDAuthor, PIDCodepage}) {
		t.Errorf("PropertySet.IDs() = %v", got)
	}

	tests := []struct {
		name    string
		id      uint32
		want    string
		wantOk  bool
		wantErr error
	}{
		{name: "title", id: PIDTitle, want: "Schematic", wantOk: true},
		{name: "author", id: PIDAuthor, want: "Jane", wantOk: true},
		{name: "missing", id: PIDSubject, want: "", wantOk: false},
		{name: "no string", id: PIDCodepage, wantErr: ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotOk, err := set.StringProperty(tt.id)
			if !errors.Is(err, tt.wantErr) || (err != nil) != (tt.wantErr != nil) {
				t.Errorf("PropertySet.StringProperty() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want || gotOk != tt.wantOk {
				t.Errorf("PropertySet.StringProperty() = %q, %v, want %q, %v", got, gotOk, tt.want, tt.wantOk)
			}
		})
	}

	if _, err := r.PropertySetStream(testingEntry(t, r, 2)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Reader.PropertySetStream() of a storage error = %v, want %v", err, ErrInvalidArgument)
	}
}

func TestParsePropertySetStream_corrupted(t *testing.T) {
	put := func(offset int, value uint32) func(data []byte) {
		return func(data []byte) {
			binary.LittleEndian.PutUint32(data[offset:], value)
		}
	}

	tests := []struct {
		name   string
		data   []byte
		change func(data []byte)
	}{
		{name: "too short", data: summaryInformation()[:20]},
		{name: "wrong byte order", change: func(data []byte) { data[0] = 0 }},
		{name: "too many sets", change: put(24, 1000)},
		{name: "header without set pairs", data: summaryInformation()[:propertySetStreamHeaderSize]},
		{name: "set behind the end", change: put(44, 500)},
		{name: "set is too small", change: put(48, 4)},
		{name: "set is larger than the stream", change: put(48, 200)},
		{name: "too many properties", change: put(52, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if data == nil {
				data = modified(summaryInformation(), tt.change)
			}

			got, err := ParsePropertySetStream(data)
			if !errors.Is(err, ErrFileCorrupted) {
				t.Errorf("ParsePropertySetStream() error = %v, want %v", err, ErrFileCorrupted)
			}
			if got != nil {
				t.Errorf("ParsePropertySetStream() = %v, want nil", got)
			}
		})
	}
}

func TestPropertySet_StringProperty_truncated(t *testing.T) {
	data := summaryInformation()
	// Character count of the title.
	binary.LittleEndian.PutUint32(data[84:], 1000)

	stream, err := ParsePropertySetStream(data)
	if err != nil {
		t.Fatalf("ParsePropertySetStream() error = %v", err)
	}
	if _, _, err := stream.Sets[0].StringProperty(PIDTitle); !errors.Is(err, ErrFileCorrupted) {
		t.Errorf("PropertySet.StringProperty() error = %v, want %v", err, ErrFileCorrupted)
	}
	if got, ok, err := stream.Sets[0].StringProperty(PIDAuthor); err != nil || !ok || got != "Jane" {
		t.Errorf("PropertySet.StringProperty() = %q, %v, %v", got, ok, err)
	}
}
