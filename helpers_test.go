package gocfb

import (
	"testing"

	"github.com/aligator/gocfb/internal/cfbtest"
)

const noStream = cfbtest.NoStream

// pattern returns size deterministic bytes which differ between seeds.
func pattern(size int, seed byte) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i*7) + seed
	}
	return data
}

// Data of the sample tree.
var (
	dataB = pattern(100, 1)
	dataC = pattern(5000, 2)
	dataX = pattern(700, 3)
)

// sampleBuilder returns a tree with a storage, small and big streams:
//  0 Root Entry      child 1
//  1 B (100 bytes)   left 2, right 3
//  2 A (storage)     child 4
//  3 C (5000 bytes)
//  4 X (700 bytes)
// Pre-order traversal visits 0, 1, 2, 4, 3.
func sampleBuilder(version uint16) cfbtest.Builder {
	return cfbtest.Builder{
		Version: version,
		Entries: []cfbtest.Entry{
			cfbtest.Root(1),
			cfbtest.Stream("B", 2, 3, dataB),
			cfbtest.Storage("A", noStream, noStream, 4),
			cfbtest.Stream("C", noStream, noStream, dataC),
			cfbtest.Stream("X", noStream, noStream, dataX),
		},
	}
}

func minimalBuilder() cfbtest.Builder {
	return cfbtest.Builder{Entries: []cfbtest.Entry{cfbtest.Root(noStream)}}
}

// testingNew opens data and fails the test on any error.
func testingNew(t *testing.T, data []byte) *Reader {
	t.Helper()
	r, err := New(data)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r
}

func testingEntry(t *testing.T, r *Reader, id uint32) *DirectoryEntry {
	t.Helper()
	entry, err := r.Entry(id)
	if err != nil {
		t.Fatalf("Reader.Entry(%d) error = %v", id, err)
	}
	return entry
}
