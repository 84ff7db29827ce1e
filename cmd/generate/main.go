package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aligator/gocfb"
	"github.com/aligator/gocfb/internal/cfbtest"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// 2021-03-04 05:06:07 UTC as FILETIME.
const sampleTime uint64 = 132593079670000000

func text(size int, line string) []byte {
	return bytes.Repeat([]byte(line), size/len(line)+1)[:size]
}

func sample(version uint16) cfbtest.Builder {
	root := cfbtest.Root(1)
	root.CLSID = cfbtest.GUIDBytes(uuid.MustParse("00020906-0000-0000-c000-000000000046"))
	root.Modified = sampleTime

	storage := cfbtest.Storage("Storage", cfbtest.NoStream, cfbtest.NoStream, 4)
	storage.Created = sampleTime
	storage.Modified = sampleTime

	return cfbtest.Builder{
		Version: version,
		Entries: []cfbtest.Entry{
			root,
			cfbtest.Stream("Small", 2, 3, text(100, "a small stream in the mini stream\n")),
			storage,
			cfbtest.Stream("Big", 5, cfbtest.NoStream, text(5000, "a big stream using regular sectors\n")),
			cfbtest.Stream("Nested", cfbtest.NoStream, cfbtest.NoStream, text(700, "nested below a storage\n")),
			cfbtest.Stream(gocfb.SummaryInformationStream, cfbtest.NoStream, cfbtest.NoStream,
				cfbtest.PropertySetStream(gocfb.FMTIDSummaryInformation,
					cfbtest.Property{ID: gocfb.PIDCodepage, Type: cfbtest.VTI4, Int32: 1200},
					cfbtest.Property{ID: gocfb.PIDTitle, String: "gocfb sample"},
					cfbtest.Property{ID: gocfb.PIDAuthor, String: "gocfb"},
				)),
		},
	}
}

func compress(data []byte) []byte {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		panic(err)
	}
	if _, err := w.Write(data); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// main for writing the sample compound files. Can be executed using 'go generate' from the project root.
func main() {
	dest := "testdata"
	if err := os.MkdirAll(dest, 0o755); err != nil {
		panic(err)
	}

	for _, version := range []uint16{3, 4} {
		data := sample(version).Build().Data

		// Every sample has to be readable.
		if _, err := gocfb.New(data); err != nil {
			panic(fmt.Errorf("sample version %d: %w", version, err))
		}

		name := filepath.Join(dest, fmt.Sprintf("sample-v%d.cfb", version))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			panic(err)
		}
		if err := os.WriteFile(name+".zst", compress(data), 0o644); err != nil {
			panic(err)
		}
		fmt.Println("written", name)
	}
}
