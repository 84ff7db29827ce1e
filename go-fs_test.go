package gocfb

import (
	"bytes"
	"errors"
	"io/fs"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/spf13/afero"
)

// TestGoFS tests the own compatibility layer to io.FS.
func TestGoFS(t *testing.T) {
	gofs, err := NewGoFS(sampleBuilder(3).Build().Data)
	if err != nil {
		t.Fatalf("NewGoFS() error = %v", err)
	}
	if err := fstest.TestFS(gofs, "A/X", "B", "C"); err != nil {
		t.Fatal(err)
	}
}

// TestIOFS tests the use with the afero.IOFS compatibility layer to io.FS.
func TestIOFS(t *testing.T) {
	iofs := afero.IOFS{Fs: testingNewFs(t)}
	if err := fstest.TestFS(iofs, "A/X", "B", "C"); err != nil {
		t.Fatal(err)
	}

	data, err := fs.ReadFile(iofs, "C")
	if err != nil || !bytes.Equal(data, dataC) {
		t.Errorf("fs.ReadFile() = %d bytes, %v", len(data), err)
	}
}

func TestNewGoFS(t *testing.T) {
	minimal := minimalBuilder().Build().Data
	wrongCutoff := modified(minimal, func(data []byte) { data[57] = 0x20 })

	tests := []struct {
		name       string
		data       []byte
		skipChecks bool
		// Do not expect something special. Should be enough to check for non-nil.
		wantNotNil bool
		wantErr    bool
	}{
		{name: "version 3", data: sampleBuilder(3).Build().Data, wantNotNil: true},
		{name: "version 4", data: sampleBuilder(4).Build().Data, wantNotNil: true},
		{name: "no compound file", data: []byte("This is no compound file"), wantErr: true},
		{name: "invalid cutoff", data: wrongCutoff, wantErr: true},
		{name: "invalid cutoff skipping the checks", data: wrongCutoff, skipChecks: true, wantNotNil: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *GoFs
			var err error
			if tt.skipChecks {
				got, err = NewGoFSSkipChecks(tt.data)
			} else {
				got, err = NewGoFS(tt.data)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("NewGoFS() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if (got != nil) != tt.wantNotNil {
				t.Errorf("NewGoFS() = %v, wantNotNil %v", got, tt.wantNotNil)
			}
		})
	}
}

func TestGoFs_WalkDir(t *testing.T) {
	gofs, err := NewGoFS(sampleBuilder(4).Build().Data)
	if err != nil {
		t.Fatalf("NewGoFS() error = %v", err)
	}

	var walked []string
	err = fs.WalkDir(gofs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		walked = append(walked, path)
		return nil
	})
	if err != nil {
		t.Fatalf("fs.WalkDir() error = %v", err)
	}
	if want := []string{".", "A", "A/X", "B", "C"}; !reflect.DeepEqual(walked, want) {
		t.Errorf("fs.WalkDir() visited %v, want %v", walked, want)
	}

	data, err := fs.ReadFile(gofs, "A/X")
	if err != nil || !bytes.Equal(data, dataX) {
		t.Errorf("fs.ReadFile() = %d bytes, %v", len(data), err)
	}
}

func TestGoFs_Open(t *testing.T) {
	gofs, err := NewGoFS(sampleBuilder(3).Build().Data)
	if err != nil {
		t.Fatalf("NewGoFS() error = %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "root", path: "."},
		{name: "stream", path: "B"},
		{name: "rooted path", path: "/B", wantErr: fs.ErrInvalid},
		{name: "parent element", path: "A/../B", wantErr: fs.ErrInvalid},
		{name: "missing", path: "D", wantErr: fs.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := gofs.Open(tt.path)
			if !errors.Is(err, tt.wantErr) || (err != nil) != (tt.wantErr != nil) {
				t.Errorf("GoFs.Open() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil {
				file.Close()
			}
		})
	}
}
