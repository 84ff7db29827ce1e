package gocfb

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestDirectoryEntry_FileInfo(t *testing.T) {
	entry := DirectoryEntry{ID: 4, Name: "X", Type: TypeStream, StartSectorLocation: 2, Size: 700}
	want := entryFileInfo{entry: entry}

	got := entry.FileInfo()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DirectoryEntry.FileInfo() = %v, want %v", got, want)
	}

	// The FileInfo keeps a copy.
	entry.Name = "changed"
	if got.Name() != "X" {
		t.Errorf("entryFileInfo.Name() = %q, want %q", got.Name(), "X")
	}
	if sys, ok := got.Sys().(DirectoryEntry); !ok || sys.ID != 4 {
		t.Errorf("entryFileInfo.Sys() = %v", got.Sys())
	}
}

func Test_entryFileInfo(t *testing.T) {
	const second = 10000000
	epoch := uint64(116444736000000000)

	tests := []struct {
		name      string
		entry     DirectoryEntry
		wantSize  int64
		wantMode  os.FileMode
		wantIsDir bool
		wantTime  time.Time
	}{
		{
			name:     "stream",
			entry:    DirectoryEntry{Name: "C", Type: TypeStream, Size: 5000, ModifiedTime: epoch + 5*second},
			wantSize: 5000,
			wantMode: 0444,
			wantTime: time.Unix(5, 0).UTC(),
		},
		{
			name:      "storage",
			entry:     DirectoryEntry{Name: "A", Type: TypeStorage, Size: 20, CreationTime: epoch + 3*second},
			wantSize:  0,
			wantMode:  os.ModeDir | 0555,
			wantIsDir: true,
			wantTime:  time.Unix(3, 0).UTC(),
		},
		{
			name:      "root with mini stream",
			entry:     DirectoryEntry{Name: "Root Entry", Type: TypeRootStorage, Size: 832},
			wantSize:  0,
			wantMode:  os.ModeDir | 0555,
			wantIsDir: true,
		},
		{
			name:     "modification time wins",
			entry:    DirectoryEntry{Name: "B", Type: TypeStream, CreationTime: epoch + second, ModifiedTime: epoch + 2*second},
			wantMode: 0444,
			wantTime: time.Unix(2, 0).UTC(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := entryFileInfo{entry: tt.entry}
			if got := info.Name(); got != tt.entry.Name {
				t.Errorf("entryFileInfo.Name() = %v, want %v", got, tt.entry.Name)
			}
			if got := info.Size(); got != tt.wantSize {
				t.Errorf("entryFileInfo.Size() = %v, want %v", got, tt.wantSize)
			}
			if got := info.Mode(); got != tt.wantMode {
				t.Errorf("entryFileInfo.Mode() = %v, want %v", got, tt.wantMode)
			}
			if got := info.IsDir(); got != tt.wantIsDir {
				t.Errorf("entryFileInfo.IsDir() = %v, want %v", got, tt.wantIsDir)
			}
			if got := info.ModTime(); !got.Equal(tt.wantTime) {
				t.Errorf("entryFileInfo.ModTime() = %v, want %v", got, tt.wantTime)
			}
		})
	}
}
