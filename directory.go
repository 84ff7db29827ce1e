package gocfb

import (
	"encoding/binary"
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/aligator/gocfb/checkpoint"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
)

// DirectoryEntry describes one storage or stream of the container.
// Its ID is the position of the record inside of the directory stream.
type DirectoryEntry struct {
	ID   uint32
	Name string
	// NameLength is the stored length of the name in bytes including the terminator.
	NameLength uint16
	Type       ObjectType
	Color      Color

	// The siblings form an unordered binary tree per storage level.
	// NoStream means the link is absent.
	LeftSiblingID  uint32
	RightSiblingID uint32
	ChildID        uint32

	CLSID        [16]byte
	StateBits    uint32
	CreationTime uint64
	ModifiedTime uint64

	// StartSectorLocation is a mini sector if Size is below the mini stream cutoff.
	StartSectorLocation uint32
	Size                uint64
}

// IsStream reports whether the entry holds data.
func (e *DirectoryEntry) IsStream() bool {
	return e.Type == TypeStream
}

// IsStorage reports whether the entry may have children. This includes the root.
func (e *DirectoryEntry) IsStorage() bool {
	return e.Type == TypeStorage || e.Type == TypeRootStorage
}

func (e *DirectoryEntry) IsRoot() bool {
	return e.Type == TypeRootStorage
}

func (e *DirectoryEntry) Created() time.Time {
	return ParseFiletime(e.CreationTime)
}

func (e *DirectoryEntry) Modified() time.Time {
	return ParseFiletime(e.ModifiedTime)
}

// ClassID returns the CLSID in its usual textual byte order.
func (e *DirectoryEntry) ClassID() uuid.UUID {
	return guidToUUID(e.CLSID)
}

// guidToUUID converts a GUID as stored by Windows (first three groups little-endian)
// into a uuid.
func guidToUUID(guid [16]byte) uuid.UUID {
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = guid[3], guid[2], guid[1], guid[0]
	u[4], u[5] = guid[5], guid[4]
	u[6], u[7] = guid[7], guid[6]
	copy(u[8:], guid[8:])
	return u
}

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func decodeUTF16(raw []byte) (string, error) {
	decoded, err := utf16Decoder.NewDecoder().Bytes(raw)
	if err != nil {
		return "", checkpoint.Wrap(err, ErrFileCorrupted)
	}
	return strings.TrimRight(string(decoded), "\x00"), nil
}

func (r *Reader) decodeEntry(id uint32, raw []byte) (*DirectoryEntry, error) {
	e := &DirectoryEntry{
		ID:                  id,
		NameLength:          binary.LittleEndian.Uint16(raw[offEntryNameLen:]),
		Type:                ObjectType(raw[offEntryType]),
		Color:               Color(raw[offEntryColor]),
		LeftSiblingID:       binary.LittleEndian.Uint32(raw[offEntryLeftSibling:]),
		RightSiblingID:      binary.LittleEndian.Uint32(raw[offEntryRightSibling:]),
		ChildID:             binary.LittleEndian.Uint32(raw[offEntryChild:]),
		StateBits:           binary.LittleEndian.Uint32(raw[offEntryStateBits:]),
		CreationTime:        binary.LittleEndian.Uint64(raw[offEntryCreated:]),
		ModifiedTime:        binary.LittleEndian.Uint64(raw[offEntryModified:]),
		StartSectorLocation: binary.LittleEndian.Uint32(raw[offEntryStartSector:]),
		Size:                binary.LittleEndian.Uint64(raw[offEntrySize:]),
	}
	copy(e.CLSID[:], raw[offEntryCLSID:offEntryCLSID+16])

	// Version 3 writers may leave garbage in the upper half of the size.
	if r.header.MajorVersion == 3 {
		e.Size &= 0xFFFFFFFF
	}

	// The length counts bytes and includes the terminating zero.
	units := int(e.NameLength) / 2
	if units > 0 {
		units--
	}
	if units > 32 {
		units = 32
	}
	name, err := decodeUTF16(raw[offEntryName : offEntryName+units*2])
	if err != nil {
		return nil, err
	}
	e.Name = name

	return e, nil
}

// Entry returns the directory entry with the given id.
// Ids which cannot exist in a buffer of this size are rejected before any lookup.
func (r *Reader) Entry(id uint32) (*DirectoryEntry, error) {
	if int64(id) >= r.entryLimit {
		return nil, checkpoint.Errorf(ErrInvalidArgument, "entry id %d exceeds the limit of %d entries", id, r.entryLimit)
	}

	sector, offset, err := r.Seek(r.header.FirstDirectorySectorLocation, uint64(id)*dirEntrySize)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	address, err := r.SectorAddress(sector, offset)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	raw, err := r.data.slice(address, dirEntrySize)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	return r.decodeEntry(id, raw)
}

// RootEntry returns entry 0 which was resolved while opening the container.
func (r *Reader) RootEntry() *DirectoryEntry {
	root := *r.root
	return &root
}

// linkedEntry resolves an id found in a sibling or child link.
// An impossible id there is a broken file, not a wrong argument.
func (r *Reader) linkedEntry(id uint32) (*DirectoryEntry, error) {
	if int64(id) >= r.entryLimit {
		return nil, checkpoint.Errorf(ErrFileCorrupted, "link to entry %d exceeds the limit of %d entries", id, r.entryLimit)
	}
	return r.Entry(id)
}

// VisitFunc is called for each entry reached by Traverse together with its
// containment depth relative to the start.
// Returning fs.SkipDir skips the children of the entry, fs.SkipAll stops the
// traversal without an error. Any other error aborts the traversal and is returned.
type VisitFunc func(entry *DirectoryEntry, depth int) error

type pendingEntry struct {
	id    uint32
	depth int
}

// Traverse visits start and everything reachable from it in pre-order:
// the entry itself, the subtree of its children one level deeper, then the
// subtrees of its left and right siblings on the same level.
// Children are only entered while the depth is below maxDepth. A negative
// maxDepth means no limit.
func (r *Reader) Traverse(start *DirectoryEntry, maxDepth int, visit VisitFunc) error {
	if start == nil || visit == nil {
		return checkpoint.Errorf(ErrInvalidArgument, "traverse needs a start entry and a visit function")
	}
	return r.walk(start.ID, maxDepth, visit)
}

func (r *Reader) walk(startID uint32, maxDepth int, visit VisitFunc) error {
	stack := []pendingEntry{{id: startID}}
	visited := make(map[uint32]struct{})

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visited[current.id]; ok {
			return checkpoint.Errorf(ErrFileCorrupted, "entry %d is reachable twice", current.id)
		}
		visited[current.id] = struct{}{}

		entry, err := r.linkedEntry(current.id)
		if err != nil {
			return checkpoint.From(err)
		}

		skipChildren := false
		if err := visit(entry, current.depth); err != nil {
			switch {
			case errors.Is(err, fs.SkipAll):
				return nil
			case errors.Is(err, fs.SkipDir):
				skipChildren = true
			default:
				return err
			}
		}

		// Pushed in reverse so the child subtree is handled first.
		if entry.RightSiblingID != NoStream {
			stack = append(stack, pendingEntry{id: entry.RightSiblingID, depth: current.depth})
		}
		if entry.LeftSiblingID != NoStream {
			stack = append(stack, pendingEntry{id: entry.LeftSiblingID, depth: current.depth})
		}
		if !skipChildren && entry.IsStorage() && entry.ChildID != NoStream && (maxDepth < 0 || current.depth < maxDepth) {
			stack = append(stack, pendingEntry{id: entry.ChildID, depth: current.depth + 1})
		}
	}

	return nil
}

// Walk traverses the whole tree starting at the root using the configured maximum depth.
func (r *Reader) Walk(visit VisitFunc) error {
	return r.Traverse(r.root, r.maxDepth, visit)
}

// Children returns the direct children of a storage in traversal order.
func (r *Reader) Children(storage *DirectoryEntry) ([]*DirectoryEntry, error) {
	if storage == nil || !storage.IsStorage() {
		return nil, checkpoint.Errorf(ErrInvalidArgument, "only storages have children")
	}
	if storage.ChildID == NoStream {
		return nil, nil
	}

	var children []*DirectoryEntry
	err := r.walk(storage.ChildID, 0, func(entry *DirectoryEntry, depth int) error {
		children = append(children, entry)
		return nil
	})
	if err != nil {
		return nil, checkpoint.From(err)
	}
	return children, nil
}

// Find resolves a slash separated path like "Storage/Stream" starting at the root.
// Names are compared case-insensitively. The empty path and "/" return the root.
func (r *Reader) Find(path string) (*DirectoryEntry, error) {
	current := r.RootEntry()
	for _, name := range strings.Split(path, "/") {
		if name == "" || name == "." {
			continue
		}

		if !current.IsStorage() {
			return nil, checkpoint.Errorf(fs.ErrNotExist, "%q: %q is no storage", path, current.Name)
		}

		children, err := r.Children(current)
		if err != nil {
			return nil, checkpoint.From(err)
		}

		var found *DirectoryEntry
		for _, child := range children {
			if strings.EqualFold(child.Name, name) {
				found = child
				break
			}
		}
		if found == nil {
			return nil, checkpoint.Errorf(fs.ErrNotExist, "%q: no entry %q in %q", path, name, current.Name)
		}
		current = found
	}
	return current, nil
}
