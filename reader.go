// Package gocfb implements a read only decoder for Microsoft's Compound File Binary format
// (also known as OLE2 or structured storage).
//
// The Reader works on a caller owned byte slice. It never copies or modifies it, so the
// slice must not change while the Reader is used. All methods are free of side effects
// and may be called concurrently.
//
// Example:
//  data, _ := os.ReadFile("test.SchDoc")
//  cfb, err := gocfb.New(data)
//  if err != nil {
//  	log.Fatal(err)
//  }
//  cfb.Walk(func(entry *gocfb.DirectoryEntry, depth int) error {
//  	fmt.Println(strings.Repeat("  ", depth) + entry.Name)
//  	return nil
//  })
package gocfb

//go:generate go run ./cmd/generate

import (
	"github.com/aligator/gocfb/checkpoint"
	"go.uber.org/zap"
)

// Reader provides access to the directory and the streams of a compound file.
type Reader struct {
	data   buffer
	header *Header

	sectorSize      uint32
	miniStreamStart uint32
	root            *DirectoryEntry

	// Chains can never be longer than the buffer has sectors.
	maxSectorSteps int
	maxMiniSteps   int
	entryLimit     int64

	fat  chainResolver
	mini chainResolver

	maxDepth int
	log      *zap.Logger
}

// Option configures a Reader.
type Option func(r *Reader)

// WithLogger sets the logger which receives debug information. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithMaxDepth sets the depth limit used by Walk. A negative value means no limit.
func WithMaxDepth(depth int) Option {
	return func(r *Reader) {
		r.maxDepth = depth
	}
}

// New opens the compound file contained in data.
// It returns ErrWrongFormat if data is no compound file and ErrFileCorrupted if the
// header or the root entry are broken.
func New(data []byte, opts ...Option) (*Reader, error) {
	return newReader(data, false, opts)
}

// NewSkipChecks opens the compound file contained in data just like New but it skips
// the header validations which are not needed to navigate the file.
// This may allow you to open not perfectly standard files.
// Use with caution!
func NewSkipChecks(data []byte, opts ...Option) (*Reader, error) {
	return newReader(data, true, opts)
}

func newReader(data []byte, skipChecks bool, opts []Option) (*Reader, error) {
	if len(data) == 0 {
		return nil, checkpoint.Errorf(ErrInvalidArgument, "no data")
	}

	r := &Reader{
		data:     data,
		maxDepth: -1,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	header, err := parseHeader(r.data, skipChecks)
	if err != nil {
		return nil, checkpoint.From(err)
	}
	r.header = header
	r.sectorSize = header.SectorSize()
	r.maxSectorSteps = len(data) / int(r.sectorSize)
	r.maxMiniSteps = len(data) / miniSectorSize
	r.entryLimit = int64(len(data)) / dirEntrySize
	r.fat = fatResolver{r}
	r.mini = miniFATResolver{r}

	// The root is needed for every mini stream access, so a broken root is fatal right away.
	root, err := r.Entry(RootID)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrFileCorrupted)
	}
	if !skipChecks && !root.IsRoot() {
		return nil, checkpoint.Errorf(ErrFileCorrupted, "entry 0 is a %v instead of the root storage", root.Type)
	}
	r.root = root
	r.miniStreamStart = root.StartSectorLocation

	r.log.Debug("opened compound file",
		zap.Uint16("majorVersion", header.MajorVersion),
		zap.Uint32("sectorSize", r.sectorSize),
		zap.Uint32("miniStreamCutoff", header.MiniStreamCutoffSize),
		zap.Uint32("miniStreamStart", r.miniStreamStart),
		zap.Uint64("miniStreamSize", root.Size),
		zap.Bool("skipChecks", skipChecks))

	return r, nil
}

// Header returns a copy of the parsed header.
func (r *Reader) Header() Header {
	return *r.header
}

// SectorSize is 512 for version 3 and 4096 for version 4 files.
func (r *Reader) SectorSize() uint32 {
	return r.sectorSize
}

// Version returns the major version of the file format.
func (r *Reader) Version() uint16 {
	return r.header.MajorVersion
}
