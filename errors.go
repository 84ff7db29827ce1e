package gocfb

import (
	"errors"
)

// These errors describe why a container could not be decoded.
// All errors returned by the Reader match exactly one of them using errors.Is.
var (
	// ErrWrongFormat is returned if the data is no compound file at all (bad magic, unknown version).
	ErrWrongFormat = errors.New("not a compound file")
	// ErrFileCorrupted is returned on any structural inconsistency inside the container.
	ErrFileCorrupted = errors.New("compound file is corrupted")
	// ErrInvalidArgument is returned if the caller passed impossible values.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrorKind is the closed set of failure classes a decoding operation can end with.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindWrongFormat
	KindFileCorrupted
	KindInvalidArgument
	// KindOther is any error which does not stem from the decoder.
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindWrongFormat:
		return "wrong format"
	case KindFileCorrupted:
		return "file corrupted"
	case KindInvalidArgument:
		return "invalid argument"
	}
	return "other"
}

// KindOf classifies err.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrWrongFormat):
		return KindWrongFormat
	case errors.Is(err, ErrFileCorrupted):
		return KindFileCorrupted
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	}
	return KindOther
}
