// Package checkpoint decorates errors with caller information, which results in
// something similar to a stacktrace through the decoder.
// Each error added to a checkpoint can be checked by errors.Is and retrieved by errors.As.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

// From just wraps an error by a new checkpoint which adds some caller information to the error.
// It returns nil, if err == nil.
func From(err error) error {
	// io.EOF must be returned as io.EOF directly
	// https://github.com/golang/go/issues/39155
	if err == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
		return err
	}

	return newCheckpoint(err, nil, 2)
}

// Wrap adds a checkpoint with some caller information to prev and accepts
// also another error which further describes the checkpoint.
// Returns nil if prev == nil.
// This allows to predefine some sentinel errors and use them later:
//  var ErrReadFile = errors.New("could not read file completely")
//
//  func readSomething() error {
//  	err := somethingThatFails()
//  	return checkpoint.Wrap(err, ErrReadFile)
//  }
// errors.Is then matches both ErrReadFile and the error returned by somethingThatFails.
func Wrap(prev, err error) error {
	if prev == io.EOF {
		return io.EOF
	}

	if prev == nil {
		return nil
	}

	return newCheckpoint(err, prev, 2)
}

// Errorf creates a checkpoint of the kind err whose cause is a new formatted message.
// It is the shortcut for Wrap(fmt.Errorf(format, args...), err) and never returns nil.
//  return checkpoint.Errorf(ErrFileCorrupted, "sector %d out of range", sector)
func Errorf(err error, format string, args ...interface{}) error {
	return newCheckpoint(err, fmt.Errorf(format, args...), 2)
}

func newCheckpoint(err, prev error, skip int) *checkpoint {
	// Get the caller information.
	_, file, line, ok := runtime.Caller(skip)

	return &checkpoint{
		err:  err,
		prev: prev,

		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

type checkpoint struct {
	err  error
	prev error

	callerOk bool
	file     string
	line     int
}

func (e *checkpoint) location() string {
	if e.callerOk {
		return fmt.Sprintf("%s:%d", e.file, e.line)
	}
	return "unknown"
}

func (e *checkpoint) Error() string {
	if e.prev == nil {
		return fmt.Sprintf("File: %s\n\t%v", e.location(), e.err)
	}

	// Use different formatting for the prev error if it was not also a checkpoint.
	prevErrString := e.prev.Error()
	if _, ok := e.prev.(*checkpoint); !ok {
		prevErrString = "\t" + strings.ReplaceAll(prevErrString, "\n", "\n\t")
	}

	if e.err == nil {
		return fmt.Sprintf("File: %s\n%v", e.location(), prevErrString)
	}
	return fmt.Sprintf("File: %s\n\t%v\n%v", e.location(), e.err, prevErrString)
}

func (e *checkpoint) Unwrap() error {
	if e.prev == nil {
		return e.err
	}
	return e.prev
}

func (e *checkpoint) Is(target error) bool {
	return e.err != nil && errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return e.err != nil && errors.As(e.err, target)
}
