package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)
	ErrStepNotFound   = fmt.Errorf("%w: step", ErrNotFound)
	ErrCycleNotFound  = fmt.Errorf("%w: cycle", ErrNotFound)
	ErrCellNotFound   = fmt.Errorf("%w: cell", ErrNotFound)

	// Structural file errors - the whole file is rejected, nothing partial
	// is committed to the target container
	ErrFileFormat = errors.New("file format invalid")

	// Configuration errors - rejected before any row is processed
	ErrConfig = errors.New("configuration invalid")

	// Validation errors
	ErrNonNumeric  = errors.New("series is not numeric")
	ErrSOCRange    = errors.New("state of charge outside [0, 1]")
	ErrSweepLoaded = errors.New("sweep data already loaded")
	ErrRowWidth    = errors.New("row width does not match header count")
)

// Error constructors with context
func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w %q", ErrColumnNotFound, name)
}

func NewStepNotFoundError(stepIndex int) error {
	return fmt.Errorf("%w with index %d", ErrStepNotFound, stepIndex)
}

func NewCycleNotFoundError(cycleIndex int) error {
	return fmt.Errorf("%w with index %d", ErrCycleNotFound, cycleIndex)
}

func NewCellNotFoundError(cellNumber int) error {
	return fmt.Errorf("%w with number %d", ErrCellNotFound, cellNumber)
}

func NewFileFormatError(path string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrFileFormat, path, reason)
}

func NewFileFormatErrorf(path string, format string, args ...any) error {
	return NewFileFormatError(path, fmt.Sprintf(format, args...))
}

func NewConfigError(reason string) error {
	return fmt.Errorf("%w: %s", ErrConfig, reason)
}

func NewSOCRangeError(soc float64) error {
	return fmt.Errorf("%w: got %g", ErrSOCRange, soc)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsFileFormatError(err error) bool {
	return errors.Is(err, ErrFileFormat)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig)
}
