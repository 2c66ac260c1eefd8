package convert

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned for settings the converter can not run with
var ErrInvalidConfig = errors.New("invalid configuration")

// ImageLoadError means one image of a pair could not be read; the pair is skipped
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("could not load %v: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error {
	return e.Err
}

// DimensionMismatchError means a loaded image does not have the configured size
type DimensionMismatchError struct {
	Path          string
	Height, Width int
	WantHeight    int
	WantWidth     int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%v is %dx%d, expected %dx%d", e.Path, e.Height, e.Width, e.WantHeight, e.WantWidth)
}

// SizeConsistencyError means a record differs in size from the first one
type SizeConsistencyError struct {
	Key      string
	Expected int
	Actual   int
}

func (e *SizeConsistencyError) Error() string {
	return fmt.Sprintf("incorrect data field size %d for %v, expected %d", e.Actual, e.Key, e.Expected)
}
