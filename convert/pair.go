package convert

import (
	"github.com/bgokden/pairset/imageio"
	"github.com/bgokden/pairset/manifest"
)

// PairResult holds both images of an entry, or the reason it is skipped
type PairResult struct {
	A   *imageio.PixelBuffer
	B   *imageio.PixelBuffer
	Err *ImageLoadError
}

// Skipped is true when either image failed to load
func (r PairResult) Skipped() bool {
	return r.Err != nil
}

// PairLoader loads the two images of a list entry
type PairLoader struct {
	Loader imageio.ImageLoader
}

// Load never returns a half loaded pair
func (pl PairLoader) Load(entry manifest.Entry) PairResult {
	a, err := pl.Loader.Load(entry.PathA)
	if err != nil {
		return PairResult{Err: &ImageLoadError{Path: entry.PathA, Err: err}}
	}
	b, err := pl.Loader.Load(entry.PathB)
	if err != nil {
		return PairResult{Err: &ImageLoadError{Path: entry.PathB, Err: err}}
	}
	return PairResult{A: a, B: b}
}
