package convert

import (
	"github.com/bgokden/pairset/datum"
	"github.com/bgokden/pairset/imageio"
	"github.com/pkg/errors"
)

func checkBuffer(name string, buffer *imageio.PixelBuffer, height, width int) error {
	if buffer.Height != height || buffer.Width != width {
		return &DimensionMismatchError{
			Path:       name,
			Height:     buffer.Height,
			Width:      buffer.Width,
			WantHeight: height,
			WantWidth:  width,
		}
	}
	if buffer.Channels <= 0 || len(buffer.Data) != height*width*buffer.Channels {
		return errors.Errorf("%v has %d bytes for %dx%dx%d", name, len(buffer.Data), height, width, buffer.Channels)
	}
	return nil
}

// Pack stacks the channels of a and b into one planar datum.
// Channels [0, a.Channels) hold a, the rest hold b.
func Pack(a, b *imageio.PixelBuffer, height, width int, label int32) (*datum.Datum, error) {
	if err := checkBuffer("first image", a, height, width); err != nil {
		return nil, err
	}
	if err := checkBuffer("second image", b, height, width); err != nil {
		return nil, err
	}
	d := datum.NewDatum(a.Channels+b.Channels, height, width, label)
	copyPlanar(d, a, 0)
	copyPlanar(d, b, a.Channels)
	return d, nil
}

// copyPlanar writes the interleaved samples of src into channels
// [offset, offset+src.Channels) of d
func copyPlanar(d *datum.Datum, src *imageio.PixelBuffer, offset int) {
	index := 0
	for h := 0; h < src.Height; h++ {
		for w := 0; w < src.Width; w++ {
			for c := 0; c < src.Channels; c++ {
				d.Data[d.Index(offset+c, h, w)] = src.Data[index]
				index++
			}
		}
	}
}
