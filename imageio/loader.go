package imageio

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidDimensions = errors.New("imageio: resize dimensions must be positive")
	ErrEmptyImage        = errors.New("imageio: empty image")
)

// PixelBuffer is a decoded image, row major with interleaved channels:
// the sample of row h, column w, channel c is Data[(h*Width+w)*Channels+c].
type PixelBuffer struct {
	Width    int
	Height   int
	Channels int
	Data     []byte
}

// At returns the sample of row h, column w, channel c
func (p *PixelBuffer) At(h, w, c int) byte {
	return p.Data[(h*p.Width+w)*p.Channels+c]
}

// ImageLoader loads one image by its list file path
type ImageLoader interface {
	Load(path string) (*PixelBuffer, error)
}

// Loader reads images below Root, resizes them to Height x Width and
// returns gray (1 channel) or BGR (3 channel) pixels.
type Loader struct {
	Root   string
	Height int
	Width  int
	Gray   bool
}

// NewLoader checks the target size and returns a Loader
func NewLoader(root string, height, width int, gray bool) (*Loader, error) {
	if height <= 0 || width <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "got %dx%d", height, width)
	}
	return &Loader{
		Root:   root,
		Height: height,
		Width:  width,
		Gray:   gray,
	}, nil
}

// Load decodes, resizes and converts the image at Root/path
func (l *Loader) Load(path string) (*PixelBuffer, error) {
	fullPath := filepath.Join(l.Root, path)
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open or find file %v", fullPath)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode %v", fullPath)
	}
	if img.Bounds().Empty() {
		return nil, errors.Wrapf(ErrEmptyImage, "%v", fullPath)
	}
	return FromImage(img, l.Height, l.Width, l.Gray)
}

// FromImage resizes img with bilinear interpolation and extracts its pixels
func FromImage(img image.Image, height, width int, gray bool) (*PixelBuffer, error) {
	if height <= 0 || width <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "got %dx%d", height, width)
	}
	bounds := img.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.BiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)
		img = scaled
		bounds = scaled.Bounds()
	}
	if gray {
		return grayPixels(img, bounds, height, width), nil
	}
	return bgrPixels(img, bounds, height, width), nil
}

func grayPixels(img image.Image, bounds image.Rectangle, height, width int) *PixelBuffer {
	buffer := &PixelBuffer{Width: width, Height: height, Channels: 1, Data: make([]byte, height*width)}
	index := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buffer.Data[index] = color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y
			index++
		}
	}
	return buffer
}

// bgrPixels keeps the channel order OpenCV based consumers expect
func bgrPixels(img image.Image, bounds image.Rectangle, height, width int) *PixelBuffer {
	buffer := &PixelBuffer{Width: width, Height: height, Channels: 3, Data: make([]byte, height*width*3)}
	index := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			buffer.Data[index] = c.B
			buffer.Data[index+1] = c.G
			buffer.Data[index+2] = c.R
			index += 3
		}
	}
	return buffer
}
