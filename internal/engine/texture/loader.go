package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"

	"github.com/Faultbox/orrery/internal/assets"
	"github.com/Faultbox/orrery/internal/logger"
)

var (
	// ErrNotFound is returned when the image file does not exist in any source.
	ErrNotFound = errors.New("image not found")
	// ErrUnsupportedFormat is returned when the file cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Source supplies raw file bytes. *assets.Manager satisfies it.
type Source interface {
	Load(path string) ([]byte, error)
}

// Loader reads image files from a Source and decodes them to RGBA.
// Every call reads and decodes afresh.
type Loader struct {
	src Source
	log *zap.Logger
}

// NewLoader creates a loader reading through src.
func NewLoader(src Source) *Loader {
	return &Loader{src: src, log: logger.Named("texture")}
}

// LoadImage loads and decodes the image at path.
func (l *Loader) LoadImage(path string) (*image.RGBA, error) {
	data, err := l.src.Load(path)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	img, err := Decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	l.log.Debug("image loaded",
		zap.String("path", path),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()),
	)
	return img, nil
}

// Decode decodes data, choosing the decoder by the extension of name.
// TGA has no magic number, so it is only recognised by extension.
func Decode(name string, data []byte) (*image.RGBA, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
		}
		return nil, fmt.Errorf("decoding %s data: %w", format, err)
	}
	return ImageToRGBA(img), nil
}

// ImageToRGBA converts img to *image.RGBA with its origin at (0, 0).
// An RGBA image already at the origin is returned as is.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// FlipVertical returns a copy of img with rows in reverse order. OpenGL
// expects the first row to be the bottom of the texture.
func FlipVertical(img *image.RGBA) *image.RGBA {
	h := img.Rect.Dy()
	out := image.NewRGBA(image.Rect(0, 0, img.Rect.Dx(), h))
	rowLen := img.Rect.Dx() * 4
	for y := 0; y < h; y++ {
		src := img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):]
		dst := out.Pix[out.PixOffset(0, h-1-y):]
		copy(dst[:rowLen], src[:rowLen])
	}
	return out
}
