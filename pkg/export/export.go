// Package export writes rendered canvases to image files.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/taigrr/softrast/pkg/render"
)

// Format is an output image container.
type Format int

const (
	PNG Format = iota
	TGA
	WebP
	BMP
)

var formatNames = map[Format]string{
	PNG:  "png",
	TGA:  "tga",
	WebP: "webp",
	BMP:  "bmp",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ErrUnknownFormat is returned for names and extensions with no encoder.
var ErrUnknownFormat = errors.New("unknown image format")

// ParseFormat maps a format name such as "png" or ".TGA" to a Format.
func ParseFormat(name string) (Format, error) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".")
	for f, n := range formatNames {
		if n == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Encode writes img to w in the given format. WebP output is lossless.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case TGA:
		return tga.Encode(w, img)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	case BMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
}

// Upscale enlarges img by an integer factor with nearest-neighbor sampling,
// keeping hard pixel edges. Factors of 1 or less return img unchanged.
func Upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Options controls SaveCanvas.
type Options struct {
	Scale int  // Integer upscale factor; values <= 1 keep the canvas size
	Flip  bool // Store rows top-down, as image viewers expect
}

// SaveCanvas encodes canvas to path, choosing the format by extension.
// With Flip set the canvas is flipped for encoding and flipped back before
// returning, so the caller sees it unchanged.
func SaveCanvas(path string, canvas *render.Canvas, opts Options) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	if opts.Flip {
		canvas.FlipVertically()
		defer canvas.FlipVertically()
	}
	img := Upscale(canvas.ToImage(), opts.Scale)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	if err := Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("save %s: encode %v: %w", path, format, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	render.Logger().Debug("canvas saved", "path", path, "format", format.String(), "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}
