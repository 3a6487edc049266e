// Package render implements software rasterization for softrast: lines,
// triangles, depth testing and flat-shaded meshes drawn into a Canvas.
package render

import (
	"image"
	"image/color"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return color.RGBA{r, g, b, 255}
}

// PixelSink is anything a rasterizer can write pixels into. Implementations
// must drop writes outside [0, Width) × [0, Height) silently.
type PixelSink interface {
	Set(x, y int, c Color)
	Width() int
	Height() int
}

// Canvas is a 2D grid of pixels. Row 0 is the bottom row: y grows upward,
// which is the rasterizer's coordinate system. FlipVertically converts to
// top-down order at the export boundary.
type Canvas struct {
	width  int
	height int
	Pixels []Color // Row-major pixel data
}

// NewCanvas creates a canvas with every pixel set to the zero color.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	return &Canvas{
		width:  width,
		height: height,
		Pixels: make([]Color, width*height),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Clear fills the canvas with a solid color.
func (c *Canvas) Clear(col Color) {
	for i := range c.Pixels {
		c.Pixels[i] = col
	}
}

// Set sets the pixel at (x, y). Out-of-range writes are dropped; partially
// off-screen geometry produces them routinely.
func (c *Canvas) Set(x, y int, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.Pixels[y*c.width+x] = col
}

// At returns the color at (x, y), or the zero color if out of bounds.
func (c *Canvas) At(x, y int) Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Color{}
	}
	return c.Pixels[y*c.width+x]
}

// FlipVertically reverses the row order in place.
func (c *Canvas) FlipVertically() {
	w := c.width
	for top, bot := 0, c.height-1; top < bot; top, bot = top+1, bot-1 {
		a := c.Pixels[top*w : (top+1)*w]
		b := c.Pixels[bot*w : (bot+1)*w]
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
	}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col Color) {
	DrawLine(c, x0, y0, x1, y1, col)
}

// ToImage converts the canvas to a standard Go image.RGBA, keeping the
// stored row order (row 0 becomes the image's first row).
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			img.SetRGBA(x, y, c.Pixels[y*c.width+x])
		}
	}
	return img
}

// CountIf returns the number of pixels for which keep returns true.
func (c *Canvas) CountIf(keep func(Color) bool) int {
	n := 0
	for _, p := range c.Pixels {
		if keep(p) {
			n++
		}
	}
	return n
}
