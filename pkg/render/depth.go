package render

import "math"

// DepthBuffer holds one depth value per pixel. Larger values are closer to
// the viewer: a write wins iff its depth exceeds what is stored. A fresh
// buffer holds -Inf everywhere, so the first write to any pixel passes.
type DepthBuffer struct {
	width  int
	height int
	depth  []float64 // row-major, indexed only through (x, y)
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	width, height = max(width, 0), max(height, 0)
	d := &DepthBuffer{
		width:  width,
		height: height,
		depth:  make([]float64, width*height),
	}
	d.Clear()
	return d
}

// Width returns the buffer width.
func (d *DepthBuffer) Width() int { return d.width }

// Height returns the buffer height.
func (d *DepthBuffer) Height() int { return d.height }

// Clear resets every cell to -Inf (call before each frame).
func (d *DepthBuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(d.depth)
	if n == 0 {
		return
	}
	d.depth[0] = math.Inf(-1)
	for i := 1; i < n; i *= 2 {
		copy(d.depth[i:], d.depth[:i])
	}
}

func (d *DepthBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < d.width && y >= 0 && y < d.height
}

// At returns the depth at (x, y). Out-of-range cells report +Inf so that
// nothing can pass a depth test there.
func (d *DepthBuffer) At(x, y int) float64 {
	if !d.inBounds(x, y) {
		return math.Inf(1)
	}
	return d.depth[y*d.width+x]
}

// Test reports whether a write of depth z at (x, y) would be accepted.
func (d *DepthBuffer) Test(x, y int, z float64) bool {
	return d.inBounds(x, y) && z > d.depth[y*d.width+x]
}

// Set stores z at (x, y) unconditionally.
func (d *DepthBuffer) Set(x, y int, z float64) {
	if !d.inBounds(x, y) {
		return
	}
	d.depth[y*d.width+x] = z
}
