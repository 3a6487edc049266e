package render

import (
	"image"
	"math"

	"github.com/taigrr/softrast/pkg/math3d"
)

// Triangle holds three vertices. X and Y are pixel coordinates; Z is depth
// and is only consulted by the barycentric strategy.
type Triangle [3]math3d.Vec3

// Tri2 builds a flat (Z=0) triangle from integer pixel coordinates.
func Tri2(a, b, c image.Point) Triangle {
	return Triangle{
		math3d.V3(float64(a.X), float64(a.Y), 0),
		math3d.V3(float64(b.X), float64(b.Y), 0),
		math3d.V3(float64(c.X), float64(c.Y), 0),
	}
}

// maxPointCoord bounds the integer coordinates handed to the line and
// edge-pair paths, keeping their products well inside int range.
const maxPointCoord = 1 << 24

// Points floors the vertices to integer pixel coordinates, the same pixel
// the barycentric bounding box starts from. Coordinates beyond
// ±maxPointCoord are clamped to it.
func (t Triangle) Points() [3]image.Point {
	var p [3]image.Point
	for i, v := range t {
		p[i] = image.Pt(
			clampIndex(math.Floor(v.X), -maxPointCoord, maxPointCoord),
			clampIndex(math.Floor(v.Y), -maxPointCoord, maxPointCoord),
		)
	}
	return p
}

// Rasterizer draws primitives into a canvas, arbitrating overlapping
// triangles with a depth buffer of the same size. A Rasterizer and its
// buffers belong to one render pass and are not safe for concurrent use.
type Rasterizer struct {
	canvas *Canvas
	depth  *DepthBuffer
	Stats  RenderStats // Counters for debugging and tests
}

// RenderStats tracks what the rasterizer did since the last ResetStats.
type RenderStats struct {
	TrianglesDrawn      int // Triangles that reached pixel coverage
	TrianglesDegenerate int // Zero-area triangles rejected up front
	FacesCulled         int // Mesh faces skipped for facing away from the light
	PixelsWritten       int // Depth-tested pixels that won
	PixelsOccluded      int // Depth-tested pixels that lost
}

// NewRasterizer creates a rasterizer drawing into canvas.
func NewRasterizer(canvas *Canvas) *Rasterizer {
	r := &Rasterizer{canvas: canvas}
	r.Resize()
	return r
}

// Resize reallocates the depth buffer to match the canvas.
func (r *Rasterizer) Resize() {
	if r.canvas == nil {
		r.depth = nil
		return
	}
	r.depth = NewDepthBuffer(r.canvas.Width(), r.canvas.Height())
}

// Canvas returns the target canvas.
func (r *Rasterizer) Canvas() *Canvas { return r.canvas }

// Depth returns the depth buffer.
func (r *Rasterizer) Depth() *DepthBuffer { return r.depth }

// Width returns the canvas width.
func (r *Rasterizer) Width() int {
	if r.canvas == nil {
		return 0
	}
	return r.canvas.Width()
}

// Height returns the canvas height.
func (r *Rasterizer) Height() int {
	if r.canvas == nil {
		return 0
	}
	return r.canvas.Height()
}

// ClearDepth resets the depth buffer (call before each frame).
func (r *Rasterizer) ClearDepth() {
	if r.depth != nil {
		r.depth.Clear()
	}
}

// ResetStats zeroes the render statistics (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = RenderStats{}
}

// plot is the only path that writes depth: the depth and color of a pixel
// change together or not at all.
func (r *Rasterizer) plot(x, y int, z float64, c Color) bool {
	if !r.depth.Test(x, y, z) {
		r.Stats.PixelsOccluded++
		return false
	}
	r.depth.Set(x, y, z)
	r.canvas.Set(x, y, c)
	r.Stats.PixelsWritten++
	return true
}

// DrawLine draws a 2D line into the canvas. Lines are not depth tested.
func (r *Rasterizer) DrawLine(p0, p1 image.Point, c Color) {
	DrawLine(r.canvas, p0.X, p0.Y, p1.X, p1.Y, c)
}

// DrawTriangle fills tri with a solid color using the given strategy.
// Degenerate triangles draw nothing.
func (r *Rasterizer) DrawTriangle(tri Triangle, c Color, strategy FillStrategy) {
	switch strategy {
	case FillEdgePair:
		p := tri.Points()
		if !FillTriangleEdgePair(r.canvas, p[0], p[1], p[2], c) {
			r.Stats.TrianglesDegenerate++
			return
		}
	default:
		if !r.fillBarycentric(tri, c) {
			r.Stats.TrianglesDegenerate++
			return
		}
	}
	r.Stats.TrianglesDrawn++
}
