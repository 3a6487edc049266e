package render

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/taigrr/softrast/pkg/math3d"
)

// FillStrategy selects how DrawTriangle covers a triangle's interior.
type FillStrategy int

const (
	// FillBarycentric walks the clamped bounding box, keeps pixels whose
	// barycentric weights are all non-negative and depth tests each one.
	// It is the only strategy that composes across overlapping triangles.
	FillBarycentric FillStrategy = iota
	// FillEdgePair walks x-columns between the long edge and the active
	// short edge and draws a vertical span per column. Flat fill only.
	FillEdgePair
)

var fillStrategyNames = map[FillStrategy]string{
	FillBarycentric: "barycentric",
	FillEdgePair:    "edgepair",
}

func (s FillStrategy) String() string {
	if name, ok := fillStrategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("FillStrategy(%d)", int(s))
}

// ParseFillStrategy maps a strategy name ("barycentric", "edgepair") to its
// value. Matching ignores case and dashes.
func ParseFillStrategy(name string) (FillStrategy, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "")
	for s, n := range fillStrategyNames {
		if n == key {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown fill strategy %q", name)
}

// degenerateArea bounds |2·area| from below; anything smaller is treated as
// collinear and covers no pixels.
const degenerateArea = 1e-2

// FillTriangleEdgePair fills the triangle abc into dst column by column.
//
// Columns cover the half-open range [minX, maxX) and each column span is
// half-open at its upper end. Of two triangles sharing an edge, vertical or
// not, exactly one draws the pixels on it, and since both round the edge
// from the same sorted endpoints there is no gap between them. It reports
// false, drawing nothing, for a degenerate triangle.
func FillTriangleEdgePair(dst PixelSink, a, b, c image.Point, col Color) bool {
	if cross2(a, b, c) == 0 {
		return false
	}

	// Sort by x, ties by y, so a is leftmost and c rightmost.
	if lessXY(b, a) {
		a, b = b, a
	}
	if lessXY(c, b) {
		b, c = c, b
	}
	if lessXY(b, a) {
		a, b = b, a
	}

	// A non-degenerate triangle spans at least one column, so c.X > a.X.
	xStart := max(a.X, 0)
	xEnd := min(c.X, dst.Width())
	for x := xStart; x < xEnd; x++ {
		yLong := edgeY(a, c, x)
		var yShort int
		if x < b.X {
			yShort = edgeY(a, b, x)
		} else {
			yShort = edgeY(b, c, x)
		}
		drawSpan(dst, x, yLong, yShort, col)
	}
	return true
}

// edgeY returns the y of edge p→q at column x, rounded to the nearest
// pixel. Callers guarantee p.X <= x < q.X, so the edge is never vertical.
func edgeY(p, q image.Point, x int) int {
	return p.Y + roundDiv((q.Y-p.Y)*(x-p.X), q.X-p.X)
}

// drawSpan draws the vertical span [min(y0, y1), max(y0, y1)) in column x.
func drawSpan(dst PixelSink, x, y0, y1 int, col Color) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	y0 = max(y0, 0)
	y1 = min(y1, dst.Height())
	for y := y0; y < y1; y++ {
		dst.Set(x, y, col)
	}
}

// roundDiv divides n by a positive d, rounding half away from zero.
func roundDiv(n, d int) int {
	if n >= 0 {
		return (2*n + d) / (2 * d)
	}
	return -((-2*n + d) / (2 * d))
}

func lessXY(p, q image.Point) bool {
	return p.X < q.X || (p.X == q.X && p.Y < q.Y)
}

// cross2 is twice the signed area of abc.
func cross2(a, b, c image.Point) int {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// barycentric returns the weights of p with respect to a, b, c, taken from
// the cross product of (C−A, B−A, A−P) in x and y. ok is false when the
// triangle is too thin for the weights to mean anything.
func barycentric(a, b, c math3d.Vec3, px, py float64) (bc math3d.Vec3, ok bool) {
	u := math3d.V3(c.X-a.X, b.X-a.X, a.X-px).Cross(math3d.V3(c.Y-a.Y, b.Y-a.Y, a.Y-py))
	// Written to also reject NaN.
	if !(math.Abs(u.Z) >= degenerateArea) {
		return math3d.Vec3{}, false
	}
	return math3d.V3(1-(u.X+u.Y)/u.Z, u.Y/u.Z, u.X/u.Z), true
}

// fillBarycentric depth tests and fills every integer pixel of the clamped
// bounding box that lies inside tri, edges included. Pixels exactly on an
// edge shared with a neighbor are tested by both triangles; with equal
// depth the first one drawn keeps the pixel.
func (r *Rasterizer) fillBarycentric(tri Triangle, col Color) bool {
	a, b, c := tri[0], tri[1], tri[2]
	if _, ok := barycentric(a, b, c, a.X, a.Y); !ok {
		return false
	}

	w, h := r.Width(), r.Height()
	minX := clampIndex(math.Floor(min(a.X, b.X, c.X)), 0, w)
	maxX := clampIndex(math.Ceil(max(a.X, b.X, c.X)), -1, w-1)
	minY := clampIndex(math.Floor(min(a.Y, b.Y, c.Y)), 0, h)
	maxY := clampIndex(math.Ceil(max(a.Y, b.Y, c.Y)), -1, h-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			bc, _ := barycentric(a, b, c, float64(x), float64(y))
			if !(bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0) {
				continue
			}
			z := bc.X*a.Z + bc.Y*b.Z + bc.Z*c.Z
			r.plot(x, y, z, col)
		}
	}
	return true
}

// clampIndex converts v to an int in [lo, hi]. The float is clamped first,
// so infinite and out-of-range values convert safely; NaN yields lo.
func clampIndex(v float64, lo, hi int) int {
	if !(v > float64(lo)) {
		return lo
	}
	if v >= float64(hi) {
		return hi
	}
	return int(v)
}
