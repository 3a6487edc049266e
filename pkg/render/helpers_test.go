package render

import (
	"image"

	"github.com/taigrr/softrast/pkg/math3d"
)

// recordSink records every Set call, including off-canvas ones, so tests
// can see duplicates and exact pixel sets.
type recordSink struct {
	w, h  int
	calls []image.Point
}

func newRecordSink(w, h int) *recordSink { return &recordSink{w: w, h: h} }

func (s *recordSink) Set(x, y int, _ Color) { s.calls = append(s.calls, image.Pt(x, y)) }
func (s *recordSink) Width() int            { return s.w }
func (s *recordSink) Height() int           { return s.h }

func (s *recordSink) set() map[image.Point]int {
	m := make(map[image.Point]int, len(s.calls))
	for _, p := range s.calls {
		m[p]++
	}
	return m
}

// coverage returns the set of non-transparent pixels on the canvas.
func coverage(c *Canvas) map[image.Point]bool {
	m := make(map[image.Point]bool)
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.At(x, y).A != 0 {
				m[image.Pt(x, y)] = true
			}
		}
	}
	return m
}

func drawn(c Color) bool { return c.A != 0 }

// mockMesh implements MeshSource for testing.
type mockMesh struct {
	vertices []math3d.Vec3
	faces    [][3]int
}

func (m *mockMesh) VertexCount() int                { return len(m.vertices) }
func (m *mockMesh) TriangleCount() int              { return len(m.faces) }
func (m *mockMesh) GetFace(i int) [3]int            { return m.faces[i] }
func (m *mockMesh) GetVertex(i int) math3d.Vec3     { return m.vertices[i] }
