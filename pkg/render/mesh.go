package render

import (
	"log/slog"

	"github.com/taigrr/softrast/pkg/math3d"
)

// MeshSource is the read-only view of a mesh the renderer needs. It lives
// here rather than in models so render does not import the loaders.
type MeshSource interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) math3d.Vec3
	GetFace(i int) [3]int
}

// DrawMesh renders every face of mesh with flat shading and depth testing.
//
// Each face is projected orthographically onto the canvas and lit by
// lightDir; faces with intensity <= 0 are culled. The rest are filled with
// the barycentric strategy in base scaled by their intensity. Faces are
// visited in order, but the depth buffer makes the result independent of
// that order. The mesh is only read.
func (r *Rasterizer) DrawMesh(mesh MeshSource, lightDir math3d.Vec3, base Color) {
	w, h := r.Width(), r.Height()
	before := r.Stats

	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)

		p0 := mesh.GetVertex(face[0])
		p1 := mesh.GetVertex(face[1])
		p2 := mesh.GetVertex(face[2])

		intensity := FaceIntensity(p0, p1, p2, lightDir)
		if intensity <= 0 {
			r.Stats.FacesCulled++
			continue
		}

		tri := Triangle{Project(p0, w, h), Project(p1, w, h), Project(p2, w, h)}
		r.DrawTriangle(tri, Shade(base, intensity), FillBarycentric)
	}

	Logger().Debug("mesh drawn",
		slog.Int("faces", mesh.TriangleCount()),
		slog.Int("drawn", r.Stats.TrianglesDrawn-before.TrianglesDrawn),
		slog.Int("culled", r.Stats.FacesCulled-before.FacesCulled),
		slog.Int("degenerate", r.Stats.TrianglesDegenerate-before.TrianglesDegenerate),
		slog.Int("pixels", r.Stats.PixelsWritten-before.PixelsWritten),
	)
}

// DrawMeshWireframe draws the three edges of every face as lines, with no
// shading and no depth test.
func (r *Rasterizer) DrawMeshWireframe(mesh MeshSource, c Color) {
	w, h := r.Width(), r.Height()

	for i := 0; i < mesh.TriangleCount(); i++ {
		face := mesh.GetFace(i)
		var tri Triangle
		for k := range 3 {
			tri[k] = Project(mesh.GetVertex(face[k]), w, h)
		}
		p := tri.Points()
		for k := range 3 {
			r.DrawLine(p[k], p[(k+1)%3], c)
		}
	}

	Logger().Debug("wireframe drawn", slog.Int("faces", mesh.TriangleCount()))
}
