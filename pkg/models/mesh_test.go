package models

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/softrast/pkg/math3d"
)

func approxVec(a, b math3d.Vec3) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestMeshNormalize(t *testing.T) {
	mesh := NewMesh("box")
	mesh.Vertices = []math3d.Vec3{
		math3d.V3(10, 20, 30),
		math3d.V3(14, 21, 30),
		math3d.V3(12, 22, 31),
	}
	mesh.Faces = []Face{{V: [3]int{0, 1, 2}}}

	mesh.Normalize()

	min, max := mesh.GetBounds()
	// Largest extent is x (4 units) and becomes [-1, 1].
	if !approxVec(min, math3d.V3(-1, -0.5, -0.25)) || !approxVec(max, math3d.V3(1, 0.5, 0.25)) {
		t.Errorf("bounds after Normalize = %v..%v", min, max)
	}
	if !approxVec(mesh.Center(), math3d.Zero3()) {
		t.Errorf("center = %v, want origin", mesh.Center())
	}
}

func TestMeshNormalizeFlat(t *testing.T) {
	mesh := NewMesh("point")
	mesh.Vertices = []math3d.Vec3{math3d.V3(3, 3, 3), math3d.V3(3, 3, 3)}
	mesh.Normalize()
	for _, v := range mesh.Vertices {
		if v != math3d.Zero3() {
			t.Errorf("vertex %v, want origin", v)
		}
	}
}

func TestMeshClone(t *testing.T) {
	mesh := NewMesh("orig")
	mesh.Vertices = []math3d.Vec3{math3d.V3(1, 2, 3)}
	mesh.Faces = []Face{{V: [3]int{0, 0, 0}}}

	clone := mesh.Clone()
	clone.Vertices[0] = math3d.V3(9, 9, 9)
	clone.Faces[0].V[0] = 5

	if mesh.Vertices[0] != math3d.V3(1, 2, 3) || mesh.Faces[0].V[0] != 0 {
		t.Error("modifying the clone changed the original")
	}
}

func TestMeshTransform(t *testing.T) {
	mesh := NewMesh("t")
	mesh.Vertices = []math3d.Vec3{math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)}
	mesh.Transform(math3d.RotateZ(math.Pi / 2))

	if !approxVec(mesh.Vertices[0], math3d.V3(0, 1, 0)) {
		t.Errorf("rotated vertex = %v", mesh.Vertices[0])
	}
	min, _ := mesh.GetBounds()
	if !approxVec(min, math3d.V3(-1, 0, 0)) {
		t.Errorf("bounds not refreshed: min = %v", min)
	}
}

func TestLoadGLTFInvalidPath(t *testing.T) {
	if _, err := LoadGLTF("/nonexistent/path.glb"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadGLB(t *testing.T) {
	doc := gltf.NewDocument()
	quad := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})
	tri := modeler.WritePosition(doc, [][3]float32{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}})

	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{
			{
				Indices:    gltf.Index(indices),
				Attributes: map[string]int{gltf.POSITION: quad},
			},
			{
				Attributes: map[string]int{gltf.POSITION: tri},
			},
		},
	}}
	doc.Nodes = []*gltf.Node{{Name: "Root", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	mesh, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.VertexCount() != 7 {
		t.Errorf("vertices = %d, want 7", mesh.VertexCount())
	}

	want := [][3]int{{0, 1, 2}, {0, 2, 3}, {4, 5, 6}}
	if mesh.TriangleCount() != len(want) {
		t.Fatalf("faces = %d, want %d", mesh.TriangleCount(), len(want))
	}
	for i, f := range want {
		if got := mesh.GetFace(i); got != f {
			t.Errorf("face %d = %v, want %v", i, got, f)
		}
	}
	if got := mesh.GetVertex(6); got != math3d.V3(0, 1, 1) {
		t.Errorf("vertex 6 = %v", got)
	}
}
