package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/softrast/pkg/math3d"
)

func TestParseOBJ(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		vertices  int
		faces     [][3]int
		wantErr   string
		firstVert math3d.Vec3
	}{
		{
			name:      "triangle",
			src:       "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
			vertices:  3,
			faces:     [][3]int{{0, 1, 2}},
			firstVert: math3d.V3(0, 0, 0),
		},
		{
			name: "slashed tokens",
			src: `# tinyrenderer style
v -0.5 0.25 1.5
v 1 0 0
v 0 1 0
vt 0.5 0.5
vn 0 0 1
f 1/1/1 2/1/1 3/1/1
f 3//1 2//1 1//1
f 1/1 3/1 2/1
`,
			vertices:  3,
			faces:     [][3]int{{0, 1, 2}, {2, 1, 0}, {0, 2, 1}},
			firstVert: math3d.V3(-0.5, 0.25, 1.5),
		},
		{
			name:      "negative indices",
			src:       "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n",
			vertices:  3,
			faces:     [][3]int{{0, 1, 2}},
			firstVert: math3d.V3(0, 0, 0),
		},
		{
			name:      "quad fan",
			src:       "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n",
			vertices:  4,
			faces:     [][3]int{{0, 1, 2}, {0, 2, 3}},
			firstVert: math3d.V3(0, 0, 0),
		},
		{
			name:      "ignored records",
			src:       "mtllib a.mtl\no thing\ng group\ns off\nusemtl m\n\nv 1 2 3 1\nv 4 5 6\nv 7 8 9\nf 1 2 3\n",
			vertices:  3,
			faces:     [][3]int{{0, 1, 2}},
			firstVert: math3d.V3(1, 2, 3),
		},
		{
			name:    "bad coordinate",
			src:     "v 0 0 0\nv 1 x 0\n",
			wantErr: "line 2",
		},
		{
			name:    "short vertex",
			src:     "v 0 0\n",
			wantErr: "line 1",
		},
		{
			name:    "index out of range",
			src:     "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
			wantErr: "line 4",
		},
		{
			name:    "zero index",
			src:     "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
			wantErr: "out of range",
		},
		{
			name:    "forward reference",
			src:     "v 0 0 0\nf 1 2 3\nv 1 0 0\nv 0 1 0\n",
			wantErr: "line 2",
		},
		{
			name:    "two vertex face",
			src:     "v 0 0 0\nv 1 0 0\nf 1 2\n",
			wantErr: "at least 3",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mesh, err := ParseOBJ(strings.NewReader(tc.src), "test")
			if tc.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tc.wantErr)
				}
				if !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("error %q does not mention %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOBJ: %v", err)
			}

			if mesh.VertexCount() != tc.vertices {
				t.Errorf("vertices = %d, want %d", mesh.VertexCount(), tc.vertices)
			}
			if mesh.TriangleCount() != len(tc.faces) {
				t.Fatalf("faces = %d, want %d", mesh.TriangleCount(), len(tc.faces))
			}
			for i, f := range tc.faces {
				if got := mesh.GetFace(i); got != f {
					t.Errorf("face %d = %v, want %v", i, got, f)
				}
			}
			if got := mesh.GetVertex(0); got != tc.firstVert {
				t.Errorf("vertex 0 = %v, want %v", got, tc.firstVert)
			}
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	src := "v -1 -1 0\nv 1 -1 0\nv 0 1 2\nf 1 2 3\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	mesh, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.Name != "tri.obj" {
		t.Errorf("name = %q", mesh.Name)
	}
	min, max := mesh.GetBounds()
	if min != math3d.V3(-1, -1, 0) || max != math3d.V3(1, 1, 2) {
		t.Errorf("bounds = %v..%v", min, max)
	}
}

func TestLoadOBJInvalidPath(t *testing.T) {
	if _, err := LoadOBJ("/nonexistent/path.obj"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load("model.stl")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load(.stl) error = %v, want ErrUnsupportedFormat", err)
	}
}
