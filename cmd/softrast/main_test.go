package main

import (
	"math"
	"slices"
	"testing"

	"github.com/taigrr/softrast/internal/config"
	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/models"
	"github.com/taigrr/softrast/pkg/render"
)

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	var cfg config.Config
	cfg.Resolve(config.Flags{})
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func cubeMesh() *models.Mesh {
	m := models.NewMesh("cube")
	for _, z := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, x := range []float64{-1, 1} {
				m.Vertices = append(m.Vertices, math3d.V3(x, y, z))
			}
		}
	}
	// Outward-facing, counter-clockwise when seen from outside.
	quads := [][4]int{
		{0, 2, 3, 1}, // -z
		{4, 5, 7, 6}, // +z
		{0, 1, 5, 4}, // -y
		{2, 6, 7, 3}, // +y
		{0, 4, 6, 2}, // -x
		{1, 3, 7, 5}, // +x
	}
	for _, q := range quads {
		m.Faces = append(m.Faces,
			models.Face{V: [3]int{q[0], q[1], q[2]}},
			models.Face{V: [3]int{q[0], q[2], q[3]}},
		)
	}
	m.CalculateBounds()
	return m
}

func TestScenesDraw(t *testing.T) {
	cfg := defaultConfig(t)
	mesh := cubeMesh()
	mesh.Transform(math3d.ScaleUniform(0.5))

	for name, sc := range scenes {
		t.Run(name, func(t *testing.T) {
			canvas := render.NewCanvas(cfg.Width, cfg.Height)
			r := render.NewRasterizer(canvas)
			sc.draw(r, cfg, mesh)
			if canvas.CountIf(func(c render.Color) bool { return c.A != 0 }) == 0 {
				t.Errorf("scene %q drew nothing", name)
			}
		})
	}
}

func TestLookupScene(t *testing.T) {
	if _, err := lookupScene("mesh", false); err == nil {
		t.Error("mesh scene without a model should fail")
	}
	if _, err := lookupScene("teapot", true); err == nil {
		t.Error("unknown scene should fail")
	}
	if _, err := lookupScene("lines", false); err != nil {
		t.Errorf("lines scene: %v", err)
	}
}

func TestTrianglesSceneStrategies(t *testing.T) {
	for _, s := range []string{"barycentric", "edgepair"} {
		t.Run(s, func(t *testing.T) {
			cfg := defaultConfig(t)
			cfg.Strategy = s
			r := render.NewRasterizer(render.NewCanvas(200, 200))
			drawTriangles(r, cfg, nil)

			if r.Stats.TrianglesDrawn != 3 {
				t.Errorf("drawn = %d, want 3", r.Stats.TrianglesDrawn)
			}
			// A point well inside the red triangle.
			if got := r.Canvas().At(40, 100); got != render.ColorRed {
				t.Errorf("red triangle interior = %v", got)
			}
		})
	}
}

func TestDepthSceneInterpenetrates(t *testing.T) {
	r := render.NewRasterizer(render.NewCanvas(200, 200))
	drawDepth(r, config.Config{}, nil)

	c := r.Canvas()
	red := c.CountIf(func(col render.Color) bool { return col == render.ColorRed })
	blue := c.CountIf(func(col render.Color) bool { return col == render.ColorBlue })
	if red == 0 || blue == 0 {
		t.Fatalf("red=%d blue=%d, both triangles should show", red, blue)
	}
	if r.Stats.PixelsOccluded == 0 {
		t.Error("blue triangle should lose part of the overlap")
	}
	// Inside both triangles: red is in front left of x=100, blue right of it.
	if got := c.At(70, 100); got != render.ColorRed {
		t.Errorf("pixel (70,100) = %v, want red in front", got)
	}
	if got := c.At(130, 100); got != render.ColorBlue {
		t.Errorf("pixel (130,100) = %v, want blue in front", got)
	}
}

func TestSpinCoastsToStop(t *testing.T) {
	s := newSpin(60)
	s.rate = 1

	for range 240 {
		s.advance()
	}
	if math.Abs(s.rate) > 0.01 {
		t.Errorf("rate after 4s = %v, want near 0", s.rate)
	}
	if s.angle <= 0 {
		t.Errorf("angle = %v, want positive drift", s.angle)
	}
}

func TestViewerHandleKey(t *testing.T) {
	keys := func(pressed string) func(...string) bool {
		return func(names ...string) bool { return slices.Contains(names, pressed) }
	}

	s := newViewerState(30, 80, 24)
	if s.handleKey(keys("d")) {
		t.Fatal("d should not quit")
	}
	if s.torque[yaw] != torqueStrength {
		t.Errorf("yaw torque = %v", s.torque[yaw])
	}

	s.handleKey(keys("x"))
	if _, wire := s.step(1.0 / 30); !wire {
		t.Error("x should toggle wireframe on")
	}
	if s.rotation.axes[yaw].angle == 0 {
		t.Error("torque should have turned the model")
	}

	s.handleKey(keys("r"))
	if s.rotation.axes[yaw].angle != 0 || s.torque[yaw] != 0 {
		t.Error("r should reset rotation")
	}

	for _, k := range []string{"escape", "ctrl+c"} {
		if !s.handleKey(keys(k)) {
			t.Errorf("%s should quit", k)
		}
	}
}

func TestFitTransform(t *testing.T) {
	m := fitTransform(160, 80)
	p := m.MulVec3(math3d.V3(1, 1, 1))
	// Same pixel extent on both axes after projection.
	px := render.Project(p, 160, 80)
	if math.Abs((px.X-80)-(px.Y-40)) > 1e-9 {
		t.Errorf("projected corner %v is not square about the center", px)
	}
	if p.X > 1 || p.Y > 1 {
		t.Errorf("corner %v leaves the canvas", p)
	}
}
