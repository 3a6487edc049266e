package main

import (
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/taigrr/softrast/internal/config"
	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/models"
	"github.com/taigrr/softrast/pkg/render"
)

// scene draws one demonstration into a rasterizer.
type scene struct {
	needsModel bool
	help       string
	draw       func(r *render.Rasterizer, cfg config.Config, mesh *models.Mesh)
}

var scenes = map[string]scene{
	"lines": {
		help: "red and green diagonals with blue axes",
		draw: drawLines,
	},
	"triangles": {
		help: "three flat triangles using -strategy",
		draw: drawTriangles,
	},
	"depth": {
		help: "two interpenetrating triangles resolved by the depth buffer",
		draw: drawDepth,
	},
	"wire": {
		needsModel: true,
		help:       "model wireframe",
		draw: func(r *render.Rasterizer, _ config.Config, mesh *models.Mesh) {
			r.DrawMeshWireframe(mesh, render.ColorGreen)
		},
	},
	"mesh": {
		needsModel: true,
		help:       "flat-shaded, depth-tested model",
		draw: func(r *render.Rasterizer, cfg config.Config, mesh *models.Mesh) {
			r.DrawMesh(mesh, cfg.LightDir(), cfg.BaseColor())
		},
	},
}

func sceneNames() string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func lookupScene(name string, haveModel bool) (scene, error) {
	s, ok := scenes[name]
	if !ok {
		return scene{}, fmt.Errorf("unknown scene %q (choose from %s)", name, sceneNames())
	}
	if s.needsModel && !haveModel {
		return scene{}, fmt.Errorf("scene %q needs a model file", name)
	}
	return s, nil
}

func drawLines(r *render.Rasterizer, _ config.Config, _ *models.Mesh) {
	w, h := r.Width(), r.Height()
	r.DrawLine(image.Pt(0, 0), image.Pt(w, h), render.ColorRed)
	r.DrawLine(image.Pt(0, h), image.Pt(w, 0), render.ColorGreen)
	// vertical and horizontal
	r.DrawLine(image.Pt(0, h/2), image.Pt(w, h/2), render.ColorBlue)
	r.DrawLine(image.Pt(w/2, 0), image.Pt(w/2, h), render.ColorBlue)
}

// demoTriangles are laid out for a 200×200 canvas.
var demoTriangles = []struct {
	tri   [3]image.Point
	color render.Color
}{
	{[3]image.Point{{10, 70}, {50, 160}, {70, 80}}, render.ColorRed},
	{[3]image.Point{{180, 50}, {150, 1}, {70, 180}}, render.ColorWhite},
	{[3]image.Point{{180, 150}, {120, 160}, {130, 180}}, render.ColorGreen},
}

func drawTriangles(r *render.Rasterizer, cfg config.Config, _ *models.Mesh) {
	for _, d := range demoTriangles {
		r.DrawTriangle(render.Tri2(d.tri[0], d.tri[1], d.tri[2]), d.color, cfg.FillStrategy())
	}
}

// drawDepth draws two triangles that pass through each other; each one is
// in front over part of the overlap.
func drawDepth(r *render.Rasterizer, _ config.Config, _ *models.Mesh) {
	w, h := float64(r.Width()), float64(r.Height())
	a := render.Triangle{
		math3d.V3(0.1*w, 0.2*h, 1),
		math3d.V3(0.9*w, 0.2*h, -1),
		math3d.V3(0.5*w, 0.9*h, 0),
	}
	b := render.Triangle{
		math3d.V3(0.1*w, 0.8*h, -1),
		math3d.V3(0.9*w, 0.8*h, 1),
		math3d.V3(0.5*w, 0.1*h, 0),
	}
	r.DrawTriangle(a, render.ColorRed, render.FillBarycentric)
	r.DrawTriangle(b, render.ColorBlue, render.FillBarycentric)
}
