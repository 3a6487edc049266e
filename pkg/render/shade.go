package render

import (
	"math"

	"github.com/taigrr/softrast/pkg/math3d"
)

// DefaultLightDir points into the screen, lighting faces that face the
// viewer.
var DefaultLightDir = math3d.V3(0, 0, -1)

// Project maps a model-space vertex in roughly [-1, 1] to pixel coordinates
// on a width × height canvas. The mapping is orthographic: Z passes through
// unchanged and becomes the depth.
func Project(v math3d.Vec3, width, height int) math3d.Vec3 {
	return math3d.V3(
		(v.X+1)*float64(width)/2,
		(v.Y+1)*float64(height)/2,
		v.Z,
	)
}

// FaceIntensity returns the cosine between the unit normal of the face
// v0 v1 v2, taken as (v2−v0) × (v1−v0), and lightDir. A result <= 0 means
// the face points away from the light and must not be drawn; this is the
// back-face cull as well as the lighting term. Degenerate faces return 0.
func FaceIntensity(v0, v1, v2, lightDir math3d.Vec3) float64 {
	n := v2.Sub(v0).Cross(v1.Sub(v0)).Normalize()
	return n.Dot(lightDir.Normalize())
}

// Shade scales the RGB channels of base by intensity, clamped to [0, 1].
// Alpha is kept.
func Shade(base Color, intensity float64) Color {
	intensity = math.Max(0, math.Min(1, intensity))
	return Color{
		R: uint8(float64(base.R) * intensity),
		G: uint8(float64(base.G) * intensity),
		B: uint8(float64(base.B) * intensity),
		A: base.A,
	}
}
