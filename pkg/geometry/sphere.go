package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SphericalToCartesian converts (r, theta, phi) with theta measured down
// from the +Y pole and phi around it.
func SphericalToCartesian(r, theta, phi float64) mgl64.Vec3 {
	return mgl64.Vec3{
		r * math.Sin(theta) * math.Cos(phi),
		r * math.Cos(theta),
		r * math.Sin(theta) * math.Sin(phi),
	}
}

// SphereVertices builds a UV-sphere as a flat triangle list: two triangles
// per stack/sector cell, no shared-vertex indexing. Rebuilding with a new
// radius is the only way to resize a sphere; there is no in-place scaling.
func SphereVertices(radius float64, stacks, sectors int) []float32 {
	verts := make([]float32, 0, (stacks+1)*sectors*18)
	for i := 0; i <= stacks; i++ {
		theta1 := float64(i) / float64(stacks) * math.Pi
		theta2 := float64(i+1) / float64(stacks) * math.Pi
		for j := 0; j < sectors; j++ {
			phi1 := float64(j) / float64(sectors) * 2 * math.Pi
			phi2 := float64(j+1) / float64(sectors) * 2 * math.Pi
			v1 := SphericalToCartesian(radius, theta1, phi1)
			v2 := SphericalToCartesian(radius, theta1, phi2)
			v3 := SphericalToCartesian(radius, theta2, phi1)
			v4 := SphericalToCartesian(radius, theta2, phi2)

			// triangle 1: v1-v2-v3
			verts = appendVec(verts, v1)
			verts = appendVec(verts, v2)
			verts = appendVec(verts, v3)
			// triangle 2: v2-v4-v3
			verts = appendVec(verts, v2)
			verts = appendVec(verts, v4)
			verts = appendVec(verts, v3)
		}
	}
	return verts
}

func appendVec(dst []float32, v mgl64.Vec3) []float32 {
	return append(dst, float32(v.X()), float32(v.Y()), float32(v.Z()))
}
