package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Constants for the well-depth formula. The same G drives the force law in
// pkg/physics.
const (
	gravity    = 6.6743e-11  // m^3 kg^-1 s^-2
	lightSpeed = 299792458.0 // m/s
)

// Well is one displacement source for the reference grid: a body position
// in simulation units and its mass in kilograms.
type Well struct {
	Pos  mgl64.Vec3
	Mass float64
}

// GridVertices builds the flat reference lattice as a line list and sinks
// every vertex toward the wells. Two segment families cover a square of
// side size split into divisions cells, all on a single fixed height
// layer. The result is a pure function of its inputs: identical wells
// produce bit-identical output, and callers regenerate it from scratch
// every frame.
func GridVertices(size float64, divisions int, wells []Well) []float32 {
	step := size / float64(divisions)
	half := size / 2
	y := -half*0.3 + 3*step

	verts := make([]float32, 0, 2*(divisions+1)*divisions*6)

	// segments along X at each Z line
	for zi := 0; zi <= divisions; zi++ {
		z := -half + float64(zi)*step
		for xi := 0; xi < divisions; xi++ {
			x0 := -half + float64(xi)*step
			verts = append(verts,
				float32(x0), float32(y), float32(z),
				float32(x0+step), float32(y), float32(z))
		}
	}
	// segments along Z at each X line
	for xi := 0; xi <= divisions; xi++ {
		x := -half + float64(xi)*step
		for zi := 0; zi < divisions; zi++ {
			z0 := -half + float64(zi)*step
			verts = append(verts,
				float32(x), float32(y), float32(z0),
				float32(x), float32(y), float32(z0+step))
		}
	}

	displace(verts, wells)
	return verts
}

// displace rewrites each vertex height from the summed well depths. Only
// the Y component changes; lattice X and Z stay at their undisplaced
// values.
func displace(verts []float32, wells []Well) {
	for i := 0; i < len(verts); i += 3 {
		p := mgl64.Vec3{float64(verts[i]), float64(verts[i+1]), float64(verts[i+2])}
		sum := 0.0
		for _, w := range wells {
			distM := w.Pos.Sub(p).Len() * 1000
			rs := 2 * gravity * w.Mass / (lightSpeed * lightSpeed)
			rad := rs * (distM - rs)
			if rad < 0 {
				// inside the Schwarzschild radius the radicand goes
				// negative; that vertex contributes no depth instead
				// of propagating NaN through the buffer
				rad = 0
			}
			sum += 2 * math.Sqrt(rad) * 100
		}
		verts[i+1] = float32((p.Y()+sum)/15 - 3000)
	}
}
