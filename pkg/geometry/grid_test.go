package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testGridSize      = 10000.0
	testGridDivisions = 50
)

func TestGridVertexCount(t *testing.T) {
	verts := GridVertices(testGridSize, testGridDivisions, nil)
	// two families of (divisions+1) lines x divisions segments x 2 points
	assert.Len(t, verts, 2*51*50*2*3)
}

func TestGridFlatWithoutWells(t *testing.T) {
	verts := GridVertices(testGridSize, testGridDivisions, nil)
	// lattice layer: y = -size/2*0.3 + 3*step = -900, remapped to
	// -900/15 - 3000
	const want = float32(-900.0/15 - 3000)
	for i := 1; i < len(verts); i += 3 {
		require.Equal(t, want, verts[i])
	}
}

func TestGridDisplacementDeterminism(t *testing.T) {
	wells := []Well{
		{Pos: mgl64.Vec3{0, 0, 0}, Mass: 5.97219e24},
		{Pos: mgl64.Vec3{3844, 0, 0}, Mass: 7.34767309e22},
	}
	a := GridVertices(testGridSize, testGridDivisions, wells)
	b := GridVertices(testGridSize, testGridDivisions, wells)
	assert.Equal(t, a, b, "same body state must produce bit-identical output")
}

func TestGridLeavesLatticeXZUntouched(t *testing.T) {
	flat := GridVertices(testGridSize, testGridDivisions, nil)
	wells := []Well{{Pos: mgl64.Vec3{0, -900, 0}, Mass: 5.97219e24}}
	displaced := GridVertices(testGridSize, testGridDivisions, wells)
	for i := 0; i < len(flat); i += 3 {
		assert.Equal(t, flat[i], displaced[i])
		assert.Equal(t, flat[i+2], displaced[i+2])
	}
}

func TestGridWellDepthGrowsWithDistance(t *testing.T) {
	well := Well{Pos: mgl64.Vec3{0, -900, 0}, Mass: 5.97219e24}
	verts := GridVertices(testGridSize, testGridDivisions, []Well{well})

	var nearY, farY float32
	nearD, farD := math.Inf(1), math.Inf(-1)
	for i := 0; i < len(verts); i += 3 {
		p := mgl64.Vec3{float64(verts[i]), -900, float64(verts[i+2])}
		d := well.Pos.Sub(p).Len()
		if d < nearD {
			nearD, nearY = d, verts[i+1]
		}
		if d > farD {
			farD, farY = d, verts[i+1]
		}
	}
	assert.Less(t, nearY, farY, "the well must be deepest next to the mass")
}

func TestGridClampsInsideSchwarzschildRadius(t *testing.T) {
	// a mass this large puts nearby lattice vertices inside its
	// Schwarzschild radius; the radicand clamp must keep NaN out
	well := Well{Pos: mgl64.Vec3{-5000, -900, -5000}, Mass: 1e30}
	verts := GridVertices(testGridSize, testGridDivisions, []Well{well})
	for i := 1; i < len(verts); i += 3 {
		require.False(t, math.IsNaN(float64(verts[i])), "vertex %d", i/3)
	}
}
