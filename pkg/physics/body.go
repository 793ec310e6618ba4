package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"gravity-sim-3d/pkg/geometry"
)

// Sphere tessellation. Trail spheres use a coarser mesh at 30% of the
// owning body's radius.
const (
	sphereStacks  = 10
	sphereSectors = 10

	trailStacks      = 8
	trailSectors     = 8
	trailRadiusScale = 0.3

	maxTrailLength = 30
	trailInterval  = 5
)

// Mesh is GPU-resident geometry owned by exactly one Body or trail entry.
// pkg/render provides the real implementation; tests substitute their own.
type Mesh interface {
	Update(verts []float32)
	Draw()
	Release()
}

// MeshFactory uploads a flat vertex position list and returns its mesh.
type MeshFactory func(verts []float32) Mesh

// TrailEntry is one historical position with its own small sphere.
type TrailEntry struct {
	Pos  mgl64.Vec3
	Mesh Mesh
}

// Body is a single gravitating object together with its render geometry.
type Body struct {
	Pos     mgl64.Vec3 // simulation units (scaled kilometers)
	Vel     mgl64.Vec3
	Mass    float64 // kg
	Density float64 // kg/m^3
	Radius  float64 // derived from mass and density, never set directly

	Color mgl32.Vec4

	Initializing bool // being placed, excluded from force interactions
	Launched     bool
	HasTrail     bool

	Mesh  Mesh
	Trail []TrailEntry

	newMesh    MeshFactory
	trailFrame int
}

// NewBody derives the radius, uploads the sphere through factory and
// returns the body. The factory is retained for trail sphere uploads.
func NewBody(pos, vel mgl64.Vec3, mass, density float64, factory MeshFactory) *Body {
	b := &Body{
		Pos:     pos,
		Vel:     vel,
		Mass:    mass,
		Density: density,
		Color:   mgl32.Vec4{1, 0, 0, 1},
		newMesh: factory,
	}
	b.UpdateRadius()
	b.Mesh = factory(geometry.SphereVertices(b.Radius, sphereStacks, sphereSectors))
	return b
}

// UpdateRadius recomputes the derived radius. Must run after every mass
// mutation and before any mesh rebuild; the radius is never stored stale.
func (b *Body) UpdateRadius() {
	b.Radius = math.Cbrt(3*b.Mass/(4*math.Pi*b.Density)) / 1e5
}

// RebuildMesh regenerates the sphere at the current radius and overwrites
// the vertex buffer.
func (b *Body) RebuildMesh() {
	b.Mesh.Update(geometry.SphereVertices(b.Radius, sphereStacks, sphereSectors))
}

// Accelerate folds a pairwise acceleration into the velocity. The /96
// factor couples acceleration to per-frame velocity; changing it shifts
// every scenario trajectory.
func (b *Body) Accelerate(a mgl64.Vec3, speed float64) {
	b.Vel = b.Vel.Add(a.Mul(speed / 96))
}

// UpdatePos advances the position from the velocity (the /94 factor is
// the position counterpart of the /96 coupling), refreshes the derived
// radius and records the trail.
func (b *Body) UpdatePos(speed float64) {
	b.Pos = b.Pos.Add(b.Vel.Mul(speed / 94))
	b.UpdateRadius()
	if b.HasTrail {
		b.UpdateTrail()
	}
}

// UpdateTrail appends a trail sphere every trailInterval simulation frames
// and, past maxTrailLength entries, releases and evicts the oldest.
func (b *Body) UpdateTrail() {
	b.trailFrame++
	if b.trailFrame%trailInterval != 0 {
		return
	}
	verts := geometry.SphereVertices(b.Radius*trailRadiusScale, trailStacks, trailSectors)
	b.Trail = append(b.Trail, TrailEntry{Pos: b.Pos, Mesh: b.newMesh(verts)})
	if len(b.Trail) > maxTrailLength {
		b.Trail[0].Mesh.Release()
		b.Trail = b.Trail[1:]
	}
}

// Release frees the body's mesh and every trail mesh exactly once.
func (b *Body) Release() {
	if b.Mesh != nil {
		b.Mesh.Release()
		b.Mesh = nil
	}
	for i := range b.Trail {
		b.Trail[i].Mesh.Release()
	}
	b.Trail = nil
}
