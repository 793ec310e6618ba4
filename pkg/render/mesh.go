package render

import "github.com/go-gl/gl/v4.1-core/gl"

// Mesh is one VAO/VBO pair holding a flat position array. Each mesh
// belongs to exactly one owner; Release frees the GL objects once.
type Mesh struct {
	vao   uint32
	vbo   uint32
	count int32
	mode  uint32
}

// NewTriangleMesh uploads a triangle list (sphere geometry).
func NewTriangleMesh(verts []float32) *Mesh { return newMesh(verts, gl.TRIANGLES) }

// NewLineMesh uploads a line list (the reference grid).
func NewLineMesh(verts []float32) *Mesh { return newMesh(verts, gl.LINES) }

func newMesh(verts []float32, mode uint32) *Mesh {
	m := &Mesh{mode: mode}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	bufferData(verts)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	m.count = int32(len(verts) / 3)
	return m
}

// Update overwrites the whole buffer with a new vertex set.
func (m *Mesh) Update(verts []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	bufferData(verts)
	m.count = int32(len(verts) / 3)
}

// Draw issues the draw call for the mesh's primitive topology.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(m.mode, 0, m.count)
	gl.BindVertexArray(0)
}

// Release frees the GL objects.
func (m *Mesh) Release() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
}

func bufferData(verts []float32) {
	if len(verts) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
}
