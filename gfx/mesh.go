package gfx

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

type Mesh struct {
	dev     Device
	buffers MeshBuffers
}

func NewMesh(dev Device, vertices []Vertex, elements []uint32) (*Mesh, error) {
	if len(vertices) == 0 || len(elements) == 0 {
		return nil, errors.New("gfx: empty mesh")
	}
	b, err := dev.CreateMeshBuffers(vertices, elements)
	if err != nil {
		return nil, errors.Wrap(err, "gfx: create mesh buffers")
	}
	return &Mesh{dev: dev, buffers: b}, nil
}

func (m *Mesh) ElementCount() int32 { return m.buffers.ElementCount }

func (m *Mesh) Draw() { m.dev.DrawMesh(m.buffers) }

func (m *Mesh) Destroy() {
	if m == nil || m.buffers.VertexArray == 0 {
		return
	}
	m.dev.DeleteMeshBuffers(m.buffers)
	m.buffers = MeshBuffers{}
}

var white = [4]uint8{255, 255, 255, 255}

// SphereGeometry builds a unit UV sphere with segments.X longitude and
// segments.Y latitude divisions.
func SphereGeometry(segments image.Point) ([]Vertex, []uint32) {
	var vertices []Vertex
	for lat := 0; lat <= segments.Y; lat++ {
		v := float32(lat) / float32(segments.Y)
		pitch := float64(v)*math.Pi - math.Pi/2
		cp, sp := float32(math.Cos(pitch)), float32(math.Sin(pitch))
		for lng := 0; lng <= segments.X; lng++ {
			u := float32(lng) / float32(segments.X)
			yaw := float64(u) * 2 * math.Pi
			normal := mgl32.Vec3{cp * float32(math.Cos(yaw)), sp, cp * float32(math.Sin(yaw))}
			vertices = append(vertices, Vertex{
				Position: normal,
				Color:    white,
				TexCoord: mgl32.Vec2{u, v},
				Normal:   normal,
			})
		}
	}

	var elements []uint32
	stride := uint32(segments.X + 1)
	for lat := 0; lat < segments.Y; lat++ {
		for lng := 0; lng < segments.X; lng++ {
			i := uint32(lat)*stride + uint32(lng)
			elements = append(elements,
				i, i+stride, i+stride+1,
				i+stride+1, i+1, i,
			)
		}
	}
	return vertices, elements
}

func NewSphereMesh(dev Device, segments image.Point) (*Mesh, error) {
	if segments.X < 3 || segments.Y < 2 {
		return nil, errors.Errorf("gfx: sphere needs at least 3x2 segments, got %v", segments)
	}
	v, e := SphereGeometry(segments)
	return NewMesh(dev, v, e)
}

// CubeGeometry builds a unit cube centered at the origin with per-face normals.
func CubeGeometry() ([]Vertex, []uint32) {
	faces := []struct {
		normal, right, up mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}
	var vertices []Vertex
	var elements []uint32
	for _, f := range faces {
		base := uint32(len(vertices))
		center := f.normal.Mul(0.5)
		corners := [4]mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			p := center.Add(f.right.Mul(c.X() * 0.5)).Add(f.up.Mul(c.Y() * 0.5))
			vertices = append(vertices, Vertex{
				Position: p,
				Color:    white,
				TexCoord: mgl32.Vec2{(c.X() + 1) / 2, (c.Y() + 1) / 2},
				Normal:   f.normal,
			})
		}
		elements = append(elements, base, base+1, base+2, base+2, base+3, base)
	}
	return vertices, elements
}

func NewCubeMesh(dev Device) (*Mesh, error) {
	v, e := CubeGeometry()
	return NewMesh(dev, v, e)
}

// PlaneGeometry is a unit quad in the XY plane facing +Z.
func PlaneGeometry() ([]Vertex, []uint32) {
	n := mgl32.Vec3{0, 0, 1}
	vertices := []Vertex{
		{Position: mgl32.Vec3{-0.5, -0.5, 0}, Color: white, TexCoord: mgl32.Vec2{0, 0}, Normal: n},
		{Position: mgl32.Vec3{0.5, -0.5, 0}, Color: white, TexCoord: mgl32.Vec2{1, 0}, Normal: n},
		{Position: mgl32.Vec3{0.5, 0.5, 0}, Color: white, TexCoord: mgl32.Vec2{1, 1}, Normal: n},
		{Position: mgl32.Vec3{-0.5, 0.5, 0}, Color: white, TexCoord: mgl32.Vec2{0, 1}, Normal: n},
	}
	return vertices, []uint32{0, 1, 2, 2, 3, 0}
}

func NewPlaneMesh(dev Device) (*Mesh, error) {
	v, e := PlaneGeometry()
	return NewMesh(dev, v, e)
}
