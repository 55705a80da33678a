package mesh

import (
	"github.com/Faultbox/slatrelief/pkg/math"
	"github.com/Faultbox/slatrelief/pkg/relief"
)

// FromModel tessellates every element of the model: the panel first, then the
// slats in row order.
func FromModel(m *relief.Model) []*Mesh {
	meshes := make([]*Mesh, 0, m.ElementCount())
	meshes = append(meshes, FromPanel(m.Panel))
	for _, e := range m.Extrusions {
		meshes = append(meshes, FromExtrusion(e))
	}
	return meshes
}

// ModelBounds returns the bounds of all non-empty meshes.
func ModelBounds(meshes []*Mesh) Bounds {
	b := emptyBounds()
	for _, m := range meshes {
		if !m.IsEmpty() {
			b = b.Union(m.Bounds)
		}
	}
	return b
}

// FromPanel builds the panel quad facing +Z with the panel's texture coordinates.
func FromPanel(p relief.Panel) *Mesh {
	m := newMesh(p.Name, MaterialPanel)
	m.addQuad(p.Corners, p.UVs, math.ZAxis)
	return m
}

// FromExtrusion builds a closed solid from the extrusion's profile: a cap at the
// profile, a cap offset by the extrusion vector, and one wall per profile edge.
// All faces wind outward. A degenerate profile yields an empty mesh.
func FromExtrusion(e relief.Extrusion) *Mesh {
	m := newMesh(e.Name, MaterialSlat)

	pts := dedupe(e.Profile.Points)
	dir := e.Direction.Normalize()
	if len(pts) < 3 || dir == (math.Vec3{}) {
		return m
	}
	if e.Flipped {
		dir = dir.Negate()
	}
	offset := dir.Scale(e.Thickness)

	ia, ib := projectionAxes(dir)
	poly := make([]math.Vec2, len(pts))
	for i, p := range pts {
		poly[i] = math.Vec2{X: p.Component(ia), Y: p.Component(ib)}
	}
	area := signedArea(poly)
	if area > -epsilon && area < epsilon {
		return m
	}

	tris := triangulate(poly)
	m.addCap(pts, tris, math.Vec3{}, dir.Negate())
	m.addCap(pts, tris, offset, dir)

	var noUV [4]math.UV
	for i := range pts {
		j := (i + 1) % len(pts)
		edge := poly[j].Sub(poly[i])
		// Outward normal of a counter-clockwise edge is (dy, -dx).
		out := [3]float64{}
		out[ia], out[ib] = edge.Y, -edge.X
		outward := math.Vec3{X: out[0], Y: out[1], Z: out[2]}
		if area < 0 {
			outward = outward.Negate()
		}
		a, b := pts[i], pts[j]
		m.addQuad([4]math.Vec3{a, b, b.Add(offset), a.Add(offset)}, noUV, outward)
	}
	return m
}

func newMesh(name, material string) *Mesh {
	return &Mesh{
		Name:     name,
		Material: material,
		Bounds:   emptyBounds(),
	}
}

// addQuad appends a planar quad wound so its normal faces along want.
func (m *Mesh) addQuad(q [4]math.Vec3, uv [4]math.UV, want math.Vec3) {
	n := q[1].Sub(q[0]).Cross(q[2].Sub(q[0]))
	if n.Dot(want) < 0 {
		q[1], q[3] = q[3], q[1]
		uv[1], uv[3] = uv[3], uv[1]
		n = n.Negate()
	}
	n = n.Normalize()
	if n == (math.Vec3{}) {
		return
	}

	base := uint32(len(m.Vertices))
	for i := range q {
		m.addVertex(q[i], n, uv[i])
	}
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)
}

// addCap appends the triangulated profile translated by offset, wound so every
// triangle faces along normal.
func (m *Mesh) addCap(pts []math.Vec3, tris [][3]int, offset, normal math.Vec3) {
	base := uint32(len(m.Vertices))
	for _, p := range pts {
		m.addVertex(p.Add(offset), normal, math.UV{})
	}
	for _, t := range tris {
		a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
		if b.Sub(a).Cross(c.Sub(a)).Dot(normal) < 0 {
			t[1], t[2] = t[2], t[1]
		}
		m.Indices = append(m.Indices, base+uint32(t[0]), base+uint32(t[1]), base+uint32(t[2]))
	}
}

func (m *Mesh) addVertex(p, n math.Vec3, uv math.UV) {
	pos := p.Float32()
	m.Vertices = append(m.Vertices, Vertex{Position: pos, Normal: n.Float32(), TexCoord: uv.Float32()})
	updateBounds(&m.Bounds, pos)
}

// projectionAxes returns the two coordinate axes kept when the dominant axis
// of dir is dropped.
func projectionAxes(dir math.Vec3) (int, int) {
	ax, ay, az := abs(dir.X), abs(dir.Y), abs(dir.Z)
	switch {
	case ax >= ay && ax >= az:
		return 1, 2
	case ay >= az:
		return 0, 2
	default:
		return 0, 1
	}
}

// dedupe drops consecutive repeated points, including a repeated closing point.
func dedupe(pts []math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
