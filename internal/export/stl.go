package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Faultbox/slatrelief/internal/mesh"
	"github.com/Faultbox/slatrelief/pkg/math"
)

const stlHeaderSize = 80

// stlTriangle is the 50-byte binary STL facet record.
type stlTriangle struct {
	Normal   [3]float32
	Vertices [3][3]float32
	Attr     uint16
}

// EncodeSTL writes all triangles of meshes as one binary STL solid.
func EncodeSTL(w io.Writer, meshes []*mesh.Mesh) error {
	var count uint32
	for _, m := range meshes {
		count += uint32(m.TriangleCount())
	}

	bw := bufio.NewWriter(w)

	var header [stlHeaderSize]byte
	copy(header[:], "slatrelief binary STL")
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("writing triangle count: %w", err)
	}

	for _, m := range meshes {
		for i := 0; i < m.TriangleCount(); i++ {
			t := m.Triangle(i)
			rec := stlTriangle{
				Normal: faceNormal(t),
				Vertices: [3][3]float32{
					t[0].Position, t[1].Position, t[2].Position,
				},
			}
			if err := binary.Write(bw, binary.LittleEndian, &rec); err != nil {
				return fmt.Errorf("writing triangle: %w", err)
			}
		}
	}

	return bw.Flush()
}

// faceNormal recomputes the facet normal from the winding, which STL readers
// treat as authoritative.
func faceNormal(t [3]mesh.Vertex) [3]float32 {
	p := func(v mesh.Vertex) math.Vec3 {
		return math.Vec3{X: float64(v.Position[0]), Y: float64(v.Position[1]), Z: float64(v.Position[2])}
	}
	a, b, c := p(t[0]), p(t[1]), p(t[2])
	return b.Sub(a).Cross(c.Sub(a)).Normalize().Float32()
}
