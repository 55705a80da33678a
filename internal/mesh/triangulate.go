package mesh

import (
	gomath "math"

	"github.com/Faultbox/slatrelief/pkg/math"
)

const epsilon = 1e-12

// signedArea returns the shoelace area; positive for counter-clockwise polygons.
func signedArea(poly []math.Vec2) float64 {
	var sum float64
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// triangulate ear-clips a simple polygon. Triangles are returned
// counter-clockwise regardless of the input winding. Collinear vertices are
// dropped without emitting a triangle.
func triangulate(poly []math.Vec2) [][3]int {
	if len(poly) < 3 {
		return nil
	}

	idx := make([]int, len(poly))
	for i := range idx {
		idx[i] = i
	}
	if signedArea(poly) < 0 {
		for l, r := 0, len(idx)-1; l < r; l, r = l+1, r-1 {
			idx[l], idx[r] = idx[r], idx[l]
		}
	}

	tris := make([][3]int, 0, len(poly)-2)
	i, misses := 0, 0
	for len(idx) > 3 && misses <= len(idx) {
		k := len(idx)
		prev, cur, next := idx[(i+k-1)%k], idx[i], idx[(i+1)%k]
		turn := turnOf(poly[prev], poly[cur], poly[next])

		switch {
		case gomath.Abs(turn) <= epsilon:
			idx = append(idx[:i], idx[i+1:]...)
			misses = 0
		case turn > 0 && !containsVertex(poly, idx, prev, cur, next):
			tris = append(tris, [3]int{prev, cur, next})
			idx = append(idx[:i], idx[i+1:]...)
			misses = 0
		default:
			i++
			misses++
		}
		if i >= len(idx) {
			i = 0
		}
	}

	if len(idx) == 3 && turnOf(poly[idx[0]], poly[idx[1]], poly[idx[2]]) > epsilon {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris
}

func turnOf(a, b, c math.Vec2) float64 {
	return b.Sub(a).Cross(c.Sub(b))
}

// containsVertex reports whether any remaining vertex other than the ear's own
// lies strictly inside triangle (a, b, c).
func containsVertex(poly []math.Vec2, idx []int, a, b, c int) bool {
	pa, pb, pc := poly[a], poly[b], poly[c]
	for _, j := range idx {
		if j == a || j == b || j == c {
			continue
		}
		p := poly[j]
		if p == pa || p == pb || p == pc {
			continue
		}
		if turnOf(pa, pb, p) > epsilon && turnOf(pb, pc, p) > epsilon && turnOf(pc, pa, p) > epsilon {
			return true
		}
	}
	return false
}
