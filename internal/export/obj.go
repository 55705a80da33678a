package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/slatrelief/internal/mesh"
)

// EncodeOBJ writes meshes as Wavefront OBJ objects. Each mesh becomes one
// object using its material name; mtlLib, if set, is referenced by mtllib.
func EncodeOBJ(w io.Writer, meshes []*mesh.Mesh, mtlLib string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# slatrelief")
	if mtlLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtlLib)
	}

	// OBJ indices are 1-based and global across objects.
	next := 1
	for _, m := range meshes {
		if m.IsEmpty() {
			continue
		}
		fmt.Fprintf(bw, "o %s\n", m.Name)
		if mtlLib != "" {
			fmt.Fprintf(bw, "usemtl %s\n", m.Material)
		}
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "v %g %g %g\n", v.Position[0], v.Position[1], v.Position[2])
		}
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "vt %g %g\n", v.TexCoord[0], v.TexCoord[1])
		}
		for _, v := range m.Vertices {
			fmt.Fprintf(bw, "vn %g %g %g\n", v.Normal[0], v.Normal[1], v.Normal[2])
		}
		for i := 0; i < len(m.Indices); i += 3 {
			a := next + int(m.Indices[i])
			b := next + int(m.Indices[i+1])
			c := next + int(m.Indices[i+2])
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
		next += len(m.Vertices)
	}

	return bw.Flush()
}

// EncodeMTL writes the material library used by EncodeOBJ. The panel is unlit
// (illum 0) and textured with textureFile when one is given.
func EncodeMTL(w io.Writer, textureFile string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# slatrelief")
	fmt.Fprintf(bw, "newmtl %s\n", mesh.MaterialPanel)
	fmt.Fprintln(bw, "Ka 1 1 1")
	fmt.Fprintln(bw, "Kd 1 1 1")
	fmt.Fprintln(bw, "illum 0")
	if textureFile != "" {
		fmt.Fprintf(bw, "map_Kd %s\n", textureFile)
	}
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "newmtl %s\n", mesh.MaterialSlat)
	fmt.Fprintln(bw, "Ka 0.2 0.2 0.2")
	fmt.Fprintln(bw, "Kd 0.8 0.8 0.8")
	fmt.Fprintln(bw, "Ks 0.1 0.1 0.1")
	fmt.Fprintln(bw, "illum 2")

	return bw.Flush()
}
