package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/notargets/incflow/types"
	"github.com/notargets/incflow/utils"
)

/*
ReadGambit2d reads a 2D triangular mesh in the Gambit neutral file format,
returning the vertex coordinates, the element to vertex connectivity with
zero based vertex indices, and the boundary edges grouped by their tags.
*/
func ReadGambit2d(filename string, verbose bool) (K int, VX, VY utils.Vector, EToV utils.Matrix, BCEdges types.BCMAP) {
	var (
		file *os.File
		err  error
	)
	if verbose {
		fmt.Printf("Reading Gambit neutral mesh from %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		panic(fmt.Errorf("cannot open grid file %s: %s", filename, err))
	}
	defer file.Close()
	return readGambit2d(bufio.NewReader(file), verbose)
}

func readGambit2d(reader *bufio.Reader, verbose bool) (K int, VX, VY utils.Vector, EToV utils.Matrix, BCEdges types.BCMAP) {
	// Skip the six line banner
	skipLines(6, reader)

	Nv, K, Nmats, Nbcs, Nsd := ReadHeader(reader)
	skipLines(2, reader)

	if verbose {
		fmt.Printf("%d vertices, %d elements, %d material groups, %d boundary groups, %dD\n",
			Nv, K, Nmats, Nbcs, Nsd)
	}
	if Nsd != 2 {
		panic(fmt.Errorf("only 2 dimensional meshes are supported, file has %d", Nsd))
	}

	VX, VY = Read2DVertices(Nv, reader)
	skipLines(2, reader)

	EToV = ReadTris(K, reader)
	skipLines(2, reader)

	if verbose {
		fmt.Printf("Mesh bounds x [%5.3f, %5.3f], y [%5.3f, %5.3f]\n",
			VX.Min(), VX.Max(), VY.Min(), VY.Max())
	}

	// Material groups are consumed to advance the file position, the solver
	// takes its physical parameters from the run configuration instead
	for i := 0; i < Nmats; i++ {
		_, elnum, _, title := ReadMaterialHeader(reader)
		if verbose {
			fmt.Printf("Skipping material group [%s] with %d elements\n", strings.TrimSpace(title), elnum)
		}
		ReadMaterialGroup(reader, elnum)
		skipLines(2, reader)
	}

	BCEdges = ReadBCS(Nbcs, reader, EToV)
	return
}

// ReadHeader reads the counts line: vertices, elements, material groups,
// boundary groups and space dimensions
func ReadHeader(reader *bufio.Reader) (Nv, K, Nmats, Nbcs, Nsd int) {
	var ndfvl int
	scanLine(getLine(reader), 6, "%d %d %d %d %d %d", &Nv, &K, &Nmats, &Nbcs, &Nsd, &ndfvl)
	return
}

// Read2DVertices reads Nv coordinate lines, placing each vertex at the one
// based index the line itself carries
func Read2DVertices(Nv int, reader *bufio.Reader) (VX, VY utils.Vector) {
	VX, VY = utils.NewVector(Nv), utils.NewVector(Nv)
	vx, vy := VX.DataP, VY.DataP
	for i := 0; i < Nv; i++ {
		var (
			ind  int
			x, y float64
		)
		scanLine(getLine(reader), 3, "%d %f %f", &ind, &x, &y)
		vx[ind-1], vy[ind-1] = x, y
	}
	return
}

// ReadTris reads the element connectivity section, converting the one based
// vertex numbering of the file to zero based indices
func ReadTris(K int, reader *bufio.Reader) (EToV utils.Matrix) {
	/*
	   ENDOFSECTION
	      ELEMENTS/CELLS 1.3.0
	        1  3  3        1       2       3
	        2  3  3        3       2       4
	*/
	EToV = utils.NewMatrix(K, 3)
	for i := 0; i < K; i++ {
		var ind, typ, nfaces, n1, n2, n3 int
		scanLine(getLine(reader), 6, "%d %d %d %d %d %d", &ind, &typ, &nfaces, &n1, &n2, &n3)
		EToV.Set(ind-1, 0, float64(n1-1))
		EToV.Set(ind-1, 1, float64(n2-1))
		EToV.Set(ind-1, 2, float64(n3-1))
	}
	return
}

func ReadMaterialHeader(reader *bufio.Reader) (gn, elnum int, matval float64, title string) {
	/*
	   GROUP:           1 ELEMENTS:        977 MATERIAL:      1.000 NFLAGS:          0
	                     epsilon: 1.000
	          0
	*/
	scanLine(getLine(reader), 3, "GROUP: %11d ELEMENTS:%11d MATERIAL:%11f", &gn, &elnum, &matval)
	title = getLine(reader)
	// Solver flags line
	skipLines(1, reader)
	return
}

// ReadMaterialGroup consumes the element number lines of one material group,
// ten numbers to a line with a partial last line allowed
func ReadMaterialGroup(reader *bufio.Reader, elementCount int) {
	lines := elementCount / 10
	if elementCount%10 != 0 {
		lines++
	}
	var nn [10]int
	args := make([]interface{}, len(nn))
	for i := range nn {
		args[i] = &nn[i]
	}
	for i := 0; i < lines; i++ {
		line := getLine(reader)
		if n, err := fmt.Sscanf(line, "%d %d %d %d %d %d %d %d %d %d", args...); n < len(nn) && i != lines-1 {
			if err == nil {
				err = fmt.Errorf("short element group line, read %d of %d: %s", n, len(nn), line)
			}
			panic(err)
		}
	}
}

// ReadBCS reads Nbcs boundary condition groups. Each group line names an
// element by one based index and one of its three faces, which maps through
// the connectivity to a directed boundary edge stored under the group tag
func ReadBCS(Nbcs int, reader *bufio.Reader, EToV utils.Matrix) (BCEdges types.BCMAP) {
	BCEdges = make(types.BCMAP, Nbcs)
	for i := 0; i < Nbcs; i++ {
		if i != 0 {
			// Section banner between groups
			skipLines(1, reader)
		}
		line := getLine(reader)
		var tag string
		scanLine(line, 1, "%32s", &tag)
		tag = strings.ToLower(strings.Trim(tag, " "))
		var numfaces int
		if tag == "cyl" {
			// The cyl group carries a float parameter in place of the id
			var param float64
			scanLine(line, 3, "%32s%8f%8d", &tag, &param, &numfaces)
		} else {
			var id int
			scanLine(line, 3, "%32s%8d%8d", &tag, &id, &numfaces)
		}
		edges := make([]types.EdgeInt, numfaces)
		for j := range edges {
			var kp1, typ, face int
			scanLine(getLine(reader), 3, "%d %d %d", &kp1, &typ, &face)
			edges[j] = faceEdge(EToV, kp1-1, face)
		}
		BCEdges.AddEdges(types.NewBCTAG(tag), edges)
		// ENDOFSECTION
		skipLines(1, reader)
	}
	return
}

// faceEdge returns the directed edge of face 1..3 of element k, traversed in
// the counterclockwise vertex order of the element
func faceEdge(EToV utils.Matrix, k, face int) types.EdgeInt {
	a := int(EToV.At(k, face-1))
	b := int(EToV.At(k, face%3))
	return types.NewEdgeInt([2]int{a, b})
}

// scanLine parses one line against format, panicking unless at least nargs
// fields match
func scanLine(line string, nargs int, format string, args ...interface{}) {
	n, err := fmt.Sscanf(line, format, args...)
	if n >= nargs {
		return
	}
	if err == nil {
		err = fmt.Errorf("read %d of %d fields from line: %s", n, nargs, line)
	}
	panic(err)
}

func getLine(reader *bufio.Reader) string {
	line, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			err = fmt.Errorf("unexpected end of mesh file")
		}
		panic(err)
	}
	// Strip the trailing newline
	return line[:len(line)-1]
}

func skipLines(n int, reader *bufio.Reader) {
	for i := 0; i < n; i++ {
		getLine(reader)
	}
}
