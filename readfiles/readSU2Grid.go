package readfiles

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/notargets/incflow/types"
	"github.com/notargets/incflow/utils"
)

// Format reference: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle      SU2ElementType = 5
	ELType_Quadrilateral SU2ElementType = 9
)

/*
ReadSU2 reads a 2D triangular mesh in the SU2 format, returning the same
shape of result as ReadGambit2d. SU2 files number their vertices from zero,
so the connectivity is used as read.
*/
func ReadSU2(filename string, verbose bool) (K int, VX, VY utils.Vector, EToV utils.Matrix, BCEdges types.BCMAP) {
	var (
		file *os.File
		err  error
	)
	if verbose {
		fmt.Printf("Reading SU2 mesh from %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		panic(fmt.Errorf("cannot open grid file %s: %s", filename, err))
	}
	defer file.Close()
	return readSU2(bufio.NewReader(file), verbose)
}

func readSU2(reader *bufio.Reader, verbose bool) (K int, VX, VY utils.Vector, EToV utils.Matrix, BCEdges types.BCMAP) {
	dimensionality := readNumber(reader)
	if dimensionality != 2 {
		panic(fmt.Errorf("only 2 dimensional meshes are supported, file has %d", dimensionality))
	}
	K, EToV = readElements(reader)
	VX, VY = readVertices(reader)
	BCEdges = readBCs(reader)
	if verbose {
		fmt.Printf("Read %d elements, %d vertices, %d boundary groups\n",
			K, VX.Len(), len(BCEdges))
	}
	return
}

func readElements(reader *bufio.Reader) (K int, EToV utils.Matrix) {
	K = readNumber(reader)
	EToV = utils.NewMatrix(K, 3)
	for k := 0; k < K; k++ {
		var etype, v1, v2, v3 int
		scanLine(getLine(reader), 4, "%d %d %d %d", &etype, &v1, &v2, &v3)
		if SU2ElementType(etype) != ELType_Triangle {
			panic(fmt.Errorf("only triangular elements are supported, have type %d", etype))
		}
		EToV.Set(k, 0, float64(v1))
		EToV.Set(k, 1, float64(v2))
		EToV.Set(k, 2, float64(v3))
	}
	return
}

func readVertices(reader *bufio.Reader) (VX, VY utils.Vector) {
	Nv := readNumber(reader)
	VX, VY = utils.NewVector(Nv), utils.NewVector(Nv)
	vx, vy := VX.DataP, VY.DataP
	// Coordinate lines may carry a trailing index column, ignored here
	for i := 0; i < Nv; i++ {
		scanLine(getLine(reader), 2, "%f %f", &vx[i], &vy[i])
	}
	return
}

func readBCs(reader *bufio.Reader) (BCEdges types.BCMAP) {
	NBCs := readNumber(reader)
	BCEdges = make(types.BCMAP, NBCs)
	for n := 0; n < NBCs; n++ {
		label := readLabel(reader)
		nEdges := readNumber(reader)
		edges := make([]types.EdgeInt, nEdges)
		for i := range edges {
			var etype, v1, v2 int
			scanLine(getLine(reader), 3, "%d %d %d", &etype, &v1, &v2)
			if SU2ElementType(etype) != ELType_LINE {
				panic(fmt.Errorf("boundary markers must be line elements in 2D, have type %d", etype))
			}
			edges[i] = types.NewEdgeInt([2]int{v1, v2})
		}
		// Markers sharing a tag append to a common slice, periodic pairs
		// arrive as two marker sections with the same base name
		BCEdges.AddEdges(types.NewBCTAG(label), edges)
	}
	return
}

// getToken returns the text after the = of a KEY= value line
func getToken(reader *bufio.Reader) string {
	line := getLineNoComments(reader)
	ind := strings.Index(line, "=")
	if ind < 0 {
		panic(fmt.Errorf("badly formed input line [%s], should have an =", line))
	}
	return line[ind+1:]
}

func readLabel(reader *bufio.Reader) (label string) {
	token := getToken(reader)
	if _, err := fmt.Sscanf(token, "%s", &label); err != nil {
		panic(fmt.Errorf("unable to read label from token: [%s]", token))
	}
	return strings.Trim(label, " ")
}

func readNumber(reader *bufio.Reader) (num int) {
	token := getToken(reader)
	if _, err := fmt.Sscanf(token, "%d", &num); err != nil {
		panic(fmt.Errorf("unable to read number from token: [%s]", token))
	}
	return
}

// getLineNoComments skips lines opening with the % comment marker
func getLineNoComments(reader *bufio.Reader) (line string) {
	for {
		line = strings.Trim(getLine(reader), " ")
		if !strings.HasPrefix(line, "%") {
			return
		}
	}
}
