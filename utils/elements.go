package utils

// ElementType identifies the mesh element shapes the 2D grid layer handles
type ElementType int

const (
	Unknown ElementType = iota
	Triangle
	Quad
)

// GetElementFaces lists the edges of a 2D element as vertex pairs in
// counterclockwise order
func GetElementFaces(elemType ElementType, vertices []int) [][]int {
	switch elemType {
	case Triangle:
		return [][]int{
			{vertices[0], vertices[1]},
			{vertices[1], vertices[2]},
			{vertices[2], vertices[0]},
		}
	case Quad:
		return [][]int{
			{vertices[0], vertices[1]},
			{vertices[1], vertices[2]},
			{vertices[2], vertices[3]},
			{vertices[3], vertices[0]},
		}
	default:
		return nil
	}
}
