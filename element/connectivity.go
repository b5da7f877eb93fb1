package element

// hex27Ordering remaps the meshing engine's 27-node hexahedron into the
// solver's node convention. The 20 corner and mid-edge nodes keep their
// positions; the 6 face centers and the volume center are permuted.
var hex27Ordering = [27]int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
	10, 11, 12, 13, 14, 15, 16, 17, 18, 19,
	21, 25, 24, 26, 23, 22, 20,
}

// NormalizeConnectivity returns the element's node indices in the ordering
// required by the solver. The 27-node hexahedron is the single shape whose
// ordering differs between the two conventions; every other length passes
// through unchanged. The input slice is never modified.
func NormalizeConnectivity(connectivity []int) []int {
	out := make([]int, len(connectivity))
	if len(connectivity) == 27 {
		for i, j := range hex27Ordering {
			out[i] = connectivity[j]
		}
		return out
	}
	copy(out, connectivity)
	return out
}
