// Package element defines the finite element shapes exchanged between the
// meshing engine and the solver, together with the solver-side vocabulary
// (section names, element names, cell types) needed to emit them.
package element

// Type represents a finite element shape assignable to an element block
type Type int

const (
	Hex8 Type = iota
	Hex20
	Hex27
	Tet4
	Tet10
	Wedge6
	Quad4
	Tri3
	Hex8Fluid
)

func (t Type) String() string {
	return [...]string{
		"Hex8", "Hex20", "Hex27", "Tet4", "Tet10", "Wedge6",
		"Quad4", "Tri3", "Hex8Fluid",
	}[t]
}

// NodeCount returns the number of nodes per element of this shape
func (t Type) NodeCount() int {
	return [...]int{8, 20, 27, 4, 10, 6, 4, 3, 8}[t]
}

// FourCSection returns the solver section family for blocks of this type.
// Element sections are named "<family> ELEMENTS", external geometry sections
// "<family> GEOMETRY".
func (t Type) FourCSection() string {
	if t == Hex8Fluid {
		return "FLUID"
	}
	return "STRUCTURE"
}

// FourCName returns the solver element name written into the data record of
// every emitted element
func (t Type) FourCName() string {
	switch t {
	case Hex8Fluid:
		return "FLUID"
	case Quad4, Tri3:
		return "WALL"
	default:
		return "SOLID"
	}
}

// FourCType returns the solver cell type of the element
func (t Type) FourCType() string {
	return [...]string{
		"HEX8", "HEX20", "HEX27", "TET4", "TET10", "WEDGE6",
		"QUAD4", "TRI3", "HEX8",
	}[t]
}

// CubitNames returns the meshing-engine scheme keyword and element shape
// name for this type
func (t Type) CubitNames() (scheme, shape string) {
	schemes := [...]string{
		"hex", "hex", "hex", "tetra", "tetra", "wedge", "quad", "tri", "hex",
	}
	shapes := [...]string{
		"HEX8", "HEX20", "HEX27", "TETRA4", "TETRA10", "WEDGE6",
		"QUAD4", "TRI3", "HEX8",
	}
	return schemes[t], shapes[t]
}

// ParseType maps an element shape name (as written in metadata files) to
// its Type
func ParseType(s string) (Type, bool) {
	switch s {
	case "HEX8":
		return Hex8, true
	case "HEX20":
		return Hex20, true
	case "HEX27":
		return Hex27, true
	case "TET4", "TETRA4":
		return Tet4, true
	case "TET10", "TETRA10":
		return Tet10, true
	case "WEDGE6":
		return Wedge6, true
	case "QUAD4":
		return Quad4, true
	case "TRI3":
		return Tri3, true
	case "HEX8_FLUID":
		return Hex8Fluid, true
	}
	return 0, false
}
