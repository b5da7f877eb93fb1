// Package geometry defines the geometric dimensionality classes used to
// classify node sets and to address entities in meshing-engine commands.
package geometry

// Type represents the geometric dimensionality of a meshing-engine entity
type Type int

const (
	Vertex Type = iota
	Curve
	Surface
	Volume
)

// Types lists all dimensionality classes in ascending order. Topology
// sections are emitted in this order.
var Types = [...]Type{Vertex, Curve, Surface, Volume}

func (g Type) String() string {
	return [...]string{"Vertex", "Curve", "Surface", "Volume"}[g]
}

// CubitString returns the keyword used to address entities of this
// dimensionality on the meshing-engine command line
func (g Type) CubitString() string {
	return [...]string{"vertex", "curve", "surface", "volume"}[g]
}

// TopologySection returns the solver section name holding the node lists of
// sets with this dimensionality
func (g Type) TopologySection() string {
	return [...]string{
		"DNODE-NODE TOPOLOGY",
		"DLINE-NODE TOPOLOGY",
		"DSURF-NODE TOPOLOGY",
		"DVOL-NODE TOPOLOGY",
	}[g]
}

// SetLabel returns the set-label tag written with every (node, set) pair in
// the topology section of this dimensionality
func (g Type) SetLabel() string {
	return [...]string{"DNODE", "DLINE", "DSURFACE", "DVOL"}[g]
}

// ParseType maps a meshing-engine keyword to its dimensionality class
func ParseType(s string) (Type, bool) {
	switch s {
	case "vertex", "node", "point":
		return Vertex, true
	case "curve", "line":
		return Curve, true
	case "surface":
		return Surface, true
	case "volume":
		return Volume, true
	}
	return 0, false
}
