// Package session defines the meshing-session surface consumed by deck
// conversion: the block and node-set registries keyed by native id, the
// pre-mesh base deck and the mesh export operation.
package session

import (
	"github.com/notargets/exodeck/deck"
	"github.com/notargets/exodeck/element"
	"github.com/notargets/exodeck/geometry"
)

// Block is one element block registered in the session: its element shape
// and the solver metadata merged into every emitted element record
type Block struct {
	Element element.Type
	Data    *deck.Record
}

// NodeSet is one node set registered in the session. Section names the
// boundary-condition section the set feeds; an empty Section means the set
// carries no boundary condition but still appears in topology output.
type NodeSet struct {
	Section   string
	Condition *deck.Record
	Geometry  geometry.Type
}

// Session is the external meshing-session collaborator. All registries are
// read-only to the conversion; ExportMesh fails if the session holds no
// mesh.
type Session interface {
	ExportMesh(path string) error
	Blocks() map[int]Block
	NodeSets() map[int]NodeSet
	BaseDeck() *deck.Deck
}
