package session

import (
	"fmt"

	"github.com/notargets/exodeck/deck"
	"github.com/notargets/exodeck/element"
	"github.com/notargets/exodeck/exodus"
	"github.com/notargets/exodeck/geometry"
)

// nameWidth is the fixed width of name buffers in exported exchange files
const nameWidth = 33

// MemorySession is a Session holding its mesh in memory. It exports a real
// exchange file on demand, which makes it the stand-in for the meshing
// engine in tests and in pipelines that assemble meshes programmatically.
type MemorySession struct {
	base     *deck.Deck
	coords   [][3]float64
	blocks   map[int]Block
	nodeSets map[int]NodeSet

	blockConn  map[int][][]int
	blockOrder []int // exchange-file export order, not native id order
	setNodes   map[int][]int
	setOrder   []int
}

// NewMemorySession returns an empty session with an empty base deck
func NewMemorySession() *MemorySession {
	return &MemorySession{
		base:      deck.New(),
		blocks:    make(map[int]Block),
		nodeSets:  make(map[int]NodeSet),
		blockConn: make(map[int][][]int),
		setNodes:  make(map[int][]int),
	}
}

// SetBaseDeck replaces the pre-mesh deck
func (s *MemorySession) SetBaseDeck(d *deck.Deck) {
	s.base = d
}

// AddNode appends a node and returns its 1-based id
func (s *MemorySession) AddNode(x, y, z float64) int {
	s.coords = append(s.coords, [3]float64{x, y, z})
	return len(s.coords)
}

// AddBlock registers an element block. Connectivity rows hold 1-based node
// ids and must match the element's node count. Blocks are exported in
// registration order regardless of native id.
func (s *MemorySession) AddBlock(nativeID int, t element.Type, data *deck.Record, connectivity [][]int) error {
	if _, ok := s.blocks[nativeID]; ok {
		return fmt.Errorf("block %d already registered", nativeID)
	}
	if len(connectivity) == 0 {
		return fmt.Errorf("block %d has no elements", nativeID)
	}
	for i, row := range connectivity {
		if len(row) != t.NodeCount() {
			return fmt.Errorf("block %d element %d has %d nodes, %s needs %d",
				nativeID, i, len(row), t, t.NodeCount())
		}
	}
	if data == nil {
		data = deck.NewRecord()
	}
	s.blocks[nativeID] = Block{Element: t, Data: data}
	s.blockConn[nativeID] = connectivity
	s.blockOrder = append(s.blockOrder, nativeID)
	return nil
}

// AddNodeSet registers a node set with its 1-based member node ids. An
// empty section registers the set without a boundary condition.
func (s *MemorySession) AddNodeSet(nativeID int, g geometry.Type, section string, condition *deck.Record, nodes []int) error {
	if _, ok := s.nodeSets[nativeID]; ok {
		return fmt.Errorf("node set %d already registered", nativeID)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("node set %d has no nodes", nativeID)
	}
	if condition == nil {
		condition = deck.NewRecord()
	}
	s.nodeSets[nativeID] = NodeSet{Section: section, Condition: condition, Geometry: g}
	s.setNodes[nativeID] = nodes
	s.setOrder = append(s.setOrder, nativeID)
	return nil
}

// Blocks returns the block registry
func (s *MemorySession) Blocks() map[int]Block {
	return s.blocks
}

// NodeSets returns the node-set registry
func (s *MemorySession) NodeSets() map[int]NodeSet {
	return s.nodeSets
}

// BaseDeck returns the pre-mesh deck
func (s *MemorySession) BaseDeck() *deck.Deck {
	return s.base
}

// ExportMesh writes the session's mesh state to an exchange file at path.
// Fails if the session holds no mesh.
func (s *MemorySession) ExportMesh(path string) error {
	if len(s.coords) == 0 {
		return fmt.Errorf("session is unmeshed, nothing to export")
	}

	w := exodus.NewWriter()
	if err := w.AddDim("num_nodes", len(s.coords)); err != nil {
		return err
	}
	if err := w.AddDim("len_name", nameWidth); err != nil {
		return err
	}
	x := make([]float64, len(s.coords))
	y := make([]float64, len(s.coords))
	z := make([]float64, len(s.coords))
	for i, c := range s.coords {
		x[i], y[i], z[i] = c[0], c[1], c[2]
	}
	nodeDims := []string{"num_nodes"}
	if err := w.PutDoubles("coordx", nodeDims, x); err != nil {
		return err
	}
	if err := w.PutDoubles("coordy", nodeDims, y); err != nil {
		return err
	}
	if err := w.PutDoubles("coordz", nodeDims, z); err != nil {
		return err
	}

	if len(s.blockOrder) > 0 {
		if err := w.AddDim("num_el_blk", len(s.blockOrder)); err != nil {
			return err
		}
		if err := w.PutInts("eb_prop1", []string{"num_el_blk"}, s.blockOrder); err != nil {
			return err
		}
		if err := w.PutChars("eb_names", []string{"num_el_blk", "len_name"},
			make([]byte, len(s.blockOrder)*nameWidth)); err != nil {
			return err
		}
		for k, nativeID := range s.blockOrder {
			conn := s.blockConn[nativeID]
			elemDim := fmt.Sprintf("num_el_in_blk%d", k+1)
			nodeDim := fmt.Sprintf("num_nod_per_el%d", k+1)
			if err := w.AddDim(elemDim, len(conn)); err != nil {
				return err
			}
			if err := w.AddDim(nodeDim, len(conn[0])); err != nil {
				return err
			}
			flat := make([]int, 0, len(conn)*len(conn[0]))
			for _, row := range conn {
				flat = append(flat, row...)
			}
			name := fmt.Sprintf("connect%d", k+1)
			if err := w.PutInts(name, []string{elemDim, nodeDim}, flat); err != nil {
				return err
			}
		}
	}

	if len(s.setOrder) > 0 {
		if err := w.AddDim("num_node_sets", len(s.setOrder)); err != nil {
			return err
		}
		if err := w.PutInts("ns_prop1", []string{"num_node_sets"}, s.setOrder); err != nil {
			return err
		}
		if err := w.PutChars("ns_names", []string{"num_node_sets", "len_name"},
			make([]byte, len(s.setOrder)*nameWidth)); err != nil {
			return err
		}
		for k, nativeID := range s.setOrder {
			dim := fmt.Sprintf("num_nod_ns%d", k+1)
			if err := w.AddDim(dim, len(s.setNodes[nativeID])); err != nil {
				return err
			}
			name := fmt.Sprintf("node_ns%d", k+1)
			if err := w.PutInts(name, []string{dim}, s.setNodes[nativeID]); err != nil {
				return err
			}
		}
	}

	return w.WriteFile(path)
}
