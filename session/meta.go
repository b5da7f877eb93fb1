package session

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/exodeck/deck"
	"github.com/notargets/exodeck/element"
	"github.com/notargets/exodeck/fault"
	"github.com/notargets/exodeck/geometry"
)

// Meta is the YAML description of the session metadata kept alongside a
// pre-exported exchange file, for conversions without a live meshing
// engine. Example:
//
//	blocks:
//	  1:
//	    element: HEX8
//	    data: {MAT: 1, KINEM: nonlinear}
//	nodesets:
//	  1:
//	    geometry: surface
//	    section: DESIGN SURF DIRICH CONDITIONS
//	    condition: {NUMDOF: 3, ONOFF: [1, 1, 1]}
type Meta struct {
	Blocks   map[int]BlockMeta   `json:"blocks"`
	NodeSets map[int]NodeSetMeta `json:"nodesets"`
}

// BlockMeta describes one element block
type BlockMeta struct {
	Element string                 `json:"element"`
	Data    map[string]interface{} `json:"data"`
}

// NodeSetMeta describes one node set
type NodeSetMeta struct {
	Geometry  string                 `json:"geometry"`
	Section   string                 `json:"section"`
	Condition map[string]interface{} `json:"condition"`
}

// ParseMeta parses session metadata from YAML
func ParseMeta(data []byte) (*Meta, error) {
	m := &Meta{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadMeta reads and parses a session metadata file
func LoadMeta(path string) (*Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMeta(data)
}

// Session binds the metadata to a pre-exported exchange file and returns a
// Session whose ExportMesh copies that file
func (m *Meta) Session(exoPath string) (*FileSession, error) {
	s := &FileSession{
		exoPath:  exoPath,
		base:     deck.New(),
		blocks:   make(map[int]Block),
		nodeSets: make(map[int]NodeSet),
	}
	for id, bm := range m.Blocks {
		t, ok := element.ParseType(bm.Element)
		if !ok {
			return nil, fmt.Errorf("%w: block %d has unknown element type %q",
				fault.ErrInvalidArgument, id, bm.Element)
		}
		s.blocks[id] = Block{Element: t, Data: recordFromMap(bm.Data)}
	}
	for id, nm := range m.NodeSets {
		g, ok := geometry.ParseType(nm.Geometry)
		if !ok {
			return nil, fmt.Errorf("%w: node set %d has unknown geometry type %q",
				fault.ErrInvalidArgument, id, nm.Geometry)
		}
		s.nodeSets[id] = NodeSet{
			Section:   nm.Section,
			Condition: recordFromMap(nm.Condition),
			Geometry:  g,
		}
	}
	return s, nil
}

// recordFromMap converts a parsed YAML mapping to a record. YAML mappings
// arrive unordered, so keys are sorted for deterministic output.
func recordFromMap(m map[string]interface{}) *deck.Record {
	r := deck.NewRecord()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r.Set(k, m[k])
	}
	return r
}

// FileSession is a Session backed by an exchange file the meshing engine
// already exported
type FileSession struct {
	exoPath  string
	base     *deck.Deck
	blocks   map[int]Block
	nodeSets map[int]NodeSet
}

// SetBaseDeck replaces the pre-mesh deck
func (s *FileSession) SetBaseDeck(d *deck.Deck) {
	s.base = d
}

// ExportMesh copies the pre-exported exchange file to path
func (s *FileSession) ExportMesh(path string) error {
	if path == s.exoPath {
		return nil
	}
	src, err := os.Open(s.exoPath)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// ExchangePath returns the path of the pre-exported exchange file
func (s *FileSession) ExchangePath() string {
	return s.exoPath
}

// Blocks returns the block registry
func (s *FileSession) Blocks() map[int]Block {
	return s.blocks
}

// NodeSets returns the node-set registry
func (s *FileSession) NodeSets() map[int]NodeSet {
	return s.nodeSets
}

// BaseDeck returns the pre-mesh deck
func (s *FileSession) BaseDeck() *deck.Deck {
	return s.base
}
