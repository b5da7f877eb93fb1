package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/exodeck/deck"
	"github.com/notargets/exodeck/element"
	"github.com/notargets/exodeck/exodus"
	"github.com/notargets/exodeck/geometry"
)

func TestExportUnmeshedFails(t *testing.T) {
	s := NewMemorySession()
	err := s.ExportMesh(filepath.Join(t.TempDir(), "out.exo"))
	assert.Error(t, err)
}

func TestAddBlockValidation(t *testing.T) {
	s := NewMemorySession()
	assert.Error(t, s.AddBlock(1, element.Hex8, nil, nil))
	assert.Error(t, s.AddBlock(1, element.Hex8, nil, [][]int{{1, 2, 3}}))
	require.NoError(t, s.AddBlock(1, element.Tet4, nil, [][]int{{1, 2, 3, 4}}))
	assert.Error(t, s.AddBlock(1, element.Tet4, nil, [][]int{{1, 2, 3, 4}}))
}

func TestExportRoundTrip(t *testing.T) {
	s := NewMemorySession()
	s.AddNode(0, 0, 0)
	s.AddNode(1, 0, 0)
	s.AddNode(1, 1, 0)
	s.AddNode(0, 1, 2.5)
	require.NoError(t, s.AddBlock(3, element.Tet4,
		deck.NewRecord().Set("MAT", 1), [][]int{{1, 2, 3, 4}}))
	require.NoError(t, s.AddNodeSet(8, geometry.Surface, "", nil, []int{2, 1, 3}))

	path := filepath.Join(t.TempDir(), "out.exo")
	require.NoError(t, s.ExportMesh(path))

	f, err := exodus.Open(path)
	require.NoError(t, err)
	defer f.Close()

	blocks, err := exodus.ReadIDMap(f, exodus.Blocks)
	require.NoError(t, err)
	require.Equal(t, 1, blocks.Len())
	assert.Equal(t, 3, blocks.Entries[0].NativeID)

	sets, err := exodus.ReadIDMap(f, exodus.NodeSets)
	require.NoError(t, err)
	require.Equal(t, 1, sets.Len())
	assert.Equal(t, 8, sets.Entries[0].NativeID)

	conn, err := f.BlockConnectivity(0)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3, 4}}, conn)

	nodes, err := f.NodeSetNodes(0)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3}, nodes)

	coords, err := f.Coordinates()
	require.NoError(t, err)
	rows, _ := coords.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 2.5, coords.At(3, 2))
}
