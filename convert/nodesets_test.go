package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/exodeck/deck"
	"github.com/notargets/exodeck/element"
	"github.com/notargets/exodeck/geometry"
	"github.com/notargets/exodeck/session"
)

const dirichSurf = "DESIGN SURF DIRICH CONDITIONS"
const dirichLine = "DESIGN LINE DIRICH CONDITIONS"

// E values are 1-based per dimensionality bucket, in exchange-file order;
// sets without a BC section skip emission but still consume a slot
func TestBucketNumberingSkipsButCounts(t *testing.T) {
	s := newHexSession(t)
	require.NoError(t, s.AddNodeSet(10, geometry.Surface, dirichSurf,
		deck.NewRecord().Set("NUMDOF", 3), []int{1, 2}))
	require.NoError(t, s.AddNodeSet(20, geometry.Surface, "", nil, []int{3}))
	require.NoError(t, s.AddNodeSet(30, geometry.Surface, dirichSurf,
		deck.NewRecord().Set("NUMDOF", 3), []int{4}))
	require.NoError(t, s.AddNodeSet(5, geometry.Curve, dirichLine,
		deck.NewRecord(), []int{5, 6}))

	d, err := BuildDeckWithMesh(s, exoPath(t))
	require.NoError(t, err)

	surf, ok := d.Section(dirichSurf)
	require.True(t, ok)
	require.Len(t, surf.Records(), 2)
	e0, _ := surf.Records()[0].Get("E")
	e1, _ := surf.Records()[1].Get("E")
	assert.Equal(t, 1, e0)
	assert.Equal(t, 3, e1) // set 20 consumed slot 2 without emitting

	line, ok := d.Section(dirichLine)
	require.True(t, ok)
	require.Len(t, line.Records(), 1)
	e0, _ = line.Records()[0].Get("E")
	assert.Equal(t, 1, e0)

	// The embedded-mesh path never writes provenance tags
	_, hasTag := surf.Records()[0].Get("ENTITY_TYPE")
	assert.False(t, hasTag)

	// BC-less sets still appear in topology: three surface sets emitted
	topo, ok := d.Section(geometry.Surface.TopologySection())
	require.True(t, ok)
	dIDs := make(map[int]bool)
	for _, rec := range topo.Records() {
		id, _ := rec.Get("d_id")
		dIDs[id.(int)] = true
	}
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, dIDs)
}

// Within a topology section, records group by set in bucket order and sort
// by node id within each set
func TestTopologyRecordOrdering(t *testing.T) {
	s := newHexSession(t)
	require.NoError(t, s.AddNodeSet(1, geometry.Surface, "", nil, []int{5, 3}))
	require.NoError(t, s.AddNodeSet(2, geometry.Surface, "", nil, []int{4}))

	d, err := BuildDeckWithMesh(s, exoPath(t))
	require.NoError(t, err)

	topo, ok := d.Section(geometry.Surface.TopologySection())
	require.True(t, ok)
	require.Len(t, topo.Records(), 3)

	var nodes, sets []int
	for _, rec := range topo.Records() {
		n, _ := rec.Get("node_id")
		s, _ := rec.Get("d_id")
		nodes = append(nodes, n.(int))
		sets = append(sets, s.(int))
		typ, _ := rec.Get("type")
		assert.Equal(t, "NODE", typ)
		label, _ := rec.Get("d_type")
		assert.Equal(t, "DSURFACE", label)
	}
	assert.Equal(t, []int{3, 5, 4}, nodes)
	assert.Equal(t, []int{1, 1, 2}, sets)
}

// Empty buckets produce no section at all
func TestEmptyBucketsAbsent(t *testing.T) {
	s := newHexSession(t)
	require.NoError(t, s.AddNodeSet(1, geometry.Volume, "", nil, []int{1, 2, 3, 4, 5, 6, 7, 8}))

	d, err := BuildDeckWithMesh(s, exoPath(t))
	require.NoError(t, err)

	assert.True(t, d.Has(geometry.Volume.TopologySection()))
	assert.False(t, d.Has(geometry.Vertex.TopologySection()))
	assert.False(t, d.Has(geometry.Curve.TopologySection()))
	assert.False(t, d.Has(geometry.Surface.TopologySection()))
}

func TestAddExternalNodeSets(t *testing.T) {
	s := newHexSession(t)
	require.NoError(t, s.AddNodeSet(12, geometry.Surface, dirichSurf,
		deck.NewRecord().Set("NUMDOF", 3), []int{1}))
	require.NoError(t, s.AddNodeSet(3, geometry.Surface, dirichSurf,
		deck.NewRecord().Set("NUMDOF", 6), []int{2}))
	require.NoError(t, s.AddNodeSet(7, geometry.Curve, "", nil, []int{3}))

	d := deck.New()
	require.NoError(t, AddExternalNodeSets(s, d))

	sec, ok := d.Section(dirichSurf)
	require.True(t, ok)
	require.Len(t, sec.Records(), 2)

	// Ascending native id, E carries the native id, provenance tagged
	first, second := sec.Records()[0], sec.Records()[1]
	e, _ := first.Get("E")
	assert.Equal(t, 3, e)
	e, _ = second.Get("E")
	assert.Equal(t, 12, e)
	tag, _ := first.Get("ENTITY_TYPE")
	assert.Equal(t, "node_set_id", tag)

	// No per-node expansion and no topology sections in this mode
	assert.False(t, d.Has(geometry.Surface.TopologySection()))
	assert.Equal(t, []string{dirichSurf}, d.SectionNames())

	// Session conditions stay clean
	_, hasE := s.NodeSets()[12].Condition.Get("E")
	assert.False(t, hasE)
}

func TestAddExternalNodeSetsEmptyRegistry(t *testing.T) {
	s := session.NewMemorySession()
	require.NoError(t, s.AddBlock(1, element.Hex8, nil,
		[][]int{{1, 2, 3, 4, 5, 6, 7, 8}}))
	d := deck.New()
	require.NoError(t, AddExternalNodeSets(s, d))
	assert.Equal(t, 0, d.Len())
}
