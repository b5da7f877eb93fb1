package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/exodeck/config"
	"github.com/notargets/exodeck/deck"
	"github.com/notargets/exodeck/element"
	"github.com/notargets/exodeck/geometry"
	"github.com/notargets/exodeck/session"
)

var metaFixture = []byte(`
blocks:
  1:
    element: HEX8
    data:
      MAT: 1
nodesets:
  2:
    geometry: surface
    section: DESIGN SURF DIRICH CONDITIONS
    condition:
      NUMDOF: 3
`)

func writeFixtures(t *testing.T) (exoFile, metaFile string) {
	t.Helper()
	dir := t.TempDir()

	s := session.NewMemorySession()
	for _, c := range [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	} {
		s.AddNode(c[0], c[1], c[2])
	}
	require.NoError(t, s.AddBlock(1, element.Hex8,
		deck.NewRecord().Set("MAT", 1), [][]int{{1, 2, 3, 4, 5, 6, 7, 8}}))
	require.NoError(t, s.AddNodeSet(2, geometry.Surface, "DESIGN SURF DIRICH CONDITIONS",
		deck.NewRecord().Set("NUMDOF", 3), []int{1, 2, 3, 4}))

	exoFile = filepath.Join(dir, "box.exo")
	require.NoError(t, s.ExportMesh(exoFile))

	metaFile = filepath.Join(dir, "box.meta.yaml")
	require.NoError(t, os.WriteFile(metaFile, metaFixture, 0o644))
	return exoFile, metaFile
}

func TestRunConvertEmbedded(t *testing.T) {
	exoFile, metaFile := writeFixtures(t)
	outFile := filepath.Join(t.TempDir(), "deck.yaml")

	config.Defaults(viper.GetViper())
	err := RunConvert(&ConvertOptions{
		ExoFile:  exoFile,
		MetaFile: metaFile,
		OutFile:  outFile,
	})
	require.NoError(t, err)

	out, err := os.ReadFile(outFile)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "NODE COORDS:")
	assert.Contains(t, text, "STRUCTURE ELEMENTS:")
	assert.Contains(t, text, "DSURF-NODE TOPOLOGY:")
	assert.Contains(t, text, "DESIGN SURF DIRICH CONDITIONS:")
}

func TestRunConvertExternal(t *testing.T) {
	exoFile, metaFile := writeFixtures(t)
	outFile := filepath.Join(filepath.Dir(exoFile), "deck.yaml")

	config.Defaults(viper.GetViper())
	err := RunConvert(&ConvertOptions{
		ExoFile:  exoFile,
		MetaFile: metaFile,
		OutFile:  outFile,
		External: true,
	})
	require.NoError(t, err)

	out, err := os.ReadFile(outFile)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "STRUCTURE GEOMETRY:")
	assert.Contains(t, text, "FILE: box.exo")
	assert.Contains(t, text, "ENTITY_TYPE: node_set_id")
	assert.NotContains(t, text, "NODE COORDS:")
}
