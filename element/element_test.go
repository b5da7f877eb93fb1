package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeVocabulary(t *testing.T) {
	assert.Equal(t, "STRUCTURE", Hex8.FourCSection())
	assert.Equal(t, "FLUID", Hex8Fluid.FourCSection())
	assert.Equal(t, "SOLID", Hex27.FourCName())
	assert.Equal(t, "FLUID", Hex8Fluid.FourCName())
	assert.Equal(t, "WALL", Quad4.FourCName())
	assert.Equal(t, "HEX27", Hex27.FourCType())
	assert.Equal(t, 27, Hex27.NodeCount())
	assert.Equal(t, 10, Tet10.NodeCount())

	scheme, shape := Tet10.CubitNames()
	assert.Equal(t, "tetra", scheme)
	assert.Equal(t, "TETRA10", shape)
}

func TestParseType(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Type
	}{
		{"HEX8", Hex8},
		{"HEX27", Hex27},
		{"TETRA4", Tet4},
		{"TET4", Tet4},
		{"HEX8_FLUID", Hex8Fluid},
	} {
		got, ok := ParseType(tc.in)
		assert.True(t, ok, tc.in)
		assert.Equal(t, tc.want, got)
	}
	_, ok := ParseType("HEX99")
	assert.False(t, ok)
}
