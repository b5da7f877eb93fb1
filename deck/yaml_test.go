package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLPreservesOrder(t *testing.T) {
	d := New()
	require.NoError(t, d.Append("ZETA", NewRecord().Set("id", 1).Set("a", 2)))
	require.NoError(t, d.Append("ALPHA", NewRecord().Set("z", 3)))

	out, err := d.YAML()
	require.NoError(t, err)

	want := `ZETA:
    - id: 1
      a: 2
ALPHA:
    - z: 3
`
	assert.Equal(t, want, string(out))
}

func TestYAMLSingleRecordSection(t *testing.T) {
	d := New()
	fields := NewRecord().
		Set("FILE", "mesh.exo").
		Set("SHOW_INFO", "detailed_summary").
		Set("ELEMENT_BLOCKS", []*Record{
			NewRecord().Set("ID", 2),
		})
	require.NoError(t, d.PutFields("STRUCTURE GEOMETRY", fields))

	out, err := d.YAML()
	require.NoError(t, err)

	want := `STRUCTURE GEOMETRY:
    FILE: mesh.exo
    SHOW_INFO: detailed_summary
    ELEMENT_BLOCKS:
        - ID: 2
`
	assert.Equal(t, want, string(out))
}
