package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/exodeck/fault"
)

func TestFormatObjectsAndGroups(t *testing.T) {
	out, err := Format(Object(Surface, 3), Object(Surface, 1))
	assert.NoError(t, err)
	assert.Equal(t, "surface 3 1", out)

	out, err = Format(Group(Curve, 4, 5), Object(Curve, 9))
	assert.NoError(t, err)
	assert.Equal(t, "curve 4 5 9", out)
}

func TestFormatRawNeedsExplicitType(t *testing.T) {
	_, err := Format(Raw(1), Raw(2))
	assert.True(t, errors.Is(err, fault.ErrInvalidArgument))

	out, err := FormatAs(Volume, Raw(1), Raw(2))
	assert.NoError(t, err)
	assert.Equal(t, "volume 1 2", out)

	// Raw ids mix freely with typed arguments of one dimensionality
	out, err = Format(Object(Vertex, 7), Raw(8))
	assert.NoError(t, err)
	assert.Equal(t, "vertex 7 8", out)
}

func TestFormatMixedGeometryFails(t *testing.T) {
	_, err := Format(Object(Surface, 1), Object(Volume, 2))
	assert.True(t, errors.Is(err, fault.ErrInvalidArgument))

	_, err = FormatAs(Curve, Object(Surface, 1))
	assert.True(t, errors.Is(err, fault.ErrInvalidArgument))
}

func TestFormatEmptyFails(t *testing.T) {
	_, err := Format()
	assert.True(t, errors.Is(err, fault.ErrInvalidArgument))

	_, err = FormatAs(Surface)
	assert.True(t, errors.Is(err, fault.ErrInvalidArgument))

	_, err = Format(Seq())
	assert.True(t, errors.Is(err, fault.ErrInvalidArgument))
}

func TestFormatSequenceExpands(t *testing.T) {
	direct, err := Format(Object(Surface, 2), Object(Surface, 5))
	assert.NoError(t, err)

	wrapped, err := Format(Seq(Object(Surface, 2), Object(Surface, 5)))
	assert.NoError(t, err)
	assert.Equal(t, direct, wrapped)

	// A sequence is only transparent as the sole argument
	_, err = Format(Seq(Object(Surface, 2)), Object(Surface, 5))
	assert.True(t, errors.Is(err, fault.ErrInvalidArgument))
}

func TestFormatBody(t *testing.T) {
	out, err := Format(SheetBody(11))
	assert.NoError(t, err)
	assert.Equal(t, "surface 11", out)

	out, err = Format(SolidBody(3))
	assert.NoError(t, err)
	assert.Equal(t, "volume 3", out)

	_, err = Format(SheetBody(11, 12))
	assert.True(t, errors.Is(err, fault.ErrCountMismatch))

	_, err = Format(SolidBody())
	assert.True(t, errors.Is(err, fault.ErrCountMismatch))
}
