package exodus

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// File is an open mesh-exchange file. It is read-only for the duration of
// one conversion and must be closed on every exit path.
type File struct {
	nc *ncFile
}

// Open opens a mesh-exchange file for columnar random-access reading
func Open(path string) (*File, error) {
	nc, err := openNC(path)
	if err != nil {
		return nil, err
	}
	return &File{nc: nc}, nil
}

// Close releases the underlying file handle
func (f *File) Close() error {
	return f.nc.close()
}

// Has reports whether the file carries a variable with the given name
func (f *File) Has(name string) bool {
	_, ok := f.nc.vars[name]
	return ok
}

func (f *File) variable(name string) (*ncVar, error) {
	v, ok := f.nc.vars[name]
	if !ok {
		return nil, fmt.Errorf("exchange file has no variable %q", name)
	}
	return v, nil
}

// IntVector reads a one-dimensional integer variable
func (f *File) IntVector(name string) ([]int, error) {
	v, err := f.variable(name)
	if err != nil {
		return nil, err
	}
	return f.nc.readInts(v)
}

// FloatVector reads a one-dimensional floating point variable
func (f *File) FloatVector(name string) ([]float64, error) {
	v, err := f.variable(name)
	if err != nil {
		return nil, err
	}
	return f.nc.readFloats(v)
}

// IntTable reads a two-dimensional integer variable as rows
func (f *File) IntTable(name string) ([][]int, error) {
	v, err := f.variable(name)
	if err != nil {
		return nil, err
	}
	shape, err := f.nc.shape(v)
	if err != nil {
		return nil, err
	}
	if len(shape) != 2 {
		return nil, fmt.Errorf("variable %q has %d dimensions, want 2", name, len(shape))
	}
	flat, err := f.nc.readInts(v)
	if err != nil {
		return nil, err
	}
	rows, cols := shape[0], shape[1]
	out := make([][]int, rows)
	for i := 0; i < rows; i++ {
		out[i] = flat[i*cols : (i+1)*cols]
	}
	return out, nil
}

// NameTable reads a fixed-width character name variable and decodes each
// row. A row with no visible characters decodes to the empty string,
// meaning unnamed.
func (f *File) NameTable(name string) ([]string, error) {
	v, err := f.variable(name)
	if err != nil {
		return nil, err
	}
	shape, err := f.nc.shape(v)
	if err != nil {
		return nil, err
	}
	if len(shape) != 2 {
		return nil, fmt.Errorf("variable %q has %d dimensions, want 2", name, len(shape))
	}
	raw, err := f.nc.readChars(v)
	if err != nil {
		return nil, err
	}
	rows, width := shape[0], shape[1]
	out := make([]string, rows)
	for i := 0; i < rows; i++ {
		out[i] = decodeName(raw[i*width : (i+1)*width])
	}
	return out, nil
}

// decodeName concatenates the visible characters of a fixed-width,
// NUL-padded name buffer
func decodeName(buf []byte) string {
	out := make([]byte, 0, len(buf))
	for _, c := range buf {
		if c == 0 {
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

// Coordinates returns the node coordinate table as an n-by-3 matrix built
// from the columnar coordinate arrays, in file node order. Planar meshes
// without a z column get z = 0.
func (f *File) Coordinates() (*mat.Dense, error) {
	x, err := f.FloatVector("coordx")
	if err != nil {
		return nil, err
	}
	y, err := f.FloatVector("coordy")
	if err != nil {
		return nil, err
	}
	if len(y) != len(x) {
		return nil, fmt.Errorf("coordinate columns differ in length: %d vs %d", len(x), len(y))
	}
	var z []float64
	if f.Has("coordz") {
		if z, err = f.FloatVector("coordz"); err != nil {
			return nil, err
		}
		if len(z) != len(x) {
			return nil, fmt.Errorf("coordinate columns differ in length: %d vs %d", len(x), len(z))
		}
	} else {
		z = make([]float64, len(x))
	}
	coords := mat.NewDense(len(x), 3, nil)
	coords.SetCol(0, x)
	coords.SetCol(1, y)
	coords.SetCol(2, z)
	return coords, nil
}

// NodeSetNodes reads the 1-based member node indices of the node set at the
// given exchange index
func (f *File) NodeSetNodes(exchangeIndex int) ([]int, error) {
	return f.IntVector(fmt.Sprintf("node_ns%d", exchangeIndex+1))
}

// BlockConnectivity reads the per-element connectivity rows of the element
// block at the given exchange index
func (f *File) BlockConnectivity(exchangeIndex int) ([][]int, error) {
	return f.IntTable(fmt.Sprintf("connect%d", exchangeIndex+1))
}
