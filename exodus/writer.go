package exodus

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// Writer assembles a netCDF-3 classic file from named dimensions and
// fixed-size variables. It covers the subset of the format the meshing
// engine emits: no record dimension, no attributes.
type Writer struct {
	dims     []ncDim
	dimIndex map[string]int
	vars     []*outVar
	varNames map[string]bool
}

type outVar struct {
	name   string
	typ    ncType
	dimIDs []int
	data   []byte // packed big-endian
}

// NewWriter returns an empty writer
func NewWriter() *Writer {
	return &Writer{
		dimIndex: make(map[string]int),
		varNames: make(map[string]bool),
	}
}

// AddDim declares a dimension. Dimension names are unique and lengths
// positive.
func (w *Writer) AddDim(name string, length int) error {
	if _, ok := w.dimIndex[name]; ok {
		return fmt.Errorf("dimension %q already declared", name)
	}
	if length <= 0 {
		return fmt.Errorf("dimension %q has invalid length %d", name, length)
	}
	w.dimIndex[name] = len(w.dims)
	w.dims = append(w.dims, ncDim{name: name, length: length})
	return nil
}

func (w *Writer) addVar(name string, dims []string, typ ncType, count int, data []byte) error {
	if w.varNames[name] {
		return fmt.Errorf("variable %q already declared", name)
	}
	dimIDs := make([]int, len(dims))
	n := 1
	for i, d := range dims {
		id, ok := w.dimIndex[d]
		if !ok {
			return fmt.Errorf("variable %q references undeclared dimension %q", name, d)
		}
		dimIDs[i] = id
		n *= w.dims[id].length
	}
	if n != count {
		return fmt.Errorf("variable %q: %d values do not fill shape of %d", name, count, n)
	}
	w.varNames[name] = true
	w.vars = append(w.vars, &outVar{name: name, typ: typ, dimIDs: dimIDs, data: data})
	return nil
}

// PutInts declares an integer variable with its data
func (w *Writer) PutInts(name string, dims []string, vals []int) error {
	data := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(data[4*i:], uint32(int32(v)))
	}
	return w.addVar(name, dims, ncInt, len(vals), data)
}

// PutDoubles declares a double-precision variable with its data
func (w *Writer) PutDoubles(name string, dims []string, vals []float64) error {
	data := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint64(data[8*i:], math.Float64bits(v))
	}
	return w.addVar(name, dims, ncDouble, len(vals), data)
}

// PutChars declares a char variable with its raw byte data
func (w *Writer) PutChars(name string, dims []string, vals []byte) error {
	data := make([]byte, len(vals))
	copy(data, vals)
	return w.addVar(name, dims, ncChar, len(vals), data)
}

func nameBytes(s string) []byte {
	n := len(s)
	out := make([]byte, 4+n+pad4(n))
	binary.BigEndian.PutUint32(out, uint32(n))
	copy(out[4:], s)
	return out
}

// WriteFile lays out the header, assigns variable offsets and writes the
// complete file
func (w *Writer) WriteFile(path string) error {
	headerLen := 4 + 4 // magic + numrecs
	headerLen += 8     // dimension list tag + count
	for _, d := range w.dims {
		headerLen += len(nameBytes(d.name)) + 4
	}
	headerLen += 8 // absent global attribute list
	headerLen += 8 // variable list tag + count
	for _, v := range w.vars {
		headerLen += len(nameBytes(v.name)) + 4 + 4*len(v.dimIDs) + 8 + 4 + 4 + 4
	}

	// Variable data follows the header back to back, each padded to a
	// 4-byte boundary.
	begins := make([]int64, len(w.vars))
	vsizes := make([]int64, len(w.vars))
	offset := int64(headerLen)
	for i, v := range w.vars {
		begins[i] = offset
		vsizes[i] = int64(len(v.data) + pad4(len(v.data)))
		offset += vsizes[i]
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	buf := bufio.NewWriter(f)

	writeInt32 := func(v int32) {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(v))
		buf.Write(b[:])
	}

	buf.Write([]byte{'C', 'D', 'F', 1})
	writeInt32(0) // numrecs

	writeInt32(tagDimension)
	writeInt32(int32(len(w.dims)))
	for _, d := range w.dims {
		buf.Write(nameBytes(d.name))
		writeInt32(int32(d.length))
	}

	writeInt32(0) // absent global attributes
	writeInt32(0)

	writeInt32(tagVariable)
	writeInt32(int32(len(w.vars)))
	for i, v := range w.vars {
		buf.Write(nameBytes(v.name))
		writeInt32(int32(len(v.dimIDs)))
		for _, id := range v.dimIDs {
			writeInt32(int32(id))
		}
		writeInt32(0) // absent variable attributes
		writeInt32(0)
		writeInt32(int32(v.typ))
		writeInt32(int32(vsizes[i]))
		writeInt32(int32(begins[i]))
	}

	var padding [4]byte
	for _, v := range w.vars {
		buf.Write(v.data)
		buf.Write(padding[:pad4(len(v.data))])
	}

	if err := buf.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
