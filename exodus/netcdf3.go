// Package exodus reads and writes the structured mesh-exchange files
// produced by the meshing engine. The container is the netCDF-3 classic
// format: a header describing named dimensions and variables, followed by
// big-endian column data addressed by per-variable file offsets.
package exodus

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

type ncType int32

const (
	ncByte   ncType = 1
	ncChar   ncType = 2
	ncShort  ncType = 3
	ncInt    ncType = 4
	ncFloat  ncType = 5
	ncDouble ncType = 6
)

const (
	tagDimension = 0x0A
	tagVariable  = 0x0B
	tagAttribute = 0x0C
)

func (t ncType) size() int {
	switch t {
	case ncByte, ncChar:
		return 1
	case ncShort:
		return 2
	case ncInt, ncFloat:
		return 4
	case ncDouble:
		return 8
	}
	return 0
}

type ncDim struct {
	name   string
	length int // 0 marks the record dimension
}

type ncVar struct {
	name   string
	dimIDs []int
	typ    ncType
	vsize  int64
	begin  int64
}

type ncFile struct {
	f       *os.File
	version byte
	dims    []ncDim
	vars    map[string]*ncVar
}

// openNC parses the header of a netCDF-3 classic file and leaves the file
// open for random access to variable data
func openNC(path string) (*ncFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	nc, err := parseHeader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	nc.f = f
	return nc, nil
}

func (nc *ncFile) close() error {
	return nc.f.Close()
}

type headerReader struct {
	r   io.Reader
	err error
}

func (h *headerReader) bytes(n int) []byte {
	if h.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(h.r, buf); err != nil {
		h.err = err
		return nil
	}
	return buf
}

func (h *headerReader) int32() int32 {
	b := h.bytes(4)
	if b == nil {
		return 0
	}
	return int32(binary.BigEndian.Uint32(b))
}

func (h *headerReader) int64() int64 {
	b := h.bytes(8)
	if b == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(b))
}

func (h *headerReader) name() string {
	n := int(h.int32())
	if h.err != nil || n < 0 {
		return ""
	}
	b := h.bytes(n + pad4(n))
	if b == nil {
		return ""
	}
	return string(b[:n])
}

// pad4 returns the number of padding bytes needed to reach a 4-byte boundary
func pad4(n int) int {
	if r := n % 4; r != 0 {
		return 4 - r
	}
	return 0
}

func parseHeader(f *os.File) (*ncFile, error) {
	h := &headerReader{r: f}

	magic := h.bytes(4)
	if h.err != nil {
		return nil, fmt.Errorf("reading exchange file magic: %v", h.err)
	}
	if magic[0] != 'C' || magic[1] != 'D' || magic[2] != 'F' {
		return nil, fmt.Errorf("not a netCDF classic file (magic %q)", magic[:3])
	}
	version := magic[3]
	if version != 1 && version != 2 {
		return nil, fmt.Errorf("unsupported netCDF format version %d", version)
	}

	nc := &ncFile{version: version, vars: make(map[string]*ncVar)}
	h.int32() // numrecs, unused: record variables are not consumed here

	// Dimension list
	tag := h.int32()
	ndims := h.int32()
	if tag != tagDimension && !(tag == 0 && ndims == 0) {
		return nil, fmt.Errorf("malformed dimension list (tag %#x)", tag)
	}
	for i := 0; i < int(ndims); i++ {
		name := h.name()
		length := h.int32()
		nc.dims = append(nc.dims, ncDim{name: name, length: int(length)})
	}

	// Global attributes are carried by exchange files (title, version) but
	// play no part in deck assembly; they are skipped in place.
	if err := skipAttributes(h); err != nil {
		return nil, err
	}

	// Variable list
	tag = h.int32()
	nvars := h.int32()
	if tag != tagVariable && !(tag == 0 && nvars == 0) {
		return nil, fmt.Errorf("malformed variable list (tag %#x)", tag)
	}
	for i := 0; i < int(nvars); i++ {
		v := &ncVar{name: h.name()}
		nd := int(h.int32())
		for j := 0; j < nd; j++ {
			v.dimIDs = append(v.dimIDs, int(h.int32()))
		}
		if err := skipAttributes(h); err != nil {
			return nil, err
		}
		v.typ = ncType(h.int32())
		v.vsize = int64(h.int32())
		if version == 1 {
			v.begin = int64(h.int32())
		} else {
			v.begin = h.int64()
		}
		if h.err != nil {
			return nil, fmt.Errorf("reading variable header: %v", h.err)
		}
		if v.typ.size() == 0 {
			return nil, fmt.Errorf("variable %q has unknown type %d", v.name, v.typ)
		}
		nc.vars[v.name] = v
	}
	if h.err != nil {
		return nil, fmt.Errorf("reading exchange file header: %v", h.err)
	}
	return nc, nil
}

func skipAttributes(h *headerReader) error {
	tag := h.int32()
	n := h.int32()
	if tag != tagAttribute && !(tag == 0 && n == 0) {
		return fmt.Errorf("malformed attribute list (tag %#x)", tag)
	}
	for i := 0; i < int(n); i++ {
		h.name()
		typ := ncType(h.int32())
		nelems := int(h.int32())
		sz := typ.size()
		if sz == 0 {
			return fmt.Errorf("attribute with unknown type %d", typ)
		}
		total := nelems * sz
		h.bytes(total + pad4(total))
	}
	return h.err
}

// shape returns the dimension lengths of a variable
func (nc *ncFile) shape(v *ncVar) ([]int, error) {
	out := make([]int, len(v.dimIDs))
	for i, id := range v.dimIDs {
		if id < 0 || id >= len(nc.dims) {
			return nil, fmt.Errorf("variable %q references unknown dimension %d", v.name, id)
		}
		if nc.dims[id].length == 0 {
			return nil, fmt.Errorf("variable %q uses the record dimension, not supported", v.name)
		}
		out[i] = nc.dims[id].length
	}
	return out, nil
}

// readRaw reads the complete packed data of a non-record variable
func (nc *ncFile) readRaw(v *ncVar) ([]byte, int, error) {
	shape, err := nc.shape(v)
	if err != nil {
		return nil, 0, err
	}
	n := 1
	for _, s := range shape {
		n *= s
	}
	buf := make([]byte, n*v.typ.size())
	if _, err := nc.f.ReadAt(buf, v.begin); err != nil {
		return nil, 0, fmt.Errorf("reading variable %q: %v", v.name, err)
	}
	return buf, n, nil
}

// readFloats reads a numeric variable as a flat float64 slice
func (nc *ncFile) readFloats(v *ncVar) ([]float64, error) {
	buf, n, err := nc.readRaw(v)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	switch v.typ {
	case ncFloat:
		for i := 0; i < n; i++ {
			bits := binary.BigEndian.Uint32(buf[4*i:])
			out[i] = float64(math.Float32frombits(bits))
		}
	case ncDouble:
		for i := 0; i < n; i++ {
			bits := binary.BigEndian.Uint64(buf[8*i:])
			out[i] = math.Float64frombits(bits)
		}
	default:
		return nil, fmt.Errorf("variable %q is not floating point (type %d)", v.name, v.typ)
	}
	return out, nil
}

// readInts reads an integer variable as a flat int slice
func (nc *ncFile) readInts(v *ncVar) ([]int, error) {
	buf, n, err := nc.readRaw(v)
	if err != nil {
		return nil, err
	}
	out := make([]int, n)
	switch v.typ {
	case ncByte:
		for i := 0; i < n; i++ {
			out[i] = int(int8(buf[i]))
		}
	case ncShort:
		for i := 0; i < n; i++ {
			out[i] = int(int16(binary.BigEndian.Uint16(buf[2*i:])))
		}
	case ncInt:
		for i := 0; i < n; i++ {
			out[i] = int(int32(binary.BigEndian.Uint32(buf[4*i:])))
		}
	default:
		return nil, fmt.Errorf("variable %q is not integral (type %d)", v.name, v.typ)
	}
	return out, nil
}

// readChars reads a char variable as raw bytes
func (nc *ncFile) readChars(v *ncVar) ([]byte, error) {
	if v.typ != ncChar {
		return nil, fmt.Errorf("variable %q is not char (type %d)", v.name, v.typ)
	}
	buf, _, err := nc.readRaw(v)
	return buf, err
}
