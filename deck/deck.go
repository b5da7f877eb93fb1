// Package deck implements the solver input deck: an ordered collection of
// named sections, each holding either an ordered sequence of records or a
// single associative record. Section order and record order are part of the
// on-disk contract and are preserved exactly.
package deck

import "fmt"

// Record is an associative record with stable key order. Values may be
// scalars, numeric slices, nested *Record values or []*Record sequences.
type Record struct {
	keys []string
	vals map[string]interface{}
}

// NewRecord returns an empty record
func NewRecord() *Record {
	return &Record{vals: make(map[string]interface{})}
}

// Set stores a value under key. A new key is appended to the key order; an
// existing key keeps its position. Returns the record for chaining.
func (r *Record) Set(key string, v interface{}) *Record {
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
	return r
}

// Get returns the value stored under key
func (r *Record) Get(key string) (interface{}, bool) {
	v, ok := r.vals[key]
	return v, ok
}

// Keys returns the record's keys in insertion order
func (r *Record) Keys() []string {
	return r.keys
}

// Len returns the number of fields
func (r *Record) Len() int {
	return len(r.keys)
}

// Merge appends every field of other to r, in other's key order
func (r *Record) Merge(other *Record) *Record {
	for _, k := range other.keys {
		r.Set(k, copyValue(other.vals[k]))
	}
	return r
}

// Copy returns a deep copy of the record
func (r *Record) Copy() *Record {
	out := NewRecord()
	for _, k := range r.keys {
		out.Set(k, copyValue(r.vals[k]))
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case *Record:
		return t.Copy()
	case []*Record:
		out := make([]*Record, len(t))
		for i, rec := range t {
			out[i] = rec.Copy()
		}
		return out
	case []int:
		out := make([]int, len(t))
		copy(out, t)
		return out
	case []float64:
		out := make([]float64, len(t))
		copy(out, t)
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

// Section holds the content of one named deck section: either an ordered
// record sequence or a single associative record, never both.
type Section struct {
	records []*Record
	single  *Record
}

// IsList reports whether the section is sequence-valued
func (s *Section) IsList() bool {
	return s.single == nil
}

// Records returns the record sequence of a list section
func (s *Section) Records() []*Record {
	return s.records
}

// Fields returns the record of a single-record section, or nil for a list
// section
func (s *Section) Fields() *Record {
	return s.single
}

func (s *Section) copy() *Section {
	out := &Section{}
	if s.single != nil {
		out.single = s.single.Copy()
		return out
	}
	out.records = make([]*Record, len(s.records))
	for i, r := range s.records {
		out.records[i] = r.Copy()
	}
	return out
}

// Deck is the ordered section collection handed to the downstream solver
// input writer
type Deck struct {
	names    []string
	sections map[string]*Section
}

// New returns an empty deck
func New() *Deck {
	return &Deck{sections: make(map[string]*Section)}
}

// Append adds records to the sequence-valued section name, creating the
// section on first use. Appending to a single-record section is an error.
func (d *Deck) Append(name string, recs ...*Record) error {
	sec, ok := d.sections[name]
	if !ok {
		sec = &Section{}
		d.sections[name] = sec
		d.names = append(d.names, name)
	}
	if !sec.IsList() {
		return fmt.Errorf("section %q holds a single record, cannot append", name)
	}
	sec.records = append(sec.records, recs...)
	return nil
}

// PutFields creates a single-record section. The section must not exist yet.
func (d *Deck) PutFields(name string, rec *Record) error {
	if _, ok := d.sections[name]; ok {
		return fmt.Errorf("section %q already exists", name)
	}
	d.sections[name] = &Section{single: rec}
	d.names = append(d.names, name)
	return nil
}

// Has reports whether a section with the given name exists
func (d *Deck) Has(name string) bool {
	_, ok := d.sections[name]
	return ok
}

// Section returns the named section
func (d *Deck) Section(name string) (*Section, bool) {
	s, ok := d.sections[name]
	return s, ok
}

// SectionNames returns the section names in creation order
func (d *Deck) SectionNames() []string {
	return d.names
}

// Len returns the number of sections
func (d *Deck) Len() int {
	return len(d.names)
}

// Copy returns an independent deep copy of the deck
func (d *Deck) Copy() *Deck {
	out := New()
	for _, name := range d.names {
		out.names = append(out.names, name)
		out.sections[name] = d.sections[name].copy()
	}
	return out
}
