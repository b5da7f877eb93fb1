package exodus

import (
	"fmt"

	"github.com/notargets/exodeck/fault"
)

// Category selects one of the two entity categories carried by an exchange
// file, each with its own id-property and name arrays.
type Category int

const (
	Blocks Category = iota
	NodeSets
)

func (c Category) String() string {
	switch c {
	case Blocks:
		return "block"
	case NodeSets:
		return "nodeset"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// prefix returns the exchange-file variable prefix of the category
func (c Category) prefix() (string, error) {
	switch c {
	case Blocks:
		return "eb", nil
	case NodeSets:
		return "ns", nil
	}
	return "", fmt.Errorf("%w: invalid entry type: %v", fault.ErrInvalidArgument, c)
}

// Entry describes one block or node set as stored in the exchange file
type Entry struct {
	NativeID      int    // stable authoring-time id
	ExchangeIndex int    // zero-based position in the file
	Name          string // empty when unnamed
}

// IDMap is the immutable bidirectional correspondence between native ids
// and exchange indices for one category, built once per conversion.
type IDMap struct {
	Entries []Entry

	nativeToExchange map[int]int
	exchangeToNative map[int]int
}

// ReadIDMap builds the id correspondence for one category from the id
// property and name arrays of the exchange file
func ReadIDMap(f *File, c Category) (*IDMap, error) {
	prefix, err := c.prefix()
	if err != nil {
		return nil, err
	}
	natives, err := f.IntVector(prefix + "_prop1")
	if err != nil {
		return nil, err
	}
	var names []string
	if f.Has(prefix + "_names") {
		if names, err = f.NameTable(prefix + "_names"); err != nil {
			return nil, err
		}
	}

	m := &IDMap{
		Entries:          make([]Entry, 0, len(natives)),
		nativeToExchange: make(map[int]int, len(natives)),
		exchangeToNative: make(map[int]int, len(natives)),
	}
	for i, nativeID := range natives {
		e := Entry{NativeID: nativeID, ExchangeIndex: i}
		if i < len(names) {
			e.Name = names[i]
		}
		if _, dup := m.nativeToExchange[nativeID]; dup {
			return nil, fmt.Errorf("%w: duplicate native %v id %d in exchange file",
				fault.ErrStructuralMismatch, c, nativeID)
		}
		m.nativeToExchange[nativeID] = i
		m.exchangeToNative[i] = nativeID
		m.Entries = append(m.Entries, e)
	}
	return m, nil
}

// Exchange resolves a native id to its exchange index
func (m *IDMap) Exchange(nativeID int) (int, bool) {
	i, ok := m.nativeToExchange[nativeID]
	return i, ok
}

// Native resolves an exchange index to its native id
func (m *IDMap) Native(exchangeIndex int) (int, bool) {
	id, ok := m.exchangeToNative[exchangeIndex]
	return id, ok
}

// Len returns the number of entries in the category
func (m *IDMap) Len() int {
	return len(m.Entries)
}
