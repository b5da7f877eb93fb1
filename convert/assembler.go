// Package convert assembles solver input decks from a meshed session and
// its exported exchange file. The conversion is a one-shot batch transform:
// it either returns a complete deck or fails outright, and it never mutates
// the session's registries or base deck.
package convert

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/notargets/exodeck/deck"
	"github.com/notargets/exodeck/element"
	"github.com/notargets/exodeck/exodus"
	"github.com/notargets/exodeck/fault"
	"github.com/notargets/exodeck/session"
)

// BuildDeckWithMesh asks the session to export a fresh exchange file at
// exoPath, then assembles a deck with the full mesh embedded. The exchange
// file is closed before return on every path.
func BuildDeckWithMesh(s session.Session, exoPath string) (*deck.Deck, error) {
	if dir := filepath.Dir(exoPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	if err := s.ExportMesh(exoPath); err != nil {
		return nil, err
	}
	f, err := exodus.Open(exoPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return BuildDeckFromExodus(s, f)
}

// BuildDeckFromExodus assembles a deck from the session registries and an
// already-open exchange file. The session's base deck is duplicated first;
// node, element and boundary data go only into the copy.
func BuildDeckFromExodus(s session.Session, f *exodus.File) (*deck.Deck, error) {
	d := s.BaseDeck().Copy()

	if err := addNodeSets(s, f, d); err != nil {
		return nil, err
	}
	if err := addNodeCoords(f, d); err != nil {
		return nil, err
	}
	if err := addElements(s, f, d); err != nil {
		return nil, err
	}
	return d, nil
}

// addNodeCoords appends one NODE COORDS record per coordinate row, in file
// order, with 1-based sequential ids
func addNodeCoords(f *exodus.File, d *deck.Deck) error {
	coords, err := f.Coordinates()
	if err != nil {
		return err
	}
	rows, _ := coords.Dims()
	for i := 0; i < rows; i++ {
		rec := deck.NewRecord().
			Set("COORD", []float64{coords.At(i, 0), coords.At(i, 1), coords.At(i, 2)}).
			Set("data", deck.NewRecord().Set("type", "NODE")).
			Set("id", i+1)
		if err := d.Append("NODE COORDS", rec); err != nil {
			return err
		}
	}
	return nil
}

// addElements appends the element records of every block, in exchange-file
// block order, with element ids increasing monotonically across block
// boundaries
func addElements(s session.Session, f *exodus.File, d *deck.Deck) error {
	m, err := exodus.ReadIDMap(f, exodus.Blocks)
	if err != nil {
		return err
	}
	elemID := 0
	for exoID := 0; exoID < m.Len(); exoID++ {
		nativeID, _ := m.Native(exoID)
		blk, ok := s.Blocks()[nativeID]
		if !ok {
			return fmt.Errorf("%w: block %d is in the exchange file but not in the session registry",
				fault.ErrStructuralMismatch, nativeID)
		}
		secName := blk.Element.FourCSection() + " ELEMENTS"
		conn, err := f.BlockConnectivity(exoID)
		if err != nil {
			return err
		}
		for _, row := range conn {
			elemID++
			cell := deck.NewRecord().
				Set("connectivity", element.NormalizeConnectivity(row)).
				Set("type", blk.Element.FourCType())
			data := deck.NewRecord().
				Set("type", blk.Element.FourCName()).
				Merge(blk.Data)
			rec := deck.NewRecord().
				Set("id", elemID).
				Set("cell", cell).
				Set("data", data)
			if err := d.Append(secName, rec); err != nil {
				return err
			}
		}
	}
	return nil
}
