package convert

import (
	"fmt"
	"sort"

	"github.com/notargets/exodeck/deck"
	"github.com/notargets/exodeck/session"
)

// AddExternalGeometry adds the per-family geometry sections that let the
// solver read the mesh straight from an external exchange file. Each
// section carries the file reference and one descriptor per element block;
// blocks are emitted in ascending native id. Use together with
// AddExternalNodeSets.
func AddExternalGeometry(s session.Session, d *deck.Deck, relMeshPath, showInfo string) error {
	blocks := s.Blocks()
	ids := make([]int, 0, len(blocks))
	for id := range blocks {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		blk := blocks[id]
		secName := blk.Element.FourCSection() + " GEOMETRY"
		if !d.Has(secName) {
			fields := deck.NewRecord().
				Set("FILE", relMeshPath).
				Set("SHOW_INFO", showInfo).
				Set("ELEMENT_BLOCKS", []*deck.Record{})
			if err := d.PutFields(secName, fields); err != nil {
				return err
			}
		}
		sec, _ := d.Section(secName)
		fields := sec.Fields()
		if fields == nil {
			return fmt.Errorf("section %q already holds a record list", secName)
		}
		v, _ := fields.Get("ELEMENT_BLOCKS")
		list, ok := v.([]*deck.Record)
		if !ok {
			return fmt.Errorf("section %q has no ELEMENT_BLOCKS list", secName)
		}

		_, shape := blk.Element.CubitNames()
		descriptor := deck.NewRecord().
			Set("ID", id).
			Set(blk.Element.FourCName(), deck.NewRecord().Set(shape, blk.Data.Copy()))
		fields.Set("ELEMENT_BLOCKS", append(list, descriptor))
	}
	return nil
}
