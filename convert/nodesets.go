package convert

import (
	"fmt"
	"sort"

	"github.com/notargets/exodeck/deck"
	"github.com/notargets/exodeck/exodus"
	"github.com/notargets/exodeck/fault"
	"github.com/notargets/exodeck/geometry"
	"github.com/notargets/exodeck/session"
)

// addNodeSets projects the node sets of the exchange file into the deck:
// boundary-condition records into their configured sections and (node, set)
// topology records into the per-dimensionality sections.
func addNodeSets(s session.Session, f *exodus.File, d *deck.Deck) error {
	sets := s.NodeSets()
	if len(sets) == 0 {
		return nil
	}

	m, err := exodus.ReadIDMap(f, exodus.NodeSets)
	if err != nil {
		return err
	}

	// Bucket member-node arrays by dimensionality, in ascending exchange
	// index. The 1-based position within a bucket is the set's E value; a
	// set without a BC section skips emission but still takes a slot.
	var buckets [len(geometry.Types)][][]int
	for exoID := 0; exoID < m.Len(); exoID++ {
		nativeID, _ := m.Native(exoID)
		ns, ok := sets[nativeID]
		if !ok {
			return fmt.Errorf("%w: node set %d is in the exchange file but not in the session registry",
				fault.ErrStructuralMismatch, nativeID)
		}
		nodes, err := f.NodeSetNodes(exoID)
		if err != nil {
			return err
		}
		buckets[ns.Geometry] = append(buckets[ns.Geometry], nodes)

		if ns.Section != "" {
			bc := ns.Condition.Copy()
			bc.Set("E", len(buckets[ns.Geometry]))
			if err := d.Append(ns.Section, bc); err != nil {
				return err
			}
		}
	}

	for _, g := range geometry.Types {
		bucket := buckets[g]
		if len(bucket) == 0 {
			continue
		}
		secName := g.TopologySection()
		for iSet, nodes := range bucket {
			sorted := make([]int, len(nodes))
			copy(sorted, nodes)
			sort.Ints(sorted)
			for _, node := range sorted {
				rec := deck.NewRecord().
					Set("type", "NODE").
					Set("node_id", node).
					Set("d_type", g.SetLabel()).
					Set("d_id", iSet+1)
				if err := d.Append(secName, rec); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// AddExternalNodeSets appends one descriptive boundary-condition record per
// BC-carrying node set, for decks that reference the mesh in an external
// exchange file. No per-node expansion happens in this mode; sets are
// emitted in ascending native id.
func AddExternalNodeSets(s session.Session, d *deck.Deck) error {
	sets := s.NodeSets()
	if len(sets) == 0 {
		return nil
	}

	ids := make([]int, 0, len(sets))
	for id := range sets {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		ns := sets[id]
		if ns.Section == "" {
			continue
		}
		bc := ns.Condition.Copy()
		bc.Set("E", id)
		bc.Set("ENTITY_TYPE", "node_set_id")
		if err := d.Append(ns.Section, bc); err != nil {
			return err
		}
	}
	return nil
}
