package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notargets/exodeck/fault"
)

// Selector is a tagged variant over the argument kinds accepted by the
// meshing-engine command formatter: a single typed entity, a typed group of
// entities, a raw integer id, a body wrapping exactly one surface or volume,
// or a nested sequence of selectors.
type Selector struct {
	kind  selectorKind
	geom  Type
	id    int
	ids   []int
	items []Selector
	sheet bool
}

type selectorKind int

const (
	kindObject selectorKind = iota
	kindGroup
	kindRaw
	kindBody
	kindSeq
)

// Object selects a single entity of known dimensionality
func Object(g Type, id int) Selector {
	return Selector{kind: kindObject, geom: g, id: id}
}

// Group selects all entities of one dimensionality held by a named group
func Group(g Type, ids ...int) Selector {
	return Selector{kind: kindGroup, geom: g, ids: ids}
}

// Raw selects an entity by bare id. The dimensionality must come from
// another argument or from FormatAs.
func Raw(id int) Selector {
	return Selector{kind: kindRaw, id: id}
}

// SheetBody selects a body whose underlying geometry is its surfaces
func SheetBody(surfaceIDs ...int) Selector {
	return Selector{kind: kindBody, ids: surfaceIDs, sheet: true}
}

// SolidBody selects a body whose underlying geometry is its volumes
func SolidBody(volumeIDs ...int) Selector {
	return Selector{kind: kindBody, ids: volumeIDs}
}

// Seq wraps a sequence of selectors. It expands transparently, but only when
// it is the sole argument.
func Seq(items ...Selector) Selector {
	return Selector{kind: kindSeq, items: items}
}

// Format resolves the selectors to a meshing-engine command fragment
// "<keyword> <id...>", preserving argument order. All selectors must agree
// on a single dimensionality.
func Format(items ...Selector) (string, error) {
	return format(nil, items)
}

// FormatAs is Format with the dimensionality fixed up front, as required
// when only raw ids are passed
func FormatAs(g Type, items ...Selector) (string, error) {
	return format(&g, items)
}

func format(explicit *Type, items []Selector) (string, error) {
	geoms := make(map[Type]bool)
	if explicit != nil {
		geoms[*explicit] = true
	}
	var ids []int
	for i, item := range items {
		switch item.kind {
		case kindSeq:
			if len(items) != 1 {
				return "", fmt.Errorf(
					"%w: the argument at position %d is a sequence, this only works with a single argument, got %d",
					fault.ErrInvalidArgument, i, len(items))
			}
			return format(explicit, item.items)
		case kindGroup:
			geoms[item.geom] = true
			ids = append(ids, item.ids...)
		case kindObject:
			geoms[item.geom] = true
			ids = append(ids, item.id)
		case kindBody:
			g := Volume
			if item.sheet {
				g = Surface
			}
			if len(item.ids) != 1 {
				return "", fmt.Errorf(
					"%w: expected exactly one %s in the body, but got %d",
					fault.ErrCountMismatch, g, len(item.ids))
			}
			geoms[g] = true
			ids = append(ids, item.ids[0])
		case kindRaw:
			ids = append(ids, item.id)
		}
	}

	if len(geoms) == 0 {
		return "", fmt.Errorf(
			"%w: no geometry types found in the arguments, either check the arguments or fix the type with FormatAs",
			fault.ErrInvalidArgument)
	}
	if len(geoms) != 1 {
		return "", fmt.Errorf(
			"%w: all arguments must have the same geometry type, got %v",
			fault.ErrInvalidArgument, keys(geoms))
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: no item ids found in the arguments",
			fault.ErrInvalidArgument)
	}

	var g Type
	for t := range geoms {
		g = t
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return g.CubitString() + " " + strings.Join(parts, " "), nil
}

func keys(m map[Type]bool) []Type {
	out := make([]Type, 0, len(m))
	for _, t := range Types {
		if m[t] {
			out = append(out, t)
		}
	}
	return out
}
