package deck

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML serializes the deck to YAML with sections, records and record fields
// in their stored order. The generic yaml map encoding cannot be used here
// since it sorts keys; the deck is rendered through an explicit node tree.
func (d *Deck) YAML() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range d.names {
		sec := d.sections[name]
		var content *yaml.Node
		var err error
		if sec.IsList() {
			content = &yaml.Node{Kind: yaml.SequenceNode}
			for _, rec := range sec.records {
				n, err := recordNode(rec)
				if err != nil {
					return nil, err
				}
				content.Content = append(content.Content, n)
			}
		} else {
			content, err = recordNode(sec.single)
			if err != nil {
				return nil, err
			}
		}
		root.Content = append(root.Content, scalarNode(name), content)
	}
	return yaml.Marshal(root)
}

func recordNode(r *Record) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range r.keys {
		v, err := valueNode(r.vals[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %v", k, err)
		}
		n.Content = append(n.Content, scalarNode(k), v)
	}
	return n, nil
}

func valueNode(v interface{}) (*yaml.Node, error) {
	switch t := v.(type) {
	case *Record:
		return recordNode(t)
	case []*Record:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, rec := range t {
			c, err := recordNode(rec)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(v); err != nil {
			return nil, err
		}
		return n, nil
	}
}

func scalarNode(s string) *yaml.Node {
	n := &yaml.Node{}
	n.SetString(s)
	return n
}
