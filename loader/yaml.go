package loader

import (
	"io"

	"github.com/pkg/errors"
	"github.com/qri-io/jsondiff"
	"gopkg.in/yaml.v3"
)

// decodeYAML reads the first document in r. Decoding through yaml.Node keeps
// mapping key order & lets anchors resolve to the values they point at
func decodeYAML(r io.Reader) (jsondiff.Value, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	return fromYAMLNode(&doc, 0)
}

// anchors can build cycles, nothing sane nests this deep
const maxYAMLDepth = 1000

func fromYAMLNode(n *yaml.Node, depth int) (jsondiff.Value, error) {
	if depth > maxYAMLDepth {
		return nil, errors.Errorf("line %d: document nests deeper than %d levels", n.Line, maxYAMLDepth)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return jsondiff.Null(), nil
		}
		return fromYAMLNode(n.Content[0], depth+1)
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]jsondiff.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromYAMLNode(c, depth+1)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return jsondiff.NewSequence(items...), nil
	case yaml.MappingNode:
		pairs := make([]jsondiff.Pair, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, vn := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, errors.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			v, err := fromYAMLNode(vn, depth+1)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, jsondiff.Pair{Key: k.Value, Value: v})
		}
		return jsondiff.NewMapping(pairs...), nil
	case yaml.ScalarNode:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, errors.Wrapf(err, "line %d", n.Line)
		}
		sv, err := jsondiff.FromInterface(v)
		if err != nil {
			// binary & other exotic tags compare by their source text
			return jsondiff.String(n.Value), nil
		}
		return sv, nil
	}
	return nil, errors.Errorf("line %d: unexpected yaml node", n.Line)
}
