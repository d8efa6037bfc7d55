package frontmatter

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Serialize serializes ordered fields into YAML bytes (without delimiters).
//
// Determinism: fields are emitted in their stored order, so a Parse/Serialize
// round-trip preserves the source key order and list order.
// Newlines: the returned bytes use the newline style provided by Style
// (defaults to \n).
//
// If fields is empty, Serialize returns an empty slice.
func Serialize(fields Fields, style Style) ([]byte, error) {
	if len(fields) == 0 {
		return []byte{}, nil
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}
		var valNode *yaml.Node
		if f.IsList {
			seq := &yaml.Node{Kind: yaml.SequenceNode}
			for _, item := range f.List {
				seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item})
			}
			valNode = seq
		} else {
			valNode = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value}
		}
		node.Content = append(node.Content, keyNode, valNode)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	out := buf.Bytes()
	if nl != "\n" {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte(nl))
	}
	return out, nil
}
