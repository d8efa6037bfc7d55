package frontmatter

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Field is a single frontmatter entry: either a scalar string or a list of
// strings. Values carry no type coercion; interpretation (dates, numbers) is
// the metadata model's responsibility.
type Field struct {
	Key    string
	Value  string
	List   []string
	IsList bool
}

// Fields is an ordered collection of frontmatter entries. Order matches the
// source document.
type Fields []Field

// Get returns the scalar value for key. The second return is false when the
// key is absent or list-valued.
func (f Fields) Get(key string) (string, bool) {
	for _, fl := range f {
		if fl.Key == key {
			if fl.IsList {
				return "", false
			}
			return fl.Value, true
		}
	}
	return "", false
}

// GetList returns the list value for key. A scalar value is returned as a
// single-element list so templates can treat tag-like keys uniformly.
func (f Fields) GetList(key string) ([]string, bool) {
	for _, fl := range f {
		if fl.Key == key {
			if fl.IsList {
				return fl.List, true
			}
			if fl.Value == "" {
				return nil, true
			}
			return []string{fl.Value}, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	for _, fl := range f {
		if fl.Key == key {
			return true
		}
	}
	return false
}

// Keys returns all keys in source order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for _, fl := range f {
		keys = append(keys, fl.Key)
	}
	return keys
}

// ParseFields parses raw frontmatter bytes (without delimiters) into ordered
// fields. The grammar is one `key: value` pair per line, with list-valued keys
// using a block of `- item` lines.
//
// yaml.Node is used instead of map unmarshalling because maps lose source
// order, and the round-trip contract requires preserving it.
func ParseFields(raw []byte) (Fields, error) {
	if len(raw) == 0 {
		return Fields{}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return Fields{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("frontmatter is not a key/value mapping")
	}

	fields := make(Fields, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valNode := root.Content[i+1]

		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("frontmatter key at line %d is not a scalar", keyNode.Line)
		}

		switch valNode.Kind {
		case yaml.ScalarNode:
			fields = append(fields, Field{Key: keyNode.Value, Value: valNode.Value})
		case yaml.SequenceNode:
			items := make([]string, 0, len(valNode.Content))
			for _, item := range valNode.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("frontmatter list item at line %d is not a scalar", item.Line)
				}
				items = append(items, item.Value)
			}
			fields = append(fields, Field{Key: keyNode.Value, List: items, IsList: true})
		default:
			return nil, fmt.Errorf("frontmatter value for %q at line %d is neither scalar nor list", keyNode.Value, valNode.Line)
		}
	}

	return fields, nil
}
