package config

import (
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/gitfarm/pkg/errors"
)

// document mirrors the on-disk YAML layout: an optional canonical repos
// section, a category mapping, and an optional global link mapping.
type document struct {
	Repos      mapping[*repoDoc]     `yaml:"repos,omitempty"`
	Categories mapping[*categoryDoc] `yaml:"categories,omitempty"`
	Links      mapping[*linkDoc]     `yaml:"links,omitempty"`
}

// repoDoc is one repo entry in the document. Every field is optional; a
// category may also list a repo name with a null body, which makes it a
// bare reference into the canonical store.
type repoDoc struct {
	Path  string   `yaml:"path,omitempty"`
	URL   string   `yaml:"url,omitempty"`
	Kind  string   `yaml:"kind,omitempty"`
	Flags []string `yaml:"flags,omitempty"`
}

type categoryDoc struct {
	Flags []string          `yaml:"flags,omitempty"`
	Repos mapping[*repoDoc] `yaml:"repos,omitempty"`
	Links mapping[*linkDoc] `yaml:"links,omitempty"`
}

// linkDoc keeps the original field names: tx is the file that exists, rx is
// where the symlink goes.
type linkDoc struct {
	Tx string `yaml:"tx"`
	Rx string `yaml:"rx"`
}

// mapping is a YAML mapping that preserves declaration order and rejects
// duplicate keys. Declaration order matters: it is the order repos are
// resolved and operated on, which the user sees in progress reporting.
type mapping[V any] struct {
	keys   []string
	values map[string]V
}

// Keys returns the mapping keys in declaration order
func (m *mapping[V]) Keys() []string {
	return m.keys
}

// Get looks up a value by key
func (m *mapping[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of entries
func (m *mapping[V]) Len() int {
	return len(m.keys)
}

// Set adds or replaces a value, preserving the position of existing keys
func (m *mapping[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// UnmarshalYAML implements yaml.Unmarshaler
func (m *mapping[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return errors.Newf(errors.ErrConfigParse,
			"expected a mapping at line %d", node.Line)
	}
	m.keys = make([]string, 0, len(node.Content)/2)
	m.values = make(map[string]V, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return errors.Wrapf(err, errors.ErrConfigParse,
				"invalid mapping key at line %d", keyNode.Line)
		}
		if _, dup := m.values[key]; dup {
			return errors.Newf(errors.ErrDuplicateKey,
				"duplicate key %q at line %d", key, keyNode.Line).
				WithDetail("key", key)
		}

		var value V
		// A null body is a bare reference; leave the zero value in place
		if valNode.Tag != "!!null" {
			if err := valNode.Decode(&value); err != nil {
				return err
			}
		}
		m.keys = append(m.keys, key)
		m.values[key] = value
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler, emitting keys in declaration order
func (m mapping[V]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range m.keys {
		keyNode := &yaml.Node{}
		keyNode.SetString(key)

		valNode := &yaml.Node{}
		if err := valNode.Encode(m.values[key]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// IsZero lets yaml.v3 honor omitempty for empty mappings
func (m mapping[V]) IsZero() bool {
	return len(m.keys) == 0
}
