package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// errNotSet reports a key absent from the config file.
var errNotSet = errors.New("not set in config file")

// SetFileValue writes one dotted key into the config file, creating the file
// and any parent mappings as needed. Comments and unrelated keys survive.
func SetFileValue(key, value string) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	node := doc.Content[0]
	for _, part := range strings.Split(key, ".") {
		node = mappingChild(node, part, true)
	}
	node.Kind, node.Tag, node.Style = yaml.ScalarNode, "", 0
	node.Value, node.Content = value, nil

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// FileValue returns the value of a dotted key as written in the config file.
// ok is false when the file or the key does not exist.
func FileValue(key string) (value string, ok bool, err error) {
	path, err := GetConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		return "", false, nil
	}
	doc, err := readDocument(path)
	if err != nil {
		return "", false, err
	}
	value, err = lookup(doc, key)
	if errors.Is(err, errNotSet) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// readDocument parses path into a document node whose first child is a
// mapping. A missing or empty file yields an empty document.
func readDocument(path string) (*yaml.Node, error) {
	doc := &yaml.Node{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		doc = &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse config %s: top level is not a mapping", path)
	}
	return doc, nil
}

// lookup walks a dotted key through doc and returns the scalar at its end.
func lookup(doc *yaml.Node, key string) (string, error) {
	node := doc.Content[0]
	for _, part := range strings.Split(key, ".") {
		if node = mappingChild(node, part, false); node == nil {
			return "", fmt.Errorf("%s: %w", key, errNotSet)
		}
	}
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("%s is a section, not a value", key)
	}
	return node.Value, nil
}

// mappingChild returns the value node stored under key in m. With create
// set, a missing key is appended and a scalar in the way becomes a mapping
// so the walk can continue.
func mappingChild(m *yaml.Node, key string, create bool) *yaml.Node {
	if m.Kind != yaml.MappingNode {
		if !create {
			return nil
		}
		*m = yaml.Node{Kind: yaml.MappingNode}
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	if !create {
		return nil
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, child)
	return child
}
