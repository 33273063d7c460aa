package nodepath

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Parse materializes a value tree from YAML or JSON text (JSON documents
// are a YAML subset and decode directly). The document wrapper is stripped
// so the result is the root value itself; empty input yields null. The tree
// representation is owned by yaml.v3 — this package only borrows it.
func Parse(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return scalarNode(tagNull, "null"), nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("nodepath: failed to parse document: %w", err)
	}
	root := resolve(&doc)
	if root == nil {
		return scalarNode(tagNull, "null"), nil
	}
	return root, nil
}

// Marshal encodes a value tree as YAML with two-space indentation. Callers
// needing format preservation should serialize through their own encoder.
func Marshal(n *yaml.Node) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("nodepath: nil node")
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
