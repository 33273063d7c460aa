package nodepath

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	gyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"
)

const (
	tagNull   = "!!null"
	tagBool   = "!!bool"
	tagInt    = "!!int"
	tagFloat  = "!!float"
	tagString = "!!str"
	tagSeq    = "!!seq"
	tagMap    = "!!map"
)

// resolve unwraps document and alias wrappers so callers always see the
// underlying value node.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// mappingIndex returns the Content position of the key node for key, or -1.
func mappingIndex(m *yaml.Node, key string) int {
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := m.Content[i]
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return i
		}
	}
	return -1
}

// Equal reports deep structural equality of two value trees. Document and
// alias wrappers are unwrapped before comparing.
func Equal(a, b *yaml.Node) bool {
	a, b = resolve(a), resolve(b)
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Tag != b.Tag || a.Value != b.Value || len(a.Content) != len(b.Content) {
		return false
	}
	for i := range a.Content {
		if !Equal(a.Content[i], b.Content[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the node.
func Clone(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	out := *n
	if len(n.Content) > 0 {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = Clone(c)
		}
	}
	return &out
}

func scalarNode(tag, val string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: val}
}

// FromValue builds a value tree from plain Go values: nil, bool, integers,
// floats, strings, json.Number, []interface{}, map[string]interface{} and
// goccy MapSlice. Plain maps encode with sorted keys for determinism; use a
// MapSlice when key order matters.
func FromValue(v interface{}) *yaml.Node {
	switch t := v.(type) {
	case nil:
		return scalarNode(tagNull, "null")
	case bool:
		if t {
			return scalarNode(tagBool, "true")
		}
		return scalarNode(tagBool, "false")
	case int:
		return scalarNode(tagInt, strconv.Itoa(t))
	case int64:
		return scalarNode(tagInt, strconv.FormatInt(t, 10))
	case uint64:
		return scalarNode(tagInt, strconv.FormatUint(t, 10))
	case float64:
		return scalarNode(tagFloat, strconv.FormatFloat(t, 'g', -1, 64))
	case json.Number:
		if !strings.ContainsAny(string(t), ".eE") {
			if i, err := t.Int64(); err == nil {
				return scalarNode(tagInt, strconv.FormatInt(i, 10))
			}
		}
		f, _ := t.Float64()
		return scalarNode(tagFloat, strconv.FormatFloat(f, 'g', -1, 64))
	case string:
		return scalarNode(tagString, t)
	case []interface{}:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: tagSeq}
		for _, e := range t {
			seq.Content = append(seq.Content, FromValue(e))
		}
		return seq
	case gyaml.MapSlice:
		mp := &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap}
		for _, it := range t {
			key, _ := it.Key.(string)
			mp.Content = append(mp.Content, scalarNode(tagString, key), FromValue(it.Value))
		}
		return mp
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		mp := &yaml.Node{Kind: yaml.MappingNode, Tag: tagMap}
		for _, k := range keys {
			mp.Content = append(mp.Content, scalarNode(tagString, k), FromValue(t[k]))
		}
		return mp
	default:
		return scalarNode(tagString, fmt.Sprint(t))
	}
}

// ToValue extracts a value tree into canonical Go values. Objects come back
// as goccy MapSlice so key order survives the round trip.
func ToValue(n *yaml.Node) interface{} {
	n = resolve(n)
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case tagNull:
			return nil
		case tagBool:
			return strings.EqualFold(n.Value, "true")
		case tagInt:
			if i, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
				return i
			}
			return n.Value
		case tagFloat:
			if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
				return f
			}
			return n.Value
		default:
			return n.Value
		}
	case yaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			out = append(out, ToValue(c))
		}
		return out
	case yaml.MappingNode:
		ms := make(gyaml.MapSlice, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			ms = append(ms, gyaml.MapItem{Key: n.Content[i].Value, Value: ToValue(n.Content[i+1])})
		}
		return ms
	default:
		return nil
	}
}
