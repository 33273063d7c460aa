package nodepath

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"gopkg.in/yaml.v3"
)

// RFC 6902 JSON Patch, executed through the path mutator. Each pointer is
// translated into a Path so patch operations observe exactly the same
// preconditions and atomicity as Insert/Replace/Set/Remove.

// ApplyPatch applies a json-patch Patch to the value tree rooted at root.
func ApplyPatch(root *yaml.Node, patch jsonpatch.Patch) error {
	b, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("nodepath: cannot marshal patch: %w", err)
	}
	return ApplyPatchBytes(root, b)
}

// ApplyPatchBytes decodes a raw JSON Patch document and applies it in order.
// Operations are not rolled back: a failing op leaves earlier ops applied
// but, like all mutations here, has no partial effect of its own.
func ApplyPatchBytes(root *yaml.Node, data []byte) error {
	ops, err := decodePatchOps(data)
	if err != nil {
		return err
	}
	root = resolve(root)
	if root == nil {
		return errors.New("nodepath: nil patch target")
	}
	for _, op := range ops {
		if err := applyPatchOp(root, op); err != nil {
			return err
		}
	}
	return nil
}

type patchOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
	From  string          `json:"from,omitempty"`
}

func decodePatchOps(data []byte) ([]patchOp, error) {
	var ops []patchOp
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ops); err != nil {
		return nil, fmt.Errorf("nodepath: invalid JSON Patch: %w", err)
	}
	if len(ops) == 0 {
		return nil, errors.New("nodepath: empty JSON Patch")
	}
	return ops, nil
}

// pointerPath translates a JSON Pointer into a Path. Numeric tokens become
// FromStart indexes and "-" becomes the append marker; everything else is a
// field. Object keys that look numeric are therefore not addressable through
// this bridge, matching the usual pointer-on-tree ambiguity.
func pointerPath(p string) (Path, error) {
	if p == "" {
		return Path{}, nil
	}
	if !strings.HasPrefix(p, "/") {
		return nil, fmt.Errorf("nodepath: JSON Pointer must start with '/': %q", p)
	}
	parts := strings.Split(p, "/")[1:]
	out := make(Path, 0, len(parts))
	for _, s := range parts {
		seg := strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
		if seg == "-" {
			out = append(out, FromEnd(0))
			continue
		}
		if i, err := strconv.Atoi(seg); err == nil && i >= 0 {
			out = append(out, FromStart(i))
			continue
		}
		out = append(out, Field(seg))
	}
	return out, nil
}

func decodePatchValue(raw json.RawMessage) (*yaml.Node, error) {
	if raw == nil {
		return nil, errors.New("nodepath: missing 'value' for operation")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("nodepath: invalid patch value: %w", err)
	}
	return FromValue(v), nil
}

func applyPatchOp(root *yaml.Node, op patchOp) error {
	path, err := pointerPath(op.Path)
	if err != nil {
		return err
	}
	switch strings.ToLower(op.Op) {
	case "add":
		v, err := decodePatchValue(op.Value)
		if err != nil {
			return err
		}
		return patchAdd(root, path, v)
	case "replace":
		v, err := decodePatchValue(op.Value)
		if err != nil {
			return err
		}
		if _, err := path.Replace(root, v); err != nil {
			return fmt.Errorf("nodepath: replace %q: %w", op.Path, err)
		}
		return nil
	case "remove":
		if len(path) == 0 {
			return errors.New("nodepath: remove: empty path not supported")
		}
		if _, err := path.Remove(root); err != nil {
			return fmt.Errorf("nodepath: remove %q: %w", op.Path, err)
		}
		return nil
	case "test":
		target, err := path.Find(root)
		if err != nil {
			return fmt.Errorf("nodepath: test %q: %w", op.Path, err)
		}
		want, err := decodePatchValue(op.Value)
		if err != nil {
			return err
		}
		if !Equal(target, want) {
			return fmt.Errorf("nodepath: test %q failed", op.Path)
		}
		return nil
	case "move":
		return patchMove(root, op, path)
	case "copy":
		src, err := patchSource(root, op.From)
		if err != nil {
			return err
		}
		return patchAdd(root, path, src)
	default:
		return fmt.Errorf("nodepath: unsupported op %q", op.Op)
	}
}

// patchAdd implements RFC 6902 "add": inserting into arrays, upserting into
// objects, and replacing the whole document on the root pointer.
func patchAdd(root *yaml.Node, path Path, v *yaml.Node) error {
	if len(path) == 0 {
		*root = *v
		return nil
	}
	last, _ := path.Last()
	if last.IsIndex() {
		if _, err := path.Insert(root, v); err != nil {
			return fmt.Errorf("nodepath: add %q: %w", path, err)
		}
		return nil
	}
	if _, err := path.Set(root, v); err != nil {
		return fmt.Errorf("nodepath: add %q: %w", path, err)
	}
	return nil
}

func patchSource(root *yaml.Node, from string) (*yaml.Node, error) {
	fromPath, err := pointerPath(from)
	if err != nil {
		return nil, err
	}
	src, err := fromPath.Find(root)
	if err != nil {
		return nil, fmt.Errorf("nodepath: from %q: %w", from, err)
	}
	return Clone(src), nil
}

func patchMove(root *yaml.Node, op patchOp, to Path) error {
	src, err := patchSource(root, op.From)
	if err != nil {
		return err
	}
	fromPath, err := pointerPath(op.From)
	if err != nil {
		return err
	}
	if len(fromPath) == 0 {
		return errors.New("nodepath: move: cannot move the document root")
	}
	if _, err := fromPath.Remove(root); err != nil {
		return fmt.Errorf("nodepath: move from %q: %w", op.From, err)
	}
	return patchAdd(root, to, src)
}
