package nodepath

import "gopkg.in/yaml.v3"

// slot maps an index element onto the position of an existing element in a
// sequence of length n. FromEnd(0) addresses position n, which never holds
// an element, so it always fails here; Insert treats it separately as the
// append marker.
func (e Element) slot(n int) (int, bool) {
	i := e.index
	if e.fromEnd {
		if i > n {
			return 0, false
		}
		i = n - i
	}
	if i >= n {
		return 0, false
	}
	return i, true
}

// Find resolves the path against root and returns the addressed node.
// Resolution walks one element at a time: a Field against anything but an
// object, an out-of-range index, or an absent key all yield ErrNotApplicable.
// The empty path resolves to root itself.
//
// The returned node aliases the tree, so it doubles as a mutable handle;
// callers must not hold overlapping handles while mutating.
func (p Path) Find(root *yaml.Node) (*yaml.Node, error) {
	cur := resolve(root)
	for _, e := range p {
		if cur == nil {
			return nil, ErrNotApplicable
		}
		if e.isIndex {
			if cur.Kind != yaml.SequenceNode {
				return nil, ErrNotApplicable
			}
			i, ok := e.slot(len(cur.Content))
			if !ok {
				return nil, ErrNotApplicable
			}
			cur = resolve(cur.Content[i])
			continue
		}
		if cur.Kind != yaml.MappingNode {
			return nil, ErrNotApplicable
		}
		ki := mappingIndex(cur, e.key)
		if ki < 0 {
			return nil, ErrNotApplicable
		}
		cur = resolve(cur.Content[ki+1])
	}
	if cur == nil {
		return nil, ErrNotApplicable
	}
	return cur, nil
}

// Lookup parses expr and resolves it against root in one step.
func Lookup(root *yaml.Node, expr string) (*yaml.Node, error) {
	p, err := ParsePath(expr)
	if err != nil {
		return nil, err
	}
	return p.Find(root)
}
