package nodepath

import "gopkg.in/yaml.v3"

// insertPos maps an index element onto an insertion slot in a sequence of
// length n. Unlike slot, position n itself is valid: FromStart(n) and the
// append marker FromEnd(0) both insert past the last element.
func (e Element) insertPos(n int) (int, bool) {
	i := e.index
	if e.fromEnd {
		if i > n {
			return 0, false
		}
		i = n - i
	}
	if i > n {
		return 0, false
	}
	return i, true
}

// parent resolves all elements but the last and returns the container the
// final element applies to. With a single-element path the parent is root.
func (p Path) parent(root *yaml.Node) (*yaml.Node, Element, error) {
	rest, last, ok := p.splitLast()
	if !ok {
		return nil, Element{}, ErrNotApplicable
	}
	par, err := rest.Find(root)
	if err != nil {
		return nil, Element{}, err
	}
	return par, last, nil
}

func seqInsert(seq *yaml.Node, i int, v *yaml.Node) {
	seq.Content = append(seq.Content, nil)
	copy(seq.Content[i+1:], seq.Content[i:])
	seq.Content[i] = v
}

func seqRemove(seq *yaml.Node, i int) {
	seq.Content = append(seq.Content[:i], seq.Content[i+1:]...)
}

// Insert places v at the path, which must not already resolve: array inserts
// shift existing elements right (FromStart(i) needs i <= len, FromEnd(0) is
// the append marker), and object inserts fail if the key exists. The parent
// container must already exist. On success the mutated root is returned; on
// ErrNotApplicable the tree is untouched.
func (p Path) Insert(root, v *yaml.Node) (*yaml.Node, error) {
	par, last, err := p.parent(root)
	if err != nil {
		return nil, err
	}
	switch {
	case par.Kind == yaml.SequenceNode && last.isIndex:
		i, ok := last.insertPos(len(par.Content))
		if !ok {
			return nil, ErrNotApplicable
		}
		seqInsert(par, i, v)
	case par.Kind == yaml.MappingNode && !last.isIndex:
		if mappingIndex(par, last.key) >= 0 {
			return nil, ErrNotApplicable
		}
		par.Content = append(par.Content, scalarNode(tagString, last.key), v)
	default:
		return nil, ErrNotApplicable
	}
	return root, nil
}

// Replace overwrites the value the full path currently resolves to. It never
// creates new keys or slots; a path that does not resolve fails with
// ErrNotApplicable. Replacing the empty path overwrites the root value.
func (p Path) Replace(root, v *yaml.Node) (*yaml.Node, error) {
	target, err := p.Find(root)
	if err != nil {
		return nil, err
	}
	*target = *v
	return root, nil
}

// Set overwrites an existing array element (FromStart(i) needs i < len,
// FromEnd(i) needs 1 <= i <= len; the append marker is invalid here) or
// inserts-or-overwrites an object key unconditionally.
func (p Path) Set(root, v *yaml.Node) (*yaml.Node, error) {
	par, last, err := p.parent(root)
	if err != nil {
		return nil, err
	}
	switch {
	case par.Kind == yaml.SequenceNode && last.isIndex:
		i, ok := last.slot(len(par.Content))
		if !ok {
			return nil, ErrNotApplicable
		}
		par.Content[i] = v
	case par.Kind == yaml.MappingNode && !last.isIndex:
		if ki := mappingIndex(par, last.key); ki >= 0 {
			par.Content[ki+1] = v
		} else {
			par.Content = append(par.Content, scalarNode(tagString, last.key), v)
		}
	default:
		return nil, ErrNotApplicable
	}
	return root, nil
}

// Remove deletes an existing array element (shifting the rest left) or an
// existing object key; removing an absent location fails.
func (p Path) Remove(root *yaml.Node) (*yaml.Node, error) {
	par, last, err := p.parent(root)
	if err != nil {
		return nil, err
	}
	switch {
	case par.Kind == yaml.SequenceNode && last.isIndex:
		i, ok := last.slot(len(par.Content))
		if !ok {
			return nil, ErrNotApplicable
		}
		seqRemove(par, i)
	case par.Kind == yaml.MappingNode && !last.isIndex:
		ki := mappingIndex(par, last.key)
		if ki < 0 {
			return nil, ErrNotApplicable
		}
		par.Content = append(par.Content[:ki], par.Content[ki+2:]...)
	default:
		return nil, ErrNotApplicable
	}
	return root, nil
}
