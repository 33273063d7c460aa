package nodepath

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// valueKind classifies a node for cross-type ordering.
type valueKind int

const (
	kindNull valueKind = iota
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

func kindOf(n *yaml.Node) valueKind {
	switch n.Kind {
	case yaml.SequenceNode:
		return kindArray
	case yaml.MappingNode:
		return kindObject
	}
	switch n.Tag {
	case tagNull:
		return kindNull
	case tagBool:
		return kindBool
	case tagInt, tagFloat:
		return kindNumber
	default:
		// Unrecognized scalar tags (timestamps, custom tags) order as strings.
		return kindString
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) (int, bool) {
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	case a == b:
		return 0, true
	}
	// NaN on either side.
	return 0, false
}

func boolValue(n *yaml.Node) bool {
	return strings.EqualFold(n.Value, "true")
}

// compareNumbers prefers the widest shared exact representation: signed
// integers, then unsigned, then floating point.
func compareNumbers(a, b *yaml.Node) (int, bool) {
	if ai, errA := strconv.ParseInt(a.Value, 10, 64); errA == nil {
		if bi, errB := strconv.ParseInt(b.Value, 10, 64); errB == nil {
			return cmpInt(ai, bi), true
		}
	}
	if au, errA := strconv.ParseUint(a.Value, 10, 64); errA == nil {
		if bu, errB := strconv.ParseUint(b.Value, 10, 64); errB == nil {
			return cmpUint(au, bu), true
		}
	}
	if af, errA := strconv.ParseFloat(a.Value, 64); errA == nil {
		if bf, errB := strconv.ParseFloat(b.Value, 64); errB == nil {
			return cmpFloat(af, bf)
		}
	}
	return 0, false
}

// numberVsBool casts the bool to 0/1 and compares as floating point.
func numberVsBool(num, b *yaml.Node) (int, bool) {
	f, err := strconv.ParseFloat(num.Value, 64)
	if err != nil {
		return 0, false
	}
	bf := 0.0
	if boolValue(b) {
		bf = 1.0
	}
	return cmpFloat(f, bf)
}

// numberVsString compares numerically when the string parses as a float;
// otherwise the number orders first. Parse failure is a fixed fallback
// ordering, not an error.
func numberVsString(num, s *yaml.Node) (int, bool) {
	nf, errN := strconv.ParseFloat(num.Value, 64)
	sf, errS := strconv.ParseFloat(s.Value, 64)
	if errN == nil && errS == nil {
		if c, ok := cmpFloat(nf, sf); ok {
			return c, ok
		}
	}
	return -1, true
}

func invert(c int, ok bool) (int, bool) { return -c, ok }

// Compare defines a total preorder across value kinds, following SQL JSON
// operator conventions: structurally equal values (including two nulls) are
// Equal; any other pairing with null is incomparable; bools order below
// numbers cast to 0/1 and below everything else; numbers and strings
// compare numerically when the string parses; scalars order below
// containers. Containers compare by width (Content length) — a deliberately
// coarse, content-blind tiebreak that is deterministic for a fixed shape.
//
// The result is (-1|0|1, true), or (0, false) for incomparable pairs.
func Compare(a, b *yaml.Node) (int, bool) {
	a, b = resolve(a), resolve(b)
	if a == nil || b == nil {
		return 0, false
	}
	if Equal(a, b) {
		return 0, true
	}
	ka, kb := kindOf(a), kindOf(b)
	switch {
	case ka == kindNull || kb == kindNull:
		return 0, false
	case ka == kindBool && kb == kindBool:
		av, bv := boolValue(a), boolValue(b)
		switch {
		case av == bv:
			return 0, true
		case bv:
			return -1, true
		}
		return 1, true
	case ka == kindNumber && kb == kindNumber:
		return compareNumbers(a, b)
	case ka == kindString && kb == kindString:
		return strings.Compare(a.Value, b.Value), true
	case ka == kindNumber && kb == kindBool:
		return numberVsBool(a, b)
	case ka == kindBool && kb == kindNumber:
		return invert(numberVsBool(b, a))
	case ka == kindBool:
		return -1, true
	case kb == kindBool:
		return 1, true
	case ka == kindNumber && kb == kindString:
		return numberVsString(a, b)
	case ka == kindString && kb == kindNumber:
		return invert(numberVsString(b, a))
	case ka == kindNumber:
		return -1, true
	case kb == kindNumber:
		return 1, true
	case ka == kindString:
		return -1, true
	case kb == kindString:
		return 1, true
	default:
		return cmpInt(int64(len(a.Content)), int64(len(b.Content))), true
	}
}

// Ordered is a thin wrapper associating the comparator with a borrowed node
// so value trees plug into generic sorting and searching.
type Ordered struct {
	Node *yaml.Node
}

// Compare orders the wrapped value against other; see Compare.
func (v Ordered) Compare(other Ordered) (int, bool) {
	return Compare(v.Node, other.Node)
}

// Less reports a strict ordering below other; incomparable pairs are not
// less. Suitable for sort.Slice when the input holds no nulls.
func (v Ordered) Less(other Ordered) bool {
	c, ok := Compare(v.Node, other.Node)
	return ok && c < 0
}
